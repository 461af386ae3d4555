package grasp

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultTipRadius is the fingertip radius used by SimulatedHand.
const DefaultTipRadius = 0.01

// SimulatedHand is a scripted hand for demos and tests. Its fingertips sit
// on the X axis either side of Position, Aperture apart (center to
// center). MoveTo and PinchTo start tweens; Update advances them.
//
// There is no global animation manager; call Update yourself each frame.
type SimulatedHand struct {
	ID        EntityID
	Position  mgl64.Vec3
	Aperture  float64
	TipRadius float64

	move     [3]*gween.Tween
	aperture *gween.Tween
}

// NewSimulatedHand returns an open hand at pos.
func NewSimulatedHand(id EntityID, pos mgl64.Vec3, aperture float64) *SimulatedHand {
	return &SimulatedHand{
		ID:        id,
		Position:  pos,
		Aperture:  aperture,
		TipRadius: DefaultTipRadius,
	}
}

// MoveTo tweens Position to pos over duration seconds. A nil fn is linear.
func (h *SimulatedHand) MoveTo(pos mgl64.Vec3, duration float32, fn ease.TweenFunc) {
	if fn == nil {
		fn = ease.Linear
	}
	for i := range h.move {
		h.move[i] = gween.New(float32(h.Position[i]), float32(pos[i]), duration, fn)
	}
}

// PinchTo tweens Aperture to aperture over duration seconds. A nil fn is
// linear.
func (h *SimulatedHand) PinchTo(aperture float64, duration float32, fn ease.TweenFunc) {
	if fn == nil {
		fn = ease.Linear
	}
	h.aperture = gween.New(float32(h.Aperture), float32(aperture), duration, fn)
}

// Update advances running tweens by dt seconds and reports whether all of
// them have finished.
func (h *SimulatedHand) Update(dt float32) bool {
	done := true
	for i, tw := range h.move {
		if tw == nil {
			continue
		}
		v, finished := tw.Update(dt)
		h.Position[i] = float64(v)
		if finished {
			h.move[i] = nil
		} else {
			done = false
		}
	}
	if h.aperture != nil {
		v, finished := h.aperture.Update(dt)
		h.Aperture = float64(v)
		if finished {
			h.aperture = nil
		} else {
			done = false
		}
	}
	return done
}

// Gesture returns the current fingertip reading.
func (h *SimulatedHand) Gesture() HandGesture {
	half := mgl64.Vec3{h.Aperture / 2, 0, 0}
	return HandGesture{
		Thumb: Joint{Pos: h.Position.Sub(half), Radius: h.TipRadius},
		Index: Joint{Pos: h.Position.Add(half), Radius: h.TipRadius},
	}
}

// Method returns the hand as an input method located at Position.
func (h *SimulatedHand) Method() InputMethod {
	return InputMethod{
		ID:      h.ID,
		Pose:    TransformFromTranslation(h.Position[0], h.Position[1], h.Position[2]),
		Gesture: h.Gesture(),
	}
}

// Read appends the hand's reading.
func (h *SimulatedHand) Read(f *Frame) {
	f.Add(h.Method())
}
