package grasp

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Script errors.
var (
	ErrNoSteps       = errors.New("grasp: script has no steps")
	ErrUnknownAction = errors.New("grasp: unknown script action")
	ErrExpectation   = errors.New("grasp: expectation failed")
)

// scriptTolerance is the tolerance for "expect" position checks.
const scriptTolerance = 1e-6

// scriptStep is a single action in a script.
type scriptStep struct {
	Action string   `json:"action"`
	ID     EntityID `json:"id,omitempty"`

	// "method"
	Kind    string      `json:"kind,omitempty"` // hand, controller, mouse, none
	Pos     *[3]float64 `json:"pos,omitempty"`
	Pointer bool        `json:"pointer,omitempty"`
	Thumb   *[3]float64 `json:"thumb,omitempty"`
	Index   *[3]float64 `json:"index,omitempty"`
	Radius  float64     `json:"radius,omitempty"`
	Squeeze bool        `json:"squeeze,omitempty"`
	Left    bool        `json:"left,omitempty"`
	Scroll  *[2]float64 `json:"scroll,omitempty"`

	// "frame"
	Frames int `json:"frames,omitempty"`

	// "expect"
	Handler  EntityID    `json:"handler,omitempty"`
	State    string      `json:"state,omitempty"`
	Captured *EntityID   `json:"captured,omitempty"`
	Local    *[3]float64 `json:"local,omitempty"`
}

// script is the top-level JSON structure.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner replays a JSON script of input readings against a System,
// one step at a time. Readings persist across frames until replaced or
// removed; scroll deltas apply to the next frame only.
//
// Actions:
//
//	method  set the reading for id (kind, pos, pointer, thumb, index, radius, squeeze, left, scroll)
//	remove  drop the reading for id
//	anchor  set an external parent's world position (id, pos)
//	frame   run Update for frames frames (default 1)
//	expect  check handler state, captured method and local translation
type ScriptRunner struct {
	steps   []scriptStep
	cursor  int
	methods []InputMethod
	anchors map[EntityID]Transform
}

// LoadScript parses a JSON script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse script: %w", ErrNoSteps)
	}
	return &ScriptRunner{steps: sc.Steps, anchors: make(map[EntityID]Transform)}, nil
}

// Done reports whether every step has run.
func (r *ScriptRunner) Done() bool {
	return r.cursor >= len(r.steps)
}

// Run executes all remaining steps, stopping at the first error.
func (r *ScriptRunner) Run(s *System) error {
	for !r.Done() {
		if err := r.Step(s); err != nil {
			return err
		}
	}
	return nil
}

// Step executes the next step.
func (r *ScriptRunner) Step(s *System) error {
	if r.Done() {
		return nil
	}
	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "method":
		m, err := st.method()
		if err != nil {
			return fmt.Errorf("step %d: %w", r.cursor, err)
		}
		r.setMethod(m)
	case "remove":
		r.removeMethod(st.ID)
	case "anchor":
		p := vec3(st.Pos)
		r.anchors[st.ID] = TransformFromTranslation(p[0], p[1], p[2])
	case "frame":
		frames := st.Frames
		if frames < 1 {
			frames = 1
		}
		for i := 0; i < frames; i++ {
			s.Update(r.frame())
			r.clearScroll()
		}
	case "expect":
		if err := st.check(s); err != nil {
			return fmt.Errorf("step %d: %w", r.cursor, err)
		}
	default:
		return fmt.Errorf("step %d: %w %q", r.cursor, ErrUnknownAction, st.Action)
	}
	return nil
}

func (r *ScriptRunner) frame() Frame {
	f := Frame{Methods: make([]InputMethod, len(r.methods))}
	copy(f.Methods, r.methods)
	for id, w := range r.anchors {
		f.SetAnchor(id, w)
	}
	return f
}

func (r *ScriptRunner) setMethod(m InputMethod) {
	for i := range r.methods {
		if r.methods[i].ID == m.ID {
			r.methods[i] = m
			return
		}
	}
	r.methods = append(r.methods, m)
}

func (r *ScriptRunner) removeMethod(id EntityID) {
	for i := range r.methods {
		if r.methods[i].ID == id {
			r.methods = append(r.methods[:i], r.methods[i+1:]...)
			return
		}
	}
}

func (r *ScriptRunner) clearScroll() {
	for i := range r.methods {
		if g, ok := r.methods[i].Gesture.(MouseGesture); ok {
			g.Scroll = mgl64.Vec2{}
			r.methods[i].Gesture = g
		}
	}
}

func (st scriptStep) method() (InputMethod, error) {
	if st.ID == 0 {
		return InputMethod{}, ErrInvalidID
	}
	p := vec3(st.Pos)
	m := InputMethod{
		ID:      st.ID,
		Pose:    TransformFromTranslation(p[0], p[1], p[2]),
		Pointer: st.Pointer,
	}
	switch st.Kind {
	case "hand":
		radius := st.Radius
		if radius == 0 {
			radius = DefaultTipRadius
		}
		m.Gesture = HandGesture{
			Thumb: Joint{Pos: vec3(st.Thumb), Radius: radius},
			Index: Joint{Pos: vec3(st.Index), Radius: radius},
		}
	case "controller":
		m.Gesture = ControllerGesture{Squeezed: st.Squeeze}
	case "mouse":
		g := MouseGesture{LeftPressed: st.Left}
		if st.Scroll != nil {
			g.Scroll = mgl64.Vec2{st.Scroll[0], st.Scroll[1]}
		}
		m.Gesture = g
	case "", "none":
	default:
		return InputMethod{}, fmt.Errorf("method %d: unknown kind %q", st.ID, st.Kind)
	}
	return m, nil
}

func (st scriptStep) check(s *System) error {
	h, ok := s.Handler(st.Handler)
	if !ok {
		return fmt.Errorf("expect handler %d: %w", st.Handler, ErrUnknownHandler)
	}
	if st.State != "" && h.State().String() != st.State {
		return fmt.Errorf("%w: handler %d state %s, want %s", ErrExpectation, h.ID, h.State(), st.State)
	}
	if st.Captured != nil && h.CapturedBy() != *st.Captured {
		return fmt.Errorf("%w: handler %d captured by %d, want %d", ErrExpectation, h.ID, h.CapturedBy(), *st.Captured)
	}
	if st.Local != nil {
		want := vec3(st.Local)
		got := h.Local.Translation
		for i := 0; i < 3; i++ {
			if math.Abs(got[i]-want[i]) > scriptTolerance {
				return fmt.Errorf("%w: handler %d local %v, want %v", ErrExpectation, h.ID, got, want)
			}
		}
	}
	return nil
}

func vec3(p *[3]float64) mgl64.Vec3 {
	if p == nil {
		return mgl64.Vec3{}
	}
	return mgl64.Vec3{p[0], p[1], p[2]}
}
