package grasp

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween/ease"
)

// tweens run in float32
const tweenEpsilon = 1e-6

func assertTween(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > tweenEpsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestSimulatedHand_Gesture(t *testing.T) {
	h := NewSimulatedHand(4, mgl64.Vec3{1, 0, 0}, 0.04)
	g := h.Gesture()
	assertVec(t, "thumb", g.Thumb.Pos, mgl64.Vec3{0.98, 0, 0})
	assertVec(t, "index", g.Index.Pos, mgl64.Vec3{1.02, 0, 0})
	if g.Thumb.Radius != DefaultTipRadius || g.Index.Radius != DefaultTipRadius {
		t.Errorf("radii = %v, %v", g.Thumb.Radius, g.Index.Radius)
	}

	m := h.Method()
	if m.ID != 4 || m.Kind() != MethodHand || m.Pointer {
		t.Errorf("method = %+v", m)
	}
	assertVec(t, "location", m.Location(), mgl64.Vec3{1, 0, 0})
}

func TestSimulatedHand_PinchTo(t *testing.T) {
	h := NewSimulatedHand(4, mgl64.Vec3{}, 0.06)
	h.PinchTo(0.02, 1, nil)

	if h.Update(0.5) {
		t.Error("tween finished early")
	}
	assertTween(t, "aperture at half", h.Aperture, 0.04)

	if !h.Update(0.5) {
		t.Error("tween should be finished")
	}
	assertTween(t, "aperture at end", h.Aperture, 0.02)

	if !h.Update(0.1) {
		t.Error("idle hand should report done")
	}
}

func TestSimulatedHand_MoveTo(t *testing.T) {
	h := NewSimulatedHand(4, mgl64.Vec3{0, 0, 0}, 0.06)
	h.MoveTo(mgl64.Vec3{1, -2, 3}, 2, ease.InOutQuad)

	for i := 0; i < 10; i++ {
		h.Update(0.1)
	}
	assertTween(t, "x at half", h.Position[0], 0.5)

	for !h.Update(0.1) {
	}
	assertTween(t, "x", h.Position[0], 1)
	assertTween(t, "y", h.Position[1], -2)
	assertTween(t, "z", h.Position[2], 3)
}

func TestSimulatedHand_PinchAndCarry(t *testing.T) {
	target := NewHandler(10, "cube", PointField{})
	s := newTestSystem(t, target)

	h := NewSimulatedHand(4, mgl64.Vec3{0.05, 0, 0}, 0.06)
	h.PinchTo(0.01, 1, nil)
	for !h.Update(0.1) {
		s.Update(Collect(h))
	}
	s.Update(Collect(h))
	if target.State() != StateGrabbed || target.CapturedBy() != 4 {
		t.Fatalf("state = %v captured by %d, want grabbed by 4", target.State(), target.CapturedBy())
	}

	h.MoveTo(mgl64.Vec3{1.05, 0, 0}, 1, nil)
	for !h.Update(0.1) {
		s.Update(Collect(h))
	}
	s.Update(Collect(h))
	assertTween(t, "carried x", target.Local.Translation[0], 1)

	h.PinchTo(0.06, 0.2, nil)
	for !h.Update(0.1) {
		s.Update(Collect(h))
	}
	s.Update(Collect(h))
	if target.State() != StateIdle {
		t.Errorf("state = %v, want idle after opening", target.State())
	}
}
