package grasp

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

type fakePointer struct {
	x, y   float64
	left   bool
	wx, wy float64
}

func (p *fakePointer) CursorPosition() (float64, float64) { return p.x, p.y }
func (p *fakePointer) LeftPressed() bool                  { return p.left }
func (p *fakePointer) Wheel() (float64, float64)          { return p.wx, p.wy }

type fakePad struct {
	connected bool
	squeeze   float64
}

func (p *fakePad) Squeeze(int) (float64, bool) { return p.squeeze, p.connected }
func (p *fakePad) Stick(int) (float64, float64) { return 0, 0 }

func TestScreenToRay_Center(t *testing.T) {
	cam := NewRayCamera(800, 600)
	origin, dir, ok := cam.ScreenToRay(400, 300)
	if !ok {
		t.Fatal("ScreenToRay failed")
	}
	assertVec(t, "origin", origin, mgl64.Vec3{0, 0, -0.01})
	assertVec(t, "dir", dir, mgl64.Vec3{0, 0, -1})
}

func TestScreenToRay_TopLeft(t *testing.T) {
	cam := NewRayCamera(800, 600)
	_, dir, ok := cam.ScreenToRay(0, 0)
	if !ok {
		t.Fatal("ScreenToRay failed")
	}
	if dir[0] >= 0 || dir[1] <= 0 || dir[2] >= 0 {
		t.Errorf("top-left ray = %v, want -x +y -z", dir)
	}
}

func TestScreenToRay_MovedEye(t *testing.T) {
	cam := NewRayCamera(800, 600)
	cam.Eye = TransformFromTranslation(0, 0, 5)
	origin, dir, ok := cam.ScreenToRay(400, 300)
	if !ok {
		t.Fatal("ScreenToRay failed")
	}
	assertVec(t, "origin", origin, mgl64.Vec3{0, 0, 4.99})
	assertVec(t, "dir", dir, mgl64.Vec3{0, 0, -1})
}

func TestScreenToRay_EmptyViewport(t *testing.T) {
	cam := NewRayCamera(0, 0)
	if _, _, ok := cam.ScreenToRay(0, 0); ok {
		t.Error("empty viewport should fail")
	}
}

func TestMouseReader(t *testing.T) {
	src := &fakePointer{x: 400, y: 300, left: true, wy: 2}
	r := &MouseReader{ID: 7, Camera: NewRayCamera(800, 600), Source: src}

	var f Frame
	r.Read(&f)
	m, ok := f.Method(7)
	if !ok {
		t.Fatal("mouse reading missing")
	}
	if !m.Pointer || m.Kind() != MethodMouse {
		t.Errorf("pointer = %v, kind = %v", m.Pointer, m.Kind())
	}
	g, _ := m.Mouse()
	if !g.LeftPressed || g.Scroll[1] != 2 {
		t.Errorf("gesture = %+v", g)
	}
	assertVec(t, "look direction", m.Pose.Rotation.Rotate(forward), mgl64.Vec3{0, 0, -1})

	empty := &MouseReader{ID: 8}
	empty.Read(&f)
	if len(f.Methods) != 1 {
		t.Errorf("reader without camera added a reading: %d", len(f.Methods))
	}
}

func TestControllerReader(t *testing.T) {
	pad := &fakePad{connected: true}
	pose := TransformFromTranslation(1, 2, 3)
	r := &ControllerReader{ID: 3, Source: pad, Pose: func() Transform { return pose }}

	tests := []struct {
		squeeze float64
		want    bool
	}{
		{0, false},
		{0.49, false},
		{DefaultSqueezeThreshold, true},
		{1, true},
	}
	for _, tt := range tests {
		pad.squeeze = tt.squeeze
		f := Collect(r)
		if len(f.Methods) != 1 {
			t.Fatalf("squeeze %v: %d readings", tt.squeeze, len(f.Methods))
		}
		m := f.Methods[0]
		if g := m.Gesture.(ControllerGesture); g.Squeezed != tt.want {
			t.Errorf("squeeze %v: squeezed = %v, want %v", tt.squeeze, g.Squeezed, tt.want)
		}
		assertVec(t, "pose", m.Location(), mgl64.Vec3{1, 2, 3})
	}

	r.Threshold = 0.9
	pad.squeeze = 0.8
	if g := Collect(r).Methods[0].Gesture.(ControllerGesture); g.Squeezed {
		t.Error("custom threshold ignored")
	}

	pad.connected = false
	if f := Collect(r); len(f.Methods) != 0 {
		t.Errorf("disconnected pad produced %d readings", len(f.Methods))
	}
}

func TestCollect(t *testing.T) {
	a := MethodReader(func() (InputMethod, bool) { return InputMethod{ID: 1}, true })
	b := MethodReader(func() (InputMethod, bool) { return InputMethod{}, false })
	c := MethodReader(func() (InputMethod, bool) { return InputMethod{ID: 2}, true })

	f := Collect(a, b, c)
	if len(f.Methods) != 2 || f.Methods[0].ID != 1 || f.Methods[1].ID != 2 {
		t.Errorf("Collect = %+v", f.Methods)
	}
	if _, ok := f.Method(3); ok {
		t.Error("Method(3) should be absent")
	}
}

func TestFrameSetAnchor(t *testing.T) {
	var f Frame
	f.SetAnchor(100, TransformFromTranslation(1, 0, 0))
	if w, ok := f.Anchors[100]; !ok || w.Translation[0] != 1 {
		t.Errorf("anchor = %+v, %v", w, ok)
	}
}

func TestRayRotation(t *testing.T) {
	dirs := []mgl64.Vec3{
		{0, 0, -1},
		{0, 0, 1},
		{1, 0, 0},
		mgl64.Vec3{1, 1, -1}.Normalize(),
	}
	for _, d := range dirs {
		assertVec(t, "rotated forward", rayRotation(d).Rotate(forward), d)
	}
}
