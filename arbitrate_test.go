package grasp

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// hand returns a hand gesture with tips aperture apart along Z.
func hand(aperture float64) HandGesture {
	return HandGesture{
		Thumb: Joint{Pos: mgl64.Vec3{0, 0, 0}, Radius: 0.01},
		Index: Joint{Pos: mgl64.Vec3{0, 0, aperture}, Radius: 0.01},
	}
}

// ctxAt builds a capture context for a method distance away from the
// field's closest point.
func ctxAt(distance float64, m InputMethod) CaptureContext {
	m.Pose = TransformFromTranslation(distance, 0, 0)
	return CaptureContext{
		Handler:         10,
		Method:          m,
		ClosestPoint:    mgl64.Vec3{0, 0, 0},
		MethodLocation:  m.Location(),
		HandlerLocation: IdentityTransform,
		Config:          DefaultConfig(),
	}
}

func TestFingerSeparation(t *testing.T) {
	tests := []struct {
		name     string
		aperture float64
		sep      float64
		want     bool
	}{
		{"touching", 0, GrabSeparation, true},
		{"0.014 < 0.025", 0.014, GrabSeparation, true},
		{"0.03 >= 0.025", 0.03, GrabSeparation, false},
		{"0.026 with start scale", 0.026, GrabSeparation * DefaultPinchStartScale, true},
		{"0.026 without start scale", 0.026, GrabSeparation, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FingerSeparation(hand(tt.aperture), tt.sep); got != tt.want {
				t.Errorf("FingerSeparation(aperture %v, sep %v) = %v, want %v", tt.aperture, tt.sep, got, tt.want)
			}
		})
	}
}

func TestDefaultCaptureCondition(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		method   InputMethod
		want     bool
	}{
		{"controller touching squeezed", 0, InputMethod{Gesture: ControllerGesture{Squeezed: true}}, true},
		{"controller touching not squeezed", 0, InputMethod{Gesture: ControllerGesture{}}, false},
		{"controller at threshold squeezed", 0.001, InputMethod{Gesture: ControllerGesture{Squeezed: true}}, true},
		{"controller beyond threshold squeezed", 0.002, InputMethod{Gesture: ControllerGesture{Squeezed: true}}, false},
		{"no gesture touching", 0, InputMethod{}, false},

		{"hand in reach pinched", 0.05, InputMethod{Gesture: hand(0.014)}, true},
		{"hand in reach only start-pinched", 0.05, InputMethod{Gesture: hand(0.026)}, false},
		{"hand in reach open", 0.05, InputMethod{Gesture: hand(0.05)}, false},
		{"hand out of reach pinched", 0.1, InputMethod{Gesture: hand(0.014)}, false},
		{"hand touching pinched", 0, InputMethod{Gesture: hand(0.014)}, true},

		{"mouse pointer far pressed", 5, InputMethod{Pointer: true, Gesture: MouseGesture{LeftPressed: true}}, true},
		{"mouse pointer far released", 5, InputMethod{Pointer: true, Gesture: MouseGesture{}}, false},
		{"mouse pointer touching released", 0, InputMethod{Pointer: true, Gesture: MouseGesture{}}, false},
		{"plain pointer far", 5, InputMethod{Pointer: true}, true},
		{"controller pointer far unsqueezed", 5, InputMethod{Pointer: true, Gesture: ControllerGesture{}}, true},
		{"mouse non-pointer far pressed", 5, InputMethod{Gesture: MouseGesture{LeftPressed: true}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultCaptureCondition(ctxAt(tt.distance, tt.method)); got != tt.want {
				t.Errorf("DefaultCaptureCondition = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultCaptureCondition_RefusesOwnedHandler(t *testing.T) {
	ctx := ctxAt(0, InputMethod{Gesture: ControllerGesture{Squeezed: true}})
	ctx.Captured = 3
	if DefaultCaptureCondition(ctx) {
		t.Error("owned handler must refuse a second capture")
	}

	ptr := ctxAt(5, InputMethod{Pointer: true})
	ptr.Captured = 3
	if DefaultCaptureCondition(ptr) {
		t.Error("owned handler must refuse pointer fallback too")
	}
}

func TestDefaultCaptureCondition_UsesConfig(t *testing.T) {
	ctx := ctxAt(0.05, InputMethod{Gesture: ControllerGesture{Squeezed: true}})
	if DefaultCaptureCondition(ctx) {
		t.Fatal("default capture distance should reject 0.05")
	}
	ctx.Config.CaptureDistance = 0.1
	if !DefaultCaptureCondition(ctx) {
		t.Error("widened capture distance should accept 0.05")
	}
}

func TestCaptureContextDistance(t *testing.T) {
	ctx := CaptureContext{ClosestPoint: mgl64.Vec3{1, 0, 0}, MethodLocation: mgl64.Vec3{1, 3, 4}}
	assertNear(t, "distance", ctx.Distance(), 5)
}
