package grasp

import "github.com/go-gl/mathgl/mgl64"

// CaptureContext is the input to a capture decision for one
// (handler, input method) pair.
type CaptureContext struct {
	Handler EntityID
	// Captured is the input method currently owning the handler, or 0.
	Captured EntityID
	Method   InputMethod
	// ClosestPoint is the point on the handler's field nearest to the
	// method's pointer location.
	ClosestPoint mgl64.Vec3
	// MethodLocation is the method's pointer location in world space.
	MethodLocation mgl64.Vec3
	// HandlerLocation is the handler's world transform.
	HandlerLocation Transform
	// Config holds the thresholds of the running System.
	Config Config
}

// Distance returns the distance between the field and the pointer.
func (c CaptureContext) Distance() float64 {
	return c.ClosestPoint.Sub(c.MethodLocation).Len()
}

// CaptureCondition decides whether an input method should capture a
// handler this frame. Handlers may install their own; nil selects
// DefaultCaptureCondition.
type CaptureCondition func(ctx CaptureContext) bool

// DefaultCaptureCondition is the grab capture rule.
//
// A handler that is already owned never captures again. Otherwise the
// method is eligible when it touches the field, or, for a hand, when it is
// within PinchReach and pinching with the wider PinchStartScale tolerance.
// An eligible method captures only if its gesture is active at the normal
// tolerance. Ineligible pointer methods fall back to ray capture: mouse
// pointers need the left button, other pointers always capture.
func DefaultCaptureCondition(ctx CaptureContext) bool {
	if ctx.Captured != 0 {
		return false
	}
	cfg := ctx.Config
	distance := ctx.Distance()

	capture := distance <= cfg.CaptureDistance
	if hand, ok := ctx.Method.Gesture.(HandGesture); ok && distance < cfg.PinchReach {
		capture = capture || FingerSeparation(hand, cfg.GrabSeparation*cfg.PinchStartScale)
	}
	if capture {
		return isGrabbing(ctx.Method.Gesture, cfg.GrabSeparation)
	}

	if ctx.Method.Pointer {
		if mouse, ok := ctx.Method.Mouse(); ok {
			return mouse.LeftPressed
		}
		return true
	}
	return false
}
