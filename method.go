package grasp

import "github.com/go-gl/mathgl/mgl64"

// forward is the direction a pose looks along when its rotation is identity.
var forward = mgl64.Vec3{0, 0, -1}

// Joint is a tracked hand joint: a world-space position and the radius of
// the bone capsule at that joint.
type Joint struct {
	Pos    mgl64.Vec3
	Radius float64
}

// Gesture is the variant-specific gesture channel of an input method.
// The concrete types are HandGesture, ControllerGesture and MouseGesture.
type Gesture interface {
	Kind() MethodKind
	gesture()
}

// HandGesture carries the thumb and index fingertips of a tracked hand.
type HandGesture struct {
	Thumb Joint
	Index Joint
}

// ControllerGesture carries the squeeze (grip) state of an XR controller.
type ControllerGesture struct {
	Squeezed bool
}

// MouseGesture carries the left button state and the discrete scroll delta
// accumulated since the previous frame.
type MouseGesture struct {
	LeftPressed bool
	Scroll      mgl64.Vec2
}

func (HandGesture) Kind() MethodKind       { return MethodHand }
func (ControllerGesture) Kind() MethodKind { return MethodController }
func (MouseGesture) Kind() MethodKind      { return MethodMouse }

func (HandGesture) gesture()       {}
func (ControllerGesture) gesture() {}
func (MouseGesture) gesture()      {}

// InputMethod is one frame's reading of a pointing source.
type InputMethod struct {
	ID EntityID
	// Pose is the method's world transform. Its translation is the pointer
	// location used for proximity tests; pointer methods aim along the
	// pose's -Z. A zero Scale or Rotation reads as unit scale or identity
	// rotation, so Transform{Translation: p} is a valid pose.
	Pose Transform
	// Pointer marks ray-style methods (lasers, window pointers) that may
	// capture without being near a field.
	Pointer bool
	// Gesture is nil when the method has no gesture channel.
	Gesture Gesture
}

// Kind returns the kind of the method's gesture channel.
func (m InputMethod) Kind() MethodKind {
	if m.Gesture == nil {
		return MethodNone
	}
	return m.Gesture.Kind()
}

// Location returns the pointer location in world space.
func (m InputMethod) Location() mgl64.Vec3 {
	return m.Pose.Translation
}

// Ray returns the pointer ray: the pose position and the pose's forward
// (-Z) direction.
func (m InputMethod) Ray() (origin, dir mgl64.Vec3) {
	rot := m.Pose.Rotation
	if rot == (mgl64.Quat{}) {
		rot = mgl64.QuatIdent()
	}
	return m.Pose.Translation, rot.Normalize().Rotate(forward)
}

// Mouse returns the method's mouse gesture, if it has one.
func (m InputMethod) Mouse() (MouseGesture, bool) {
	g, ok := m.Gesture.(MouseGesture)
	return g, ok
}

// FingerSeparation reports whether the thumb and index tips are within
// maxSeparation of touching: the tip distance is less than the sum of both
// tip radii plus maxSeparation.
func FingerSeparation(hand HandGesture, maxSeparation float64) bool {
	return hand.Thumb.Pos.Sub(hand.Index.Pos).Len() <
		hand.Index.Radius+hand.Thumb.Radius+maxSeparation
}

// isGrabbing evaluates the un-scaled gesture test: pinch within
// separation, controller squeeze, or left mouse button.
func isGrabbing(g Gesture, separation float64) bool {
	switch g := g.(type) {
	case HandGesture:
		return FingerSeparation(g, separation)
	case ControllerGesture:
		return g.Squeezed
	case MouseGesture:
		return g.LeftPressed
	case nil:
		return false
	default:
		panic("grasp: unknown gesture type")
	}
}
