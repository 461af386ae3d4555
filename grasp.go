package grasp

// EntityID identifies a handler, an input method or an external anchor.
// IDs are assigned by the host application and must be stable across frames.
// The zero ID means "none".
type EntityID uint64

// Default arbitration constants, in scene length units (meters).
const (
	// DefaultCaptureDistance is the field distance at or below which an
	// input method is close enough to capture.
	DefaultCaptureDistance = 0.001
	// DefaultPinchReach is the field distance below which a pinching hand
	// may capture even though it is outside DefaultCaptureDistance.
	DefaultPinchReach = 0.1
	// GrabSeparation is the allowed air gap between thumb and index tips
	// for a hand to count as pinching.
	GrabSeparation = 0.005
	// DefaultPinchStartScale widens GrabSeparation when a pinch is used to
	// start a capture from inside DefaultPinchReach.
	DefaultPinchStartScale = 1.5
	// DefaultScrollStep is the depth change per scroll unit while grabbed.
	DefaultScrollStep = 0.1
	// DefaultRayLength is how far pointer rays reach.
	DefaultRayLength = 100.0
)

// MethodKind names the gesture channel carried by an input method.
type MethodKind uint8

const (
	MethodNone       MethodKind = iota // no gesture channel (pose only)
	MethodHand                         // tracked hand, pinch gesture
	MethodController                   // XR controller, squeeze gesture
	MethodMouse                        // mouse, left button and scroll
)

// String returns a short lowercase name.
func (k MethodKind) String() string {
	switch k {
	case MethodHand:
		return "hand"
	case MethodController:
		return "controller"
	case MethodMouse:
		return "mouse"
	default:
		return "none"
	}
}

// GrabState is the state of a handler's grab state machine.
type GrabState uint8

const (
	StateIdle    GrabState = iota // not held
	StateGrabbed                  // moving rigidly with its owning input method
)

// String returns "idle" or "grabbed".
func (s GrabState) String() string {
	if s == StateGrabbed {
		return "grabbed"
	}
	return "idle"
}

// EventType identifies a capture lifecycle event.
type EventType uint8

const (
	EventCapture     EventType = iota // an input method won arbitration for a handler
	EventGrabStart                    // handler entered Grabbed
	EventGrabEnd                      // handler left Grabbed because the gesture ended
	EventCaptureLost                  // owning input method vanished from the frame
	EventRelease                      // ownership dropped without a grab
)

// String returns the event name.
func (e EventType) String() string {
	switch e {
	case EventCapture:
		return "capture"
	case EventGrabStart:
		return "grab_start"
	case EventGrabEnd:
		return "grab_end"
	case EventCaptureLost:
		return "capture_lost"
	case EventRelease:
		return "release"
	default:
		return "unknown"
	}
}
