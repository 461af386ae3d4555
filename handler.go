package grasp

// Handler is a capturable object. The host owns its identity and field; the
// System owns its capture ownership and grab offset, and rewrites Local
// while it is grabbed.
type Handler struct {
	// Identity
	ID   EntityID
	Name string

	// Local is the transform relative to the parent (or the world when the
	// handler has no parent).
	Local Transform

	// Field is the proximity volume tested against input methods. A nil
	// field behaves like PointField.
	Field Field

	// Condition overrides DefaultCaptureCondition for this handler.
	Condition CaptureCondition

	// Metadata
	UserData any

	// OnEvent, when set, receives this handler's capture lifecycle events
	// after the System-level callbacks.
	OnEvent func(Event)

	parent     EntityID
	captured   EntityID
	capturedAt uint64 // System frame of the capture
	offset     *Transform
	world      Transform
	system     *System
}

// NewHandler creates a handler at the identity transform.
func NewHandler(id EntityID, name string, field Field) *Handler {
	return &Handler{
		ID:    id,
		Name:  name,
		Local: IdentityTransform,
		Field: field,
		world: IdentityTransform,
	}
}

// Parent returns the parent entity, or 0.
func (h *Handler) Parent() EntityID {
	return h.parent
}

// CapturedBy returns the input method owning this handler, or 0.
func (h *Handler) CapturedBy() EntityID {
	return h.captured
}

// IsCaptured reports whether an input method owns this handler.
func (h *Handler) IsCaptured() bool {
	return h.captured != 0
}

// State returns Grabbed while a grab offset is held, Idle otherwise.
func (h *Handler) State() GrabState {
	if h.offset != nil {
		return StateGrabbed
	}
	return StateIdle
}

// GrabOffset returns the offset recorded at grab time. ok is false while Idle.
func (h *Handler) GrabOffset() (offset Transform, ok bool) {
	if h.offset == nil {
		return Transform{}, false
	}
	return *h.offset, true
}

// WorldTransform returns the world transform computed by the last Update.
func (h *Handler) WorldTransform() Transform {
	return h.world
}

// capture records method as the owner. A handler already owned by a
// different method keeps its first owner; in debug mode that is a panic.
// Update reaches the conflict only when a custom CaptureCondition grants a
// handler that was owned before the frame began.
func (h *Handler) capture(method EntityID, debug bool) bool {
	if h.captured != 0 && h.captured != method {
		if debug {
			debugOwnerConflict(h, method)
		}
		return false
	}
	h.captured = method
	return true
}

// grab enters Grabbed with the given offset.
func (h *Handler) grab(offset Transform) {
	h.offset = &offset
}

// release returns to Idle and clears ownership.
func (h *Handler) release() {
	h.captured = 0
	h.offset = nil
}
