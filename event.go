package grasp

// Event describes one capture lifecycle transition.
type Event struct {
	Type    EventType
	Handler EntityID
	Method  EntityID
	Kind    MethodKind
	// Offset is the grab offset (valid for EventGrabStart).
	Offset Transform
	// Frame is the System frame counter at which the event fired.
	Frame    uint64
	UserData any
}

// EventSink is the interface for optional ECS integration.
// When set on a System, every event is forwarded to it.
type EventSink interface {
	EmitEvent(event Event)
}

type eventHandler struct {
	id uint32
	fn func(Event)
}

type handlerRegistry struct {
	byType [EventRelease + 1][]eventHandler
	any    []eventHandler
	nextID uint32
}

// CallbackHandle allows removing a registered System-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
	all   bool
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	if h.all {
		h.reg.any = removeEventHandler(h.reg.any, h.id)
		return
	}
	if int(h.event) < len(h.reg.byType) {
		h.reg.byType[h.event] = removeEventHandler(h.reg.byType[h.event], h.id)
	}
}

func removeEventHandler(s []eventHandler, id uint32) []eventHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = eventHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// On registers a System-level callback for one event type.
func (s *System) On(event EventType, fn func(Event)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	if int(event) < len(s.handlers.byType) {
		s.handlers.byType[event] = append(s.handlers.byType[event], eventHandler{id: id, fn: fn})
	}
	return CallbackHandle{id: id, reg: &s.handlers, event: event}
}

// OnAny registers a System-level callback for every event.
func (s *System) OnAny(fn func(Event)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.any = append(s.handlers.any, eventHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, all: true}
}

// OnGrabStart is shorthand for On(EventGrabStart, fn).
func (s *System) OnGrabStart(fn func(Event)) CallbackHandle {
	return s.On(EventGrabStart, fn)
}

// OnGrabEnd is shorthand for On(EventGrabEnd, fn).
func (s *System) OnGrabEnd(fn func(Event)) CallbackHandle {
	return s.On(EventGrabEnd, fn)
}

// SetEventSink sets the optional ECS bridge.
func (s *System) SetEventSink(sink EventSink) {
	s.sink = sink
}

// fire dispatches an event: System-level callbacks first, then the
// handler's own callback, then the sink.
func (s *System) fire(typ EventType, h *Handler, m InputMethod) {
	ev := Event{
		Type:     typ,
		Handler:  h.ID,
		Method:   m.ID,
		Kind:     m.Kind(),
		Frame:    s.frame,
		UserData: h.UserData,
	}
	if off, ok := h.GrabOffset(); ok {
		ev.Offset = off
	}
	s.logEvent(ev)

	for _, eh := range s.handlers.byType[typ] {
		eh.fn(ev)
	}
	for _, eh := range s.handlers.any {
		eh.fn(ev)
	}
	if h.OnEvent != nil {
		h.OnEvent(ev)
	}
	if s.sink != nil {
		s.sink.EmitEvent(ev)
	}
}
