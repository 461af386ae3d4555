package grasp

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"
)

// Sentinel errors returned by System methods.
var (
	ErrInvalidID        = errors.New("grasp: invalid entity id")
	ErrDuplicateHandler = errors.New("grasp: duplicate handler")
	ErrUnknownHandler   = errors.New("grasp: unknown handler")
	ErrParentCycle      = errors.New("grasp: parent cycle")
)

// grant is one positive capture decision awaiting global resolution.
type grant struct {
	handler  *Handler
	method   int // index into Frame.Methods
	distance float64
	// depth is the ray parameter of the contact for pointer methods; it
	// breaks distance ties so the nearest hit along the ray wins.
	depth float64
}

// System owns the handler arena and runs capture arbitration, the grab state
// machine and the transform update once per frame. It is not safe for
// concurrent use; call Update from the frame loop.
type System struct {
	cfg    Config
	debug  bool
	logger *slog.Logger
	frame  uint64

	// Arena
	byID  map[EntityID]*Handler
	order []*Handler // insertion order

	// Parent-before-child traversal order, rebuilt when the hierarchy changes.
	sorted      []*Handler
	sortedDirty bool

	// Events
	handlers handlerRegistry
	sink     EventSink

	// Per-frame scratch
	grants      []grant
	methods     []InputMethod
	methodIndex map[EntityID]int
	methodOwner map[EntityID]EntityID
}

// NewSystem creates an empty System with the given configuration.
func NewSystem(cfg Config) *System {
	return &System{
		cfg:         cfg,
		debug:       cfg.Debug,
		byID:        make(map[EntityID]*Handler),
		methodIndex: make(map[EntityID]int),
		methodOwner: make(map[EntityID]EntityID),
	}
}

// Config returns the System's configuration.
func (s *System) Config() Config {
	return s.cfg
}

// Frame returns the number of completed Update calls.
func (s *System) Frame() uint64 {
	return s.frame
}

// AddHandler registers h. The handler's ID must be nonzero and unused.
func (s *System) AddHandler(h *Handler) error {
	if h == nil || h.ID == 0 {
		return ErrInvalidID
	}
	if _, ok := s.byID[h.ID]; ok {
		return fmt.Errorf("add handler %d: %w", h.ID, ErrDuplicateHandler)
	}
	if h.system != nil && h.system != s {
		return fmt.Errorf("add handler %d: already registered with another system: %w", h.ID, ErrDuplicateHandler)
	}
	if h.parent != 0 && s.createsCycle(h.ID, h.parent) {
		return fmt.Errorf("add handler %d under %d: %w", h.ID, h.parent, ErrParentCycle)
	}
	h.system = s
	s.byID[h.ID] = h
	s.order = append(s.order, h)
	s.sortedDirty = true
	return nil
}

// RemoveHandler unregisters a handler. Ownership, grab state and the
// handler's own parent link are dropped silently; children keep their
// parent ID and resolve it against the frame's anchors from then on.
// It is safe to call from an event callback during Update.
func (s *System) RemoveHandler(id EntityID) error {
	h, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("remove handler %d: %w", id, ErrUnknownHandler)
	}
	h.release()
	h.system = nil
	h.parent = 0
	delete(s.byID, id)
	for i, o := range s.order {
		if o == h {
			copy(s.order[i:], s.order[i+1:])
			s.order[len(s.order)-1] = nil
			s.order = s.order[:len(s.order)-1]
			break
		}
	}
	s.sortedDirty = true
	return nil
}

// SetParent sets the parent of handler id. The parent may be another
// handler or an external anchor supplied through Frame.Anchors; 0 clears
// it. Parenting a handler under its own descendant fails with
// ErrParentCycle.
func (s *System) SetParent(id, parent EntityID) error {
	h, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("set parent of %d: %w", id, ErrUnknownHandler)
	}
	if s.createsCycle(id, parent) {
		return fmt.Errorf("set parent of %d to %d: %w", id, parent, ErrParentCycle)
	}
	h.parent = parent
	s.sortedDirty = true
	if s.debug {
		s.debugCheckHierarchyDepth(h)
	}
	return nil
}

// createsCycle reports whether parenting id under parent would close a
// loop. The walk stops at the first ID that is not a handler and at any
// ID seen twice.
func (s *System) createsCycle(id, parent EntityID) bool {
	seen := make(map[EntityID]struct{})
	for p := parent; p != 0; {
		if p == id {
			return true
		}
		if _, dup := seen[p]; dup {
			return true
		}
		seen[p] = struct{}{}
		ph, ok := s.byID[p]
		if !ok {
			return false
		}
		p = ph.parent
	}
	return false
}

// Handler returns the handler registered under id.
func (s *System) Handler(id EntityID) (*Handler, bool) {
	h, ok := s.byID[id]
	return h, ok
}

// Handlers returns the handlers in insertion order. The returned slice MUST
// NOT be mutated by the caller.
func (s *System) Handlers() []*Handler {
	return s.order
}

// CapturedBy returns the input method owning handler id, if any.
func (s *System) CapturedBy(id EntityID) (EntityID, bool) {
	h, ok := s.byID[id]
	if !ok || h.captured == 0 {
		return 0, false
	}
	return h.captured, true
}

// WorldTransform returns the world transform of handler id as of the last
// Update.
func (s *System) WorldTransform(id EntityID) (Transform, bool) {
	h, ok := s.byID[id]
	if !ok {
		return Transform{}, false
	}
	return h.world, true
}

// IsGrabbed reports whether handler id is currently Grabbed.
func (s *System) IsGrabbed(id EntityID) bool {
	h, ok := s.byID[id]
	return ok && h.offset != nil
}

// Update runs one frame: world transforms are refreshed, every
// (handler, method) pair is arbitrated, grants are resolved globally, and
// only then does the grab state machine commit transitions and move
// grabbed handlers.
func (s *System) Update(f Frame) {
	s.frame++

	// Readings are copied so poses can be normalized without touching the
	// caller's slice.
	s.methods = append(s.methods[:0], f.Methods...)
	for i := range s.methods {
		s.methods[i].Pose = s.methods[i].Pose.asPose()
	}
	f.Methods = s.methods

	clear(s.methodIndex)
	for i := range f.Methods {
		if _, dup := s.methodIndex[f.Methods[i].ID]; !dup {
			s.methodIndex[f.Methods[i].ID] = i
		}
	}

	order := s.traversalOrder()
	for _, h := range order {
		h.world = s.parentWorld(h, f).Mul(h.Local)
	}

	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	s.arbitrate(f)
	if s.debug {
		stats.arbitrateTime = time.Since(t0)
		stats.pairs = len(s.order) * len(f.Methods)
		stats.grants = len(s.grants)
		t0 = time.Now()
	}
	stats.committed = s.resolve(f)
	if s.debug {
		stats.resolveTime = time.Since(t0)
		t0 = time.Now()
	}

	for _, h := range order {
		// Callbacks may have removed it earlier in this frame.
		if h.system != s {
			continue
		}
		// Parents were processed first; pick up any movement they made.
		h.world = s.parentWorld(h, f).Mul(h.Local)
		s.step(h, f)
	}

	if s.debug {
		stats.stepTime = time.Since(t0)
		s.debugLog(stats)
	}
}

// arbitrate evaluates every (handler, method) pair and records positive
// decisions without committing any of them. Pointer methods are measured
// from their ray; all others from their pose position.
func (s *System) arbitrate(f Frame) {
	s.grants = s.grants[:0]
	for _, h := range s.order {
		cond := h.Condition
		if cond == nil {
			cond = DefaultCaptureCondition
		}
		field := h.Field
		if field == nil {
			field = PointField{}
		}
		for mi := range f.Methods {
			m := f.Methods[mi]
			ctx := CaptureContext{
				Handler:         h.ID,
				Captured:        h.captured,
				Method:          m,
				HandlerLocation: h.world,
				Config:          s.cfg,
			}
			var depth float64
			if m.Pointer {
				origin, dir := m.Ray()
				ctx.MethodLocation, ctx.ClosestPoint, depth = RayContact(field, h.world, origin, dir, s.cfg.RayLength)
			} else {
				ctx.MethodLocation = m.Location()
				ctx.ClosestPoint = field.ClosestPoint(h.world, ctx.MethodLocation)
			}
			if cond(ctx) {
				s.grants = append(s.grants, grant{handler: h, method: mi, distance: ctx.Distance(), depth: depth})
			}
		}
	}
}

// resolve commits grants nearest first, then nearest along the ray. A
// handler takes at most one method and a method owns at most one handler.
// Remaining ties keep handler insertion order, then method order. Returns
// the number of grants committed.
func (s *System) resolve(f Frame) int {
	clear(s.methodOwner)
	for _, h := range s.order {
		if h.captured != 0 {
			s.methodOwner[h.captured] = h.ID
		}
	}

	slices.SortStableFunc(s.grants, func(a, b grant) int {
		if c := cmp.Compare(a.distance, b.distance); c != 0 {
			return c
		}
		return cmp.Compare(a.depth, b.depth)
	})
	committed := 0
	for _, g := range s.grants {
		h := g.handler
		m := f.Methods[g.method]
		if h.system != s {
			continue
		}
		if h.captured != 0 {
			if h.capturedAt != s.frame {
				// Owned before this frame: only a condition that ignores
				// CaptureContext.Captured gets here.
				h.capture(m.ID, s.debug)
			}
			continue
		}
		if _, owns := s.methodOwner[m.ID]; owns {
			continue
		}
		if !h.capture(m.ID, s.debug) {
			continue
		}
		h.capturedAt = s.frame
		s.methodOwner[m.ID] = h.ID
		committed++
		s.fire(EventCapture, h, m)
	}
	return committed
}

// step runs the grab state machine and the transform update for one handler.
func (s *System) step(h *Handler, f Frame) {
	if h.captured == 0 {
		return
	}
	idx, ok := s.methodIndex[h.captured]
	if !ok {
		lost := InputMethod{ID: h.captured}
		h.release()
		s.fire(EventCaptureLost, h, lost)
		return
	}
	m := f.Methods[idx]
	wasGrabbed := h.offset != nil
	grabbing := isGrabbing(m.Gesture, s.cfg.GrabSeparation)

	switch {
	case !wasGrabbed && grabbing:
		h.grab(TransformFromMat4(m.Pose.Mat4().Inv().Mul4(h.world.Mat4())))
		s.fire(EventGrabStart, h, m)
		if h.system != s || h.offset == nil {
			return
		}
	case wasGrabbed && !grabbing:
		h.release()
		s.fire(EventGrabEnd, h, m)
		return
	case !wasGrabbed && !grabbing:
		h.release()
		s.fire(EventRelease, h, m)
		return
	}

	if wasGrabbed {
		if mouse, ok := m.Mouse(); ok && mouse.Scroll[1] != 0 {
			h.offset.Translation[2] += mouse.Scroll[1] * s.cfg.ScrollStep
		}
	}

	parent := s.parentWorld(h, f)
	target := m.Pose.Mul(*h.offset)
	h.Local = TransformFromMat4(parent.Mat4().Inv().Mul4(target.Mat4()))
	h.world = parent.Mul(h.Local)
}

// parentWorld resolves the world transform of h's parent: a handler's
// current world transform, a frame anchor, or the identity.
func (s *System) parentWorld(h *Handler, f Frame) Transform {
	if h.parent == 0 {
		return IdentityTransform
	}
	if p, ok := s.byID[h.parent]; ok {
		return p.world
	}
	if w, ok := f.Anchors[h.parent]; ok {
		return w
	}
	return IdentityTransform
}

// traversalOrder returns handlers with every parent handler before its
// children, preserving insertion order among siblings.
func (s *System) traversalOrder() []*Handler {
	if !s.sortedDirty && len(s.sorted) == len(s.order) {
		return s.sorted
	}
	children := make(map[EntityID][]*Handler, len(s.order))
	var roots []*Handler
	for _, h := range s.order {
		if _, ok := s.byID[h.parent]; ok && h.parent != 0 {
			children[h.parent] = append(children[h.parent], h)
		} else {
			roots = append(roots, h)
		}
	}
	s.sorted = s.sorted[:0]
	visited := make(map[*Handler]struct{}, len(s.order))
	var visit func(h *Handler)
	visit = func(h *Handler) {
		if _, ok := visited[h]; ok {
			return
		}
		visited[h] = struct{}{}
		s.sorted = append(s.sorted, h)
		for _, c := range children[h.ID] {
			visit(c)
		}
	}
	for _, r := range roots {
		visit(r)
	}
	// Handlers on a parent loop have no root; keep them in insertion order.
	for _, h := range s.order {
		visit(h)
	}
	s.sortedDirty = false
	return s.sorted
}

// SetDebugMode enables or disables debug mode. When enabled, ownership
// conflicts panic and every lifecycle event is logged at debug level.
func (s *System) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// SetLogger sets the logger used in debug mode. nil restores slog.Default.
func (s *System) SetLogger(l *slog.Logger) {
	s.logger = l
}
