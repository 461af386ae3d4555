package grasp

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// debugStats holds per-frame timing and arbitration counts.
// Only populated when System.debug is true.
type debugStats struct {
	arbitrateTime time.Duration
	resolveTime   time.Duration
	stepTime      time.Duration
	pairs         int
	grants        int
	committed     int
}

// debugLog writes frame stats at debug level.
func (s *System) debugLog(stats debugStats) {
	l := s.debugLogger()
	if l == nil {
		return
	}
	l.Debug("grasp frame",
		"frame", s.frame,
		"arbitrate", stats.arbitrateTime,
		"resolve", stats.resolveTime,
		"step", stats.stepTime,
		"pairs", stats.pairs,
		"grants", stats.grants,
		"committed", stats.committed,
	)
}

// logEvent writes a lifecycle event at debug level. No-op outside debug mode.
func (s *System) logEvent(ev Event) {
	l := s.debugLogger()
	if l == nil {
		return
	}
	l.Debug("grasp event",
		"type", ev.Type.String(),
		"handler", uint64(ev.Handler),
		"method", uint64(ev.Method),
		"kind", ev.Kind.String(),
		"frame", ev.Frame,
	)
}

// debugLogger returns the logger to use for debug output, or nil when
// debug mode is off or the logger drops debug records.
func (s *System) debugLogger() *slog.Logger {
	if !s.debug {
		return nil
	}
	l := s.logger
	if l == nil {
		l = slog.Default()
	}
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		return nil
	}
	return l
}

// debugOwnerConflict panics when a second input method tries to own a
// handler. Arbitration refuses that by construction, so reaching this is a
// logic fault. Only called in debug mode; release mode keeps the first owner.
func debugOwnerConflict(h *Handler, method EntityID) {
	panic(fmt.Sprintf("grasp debug: handler %q (ID %d) already captured by %d, refusing %d",
		h.Name, h.ID, h.captured, method))
}

// debugMaxHierarchyDepth is the handler chain length above which SetParent
// warns in debug mode.
const debugMaxHierarchyDepth = 32

// debugCheckHierarchyDepth warns when h sits deeper than
// debugMaxHierarchyDepth handlers.
func (s *System) debugCheckHierarchyDepth(h *Handler) {
	depth := 0
	for p := h; p != nil && depth <= len(s.order); p = s.byID[p.parent] {
		depth++
	}
	if depth <= debugMaxHierarchyDepth {
		return
	}
	l := s.logger
	if l == nil {
		l = slog.Default()
	}
	l.Warn("grasp: handler hierarchy too deep", "handler", h.Name, "depth", depth, "max", debugMaxHierarchyDepth)
}
