package grasp

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// ---- Debug mode tests ------------------------------------------------------

func bufferLogger(buf *bytes.Buffer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: level}))
}

func TestDebugMode_OwnerConflictPanics(t *testing.T) {
	h := NewHandler(10, "cube", nil)
	h.capture(1, true)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on second owner, got none")
		}
		msg := fmt.Sprint(r)
		if !strings.Contains(msg, "grasp debug") || !strings.Contains(msg, `"cube"`) {
			t.Errorf("panic message = %s", msg)
		}
	}()
	h.capture(2, true)
}

func TestReleaseMode_OwnerConflictNoOp(t *testing.T) {
	h := NewHandler(10, "cube", nil)
	h.capture(1, false)
	if h.capture(2, false) {
		t.Error("second owner accepted")
	}
	if !h.capture(1, false) {
		t.Error("same owner should be accepted again")
	}
}

func TestDebugMode_LogsEventsAndFrames(t *testing.T) {
	var buf bytes.Buffer
	s := newTestSystem(t, handlerAt(10, 0, 0, 0))
	s.SetLogger(bufferLogger(&buf, slog.LevelDebug))
	s.SetDebugMode(true)

	s.Update(frameOf(controllerAt(1, mgl64.Vec3{}, true)))

	out := buf.String()
	for _, want := range []string{"grasp event", "type=capture", "type=grab_start", "grasp frame", "grants=1", "committed=1"} {
		if !strings.Contains(out, want) {
			t.Errorf("debug log missing %q:\n%s", want, out)
		}
	}
}

func TestReleaseMode_NoDebugOutput(t *testing.T) {
	var buf bytes.Buffer
	s := newTestSystem(t, handlerAt(10, 0, 0, 0))
	s.SetLogger(bufferLogger(&buf, slog.LevelDebug))

	s.Update(frameOf(controllerAt(1, mgl64.Vec3{}, true)))
	if buf.Len() != 0 {
		t.Errorf("release mode wrote logs:\n%s", buf.String())
	}
}

func TestDebugMode_LoggerLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	s := newTestSystem(t, handlerAt(10, 0, 0, 0))
	s.SetLogger(bufferLogger(&buf, slog.LevelInfo))
	s.SetDebugMode(true)

	s.Update(frameOf(controllerAt(1, mgl64.Vec3{}, true)))
	if buf.Len() != 0 {
		t.Errorf("info logger received debug records:\n%s", buf.String())
	}
}

func TestDebugMode_HierarchyDepthWarning(t *testing.T) {
	var buf bytes.Buffer
	s := newTestSystem(t)
	s.SetLogger(bufferLogger(&buf, slog.LevelWarn))
	s.SetDebugMode(true)

	for i := EntityID(1); i <= debugMaxHierarchyDepth+2; i++ {
		if err := s.AddHandler(NewHandler(i, fmt.Sprintf("h%d", i), nil)); err != nil {
			t.Fatal(err)
		}
		if i > 1 {
			if err := s.SetParent(i, i-1); err != nil {
				t.Fatal(err)
			}
		}
	}
	if !strings.Contains(buf.String(), "hierarchy too deep") {
		t.Errorf("expected depth warning, got:\n%s", buf.String())
	}
}

func TestDebugMode_ShallowHierarchyNoWarning(t *testing.T) {
	var buf bytes.Buffer
	s := newTestSystem(t, handlerAt(1, 0, 0, 0), handlerAt(2, 0, 0, 0))
	s.SetLogger(bufferLogger(&buf, slog.LevelWarn))
	s.SetDebugMode(true)

	if err := s.SetParent(2, 1); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected warning:\n%s", buf.String())
	}
}

func alwaysCapture(CaptureContext) bool { return true }

func TestDebugMode_ConditionGrantingOwnedHandlerPanics(t *testing.T) {
	h := handlerAt(10, 0, 0, 0)
	h.Condition = alwaysCapture
	s := newTestSystem(t, h)
	f := frameOf(controllerAt(1, mgl64.Vec3{}, true), controllerAt(2, mgl64.Vec3{}, true))

	s.Update(f)
	if h.CapturedBy() != 1 {
		t.Fatalf("CapturedBy = %d, want 1", h.CapturedBy())
	}

	s.SetDebugMode(true)
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on second owner, got none")
		}
		if msg := fmt.Sprint(r); !strings.Contains(msg, "already captured by 1") {
			t.Errorf("panic message = %s", msg)
		}
	}()
	s.Update(f)
}

func TestReleaseMode_ConditionGrantingOwnedHandlerKeepsOwner(t *testing.T) {
	h := handlerAt(10, 0, 0, 0)
	h.Condition = alwaysCapture
	s := newTestSystem(t, h)
	f := frameOf(controllerAt(1, mgl64.Vec3{}, true), controllerAt(2, mgl64.Vec3{}, true))

	for i := 0; i < 3; i++ {
		s.Update(f)
		if h.CapturedBy() != 1 {
			t.Fatalf("frame %d: CapturedBy = %d, want 1", i, h.CapturedBy())
		}
	}
}
