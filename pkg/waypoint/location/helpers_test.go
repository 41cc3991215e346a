package location_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/location"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/platform/memory"
)

// recorder collects every change it is notified of.
type recorder struct {
	changes []location.Change
}

func (r *recorder) OnChange(c location.Change) {
	r.changes = append(r.changes, c)
}

func (r *recorder) expect(t *testing.T, want ...location.Change) {
	t.Helper()
	if len(r.changes) != len(want) {
		t.Fatalf("got %d changes %v, want %d %v", len(r.changes), r.changes, len(want), want)
	}
	for i := range want {
		if r.changes[i] != want[i] {
			t.Fatalf("change %d = %+v, want %+v", i, r.changes[i], want[i])
		}
	}
}

func (r *recorder) reset() {
	r.changes = nil
}

func quietOptions() location.Options {
	return location.Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func newWindow(t *testing.T, opts ...memory.Option) *memory.Window {
	t.Helper()
	w, err := memory.New(opts...)
	if err != nil {
		t.Fatalf("memory.New: %v", err)
	}
	return w
}

func flush(t *testing.T, w *memory.Window) {
	t.Helper()
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
}

func push(path string) location.Change {
	return location.Change{Type: location.ActionPush, Path: path}
}

func replace(path string) location.Change {
	return location.Change{Type: location.ActionReplace, Path: path}
}

func pop(path string) location.Change {
	return location.Change{Type: location.ActionPop, Path: path}
}
