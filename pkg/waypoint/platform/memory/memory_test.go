package memory_test

import (
	"errors"
	"testing"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/platform"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/platform/memory"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/platform/platformtest"
)

func TestWindowConformance(t *testing.T) {
	platformtest.RunWindowTests(t, func(t *testing.T) (platform.Window, platformtest.Settle) {
		w, err := memory.New(memory.WithURL("http://localhost/app?mode=test"))
		if err != nil {
			t.Fatalf("memory.New: %v", err)
		}
		return w, func(t *testing.T) {
			t.Helper()
			if err := w.Flush(); err != nil {
				t.Fatalf("Flush: %v", err)
			}
		}
	})
}

func TestNewRejectsRelativeURL(t *testing.T) {
	if _, err := memory.New(memory.WithURL("/app")); err == nil {
		t.Fatal("expected an error for a relative initial URL")
	}
}

func TestHref(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"http://localhost", "http://localhost/"},
		{"http://localhost/", "http://localhost/"},
		{"https://example.com/a/b?x=1#frag", "https://example.com/a/b?x=1#frag"},
		{"http://localhost/a b", "http://localhost/a%20b"},
		{"http://localhost/#", "http://localhost/#"},
	}

	for _, tt := range tests {
		w, err := memory.New(memory.WithURL(tt.url))
		if err != nil {
			t.Fatalf("memory.New(%q): %v", tt.url, err)
		}
		if got := w.Href(); got != tt.want {
			t.Errorf("Href() for %q = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestPushStateResolvesRelativeURLs(t *testing.T) {
	w, _ := memory.New(memory.WithURL("http://localhost/docs/guide/intro?x=1#top"))

	tests := []struct {
		url  string
		want string
	}{
		{"setup", "http://localhost/docs/guide/setup"},
		{"../api/", "http://localhost/docs/api/"},
		{"?page=2", "http://localhost/docs/api/?page=2"},
		{"#sec", "http://localhost/docs/api/?page=2#sec"},
		{"/root", "http://localhost/root"},
		{"http://localhost/abs", "http://localhost/abs"},
	}

	for _, tt := range tests {
		if err := w.PushState(nil, tt.url); err != nil {
			t.Fatalf("PushState(%q): %v", tt.url, err)
		}
		if got := w.Href(); got != tt.want {
			t.Errorf("after PushState(%q) Href() = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestCrossOriginRejected(t *testing.T) {
	w, _ := memory.New()

	if err := w.PushState(nil, "https://evil.example/"); !errors.Is(err, memory.ErrCrossOrigin) {
		t.Fatalf("PushState error = %v, want ErrCrossOrigin", err)
	}
	if err := w.Replace("https://evil.example/#/x"); !errors.Is(err, memory.ErrCrossOrigin) {
		t.Fatalf("Replace error = %v, want ErrCrossOrigin", err)
	}
}

func TestSetHashEncodesFragment(t *testing.T) {
	w, _ := memory.New()

	_ = w.SetHash("#/a b")
	if got := w.Href(); got != "http://localhost/#/a%20b" {
		t.Fatalf("Href() = %q", got)
	}
}

func TestBackAtFirstEntryDoesNothing(t *testing.T) {
	w, _ := memory.New()
	h := &handler{}
	w.AddEventListener(platform.EventPopState, h)

	_ = w.Back()
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if h.n != 0 {
		t.Fatalf("popstate fired %d times at the first entry", h.n)
	}
}

func TestPushTruncatesForwardEntries(t *testing.T) {
	w, _ := memory.New()
	_ = w.PushState(1, "/a")
	_ = w.PushState(2, "/b")
	_ = w.Back()
	_ = w.Flush()
	if got := w.HistoryIndex(); got != 1 {
		t.Fatalf("HistoryIndex() after Back = %d, want 1", got)
	}

	_ = w.PushState(3, "/c")
	if got := w.HistoryLen(); got != 3 {
		t.Fatalf("HistoryLen() = %d, want 3", got)
	}
	if got := w.HistoryIndex(); got != 2 {
		t.Fatalf("HistoryIndex() = %d, want 2", got)
	}

	w.Forward()
	_ = w.Flush()
	if got := w.Pathname(); got != "/c" {
		t.Fatalf("Forward at the newest entry moved to %q", got)
	}
}

func TestFailNext(t *testing.T) {
	w, _ := memory.New()
	boom := errors.New("boom")

	w.FailNext("PushState", boom)
	if err := w.PushState(nil, "/a"); !errors.Is(err, boom) {
		t.Fatalf("PushState error = %v, want boom", err)
	}
	if err := w.PushState(nil, "/a"); err != nil {
		t.Fatalf("failure should only apply once, got %v", err)
	}
}

func TestWithoutPushState(t *testing.T) {
	w, _ := memory.New(memory.WithoutPushState())

	if w.SupportsPushState() {
		t.Fatal("SupportsPushState() = true")
	}
	if platform.SupportsPushState(w) {
		t.Fatal("platform.SupportsPushState() = true")
	}
	if err := w.ReplaceState(nil, "/a"); !errors.Is(err, memory.ErrUnsupported) {
		t.Fatalf("ReplaceState error = %v, want ErrUnsupported", err)
	}
}

func TestFlushRunaway(t *testing.T) {
	w, _ := memory.New(memory.WithStepLimit(10))

	var again func()
	again = func() { w.Defer(again) }
	w.Defer(again)

	if err := w.Flush(); !errors.Is(err, memory.ErrRunaway) {
		t.Fatalf("Flush() = %v, want ErrRunaway", err)
	}
}

type handler struct {
	n int
}

func (h *handler) HandleEvent(platform.Event) {
	h.n++
}
