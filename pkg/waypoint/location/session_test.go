package location_test

import (
	"errors"
	"testing"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/location"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/platform"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/platform/memory"
)

func newListeningSession(t *testing.T, opts ...memory.Option) (*memory.Window, *location.SessionLocation, *recorder) {
	t.Helper()
	w := newWindow(t, opts...)
	loc := location.NewSession(w, quietOptions())
	rec := &recorder{}
	loc.AddListener(rec)
	return w, loc, rec
}

func TestSessionCurrent(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"http://localhost/", "/"},
		{"http://localhost/inbox?page=2#ignored", "/inbox?page=2"},
		{"http://localhost/a%20b?q=x%20y", "/a b?q=x y"},
		{"http://localhost/a%2Fb?q=%26x", "/a%2Fb?q=%26x"},
		{"http://localhost/a%3Fb", "/a%3Fb"},
		{"http://localhost/a%23b", "/a%23b"},
		{"http://localhost/caf%C3%A9", "/café"},
	}

	for _, tt := range tests {
		w := newWindow(t, memory.WithURL(tt.url))
		loc := location.NewSession(w, quietOptions())
		if got := loc.Current(); got != tt.want {
			t.Errorf("Current() on %s = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestSessionPushPush(t *testing.T) {
	_, loc, rec := newListeningSession(t)

	if err := loc.Push("/a"); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if err := loc.Push("/b"); err != nil {
		t.Fatalf("Push: %v", err)
	}

	rec.expect(t, push("/a"), push("/b"))
	if got := loc.Length(); got != 3 {
		t.Fatalf("Length() = %d, want 3", got)
	}
	if got := loc.Current(); got != "/b" {
		t.Fatalf("Current() = %q, want /b", got)
	}
}

func TestSessionPushQuery(t *testing.T) {
	_, loc, rec := newListeningSession(t)

	_ = loc.Push("/search?q=go lang")

	rec.expect(t, push("/search?q=go lang"))
}

func TestSessionReplace(t *testing.T) {
	w, loc, rec := newListeningSession(t)

	if err := loc.Replace("/r"); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	rec.expect(t, replace("/r"))
	if got := loc.Length(); got != 1 {
		t.Fatalf("Length() = %d, want 1", got)
	}
	if got := w.HistoryLen(); got != 1 {
		t.Fatalf("HistoryLen() = %d, want 1", got)
	}
	state, ok := w.State().(map[string]any)
	if !ok || state["path"] != "/r" {
		t.Fatalf("State() = %#v, want the path payload", w.State())
	}
}

func TestSessionPopReportsOwnEntriesOnly(t *testing.T) {
	w, loc, rec := newListeningSession(t)
	_ = loc.Push("/a")
	_ = loc.Push("/b")
	rec.reset()

	if err := loc.Pop(); err != nil {
		t.Fatalf("Pop: %v", err)
	}
	rec.expect(t)
	flush(t, w)
	rec.expect(t, pop("/a"))
	if got := loc.Length(); got != 2 {
		t.Fatalf("Length() = %d, want 2", got)
	}

	// Back onto the initial entry, which carries no state.
	_ = loc.Pop()
	flush(t, w)
	rec.expect(t, pop("/a"))
	if got := loc.Current(); got != "/" {
		t.Fatalf("Current() = %q, want /", got)
	}
	if got := loc.Length(); got != 1 {
		t.Fatalf("Length() = %d, want 1", got)
	}

	w.Forward()
	flush(t, w)
	rec.expect(t, pop("/a"), pop("/a"))
}

func TestSessionIgnoresEventWithoutState(t *testing.T) {
	_, loc, rec := newListeningSession(t)

	loc.HandleEvent(platform.Event{Kind: platform.EventPopState})

	rec.expect(t)
}

func TestSessionIgnoresFragmentNavigation(t *testing.T) {
	w, _, rec := newListeningSession(t)

	_ = w.SetHash("/not-ours")
	flush(t, w)
	_ = w.Back()
	flush(t, w)

	rec.expect(t)
}

func TestSessionListenerLifecycle(t *testing.T) {
	w, loc, rec := newListeningSession(t)

	loc.AddListener(rec)
	if got := w.Listeners(platform.EventPopState); got != 1 {
		t.Fatalf("platform subscriptions = %d, want 1", got)
	}

	loc.RemoveListener(rec)
	if loc.IsListening() {
		t.Fatal("adapter still listening after the last listener left")
	}
	if got := w.Listeners(platform.EventPopState); got != 0 {
		t.Fatalf("platform subscriptions = %d, want 0", got)
	}

	_ = loc.Push("/a")
	rec.expect(t)
}

func TestSessionEmitNotifiesEveryListenerOnce(t *testing.T) {
	_, loc, rec := newListeningSession(t)
	other := &recorder{}
	loc.AddListener(other)

	loc.Emit(location.ActionPop)

	rec.expect(t, pop("/"))
	other.expect(t, pop("/"))

	loc.Emit(location.ActionPush)
	if got := loc.Length(); got != 1 {
		t.Fatalf("Emit(PUSH) changed Length() to %d", got)
	}
}

func TestSessionDispose(t *testing.T) {
	w, loc, rec := newListeningSession(t)
	_ = loc.Push("/a")
	_ = loc.Push("/b")
	rec.reset()

	loc.Dispose()
	loc.Dispose()

	if loc.IsListening() {
		t.Fatal("adapter still listening after Dispose")
	}
	if got := loc.Length(); got != 1 {
		t.Fatalf("Length() = %d, want 1", got)
	}

	_ = w.Back()
	flush(t, w)
	rec.expect(t)
}

func TestSessionPlatformErrors(t *testing.T) {
	w, loc, rec := newListeningSession(t, memory.WithoutPushState())

	err := loc.Push("/a")
	if !errors.Is(err, memory.ErrUnsupported) {
		t.Fatalf("Push error = %v, want ErrUnsupported", err)
	}
	var platformErr *location.PlatformError
	if !errors.As(err, &platformErr) || platformErr.Op != "push" {
		t.Fatalf("Push error = %v, want a push PlatformError", err)
	}
	if got := loc.Length(); got != 1 {
		t.Fatalf("failed Push changed Length() to %d", got)
	}

	if err := loc.Replace("/a"); !errors.Is(err, memory.ErrUnsupported) {
		t.Fatalf("Replace error = %v, want ErrUnsupported", err)
	}

	boom := errors.New("boom")
	w.FailNext("Back", boom)
	if err := loc.Pop(); !errors.Is(err, boom) {
		t.Fatalf("Pop error = %v, want boom", err)
	}

	rec.expect(t)
}
