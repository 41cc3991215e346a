// Package platformtest is a conformance suite for platform.Window
// implementations. Location adapters rely on every behavior checked here.
package platformtest

import (
	"strings"
	"testing"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/platform"
)

// Settle runs the window's queue until no work is left.
type Settle func(t *testing.T)

// WindowFactory creates a fresh window for one test, plus a way to settle it.
type WindowFactory func(t *testing.T) (platform.Window, Settle)

// RunWindowTests runs the complete window test suite against the provided factory.
func RunWindowTests(t *testing.T, factory WindowFactory) {
	t.Run("SetHashAddsEntryAndFiresHashChange", func(t *testing.T) {
		testSetHashAddsEntry(t, factory)
	})
	t.Run("SameHashIsNoOp", func(t *testing.T) {
		testSameHashIsNoOp(t, factory)
	})
	t.Run("ReplaceRewritesCurrentEntry", func(t *testing.T) {
		testReplaceRewritesCurrentEntry(t, factory)
	})
	t.Run("PushStateFiresNothing", func(t *testing.T) {
		testPushStateFiresNothing(t, factory)
	})
	t.Run("ReplaceStateFiresNothing", func(t *testing.T) {
		testReplaceStateFiresNothing(t, factory)
	})
	t.Run("BackDeliversEntryState", func(t *testing.T) {
		testBackDeliversEntryState(t, factory)
	})
	t.Run("HandlerIdentityDedup", func(t *testing.T) {
		testHandlerIdentityDedup(t, factory)
	})
	t.Run("DeferRunsBeforeEvents", func(t *testing.T) {
		testDeferRunsBeforeEvents(t, factory)
	})
}

// counter is an EventHandler that records what it sees.
type counter struct {
	events []platform.Event
	log    *[]string
}

func (c *counter) HandleEvent(e platform.Event) {
	c.events = append(c.events, e)
	if c.log != nil {
		*c.log = append(*c.log, string(e.Kind))
	}
}

func (c *counter) count(kind platform.EventKind) int {
	n := 0
	for _, e := range c.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func (c *counter) popStates() []platform.Event {
	var out []platform.Event
	for _, e := range c.events {
		if e.Kind == platform.EventPopState {
			out = append(out, e)
		}
	}
	return out
}

func subscribe(w platform.Window, c *counter) {
	w.AddEventListener(platform.EventHashChange, c)
	w.AddEventListener(platform.EventPopState, c)
}

func unsubscribe(w platform.Window, c *counter) {
	w.RemoveEventListener(platform.EventHashChange, c)
	w.RemoveEventListener(platform.EventPopState, c)
}

func statePath(state any) string {
	m, ok := state.(map[string]any)
	if !ok {
		return ""
	}
	p, _ := m["path"].(string)
	return p
}

func testSetHashAddsEntry(t *testing.T, factory WindowFactory) {
	w, settle := factory(t)
	c := &counter{}
	subscribe(w, c)
	defer unsubscribe(w, c)

	before := w.Href()
	if err := w.SetHash("/conformance"); err != nil {
		t.Fatalf("SetHash: %v", err)
	}
	if !strings.HasSuffix(w.Href(), "#/conformance") {
		t.Fatalf("Href() = %q, want fragment #/conformance", w.Href())
	}
	settle(t)
	if got := c.count(platform.EventHashChange); got != 1 {
		t.Fatalf("hashchange count = %d, want 1", got)
	}

	if err := w.Back(); err != nil {
		t.Fatalf("Back: %v", err)
	}
	settle(t)
	if w.Href() != before {
		t.Fatalf("Href() after Back = %q, want %q", w.Href(), before)
	}
	if got := c.count(platform.EventHashChange); got != 2 {
		t.Fatalf("hashchange count after Back = %d, want 2", got)
	}
}

func testSameHashIsNoOp(t *testing.T, factory WindowFactory) {
	w, settle := factory(t)
	if err := w.SetHash("/same"); err != nil {
		t.Fatalf("SetHash: %v", err)
	}
	settle(t)

	c := &counter{}
	subscribe(w, c)
	defer unsubscribe(w, c)

	if err := w.SetHash("/same"); err != nil {
		t.Fatalf("SetHash: %v", err)
	}
	settle(t)
	if len(c.events) != 0 {
		t.Fatalf("writing the same fragment fired %v", c.events)
	}
}

func testReplaceRewritesCurrentEntry(t *testing.T, factory WindowFactory) {
	w, settle := factory(t)
	before := w.Href()
	if err := w.SetHash("/one"); err != nil {
		t.Fatalf("SetHash: %v", err)
	}
	settle(t)

	c := &counter{}
	subscribe(w, c)
	defer unsubscribe(w, c)

	if err := w.Replace(w.Pathname() + w.Search() + "#/two"); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if !strings.HasSuffix(w.Href(), "#/two") {
		t.Fatalf("Href() = %q, want fragment #/two", w.Href())
	}
	settle(t)
	if got := c.count(platform.EventHashChange); got != 1 {
		t.Fatalf("hashchange count = %d, want 1", got)
	}

	// "#/one" was replaced, so one step back is the starting entry.
	if err := w.Back(); err != nil {
		t.Fatalf("Back: %v", err)
	}
	settle(t)
	if w.Href() != before {
		t.Fatalf("Href() after Back = %q, want %q", w.Href(), before)
	}
}

func testPushStateFiresNothing(t *testing.T, factory WindowFactory) {
	w, settle := factory(t)
	c := &counter{}
	subscribe(w, c)
	defer unsubscribe(w, c)

	if err := w.PushState(map[string]any{"path": "/pushed"}, "/pushed?x=1"); err != nil {
		t.Fatalf("PushState: %v", err)
	}
	settle(t)

	if w.Pathname() != "/pushed" || w.Search() != "?x=1" {
		t.Fatalf("Pathname()+Search() = %q, want /pushed?x=1", w.Pathname()+w.Search())
	}
	if len(c.events) != 0 {
		t.Fatalf("PushState fired %v", c.events)
	}
}

func testReplaceStateFiresNothing(t *testing.T, factory WindowFactory) {
	w, settle := factory(t)
	c := &counter{}
	subscribe(w, c)
	defer unsubscribe(w, c)

	if err := w.ReplaceState(map[string]any{"path": "/replaced"}, "/replaced"); err != nil {
		t.Fatalf("ReplaceState: %v", err)
	}
	settle(t)

	if w.Pathname() != "/replaced" {
		t.Fatalf("Pathname() = %q, want /replaced", w.Pathname())
	}
	if len(c.events) != 0 {
		t.Fatalf("ReplaceState fired %v", c.events)
	}
}

func testBackDeliversEntryState(t *testing.T, factory WindowFactory) {
	w, settle := factory(t)
	// Fragment writes create entries without state.
	if err := w.SetHash("/stateless"); err != nil {
		t.Fatalf("SetHash: %v", err)
	}
	settle(t)
	if err := w.PushState(map[string]any{"path": "/first"}, "/first"); err != nil {
		t.Fatalf("PushState: %v", err)
	}
	if err := w.PushState(map[string]any{"path": "/second"}, "/second"); err != nil {
		t.Fatalf("PushState: %v", err)
	}

	c := &counter{}
	subscribe(w, c)
	defer unsubscribe(w, c)

	if err := w.Back(); err != nil {
		t.Fatalf("Back: %v", err)
	}
	settle(t)
	pops := c.popStates()
	if len(pops) != 1 {
		t.Fatalf("popstate count = %d, want 1", len(pops))
	}
	if got := statePath(pops[0].State); got != "/first" {
		t.Fatalf("popstate state path = %q, want /first", got)
	}
	if w.Pathname() != "/first" {
		t.Fatalf("Pathname() = %q, want /first", w.Pathname())
	}

	if err := w.Back(); err != nil {
		t.Fatalf("Back: %v", err)
	}
	settle(t)
	pops = c.popStates()
	if len(pops) != 2 {
		t.Fatalf("popstate count = %d, want 2", len(pops))
	}
	if state := pops[1].State; state != nil {
		t.Fatalf("stateless entry delivered state %#v, want nil", state)
	}
}

func testHandlerIdentityDedup(t *testing.T, factory WindowFactory) {
	w, settle := factory(t)
	c := &counter{}
	w.AddEventListener(platform.EventHashChange, c)
	w.AddEventListener(platform.EventHashChange, c)

	if err := w.SetHash("/dedup"); err != nil {
		t.Fatalf("SetHash: %v", err)
	}
	settle(t)
	if got := c.count(platform.EventHashChange); got != 1 {
		t.Fatalf("hashchange count = %d, want 1", got)
	}

	w.RemoveEventListener(platform.EventHashChange, c)
	if err := w.SetHash("/dedup/gone"); err != nil {
		t.Fatalf("SetHash: %v", err)
	}
	settle(t)
	if got := c.count(platform.EventHashChange); got != 1 {
		t.Fatalf("removed handler still notified: count = %d", got)
	}
}

func testDeferRunsBeforeEvents(t *testing.T, factory WindowFactory) {
	w, settle := factory(t)
	var order []string
	c := &counter{log: &order}
	w.AddEventListener(platform.EventHashChange, c)
	defer w.RemoveEventListener(platform.EventHashChange, c)

	if err := w.SetHash("/deferred"); err != nil {
		t.Fatalf("SetHash: %v", err)
	}
	w.Defer(func() {
		order = append(order, "defer")
	})
	settle(t)

	if len(order) != 2 || order[0] != "defer" || order[1] != string(platform.EventHashChange) {
		t.Fatalf("order = %v, want [defer hashchange]", order)
	}
}
