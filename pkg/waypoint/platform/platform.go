// Package platform describes the navigation surface a location adapter drives.
//
// A browser tab exposes its address, its session history, a global event target
// and a task queue. Adapters never touch those globals directly; they receive a
// Window and talk to it through the narrow interfaces below, so tests can hand
// them an in-memory tab instead of a real one.
package platform

// EventKind names a platform navigation event.
type EventKind string

const (
	EventHashChange EventKind = "hashchange" // The URL fragment changed
	EventPopState   EventKind = "popstate"   // The active session history entry changed
)

// Event is delivered to an EventHandler when the platform navigates.
//
// State is the payload attached to the now-active history entry by PushState
// or ReplaceState. It is nil when the entry carries none.
type Event struct {
	Kind  EventKind
	State any
}

// EventHandler receives platform events.
// Implementations must be comparable; the handler value itself is the
// subscription identity, so registering it twice has no extra effect.
type EventHandler interface {
	HandleEvent(event Event)
}

// Address reads and rewrites the current URL.
type Address interface {
	// Href returns the full current URL, fragment included.
	Href() string
	// Pathname returns the path component of the current URL.
	Pathname() string
	// Search returns the query component including its leading "?", or "".
	Search() string
	// SetHash writes the fragment. A changed fragment adds a history entry
	// and fires EventHashChange on a later turn.
	SetHash(fragment string) error
	// Replace swaps the current entry's URL without adding a history entry.
	Replace(url string) error
}

// History manipulates the session history stack.
type History interface {
	PushState(state any, url string) error
	ReplaceState(state any, url string) error
	// Back navigates one entry back. The move completes on a later turn.
	Back() error
}

// EventTarget is the global event subscription slot.
type EventTarget interface {
	AddEventListener(kind EventKind, handler EventHandler)
	RemoveEventListener(kind EventKind, handler EventHandler)
}

// Scheduler runs work on a later turn of the platform's queue.
type Scheduler interface {
	// Defer runs fn after the current turn, ahead of any queued events.
	Defer(fn func())
}

// Window is the complete navigation surface of one tab.
type Window interface {
	Address
	History
	EventTarget
	Scheduler
}

// PushStateSupporter is implemented by windows that can report whether the
// session history API is usable.
type PushStateSupporter interface {
	SupportsPushState() bool
}

// SupportsPushState reports whether w can back a session-history adapter.
// Windows that do not implement PushStateSupporter are assumed capable.
func SupportsPushState(w Window) bool {
	if s, ok := w.(PushStateSupporter); ok {
		return s.SupportsPushState()
	}
	return true
}
