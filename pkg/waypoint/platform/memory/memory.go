// Package memory provides an in-memory platform.Window.
//
// Window models one browser tab: a session history stack, a URL, a global
// event slot and a task queue with microtasks. Nothing runs on its own; the
// owner drives the queue with Step or Flush, which makes every interleaving of
// navigation events and deferred work reproducible in tests.
//
// A Window is not safe for concurrent use. Drive it from one goroutine, the
// same way a browser runs one event loop per tab.
package memory

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/platform"
)

var (
	// ErrRunaway is returned by Flush when the queue is still busy after the
	// step limit, usually because deferred work keeps rescheduling itself.
	ErrRunaway = errors.New("memory: task queue did not settle")

	// ErrUnsupported is returned by history calls on a window created WithoutPushState.
	ErrUnsupported = errors.New("memory: session history API unavailable")

	// ErrCrossOrigin is returned when a URL points away from the window's origin.
	ErrCrossOrigin = errors.New("memory: cross-origin URL")
)

const (
	defaultURL       = "http://localhost/"
	defaultStepLimit = 10000
)

// Option configures a Window.
type Option func(*Window)

// WithURL sets the initial URL of the tab.
func WithURL(url string) Option {
	return func(w *Window) {
		w.initialURL = url
	}
}

// WithoutPushState makes the window report that the session history API is missing.
func WithoutPushState() Option {
	return func(w *Window) {
		w.noPushState = true
	}
}

// WithFrozenFragment makes the window silently ignore every fragment write.
// It models a platform that never reflects a corrective write.
func WithFrozenFragment() Option {
	return func(w *Window) {
		w.frozenFragment = true
	}
}

// WithStepLimit sets how many steps Flush runs before giving up.
func WithStepLimit(limit int) Option {
	return func(w *Window) {
		w.stepLimit = limit
	}
}

// Window is an in-memory browser tab.
type Window struct {
	origin     string
	initialURL string
	history    *Stack

	handlers   map[platform.EventKind][]platform.EventHandler
	microtasks []func()
	tasks      []func()
	failures   map[string]error

	noPushState    bool
	frozenFragment bool
	stepLimit      int
}

var _ platform.Window = (*Window)(nil)
var _ platform.PushStateSupporter = (*Window)(nil)

// New creates a tab at http://localhost/ unless WithURL says otherwise.
func New(opts ...Option) (*Window, error) {
	w := &Window{
		initialURL: defaultURL,
		handlers:   make(map[platform.EventKind][]platform.EventHandler),
		failures:   make(map[string]error),
		stepLimit:  defaultStepLimit,
	}
	for _, opt := range opts {
		opt(w)
	}

	origin, _ := splitOrigin(w.initialURL)
	if origin == "" {
		return nil, fmt.Errorf("memory: initial URL %q is not absolute", w.initialURL)
	}
	w.origin = origin

	entry, err := w.resolve(w.initialURL, Entry{Path: "/"})
	if err != nil {
		return nil, err
	}
	w.history = NewStack(entry)
	return w, nil
}

// Href returns the full current URL.
func (w *Window) Href() string {
	return w.history.Current().href(w.origin)
}

// Pathname returns the escaped path of the current entry.
func (w *Window) Pathname() string {
	return w.history.Current().Path
}

// Search returns the escaped query of the current entry.
func (w *Window) Search() string {
	return w.history.Current().Search
}

// State returns the state payload of the current entry.
func (w *Window) State() any {
	return w.history.Current().State
}

// SetHash writes the fragment. A different fragment pushes a new entry
// without state and queues a hashchange event.
func (w *Window) SetHash(fragment string) error {
	if err := w.takeFailure("SetHash"); err != nil {
		return err
	}
	if w.frozenFragment {
		return nil
	}

	current := w.history.Current()
	next := Entry{
		Path:        current.Path,
		Search:      current.Search,
		Fragment:    escape(strings.TrimPrefix(fragment, "#"), fragmentExtra),
		HasFragment: true,
	}
	if next.sameFragment(current) {
		return nil
	}

	w.history.Push(next)
	w.queueTask(func() {
		w.dispatch(platform.Event{Kind: platform.EventHashChange})
	})
	return nil
}

// Replace swaps the current entry's URL. The entry loses its state. A change
// confined to the fragment queues a hashchange event.
func (w *Window) Replace(url string) error {
	if err := w.takeFailure("Replace"); err != nil {
		return err
	}

	current := w.history.Current()
	next, err := w.resolve(url, current)
	if err != nil {
		return err
	}
	if w.frozenFragment {
		next.Fragment, next.HasFragment = current.Fragment, current.HasFragment
	}

	w.history.Replace(next)
	if next.sameDocument(current) && !next.sameFragment(current) {
		w.queueTask(func() {
			w.dispatch(platform.Event{Kind: platform.EventHashChange})
		})
	}
	return nil
}

// PushState adds an entry carrying state. No event fires.
func (w *Window) PushState(state any, url string) error {
	if err := w.takeFailure("PushState"); err != nil {
		return err
	}
	if w.noPushState {
		return ErrUnsupported
	}

	next, err := w.resolve(url, w.history.Current())
	if err != nil {
		return err
	}
	next.State = state
	w.history.Push(next)
	return nil
}

// ReplaceState overwrites the current entry's URL and state. No event fires.
func (w *Window) ReplaceState(state any, url string) error {
	if err := w.takeFailure("ReplaceState"); err != nil {
		return err
	}
	if w.noPushState {
		return ErrUnsupported
	}

	next, err := w.resolve(url, w.history.Current())
	if err != nil {
		return err
	}
	next.State = state
	w.history.Replace(next)
	return nil
}

// Back navigates one entry back on a later task.
func (w *Window) Back() error {
	if err := w.takeFailure("Back"); err != nil {
		return err
	}
	w.traverse(-1)
	return nil
}

// Forward navigates one entry forward on a later task.
func (w *Window) Forward() {
	w.traverse(1)
}

// traverse moves through history the way the back and forward buttons do:
// popstate with the target entry's state, then hashchange if the fragment moved.
func (w *Window) traverse(delta int) {
	w.queueTask(func() {
		from := w.history.Current()
		to, ok := w.history.Go(delta)
		if !ok {
			return
		}
		w.dispatch(platform.Event{Kind: platform.EventPopState, State: to.State})
		if !to.sameFragment(from) {
			w.queueTask(func() {
				w.dispatch(platform.Event{Kind: platform.EventHashChange})
			})
		}
	})
}

// AddEventListener subscribes handler to kind. Adding the same handler twice
// for one kind keeps a single subscription.
func (w *Window) AddEventListener(kind platform.EventKind, handler platform.EventHandler) {
	for _, h := range w.handlers[kind] {
		if h == handler {
			return
		}
	}
	w.handlers[kind] = append(w.handlers[kind], handler)
}

// RemoveEventListener drops handler from kind. Unknown handlers are ignored.
func (w *Window) RemoveEventListener(kind platform.EventKind, handler platform.EventHandler) {
	hs := w.handlers[kind]
	for i, h := range hs {
		if h == handler {
			w.handlers[kind] = append(hs[:i:i], hs[i+1:]...)
			return
		}
	}
}

// Listeners returns how many handlers are subscribed to kind.
func (w *Window) Listeners(kind platform.EventKind) int {
	return len(w.handlers[kind])
}

// Defer queues fn as a microtask. Microtasks run before the next task.
func (w *Window) Defer(fn func()) {
	w.microtasks = append(w.microtasks, fn)
}

// SupportsPushState reports whether the session history API is available.
func (w *Window) SupportsPushState() bool {
	return !w.noPushState
}

// FailNext makes the next call to op return err instead of doing anything.
// op is the method name, e.g. "PushState" or "Back".
func (w *Window) FailNext(op string, err error) {
	w.failures[op] = err
}

// HistoryLen returns the number of entries in the session history.
func (w *Window) HistoryLen() int {
	return w.history.Len()
}

// HistoryIndex returns the position of the current entry.
func (w *Window) HistoryIndex() int {
	return w.history.Index()
}

// Pending returns the number of queued microtasks and tasks.
func (w *Window) Pending() int {
	return len(w.microtasks) + len(w.tasks)
}

// Step runs one unit of work: the oldest microtask if there is one, the
// oldest task otherwise. It reports whether anything ran.
func (w *Window) Step() bool {
	var fn func()
	switch {
	case len(w.microtasks) > 0:
		fn = w.microtasks[0]
		w.microtasks = w.microtasks[1:]
	case len(w.tasks) > 0:
		fn = w.tasks[0]
		w.tasks = w.tasks[1:]
	default:
		return false
	}
	fn()
	return true
}

// Flush steps until the queue is empty.
// It returns ErrRunaway if work is still pending after the step limit.
func (w *Window) Flush() error {
	for i := 0; i < w.stepLimit; i++ {
		if !w.Step() {
			return nil
		}
	}
	if w.Pending() > 0 {
		return fmt.Errorf("%w after %d steps", ErrRunaway, w.stepLimit)
	}
	return nil
}

func (w *Window) queueTask(fn func()) {
	w.tasks = append(w.tasks, fn)
}

func (w *Window) dispatch(event platform.Event) {
	hs := append([]platform.EventHandler(nil), w.handlers[event.Kind]...)
	for _, h := range hs {
		h.HandleEvent(event)
	}
}

func (w *Window) takeFailure(op string) error {
	err, ok := w.failures[op]
	if !ok {
		return nil
	}
	delete(w.failures, op)
	return err
}
