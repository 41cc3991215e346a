package location

import (
	"log/slog"

	"go.uber.org/atomic"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/platform"
)

// stateKeyPath is the key of the path in the state SessionLocation attaches
// to every entry it creates.
const stateKeyPath = "path"

// SessionLocation tracks the logical path stored in the URL path and query.
//
// PushState and ReplaceState fire no events, so push and replace are reported
// directly. Back and forward moves arrive as popstate; only moves onto entries
// carrying state, that is entries this adapter created, are reported.
type SessionLocation struct {
	id     string
	window platform.Window
	logger *slog.Logger

	length      *atomic.Int64
	isListening *atomic.Bool
	listeners   *listenerSet
}

// NewSession creates an adapter over window's session history.
func NewSession(window platform.Window, options Options) *SessionLocation {
	id, logger := options.logger("session")
	return &SessionLocation{
		id:          id,
		window:      window,
		logger:      logger,
		length:      atomic.NewInt64(1),
		isListening: atomic.NewBool(false),
		listeners:   newListenerSet(),
	}
}

// ID returns the instance id used in log lines.
func (l *SessionLocation) ID() string {
	return l.id
}

// Current returns the decoded path and query.
func (l *SessionLocation) Current() string {
	return decode(l.window.Pathname() + l.window.Search())
}

func (l *SessionLocation) Length() int {
	return int(l.length.Load())
}

func (l *SessionLocation) IsListening() bool {
	return l.isListening.Load()
}

func (l *SessionLocation) AddListener(listener Listener) {
	l.listeners.add(listener)
	if !l.isListening.Load() {
		l.window.AddEventListener(platform.EventPopState, l)
		l.isListening.Store(true)
		l.logger.Debug("subscribed", "event", platform.EventPopState)
	}
}

func (l *SessionLocation) RemoveListener(listener Listener) {
	l.listeners.remove(listener)
	if l.listeners.len() == 0 {
		l.window.RemoveEventListener(platform.EventPopState, l)
		l.isListening.Store(false)
		l.logger.Debug("unsubscribed", "event", platform.EventPopState)
	}
}

func (l *SessionLocation) Emit(action Action) {
	change := Change{Type: action, Path: l.Current()}
	l.logger.Debug("emit", "type", change.Type.String(), "path", change.Path)
	l.listeners.notify(change)
}

// HandleEvent is called by the platform on every popstate.
func (l *SessionLocation) HandleEvent(event platform.Event) {
	if event.State == nil {
		return
	}
	l.Emit(ActionPop)
}

func (l *SessionLocation) Push(path string) error {
	if err := l.window.PushState(newState(path), path); err != nil {
		return wrap("push", err)
	}
	l.length.Inc()
	l.Emit(ActionPush)
	return nil
}

func (l *SessionLocation) Replace(path string) error {
	if err := l.window.ReplaceState(newState(path), path); err != nil {
		return wrap("replace", err)
	}
	l.Emit(ActionReplace)
	return nil
}

// Pop goes back one entry. The change is reported when popstate arrives.
func (l *SessionLocation) Pop() error {
	l.length.Dec()
	return wrap("pop", l.window.Back())
}

func (l *SessionLocation) Dispose() {
	l.length.Store(1)
	l.listeners.clear()
	l.isListening.Store(false)
	l.window.RemoveEventListener(platform.EventPopState, l)
}

func newState(path string) map[string]any {
	return map[string]any{stateKeyPath: path}
}
