package location

import (
	"log/slog"
	"strings"

	"go.uber.org/atomic"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/constants"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/platform"
)

// FragmentLocation tracks the logical path stored in the URL fragment.
//
// The platform fires the same hashchange event for every kind of fragment
// navigation, so the adapter records the action it is about to perform in
// lastAction and attributes the next event to it. Events with no recorded
// action are reported as ActionPop.
type FragmentLocation struct {
	id      string
	window  platform.Window
	options Options
	logger  *slog.Logger

	length      *atomic.Int64
	isListening *atomic.Bool
	lastAction  Action
	listeners   *listenerSet
}

// NewFragment creates an adapter over window's URL fragment. It does not
// subscribe to anything until the first listener is added.
func NewFragment(window platform.Window, options Options) *FragmentLocation {
	id, logger := options.logger("fragment")
	return &FragmentLocation{
		id:          id,
		window:      window,
		options:     options,
		logger:      logger,
		length:      atomic.NewInt64(1),
		isListening: atomic.NewBool(false),
		listeners:   newListenerSet(),
	}
}

// ID returns the instance id used in log lines.
func (l *FragmentLocation) ID() string {
	return l.id
}

// Current returns the decoded text after the first "#", or "".
func (l *FragmentLocation) Current() string {
	_, fragment, _ := strings.Cut(l.window.Href(), constants.FragmentMarker)
	return decode(fragment)
}

func (l *FragmentLocation) Length() int {
	return int(l.length.Load())
}

func (l *FragmentLocation) IsListening() bool {
	return l.isListening.Load()
}

// AddListener registers listener once the fragment starts with "/".
// Until then it corrects the fragment and retries with the same listener
// after the platform has reflected the correction.
func (l *FragmentLocation) AddListener(listener Listener) {
	if !l.hasLeadingSeparator() {
		l.ensureLeadingSeparator(func() {
			l.AddListener(listener)
		})
		return
	}

	l.listeners.add(listener)
	if !l.isListening.Load() {
		l.window.AddEventListener(platform.EventHashChange, l)
		l.isListening.Store(true)
		l.logger.Debug("subscribed", "event", platform.EventHashChange)
	}
}

func (l *FragmentLocation) RemoveListener(listener Listener) {
	l.listeners.remove(listener)
	if l.listeners.len() == 0 {
		l.window.RemoveEventListener(platform.EventHashChange, l)
		l.isListening.Store(false)
		l.logger.Debug("unsubscribed", "event", platform.EventHashChange)
	}
}

// Emit notifies every listener. ActionPush also counts a new entry.
func (l *FragmentLocation) Emit(action Action) {
	if action == ActionPush {
		l.length.Inc()
	}

	change := Change{Type: action, Path: l.Current()}
	l.logger.Debug("emit", "type", change.Type.String(), "path", change.Path)
	l.listeners.notify(change)
}

// HandleEvent is called by the platform on every hashchange.
func (l *FragmentLocation) HandleEvent(platform.Event) {
	if !l.hasLeadingSeparator() {
		l.ensureLeadingSeparator(nil)
		return
	}

	action := l.lastAction
	if action == ActionNone {
		action = ActionPop
	}
	l.Emit(action)
	l.lastAction = ActionNone
}

// Push writes path into the fragment. The change is reported when the
// platform fires hashchange. Pushing the current fragment fires nothing, and
// the recorded push then applies to the next hashchange.
func (l *FragmentLocation) Push(path string) error {
	l.lastAction = ActionPush
	return wrap("push", l.window.SetHash(path))
}

// Replace rewrites the fragment of the current entry without adding one.
func (l *FragmentLocation) Replace(path string) error {
	l.lastAction = ActionReplace
	url := l.window.Pathname() + l.window.Search() + constants.FragmentMarker + path
	return wrap("replace", l.window.Replace(url))
}

// Pop goes back one entry. The change is reported when the platform fires hashchange.
func (l *FragmentLocation) Pop() error {
	l.lastAction = ActionPop
	l.length.Dec()
	return wrap("pop", l.window.Back())
}

// Dispose resets the adapter to its initial state and drops the platform
// subscription whether or not any listener is left.
func (l *FragmentLocation) Dispose() {
	l.length.Store(1)
	l.lastAction = ActionNone
	l.listeners.clear()
	l.isListening.Store(false)
	l.window.RemoveEventListener(platform.EventHashChange, l)
}

func (l *FragmentLocation) hasLeadingSeparator() bool {
	return strings.HasPrefix(l.Current(), constants.PathSeparator)
}

// ensureLeadingSeparator prefixes the fragment with "/" and calls then once the
// platform reports a fragment that starts with it. The check runs once per
// scheduler turn; it never trusts that the write itself succeeded.
func (l *FragmentLocation) ensureLeadingSeparator(then func()) {
	current := l.Current()
	if err := l.Replace(constants.PathSeparator + current); err != nil {
		l.logger.Error("fragment correction failed", "fragment", current, "error", err)
		return
	}
	l.logger.Debug("correcting fragment", "fragment", current)

	turns := 0
	var check func()
	check = func() {
		if l.hasLeadingSeparator() {
			if then != nil {
				then()
			}
			return
		}

		turns++
		if limit := l.options.MaxCorrectionTurns; limit > 0 && turns >= limit {
			l.logger.Error("giving up on fragment correction",
				"fragment", l.Current(),
				"turns", turns,
				"error", ErrCorrectionStalled)
			return
		}
		l.window.Defer(check)
	}
	l.window.Defer(check)
}
