package location

// Action identifies how the current path was reached.
type Action int

const (
	ActionNone    Action = iota // No programmatic navigation is pending
	ActionPush                  // A new entry was added
	ActionReplace               // The current entry was rewritten
	ActionPop                   // The tab moved to an existing entry (back, forward, typed URL)
)

func (a Action) String() string {
	switch a {
	case ActionPush:
		return "PUSH"
	case ActionReplace:
		return "REPLACE"
	case ActionPop:
		return "POP"
	default:
		return ""
	}
}

// Change is delivered to every listener once per navigation.
type Change struct {
	Type Action
	Path string
}

// Listener receives navigation changes.
//
// The listener value is its own identity: adding the same listener twice
// registers it once, and RemoveListener must be given the value that was added.
// Implementations therefore have to be comparable; use a pointer receiver or
// wrap a function with NewListener.
type Listener interface {
	OnChange(change Change)
}

// FuncListener adapts a function to the Listener interface.
type FuncListener struct {
	fn func(Change)
}

// NewListener wraps fn in a Listener. Every call returns a distinct listener,
// even for the same fn.
func NewListener(fn func(Change)) *FuncListener {
	return &FuncListener{fn: fn}
}

func (l *FuncListener) OnChange(change Change) {
	l.fn(change)
}

// Location is the contract shared by FragmentLocation and SessionLocation.
type Location interface {
	// Current returns the decoded logical path.
	Current() string
	AddListener(listener Listener)
	RemoveListener(listener Listener)
	// Emit notifies every listener of a change of the given type at Current.
	Emit(action Action)
	Push(path string) error
	Replace(path string) error
	Pop() error
	// Dispose drops every listener and the platform subscription.
	Dispose()
	// Length counts entries pushed since construction minus pops, starting at 1.
	Length() int
	// IsListening reports whether the platform subscription is active.
	IsListening() bool
}

var (
	_ Location = (*FragmentLocation)(nil)
	_ Location = (*SessionLocation)(nil)
)
