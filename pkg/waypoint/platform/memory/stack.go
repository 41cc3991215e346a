package memory

// Entry is a single record in the session history.
// It stores the URL components the entry was created with and the state
// payload attached by PushState or ReplaceState.
type Entry struct {
	Path        string // Escaped path, always starting with "/"
	Search      string // Escaped query including "?", or ""
	Fragment    string // Escaped fragment without "#"
	HasFragment bool   // Distinguishes "…#" from no fragment at all
	State       any    // nil if the entry was never given a payload
}

// sameDocument reports whether two entries differ only in their fragment.
func (e Entry) sameDocument(other Entry) bool {
	return e.Path == other.Path && e.Search == other.Search
}

func (e Entry) sameFragment(other Entry) bool {
	return e.HasFragment == other.HasFragment && e.Fragment == other.Fragment
}

func (e Entry) href(origin string) string {
	u := origin + e.Path + e.Search
	if e.HasFragment {
		u += "#" + e.Fragment
	}
	return u
}

// Stack manages the session history of one tab.
// Entries behind the cursor are reachable with back navigation, entries
// ahead of it with forward navigation until a new entry is pushed.
type Stack struct {
	entries []Entry
	index   int
}

// NewStack creates a history holding only the initial entry.
func NewStack(initial Entry) *Stack {
	return &Stack{
		entries: []Entry{initial},
	}
}

// Push adds a new entry after the cursor, dropping any forward entries.
func (s *Stack) Push(entry Entry) {
	s.entries = append(s.entries[:s.index+1], entry)
	s.index = len(s.entries) - 1
}

// Replace overwrites the entry under the cursor.
func (s *Stack) Replace(entry Entry) {
	s.entries[s.index] = entry
}

// Current returns the entry under the cursor.
func (s *Stack) Current() Entry {
	return s.entries[s.index]
}

// Go moves the cursor by delta entries.
// It returns the new current entry and false if the move would leave the stack,
// in which case the cursor does not move.
func (s *Stack) Go(delta int) (Entry, bool) {
	target := s.index + delta
	if target < 0 || target >= len(s.entries) {
		return Entry{}, false
	}
	s.index = target
	return s.entries[s.index], true
}

// Len returns the number of entries in the stack.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Index returns the cursor position.
func (s *Stack) Index() int {
	return s.index
}
