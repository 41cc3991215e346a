package location

// listenerSet is an insertion-ordered set of listeners.
type listenerSet struct {
	order []Listener
	index map[Listener]int
}

func newListenerSet() *listenerSet {
	return &listenerSet{index: make(map[Listener]int)}
}

// add reports whether listener was not already present.
func (s *listenerSet) add(listener Listener) bool {
	if _, ok := s.index[listener]; ok {
		return false
	}
	s.index[listener] = len(s.order)
	s.order = append(s.order, listener)
	return true
}

func (s *listenerSet) remove(listener Listener) {
	i, ok := s.index[listener]
	if !ok {
		return
	}
	delete(s.index, listener)
	s.order = append(s.order[:i:i], s.order[i+1:]...)
	for j := i; j < len(s.order); j++ {
		s.index[s.order[j]] = j
	}
}

func (s *listenerSet) len() int {
	return len(s.order)
}

func (s *listenerSet) clear() {
	s.order = nil
	clear(s.index)
}

// notify delivers change to a snapshot of the set, so listeners added or
// removed during the round only see the effect on the next one.
func (s *listenerSet) notify(change Change) {
	snapshot := append([]Listener(nil), s.order...)
	for _, l := range snapshot {
		l.OnChange(change)
	}
}
