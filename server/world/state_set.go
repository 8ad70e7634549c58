package world

import (
	"github.com/brentp/intintmap"
)

// StateSet is a set of block states. Lookups go through an open addressing map keyed by BlockState.Hash. A nil
// *StateSet is a valid, empty set.
type StateSet struct {
	index    *intintmap.Map
	states   []BlockState
	overflow map[BlockState]struct{}
}

// NewStateSet returns a StateSet holding the states passed.
func NewStateSet(states ...BlockState) *StateSet {
	s := &StateSet{index: intintmap.New(max(len(states), 8), 0.6)}
	for _, st := range states {
		s.Add(st)
	}
	return s
}

// Add adds a state to the set. It returns false if the state was already present.
func (s *StateSet) Add(st BlockState) bool {
	key := int64(st.Hash())
	i, ok := s.index.Get(key)
	if !ok {
		s.index.Put(key, int64(len(s.states)))
		s.states = append(s.states, st)
		return true
	}
	if s.states[i] == st {
		return false
	}
	// Two distinct states share a hash: fall back to an exact map.
	if _, ok := s.overflow[st]; ok {
		return false
	}
	if s.overflow == nil {
		s.overflow = make(map[BlockState]struct{})
	}
	s.overflow[st] = struct{}{}
	s.states = append(s.states, st)
	return true
}

// Contains checks if the state passed is in the set.
func (s *StateSet) Contains(st BlockState) bool {
	if s == nil {
		return false
	}
	if i, ok := s.index.Get(int64(st.Hash())); ok && s.states[i] == st {
		return true
	}
	_, ok := s.overflow[st]
	return ok
}

// AddAll adds all states of o to s.
func (s *StateSet) AddAll(o *StateSet) {
	if o == nil {
		return
	}
	for _, st := range o.states {
		s.Add(st)
	}
}

// Len returns the amount of states in the set.
func (s *StateSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.states)
}

// States returns the states in the set in the order they were added.
func (s *StateSet) States() []BlockState {
	if s == nil {
		return nil
	}
	return append([]BlockState(nil), s.states...)
}
