package label

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned for a person index outside the set.
var ErrIndexOutOfRange = errors.New("person index out of range")

// NoActive is the active-index value meaning no person is selected.
const NoActive = -1

// PersonSet is the ordered list of persons labeled on a single image,
// plus the index of the person currently receiving labels. The active
// index, when set, is always a valid index; it becomes NoActive when
// the set empties.
type PersonSet struct {
	persons []*Person
	active  int
}

// NewPersonSet creates an empty set with no active person.
func NewPersonSet() *PersonSet {
	return &PersonSet{active: NoActive}
}

// NewPersonSetWith creates a set over the given persons. The first
// person becomes active if any exist.
func NewPersonSetWith(persons []*Person) *PersonSet {
	s := &PersonSet{persons: persons, active: NoActive}
	if len(persons) > 0 {
		s.active = 0
	}
	return s
}

// Len returns the number of persons in the set.
func (s *PersonSet) Len() int {
	return len(s.persons)
}

// Person returns the person at index i.
func (s *PersonSet) Person(i int) (*Person, error) {
	if i < 0 || i >= len(s.persons) {
		return nil, fmt.Errorf("%w: %d (have %d persons)", ErrIndexOutOfRange, i, len(s.persons))
	}
	return s.persons[i], nil
}

// Persons returns the underlying ordered person list for iteration.
func (s *PersonSet) Persons() []*Person {
	return s.persons
}

// AddPerson appends a new empty person, makes it active, and returns
// its index.
func (s *PersonSet) AddPerson() int {
	s.persons = append(s.persons, NewPerson())
	s.active = len(s.persons) - 1
	return s.active
}

// DeletePerson removes the person at index i. The active index resets
// to 0 if any persons remain, else to NoActive.
func (s *PersonSet) DeletePerson(i int) error {
	if i < 0 || i >= len(s.persons) {
		return fmt.Errorf("%w: %d (have %d persons)", ErrIndexOutOfRange, i, len(s.persons))
	}
	s.persons = append(s.persons[:i], s.persons[i+1:]...)
	s.active = 0
	if len(s.persons) == 0 {
		s.active = NoActive
	}
	return nil
}

// ActiveIndex returns the active person index, or NoActive.
func (s *PersonSet) ActiveIndex() int {
	return s.active
}

// SetActive selects the person at index i as active.
func (s *PersonSet) SetActive(i int) error {
	if i < 0 || i >= len(s.persons) {
		return fmt.Errorf("%w: %d (have %d persons)", ErrIndexOutOfRange, i, len(s.persons))
	}
	s.active = i
	return nil
}

// ActivePerson returns the person at the active index, or nil when no
// person is selected. Callers must treat nil as "no active person",
// not as a fault.
func (s *PersonSet) ActivePerson() *Person {
	if s.active == NoActive {
		return nil
	}
	return s.persons[s.active]
}

// Labeled returns the persons that carry at least one label, in order.
func (s *PersonSet) Labeled() []*Person {
	var labeled []*Person
	for _, p := range s.persons {
		if p.Len() > 0 {
			labeled = append(labeled, p)
		}
	}
	return labeled
}

// Clone returns an independent deep copy of the set.
func (s *PersonSet) Clone() *PersonSet {
	persons := make([]*Person, len(s.persons))
	for i, p := range s.persons {
		persons[i] = p.Clone()
	}
	return &PersonSet{persons: persons, active: s.active}
}

// MarshalJSON encodes the set as an ordered list of person objects.
func (s *PersonSet) MarshalJSON() ([]byte, error) {
	if s.persons == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.persons)
}

// UnmarshalJSON decodes a list of person objects, preserving order.
// The first person becomes active if any exist.
func (s *PersonSet) UnmarshalJSON(data []byte) error {
	var persons []*Person
	if err := json.Unmarshal(data, &persons); err != nil {
		return fmt.Errorf("failed to decode person list: %w", err)
	}
	s.persons = persons
	s.active = NoActive
	if len(persons) > 0 {
		s.active = 0
	}
	return nil
}
