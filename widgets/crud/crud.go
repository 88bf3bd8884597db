// Package crud is the 7GUIs CRUD task: a list of persons with create, update and delete,
// and a surname prefix filter.
package crud

import (
	"slices"
	"strings"
)

// NoSelection is the selected person ID of the UI when no person is selected.
const NoSelection = -1

// FullName of a person.
type FullName struct {
	Name    string
	Surname string
}

// Person in the list, IDs are assigned by Create and never reused.
type Person struct {
	ID       int
	FullName FullName
}

// String renders the list entry, "Surname, Name".
func (p Person) String() string {
	return p.FullName.Surname + ", " + p.FullName.Name
}

// State of the list. The zero value is the initial State.
// Persons is replaced on every change, earlier States keep their slice.
type State struct {
	NextID  int
	Persons []Person
}

// Event is an input of the list.
type Event interface {
	isCrudEvent()
}

// Create appends a person with the next ID.
type Create struct {
	FullName FullName
}

// Update replaces the person with the same ID. Unknown IDs are ignored.
type Update struct {
	Person Person
}

// Delete removes the person with PersonID. Unknown IDs are ignored.
type Delete struct {
	PersonID int
}

func (Create) isCrudEvent() {}
func (Update) isCrudEvent() {}
func (Delete) isCrudEvent() {}

// Apply returns the State after event.
func Apply(state State, event Event) State {
	switch e := event.(type) {
	case Create:
		state.Persons = append(slices.Clip(state.Persons), Person{ID: state.NextID, FullName: e.FullName})
		state.NextID++

	case Update:
		index := slices.IndexFunc(state.Persons, func(p Person) bool { return p.ID == e.Person.ID })
		if index < 0 {
			return state
		}

		state.Persons = slices.Clone(state.Persons)
		state.Persons[index] = e.Person

	case Delete:
		state.Persons = slices.DeleteFunc(slices.Clone(state.Persons), func(p Person) bool { return p.ID == e.PersonID })
	}

	return state
}

// Find returns the person with id.
func (s State) Find(id int) (Person, bool) {
	index := slices.IndexFunc(s.Persons, func(p Person) bool { return p.ID == id })
	if index < 0 {
		return Person{}, false
	}

	return s.Persons[index], true
}

// Filter returns the persons whose surname starts with prefix, in list order. An empty prefix matches all.
func (s State) Filter(prefix string) []Person {
	filtered := make([]Person, 0, len(s.Persons))

	for _, person := range s.Persons {
		if strings.HasPrefix(person.FullName.Surname, prefix) {
			filtered = append(filtered, person)
		}
	}

	return filtered
}
