package session

import (
	"slices"
	"sync/atomic"
)

// Roster holds the sorted names of joined players. Reads never block, so it
// can be consulted from inside a turn or from another goroutine.
type Roster struct {
	names atomic.Pointer[[]string]
}

func NewRoster() *Roster {
	r := &Roster{}
	r.names.Store(&[]string{})
	return r
}

// Names returns a copy of the current roster.
func (r *Roster) Names() []string {
	return slices.Clone(*r.names.Load())
}

func (r *Roster) set(names []string) {
	names = slices.Clone(names)
	slices.Sort(names)
	r.names.Store(&names)
}
