package stockpile

import (
	"iter"

	"github.com/google/uuid"
)

type Store[T any] interface {
	Create(T) (Handle[T], error)
	Destroy(...Handle[T])
	Update(dt float64) error
	Refresh() error
	Clear() error
	Each() iter.Seq[*T]
	Handles() iter.Seq2[Handle[T], *T]
	Active() int
	Pending() int
	Capacity() int
	Locked() bool
	Lock()
	Unlock()
	Stats() Stats
	ID() uuid.UUID
	Validate() error
	Fingerprint() uint64
}

// Updatable is the optional contract payload types satisfy to take part in
// Update passes. Self lets the payload act on its own entity without knowing
// where it is stored.
type Updatable interface {
	Update(self Self, dt float64)
}

// reaper is the narrow store surface handed to Self and Handle.
type reaper interface {
	killRecord(record int, generation uint64)
}

// Self identifies the entity currently being updated.
type Self struct {
	sto        reaper
	record     int
	generation uint64
}

// Handle is a copyable, non-owning reference to an entity. The zero value is
// a stale handle.
type Handle[T any] struct {
	sto        *store[T]
	record     int
	generation uint64
}

// Stats is a point-in-time snapshot of a store's bookkeeping.
type Stats struct {
	Active    int
	Pending   int
	Capacity  int
	Refreshes uint64
	Reclaimed uint64
}
