/*
Package stockpile provides a generational-index entity store (slot map) for
games and simulations.

Stockpile keeps live payloads densely packed in contiguous storage for
cache-friendly iteration, while handing out stable, validity-checked handles
to client code. No garbage collection pressure, no reference counting: a
handle is a record index plus a generation snapshot, and it goes stale the
moment its entity's slot is recycled.

Core Concepts:

  - Slot: a storage cell holding one payload plus liveness state.
  - Index Record: the indirection layer between a handle and a slot; it
    carries the generation counter.
  - Handle: a copyable reference combining a record index and a generation
    snapshot taken at creation time.
  - Refresh: the batched compaction that partitions alive/dead slots,
    reclaims the dead ones, and bumps their generations.

Basic Usage:

	// Define a payload
	type Enemy struct {
		HP int
	}

	func (e *Enemy) Update(self stockpile.Self, dt float64) {
		e.HP--
		if e.HP <= 0 {
			self.Destroy()
		}
	}

	// Create a store and some entities
	store := stockpile.FactoryNewStore[Enemy]()
	h, _ := store.Create(Enemy{HP: 10})

	// Drive the simulation
	for h.Alive() {
		store.Update(1.0 / 60)
		store.Refresh()
	}

Creation and destruction are deferred: new entities join the active range at
the next Refresh, and destroyed entities keep their storage (and their
handles keep reporting alive) until Refresh actually reclaims the slot. This
makes both operations safe to issue freely during an update pass.

The store is designed for single-threaded use within one simulation tick.

Stockpile is the entity backbone for the Bappa Framework but also works as a
standalone library.
*/
package stockpile
