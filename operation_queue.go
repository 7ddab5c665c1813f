package stockpile

// pendingCreate is a staged entity awaiting materialization. dead is set
// when the entity is destroyed before its queue is flushed; it then
// materializes dead and the next Refresh reclaims it, invalidating the
// handle that was issued for it.
type pendingCreate[T any] struct {
	value T
	dead  bool
}

type opQueue[T any] struct {
	pending []pendingCreate[T]
}

func newOpQueue[T any]() opQueue[T] {
	return opQueue[T]{}
}

// enqueueCreate stages a create issued while the store is locked. The
// handle is computed up front: the staged entity's future position is
// already known, and so is the record that position pairs with (an existing
// recycled pair, or a fresh identity pair past the current capacity).
func (s *store[T]) enqueueCreate(v T) (Handle[T], error) {
	p := s.sizeNext + len(s.opQueue.pending)
	if s.cfg.maxCapacity > 0 && p >= s.cfg.maxCapacity {
		return Handle[T]{}, CapacityError{Capacity: len(s.slots), Max: s.cfg.maxCapacity}
	}
	record := p
	var generation uint64
	if p < len(s.slots) {
		record = s.slots[p].record
		generation = s.records[record].generation
	}
	s.opQueue.pending = append(s.opQueue.pending, pendingCreate[T]{value: v})
	return Handle[T]{sto: s, record: record, generation: generation}, nil
}

// flushQueue materializes staged creates in FIFO order once the store is
// fully unlocked. Capacity was validated at enqueue time, so growth here
// cannot exceed a configured maximum.
func (s *store[T]) flushQueue() error {
	if len(s.opQueue.pending) == 0 {
		return nil
	}
	if err := s.grow(s.sizeNext + len(s.opQueue.pending)); err != nil {
		return err
	}
	for i := range s.opQueue.pending {
		pc := &s.opQueue.pending[i]
		p := s.sizeNext
		sl := &s.slots[p]
		sl.payload = pc.value
		sl.alive = !pc.dead
		s.records[sl.record].slot = p
		s.sizeNext++
	}
	s.opQueue.pending = s.opQueue.pending[:0]
	return nil
}
