package stockpile

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var _ Store[struct{}] = &store[struct{}]{}

type store[T any] struct {
	cfg config
	id  uuid.UUID
	log *zap.Logger

	// locks counts nested lock holders. While held, slot storage must not
	// move: creates are staged in the op queue and flushed on final unlock.
	locks     int
	updatable bool

	// size is the active iteration range; sizeNext additionally covers
	// entities created since the last refresh.
	size     int
	sizeNext int

	// Parallel arrays, always equal length. records[slots[i].record].slot == i
	// and symmetrically, for every index.
	slots   []slot[T]
	records []indexRecord

	opQueue opQueue[T]

	refreshes uint64
	reclaimed uint64
}

func newStore[T any](opts ...Option) *store[T] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	id := uuid.New()
	_, updatable := any((*T)(nil)).(Updatable)
	return &store[T]{
		cfg:       cfg,
		id:        id,
		log:       cfg.logger.With(zap.String("store", id.String())),
		updatable: updatable,
		opQueue:   newOpQueue[T](),
	}
}

// Create places the payload in the first unused slot and returns a handle to
// it. The entity does not join the active range until the next Refresh.
// While the store is locked the payload is staged instead, so that slot
// storage cannot move under an in-progress iteration; staged handles behave
// identically to direct ones.
func (s *store[T]) Create(v T) (Handle[T], error) {
	if s.Locked() {
		return s.enqueueCreate(v)
	}
	if err := s.grow(s.sizeNext + 1); err != nil {
		return Handle[T]{}, err
	}
	p := s.sizeNext
	sl := &s.slots[p]
	sl.payload = v
	sl.alive = true
	s.records[sl.record].slot = p
	s.sizeNext++
	return s.handleFor(sl.record), nil
}

// Destroy marks the referenced entities dead. Stale handles, handles from
// other stores, and repeated calls are all no-ops. Payload teardown and
// handle invalidation happen at the next Refresh.
func (s *store[T]) Destroy(handles ...Handle[T]) {
	for _, h := range handles {
		if h.sto != s {
			continue
		}
		s.killRecord(h.record, h.generation)
	}
}

// Update runs one pass over the active range in storage order, invoking the
// payload's Update on every slot, including ones already marked dead this
// tick. The store is locked for the duration; creates issued from inside a
// payload's Update are staged and flushed when the pass ends.
func (s *store[T]) Update(dt float64) error {
	if !s.updatable {
		return NotUpdatableError{}
	}
	if s.Locked() {
		return LockedStoreError{}
	}
	s.Lock()
	defer s.Unlock()
	for i := 0; i < s.size; i++ {
		sl := &s.slots[i]
		self := Self{
			sto:        s,
			record:     sl.record,
			generation: s.records[sl.record].generation,
		}
		any(&sl.payload).(Updatable).Update(self, dt)
	}
	return nil
}

// Refresh compacts the slot array with a two-pointer partition: low scans
// left to right for dead slots, high scans right to left for alive ones,
// swapping until the pointers cross. Alive slots end up contiguous at
// [0, low); the trailing dead range is torn down and its records'
// generations are bumped, invalidating every outstanding handle for those
// entities. This is the only place generations change.
func (s *store[T]) Refresh() error {
	if s.Locked() {
		return LockedStoreError{}
	}
	low, high := 0, s.sizeNext-1
	for {
		for ; low <= high && s.slots[low].alive; low++ {
		}
		if low > high {
			break
		}
		for ; high > low && !s.slots[high].alive; high-- {
		}
		if high <= low {
			break
		}
		s.swapSlots(low, high)
		low++
		high--
	}

	oldNext := s.sizeNext
	s.size = low
	s.sizeNext = low

	var zero T
	for i := low; i < oldNext; i++ {
		s.slots[i].payload = zero
		s.records[s.slots[i].record].generation++
	}

	s.refreshes++
	if n := oldNext - low; n > 0 {
		s.reclaimed += uint64(n)
		s.log.Debug("refresh reclaimed slots",
			zap.Int("reclaimed", n),
			zap.Int("active", s.size))
	}
	return nil
}

// Clear reclaims every entity at once, live or pending, invalidating all
// outstanding handles.
func (s *store[T]) Clear() error {
	if s.Locked() {
		return LockedStoreError{}
	}
	var zero T
	for i := 0; i < s.sizeNext; i++ {
		sl := &s.slots[i]
		sl.payload = zero
		sl.alive = false
		s.records[sl.record].generation++
	}
	n := s.sizeNext
	s.size = 0
	s.sizeNext = 0
	if n > 0 {
		s.reclaimed += uint64(n)
		s.log.Debug("cleared store", zap.Int("reclaimed", n))
	}
	return nil
}

// Active reports the size of the active iteration range.
func (s *store[T]) Active() int {
	return s.size
}

// Pending reports entities created but not yet part of the active range.
func (s *store[T]) Pending() int {
	return s.sizeNext - s.size + len(s.opQueue.pending)
}

func (s *store[T]) Capacity() int {
	return len(s.slots)
}

func (s *store[T]) Locked() bool {
	return s.locks > 0
}

func (s *store[T]) Lock() {
	s.locks++
}

func (s *store[T]) Unlock() {
	if s.locks == 0 {
		return
	}
	s.locks--
	if s.locks > 0 {
		return
	}
	if err := s.flushQueue(); err != nil {
		panic(err)
	}
}

func (s *store[T]) Stats() Stats {
	return Stats{
		Active:    s.size,
		Pending:   s.Pending(),
		Capacity:  len(s.slots),
		Refreshes: s.refreshes,
		Reclaimed: s.reclaimed,
	}
}

func (s *store[T]) ID() uuid.UUID {
	return s.id
}

// swapSlots exchanges the full contents of two slots and retargets both
// governing records, preserving the slot/record bijection.
func (s *store[T]) swapSlots(a, b int) {
	s.slots[a], s.slots[b] = s.slots[b], s.slots[a]
	s.records[s.slots[a].record].slot = a
	s.records[s.slots[b].record].slot = b
}

// grow extends both parallel arrays to hold at least needed cells, pairing
// each new slot with a fresh record at the same index. Both replacement
// arrays are allocated before either field is touched, so growth is
// all-or-nothing.
func (s *store[T]) grow(needed int) error {
	if needed <= len(s.slots) {
		return nil
	}
	if s.cfg.maxCapacity > 0 && needed > s.cfg.maxCapacity {
		return CapacityError{Capacity: len(s.slots), Max: s.cfg.maxCapacity}
	}
	newCap := len(s.slots) + s.cfg.increment
	if newCap < needed {
		newCap = needed
	}
	if s.cfg.maxCapacity > 0 && newCap > s.cfg.maxCapacity {
		newCap = s.cfg.maxCapacity
	}

	oldCap := len(s.slots)
	newSlots := make([]slot[T], newCap)
	copy(newSlots, s.slots)
	newRecords := make([]indexRecord, newCap)
	copy(newRecords, s.records)
	for i := oldCap; i < newCap; i++ {
		newSlots[i] = slot[T]{record: i}
		newRecords[i] = indexRecord{slot: i}
	}
	s.slots = newSlots
	s.records = newRecords

	s.log.Debug("grew storage",
		zap.Int("capacity", newCap),
		zap.Int("previous", oldCap))
	return nil
}

func (s *store[T]) handleFor(record int) Handle[T] {
	return Handle[T]{sto: s, record: record, generation: s.records[record].generation}
}

// aliveRecord is the validity check handles delegate to: the snapshot must
// match the record's current generation. Records past the array end belong
// to staged creates awaiting materialization; those start at generation
// zero.
func (s *store[T]) aliveRecord(record int, generation uint64) bool {
	if record < 0 {
		return false
	}
	if record >= len(s.records) {
		return generation == 0
	}
	return s.records[record].generation == generation
}

// killRecord marks the governed slot dead if the generation still matches.
// Staged creates are flagged in the queue instead so they materialize dead
// and get reclaimed (and invalidated) by the next Refresh.
func (s *store[T]) killRecord(record int, generation uint64) {
	if record < 0 {
		return
	}
	if record >= len(s.records) {
		if generation != 0 {
			return
		}
		if k := record - s.sizeNext; k >= 0 && k < len(s.opQueue.pending) {
			s.opQueue.pending[k].dead = true
		}
		return
	}
	r := s.records[record]
	if r.generation != generation {
		return
	}
	if r.slot >= s.sizeNext {
		if k := r.slot - s.sizeNext; k < len(s.opQueue.pending) {
			s.opQueue.pending[k].dead = true
		}
		return
	}
	s.slots[r.slot].alive = false
}

// payloadFor resolves a record to its payload storage. Valid only for
// records that currently pass aliveRecord.
func (s *store[T]) payloadFor(record int) *T {
	if record >= len(s.records) {
		return &s.opQueue.pending[record-s.sizeNext].value
	}
	p := s.records[record].slot
	if p >= s.sizeNext {
		if k := p - s.sizeNext; k < len(s.opQueue.pending) {
			return &s.opQueue.pending[k].value
		}
	}
	return &s.slots[p].payload
}
