package stockpile

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Validate checks the structural invariants the store maintains at all
// times: parallel array lengths, range bounds, the slot/record bijection,
// and that everything past the pending range is reclaimed. A non-nil return
// always means a bug in the store itself.
func (s *store[T]) Validate() error {
	if len(s.slots) != len(s.records) {
		return CorruptStateError{Detail: fmt.Sprintf(
			"parallel arrays diverged: %d slots, %d records", len(s.slots), len(s.records))}
	}
	if s.size > s.sizeNext || s.sizeNext > len(s.slots) {
		return CorruptStateError{Detail: fmt.Sprintf(
			"range bounds out of order: size=%d sizeNext=%d capacity=%d",
			s.size, s.sizeNext, len(s.slots))}
	}
	for i := range s.slots {
		r := s.slots[i].record
		if r < 0 || r >= len(s.records) {
			return CorruptStateError{Detail: fmt.Sprintf(
				"slot %d references record %d out of range", i, r)}
		}
		if s.records[r].slot != i {
			return CorruptStateError{Detail: fmt.Sprintf(
				"bijection broken: slot %d -> record %d -> slot %d", i, r, s.records[r].slot)}
		}
	}
	for i := range s.records {
		p := s.records[i].slot
		if p < 0 || p >= len(s.slots) {
			return CorruptStateError{Detail: fmt.Sprintf(
				"record %d references slot %d out of range", i, p)}
		}
		if s.slots[p].record != i {
			return CorruptStateError{Detail: fmt.Sprintf(
				"bijection broken: record %d -> slot %d -> record %d", i, p, s.slots[p].record)}
		}
	}
	for i := s.sizeNext; i < len(s.slots); i++ {
		if s.slots[i].alive {
			return CorruptStateError{Detail: fmt.Sprintf(
				"slot %d alive beyond sizeNext=%d", i, s.sizeNext)}
		}
	}
	return nil
}

// Fingerprint hashes the store's bookkeeping (range bounds, slot liveness
// and pairing, record targets and generations) into a single value. Two
// stores that went through equivalent operation sequences fingerprint
// identically; payload contents are deliberately excluded.
func (s *store[T]) Fingerprint() uint64 {
	d := xxhash.New()
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = d.Write(buf[:])
	}
	put(uint64(s.size))
	put(uint64(s.sizeNext))
	for i := range s.slots {
		put(uint64(s.slots[i].record))
		if s.slots[i].alive {
			put(1)
		} else {
			put(0)
		}
	}
	for i := range s.records {
		put(uint64(s.records[i].slot))
		put(s.records[i].generation)
	}
	return d.Sum64()
}
