package stockpile

import "iter"

// Each iterates payloads in the active range in storage order. Like Update,
// it visits slots already marked dead this tick. The store is locked for
// the duration of the loop; creates issued from inside it are staged.
func (s *store[T]) Each() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		s.Lock()
		defer s.Unlock()
		for i := 0; i < s.size; i++ {
			if !yield(&s.slots[i].payload) {
				return
			}
		}
	}
}

// Handles iterates the active range yielding a handle alongside each
// payload. Handles built here snapshot the current generation, exactly as
// Create does.
func (s *store[T]) Handles() iter.Seq2[Handle[T], *T] {
	return func(yield func(Handle[T], *T) bool) {
		s.Lock()
		defer s.Unlock()
		for i := 0; i < s.size; i++ {
			sl := &s.slots[i]
			if !yield(s.handleFor(sl.record), &sl.payload) {
				return
			}
		}
	}
}
