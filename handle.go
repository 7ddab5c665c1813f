package stockpile

// Alive reports whether the handle still references its original entity.
// O(1), no side effects. Validity is one-way: once a handle goes stale it
// never becomes valid again.
func (h Handle[T]) Alive() bool {
	return h.sto != nil && h.sto.aliveRecord(h.record, h.generation)
}

// Get returns the payload, or StaleHandleError if the entity's slot has
// been recycled. The pointer is transient: it is invalidated by the next
// Refresh (compaction moves payloads) and must not be retained across
// ticks.
func (h Handle[T]) Get() (*T, error) {
	if !h.Alive() {
		return nil, StaleHandleError{}
	}
	return h.sto.payloadFor(h.record), nil
}

// MustGet is Get for call sites that have already checked Alive.
// Dereferencing a stale handle is a programming bug, not an environmental
// failure, so it panics.
func (h Handle[T]) MustGet() *T {
	p, err := h.Get()
	if err != nil {
		panic(err)
	}
	return p
}

// Destroy marks the referenced entity dead. Idempotent; a no-op on stale or
// zero handles. Reclamation is deferred to the next Refresh, so destroying
// mid-update is always safe.
func (h Handle[T]) Destroy() {
	if h.sto == nil {
		return
	}
	h.sto.killRecord(h.record, h.generation)
}

// Destroy marks the updating entity's slot dead through its index record.
func (s Self) Destroy() {
	if s.sto == nil {
		return
	}
	s.sto.killRecord(s.record, s.generation)
}
