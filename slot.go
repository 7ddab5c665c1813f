package stockpile

// slot is one storage cell. The payload's zero value stands in for
// uninitialized storage; alive tags whether it holds a constructed entity.
// record points back at the index record currently governing this cell and
// moves with the cell's contents under compaction swaps.
type slot[T any] struct {
	payload T
	record  int
	alive   bool
}

// indexRecord is the indirection layer between handles and slots. slot is
// the forward reference (retargeted by compaction swaps); generation is
// bumped exactly once each time the governed slot is reclaimed, which is
// what invalidates outstanding handles.
type indexRecord struct {
	slot       int
	generation uint64
}
