package stockpile

import "fmt"

type StaleHandleError struct{}

func (e StaleHandleError) Error() string {
	return "handle generation no longer matches its index record"
}

type LockedStoreError struct{}

func (e LockedStoreError) Error() string {
	return "store is currently locked"
}

type CapacityError struct {
	Capacity int
	Max      int
}

func (e CapacityError) Error() string {
	return fmt.Sprintf("store at maximum capacity (%d/%d)", e.Capacity, e.Max)
}

type NotUpdatableError struct{}

func (e NotUpdatableError) Error() string {
	return "payload type does not implement Updatable"
}

type CorruptStateError struct {
	Detail string
}

func (e CorruptStateError) Error() string {
	return fmt.Sprintf("store state corrupted: %s", e.Detail)
}
