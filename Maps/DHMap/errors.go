package DHMap

import (
	"errors"
	"fmt"
)

var (
	ErrKeyNotFound      = errors.New("key not found")
	ErrCapacityExceeded = errors.New("capacity schedule exhausted")
	ErrStaleIterator    = errors.New("iterator used after its table was rebuilt")
	errIteratorPastEnd  = errors.New("iterator dereferenced at end")
)

// KeyNotFoundError is returned by At when the key is absent.
type KeyNotFoundError struct {
	Key any
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("key not found: %v", e.Key)
}

func (e *KeyNotFoundError) Is(target error) bool {
	return target == ErrKeyNotFound
}

// CapacityExceededError means no capacity in the schedule can hold Live entries at LoadFactor. Max is the last capacity in the schedule.
// It's a configuration fault: the table must be given a longer schedule.
type CapacityExceededError struct {
	Live       uint
	LoadFactor uint
	Max        uint64
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("capacity schedule exhausted: %d live entries need %d slots, largest capacity is %d", e.Live, uint64(e.Live)*uint64(e.LoadFactor), e.Max)
}

func (e *CapacityExceededError) Is(target error) bool {
	return target == ErrCapacityExceeded
}
