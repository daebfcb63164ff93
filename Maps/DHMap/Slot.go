package DHMap

// Slot is one position of the table. A slot is exactly one of empty, tombstoned or live; an empty slot is never tombstoned.
type Slot[K comparable, V any] struct {
	key        K
	val        V
	empty      bool
	tombstoned bool
}

func (s *Slot[K, V]) live() bool {
	return !s.empty && !s.tombstoned
}

func (s *Slot[K, V]) holds(key K) bool {
	return s.live() && s.key == key
}

func (s *Slot[K, V]) fill(key K, val V) {
	s.key, s.val = key, val
	s.empty, s.tombstoned = false, false
}

// bury turns a live slot into a tombstone. The key stays so the slot keeps its place in probe sequences, the value is
// dropped so it can be collected.
func (s *Slot[K, V]) bury() {
	s.tombstoned = true
	s.val = *new(V)
}

func newSlots[K comparable, V any](n uint64) []Slot[K, V] {
	s := make([]Slot[K, V], n)
	for i := range s {
		s[i].empty = true
	}
	return s
}
