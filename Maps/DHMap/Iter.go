package DHMap

import (
	"errors"
	"iter"
)

var errIteratorErased = errors.New("iterator points at an erased entry")

// Iter is a position in a table's slot array. The zero Iter isn't usable. Obtain one from Begin, End, Find or Insert and
// compare with End to know when to stop:
//
//	for it := m.Begin(); !it.Equal(m.End()); it.Next() {
//		...
//	}
type Iter[K comparable, V any] struct {
	m   *DHMap[K, V]
	i   int
	gen uint
}

func (u *DHMap[K, V]) iterAt(i int) Iter[K, V] {
	return Iter[K, V]{m: u, i: i, gen: u.gen}
}

// nextLive returns the first live slot at or after i, or len(u.slots).
func (u *DHMap[K, V]) nextLive(i int) int {
	if j := u.liveBits.Next(i); j >= 0 && j < len(u.slots) {
		return j
	}
	return len(u.slots)
}

// Begin points at the first live entry, or equals End if the table is empty.
func (u *DHMap[K, V]) Begin() Iter[K, V] {
	return u.iterAt(u.nextLive(0))
}

// End is one past the last slot.
func (u *DHMap[K, V]) End() Iter[K, V] {
	return u.iterAt(len(u.slots))
}

func (it Iter[K, V]) check() {
	if it.m == nil || it.gen != it.m.gen {
		panic(ErrStaleIterator)
	}
}

func (it Iter[K, V]) slot() *Slot[K, V] {
	it.check()
	if it.i >= len(it.m.slots) {
		panic(errIteratorPastEnd)
	}
	s := &it.m.slots[it.i]
	if !s.live() {
		panic(errIteratorErased)
	}
	return s
}

// Next moves to the following live entry. Next on End stays at End.
func (it *Iter[K, V]) Next() {
	it.check()
	if it.i < len(it.m.slots) {
		it.i = it.m.nextLive(it.i + 1)
	}
}

// Valid reports whether it points at a slot rather than End.
func (it Iter[K, V]) Valid() bool {
	it.check()
	return it.i < len(it.m.slots)
}

// Equal compares table and position.
func (it Iter[K, V]) Equal(o Iter[K, V]) bool {
	return it.m == o.m && it.i == o.i
}

func (it Iter[K, V]) Key() K {
	return it.slot().key
}

func (it Iter[K, V]) Value() V {
	return it.slot().val
}

// Ptr to the value in the table. It's valid as long as the iterator is.
func (it Iter[K, V]) Ptr() *V {
	return &it.slot().val
}

func (it Iter[K, V]) SetValue(v V) {
	it.slot().val = v
}

// All yields live entries in slot order. f must not insert into or rebuild the table, setting values through Index is fine
// when the key is present.
func (u *DHMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i := u.nextLive(0); i < len(u.slots); i = u.nextLive(i + 1) {
			if s := &u.slots[i]; !yield(s.key, s.val) {
				return
			}
		}
	}
}

func (u *DHMap[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range u.All() {
			if !yield(k) {
				return
			}
		}
	}
}

func (u *DHMap[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range u.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// Range calls f on every live entry until f returns false.
func (u *DHMap[K, V]) Range(f func(K, V) bool) {
	for k, v := range u.All() {
		if !f(k, v) {
			return
		}
	}
}
