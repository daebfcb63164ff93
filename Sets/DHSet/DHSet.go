package DHSet

import (
	"github.com/g-m-twostay/go-dhash/Maps/DHMap"
	"github.com/g-m-twostay/go-dhash/Sets"
)

var _ Sets.ExtendedSet[int] = (*DHSet[int])(nil)

// DHSet is a set backed by a DHMap with empty values. Like the map, it isn't safe for concurrent use.
type DHSet[E comparable] struct {
	m    *DHMap.DHMap[E, struct{}]
	opts []DHMap.Option //sets derived from this one are built with these too.
}

// New DHSet of type E. opts are passed to the underlying DHMap.
func New[E comparable](opts ...DHMap.Option) *DHSet[E] {
	return &DHSet[E]{DHMap.New[E, struct{}](opts...), opts}
}

func NewWithHasher[E comparable](hash func(E) uint64, opts ...DHMap.Option) *DHSet[E] {
	return &DHSet[E]{DHMap.NewWithHasher[E, struct{}](hash, opts...), opts}
}

// Put e into the set. Returns true if e wasn't already present.
func (u *DHSet[E]) Put(e E) bool {
	n := u.m.Size()
	u.m.Insert(e, struct{}{})
	return u.m.Size() > n
}

func (u *DHSet[E]) Has(e E) bool {
	return u.m.Contains(e)
}

// Remove e from the set. Returns true if e was present.
func (u *DHSet[E]) Remove(e E) bool {
	return u.m.Erase(e)
}

func (u *DHSet[E]) Size() uint {
	return u.m.Size()
}

// Take an arbitrary element from the set without removing it. Returns zero value if the set is empty.
func (u *DHSet[E]) Take() (e E) {
	if it := u.m.Begin(); it.Valid() {
		e = it.Key()
	}
	return
}

// Range calls f on every element until it returns false. f must not add elements.
func (u *DHSet[E]) Range(f func(E) bool) {
	for e := range u.m.Keys() {
		if !f(e) {
			return
		}
	}
}

// PutAll elements of s. Returns the number of elements added.
func (u *DHSet[E]) PutAll(s Sets.Set[E]) (n uint) {
	s.Range(func(e E) bool {
		if u.Put(e) {
			n++
		}
		return true
	})
	return
}

// RemoveAll elements of s. Returns the number of elements removed.
func (u *DHSet[E]) RemoveAll(s Sets.Set[E]) (n uint) {
	s.Range(func(e E) bool {
		if u.Remove(e) {
			n++
		}
		return true
	})
	return
}

func (u *DHSet[E]) Eq(s Sets.Set[E]) bool {
	if u.Size() != s.Size() {
		return false
	}
	eq := true
	s.Range(func(e E) bool {
		eq = u.Has(e)
		return eq
	})
	return eq
}

func (u *DHSet[E]) Union(s Sets.Set[E]) {
	u.PutAll(s)
}

// Intersect keeps only the elements that are also in s.
func (u *DHSet[E]) Intersect(s Sets.Set[E]) {
	var drop []E
	for e := range u.m.Keys() {
		if !s.Has(e) {
			drop = append(drop, e)
		}
	}
	for _, e := range drop {
		u.m.Erase(e)
	}
}

// Filter returns a new set of the elements for which f is true. It has the same hash function and options as u.
func (u *DHSet[E]) Filter(f func(E) bool) Sets.ExtendedSet[E] {
	r := NewWithHasher[E](u.m.HashFunction(), u.opts...)
	for e := range u.m.Keys() {
		if f(e) {
			r.Put(e)
		}
	}
	return r
}

func (u *DHSet[E]) Clear() {
	u.m.Clear()
}

// Clone returns an independent copy.
func (u *DHSet[E]) Clone() *DHSet[E] {
	return &DHSet[E]{u.m.Clone(), u.opts}
}
