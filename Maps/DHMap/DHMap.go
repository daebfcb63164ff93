/*
Package DHMap implements a single-threaded generic hash table using open addressing with randomized double hashing.

# Probing
The capacity p of the table is always a prime taken from a fixed schedule. A key with hash h starts at
place(h) = ((h mod p)*a1 + b1) mod p and advances by step(h) = ((h mod (p-1))*a2 mod (p-1)) + 1. Since p is prime, any
step in [1, p-1] visits every slot before returning to the start. The coefficients are drawn at random for the current
capacity on every rebuild, so no fixed set of keys can force long probe chains on every run.

# Deletion
Erasing a key leaves a tombstone in its slot. Tombstones keep probe chains of other keys intact and are never reused;
they are only dropped when the table is rebuilt. The rebuild trigger counts tombstones, so heavy churn still rebuilds.

# Iterators
An Iter is a position in the slot array. Anything that rebuilds the table (an Insert or Index that crosses the load
factor, Rebuild, Clear, Assign) moves every entry, after which previously obtained iterators and value pointers must not
be used. Iterators check this and panic with ErrStaleIterator.

The table isn't safe for concurrent use.
*/
package DHMap

import (
	"iter"
	"math/rand/v2"
	"slices"

	Go_DHash "github.com/g-m-twostay/go-dhash"
	"github.com/rs/zerolog"
)

// pcgStream is the fixed second word of the PCG state; the caller's seed is the first.
const pcgStream uint64 = 0x9e3779b97f4a7c15

// probe holds the coefficients of place and step for prime capacity p.
type probe struct {
	a1, b1, a2, b2 uint64
	p              uint64
}

func (f *probe) place(h uint64) uint64 {
	return (h%f.p*f.a1 + f.b1) % f.p
}

func (f *probe) step(h uint64) uint64 {
	return h%(f.p-1)*f.a2%(f.p-1) + 1
}

type Pair[K comparable, V any] struct {
	Key K
	Val V
}

type DHMap[K comparable, V any] struct {
	slots    []Slot[K, V]
	liveBits Go_DHash.BitArray
	f        probe
	capIdx   int
	live     uint
	tombs    uint
	gen      uint
	hash     func(K) uint64
	rng      *rand.PCG
	lf       uint
	sched    []uint64
	log      zerolog.Logger
}

// New table with the default hash function for K. See WithSeed on reproducibility.
func New[K comparable, V any](opts ...Option) *DHMap[K, V] {
	c := newConfig(opts)
	return build[K, V](Go_DHash.For[K](c.Seed), c)
}

// NewWithHasher creates a table that hashes keys with hash.
func NewWithHasher[K comparable, V any](hash func(K) uint64, opts ...Option) *DHMap[K, V] {
	if hash == nil {
		panic("DHMap: nil hash function")
	}
	return build[K, V](hash, newConfig(opts))
}

// From creates a table holding pairs. When a key repeats, the first value wins.
func From[K comparable, V any](pairs []Pair[K, V], opts ...Option) *DHMap[K, V] {
	m := New[K, V](opts...)
	for _, p := range pairs {
		m.Insert(p.Key, p.Val)
	}
	return m
}

// FromSeq creates a table from the pairs yielded by seq. When a key repeats, the first value wins.
func FromSeq[K comparable, V any](seq iter.Seq2[K, V], opts ...Option) *DHMap[K, V] {
	m := New[K, V](opts...)
	for k, v := range seq {
		m.Insert(k, v)
	}
	return m
}

// FromRange creates a table from the entries in [first, last) of another table, using that table's hash function.
func FromRange[K comparable, V any](first, last Iter[K, V], opts ...Option) *DHMap[K, V] {
	m := NewWithHasher[K, V](first.m.hash, opts...)
	for it := first; !it.Equal(last); it.Next() {
		m.Insert(it.Key(), it.Value())
	}
	return m
}

func build[K comparable, V any](hash func(K) uint64, c Config) *DHMap[K, V] {
	m := &DHMap[K, V]{
		hash:  hash,
		rng:   rand.NewPCG(c.Seed, pcgStream),
		lf:    c.LoadFactor,
		sched: c.Schedule,
		log:   c.Logger,
	}
	m.mustRebuild()
	return m
}

// regenerate draws the coefficients for capacity p.
func (u *DHMap[K, V]) regenerate(p uint64) {
	u.f = probe{
		a1: u.rng.Uint64()%(p-1) + 1,
		b1: u.rng.Uint64()%(p-1) + 1,
		a2: u.rng.Uint64()%(p-1) + 1,
		b2: u.rng.Uint64()%(p-1) + 1,
		p:  p,
	}
}

// locate returns the index of the live slot holding key, or -1.
func (u *DHMap[K, V]) locate(key K) int {
	if len(u.slots) == 0 {
		return -1
	}
	h := u.hash(key)
	start, d := u.f.place(h), u.f.step(h)
	for i := start; ; {
		s := &u.slots[i]
		if s.empty { //key can't be past an empty slot.
			return -1
		}
		if s.holds(key) {
			return int(i)
		}
		if i = (i + d) % u.f.p; i == start {
			return -1
		}
	}
}

// locateFree returns the first empty slot in key's probe sequence. Tombstones are skipped.
func (u *DHMap[K, V]) locateFree(key K) int {
	h := u.hash(key)
	start, d := u.f.place(h), u.f.step(h)
	for i := start; ; {
		if u.slots[i].empty {
			return int(i)
		}
		if i = (i + d) % u.f.p; i == start {
			//occupancy stays below capacity/2, so this can't happen unless the table is corrupt.
			panic("DHMap: probe sequence has no empty slot")
		}
	}
}

// put writes a key known to be absent, without checking for duplicates or the load factor.
func (u *DHMap[K, V]) put(key K, val V) int {
	i := u.locateFree(key)
	u.slots[i].fill(key, val)
	u.liveBits.Set(i)
	u.live++
	return i
}

func (u *DHMap[K, V]) overloaded() bool {
	return uint64(u.live+u.tombs)*uint64(u.lf) >= uint64(len(u.slots))
}

// Insert key with val and return an iterator to it. If key is already present nothing changes and the iterator points at
// the existing entry. May rebuild the table; if the schedule has no capacity for one more entry it panics with
// *CapacityExceededError before writing anything, so the table stays usable.
func (u *DHMap[K, V]) Insert(key K, val V) Iter[K, V] {
	if i := u.locate(key); i >= 0 {
		return u.iterAt(i)
	}
	if uint64(u.live+u.tombs+1)*uint64(u.lf) >= uint64(len(u.slots)) {
		if _, ok := fit(u.sched, u.live+1, u.lf); !ok {
			panic(&CapacityExceededError{Live: u.live + 1, LoadFactor: u.lf, Max: u.sched[len(u.sched)-1]})
		}
	}
	i := u.put(key, val)
	if u.overloaded() {
		u.mustRebuild()
		i = u.locate(key)
	}
	return u.iterAt(i)
}

// Erase key. Returns false if key wasn't present. Never rebuilds.
func (u *DHMap[K, V]) Erase(key K) bool {
	i := u.locate(key)
	if i < 0 {
		return false
	}
	u.slots[i].bury()
	u.liveBits.Clr(i)
	u.live--
	u.tombs++
	return true
}

// Find returns an iterator to key, or End if key is absent.
func (u *DHMap[K, V]) Find(key K) Iter[K, V] {
	if i := u.locate(key); i >= 0 {
		return u.iterAt(i)
	}
	return u.End()
}

func (u *DHMap[K, V]) Contains(key K) bool {
	return u.locate(key) >= 0
}

// At returns the value of key, or a *KeyNotFoundError.
func (u *DHMap[K, V]) At(key K) (V, error) {
	if i := u.locate(key); i >= 0 {
		return u.slots[i].val, nil
	}
	return *new(V), &KeyNotFoundError{Key: key}
}

// Index returns a pointer to the value of key, inserting the zero value first if key is absent. The pointer is
// invalidated like an iterator.
func (u *DHMap[K, V]) Index(key K) *V {
	i := u.locate(key)
	if i < 0 {
		i = u.Insert(key, *new(V)).i
	}
	return &u.slots[i].val
}

// Size is the number of live entries.
func (u *DHMap[K, V]) Size() uint {
	return u.live
}

func (u *DHMap[K, V]) Empty() bool {
	return u.live == 0
}

// Capacity is the current length of the slot array.
func (u *DHMap[K, V]) Capacity() uint64 {
	return uint64(len(u.slots))
}

// Tombstones that will be dropped by the next rebuild.
func (u *DHMap[K, V]) Tombstones() uint {
	return u.tombs
}

// ScheduleIndex is the position of Capacity in the capacity schedule.
func (u *DHMap[K, V]) ScheduleIndex() int {
	return u.capIdx
}

func (u *DHMap[K, V]) LoadFactor() uint {
	return u.lf
}

// HashFunction returns the function used to hash keys.
func (u *DHMap[K, V]) HashFunction() func(K) uint64 {
	return u.hash
}

// Clear removes everything and goes back to the smallest capacity with new coefficients.
func (u *DHMap[K, V]) Clear() {
	u.slots, u.liveBits = nil, Go_DHash.BitArray{}
	u.live, u.tombs = 0, 0
	u.mustRebuild()
}

// Rebuild re-draws the coefficients, moves to the smallest capacity that fits the live entries and re-inserts them,
// dropping all tombstones. If no capacity fits it returns *CapacityExceededError and leaves the table untouched.
func (u *DHMap[K, V]) Rebuild() error {
	idx, ok := fit(u.sched, u.live, u.lf)
	if !ok {
		return &CapacityExceededError{Live: u.live, LoadFactor: u.lf, Max: u.sched[len(u.sched)-1]}
	}
	pairs := make([]Pair[K, V], 0, u.live)
	for k, v := range u.All() {
		pairs = append(pairs, Pair[K, V]{k, v})
	}
	from, tombs, p := len(u.slots), u.tombs, u.sched[idx]

	u.capIdx = idx
	u.regenerate(p)
	u.slots = newSlots[K, V](p)
	u.liveBits = Go_DHash.NewBitArray(int(p))
	u.live, u.tombs = 0, 0
	u.gen++
	for _, e := range pairs {
		u.put(e.Key, e.Val)
	}
	u.log.Debug().Int("from", from).Uint64("to", p).Uint("live", u.live).Uint("tombstones", tombs).Msg("rebuilt table")
	return nil
}

func (u *DHMap[K, V]) mustRebuild() {
	if err := u.Rebuild(); err != nil {
		panic(err)
	}
}

// Clone returns a deep copy, including the state of the coefficient generator: both tables draw the same coefficients
// on their next rebuilds.
func (u *DHMap[K, V]) Clone() *DHMap[K, V] {
	c := *u
	c.slots = slices.Clone(u.slots)
	c.liveBits = u.liveBits.Clone()
	rng := *u.rng
	c.rng = &rng
	return &c
}

// Assign makes u a deep copy of src. Iterators previously obtained from u become stale.
func (u *DHMap[K, V]) Assign(src *DHMap[K, V]) {
	if u == src {
		return
	}
	gen := max(u.gen, src.gen) + 1
	*u = *src.Clone()
	u.gen = gen
}
