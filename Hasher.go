package Go_DHash

import (
	"hash/maphash"
	"math/bits"
	"reflect"
	_ "runtime"
	"unsafe"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/xxh3"
	"golang.org/x/exp/constraints"
)

//go:linkname rtHash runtime.memhash
//go:noescape
func rtHash(ptr unsafe.Pointer, seed uint, len uintptr) uint

//go:linkname rtHash64 runtime.memhash64
//go:noescape
func rtHash64(ptr unsafe.Pointer, seed uint) uint

//go:linkname rtHash32 runtime.memhash32
//go:noescape
func rtHash32(ptr unsafe.Pointer, seed uint) uint

//go:linkname rtStrHash runtime.strhash
//go:noescape
func rtStrHash(ptr unsafe.Pointer, seed uint) uint

// Hasher is a seed for the runtime's memory and string hash functions. Equal seeds give equal hashes within one process only: the runtime also mixes in a random per-process key.
type Hasher uint

// HashMem hashes the memory contents in the range [addr, addr+size) as bytes.
func (u Hasher) HashMem(addr unsafe.Pointer, size uintptr) uint {
	if size == 4 {
		return rtHash32(addr, uint(u))
	} else if size == 8 {
		return rtHash64(addr, uint(u))
	}
	return rtHash(addr, uint(u), size)
}

// HashBytes hashes the given byte slice. An empty slice hashes like an empty string.
func (u Hasher) HashBytes(b []byte) uint {
	if len(b) == 0 {
		return u.HashString("")
	}
	return u.HashMem(unsafe.Pointer(&b[0]), uintptr(uint(len(b))))
}

// HashInt hashes v.
func (u Hasher) HashInt(v int) uint {
	if bits.UintSize/8 == 4 {
		return rtHash32(unsafe.Pointer(&v), uint(u))
	}
	return rtHash64(unsafe.Pointer(&v), uint(u))
}

// HashString directly hashes a string.
func (u Hasher) HashString(v string) uint {
	return rtStrHash(unsafe.Pointer(&v), uint(u))
}

// Mix64 scrambles x with seed using the SplitMix64 finalizer. The result only depends on x and seed.
func Mix64(x, seed uint64) uint64 {
	x ^= seed
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// widen reads an integer of kind k at p as a uint64, sign-extending signed kinds so that it matches uint64(v).
func widen(k reflect.Kind) func(unsafe.Pointer) uint64 {
	switch k {
	case reflect.Int8:
		return func(p unsafe.Pointer) uint64 { return uint64(*(*int8)(p)) }
	case reflect.Int16:
		return func(p unsafe.Pointer) uint64 { return uint64(*(*int16)(p)) }
	case reflect.Int32:
		return func(p unsafe.Pointer) uint64 { return uint64(*(*int32)(p)) }
	case reflect.Int64:
		return func(p unsafe.Pointer) uint64 { return uint64(*(*int64)(p)) }
	case reflect.Int:
		return func(p unsafe.Pointer) uint64 { return uint64(*(*int)(p)) }
	case reflect.Uint8:
		return func(p unsafe.Pointer) uint64 { return uint64(*(*uint8)(p)) }
	case reflect.Uint16:
		return func(p unsafe.Pointer) uint64 { return uint64(*(*uint16)(p)) }
	case reflect.Uint32:
		return func(p unsafe.Pointer) uint64 { return uint64(*(*uint32)(p)) }
	case reflect.Uint64:
		return func(p unsafe.Pointer) uint64 { return *(*uint64)(p) }
	case reflect.Uint:
		return func(p unsafe.Pointer) uint64 { return uint64(*(*uint)(p)) }
	case reflect.Uintptr:
		return func(p unsafe.Pointer) uint64 { return uint64(*(*uintptr)(p)) }
	}
	return nil
}

// For picks a hash function for K. Strings go through XXH3 and integer kinds through Mix64, so for those the hash only
// depends on the key and seed, in any process. Every other comparable type falls back to maphash.Comparable, whose seed
// is random per call to For.
func For[K comparable](seed uint64) func(K) uint64 {
	kind := reflect.TypeFor[K]().Kind()
	if kind == reflect.String {
		return func(k K) uint64 {
			return xxh3.HashStringSeed(*(*string)(unsafe.Pointer(&k)), seed)
		}
	}
	if w := widen(kind); w != nil {
		return func(k K) uint64 {
			return Mix64(w(unsafe.Pointer(&k)), seed)
		}
	}
	ms := maphash.MakeSeed()
	return func(k K) uint64 {
		return maphash.Comparable(ms, k)
	}
}

// Integer hashes integer keys with Mix64.
func Integer[K constraints.Integer](seed uint64) func(K) uint64 {
	return func(k K) uint64 {
		return Mix64(uint64(k), seed)
	}
}

// Runtime picks the runtime's memhash for integer kinds and strhash for strings, or nil for other kinds. It's faster than
// For, but the runtime mixes a random per-process key into both, so hashes differ between processes even for equal seeds.
func Runtime[K comparable](seed Hasher) func(K) uint64 {
	switch reflect.TypeFor[K]().Kind() {
	case reflect.String:
		return func(k K) uint64 {
			return uint64(seed.HashString(*(*string)(unsafe.Pointer(&k))))
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(k K) uint64 {
			return uint64(seed.HashMem(unsafe.Pointer(&k), unsafe.Sizeof(k)))
		}
	}
	return nil
}

// XXHash hashes string keys with xxHash64. It takes no seed: the output is the same in every process.
func XXHash[K ~string]() func(K) uint64 {
	return func(k K) uint64 {
		return xxhash.Sum64String(string(k))
	}
}

// XXH3 hashes string keys with seeded XXH3-64.
func XXH3[K ~string](seed uint64) func(K) uint64 {
	return func(k K) uint64 {
		return xxh3.HashStringSeed(string(k), seed)
	}
}
