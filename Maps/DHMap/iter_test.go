package DHMap

import (
	"errors"
	"testing"
)

func TestIter_All(t *testing.T) {
	M := New[int, int](WithSeed(20))
	for i := 0; i < 100; i++ {
		M.Insert(i, i)
	}
	n := 0
	var want []int
	for k := range M.Keys() {
		want = append(want, k)
	}
	for it := M.Begin(); !it.Equal(M.End()); it.Next() {
		if it.Key() != want[n] {
			t.Errorf("iterator and All disagree at %d", n)
		}
		it.SetValue(it.Value() + 1)
		n++
	}
	if n != 100 {
		t.Errorf("iterated %d entries", n)
	}
	for i := 0; i < 100; i++ {
		if v, _ := M.At(i); v != i+1 {
			t.Errorf("SetValue lost for %d", i)
		}
	}
	if M.Size() != 100 {
		t.Error("SetValue changed the size")
	}
}

func TestIter_Ptr(t *testing.T) {
	M := New[string, []int](WithSeed(21))
	it := M.Insert("a", nil)
	*it.Ptr() = append(*it.Ptr(), 1, 2)
	if v, _ := M.At("a"); len(v) != 2 {
		t.Error("wrong Ptr")
	}
}

func TestIter_End(t *testing.T) {
	M := New[int, int](WithSeed(22))
	if !M.Begin().Equal(M.End()) {
		t.Error("empty table has a first entry")
	}
	it := M.End()
	it.Next()
	if !it.Equal(M.End()) || it.Valid() {
		t.Error("Next moved past End")
	}
	v := recoverPanic(t, func() { M.End().Key() })
	if v != errIteratorPastEnd {
		t.Errorf("wrong panic %v", v)
	}
	var zero Iter[int, int]
	recoverPanic(t, func() { zero.Valid() })
}

func TestIter_Stale(t *testing.T) {
	M := New[int, int](WithSeed(23))
	M.Insert(1, 1)
	it := M.Find(1)
	M.Insert(2, 2) //5 slots, 2 occupied: no rebuild.
	if it.Key() != 1 {
		t.Error("iterator broke without a rebuild")
	}
	M.Insert(3, 3) //rebuild.
	v := recoverPanic(t, func() { it.Value() })
	if err, ok := v.(error); !ok || !errors.Is(err, ErrStaleIterator) {
		t.Errorf("wrong panic %v", v)
	}
	it = M.Find(3)
	M.Clear()
	recoverPanic(t, func() { it.Next() })
	it = M.Begin()
	if err := M.Rebuild(); err != nil {
		t.Fatal(err)
	}
	recoverPanic(t, func() { it.Valid() })
}

func TestIter_Erased(t *testing.T) {
	M := New[int, int](WithSeed(24))
	M.Insert(1, 1)
	M.Insert(2, 2)
	it := M.Find(1)
	M.Erase(1)
	v := recoverPanic(t, func() { it.Key() })
	if v != errIteratorErased {
		t.Errorf("wrong panic %v", v)
	}
	it.Next()
	if it.Valid() && it.Key() == 1 {
		t.Error("advanced onto an erased entry")
	}
}

func TestIter_FromRange(t *testing.T) {
	M := New[int, int](WithSeed(25))
	for i := 0; i < 40; i++ {
		M.Insert(i, -i)
	}
	C := FromRange(M.Begin(), M.End(), WithSeed(26))
	if C.Size() != M.Size() {
		t.Errorf("wrong size %d", C.Size())
	}
	for k, v := range M.All() {
		if got, err := C.At(k); err != nil || got != v {
			t.Errorf("wrong value for %d", k)
		}
	}
	first := M.Begin()
	last := first
	for i := 0; i < 10; i++ {
		last.Next()
	}
	if P := FromRange(first, last); P.Size() != 10 {
		t.Errorf("wrong partial size %d", P.Size())
	}
}

func TestIter_Range(t *testing.T) {
	M := New[int, int](WithSeed(27))
	for i := 0; i < 30; i++ {
		M.Insert(i, i)
	}
	n := 0
	M.Range(func(k, v int) bool {
		n++
		return n < 5
	})
	if n != 5 {
		t.Errorf("Range didn't stop: %d", n)
	}
	sum := 0
	for v := range M.Values() {
		sum += v
	}
	if sum != 29*30/2 {
		t.Errorf("wrong sum %d", sum)
	}
}
