package DHSet

import (
	"bytes"
	"testing"

	"github.com/g-m-twostay/go-dhash/Maps/DHMap"
	"github.com/rs/zerolog"
)

func TestDHSet_All(t *testing.T) {
	S := New[int](DHMap.WithSeed(1))
	for i := 0; i < 10; i++ {
		if !S.Put(i) {
			t.Error("wrong put 1")
		}
		if S.Put(i) {
			t.Error("wrong put 2")
		}
	}
	for i := 0; i < 10; i++ {
		if !S.Has(i) {
			t.Error("wrong has 1")
		}
	}
	for i := 0; i < 5; i++ {
		if !S.Remove(i) {
			t.Error("wrong remove 1")
		}
		if S.Remove(i) {
			t.Error("wrong remove 2")
		}
	}
	for i := 0; i < 5; i++ {
		if S.Has(i) {
			t.Error("wrong has 2")
		}
	}
	if S.Size() != 5 {
		t.Errorf("wrong size %d", S.Size())
	}
	if e := S.Take(); e < 5 || !S.Has(e) {
		t.Errorf("wrong take %d", e)
	}
}

func TestDHSet_Ops(t *testing.T) {
	A, B := New[int](DHMap.WithSeed(2)), New[int](DHMap.WithSeed(3))
	for i := 0; i < 20; i++ {
		A.Put(i)
	}
	for i := 10; i < 30; i++ {
		B.Put(i)
	}
	C := A.Clone()
	C.Intersect(B)
	if C.Size() != 10 || !C.Has(10) || C.Has(9) {
		t.Error("wrong intersect")
	}
	if n := C.RemoveAll(A); n != 10 || C.Size() != 0 {
		t.Error("wrong remove all")
	}
	if A.Size() != 20 {
		t.Error("clone shares storage")
	}
	A.Union(B)
	if A.Size() != 30 {
		t.Errorf("wrong union %d", A.Size())
	}
	even := A.Filter(func(e int) bool { return e%2 == 0 })
	if even.Size() != 15 || even.Has(3) || !even.Has(28) {
		t.Error("wrong filter")
	}
	if !even.Eq(even.Filter(func(int) bool { return true })) || even.Eq(A) {
		t.Error("wrong eq")
	}
	A.Clear()
	if A.Size() != 0 || A.Take() != 0 {
		t.Error("wrong clear")
	}
}

func TestDHSet_FilterKeepsOptions(t *testing.T) {
	var buf bytes.Buffer
	S := New[int](DHMap.WithSeed(2), DHMap.WithLoadFactor(4), DHMap.WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))
	for i := 0; i < 100; i++ {
		S.Put(i)
	}
	buf.Reset()
	R := S.Filter(func(e int) bool { return e%2 == 0 }).(*DHSet[int])
	if R.Size() != 50 || !R.Has(98) || R.Has(99) {
		t.Error("wrong filter")
	}
	if R.m.LoadFactor() != 4 {
		t.Errorf("load factor %d", R.m.LoadFactor())
	}
	if buf.Len() == 0 {
		t.Error("filtered set doesn't log")
	}
	if C := R.Clone().Filter(func(int) bool { return true }).(*DHSet[int]); C.m.LoadFactor() != 4 {
		t.Error("clone lost options")
	}
}
