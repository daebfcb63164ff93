package Go_DHash

import (
	"math/bits"
)

// NewBitArray with room for at least size bits, all cleared.
func NewBitArray(size int) BitArray {
	return BitArray{bits: make([]uint, (size+bits.UintSize-1)/bits.UintSize)}
}

type BitArray struct {
	bits []uint
}

func (u BitArray) Len() int {
	return len(u.bits) * bits.UintSize
}

func (u BitArray) Get(i int) bool {
	return (u.bits[i/bits.UintSize]>>(i%bits.UintSize))&1 == 1
}

func (u BitArray) Set(i int) {
	u.bits[i/bits.UintSize] |= 1 << (i % bits.UintSize)
}

func (u BitArray) Clr(i int) {
	u.bits[i/bits.UintSize] &^= 1 << (i % bits.UintSize)
}

// First set bit, or -1 if none is set.
func (u BitArray) First() int {
	return u.Next(0)
}

// Next returns the index of the first set bit at or after i, or -1 if there is none.
func (u BitArray) Next(i int) int {
	if i < 0 {
		i = 0
	}
	w := i / bits.UintSize
	if w >= len(u.bits) {
		return -1
	}
	if cur := u.bits[w] >> (i % bits.UintSize); cur != 0 {
		return i + bits.TrailingZeros(cur)
	}
	for w++; w < len(u.bits); w++ {
		if u.bits[w] != 0 {
			return w*bits.UintSize + bits.TrailingZeros(u.bits[w])
		}
	}
	return -1
}

// Count of set bits.
func (u BitArray) Count() (n int) {
	for _, w := range u.bits {
		n += bits.OnesCount(w)
	}
	return
}

// Clone returns an independent copy.
func (u BitArray) Clone() BitArray {
	c := make([]uint, len(u.bits))
	copy(c, u.bits)
	return BitArray{bits: c}
}
