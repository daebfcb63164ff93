package DHMap

import (
	"fmt"
	"math"
	"math/big"
)

// DefaultSchedule is the ascending list of prime capacities a table moves through. With the default load factor the last
// entry holds a little over two million entries.
var DefaultSchedule = []uint64{
	5, 11, 17, 37, 67, 131, 257,
	521, 1031, 2053, 4099, 8209, 16411, 32771,
	65537, 131101, 262147, 524309, 1048583, 2097169, 4194319,
}

// checkSchedule validates a capacity schedule. Entries must be primes in [2, 2^32) so that (h mod p)*a can't overflow 64 bits.
func checkSchedule(s []uint64) error {
	if len(s) == 0 {
		return fmt.Errorf("empty capacity schedule")
	}
	for i, p := range s {
		if p < 2 || p > math.MaxUint32 {
			return fmt.Errorf("capacity %d at %d is out of range [2, 2^32)", p, i)
		}
		if !new(big.Int).SetUint64(p).ProbablyPrime(20) {
			return fmt.Errorf("capacity %d at %d is not prime", p, i)
		}
		if i > 0 && s[i-1] >= p {
			return fmt.Errorf("capacity schedule isn't strictly ascending at %d", i)
		}
	}
	return nil
}

// fit returns the index of the smallest capacity c in s with n*lf <= c.
func fit(s []uint64, n, lf uint) (int, bool) {
	need := uint64(n) * uint64(lf)
	for i, p := range s {
		if need <= p {
			return i, true
		}
	}
	return -1, false
}
