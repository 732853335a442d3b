package util

import (
	"math/bits"
)

// CountOnes counts the number of set bits in b.
func CountOnes(b []byte) (n int) {
	for _, x := range b {
		n += bits.OnesCount8(x)
	}

	return n
}

// HammingDistance counts the number of bit positions in which
// a and b differ, if a and b are the same length.
func HammingDistance(a, b []byte) (int, error) {
	if len(a) != len(b) {
		return 0, ErrByteLengthMissMatch
	}

	var n int
	for i := range a {
		n += bits.OnesCount8(a[i] ^ b[i])
	}

	return n, nil
}
