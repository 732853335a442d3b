package seed

import (
	"github.com/twmb/murmur3"
)

// Derive64 derives a 64-bit seed from material. The label acts as a
// domain separator so two consumers seeding from the same material
// do not end up with correlated streams.
func Derive64(label string, material []byte) uint64 {
	// prepend the label and then Sum
	return murmur3.Sum64(append([]byte(label), material...))
}

// Derive32 derives a 32-bit seed from material with the same label
// separation as Derive64.
func Derive32(label string, material []byte) uint32 {
	return murmur3.Sum32(append([]byte(label), material...))
}

// Derive128 derives two 64-bit words from material, for consumers
// that need a seed wider than a machine word.
func Derive128(label string, material []byte) (uint64, uint64) {
	return murmur3.Sum128(append([]byte(label), material...))
}
