// Package mt19937 implements the 32 bit Mersenne Twister. Period
// 2^19937 - 1 and excellent statistical properties, but no
// cryptographic strength: the internal state is recoverable from N
// consecutive outputs by inverting the tempering function.
package mt19937

import (
	"encoding/binary"

	"github.com/Taxdi/Random-Number-Generator/internal/seed"
)

// N is the state size in words. Observing N consecutive outputs is
// enough to clone the generator.
const N = 624

// DefaultSeed is the seed used by the canonical mt19937ar reference
// code.
const DefaultSeed = 5489

const (
	m         = 397
	matrixA   = 0x9908B0DF
	upperMask = 0x80000000
	lowerMask = 0x7FFFFFFF
	initF     = 1812433253
)

// MT19937 holds the N word state and the extraction index.
// Not safe for concurrent use.
type MT19937 struct {
	mt    [N]uint32
	index int
}

// New returns a generator seeded with s.
func New(s uint32) *MT19937 {
	g := new(MT19937)
	g.Seed(s)
	return g
}

// NewFromBytes seeds a generator from arbitrary byte material through
// the domain separated derivation.
func NewFromBytes(material []byte) *MT19937 {
	return New(seed.Derive32("mt19937", material))
}

// Seed resets the state from s.
func (g *MT19937) Seed(s uint32) {
	g.mt[0] = s
	for i := 1; i < N; i++ {
		prev := g.mt[i-1]
		g.mt[i] = initF*(prev^(prev>>30)) + uint32(i)
	}
	g.index = N
}

// SetState replaces the internal state with the given N words and
// forces a twist on the next extraction. A clone built from
// untempered victim outputs continues the victim's stream from here.
func (g *MT19937) SetState(words [N]uint32) {
	g.mt = words
	g.index = N
}

// twist generates the next N state words in place.
func (g *MT19937) twist() {
	for i := 0; i < N; i++ {
		x := (g.mt[i] & upperMask) | (g.mt[(i+1)%N] & lowerMask)
		xa := x >> 1
		if x&1 == 1 {
			xa ^= matrixA
		}
		g.mt[i] = g.mt[(i+m)%N] ^ xa
	}
	g.index = 0
}

// Uint32 extracts the next tempered 32 bit output.
func (g *MT19937) Uint32() uint32 {
	if g.index >= N {
		g.twist()
	}

	y := temper(g.mt[g.index])
	g.index++

	return y
}

// Float64 returns the next draw scaled to [0, 1).
func (g *MT19937) Float64() float64 {
	return float64(g.Uint32()) / (1 << 32)
}

// Bytes returns n bytes of output, four big endian bytes per
// extracted word, truncated to n.
func (g *MT19937) Bytes(n int) []byte {
	out := make([]byte, 0, n+3)
	for len(out) < n {
		out = binary.BigEndian.AppendUint32(out, g.Uint32())
	}
	return out[:n]
}

// temper diffuses a raw state word across all 32 output bits.
func temper(y uint32) uint32 {
	y ^= y >> 11
	y ^= (y << 7) & 0x9D2C5680
	y ^= (y << 15) & 0xEFC60000
	y ^= y >> 18
	return y
}
