// Package lcg implements the linear congruential generator over the
// recurrence X_{n+1} = (a*X_n + c) mod m, with the glibc parameters
// by default.
//
// The generator is fast but statistically weak: the low byte cycles
// quickly, lattice structure shows up in consecutive draws and the
// whole stream is recoverable from a handful of outputs. It carries
// no cryptographic strength and exists here as a study subject for
// the statistical battery and the seed recovery attack.
package lcg

import (
	"github.com/Taxdi/Random-Number-Generator/internal/seed"
)

// glibc parameters
const (
	DefaultA = 1103515245
	DefaultC = 12345
	DefaultM = 1 << 31
)

// LCG holds the recurrence parameters and the current state.
// Not safe for concurrent use.
type LCG struct {
	a, c, m uint64
	state   uint64
}

// New returns a generator with the glibc parameters seeded with s.
func New(s uint64) *LCG {
	return NewWithParams(s, DefaultA, DefaultC, DefaultM)
}

// NewWithParams returns a generator over custom parameters. The seed
// is reduced modulo m.
func NewWithParams(s, a, c, m uint64) *LCG {
	return &LCG{a: a, c: c, m: m, state: s % m}
}

// NewFromBytes seeds a glibc parameter generator from arbitrary byte
// material through the domain separated derivation.
func NewFromBytes(material []byte) *LCG {
	return New(seed.Derive64("lcg", material))
}

// Next advances the recurrence once and returns the new state.
func (l *LCG) Next() uint32 {
	l.state = (l.a*l.state + l.c) % l.m
	return uint32(l.state)
}

// Float64 returns the next draw scaled to [0, 1).
func (l *LCG) Float64() float64 {
	return float64(l.Next()) / float64(l.m)
}

// Bytes returns n bytes, the low byte of each successive state.
// This is the weakest slice of the state and the reason the byte
// stream fails the battery so quickly.
func (l *LCG) Bytes(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(l.Next())
	}
	return out
}

// Params returns the recurrence parameters a, c and m.
func (l *LCG) Params() (a, c, m uint64) {
	return l.a, l.c, l.m
}
