// Package bbs implements the Blum Blum Shub generator. Each step
// squares the state modulo M = p*q for two Blum primes and emits the
// least significant bit. Unpredictability reduces to the quadratic
// residuosity problem for the chosen modulus, so the toy default
// primes below give the construction, not the security.
package bbs

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/Taxdi/Random-Number-Generator/internal/seed"
)

// Default Blum primes, both congruent to 3 mod 4.
const (
	DefaultP = 1000003
	DefaultQ = 2001911
)

var ErrSeedNotCoprime = fmt.Errorf("seed is not coprime with the modulus")

var bigOne = big.NewInt(1)

// BBS holds the squaring state and the modulus.
// Not safe for concurrent use.
type BBS struct {
	state *big.Int
	m     *big.Int
}

// New returns a generator over the default modulus seeded with s.
func New(s uint64) (*BBS, error) {
	p := big.NewInt(DefaultP)
	q := big.NewInt(DefaultQ)

	return NewWithPrimes(new(big.Int).SetUint64(s), p, q)
}

// NewWithPrimes returns a generator over M = p*q. Both primes must be
// congruent to 3 mod 4 for the full period guarantees to hold; the
// seed must be coprime with M.
func NewWithPrimes(s, p, q *big.Int) (*BBS, error) {
	m := new(big.Int).Mul(p, q)
	if new(big.Int).GCD(nil, nil, s, m).Cmp(bigOne) != 0 {
		return nil, ErrSeedNotCoprime
	}

	return &BBS{state: new(big.Int).Set(s), m: m}, nil
}

// NewRandom draws seeds from r until one lands coprime with the
// default modulus.
func NewRandom(r io.Reader) (*BBS, error) {
	p := big.NewInt(DefaultP)
	q := big.NewInt(DefaultQ)
	m := new(big.Int).Mul(p, q)

	span := new(big.Int).Sub(m, big.NewInt(2))
	for {
		s, err := rand.Int(r, span)
		if err != nil {
			return nil, err
		}
		s.Add(s, big.NewInt(2))

		if new(big.Int).GCD(nil, nil, s, m).Cmp(bigOne) == 0 {
			return &BBS{state: s, m: m}, nil
		}
	}
}

// NewFromBytes seeds a generator over the default modulus from byte
// material through the domain separated derivation.
func NewFromBytes(material []byte) (*BBS, error) {
	return New(seed.Derive64("bbs", material))
}

// Modulus returns a copy of M.
func (g *BBS) Modulus() *big.Int {
	return new(big.Int).Set(g.m)
}

// NextBit squares the state modulo M and returns its low bit.
func (g *BBS) NextBit() uint8 {
	g.state.Mul(g.state, g.state)
	g.state.Mod(g.state, g.m)

	return uint8(g.state.Bit(0))
}

// Bits returns the next n bits, one per squaring.
func (g *BBS) Bits(n int) []uint8 {
	out := make([]uint8, n)
	for i := range out {
		out[i] = g.NextBit()
	}

	return out
}

// Bytes returns n bytes, packing eight successive bits most
// significant first.
func (g *BBS) Bytes(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		var b byte
		for j := 0; j < 8; j++ {
			b = b<<1 | byte(g.NextBit())
		}
		out[i] = b
	}

	return out
}

// Uint32 returns the next 32 bits packed most significant first.
func (g *BBS) Uint32() uint32 {
	var v uint32
	for i := 0; i < 32; i++ {
		v = v<<1 | uint32(g.NextBit())
	}

	return v
}
