// Package xornrbg builds a hybrid generator by XOR-combining several
// byte stream sources. The combined stream is at least as hard to
// predict as the hardest single source, so mixing the OS entropy pool
// into deterministic generators keeps their structure from reaching
// the output.
package xornrbg

import (
	"fmt"

	"github.com/Taxdi/Random-Number-Generator/internal/entropy"
	"github.com/Taxdi/Random-Number-Generator/internal/util"
	"github.com/Taxdi/Random-Number-Generator/pkg/lcg"
	"github.com/Taxdi/Random-Number-Generator/pkg/mt19937"
	"github.com/Taxdi/Random-Number-Generator/pkg/sysrand"
)

var (
	ErrNoSources   = fmt.Errorf("at least one source is required")
	ErrShortSource = fmt.Errorf("source returned fewer bytes than requested")
)

// Source produces byte streams for the combiner. A source returning
// more than the requested length is truncated; returning fewer bytes
// is an error.
type Source interface {
	Bytes(n int) ([]byte, error)
}

// SourceFunc adapts a plain function to a Source.
type SourceFunc func(n int) ([]byte, error)

func (f SourceFunc) Bytes(n int) ([]byte, error) { return f(n) }

// NRBG XOR-combines the streams of its sources byte for byte.
// Not safe for concurrent use.
type NRBG struct {
	sources []Source
	whiten  bool
}

// New returns the default combiner: an LCG and a Mersenne Twister
// sharing seed s, XORed with the OS entropy stream.
func New(s uint64) *NRBG {
	l := lcg.New(s)
	m := mt19937.New(uint32(s))
	o := sysrand.New()

	g, _ := NewFromSources(
		SourceFunc(func(n int) ([]byte, error) { return l.Bytes(n), nil }),
		SourceFunc(func(n int) ([]byte, error) { return m.Bytes(n), nil }),
		SourceFunc(o.Bytes),
	)

	return g
}

// Conditioned returns the default combiner with its output passed
// through a blake2 extractor, smoothing any bias the raw XOR keeps.
func Conditioned(s uint64) *NRBG {
	g := New(s)
	g.whiten = true

	return g
}

// NewFromSources returns a combiner over the given sources.
func NewFromSources(sources ...Source) (*NRBG, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	return &NRBG{sources: sources}, nil
}

// Bytes draws n bytes from every source and XORs them together.
func (g *NRBG) Bytes(n int) ([]byte, error) {
	out, err := draw(g.sources[0], n)
	if err != nil {
		return nil, err
	}

	rest := g.sources[1:]
	for len(rest) >= 2 {
		a, err := draw(rest[0], n)
		if err != nil {
			return nil, err
		}
		b, err := draw(rest[1], n)
		if err != nil {
			return nil, err
		}
		util.DoubleXor(out, a, b)
		rest = rest[2:]
	}
	if len(rest) == 1 {
		a, err := draw(rest[0], n)
		if err != nil {
			return nil, err
		}
		util.Xor(out, a)
	}

	if g.whiten {
		return entropy.WhitenBlake2(out, n)
	}

	return out, nil
}

func draw(src Source, n int) ([]byte, error) {
	b, err := src.Bytes(n)
	if err != nil {
		return nil, err
	}
	if len(b) < n {
		return nil, ErrShortSource
	}

	return b[:n], nil
}
