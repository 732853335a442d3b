package xornrbg

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/Taxdi/Random-Number-Generator/pkg/lcg"
	"github.com/Taxdi/Random-Number-Generator/pkg/mt19937"
)

func lcgSource(s uint64) Source {
	g := lcg.New(s)
	return SourceFunc(func(n int) ([]byte, error) { return g.Bytes(n), nil })
}

func mtSource(s uint32) Source {
	g := mt19937.New(s)
	return SourceFunc(func(n int) ([]byte, error) { return g.Bytes(n), nil })
}

func fixedSource(b byte) Source {
	return SourceFunc(func(n int) ([]byte, error) {
		return bytes.Repeat([]byte{b}, n), nil
	})
}

// XOR of the LCG and MT byte streams for shared seed 42
const pairSeed42 = "44594d903c8ef03160b2ca92c10910d4"

func TestCombinesPair(t *testing.T) {
	want, err := hex.DecodeString(pairSeed42)
	if err != nil {
		t.Fatal(err)
	}

	g, err := NewFromSources(lcgSource(42), mtSource(42))
	if err != nil {
		t.Fatal(err)
	}
	got, err := g.Bytes(16)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestZeroSourceIsIdentity(t *testing.T) {
	want, err := hex.DecodeString(pairSeed42)
	if err != nil {
		t.Fatal(err)
	}

	// an all zero third source exercises the three way path without
	// touching the combined stream
	g, err := NewFromSources(lcgSource(42), mtSource(42), fixedSource(0x00))
	if err != nil {
		t.Fatal(err)
	}
	got, err := g.Bytes(16)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}

	// an all ones source complements it
	g, err = NewFromSources(lcgSource(42), mtSource(42), fixedSource(0xff))
	if err != nil {
		t.Fatal(err)
	}
	got, err = g.Bytes(16)
	if err != nil {
		t.Fatal(err)
	}
	for i := range got {
		if got[i] != want[i]^0xff {
			t.Fatalf("byte %d: got %x, want %x", i, got[i], want[i]^0xff)
		}
	}
}

func TestDefaultTrio(t *testing.T) {
	g := New(42)

	a, err := g.Bytes(32)
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != 32 {
		t.Fatalf("got %d bytes, want 32", len(a))
	}

	// the OS member makes successive draws unpredictable
	b, err := New(42).Bytes(32)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(a, b) {
		t.Fatal("two OS mixed draws collided")
	}
}

func TestConditioned(t *testing.T) {
	g := Conditioned(42)

	a, err := g.Bytes(64)
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != 64 {
		t.Fatalf("got %d bytes, want 64", len(a))
	}
}

func TestNoSources(t *testing.T) {
	if _, err := NewFromSources(); err != ErrNoSources {
		t.Fatalf("got %v, want ErrNoSources", err)
	}
}

func TestShortSource(t *testing.T) {
	short := SourceFunc(func(n int) ([]byte, error) {
		return make([]byte, n-1), nil
	})

	g, err := NewFromSources(lcgSource(42), short)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := g.Bytes(16); err != ErrShortSource {
		t.Fatalf("got %v, want ErrShortSource", err)
	}
}

func TestLongSourceTruncated(t *testing.T) {
	long := SourceFunc(func(n int) ([]byte, error) {
		return make([]byte, n+5), nil
	})

	g, err := NewFromSources(lcgSource(42), long)
	if err != nil {
		t.Fatal(err)
	}
	got, err := g.Bytes(16)
	if err != nil {
		t.Fatal(err)
	}

	// zero padding beyond n must not reach the output
	if want := lcg.New(42).Bytes(16); !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}
