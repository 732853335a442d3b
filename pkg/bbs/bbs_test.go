package bbs

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"testing"
)

func TestKnownBits(t *testing.T) {
	g, err := New(123456)
	if err != nil {
		t.Fatal(err)
	}

	want := []uint8{
		0, 0, 1, 0, 1, 0, 0, 0,
		0, 1, 0, 0, 0, 0, 1, 1,
		1, 0, 0, 1, 1, 1, 1, 1,
		1, 0, 1, 0, 0, 1, 0, 1,
	}
	got := g.Bits(32)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("bit %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestKnownBytes(t *testing.T) {
	want, err := hex.DecodeString("28439fa5d15c9bfa130f02e507195750")
	if err != nil {
		t.Fatal(err)
	}

	g, err := New(123456)
	if err != nil {
		t.Fatal(err)
	}
	if got := g.Bytes(16); !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestKnownUint32(t *testing.T) {
	g, err := New(123456)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := g.Uint32(), uint32(675520421); got != want {
		t.Fatalf("got %d, want %d", got, want)
	}
}

func TestSeedNotCoprime(t *testing.T) {
	// a multiple of p shares a factor with M
	if _, err := New(DefaultP); err != ErrSeedNotCoprime {
		t.Fatalf("got %v, want ErrSeedNotCoprime", err)
	}
	if _, err := New(0); err != ErrSeedNotCoprime {
		t.Fatalf("seed 0: got %v, want ErrSeedNotCoprime", err)
	}
}

func TestSmallPrimes(t *testing.T) {
	// M = 7*11 = 77, x0 = 3: squares run 9, 4, 16, 25, 9, ... so the
	// low bits cycle 1 0 0 1 after the first period
	g, err := NewWithPrimes(big.NewInt(3), big.NewInt(7), big.NewInt(11))
	if err != nil {
		t.Fatal(err)
	}

	for i, want := range []uint8{1, 0, 0, 1, 1, 0, 0, 1} {
		if got := g.NextBit(); got != want {
			t.Fatalf("bit %d: got %d, want %d", i, got, want)
		}
	}
}

func TestModulus(t *testing.T) {
	g, err := New(123456)
	if err != nil {
		t.Fatal(err)
	}

	want := new(big.Int).Mul(big.NewInt(DefaultP), big.NewInt(DefaultQ))
	if g.Modulus().Cmp(want) != 0 {
		t.Fatalf("modulus %v, want %v", g.Modulus(), want)
	}
}

func TestNewRandom(t *testing.T) {
	g, err := NewRandom(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	if b := g.Bits(64); len(b) != 64 {
		t.Fatalf("got %d bits, want 64", len(b))
	}

	// an exhausted source surfaces its error
	if _, err := NewRandom(bytes.NewReader(nil)); err == nil {
		t.Fatal("empty source did not fail")
	}
}

func TestFromBytesDeterministic(t *testing.T) {
	a, err := NewFromBytes([]byte("byte material"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewFromBytes([]byte("byte material"))
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(a.Bytes(8), b.Bytes(8)) {
		t.Fatal("identical material produced different streams")
	}
}

func BenchmarkBytes(b *testing.B) {
	g, err := New(123456)
	if err != nil {
		b.Fatal(err)
	}

	b.SetBytes(64)
	for i := 0; i < b.N; i++ {
		g.Bytes(64)
	}
}
