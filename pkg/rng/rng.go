package rng

import (
	"bytes"
	"fmt"
	"io"

	"github.com/Taxdi/Random-Number-Generator/internal/entropy"
	"github.com/Taxdi/Random-Number-Generator/internal/seed"
	"github.com/Taxdi/Random-Number-Generator/pkg/bbs"
	"github.com/Taxdi/Random-Number-Generator/pkg/boxmuller"
	"github.com/Taxdi/Random-Number-Generator/pkg/drbg"
	"github.com/Taxdi/Random-Number-Generator/pkg/lcg"
	"github.com/Taxdi/Random-Number-Generator/pkg/mt19937"
	"github.com/Taxdi/Random-Number-Generator/pkg/sysrand"
	"github.com/Taxdi/Random-Number-Generator/pkg/xornrbg"
)

const (
	HMACDRBG = iota
	HASHDRBG
	LCG
	MT19937
	BBS
	BOXMULLER
	XORNRBG
	OS
)

// Family is the generator family enumeration
type Family int

var (
	FamilyHMACDRBG  Family = HMACDRBG
	FamilyHASHDRBG  Family = HASHDRBG
	FamilyLCG       Family = LCG
	FamilyMT19937   Family = MT19937
	FamilyBBS       Family = BBS
	FamilyBOXMULLER Family = BOXMULLER
	FamilyXORNRBG   Family = XORNRBG
	FamilyOS        Family = OS
)

// Generator is the byte producing surface every family exposes once
// constructed.
type Generator interface {
	Bytes(n int) ([]byte, error)
}

// byteFunc adapts the deterministic generators, whose draws cannot
// fail.
type byteFunc func(n int) []byte

func (f byteFunc) Bytes(n int) ([]byte, error) {
	return f(n), nil
}

// readerSource adapts a byte stream.
type readerSource struct {
	r io.Reader
}

func (s readerSource) Bytes(n int) ([]byte, error) {
	out := make([]byte, n)
	if _, err := io.ReadFull(s.r, out); err != nil {
		return nil, err
	}
	return out, nil
}

// New constructs a generator of the given family. The DRBG families
// read 32 entropy and 16 nonce bytes from material, the deterministic
// families derive their integer seeds from it, and empty material
// falls back to operating system entropy everywhere. The OS family
// ignores material entirely.
func New(family Family, material []byte) (Generator, error) {
	switch family {
	case FamilyHMACDRBG:
		return newDRBG(drbg.HMACSHA256, material)
	case FamilyHASHDRBG:
		return newDRBG(drbg.HashSHA256, material)
	case FamilyOS:
		return sysrand.New(), nil
	}

	m, err := seedMaterial(material)
	if err != nil {
		return nil, err
	}

	switch family {
	case FamilyLCG:
		return byteFunc(lcg.NewFromBytes(m).Bytes), nil
	case FamilyMT19937:
		return byteFunc(mt19937.NewFromBytes(m).Bytes), nil
	case FamilyBBS:
		g, err := bbs.NewFromBytes(m)
		if err != nil {
			return nil, err
		}
		return byteFunc(g.Bytes), nil
	case FamilyBOXMULLER:
		return byteFunc(boxmuller.NewSeeded(seed.Derive32("boxmuller", m)).Bytes), nil
	case FamilyXORNRBG:
		return xornrbg.New(seed.Derive64("xornrbg", m)), nil
	default:
		return nil, fmt.Errorf("RNG family %d not supported", family)
	}
}

func newDRBG(m drbg.Mechanism, material []byte) (Generator, error) {
	var src io.Reader = entropy.OS()
	if len(material) > 0 {
		src = bytes.NewReader(material)
	}

	g, err := m.NewFromSource(src, nil)
	if err != nil {
		return nil, err
	}
	return readerSource{drbg.NewReader(g)}, nil
}

func seedMaterial(material []byte) ([]byte, error) {
	if len(material) > 0 {
		return material, nil
	}

	fresh := make([]byte, 16)
	if _, err := io.ReadFull(entropy.OS(), fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}

func (f Family) String() string {
	switch f {
	case FamilyHMACDRBG:
		return "hmac-drbg"
	case FamilyHASHDRBG:
		return "hash-drbg"
	case FamilyLCG:
		return "lcg"
	case FamilyMT19937:
		return "mt19937"
	case FamilyBBS:
		return "bbs"
	case FamilyBOXMULLER:
		return "box-muller"
	case FamilyXORNRBG:
		return "xor-nrbg"
	case FamilyOS:
		return "os"
	default:
		return "undefined"
	}
}
