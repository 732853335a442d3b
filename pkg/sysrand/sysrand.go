// Package sysrand exposes the operating system entropy source
// through the byte, word and float surface shared by the
// deterministic generators. It keeps no state of its own: every call
// delegates to the underlying reader.
package sysrand

import (
	"encoding/binary"
	"io"

	"github.com/Taxdi/Random-Number-Generator/internal/entropy"
)

// SysRand reads from an entropy stream, the OS source by default.
type SysRand struct {
	r io.Reader
}

// New returns a generator backed by the OS entropy source.
func New() *SysRand {
	return &SysRand{r: entropy.OS()}
}

// NewFromReader returns a generator backed by r. Tests use this to
// replay fixed byte sequences.
func NewFromReader(r io.Reader) *SysRand {
	return &SysRand{r: r}
}

// Bytes returns n fresh bytes from the source.
func (g *SysRand) Bytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(g.r, b); err != nil {
		return nil, err
	}

	return b, nil
}

// Uint32 returns four source bytes interpreted big endian.
func (g *SysRand) Uint32() (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(g.r, b[:]); err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint32(b[:]), nil
}

// Float64 returns a draw scaled to [0, 1).
func (g *SysRand) Float64() (float64, error) {
	v, err := g.Uint32()
	if err != nil {
		return 0, err
	}

	return float64(v) / (1 << 32), nil
}
