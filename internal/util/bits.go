package util

import (
	"fmt"
	"io"
)

var ErrByteLengthMissMatch = fmt.Errorf("provided bytes do not have the same length for XOR operations")

// XorBytes xors each byte from a with b and returns dst
// if a and b are the same length
func XorBytes(a, b []byte) (dst []byte, err error) {
	var n = len(b)
	if n != len(a) {
		return nil, ErrByteLengthMissMatch
	}

	dst = make([]byte, n)

	for i := 0; i < n; i++ {
		dst[i] = a[i] ^ b[i]
	}

	return
}

// SampleBitSlice fills b with pseudorandom bit values read
// from prng, one bit per byte.
func SampleBitSlice(prng io.Reader, b []uint8) (err error) {
	t := make([]byte, (len(b)+7)/8)
	if _, err = prng.Read(t); err != nil {
		return err
	}

	for i := range b {
		b[i] = (t[i/8] >> (7 - i%8)) & 0x01
	}

	return nil
}

// ExtractBytesToBits fills dst with the individual bits of src,
// one bit per byte, most significant bit of each byte first.
// Panic if dst is not exactly 8 times the length of src.
func ExtractBytesToBits(src, dst []byte) {
	if len(dst) != len(src)*8 {
		panic(ErrByteLengthMissMatch)
	}

	var i int
	for _, _byte := range src {
		dst[i] = uint8((_byte >> 7) & 0x01)
		dst[i+1] = uint8((_byte >> 6) & 0x01)
		dst[i+2] = uint8((_byte >> 5) & 0x01)
		dst[i+3] = uint8((_byte >> 4) & 0x01)
		dst[i+4] = uint8((_byte >> 3) & 0x01)
		dst[i+5] = uint8((_byte >> 2) & 0x01)
		dst[i+6] = uint8((_byte >> 1) & 0x01)
		dst[i+7] = uint8(_byte & 0x01)
		i += 8
	}
}
