// Package entropy provides the entropy source capabilities consumed by
// the generators in pkg. Sources are plain io.Readers so callers can
// inject the operating system pool, a timing jitter collector or a
// fixed test vector without the consumers knowing the difference.
package entropy

import (
	"bytes"
	"crypto/rand"
	"io"

	"golang.org/x/crypto/blake2b"
)

// OS returns the operating system entropy pool
// (/dev/urandom on Linux).
func OS() io.Reader {
	return rand.Reader
}

// Fixed returns a source that replays b and then fails,
// for deterministic instantiation in tests.
func Fixed(b []byte) io.Reader {
	return bytes.NewReader(b)
}

// WhitenBlake2 conditions src into n bytes through a blake2b XOF.
// Biased or correlated input bytes come out uniformly distributed as
// long as src carries enough entropy in the first place.
func WhitenBlake2(src []byte, n int) ([]byte, error) {
	d, err := blake2b.NewXOF(uint32(n), nil)
	if err != nil {
		return nil, err
	}
	if _, err := d.Write(src); err != nil {
		return nil, err
	}

	dst := make([]byte, n)
	if _, err := io.ReadFull(d, dst); err != nil {
		return nil, err
	}

	return dst, nil
}
