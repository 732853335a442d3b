// Package drbg implements deterministic random bit generators as
// specified by NIST Special Publication 800-90A Revision 1.
//
// Two mechanisms over SHA-256 are provided, HMAC_DRBG and Hash_DRBG.
// A generator is instantiated from caller supplied entropy, produces
// up to MaxBytesPerRequest bytes per request and refuses further
// output with ErrReseedRequired once ReseedInterval requests have
// been served without fresh entropy.
//
// Entropy is always injected by the caller, either as raw bytes or as
// an io.Reader; the package never reaches for an ambient source.
package drbg

import (
	"errors"
	"fmt"
	"io"
	"math/bits"

	"github.com/Taxdi/Random-Number-Generator/internal/util"
)

// Mechanism selects the DRBG construction.
type Mechanism uint8

const (
	// HMACSHA256 is HMAC_DRBG with SHA-256, section 10.1.2.
	HMACSHA256 Mechanism = 0x01
	// HashSHA256 is Hash_DRBG with SHA-256, section 10.1.1.
	HashSHA256 Mechanism = 0x02
)

const (
	// SeedLength is the entropy floor in bytes for instantiation and
	// reseeding, 256 bits for the SHA-256 mechanisms.
	SeedLength = 32

	// NonceLength is the number of nonce bytes read by NewFromSource.
	NonceLength = 16

	// ReseedInterval is the number of generate requests served before
	// the generator refuses output until it is reseeded.
	ReseedInterval = 10000

	// MaxBytesPerRequest bounds the output of a single generate
	// request, per the NIST per-request limit.
	MaxBytesPerRequest = 1 << 16
)

var (
	ErrInvalidMechanism    = errors.New("invalid DRBG mechanism")
	ErrInsufficientEntropy = fmt.Errorf("entropy input below the %d byte floor", SeedLength)
	ErrReseedRequired      = errors.New("reseed interval exceeded, reseed before generating")
	ErrRequestTooLarge     = fmt.Errorf("generate request outside [0, %d] bytes", MaxBytesPerRequest)
	ErrInvalidRange        = errors.New("lower bound must not exceed upper bound")
)

// Generator is the common interface of the SP 800-90A mechanisms in
// this package: pseudorandom output, fresh entropy intake and the
// mechanism's keyed state transition. The unexported methods keep the
// mechanism set closed.
//
// A Generator is not safe for concurrent use: every operation reads
// and rewrites the working state, so callers sharing an instance
// across goroutines must guarantee at most one in-flight operation.
type Generator interface {
	// Generate returns n pseudorandom bytes and advances the state
	// past the emitted output. additional is mixed into the state
	// before generation when non-empty.
	Generate(n int, additional []byte) ([]byte, error)

	// Reseed mixes fresh entropy into the state and resets the
	// reseed counter. additional is bound with the entropy when
	// non-empty.
	Reseed(entropy, additional []byte) error

	// update is the mechanism's state transition rule.
	update(provided []byte)

	// zeroize wipes the working state.
	zeroize()
}

// New instantiates a generator of mechanism m. entropy must be at
// least SeedLength bytes; nonce and personalization may be nil, the
// nonce length is the caller's responsibility.
func (m Mechanism) New(entropy, nonce, personalization []byte) (Generator, error) {
	switch m {
	case HMACSHA256:
		return newHMAC(entropy, nonce, personalization)
	case HashSHA256:
		return newHash(entropy, nonce, personalization)
	default:
		return nil, ErrInvalidMechanism
	}
}

// NewFromSource instantiates a generator of mechanism m with entropy
// and nonce read from src.
func (m Mechanism) NewFromSource(src io.Reader, personalization []byte) (Generator, error) {
	entropy := make([]byte, SeedLength)
	if _, err := io.ReadFull(src, entropy); err != nil {
		return nil, err
	}

	nonce := make([]byte, NonceLength)
	if _, err := io.ReadFull(src, nonce); err != nil {
		return nil, err
	}

	return m.New(entropy, nonce, personalization)
}

func (m Mechanism) String() string {
	switch m {
	case HMACSHA256:
		return "hmac-sha256"
	case HashSHA256:
		return "hash-sha256"
	default:
		return "undefined"
	}
}

// NewHMAC instantiates an HMAC_DRBG generator over SHA-256.
func NewHMAC(entropy, nonce, personalization []byte) (Generator, error) {
	return newHMAC(entropy, nonce, personalization)
}

// NewHash instantiates a Hash_DRBG generator over SHA-256.
func NewHash(entropy, nonce, personalization []byte) (Generator, error) {
	return newHash(entropy, nonce, personalization)
}

// ReseedFromSource reseeds g with SeedLength entropy bytes read
// from src.
func ReseedFromSource(g Generator, src io.Reader, additional []byte) error {
	entropy := make([]byte, SeedLength)
	if _, err := io.ReadFull(src, entropy); err != nil {
		return err
	}

	return g.Reseed(entropy, additional)
}

// Zeroize wipes g's working state. The generator keeps refusing
// output with ErrReseedRequired until fresh entropy arrives through
// Reseed. Call it when an instance goes out of use.
func Zeroize(g Generator) {
	g.zeroize()
}

// GenerateBits returns k pseudorandom bits as 0 and 1 valued bytes,
// most significant bit of each generated byte first. ceil(k/8) bytes
// are requested from g and the excess trailing bits are discarded.
func GenerateBits(g Generator, k int, additional []byte) ([]uint8, error) {
	if k < 0 {
		return nil, ErrRequestTooLarge
	}

	b, err := g.Generate((k+7)/8, additional)
	if err != nil {
		return nil, err
	}

	out := make([]uint8, len(b)*8)
	util.ExtractBytesToBits(b, out)

	return out[:k], nil
}

// Int returns a uniform pseudorandom integer in [lo, hi] inclusive.
// It draws the minimum number of bytes covering the range and redraws
// whenever the value falls outside the largest multiple of the range
// size, so the final reduction carries no modulo bias.
func Int(g Generator, lo, hi int64, additional []byte) (int64, error) {
	if lo > hi {
		return 0, ErrInvalidRange
	}

	// number of values in the range; wraps to 0 when the range
	// covers every int64, in which case any draw is acceptable
	size := uint64(hi-lo) + 1
	if size == 0 {
		b, err := g.Generate(8, additional)
		if err != nil {
			return 0, err
		}
		var v uint64
		for _, x := range b {
			v = v<<8 | uint64(x)
		}
		return int64(v), nil
	}

	nBytes := (bits.Len64(size-1) + 7) / 8

	for {
		b, err := g.Generate(nBytes, additional)
		if err != nil {
			return 0, err
		}

		var v uint64
		for _, x := range b {
			v = v<<8 | uint64(x)
		}

		if nBytes < 8 {
			max := uint64(1) << (8 * nBytes)
			if v >= max-max%size {
				continue
			}
		} else if r := -size % size; r != 0 && v >= -r {
			// max is 2^64 here so max mod size is computed in
			// wrapped uint64 arithmetic
			continue
		}

		return lo + int64(v%size), nil
	}
}

// reader adapts a Generator to io.Reader, splitting large reads into
// MaxBytesPerRequest generate requests with no additional input.
type reader struct {
	g Generator
}

// NewReader wraps g in an io.Reader. Reads draw from the generator's
// reseed budget, so a long lived stream must be reseeded when a read
// fails with ErrReseedRequired.
func NewReader(g Generator) io.Reader {
	return &reader{g: g}
}

func (r *reader) Read(p []byte) (int, error) {
	var n int
	for n < len(p) {
		m := len(p) - n
		if m > MaxBytesPerRequest {
			m = MaxBytesPerRequest
		}

		b, err := r.g.Generate(m, nil)
		if err != nil {
			return n, err
		}
		n += copy(p[n:], b)
	}

	return n, nil
}
