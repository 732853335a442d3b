// Package attack holds working demonstrations of the classic failures
// this module's weaker generators invite: keystream ciphers seeded
// from a tiny space, cloneable Mersenne Twister state, and block
// cipher modes driven by predictable or reused IVs. Everything here
// is pedagogical; the functions attack only material handed to them.
package attack

import (
	"bytes"
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Taxdi/Random-Number-Generator/internal/util"
	"github.com/Taxdi/Random-Number-Generator/pkg/lcg"
	"github.com/Taxdi/Random-Number-Generator/pkg/log"
)

var (
	ErrKnownLengths = fmt.Errorf("attack: known plaintext and ciphertext lengths differ")
	ErrNoKnownBytes = fmt.Errorf("attack: need at least one known plaintext byte")
	ErrSeedNotFound = fmt.Errorf("attack: no seed in the search space reproduces the keystream")
)

// LCGEncrypt XORs plaintext with the low byte keystream of a linear
// congruential generator. The operation is symmetric, running it
// again with the same seed and parameters decrypts.
func LCGEncrypt(plaintext []byte, seed, a, c, m uint64) []byte {
	out := lcg.NewWithParams(seed, a, c, m).Bytes(len(plaintext))
	util.Xor(out, plaintext)
	return out
}

// RecoverLCGSeed brute forces the seed of an LCG keystream cipher
// from a known plaintext fragment. The expected keystream is the XOR
// of the known plaintext and ciphertext; candidate seeds in
// [0, seedSpace) are tried until their keystream prefix matches.
//
// The lowest matching seed is returned. It is not necessarily the
// seed the encryptor used: the low byte stream depends only on a
// residue of the seed, so whole classes of seeds are equivalent, and
// any member decrypts the full message.
func RecoverLCGSeed(ctx context.Context, knownPlain, knownCipher []byte, a, c, m, seedSpace uint64) (uint64, error) {
	expected, err := util.XorBytes(knownPlain, knownCipher)
	if err != nil {
		return 0, ErrKnownLengths
	}
	if len(expected) == 0 {
		return 0, ErrNoKnownBytes
	}

	logger := log.GetLoggerFromContextWithName(ctx, "attack")
	logger.V(1).Info("brute forcing seed", "space", seedSpace, "knownBytes", len(expected))

	nWorkers := runtime.GOMAXPROCS(0)
	if uint64(nWorkers) > seedSpace {
		nWorkers = int(seedSpace)
	}
	if nWorkers < 1 {
		nWorkers = 1
	}
	workerResp := seedSpace / uint64(nWorkers)

	// each worker scans an ascending range and reports only its first
	// match, so the minimum over workers is the lowest seed overall
	found := make(chan uint64, nWorkers)
	g, ctx := errgroup.WithContext(ctx)

	for w := 0; w < nWorkers; w++ {
		w := w
		g.Go(func() error {
			lo := workerResp * uint64(w)
			hi := lo + workerResp
			if w == nWorkers-1 { // last worker takes the remainder
				hi = seedSpace
			}
			for candidate := lo; candidate < hi; candidate++ {
				if candidate%1024 == 0 && ctx.Err() != nil {
					return ctx.Err()
				}
				if matchesKeystream(candidate, a, c, m, expected) {
					found <- candidate
					return nil
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}
	close(found)

	var best uint64
	ok := false
	for s := range found {
		if !ok || s < best {
			best, ok = s, true
		}
	}
	if !ok {
		return 0, ErrSeedNotFound
	}

	logger.V(1).Info("seed recovered", "seed", best)
	return best, nil
}

func matchesKeystream(seed, a, c, m uint64, expected []byte) bool {
	g := lcg.NewWithParams(seed, a, c, m)
	for _, want := range expected {
		if byte(g.Next()) != want {
			return false
		}
	}
	return true
}

// RecoverMessage decrypts a full ciphertext after seed recovery and
// reports whether the known fragment sits at the front as claimed.
func RecoverMessage(ciphertext, knownPlain []byte, seed, a, c, m uint64) ([]byte, bool) {
	plain := LCGEncrypt(ciphertext, seed, a, c, m)
	return plain, bytes.HasPrefix(plain, knownPlain)
}
