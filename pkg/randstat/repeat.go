package randstat

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/minio/highwayhash"

	"github.com/Taxdi/Random-Number-Generator/internal/util"
	"github.com/Taxdi/Random-Number-Generator/pkg/log"
)

var (
	// ErrBlockScan is returned for non positive block geometry.
	ErrBlockScan = fmt.Errorf("randstat: block size and block count must be positive")
)

// repeatKey keys the block fingerprint hash. Fixed so two scans of
// the same stream agree on their findings.
var repeatKey = []byte("block repeat fingerprint key 32b")

// RepeatResult reports repeated blocks found in a stream.
type RepeatResult struct {
	BlockSize int
	Blocks    int
	Hits      int
	// FirstHit is the index of the first repeated block, -1 when the
	// scan found none.
	FirstHit int
	Passed   bool
}

// RepeatedBlocks reads up to nBlocks blocks of blockSize bytes from r
// and flags every block already seen. Membership is approximate: seen
// fingerprints live in a Bloom filter sized for a negligible false
// positive budget, so a hit on a genuinely fresh block is possible
// but vanishingly rare. A healthy generator never repeats a block at
// these sizes; short cycle and stuck sources light up immediately.
//
// r may block, so the scan runs under ctx. An abandoned scan drains
// its reader in the background.
func RepeatedBlocks(ctx context.Context, r io.Reader, blockSize, nBlocks int) (RepeatResult, error) {
	if blockSize <= 0 || nBlocks <= 0 {
		return RepeatResult{BlockSize: blockSize, FirstHit: -1}, ErrBlockScan
	}

	logger := log.GetLoggerFromContextWithName(ctx, "randstat")
	logger.V(1).Info("scanning for repeated blocks", "blockSize", blockSize, "blocks", nBlocks)

	var res RepeatResult
	err := util.Sel(ctx, func() error {
		s := RepeatResult{BlockSize: blockSize, FirstHit: -1}
		seen := bloom.NewWithEstimates(uint(nBlocks), 1e-9)
		buf := make([]byte, blockSize)
		var fp [8]byte

		for i := 0; i < nBlocks; i++ {
			if _, err := io.ReadFull(r, buf); err != nil {
				if err == io.EOF {
					break
				}
				return fmt.Errorf("randstat: reading block %d: %v", i, err)
			}
			s.Blocks++

			binary.LittleEndian.PutUint64(fp[:], highwayhash.Sum64(buf, repeatKey))
			if seen.TestAndAdd(fp[:]) {
				s.Hits++
				if s.FirstHit < 0 {
					s.FirstHit = i
				}
			}
		}

		s.Passed = s.Hits == 0
		res = s
		return nil
	})
	if err != nil {
		return RepeatResult{BlockSize: blockSize, FirstHit: -1}, err
	}

	logger.V(1).Info("block scan done", "blocks", res.Blocks, "hits", res.Hits, "firstHit", res.FirstHit)

	return res, nil
}
