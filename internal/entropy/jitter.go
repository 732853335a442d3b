package entropy

import (
	"encoding/binary"
	"io"
	"time"

	"github.com/zeebo/blake3"
)

// samples gathered per conditioning round
const jitterSamples = 1024

// jitterReader measures scheduling and clock jitter and conditions the
// raw deltas through a blake3 XOF. The raw samples are heavily biased,
// only the conditioned output leaves this package.
type jitterReader struct {
	h *blake3.Hasher
}

// Jitter returns an entropy source backed by CPU timing jitter. It is
// slow and meant for seeding, not for bulk output.
func Jitter() io.Reader {
	return &jitterReader{h: blake3.New()}
}

func (j *jitterReader) Read(p []byte) (int, error) {
	j.h.Reset()

	var sample [8]byte
	prev := time.Now().UnixNano()
	for i := 0; i < jitterSamples; i++ {
		now := time.Now().UnixNano()
		binary.BigEndian.PutUint64(sample[:], uint64(now-prev))
		if _, err := j.h.Write(sample[:]); err != nil {
			return 0, err
		}
		prev = now
	}

	d := j.h.Digest()

	return d.Read(p)
}
