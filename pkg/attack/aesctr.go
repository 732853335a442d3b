package attack

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/Taxdi/Random-Number-Generator/internal/util"
)

var (
	ErrNonceSize = fmt.Errorf("attack: ctr nonce must be 8 bytes")
)

// CTREncrypt encrypts plaintext under AES-CTR. The 8 byte nonce fills
// the top half of the counter block and the bottom half counts blocks
// from zero, so reusing a nonce under the same key replays the whole
// keystream.
func CTREncrypt(key, nonce, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != 8 {
		return nil, ErrNonceSize
	}

	iv := make([]byte, aes.BlockSize)
	copy(iv, nonce)

	out := make([]byte, len(plaintext))
	cipher.NewCTR(block, iv).XORKeyStream(out, plaintext)
	return out, nil
}

// XorStreams XORs two ciphertexts produced under the same keystream.
// The keystream cancels, leaving the XOR of the plaintexts. Inputs
// are trimmed to the shorter length.
func XorStreams(c1, c2 []byte) []byte {
	n := len(c1)
	if len(c2) < n {
		n = len(c2)
	}

	out := append([]byte(nil), c1[:n]...)
	util.Xor(out, c2[:n])
	return out
}

// RecoverFromNonceReuse recovers the second plaintext from two
// ciphertexts that shared key and nonce, given the first plaintext.
func RecoverFromNonceReuse(c1, c2, knownPlain []byte) []byte {
	x := XorStreams(c1, c2)
	n := len(x)
	if len(knownPlain) < n {
		n = len(knownPlain)
	}

	out := append([]byte(nil), x[:n]...)
	util.Xor(out, knownPlain[:n])
	return out
}

// CribHit is a plausible placement of a known fragment.
type CribHit struct {
	Pos  int
	Text string
}

// CribDrag slides a known fragment of one plaintext along the XOR of
// two keystream reused ciphertexts. Wherever the placement is correct
// the XOR uncovers the other plaintext at that offset, so positions
// whose recovery decodes to printable text come back as candidates
// for a human to sift.
func CribDrag(xored, crib []byte) []CribHit {
	var hits []CribHit
	if len(crib) == 0 || len(xored) < len(crib) {
		return hits
	}

	rec := make([]byte, len(crib))
	for pos := 0; pos+len(crib) <= len(xored); pos++ {
		copy(rec, xored[pos:pos+len(crib)])
		util.Xor(rec, crib)
		if printable(rec) {
			hits = append(hits, CribHit{Pos: pos, Text: string(rec)})
		}
	}
	return hits
}

func printable(b []byte) bool {
	for _, c := range b {
		if c >= 0x20 && c < 0x7F {
			continue
		}
		switch c {
		case '\n', '\r', '\t':
			continue
		}
		return false
	}
	return true
}
