package attack

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Taxdi/Random-Number-Generator/internal/entropy"
	"github.com/Taxdi/Random-Number-Generator/internal/util"
)

var (
	ErrBlockSize = fmt.Errorf("attack: want exactly one AES block of %d bytes", aes.BlockSize)
)

// pkcs7Pad appends 1 to blockSize bytes, each holding the pad length.
func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	out := make([]byte, 0, len(data)+n)
	out = append(out, data...)
	return append(out, bytes.Repeat([]byte{byte(n)}, n)...)
}

// CBCEncrypt encrypts plaintext under AES-CBC with PKCS#7 padding.
func CBCEncrypt(key, iv, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	if len(iv) != aes.BlockSize {
		return nil, ErrBlockSize
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)
	return out, nil
}

// CBCOracle encrypts submissions under a fixed key with a counter
// derived IV. The counter is the vulnerability: anyone watching the
// sequence knows the IV the next encryption will use.
type CBCOracle struct {
	block   cipher.Block
	counter uint64
}

// NewCBCOracle builds an oracle over the given AES key. A nil key
// draws 16 fresh bytes from the operating system.
func NewCBCOracle(key []byte) (*CBCOracle, error) {
	if key == nil {
		key = make([]byte, 16)
		if _, err := io.ReadFull(entropy.OS(), key); err != nil {
			return nil, err
		}
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return &CBCOracle{block: block}, nil
}

// NextIV returns the IV the next Encrypt call will use, the counter
// big endian in the low half of the block.
func (o *CBCOracle) NextIV() []byte {
	iv := make([]byte, aes.BlockSize)
	binary.BigEndian.PutUint64(iv[8:], o.counter)
	return iv
}

// Encrypt pads and encrypts plaintext with the current counter IV and
// advances the counter.
func (o *CBCOracle) Encrypt(plaintext []byte) (iv, ciphertext []byte) {
	iv = o.NextIV()
	o.counter++

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	ciphertext = make([]byte, len(padded))
	cipher.NewCBCEncrypter(o.block, iv).CryptBlocks(ciphertext, padded)
	return iv, ciphertext
}

// DetectEqualPlaintext tests whether target is the plaintext behind
// an earlier oracle encryption, given that encryption's IV and first
// ciphertext block. In CBC the first block is E(P0 XOR IV), so
// submitting nextIV XOR prevIV XOR target makes the cipher inputs
// collide exactly when the guess is right, and the first ciphertext
// block gives the equality away.
func (o *CBCOracle) DetectEqualPlaintext(prevIV, prevBlock, target []byte) (bool, error) {
	if len(prevIV) != aes.BlockSize || len(prevBlock) != aes.BlockSize {
		return false, ErrBlockSize
	}

	chosen := pkcs7Pad(target, aes.BlockSize)[:aes.BlockSize]
	util.DoubleXor(chosen, o.NextIV(), prevIV)

	_, ct := o.Encrypt(chosen)
	return bytes.Equal(ct[:aes.BlockSize], prevBlock), nil
}
