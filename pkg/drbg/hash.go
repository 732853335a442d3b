package drbg

import (
	"crypto/sha256"
	"encoding/binary"
	"math/big"
)

// seedlen for Hash_DRBG over SHA-256, 440 bits
const hashSeedLen = 55

// modulus for the V arithmetic, 2^440
var hashSeedMod = new(big.Int).Lsh(big.NewInt(1), hashSeedLen*8)

// hashDRBG is the Hash_DRBG mechanism of section 10.1.1 over
// SHA-256. The working state is the seedlen sized value V, the
// constant C derived alongside it and the reseed counter.
type hashDRBG struct {
	v []byte
	c []byte

	reseedCounter uint64
}

// hashDF is the derivation function of section 10.3.1. Successive
// SHA-256 blocks over a one byte counter, the four byte big endian
// output length and the input material are concatenated and truncated
// to n bytes. The length field counts bytes.
func hashDF(input []byte, n int) []byte {
	blocks := (n + sha256.Size - 1) / sha256.Size

	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(n))

	out := make([]byte, 0, blocks*sha256.Size)
	for counter := 1; counter <= blocks; counter++ {
		h := sha256.New()
		h.Write([]byte{byte(counter)})
		h.Write(length[:])
		h.Write(input)
		out = h.Sum(out)
	}

	return out[:n]
}

// newHash runs the instantiate process of section 10.1.1.2: the seed
// material is compressed to seedlen bytes through the derivation
// function, V takes the seed and C is derived from it under a 0x00
// prefix.
func newHash(entropy, nonce, personalization []byte) (*hashDRBG, error) {
	if len(entropy) < SeedLength {
		return nil, ErrInsufficientEntropy
	}

	var seedMaterial []byte
	seedMaterial = append(seedMaterial, entropy...)
	seedMaterial = append(seedMaterial, nonce...)
	seedMaterial = append(seedMaterial, personalization...)

	seed := hashDF(seedMaterial, hashSeedLen)

	g := &hashDRBG{
		v:             seed,
		c:             hashDF(append([]byte{0x00}, seed...), hashSeedLen),
		reseedCounter: 1,
	}

	return g, nil
}

// update folds provided data into V through the 0x02 prefixed hash of
// section 10.1.1.4, the Hash_DRBG analog of the HMAC update rule. An
// empty slice counts as absent and leaves the state untouched.
func (g *hashDRBG) update(provided []byte) {
	if len(provided) == 0 {
		return
	}

	h := sha256.New()
	h.Write([]byte{0x02})
	h.Write(g.v)
	h.Write(provided)
	w := h.Sum(nil)

	v := new(big.Int).SetBytes(g.v)
	v.Add(v, new(big.Int).SetBytes(w))
	v.Mod(v, hashSeedMod)
	v.FillBytes(g.v)
}

// Generate implements the generate process of section 10.1.1.4.
// Output blocks hash a big endian incrementing copy of V; afterwards
// V absorbs H(0x03 || V), C and the reseed counter modulo 2^440 so
// the generating state is never retained.
func (g *hashDRBG) Generate(n int, additional []byte) ([]byte, error) {
	if n < 0 || n > MaxBytesPerRequest {
		return nil, ErrRequestTooLarge
	}
	if g.reseedCounter > ReseedInterval {
		return nil, ErrReseedRequired
	}

	g.update(additional)

	data := make([]byte, len(g.v))
	copy(data, g.v)

	var temp []byte
	for len(temp) < n {
		sum := sha256.Sum256(data)
		temp = append(temp, sum[:]...)

		// step data as a big endian seedlen wide counter
		for i := len(data) - 1; i >= 0; i-- {
			data[i]++
			if data[i] != 0 {
				break
			}
		}
	}

	h := sha256.New()
	h.Write([]byte{0x03})
	h.Write(g.v)
	sum := h.Sum(nil)

	v := new(big.Int).SetBytes(g.v)
	v.Add(v, new(big.Int).SetBytes(sum))
	v.Add(v, new(big.Int).SetBytes(g.c))
	v.Add(v, new(big.Int).SetUint64(g.reseedCounter))
	v.Mod(v, hashSeedMod)
	v.FillBytes(g.v)

	g.reseedCounter++

	return temp[:n], nil
}

// Reseed implements the reseed process of section 10.1.1.3: the new
// seed is derived from the old V under a 0x01 prefix together with
// the fresh entropy and optional additional input, and C is re-derived
// from it.
func (g *hashDRBG) Reseed(entropy, additional []byte) error {
	if len(entropy) < SeedLength {
		return ErrInsufficientEntropy
	}

	seedMaterial := []byte{0x01}
	seedMaterial = append(seedMaterial, g.v...)
	seedMaterial = append(seedMaterial, entropy...)
	seedMaterial = append(seedMaterial, additional...)

	seed := hashDF(seedMaterial, hashSeedLen)
	g.v = seed
	g.c = hashDF(append([]byte{0x00}, seed...), hashSeedLen)
	g.reseedCounter = 1

	return nil
}

// zeroize wipes V and C and leaves the counter past the reseed
// interval, so the generator refuses output until reseeded.
func (g *hashDRBG) zeroize() {
	for i := range g.v {
		g.v[i] = 0
	}
	for i := range g.c {
		g.c[i] = 0
	}
	g.reseedCounter = ReseedInterval + 1
}
