package drbg

import (
	"crypto/hmac"
	"crypto/sha256"
)

// hmacDRBG is the HMAC_DRBG mechanism of section 10.1.2 over
// SHA-256. The working state is the HMAC key, the value block chained
// through every output round and the reseed counter.
type hmacDRBG struct {
	key   []byte
	value []byte

	reseedCounter uint64
}

// newHMAC runs the instantiate process of section 10.1.2.3: the seed
// material entropy || nonce || personalization is mixed into the
// constant initial state through one update round. The constant
// key and value placeholders are never a valid generating state,
// they only feed that first update.
func newHMAC(entropy, nonce, personalization []byte) (*hmacDRBG, error) {
	if len(entropy) < SeedLength {
		return nil, ErrInsufficientEntropy
	}

	g := &hmacDRBG{
		key:   make([]byte, sha256.Size),
		value: make([]byte, sha256.Size),
	}
	for i := range g.value {
		g.value[i] = 0x01
	}

	var seedMaterial []byte
	seedMaterial = append(seedMaterial, entropy...)
	seedMaterial = append(seedMaterial, nonce...)
	seedMaterial = append(seedMaterial, personalization...)

	g.update(seedMaterial)
	g.reseedCounter = 1

	return g, nil
}

// update is the keyed transition of section 10.1.2.2. Two HMAC
// rounds re-derive key and value; when provided data is present a
// second pass with separator 0x01 binds it into the key. An empty
// slice counts as absent.
func (g *hmacDRBG) update(provided []byte) {
	mac := hmac.New(sha256.New, g.key)
	mac.Write(g.value)
	mac.Write([]byte{0x00})
	mac.Write(provided)
	g.key = mac.Sum(nil)

	mac = hmac.New(sha256.New, g.key)
	mac.Write(g.value)
	g.value = mac.Sum(nil)

	if len(provided) == 0 {
		return
	}

	mac = hmac.New(sha256.New, g.key)
	mac.Write(g.value)
	mac.Write([]byte{0x01})
	mac.Write(provided)
	g.key = mac.Sum(nil)

	mac = hmac.New(sha256.New, g.key)
	mac.Write(g.value)
	g.value = mac.Sum(nil)
}

// Generate implements the generate process of section 10.1.2.5.
// Output blocks are successive re-derivations of the value under the
// current key; the closing update advances the state past the emitted
// output, so a later state compromise reveals nothing about it.
func (g *hmacDRBG) Generate(n int, additional []byte) ([]byte, error) {
	if n < 0 || n > MaxBytesPerRequest {
		return nil, ErrRequestTooLarge
	}
	if g.reseedCounter > ReseedInterval {
		return nil, ErrReseedRequired
	}

	if len(additional) > 0 {
		g.update(additional)
	}

	var temp []byte
	for len(temp) < n {
		mac := hmac.New(sha256.New, g.key)
		mac.Write(g.value)
		g.value = mac.Sum(nil)
		temp = append(temp, g.value...)
	}

	g.update(additional)
	g.reseedCounter++

	return temp[:n], nil
}

// Reseed implements the reseed process of section 10.1.2.4: fresh
// entropy and optional additional input are mixed into the state and
// the reseed counter restarts.
func (g *hmacDRBG) Reseed(entropy, additional []byte) error {
	if len(entropy) < SeedLength {
		return ErrInsufficientEntropy
	}

	var seedMaterial []byte
	seedMaterial = append(seedMaterial, entropy...)
	seedMaterial = append(seedMaterial, additional...)

	g.update(seedMaterial)
	g.reseedCounter = 1

	return nil
}

// zeroize wipes the current key and value and leaves the counter past
// the reseed interval, so the generator refuses output until reseeded.
func (g *hmacDRBG) zeroize() {
	for i := range g.key {
		g.key[i] = 0
	}
	for i := range g.value {
		g.value[i] = 0
	}
	g.reseedCounter = ReseedInterval + 1
}
