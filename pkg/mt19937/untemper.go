package mt19937

// Untemper inverts the tempering function, recovering the raw state
// word behind an observed output. Tempering is a bijection on 32 bit
// words, so recovery is exact: feeding N consecutive untempered
// outputs into SetState reconstructs the full generator state.
func Untemper(y uint32) uint32 {
	// y ^= y >> 18 is its own inverse on the surviving bits.
	y ^= y >> 18

	// Invert y ^= (y << 15) & 0xEFC60000 in one round: the shift
	// clears more low bits than the mask keeps.
	y ^= (y << 15) & 0xEFC60000

	// Invert y ^= (y << 7) & 0x9D2C5680 seven bits at a time, low
	// to high. Four rounds cover all 32 bits.
	tmp := y
	for i := 0; i < 4; i++ {
		tmp = y ^ ((tmp << 7) & 0x9D2C5680)
	}
	y = tmp

	// Invert y ^= y >> 11 high to low. Two rounds suffice.
	tmp = y
	for i := 0; i < 2; i++ {
		tmp = y ^ (tmp >> 11)
	}
	y = tmp

	return y
}
