// Package boxmuller turns a uniform variate stream into normally
// distributed values through the Box-Muller transform. Each pair of
// uniforms yields two independent standard normals; the second is
// cached and served on the next call.
package boxmuller

import (
	"math"

	"github.com/Taxdi/Random-Number-Generator/pkg/mt19937"
)

// Uniform is the variate source consumed by the transform. Draws must
// land in [0, 1); zero first draws are rejected and redrawn so the
// logarithm stays finite.
type Uniform interface {
	Float64() float64
}

// Transform maps two independent uniforms to two independent standard
// normal variates.
func Transform(u1, u2 float64) (z0, z1 float64) {
	r := math.Sqrt(-2.0 * math.Log(u1))
	theta := 2.0 * math.Pi * u2

	return r * math.Cos(theta), r * math.Sin(theta)
}

// BoxMuller draws from a uniform source and scales the transformed
// output to N(mu, sigma^2).
// Not safe for concurrent use.
type BoxMuller struct {
	src      Uniform
	mu       float64
	sigma    float64
	spare    float64
	hasSpare bool
}

// New returns a standard normal generator over src.
func New(src Uniform) *BoxMuller {
	return NewNorm(src, 0, 1)
}

// NewNorm returns a generator over src producing N(mu, sigma^2).
func NewNorm(src Uniform, mu, sigma float64) *BoxMuller {
	return &BoxMuller{src: src, mu: mu, sigma: sigma}
}

// NewSeeded returns a standard normal generator over a Mersenne
// Twister seeded with s.
func NewSeeded(s uint32) *BoxMuller {
	return New(mt19937.New(s))
}

// NormFloat64 returns the next normal variate. The spare half of the
// previous transform pair is consumed before new uniforms are drawn.
func (g *BoxMuller) NormFloat64() float64 {
	if g.hasSpare {
		g.hasSpare = false
		return g.mu + g.sigma*g.spare
	}

	u1 := g.src.Float64()
	u2 := g.src.Float64()
	for u1 == 0 {
		u1 = g.src.Float64()
	}

	z0, z1 := Transform(u1, u2)
	g.spare = z1
	g.hasSpare = true

	return g.mu + g.sigma*z0
}

// Bytes maps n variates onto [0, 255] by clamping to [-4, 4] and
// scaling. The mapping assumes a standard normal stream; wider
// distributions saturate at the edges.
func (g *BoxMuller) Bytes(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		z := g.NormFloat64()
		if z < -4 {
			z = -4
		} else if z > 4 {
			z = 4
		}

		v := int((z + 4.0) / 8.0 * 256)
		if v > 255 {
			v = 255
		}
		out[i] = byte(v)
	}

	return out
}
