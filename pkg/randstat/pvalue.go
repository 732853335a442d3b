package randstat

import "math"

// numerical parameters for the incomplete gamma evaluation
const (
	igamEpsilon = 1e-14
	igamTiny    = 1e-300
	igamMaxIter = 1000
)

// igamc evaluates the regularized upper incomplete gamma function
// Q(a, x), the survival function of the gamma distribution; the chi
// square p-value is Q(df/2, chi2/2). Series expansion below x = a+1,
// Lentz continued fraction above.
func igamc(a, x float64) float64 {
	if x < 0 || a <= 0 {
		return math.NaN()
	}
	if x == 0 {
		return 1
	}

	gln, _ := math.Lgamma(a)

	if x < a+1 {
		// series for the lower function, complemented
		ap := a
		sum := 1.0 / a
		del := sum
		for n := 0; n < igamMaxIter; n++ {
			ap++
			del *= x / ap
			sum += del
			if math.Abs(del) < math.Abs(sum)*igamEpsilon {
				break
			}
		}
		return 1 - sum*math.Exp(-x+a*math.Log(x)-gln)
	}

	// continued fraction for the upper function
	b := x + 1 - a
	c := 1 / igamTiny
	d := 1 / b
	h := d
	for i := 1; i < igamMaxIter; i++ {
		an := -float64(i) * (float64(i) - a)
		b += 2
		d = an*d + b
		if math.Abs(d) < igamTiny {
			d = igamTiny
		}
		c = b + an/c
		if math.Abs(c) < igamTiny {
			c = igamTiny
		}
		d = 1 / d
		del := d * c
		h *= del
		if math.Abs(del-1) < igamEpsilon {
			break
		}
	}

	return math.Exp(-x+a*math.Log(x)-gln) * h
}

// kolmogorovP returns the asymptotic two sided p-value for a
// Kolmogorov-Smirnov statistic d over n samples. The effective
// sqrt(n) carries the usual small sample correction term.
func kolmogorovP(d float64, n int) float64 {
	if n <= 0 || d <= 0 {
		return 1
	}

	sn := math.Sqrt(float64(n))
	lambda := (sn + 0.12 + 0.11/sn) * d

	sum := 0.0
	sign := 1.0
	converged := false
	for j := 1; j <= 100; j++ {
		term := math.Exp(-2 * float64(j*j) * lambda * lambda)
		sum += sign * term
		sign = -sign
		if term < 1e-12 {
			converged = true
			break
		}
	}
	if !converged {
		// terms shrink too slowly only when lambda is tiny, where
		// the true value is 1
		return 1
	}

	p := 2 * sum
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
