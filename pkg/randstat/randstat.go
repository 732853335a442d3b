// Package randstat is a black box statistical battery for byte and
// bit streams. It judges output quality only, knows nothing about
// generator internals, and is descriptive rather than adversarial: a
// stream passing every test here can still be fully predictable.
package randstat

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/Taxdi/Random-Number-Generator/pkg/log"
)

// Significance is the rejection threshold for the p-value based
// tests.
const Significance = 0.05

// defaultLags are the shifts tested when the caller names none.
var defaultLags = []int{1, 2, 4, 8, 16}

// EntropyResult reports Shannon entropy per byte. There is no pass
// criterion, the ratio against the 8 bit maximum speaks for itself.
type EntropyResult struct {
	BitsPerByte float64
	Max         float64
	Ratio       float64
}

// ChiSquareResult reports byte uniformity over 256 bins.
type ChiSquareResult struct {
	Chi2   float64
	DF     int
	PValue float64
	Passed bool
}

// AutocorrResult reports serial correlation at the tested lags.
type AutocorrResult struct {
	Lags         []int
	Correlations map[int]float64
	MaxAbs       float64
	Passed       bool
}

// KSResult reports the Kolmogorov-Smirnov distance between the
// empirical byte distribution and the uniform one.
type KSResult struct {
	D      float64
	PValue float64
	Passed bool
}

// ShannonEntropy measures the entropy of the byte histogram. A
// perfectly uniform source reaches 8 bits per byte.
func ShannonEntropy(data []byte) EntropyResult {
	r := EntropyResult{Max: 8}
	if len(data) == 0 {
		return r
	}

	var counts [256]int
	for _, b := range data {
		counts[b]++
	}

	n := float64(len(data))
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / n
		r.BitsPerByte -= p * math.Log2(p)
	}
	r.Ratio = r.BitsPerByte / r.Max * 100

	return r
}

// ChiSquare tests byte uniformity: 256 categories, 255 degrees of
// freedom, expected count n/256 per bin.
func ChiSquare(data []byte) ChiSquareResult {
	r := ChiSquareResult{DF: 255}
	if len(data) == 0 {
		return r
	}

	var observed [256]int
	for _, b := range data {
		observed[b]++
	}

	expected := float64(len(data)) / 256
	for _, obs := range observed {
		d := float64(obs) - expected
		r.Chi2 += d * d / expected
	}

	r.PValue = igamc(float64(r.DF)/2, r.Chi2/2)
	r.Passed = r.PValue > Significance

	return r
}

// Autocorrelation computes the serial correlation coefficient at each
// lag. Coefficients near zero mean neighbouring bytes carry no linear
// relationship; a constant stream has no variance and fails outright.
func Autocorrelation(data []byte, lags ...int) AutocorrResult {
	if len(lags) == 0 {
		lags = defaultLags
	}

	r := AutocorrResult{
		Lags:         lags,
		Correlations: make(map[int]float64, len(lags)),
	}

	n := len(data)
	var mean float64
	for _, b := range data {
		mean += float64(b)
	}
	if n > 0 {
		mean /= float64(n)
	}

	var variance float64
	for _, b := range data {
		d := float64(b) - mean
		variance += d * d
	}
	if n > 0 {
		variance /= float64(n)
	}

	if variance == 0 {
		for _, lag := range lags {
			r.Correlations[lag] = 0
		}
		return r
	}

	for _, lag := range lags {
		if lag <= 0 || lag >= n {
			r.Correlations[lag] = 0
			continue
		}

		var cov float64
		for i := 0; i < n-lag; i++ {
			cov += (float64(data[i]) - mean) * (float64(data[i+lag]) - mean)
		}
		cov /= float64(n - lag)

		c := cov / variance
		r.Correlations[lag] = c
		if math.Abs(c) > r.MaxAbs {
			r.MaxAbs = math.Abs(c)
		}
	}
	r.Passed = r.MaxAbs < 0.05

	return r
}

// KolmogorovSmirnov compares the empirical distribution of the bytes,
// shifted to bin centers on [0, 1), against the uniform distribution.
func KolmogorovSmirnov(data []byte) KSResult {
	var r KSResult
	n := len(data)
	if n == 0 {
		return r
	}

	sorted := make([]float64, n)
	for i, b := range data {
		sorted[i] = (float64(b) + 0.5) / 256
	}
	sort.Float64s(sorted)

	for i, x := range sorted {
		if upper := float64(i+1)/float64(n) - x; upper > r.D {
			r.D = upper
		}
		if lower := x - float64(i)/float64(n); lower > r.D {
			r.D = lower
		}
	}

	r.PValue = kolmogorovP(r.D, n)
	r.Passed = r.PValue > Significance

	return r
}

// Report aggregates the four byte stream tests.
type Report struct {
	Label string
	Size  int

	Entropy           EntropyResult
	ChiSquare         ChiSquareResult
	Autocorrelation   AutocorrResult
	KolmogorovSmirnov KSResult
}

// Passed reports whether every test with a pass criterion passed.
func (r *Report) Passed() bool {
	return r.ChiSquare.Passed && r.Autocorrelation.Passed && r.KolmogorovSmirnov.Passed
}

// RunAll runs the full byte battery over data and returns the
// aggregated report. Stage results go to the context logger at debug
// verbosity.
func RunAll(ctx context.Context, data []byte, label string) *Report {
	logger := log.GetLoggerFromContextWithName(ctx, "randstat")
	logger.V(1).Info("running byte battery", "label", label, "bytes", len(data))

	r := &Report{Label: label, Size: len(data)}

	r.Entropy = ShannonEntropy(data)
	logger.V(1).Info("shannon entropy", "bitsPerByte", r.Entropy.BitsPerByte, "ratio", r.Entropy.Ratio)

	r.ChiSquare = ChiSquare(data)
	logger.V(1).Info("chi square", "chi2", r.ChiSquare.Chi2, "p", r.ChiSquare.PValue, "passed", r.ChiSquare.Passed)

	r.Autocorrelation = Autocorrelation(data)
	logger.V(1).Info("autocorrelation", "maxAbs", r.Autocorrelation.MaxAbs, "passed", r.Autocorrelation.Passed)

	r.KolmogorovSmirnov = KolmogorovSmirnov(data)
	logger.V(1).Info("kolmogorov smirnov", "d", r.KolmogorovSmirnov.D, "p", r.KolmogorovSmirnov.PValue, "passed", r.KolmogorovSmirnov.Passed)

	return r
}

func status(passed bool) string {
	if passed {
		return "PASS"
	}
	return "FAIL"
}

// String renders the report as the summary table the example
// commands print.
func (r *Report) String() string {
	var b strings.Builder

	title := "statistical battery"
	if r.Label != "" {
		title += " : " + r.Label
	}

	rule := strings.Repeat("=", 64)
	fmt.Fprintf(&b, "%s\n %s\n%s\n", rule, title, rule)
	fmt.Fprintf(&b, " data size           : %d bytes\n", r.Size)
	fmt.Fprintf(&b, " shannon entropy     : %.4f / %.1f bits/byte (%.2f%%)\n",
		r.Entropy.BitsPerByte, r.Entropy.Max, r.Entropy.Ratio)
	fmt.Fprintf(&b, " chi square (df=%d)  : chi2 = %.2f, p = %.4f  [%s]\n",
		r.ChiSquare.DF, r.ChiSquare.Chi2, r.ChiSquare.PValue, status(r.ChiSquare.Passed))
	fmt.Fprintf(&b, " autocorrelation     : max|r| = %.4f  [%s]\n",
		r.Autocorrelation.MaxAbs, status(r.Autocorrelation.Passed))

	b.WriteString("  ")
	for i, lag := range r.Autocorrelation.Lags {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "lag%d=%.4f", lag, r.Autocorrelation.Correlations[lag])
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, " kolmogorov-smirnov  : D = %.4f, p = %.4f  [%s]\n",
		r.KolmogorovSmirnov.D, r.KolmogorovSmirnov.PValue, status(r.KolmogorovSmirnov.Passed))
	b.WriteString(rule + "\n")

	return b.String()
}

// MonobitResult reports the zero/one balance of a bit stream.
type MonobitResult struct {
	Zeros  int
	Ones   int
	Ratio  float64
	PValue float64
	Passed bool
}

// Monobit counts zeros and ones. The pass band keeps the ones ratio
// within one percent of even; the p-value of the normalized excess is
// reported alongside.
func Monobit(bits []uint8) MonobitResult {
	var r MonobitResult
	n := len(bits)
	if n == 0 {
		return r
	}

	for _, b := range bits {
		if b == 1 {
			r.Ones++
		} else {
			r.Zeros++
		}
	}

	r.Ratio = float64(r.Ones) / float64(n)
	s := math.Abs(float64(r.Ones-r.Zeros)) / math.Sqrt(float64(n))
	r.PValue = math.Erfc(s / math.Sqrt2)
	r.Passed = r.Ratio >= 0.49 && r.Ratio <= 0.51

	return r
}

// PatternResult reports overlapping k bit pattern counts.
type PatternResult struct {
	K        int
	Counts   []int
	Expected float64
	MaxDev   float64
	Passed   bool
}

// PatternFrequency counts every overlapping k bit window. Over a
// uniform stream each of the 2^k patterns takes an equal share of the
// n-k+1 windows; the pass band allows fifteen percent relative
// deviation per pattern.
func PatternFrequency(bits []uint8, k int) PatternResult {
	r := PatternResult{K: k}
	if k < 1 || k > 16 || len(bits) < k {
		return r
	}

	r.Counts = make([]int, 1<<k)
	mask := uint32(1)<<k - 1

	var window uint32
	for i, b := range bits {
		window = (window<<1 | uint32(b&1)) & mask
		if i >= k-1 {
			r.Counts[window]++
		}
	}

	windows := len(bits) - k + 1
	r.Expected = float64(windows) / float64(int(1)<<k)
	for _, c := range r.Counts {
		if dev := math.Abs(float64(c)-r.Expected) / r.Expected; dev > r.MaxDev {
			r.MaxDev = dev
		}
	}
	r.Passed = r.MaxDev <= 0.15

	return r
}

// Pattern formats pattern index p of a k bit result as its bit
// string.
func (r PatternResult) Pattern(p int) string {
	s := strconv.FormatInt(int64(p), 2)
	if len(s) < r.K {
		s = strings.Repeat("0", r.K-len(s)) + s
	}
	return s
}

// AverageZerosResult reports the sliding window zero average.
type AverageZerosResult struct {
	Average  float64
	Expected float64
	Windows  int
}

// AverageZeros slides a window over the bit stream and averages the
// zero count per position. A balanced stream averages half the
// window.
func AverageZeros(bits []uint8, window int) AverageZerosResult {
	r := AverageZerosResult{Expected: float64(window) / 2}
	n := len(bits)
	if window <= 0 || n <= window {
		return r
	}

	zeros := 0
	for i := 0; i < window; i++ {
		if bits[i] == 0 {
			zeros++
		}
	}

	total := zeros
	for i := window; i < n-1; i++ {
		if bits[i-window] == 0 {
			zeros--
		}
		if bits[i] == 0 {
			zeros++
		}
		total += zeros
	}

	r.Windows = n - window
	r.Average = float64(total) / float64(r.Windows)

	return r
}
