package spectral

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-magspec/labeled"
)

// BinCount returns the number of one-sided bins for n samples, n/2+1.
func BinCount(n int) int { return n/2 + 1 }

// SamplingInterval returns t[1]-t[0]. Uniform spacing is assumed, not checked.
func SamplingInterval(t []float64) (float64, error) {
	if len(t) < 2 {
		return 0, fmt.Errorf("%w: got %d", ErrTooFewSamples, len(t))
	}
	dt := t[1] - t[0]
	if !(dt > 0) {
		return 0, fmt.Errorf("%w: %g", ErrNonPositiveInterval, dt)
	}
	return dt, nil
}

// Frequencies returns the bin frequencies k/(n*dt) for k = 0..n/2.
func Frequencies(n int, dt float64) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewSamples, n)
	}
	if !(dt > 0) {
		return nil, fmt.Errorf("%w: %g", ErrNonPositiveInterval, dt)
	}
	step := 1 / (float64(n) * dt)
	out := make([]float64, BinCount(n))
	for k := range out {
		out[k] = float64(k) * step
	}
	return out, nil
}

const hzSuffix = " Hz"

// FormatHz renders v in the "<value> Hz" form used by the frequency
// attributes. Values in [1e-4, 1e16) print in positional notation with at
// least one fractional digit; the rest use an exponent.
func FormatHz(v float64) string {
	return formatFloat(v) + hzSuffix
}

func formatFloat(v float64) string {
	sci := strconv.FormatFloat(v, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err != nil || exp < -4 || exp >= 16 {
		return sci
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}

// ParseHz parses a value produced by FormatHz.
func ParseHz(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), hzSuffix), 64)
	if err != nil {
		return 0, fmt.Errorf("spectral: parse frequency %q: %w", s, err)
	}
	return v, nil
}

// MaxFrequency returns the max_frequency attribute of a transform result in Hz.
func MaxFrequency(attrs labeled.Attrs) (float64, error) {
	return ParseHz(attrs.MaxFrequency)
}

// FrequencyResolution returns the frequency_resolution attribute in Hz.
func FrequencyResolution(attrs labeled.Attrs) (float64, error) {
	return ParseHz(attrs.FrequencyResolution)
}
