package spectral

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-magspec/labeled"
)

func column(p *labeled.Array[float64], component string) (values, freqs []float64, err error) {
	col, err := p.Component(labeled.DimFT, component)
	if err != nil {
		return nil, nil, fmt.Errorf("spectral: %w", err)
	}
	f, err := col.Axis(labeled.DimF)
	if err != nil {
		return nil, nil, fmt.Errorf("spectral: %w", err)
	}
	return col.Data, f.Values, nil
}

// Centroid returns the spectral centroid in Hz of one component of a
// reduced (f, ft) spectrum:
//
//	centroid = sum(f_k * p_k) / sum(p_k)
//
// An all-zero column has centroid 0.
func Centroid(p *labeled.Array[float64], component string) (float64, error) {
	values, freqs, err := column(p, component)
	if err != nil {
		return 0, err
	}
	c, _ := centroid(values, freqs)
	return c, nil
}

// Spread returns the standard deviation of the spectrum around its centroid.
func Spread(p *labeled.Array[float64], component string) (float64, error) {
	values, freqs, err := column(p, component)
	if err != nil {
		return 0, err
	}
	cent, sum := centroid(values, freqs)
	if sum == 0 {
		return 0, nil
	}
	var acc float64
	for k, v := range values {
		d := freqs[k] - cent
		acc += d * d * v
	}
	return math.Sqrt(acc / sum), nil
}

func centroid(values, freqs []float64) (cent, sum float64) {
	var weighted float64
	for k, v := range values {
		sum += v
		weighted += freqs[k] * v
	}
	if sum == 0 {
		return 0, 0
	}
	return weighted / sum, sum
}
