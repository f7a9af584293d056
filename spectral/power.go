package spectral

import (
	"fmt"
	"sync"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-magspec/labeled"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

// getScratch returns re, im and dst views of length n.
func getScratch(n int) (re, im, dst []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 3 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n : 2*n], buf.data[2*n : need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// PowerSpectrum returns |X|^2 summed over every axis of a except the leading
// frequency axis and the trailing component axis. The result has axes
// (f, ft).
func PowerSpectrum(a *labeled.Array[complex128]) (*labeled.Array[float64], error) {
	return reduce(a, vecmath.Power)
}

// MagnitudeSpectrum returns |X| summed like [PowerSpectrum].
func MagnitudeSpectrum(a *labeled.Array[complex128]) (*labeled.Array[float64], error) {
	return reduce(a, vecmath.Magnitude)
}

func reduce(a *labeled.Array[complex128], kernel func(dst, re, im []float64)) (*labeled.Array[float64], error) {
	if len(a.Axes) < 2 || a.Axes[0].Name != labeled.DimF {
		return nil, fmt.Errorf("%w: first axis must be %q, dims are %v", ErrMissingAxis, labeled.DimF, a.Dims())
	}
	comp := a.Axes[len(a.Axes)-1]
	if comp.Name != labeled.DimFT {
		return nil, fmt.Errorf("%w: last axis must be %q, dims are %v", ErrMissingAxis, labeled.DimFT, a.Dims())
	}

	out, err := labeled.NewArray[float64]([]labeled.Axis{a.Axes[0], comp}, a.Attrs)
	if err != nil {
		return nil, fmt.Errorf("spectral: %w", err)
	}

	stride := a.Stride(0)
	nc := comp.Len()
	re, im, vals, buf := getScratch(stride)
	defer putScratch(buf)

	for k := 0; k < a.Axes[0].Len(); k++ {
		for i, c := range a.Frame(k) {
			re[i] = real(c)
			im[i] = imag(c)
		}
		kernel(vals, re, im)

		row := out.Frame(k)
		for i, v := range vals {
			row[i%nc] += v
		}
	}
	return out, nil
}

// DropDC returns a copy of a without the zero-frequency bin.
func DropDC[T labeled.Element](a *labeled.Array[T]) (*labeled.Array[T], error) {
	if len(a.Axes) == 0 || a.Axes[0].Name != labeled.DimF {
		return nil, fmt.Errorf("%w: first axis must be %q", ErrMissingAxis, labeled.DimF)
	}
	f := a.Axes[0]
	if f.Len() < 2 || f.Values[0] != 0 {
		return nil, fmt.Errorf("%w: no DC bin to drop", ErrShapeMismatch)
	}

	axes := append([]labeled.Axis{labeled.Numeric(labeled.DimF, f.Values[1:]).WithUnits(f.Units)}, a.Axes[1:]...)
	data := append([]T(nil), a.Data[a.Stride(0):]...)
	return labeled.FromData(data, axes, a.Attrs)
}

// PeakFrequency returns the frequency of the largest non-DC bin of one
// component of a reduced (f, ft) spectrum.
func PeakFrequency(p *labeled.Array[float64], component string) (float64, error) {
	values, freqs, err := column(p, component)
	if err != nil {
		return 0, err
	}

	start := 0
	if freqs[0] == 0 {
		start = 1
	}
	if start >= len(values) {
		return 0, fmt.Errorf("%w: no non-DC bins", ErrShapeMismatch)
	}

	best := start
	for k := start + 1; k < len(values); k++ {
		if values[k] > values[best] {
			best = k
		}
	}
	return freqs[best], nil
}
