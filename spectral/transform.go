package spectral

import (
	"fmt"

	"github.com/cwbudde/algo-magspec/drive"
	"github.com/cwbudde/algo-magspec/labeled"
	"github.com/cwbudde/algo-magspec/materialize"
)

// sampling is what a transform derives from the time axis.
type sampling struct {
	n     int
	dt    float64
	freqs []float64
}

func (s sampling) rate() float64 { return 1 / s.dt }

func (s sampling) annotate(attrs labeled.Attrs) labeled.Attrs {
	out := attrs.Clone()
	out.MaxFrequency = FormatHz(s.rate() / 2)
	out.FrequencyResolution = FormatHz(s.rate() / float64(s.n))
	return out
}

func (s sampling) freqAxis() labeled.Axis {
	return labeled.Numeric(labeled.DimF, s.freqs).WithUnits(labeled.UnitHertz)
}

// newSampling reads n from attrs (falling back to the axis length) and the
// sampling interval from the first two coordinates of tAxis.
func newSampling(tAxis labeled.Axis, attrs labeled.Attrs) (sampling, error) {
	if tAxis.IsCategorical() {
		return sampling{}, fmt.Errorf("%w: %q must be numeric", ErrMissingAxis, labeled.DimT)
	}
	n := attrs.N
	if n == 0 {
		n = tAxis.Len()
	}
	if n != tAxis.Len() {
		return sampling{}, fmt.Errorf("%w: n=%d but %q has %d samples", ErrShapeMismatch, n, labeled.DimT, tAxis.Len())
	}
	dt, err := SamplingInterval(tAxis.Values)
	if err != nil {
		return sampling{}, err
	}
	freqs, err := Frequencies(n, dt)
	if err != nil {
		return sampling{}, err
	}
	return sampling{n: n, dt: dt, freqs: freqs}, nil
}

// Transform returns the real FFT of a along its time axis.
//
// a must have t as its first axis and the component axis m (mx, my, mz) as
// its last. Axes in between are carried over unchanged, units included. The
// result has axes (f, ..., ft). a is not modified.
func Transform(a *labeled.Array[float64], opts ...Option) (*labeled.Array[complex128], error) {
	cfg := ApplyOptions(opts...)

	dims := a.Dims()
	if len(dims) < 2 || dims[0] != labeled.DimT {
		return nil, fmt.Errorf("%w: first axis must be %q, dims are %v", ErrMissingAxis, labeled.DimT, dims)
	}
	last := a.Axes[len(a.Axes)-1]
	if last.Name != labeled.DimM {
		return nil, fmt.Errorf("%w: last axis must be %q, dims are %v", ErrMissingAxis, labeled.DimM, dims)
	}
	labels, err := spectralLabels(last)
	if err != nil {
		return nil, err
	}

	s, err := newSampling(a.Axes[0], a.Attrs)
	if err != nil {
		return nil, err
	}

	axes := make([]labeled.Axis, 0, len(a.Axes))
	axes = append(axes, s.freqAxis())
	axes = append(axes, a.Axes[1:len(a.Axes)-1]...)
	axes = append(axes, labeled.Categorical(labeled.DimFT, labels...))

	out, err := labeled.NewArray[complex128](axes, s.annotate(a.Attrs))
	if err != nil {
		return nil, fmt.Errorf("spectral: %w", err)
	}

	plan, err := newPlan(cfg.Backend, s.n)
	if err != nil {
		return nil, err
	}
	if err := rfftAxis0(plan, out.Data, a.Data, a.Stride(0)); err != nil {
		return nil, err
	}
	return out, nil
}

func spectralLabels(m labeled.Axis) ([]string, error) {
	if !m.IsCategorical() {
		return nil, fmt.Errorf("%w: %q must be categorical", ErrMissingAxis, labeled.DimM)
	}
	out := make([]string, len(m.Labels))
	for i, l := range m.Labels {
		ft, ok := labeled.SpectralLabel(l)
		if !ok {
			return nil, fmt.Errorf("%w: unknown component %q", ErrMissingAxis, l)
		}
		out[i] = ft
	}
	return out, nil
}

// FromDrive materializes d and transforms the result.
func FromDrive(d drive.Drive, opts ...Option) (*labeled.Array[complex128], error) {
	cfg := ApplyOptions(opts...)
	a, err := materialize.ToArray(d, cfg.Materialize...)
	if err != nil {
		return nil, err
	}
	return Transform(a, opts...)
}
