package spectral

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-magspec/drive"
	"github.com/cwbudde/algo-magspec/labeled"
	"github.com/cwbudde/algo-magspec/materialize"
)

// TransformDataset returns the deviation spectrum of ds.
//
// Each variable mx, my, mz first has the matching component of ds.M0
// subtracted from every time step, then is transformed along t. Variables
// are renamed ft_x, ft_y, ft_z and share the coordinates (f, x, y, z).
// ds is not modified.
func TransformDataset(ds *labeled.Dataset[float64], opts ...Option) (*labeled.Dataset[complex128], error) {
	cfg := ApplyOptions(opts...)

	if ds.M0 == nil {
		return nil, ErrMissingReference
	}
	if len(ds.Coords) == 0 || ds.Coords[0].Name != labeled.DimT {
		return nil, fmt.Errorf("%w: first coordinate must be %q", ErrMissingAxis, labeled.DimT)
	}

	s, err := newSampling(ds.Coords[0], ds.Attrs)
	if err != nil {
		return nil, err
	}

	coords := make([]labeled.Axis, 0, len(ds.Coords))
	coords = append(coords, s.freqAxis())
	coords = append(coords, ds.Coords[1:]...)

	attrs := s.annotate(ds.Attrs)
	out, err := labeled.NewDataset[complex128](coords, attrs)
	if err != nil {
		return nil, fmt.Errorf("spectral: %w", err)
	}
	out.M0 = ds.M0.Clone()

	plan, err := newPlan(cfg.Backend, s.n)
	if err != nil {
		return nil, err
	}

	for _, name := range ds.Names {
		ft, ok := labeled.SpectralLabel(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown variable %q", ErrMissingAxis, name)
		}
		v := ds.Vars[name]

		ref, err := ds.M0.Component(labeled.DimM, name)
		if err != nil {
			return nil, fmt.Errorf("spectral: reference for %q: %w", name, err)
		}
		dev, err := deviation(v.Data, ref.Data, s.n)
		if err != nil {
			return nil, fmt.Errorf("spectral: variable %q: %w", name, err)
		}

		res, err := labeled.NewArray[complex128](coords, attrs)
		if err != nil {
			return nil, fmt.Errorf("spectral: %w", err)
		}
		if err := rfftAxis0(plan, res.Data, dev, len(ref.Data)); err != nil {
			return nil, err
		}
		if err := out.Add(ft, res); err != nil {
			return nil, fmt.Errorf("spectral: %w", err)
		}
	}
	return out, nil
}

// deviation returns data - ref for every one of the n frames of data.
//
// ref is one frame. It is negated once and added to each frame in turn, so
// the reference is never replicated along the time axis.
func deviation(data, ref []float64, n int) ([]float64, error) {
	frame := len(ref)
	if frame == 0 || len(data) != n*frame {
		return nil, fmt.Errorf("%w: %d values for %d frames of %d", ErrShapeMismatch, len(data), n, frame)
	}

	neg := make([]float64, frame)
	vecmath.ScaleBlock(neg, ref, -1)

	out := make([]float64, len(data))
	copy(out, data)
	for i := 0; i < n; i++ {
		vecmath.AddBlockInPlace(out[i*frame:(i+1)*frame], neg)
	}
	return out, nil
}

// FromDriveDataset materializes d as a dataset and returns its deviation
// spectrum.
func FromDriveDataset(d drive.Drive, opts ...Option) (*labeled.Dataset[complex128], error) {
	cfg := ApplyOptions(opts...)
	ds, err := materialize.ToDataset(d, cfg.Materialize...)
	if err != nil {
		return nil, err
	}
	return TransformDataset(ds, opts...)
}
