// Package materialize reads every step of a drive into a dense labeled array.
//
// [ToArray] stacks the vector field of all steps into one array with axes
// (t, x, y, z, m). [ToDataset] stores the three components as separate
// variables mx, my, mz on (t, x, y, z) and keeps the initial state as the
// reference frame for deviation spectra.
//
// Reading snapshots dominates the cost: one read per step, each proportional
// to the cell count. The destination is allocated once before the first
// read and every step writes a disjoint frame of it.
package materialize

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cwbudde/algo-magspec/drive"
	"github.com/cwbudde/algo-magspec/labeled"
)

// ToArray materializes d into an array with axes (t, x, y, z, m).
//
// d must come from a time-stepping driver. The snapshot shape of step 0
// fixes the shape of every other step; any deviation aborts the call.
func ToArray(d drive.Drive, opts ...Option) (*labeled.Array[float64], error) {
	cfg := ApplyOptions(opts...)

	l, err := prepare(d, cfg)
	if err != nil {
		return nil, err
	}

	axes := append(l.timeAxes(), l.componentAxis())
	arr, err := labeled.NewArray[float64](axes, l.attrs)
	if err != nil {
		return nil, fmt.Errorf("materialize: %w", err)
	}

	err = l.fill(d, cfg.Workers, func(i int, data []float64) {
		copy(arr.Frame(i), data)
	})
	if err != nil {
		return nil, err
	}
	return arr, nil
}

// ToDataset materializes d into a dataset with variables mx, my and mz on
// the coordinates (t, x, y, z).
//
// The drive's initial state becomes the dataset's M0 reference frame with
// axes (x, y, z, m). Drives without a separate initial state use step 0.
func ToDataset(d drive.Drive, opts ...Option) (*labeled.Dataset[float64], error) {
	cfg := ApplyOptions(opts...)

	l, err := prepare(d, cfg)
	if err != nil {
		return nil, err
	}

	coords := l.timeAxes()
	ds, err := labeled.NewDataset[float64](coords, l.attrs)
	if err != nil {
		return nil, fmt.Errorf("materialize: %w", err)
	}

	vars := make([]*labeled.Array[float64], drive.Components)
	for c, name := range labeled.MagnetizationLabels() {
		v, err := labeled.NewArray[float64](coords, l.attrs)
		if err != nil {
			return nil, fmt.Errorf("materialize: %w", err)
		}
		if err := ds.Add(name, v); err != nil {
			return nil, fmt.Errorf("materialize: %w", err)
		}
		vars[c] = v
	}

	err = l.fill(d, cfg.Workers, func(i int, data []float64) {
		for c, v := range vars {
			deinterleave(v.Frame(i), data, c)
		}
	})
	if err != nil {
		return nil, err
	}

	m0, err := l.reference(d)
	if err != nil {
		return nil, err
	}
	ds.M0 = m0
	return ds, nil
}

// Split converts an (t, x, y, z, m) array into the dataset form. The first
// time step becomes the M0 reference frame.
func Split(a *labeled.Array[float64]) (*labeled.Dataset[float64], error) {
	want := []string{labeled.DimT, labeled.DimX, labeled.DimY, labeled.DimZ, labeled.DimM}
	dims := a.Dims()
	if len(dims) != len(want) {
		return nil, fmt.Errorf("%w: dims %v, want %v", ErrShapeMismatch, dims, want)
	}
	for i := range want {
		if dims[i] != want[i] {
			return nil, fmt.Errorf("%w: dims %v, want %v", ErrShapeMismatch, dims, want)
		}
	}
	comp := a.Axes[4]
	if comp.Len() != drive.Components {
		return nil, fmt.Errorf("%w: component axis has %d labels", ErrShapeMismatch, comp.Len())
	}

	ds, err := labeled.NewDataset[float64](a.Axes[:4], a.Attrs)
	if err != nil {
		return nil, fmt.Errorf("materialize: %w", err)
	}
	for _, name := range labeled.MagnetizationLabels() {
		v, err := a.Component(labeled.DimM, name)
		if err != nil {
			return nil, fmt.Errorf("materialize: %w", err)
		}
		if err := ds.Add(name, v); err != nil {
			return nil, fmt.Errorf("materialize: %w", err)
		}
	}

	m0, err := labeled.FromData(append([]float64(nil), a.Frame(0)...), a.Axes[1:], a.Attrs)
	if err != nil {
		return nil, fmt.Errorf("materialize: %w", err)
	}
	ds.M0 = m0
	return ds, nil
}

// deinterleave copies component c of an (…, 3) buffer into dst.
func deinterleave(dst, src []float64, c int) {
	for k := range dst {
		dst[k] = src[k*drive.Components+c]
	}
}

// layout is everything derived from step 0 before the fill starts.
type layout struct {
	n      int
	shape  []int
	first  drive.Snapshot
	times  []float64
	space  []labeled.Axis
	attrs  labeled.Attrs
	labels bool
}

func prepare(d drive.Drive, cfg Config) (*layout, error) {
	if err := drive.CheckTimeDriver(d); err != nil {
		return nil, err
	}

	n := d.N()
	if n <= 0 {
		return nil, ErrEmptyDrive
	}

	first, err := d.Step(0)
	if err != nil {
		return nil, fmt.Errorf("materialize: read step 0: %w", err)
	}
	shape := first.Shape()
	if len(shape) != 4 || shape[3] != drive.Components {
		return nil, fmt.Errorf("%w: step 0 has shape %v, want [nx ny nz %d]", ErrShapeMismatch, shape, drive.Components)
	}

	times, err := d.Times()
	if err != nil {
		return nil, fmt.Errorf("materialize: read time column: %w", err)
	}
	if err := validateTimes(times, n, cfg.ValidateSpacing); err != nil {
		return nil, err
	}

	space, err := spatialAxes(first, shape, cfg.Coordinates)
	if err != nil {
		return nil, err
	}

	info := d.Info()
	attrs := labeled.Attrs{
		Driver: info.Driver,
		N:      n,
		Extra:  info.Extra,
	}

	return &layout{
		n:      n,
		shape:  shape,
		first:  first,
		times:  times,
		space:  space,
		attrs:  attrs.Clone(),
		labels: cfg.Coordinates,
	}, nil
}

// spatialAxes reads the mesh axis points once; geometry is taken to be the
// same for every step.
func spatialAxes(first drive.Snapshot, shape []int, coords bool) ([]labeled.Axis, error) {
	dims := labeled.SpatialDims()
	axes := make([]labeled.Axis, len(dims))
	for i, name := range dims {
		if !coords {
			axes[i] = labeled.Positional(name, shape[i])
			continue
		}
		points, err := first.Mesh().AxisPoints(name)
		if err != nil {
			return nil, fmt.Errorf("materialize: axis points %q: %w", name, err)
		}
		if len(points) != shape[i] {
			return nil, fmt.Errorf("%w: %d %s points for %d cells", ErrShapeMismatch, len(points), name, shape[i])
		}
		axes[i] = labeled.Numeric(name, points).WithUnits(labeled.UnitMeters)
	}
	return axes, nil
}

func (l *layout) timeAxes() []labeled.Axis {
	t := labeled.Numeric(labeled.DimT, l.times)
	if l.labels {
		t = t.WithUnits(labeled.UnitSeconds)
	}
	return append([]labeled.Axis{t}, l.space...)
}

func (l *layout) componentAxis() labeled.Axis {
	m := labeled.Categorical(labeled.DimM, labeled.MagnetizationLabels()...)
	if l.labels {
		m = m.WithUnits(labeled.UnitMagnetization)
	}
	return m
}

// reference returns the initial state as an (x, y, z, m) array.
func (l *layout) reference(d drive.Drive) (*labeled.Array[float64], error) {
	snap, err := d.M0()
	switch {
	case errors.Is(err, drive.ErrNoReference):
		snap = l.first
	case err != nil:
		return nil, fmt.Errorf("materialize: read initial state: %w", err)
	}
	if !sameShape(snap.Shape(), l.shape) || len(snap.Array()) != frameSize(l.shape) {
		return nil, fmt.Errorf("%w: initial state has shape %v, steps have %v", ErrShapeMismatch, snap.Shape(), l.shape)
	}
	axes := append(append([]labeled.Axis(nil), l.space...), l.componentAxis())
	m0, err := labeled.FromData(append([]float64(nil), snap.Array()...), axes, l.attrs)
	if err != nil {
		return nil, fmt.Errorf("materialize: %w", err)
	}
	return m0, nil
}

func frameSize(shape []int) int {
	size := 1
	for _, s := range shape {
		size *= s
	}
	return size
}

// fill reads every step and hands its buffer to sink. With more than one
// worker, steps are read concurrently; sink must only touch the frame of
// the step it is given.
func (l *layout) fill(d drive.Drive, workers int, sink func(i int, data []float64)) error {
	read := func(i int) error {
		snap := l.first
		if i > 0 {
			var err error
			snap, err = d.Step(i)
			if err != nil {
				return fmt.Errorf("materialize: read step %d: %w", i, err)
			}
		}
		if shape := snap.Shape(); !sameShape(shape, l.shape) {
			return fmt.Errorf("%w: step %d has shape %v, step 0 has %v", ErrShapeMismatch, i, shape, l.shape)
		}
		data := snap.Array()
		if len(data) != frameSize(l.shape) {
			return fmt.Errorf("%w: step %d has %d values, want %d", ErrShapeMismatch, i, len(data), frameSize(l.shape))
		}
		sink(i, data)
		return nil
	}

	if workers <= 1 || l.n < 2 {
		for i := 0; i < l.n; i++ {
			if err := read(i); err != nil {
				return err
			}
		}
		return nil
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		steps    = make(chan int)
		done     = make(chan struct{})
	)
	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
			close(done)
		}
	}

	for w := 0; w < min(workers, l.n); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range steps {
				if err := read(i); err != nil {
					fail(err)
				}
			}
		}()
	}

feed:
	for i := 0; i < l.n; i++ {
		select {
		case steps <- i:
		case <-done:
			break feed
		}
	}
	close(steps)
	wg.Wait()

	return firstErr
}
