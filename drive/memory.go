package drive

import (
	"errors"
	"fmt"
)

// Field is an in-memory [Snapshot] over a [RegularMesh].
type Field struct {
	mesh *RegularMesh
	data []float64
}

// NewField wraps data, which must hold three components per mesh cell.
// data is not copied.
func NewField(mesh *RegularMesh, data []float64) (*Field, error) {
	if mesh == nil {
		return nil, errors.New("drive: nil mesh")
	}
	if len(data) != mesh.size() {
		return nil, fmt.Errorf("drive: field has %d values, mesh %v needs %d", len(data), mesh.n, mesh.size())
	}
	return &Field{mesh: mesh, data: data}, nil
}

// FieldFunc samples fn at every cell centre of mesh.
func FieldFunc(mesh *RegularMesh, fn func(x, y, z float64) [3]float64) *Field {
	xs, _ := mesh.AxisPoints(AxisX)
	ys, _ := mesh.AxisPoints(AxisY)
	zs, _ := mesh.AxisPoints(AxisZ)

	data := make([]float64, 0, mesh.size())
	for _, x := range xs {
		for _, y := range ys {
			for _, z := range zs {
				v := fn(x, y, z)
				data = append(data, v[0], v[1], v[2])
			}
		}
	}
	return &Field{mesh: mesh, data: data}
}

// UniformField returns a field equal to v in every cell.
func UniformField(mesh *RegularMesh, v [3]float64) *Field {
	return FieldFunc(mesh, func(_, _, _ float64) [3]float64 { return v })
}

// Shape returns [nx, ny, nz, 3].
func (f *Field) Shape() []int {
	return []int{f.mesh.n[0], f.mesh.n[1], f.mesh.n[2], Components}
}

// Array returns the underlying buffer.
func (f *Field) Array() []float64 { return f.data }

// Mesh returns the field's mesh.
func (f *Field) Mesh() Mesh { return f.mesh }

// Memory is a [Drive] held entirely in memory.
type Memory struct {
	info  Info
	times []float64
	steps []Snapshot
	m0    Snapshot
}

// NewMemory returns a drive over steps sampled at times. m0 may be nil.
func NewMemory(info Info, times []float64, steps []Snapshot, m0 Snapshot) (*Memory, error) {
	if len(steps) == 0 {
		return nil, errors.New("drive: no steps")
	}
	if len(times) != len(steps) {
		return nil, fmt.Errorf("drive: %d time values for %d steps", len(times), len(steps))
	}
	return &Memory{
		info:  info.Clone(),
		times: append([]float64(nil), times...),
		steps: steps,
		m0:    m0,
	}, nil
}

// N returns the step count.
func (d *Memory) N() int { return len(d.steps) }

// Step returns snapshot i.
func (d *Memory) Step(i int) (Snapshot, error) {
	if i < 0 || i >= len(d.steps) {
		return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrStepRange, i, len(d.steps))
	}
	return d.steps[i], nil
}

// Times returns a copy of the time column.
func (d *Memory) Times() ([]float64, error) {
	return append([]float64(nil), d.times...), nil
}

// Info returns a copy of the run metadata.
func (d *Memory) Info() Info { return d.info.Clone() }

// M0 returns the initial state, or ErrNoReference.
func (d *Memory) M0() (Snapshot, error) {
	if d.m0 == nil {
		return nil, ErrNoReference
	}
	return d.m0, nil
}
