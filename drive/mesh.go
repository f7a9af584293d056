package drive

import "fmt"

// RegularMesh is a rectangular region split into n[0]*n[1]*n[2] equal cells.
type RegularMesh struct {
	p1, p2 [3]float64
	n      [3]int
}

// NewRegularMesh returns the mesh spanning the corners p1 and p2 with n
// cells along x, y and z.
func NewRegularMesh(p1, p2 [3]float64, n [3]int) (*RegularMesh, error) {
	for i := range n {
		if n[i] <= 0 {
			return nil, fmt.Errorf("drive: mesh cell count must be > 0 on axis %d: %d", i, n[i])
		}
		if p1[i] == p2[i] {
			return nil, fmt.Errorf("drive: mesh has zero extent on axis %d", i)
		}
		if p1[i] > p2[i] {
			p1[i], p2[i] = p2[i], p1[i]
		}
	}
	return &RegularMesh{p1: p1, p2: p2, n: n}, nil
}

// Cells returns the cell counts along x, y and z.
func (m *RegularMesh) Cells() [3]int { return m.n }

// CellSize returns the edge lengths of one cell.
func (m *RegularMesh) CellSize() [3]float64 {
	var c [3]float64
	for i := range c {
		c[i] = (m.p2[i] - m.p1[i]) / float64(m.n[i])
	}
	return c
}

// AxisPoints returns the cell-centre coordinates along axis.
func (m *RegularMesh) AxisPoints(axis string) ([]float64, error) {
	var i int
	switch axis {
	case AxisX:
		i = 0
	case AxisY:
		i = 1
	case AxisZ:
		i = 2
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAxis, axis)
	}

	cell := (m.p2[i] - m.p1[i]) / float64(m.n[i])
	points := make([]float64, m.n[i])
	for k := range points {
		points[k] = m.p1[i] + (float64(k)+0.5)*cell
	}
	return points, nil
}

func (m *RegularMesh) size() int {
	return m.n[0] * m.n[1] * m.n[2] * Components
}
