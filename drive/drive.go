// Package drive defines the narrow read interface through which simulation
// output is consumed.
//
// A drive is one simulation run: an indexable sequence of field snapshots,
// the elapsed-time column of its results table and its run metadata. Real
// backing formats implement [Drive] through adapters; [Memory] is the
// in-memory one.
package drive

import (
	"errors"
	"fmt"
	"maps"
)

// Driver kinds recorded in run metadata.
const (
	TimeDriver  = "TimeDriver"
	MinDriver   = "MinDriver"
	RelaxDriver = "RelaxDriver"
)

// Spatial axis names accepted by [Mesh.AxisPoints].
const (
	AxisX = "x"
	AxisY = "y"
	AxisZ = "z"
)

// Components is the number of vector components per cell.
const Components = 3

var (
	// ErrDriverKind is matched by every [DriverKindError].
	ErrDriverKind = errors.New("drive: unexpected driver kind")
	// ErrStepRange reports a snapshot index outside [0, N).
	ErrStepRange = errors.New("drive: step out of range")
	// ErrUnknownAxis reports an axis name other than x, y or z.
	ErrUnknownAxis = errors.New("drive: unknown axis")
	// ErrNoReference reports a drive without an initial-state snapshot.
	ErrNoReference = errors.New("drive: no initial state")
)

// Mesh is the discretized spatial domain of a snapshot.
type Mesh interface {
	// AxisPoints returns the cell-centre coordinates along axis x, y or z.
	AxisPoints(axis string) ([]float64, error)
}

// Snapshot is one time step's vector field.
type Snapshot interface {
	// Shape returns [nx, ny, nz, 3].
	Shape() []int
	// Array returns the field in row-major order, component fastest.
	Array() []float64
	Mesh() Mesh
}

// Drive is the read contract of a simulation run.
type Drive interface {
	// N returns the number of stored steps.
	N() int
	// Step returns snapshot i, 0 <= i < N().
	Step(i int) (Snapshot, error)
	// Times returns the elapsed-time column t, one value per step.
	Times() ([]float64, error)
	Info() Info
	// M0 returns the initial state the run started from.
	M0() (Snapshot, error)
}

// Info is a drive's run metadata.
type Info struct {
	Driver string
	Extra  map[string]string
}

// Clone returns a deep copy of i.
func (i Info) Clone() Info {
	out := i
	if i.Extra != nil {
		out.Extra = maps.Clone(i.Extra)
	}
	return out
}

// DriverKindError reports a drive whose driver kind is not the one an
// operation requires.
type DriverKindError struct {
	Got  string
	Want string
}

func (e *DriverKindError) Error() string {
	return fmt.Sprintf("drive: obtained %q instead of %q", e.Got, e.Want)
}

// Is makes errors.Is(err, ErrDriverKind) hold.
func (e *DriverKindError) Is(target error) bool { return target == ErrDriverKind }

// CheckTimeDriver returns a *DriverKindError unless d was produced by a
// time-stepping driver.
func CheckTimeDriver(d Drive) error {
	if got := d.Info().Driver; got != TimeDriver {
		return &DriverKindError{Got: got, Want: TimeDriver}
	}
	return nil
}
