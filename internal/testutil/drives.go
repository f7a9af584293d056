package testutil

import (
	"math"
	"strconv"

	"github.com/cwbudde/algo-magspec/drive"
)

// Ms is the saturation magnetisation used by the synthetic drives, in A/m.
const Ms = 8e5

// Mesh returns a 1 nm cell mesh with the given cell counts.
func Mesh(nx, ny, nz int) *drive.RegularMesh {
	mesh, err := drive.NewRegularMesh(
		[3]float64{0, 0, 0},
		[3]float64{float64(nx) * 1e-9, float64(ny) * 1e-9, float64(nz) * 1e-9},
		[3]int{nx, ny, nz},
	)
	if err != nil {
		panic(err)
	}
	return mesh
}

// Times returns n uniformly spaced samples starting at 0.
func Times(n int, dt float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) * dt
	}
	return out
}

// PrecessionDrive returns a TimeDriver drive whose field precesses about z at
// freqHz with a small in-plane amplitude. The initial state points along z.
// Every cell also carries a static x-dependent offset so cells differ.
func PrecessionDrive(n int, dt, freqHz float64, mesh *drive.RegularMesh) *drive.Memory {
	const tilt = 0.1
	steps := make([]drive.Snapshot, n)
	for i := range steps {
		phase := 2 * math.Pi * freqHz * float64(i) * dt
		steps[i] = drive.FieldFunc(mesh, func(x, _, _ float64) [3]float64 {
			offset := x * 1e7
			return [3]float64{
				Ms * (tilt*math.Cos(phase) + offset),
				Ms * tilt * math.Sin(phase),
				Ms,
			}
		})
	}
	m0 := drive.FieldFunc(mesh, func(x, _, _ float64) [3]float64 {
		return [3]float64{Ms * x * 1e7, 0, Ms}
	})

	d, err := drive.NewMemory(drive.Info{
		Driver: drive.TimeDriver,
		Extra: map[string]string{
			"t":   strconv.FormatFloat(float64(n)*dt, 'g', -1, 64),
			"adj": "precession",
		},
	}, Times(n, dt), steps, m0)
	if err != nil {
		panic(err)
	}
	return d
}

// ConstantDrive returns a TimeDriver drive whose every step, and its
// initial state, equal v in every cell.
func ConstantDrive(n int, dt float64, mesh *drive.RegularMesh, v [3]float64) *drive.Memory {
	field := drive.UniformField(mesh, v)
	steps := make([]drive.Snapshot, n)
	for i := range steps {
		steps[i] = field
	}
	d, err := drive.NewMemory(drive.Info{Driver: drive.TimeDriver}, Times(n, dt), steps, field)
	if err != nil {
		panic(err)
	}
	return d
}

// RampDrive returns a TimeDriver drive whose value in step i is
// base*(i+1) + cell index, so every element of the materialised array is
// distinct and predictable.
func RampDrive(n int, dt float64, mesh *drive.RegularMesh) *drive.Memory {
	size := mesh.Cells()[0] * mesh.Cells()[1] * mesh.Cells()[2] * drive.Components
	steps := make([]drive.Snapshot, n)
	for i := range steps {
		data := make([]float64, size)
		for j := range data {
			data[j] = RampValue(i, j)
		}
		f, err := drive.NewField(mesh, data)
		if err != nil {
			panic(err)
		}
		steps[i] = f
	}
	d, err := drive.NewMemory(drive.Info{Driver: drive.TimeDriver}, Times(n, dt), steps, steps[0])
	if err != nil {
		panic(err)
	}
	return d
}

// RampValue is the value RampDrive stores at step i, flat element j.
func RampValue(i, j int) float64 {
	return 1000*float64(i+1) + float64(j)
}
