package materialize

import (
	"errors"
	"strings"
	"testing"

	"github.com/cwbudde/algo-magspec/drive"
	"github.com/cwbudde/algo-magspec/internal/testutil"
	"github.com/cwbudde/algo-magspec/labeled"
)

func TestToArrayShapeAndValues(t *testing.T) {
	mesh := testutil.Mesh(3, 2, 1)
	d := testutil.RampDrive(5, 1e-12, mesh)

	arr, err := ToArray(d)
	if err != nil {
		t.Fatalf("ToArray error: %v", err)
	}

	shape := arr.Shape()
	want := []int{5, 3, 2, 1, 3}
	if !sameShape(shape, want) {
		t.Fatalf("shape=%v want %v", shape, want)
	}

	for i := 0; i < 5; i++ {
		frame := arr.Frame(i)
		for j, v := range frame {
			if v != testutil.RampValue(i, j) {
				t.Fatalf("step %d elem %d = %v want %v", i, j, v, testutil.RampValue(i, j))
			}
		}
	}
}

func TestToArrayCoordinatesAndUnits(t *testing.T) {
	mesh := testutil.Mesh(3, 2, 1)
	d := testutil.PrecessionDrive(4, 2e-12, 1e10, mesh)

	arr, err := ToArray(d)
	if err != nil {
		t.Fatalf("ToArray error: %v", err)
	}

	dims := arr.Dims()
	wantDims := []string{"t", "x", "y", "z", "m"}
	for i := range wantDims {
		if dims[i] != wantDims[i] {
			t.Fatalf("dims=%v want %v", dims, wantDims)
		}
	}

	units := map[string]string{"t": "s", "x": "m", "y": "m", "z": "m", "m": "A/m"}
	for _, ax := range arr.Axes {
		if ax.Units != units[ax.Name] {
			t.Fatalf("axis %q units=%q want %q", ax.Name, ax.Units, units[ax.Name])
		}
	}

	tAxis, _ := arr.Axis(labeled.DimT)
	testutil.RequireSliceNearlyEqual(t, tAxis.Values, []float64{0, 2e-12, 4e-12, 6e-12}, 1e-24)

	xAxis, _ := arr.Axis(labeled.DimX)
	testutil.RequireSliceNearlyEqual(t, xAxis.Values, []float64{0.5e-9, 1.5e-9, 2.5e-9}, 1e-21)

	mAxis, _ := arr.Axis(labeled.DimM)
	if len(mAxis.Labels) != 3 || mAxis.Labels[0] != "mx" || mAxis.Labels[1] != "my" || mAxis.Labels[2] != "mz" {
		t.Fatalf("m labels=%v", mAxis.Labels)
	}

	if arr.Attrs.Driver != drive.TimeDriver || arr.Attrs.N != 4 {
		t.Fatalf("attrs=%+v", arr.Attrs)
	}
	if arr.Attrs.Extra["adj"] != "precession" {
		t.Fatalf("drive metadata not carried: %v", arr.Attrs.Extra)
	}
}

func TestToArrayLightweight(t *testing.T) {
	d := testutil.RampDrive(3, 1, testutil.Mesh(2, 1, 1))

	arr, err := ToArray(d, WithCoordinates(false))
	if err != nil {
		t.Fatalf("ToArray error: %v", err)
	}

	for _, ax := range arr.Axes {
		if ax.Units != "" {
			t.Fatalf("axis %q carries units %q in lightweight mode", ax.Name, ax.Units)
		}
	}
	xAxis, _ := arr.Axis(labeled.DimX)
	testutil.RequireSliceNearlyEqual(t, xAxis.Values, []float64{0, 1}, 0)
	tAxis, _ := arr.Axis(labeled.DimT)
	testutil.RequireSliceNearlyEqual(t, tAxis.Values, []float64{0, 1, 2}, 0)
}

func TestToArrayRejectsNonTimeDriver(t *testing.T) {
	mesh := testutil.Mesh(1, 1, 1)
	d, _ := drive.NewMemory(drive.Info{Driver: "EnergyMinimizer"}, []float64{0},
		[]drive.Snapshot{drive.UniformField(mesh, [3]float64{0, 0, 1})}, nil)

	_, err := ToArray(d)
	if !errors.Is(err, drive.ErrDriverKind) {
		t.Fatalf("err=%v want ErrDriverKind", err)
	}
	if msg := err.Error(); !strings.Contains(msg, "EnergyMinimizer") || !strings.Contains(msg, "TimeDriver") {
		t.Fatalf("message %q must name both kinds", msg)
	}

	if _, err := ToDataset(d); !errors.Is(err, drive.ErrDriverKind) {
		t.Fatalf("ToDataset err=%v want ErrDriverKind", err)
	}
}

func TestToArrayShapeMismatchMidSequence(t *testing.T) {
	small := testutil.Mesh(2, 1, 1)
	large := testutil.Mesh(3, 1, 1)
	steps := []drive.Snapshot{
		drive.UniformField(small, [3]float64{1, 0, 0}),
		drive.UniformField(small, [3]float64{1, 0, 0}),
		drive.UniformField(large, [3]float64{1, 0, 0}),
	}
	d, _ := drive.NewMemory(drive.Info{Driver: drive.TimeDriver}, []float64{0, 1, 2}, steps, nil)

	for _, workers := range []int{1, 3} {
		_, err := ToArray(d, WithWorkers(workers))
		if !errors.Is(err, ErrShapeMismatch) {
			t.Fatalf("workers=%d err=%v want ErrShapeMismatch", workers, err)
		}
		if !strings.Contains(err.Error(), "step 2") {
			t.Fatalf("workers=%d message %q must name the step", workers, err)
		}
	}
}

func TestToArrayTimeColumnLength(t *testing.T) {
	d := &shortTimes{Memory: testutil.RampDrive(3, 1, testutil.Mesh(1, 1, 1))}
	if _, err := ToArray(d); !errors.Is(err, ErrTimeColumn) {
		t.Fatalf("err=%v want ErrTimeColumn", err)
	}
}

type shortTimes struct{ *drive.Memory }

func (s *shortTimes) Times() ([]float64, error) { return []float64{0, 1}, nil }

func TestValidateSpacing(t *testing.T) {
	mesh := testutil.Mesh(1, 1, 1)
	field := drive.UniformField(mesh, [3]float64{0, 0, 1})
	steps := []drive.Snapshot{field, field, field}
	d, _ := drive.NewMemory(drive.Info{Driver: drive.TimeDriver}, []float64{0, 1, 3}, steps, nil)

	if _, err := ToArray(d); err != nil {
		t.Fatalf("spacing must not be checked by default: %v", err)
	}
	if _, err := ToArray(d, WithValidateSpacing(true)); !errors.Is(err, ErrNonUniformTime) {
		t.Fatalf("err=%v want ErrNonUniformTime", err)
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	d := testutil.RampDrive(17, 1e-12, testutil.Mesh(4, 3, 2))

	seq, err := ToArray(d)
	if err != nil {
		t.Fatalf("sequential error: %v", err)
	}
	par, err := ToArray(d, WithWorkers(4))
	if err != nil {
		t.Fatalf("parallel error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, par.Data, seq.Data, 0)
}

func TestToDataset(t *testing.T) {
	mesh := testutil.Mesh(2, 2, 1)
	d := testutil.RampDrive(4, 1e-12, mesh)

	ds, err := ToDataset(d)
	if err != nil {
		t.Fatalf("ToDataset error: %v", err)
	}

	if len(ds.Names) != 3 || ds.Names[0] != "mx" || ds.Names[1] != "my" || ds.Names[2] != "mz" {
		t.Fatalf("names=%v", ds.Names)
	}
	if shape := ds.Shape(); !sameShape(shape, []int{4, 2, 2, 1}) {
		t.Fatalf("shape=%v", shape)
	}

	my, _ := ds.Var("my")
	for i := 0; i < 4; i++ {
		for k, v := range my.Frame(i) {
			want := testutil.RampValue(i, k*3+1)
			if v != want {
				t.Fatalf("my step %d cell %d = %v want %v", i, k, v, want)
			}
		}
	}

	if ds.M0 == nil {
		t.Fatal("missing M0 reference")
	}
	if shape := ds.M0.Shape(); !sameShape(shape, []int{2, 2, 1, 3}) {
		t.Fatalf("M0 shape=%v", shape)
	}
	for j, v := range ds.M0.Data {
		if v != testutil.RampValue(0, j) {
			t.Fatalf("M0[%d]=%v want %v", j, v, testutil.RampValue(0, j))
		}
	}
}

func TestToDatasetFallsBackToFirstStep(t *testing.T) {
	mesh := testutil.Mesh(1, 1, 1)
	steps := []drive.Snapshot{
		drive.UniformField(mesh, [3]float64{1, 2, 3}),
		drive.UniformField(mesh, [3]float64{4, 5, 6}),
	}
	d, _ := drive.NewMemory(drive.Info{Driver: drive.TimeDriver}, []float64{0, 1}, steps, nil)

	ds, err := ToDataset(d)
	if err != nil {
		t.Fatalf("ToDataset error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, ds.M0.Data, []float64{1, 2, 3}, 0)
}

func TestSplitMatchesToDataset(t *testing.T) {
	d := testutil.RampDrive(3, 1, testutil.Mesh(2, 1, 2))

	arr, err := ToArray(d)
	if err != nil {
		t.Fatalf("ToArray error: %v", err)
	}
	split, err := Split(arr)
	if err != nil {
		t.Fatalf("Split error: %v", err)
	}
	direct, err := ToDataset(d)
	if err != nil {
		t.Fatalf("ToDataset error: %v", err)
	}

	for _, name := range direct.Names {
		a, _ := split.Var(name)
		b, _ := direct.Var(name)
		testutil.RequireSliceNearlyEqual(t, a.Data, b.Data, 0)
	}
	testutil.RequireSliceNearlyEqual(t, split.M0.Data, direct.M0.Data, 0)
}

func TestSplitRejectsWrongDims(t *testing.T) {
	arr, _ := labeled.NewArray[float64]([]labeled.Axis{labeled.Positional("t", 2), labeled.Positional("x", 2)}, labeled.Attrs{})
	if _, err := Split(arr); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("err=%v want ErrShapeMismatch", err)
	}
}
