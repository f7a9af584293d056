package testutil

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestPrecessionDriveShape(t *testing.T) {
	d := PrecessionDrive(8, 1e-12, 5e10, Mesh(2, 1, 1))
	if d.N() != 8 {
		t.Fatalf("N=%d want 8", d.N())
	}
	snap, err := d.Step(3)
	if err != nil {
		t.Fatalf("Step error: %v", err)
	}
	if len(snap.Array()) != 6 {
		t.Fatalf("len=%d want 6", len(snap.Array()))
	}
	if _, err := d.M0(); err != nil {
		t.Fatalf("M0 error: %v", err)
	}
}

func TestRampValueDistinct(t *testing.T) {
	d := RampDrive(3, 1, Mesh(1, 1, 1))
	seen := map[float64]bool{}
	for i := 0; i < d.N(); i++ {
		s, _ := d.Step(i)
		for _, v := range s.Array() {
			if seen[v] {
				t.Fatalf("duplicate ramp value %v", v)
			}
			seen[v] = true
		}
	}
}

func TestNaiveRFFTImpulse(t *testing.T) {
	x := []float64{1, 0, 0, 0, 0}
	out := NaiveRFFT(x)
	if len(out) != 3 {
		t.Fatalf("len=%d want 3", len(out))
	}
	for k, v := range out {
		if cmplx.Abs(v-1) > 1e-12 {
			t.Fatalf("bin %d = %v want 1", k, v)
		}
	}
}

func TestMaxAbsDiff(t *testing.T) {
	a := []float64{1.0, 2.0, 3.0}
	b := []float64{1.0, 2.1, 3.0}

	d, err := MaxAbsDiff(a, b)
	if err != nil {
		t.Fatalf("MaxAbsDiff error: %v", err)
	}

	if math.Abs(d-0.1) > 1e-15 {
		t.Fatalf("MaxAbsDiff = %v, want 0.1", d)
	}
}

func TestMaxAbsDiffLengthMismatch(t *testing.T) {
	_, err := MaxAbsDiff([]float64{1}, []float64{1, 2})
	if err == nil {
		t.Fatal("expected error for length mismatch")
	}
}
