package materialize

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrEmptyDrive reports a drive without steps.
	ErrEmptyDrive = errors.New("materialize: drive has no steps")
	// ErrShapeMismatch reports a snapshot or coordinate sequence whose
	// shape differs from the one fixed by step 0.
	ErrShapeMismatch = errors.New("materialize: shape mismatch")
	// ErrTimeColumn reports a time column whose length differs from the
	// step count.
	ErrTimeColumn = errors.New("materialize: invalid time column")
	// ErrNonUniformTime reports unevenly spaced time samples.
	ErrNonUniformTime = errors.New("materialize: time samples not uniformly spaced")
)

const spacingTolerance = 1e-6

func validateTimes(times []float64, n int, uniform bool) error {
	if len(times) != n {
		return fmt.Errorf("%w: %d values for %d steps", ErrTimeColumn, len(times), n)
	}
	if !uniform || n < 2 {
		return nil
	}
	dt := times[1] - times[0]
	if dt <= 0 {
		return fmt.Errorf("%w: first interval %g", ErrNonUniformTime, dt)
	}
	for i := 2; i < n; i++ {
		d := times[i] - times[i-1]
		if math.Abs(d-dt) > spacingTolerance*dt {
			return fmt.Errorf("%w: interval %d is %g, first is %g", ErrNonUniformTime, i-1, d, dt)
		}
	}
	return nil
}

func sameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
