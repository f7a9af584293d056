package spectral

import "errors"

var (
	// ErrTooFewSamples reports a time axis with fewer than two samples.
	ErrTooFewSamples = errors.New("spectral: at least 2 time samples required")
	// ErrNonPositiveInterval reports t[1] <= t[0].
	ErrNonPositiveInterval = errors.New("spectral: sampling interval must be > 0")
	// ErrMissingAxis reports an input lacking an axis the transform needs.
	ErrMissingAxis = errors.New("spectral: missing axis")
	// ErrShapeMismatch reports inconsistent step counts or frame sizes.
	ErrShapeMismatch = errors.New("spectral: shape mismatch")
	// ErrMissingReference reports a dataset without an M0 reference frame.
	ErrMissingReference = errors.New("spectral: dataset has no reference frame")
	// ErrBackendSize reports a length the selected FFT backend cannot plan.
	ErrBackendSize = errors.New("spectral: length not supported by backend")
)
