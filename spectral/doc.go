// Package spectral converts time-domain labeled arrays into their one-sided
// frequency-domain representation.
//
// The package does not implement an FFT itself. Real-input transforms are
// delegated to algo-fft for power-of-two lengths and to gonum's dsp/fourier
// for every other length; both produce the unnormalized bins
//
//	X[k] = sum_j x[j] * exp(-2*pi*i*j*k/n),  k = 0..n/2
//
// The time axis must be uniformly spaced. Only the first two samples are
// used to derive the sampling interval; the rest of the axis is trusted.
//
// Results carry the axis f (Hz) in place of t and the component axis ft
// (ft_x, ft_y, ft_z) in place of m. The attributes max_frequency (Nyquist)
// and frequency_resolution are attached as strings with an " Hz" suffix.
package spectral
