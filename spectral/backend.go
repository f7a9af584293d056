package spectral

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// realPlan computes the n/2+1 one-sided bins of a real sequence of fixed
// length. Plans own scratch memory and are not safe for concurrent use.
type realPlan interface {
	Len() int
	Coefficients(dst []complex128, seq []float64) error
}

// algoPlan runs a complex algo-fft plan on the real input lifted to the
// complex plane and keeps the non-negative half.
type algoPlan struct {
	plan *algofft.Plan[complex128]
	in   []complex128
	out  []complex128
}

func newAlgoPlan(n int) (*algoPlan, error) {
	if !isPowerOf2(n) {
		return nil, fmt.Errorf("%w: algo-fft needs a power of 2, got %d", ErrBackendSize, n)
	}
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("spectral: algo-fft plan for %d: %w", n, err)
	}
	return &algoPlan{
		plan: plan,
		in:   make([]complex128, n),
		out:  make([]complex128, n),
	}, nil
}

func (p *algoPlan) Len() int { return len(p.in) }

func (p *algoPlan) Coefficients(dst []complex128, seq []float64) error {
	for i, v := range seq {
		p.in[i] = complex(v, 0)
	}
	if err := p.plan.Forward(p.out, p.in); err != nil {
		return fmt.Errorf("spectral: forward fft: %w", err)
	}
	copy(dst, p.out[:len(dst)])
	return nil
}

type gonumPlan struct {
	fft *fourier.FFT
}

func newGonumPlan(n int) *gonumPlan {
	return &gonumPlan{fft: fourier.NewFFT(n)}
}

func (p *gonumPlan) Len() int { return p.fft.Len() }

func (p *gonumPlan) Coefficients(dst []complex128, seq []float64) error {
	p.fft.Coefficients(dst, seq)
	return nil
}

func newPlan(b Backend, n int) (realPlan, error) {
	switch b {
	case BackendAlgoFFT:
		return newAlgoPlan(n)
	case BackendGonum:
		return newGonumPlan(n), nil
	case BackendAuto:
		if isPowerOf2(n) {
			if p, err := newAlgoPlan(n); err == nil {
				return p, nil
			}
		}
		return newGonumPlan(n), nil
	}
	return nil, fmt.Errorf("spectral: unknown backend %d", int(b))
}

// isPowerOf2 returns true if n is a power of 2.
func isPowerOf2(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}

// RFFT returns the one-sided spectrum of x, len(x)/2+1 bins.
func RFFT(x []float64, opts ...Option) ([]complex128, error) {
	if len(x) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewSamples, len(x))
	}
	cfg := ApplyOptions(opts...)
	plan, err := newPlan(cfg.Backend, len(x))
	if err != nil {
		return nil, err
	}
	out := make([]complex128, BinCount(len(x)))
	if err := plan.Coefficients(out, x); err != nil {
		return nil, err
	}
	return out, nil
}

// rfftAxis0 transforms data of shape (n, stride) along its leading axis
// into dst of shape (n/2+1, stride).
func rfftAxis0(plan realPlan, dst []complex128, data []float64, stride int) error {
	n := plan.Len()
	bins := BinCount(n)
	seq := make([]float64, n)
	coeff := make([]complex128, bins)
	for j := 0; j < stride; j++ {
		for i := range seq {
			seq[i] = data[i*stride+j]
		}
		if err := plan.Coefficients(coeff, seq); err != nil {
			return err
		}
		for k, c := range coeff {
			dst[k*stride+j] = c
		}
	}
	return nil
}
