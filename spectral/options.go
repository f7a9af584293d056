package spectral

import "github.com/cwbudde/algo-magspec/materialize"

// Backend selects the real FFT implementation.
type Backend int

const (
	// BackendAuto uses algo-fft for power-of-two lengths and gonum otherwise.
	BackendAuto Backend = iota
	// BackendAlgoFFT forces algo-fft; lengths must be powers of two.
	BackendAlgoFFT
	// BackendGonum forces gonum's dsp/fourier.
	BackendGonum
)

func (b Backend) String() string {
	switch b {
	case BackendAuto:
		return "auto"
	case BackendAlgoFFT:
		return "algo-fft"
	case BackendGonum:
		return "gonum"
	}
	return "unknown"
}

// Config holds transform settings.
type Config struct {
	Backend Backend
	// Materialize is forwarded to the materializer by the FromDrive variants.
	Materialize []materialize.Option
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the automatic-backend configuration.
func DefaultConfig() Config {
	return Config{Backend: BackendAuto}
}

// WithBackend selects the FFT backend.
func WithBackend(b Backend) Option {
	return func(cfg *Config) {
		cfg.Backend = b
	}
}

// WithMaterializeOptions sets the options FromDrive and FromDriveDataset
// pass to the materializer.
func WithMaterializeOptions(opts ...materialize.Option) Option {
	return func(cfg *Config) {
		cfg.Materialize = append(cfg.Materialize, opts...)
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
