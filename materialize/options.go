package materialize

// Config controls how a drive is materialized.
type Config struct {
	// Coordinates enables spatial coordinates from the mesh and unit
	// annotations. When false, spatial axes use positional indices and no
	// axis carries units.
	Coordinates bool
	// Workers is the number of concurrent snapshot readers. Values above 1
	// require a drive that is safe for concurrent Step calls.
	Workers int
	// ValidateSpacing rejects time columns that are not uniformly spaced.
	ValidateSpacing bool
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the full-annotation, sequential configuration.
func DefaultConfig() Config {
	return Config{
		Coordinates: true,
		Workers:     1,
	}
}

// WithCoordinates toggles mesh coordinates and unit annotations.
func WithCoordinates(enabled bool) Option {
	return func(cfg *Config) {
		cfg.Coordinates = enabled
	}
}

// WithWorkers sets the number of concurrent snapshot readers.
func WithWorkers(workers int) Option {
	return func(cfg *Config) {
		if workers > 0 {
			cfg.Workers = workers
		}
	}
}

// WithValidateSpacing enables the uniform time spacing check.
func WithValidateSpacing(enabled bool) Option {
	return func(cfg *Config) {
		cfg.ValidateSpacing = enabled
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
