package labeled

// Axis names.
const (
	DimT  = "t"
	DimX  = "x"
	DimY  = "y"
	DimZ  = "z"
	DimM  = "m"
	DimF  = "f"
	DimFT = "ft"
)

// Component labels of the time-domain and frequency-domain component axes.
const (
	CompMX = "mx"
	CompMY = "my"
	CompMZ = "mz"
	CompFX = "ft_x"
	CompFY = "ft_y"
	CompFZ = "ft_z"
)

// Unit strings attached to axes.
const (
	UnitSeconds       = "s"
	UnitMeters        = "m"
	UnitMagnetization = "A/m"
	UnitHertz         = "Hz"
)

// Well-known attribute keys.
const (
	KeyDriver              = "driver"
	KeyN                   = "n"
	KeyMaxFrequency        = "max_frequency"
	KeyFrequencyResolution = "frequency_resolution"
)

// SpatialDims lists the spatial axis names in storage order.
func SpatialDims() []string { return []string{DimX, DimY, DimZ} }

// MagnetizationLabels returns the ordered time-domain component labels.
func MagnetizationLabels() []string { return []string{CompMX, CompMY, CompMZ} }

// SpectralLabels returns the ordered frequency-domain component labels.
func SpectralLabels() []string { return []string{CompFX, CompFY, CompFZ} }

// SpectralLabel maps a magnetization component label to its transformed
// counterpart. ok is false for unknown labels.
func SpectralLabel(component string) (label string, ok bool) {
	switch component {
	case CompMX:
		return CompFX, true
	case CompMY:
		return CompFY, true
	case CompMZ:
		return CompFZ, true
	}
	return "", false
}
