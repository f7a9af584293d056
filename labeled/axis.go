package labeled

import "fmt"

// Axis describes one dimension of an [Array].
//
// Exactly one of Values (numeric coordinates) or Labels (categorical
// coordinates) is set. Units is optional.
type Axis struct {
	Name   string
	Units  string
	Values []float64
	Labels []string
}

// Numeric returns an axis with numeric coordinates. values is not copied.
func Numeric(name string, values []float64) Axis {
	return Axis{Name: name, Values: values}
}

// Categorical returns an axis with string labels.
func Categorical(name string, labels ...string) Axis {
	return Axis{Name: name, Labels: labels}
}

// Positional returns a numeric axis with coordinates 0, 1, ..., n-1.
func Positional(name string, n int) Axis {
	values := make([]float64, max(n, 0))
	for i := range values {
		values[i] = float64(i)
	}
	return Axis{Name: name, Values: values}
}

// WithUnits returns a copy of a with the unit annotation set.
func (a Axis) WithUnits(units string) Axis {
	a.Units = units
	return a
}

// Len returns the number of coordinates.
func (a Axis) Len() int {
	if a.Labels != nil {
		return len(a.Labels)
	}
	return len(a.Values)
}

// IsCategorical reports whether the axis carries string labels.
func (a Axis) IsCategorical() bool { return a.Labels != nil }

// Index returns the position of label on a categorical axis, or -1.
func (a Axis) Index(label string) int {
	for i, l := range a.Labels {
		if l == label {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of a.
func (a Axis) Clone() Axis {
	out := Axis{Name: a.Name, Units: a.Units}
	if a.Values != nil {
		out.Values = append([]float64(nil), a.Values...)
	}
	if a.Labels != nil {
		out.Labels = append([]string(nil), a.Labels...)
	}
	return out
}

// Equal reports whether a and b have the same name, units and coordinates.
func (a Axis) Equal(b Axis) bool {
	if a.Name != b.Name || a.Units != b.Units || a.IsCategorical() != b.IsCategorical() {
		return false
	}
	if len(a.Values) != len(b.Values) || len(a.Labels) != len(b.Labels) {
		return false
	}
	for i := range a.Values {
		if a.Values[i] != b.Values[i] {
			return false
		}
	}
	for i := range a.Labels {
		if a.Labels[i] != b.Labels[i] {
			return false
		}
	}
	return true
}

func (a Axis) validate() error {
	if a.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAxis)
	}
	if a.Values != nil && a.Labels != nil {
		return fmt.Errorf("%w: %q has both values and labels", ErrInvalidAxis, a.Name)
	}
	if a.Len() == 0 {
		return fmt.Errorf("%w: %q has no coordinates", ErrInvalidAxis, a.Name)
	}
	return nil
}

func validateAxes(axes []Axis) error {
	if len(axes) == 0 {
		return fmt.Errorf("%w: no axes", ErrInvalidAxis)
	}
	seen := make(map[string]struct{}, len(axes))
	for _, ax := range axes {
		if err := ax.validate(); err != nil {
			return err
		}
		if _, dup := seen[ax.Name]; dup {
			return fmt.Errorf("%w: duplicate name %q", ErrInvalidAxis, ax.Name)
		}
		seen[ax.Name] = struct{}{}
	}
	return nil
}

func cloneAxes(axes []Axis) []Axis {
	out := make([]Axis, len(axes))
	for i, ax := range axes {
		out[i] = ax.Clone()
	}
	return out
}
