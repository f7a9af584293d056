package labeled

import "fmt"

// Dataset is an ordered collection of arrays that share one coordinate set.
//
// Every variable has exactly the axes in Coords. M0 holds the reference
// frame a deviation spectrum is computed against; it has the axes
// (x, y, z, m) and is nil when no reference is known.
type Dataset[T Element] struct {
	Names  []string
	Vars   map[string]*Array[T]
	Coords []Axis
	Attrs  Attrs
	M0     *Array[float64]
}

// NewDataset returns an empty dataset over coords.
func NewDataset[T Element](coords []Axis, attrs Attrs) (*Dataset[T], error) {
	if err := validateAxes(coords); err != nil {
		return nil, err
	}
	return &Dataset[T]{
		Vars:   make(map[string]*Array[T]),
		Coords: cloneAxes(coords),
		Attrs:  attrs.Clone(),
	}, nil
}

// Add appends a variable. Its axes must match the dataset coordinates and
// its name must be new.
func (d *Dataset[T]) Add(name string, arr *Array[T]) error {
	if name == "" {
		return fmt.Errorf("labeled: empty variable name")
	}
	if _, dup := d.Vars[name]; dup {
		return fmt.Errorf("labeled: duplicate variable %q", name)
	}
	if len(arr.Axes) != len(d.Coords) {
		return fmt.Errorf("%w: variable %q has %d axes, dataset has %d", ErrShapeMismatch, name, len(arr.Axes), len(d.Coords))
	}
	for i := range d.Coords {
		if !arr.Axes[i].Equal(d.Coords[i]) {
			return fmt.Errorf("%w: variable %q axis %q differs from shared coordinate", ErrShapeMismatch, name, arr.Axes[i].Name)
		}
	}
	d.Names = append(d.Names, name)
	d.Vars[name] = arr
	return nil
}

// Var returns the named variable.
func (d *Dataset[T]) Var(name string) (*Array[T], error) {
	v, ok := d.Vars[name]
	if !ok {
		return nil, fmt.Errorf("labeled: unknown variable %q", name)
	}
	return v, nil
}

// Coord returns the named shared coordinate axis.
func (d *Dataset[T]) Coord(name string) (Axis, error) {
	for _, ax := range d.Coords {
		if ax.Name == name {
			return ax, nil
		}
	}
	return Axis{}, fmt.Errorf("%w: %q", ErrUnknownAxis, name)
}

// Shape returns the shape shared by all variables.
func (d *Dataset[T]) Shape() []int { return shapeOf(d.Coords) }
