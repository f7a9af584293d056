package labeled

import "fmt"

// Element is the set of element types an [Array] can hold.
type Element interface {
	~float64 | ~complex128
}

// Array is a dense row-major n-dimensional array with labeled axes.
//
// The last axis varies fastest. len(Data) always equals the product of the
// axis lengths.
type Array[T Element] struct {
	Data  []T
	Axes  []Axis
	Attrs Attrs
}

// NewArray allocates a zeroed array for axes. axes and attrs are copied.
func NewArray[T Element](axes []Axis, attrs Attrs) (*Array[T], error) {
	if err := validateAxes(axes); err != nil {
		return nil, err
	}
	size := 1
	for _, ax := range axes {
		size *= ax.Len()
	}
	return &Array[T]{
		Data:  make([]T, size),
		Axes:  cloneAxes(axes),
		Attrs: attrs.Clone(),
	}, nil
}

// FromData wraps data without copying it. len(data) must equal the product
// of the axis lengths.
func FromData[T Element](data []T, axes []Axis, attrs Attrs) (*Array[T], error) {
	if err := validateAxes(axes); err != nil {
		return nil, err
	}
	size := 1
	for _, ax := range axes {
		size *= ax.Len()
	}
	if len(data) != size {
		return nil, fmt.Errorf("%w: %d elements for shape %v", ErrShapeMismatch, len(data), shapeOf(axes))
	}
	return &Array[T]{
		Data:  data,
		Axes:  cloneAxes(axes),
		Attrs: attrs.Clone(),
	}, nil
}

func shapeOf(axes []Axis) []int {
	shape := make([]int, len(axes))
	for i, ax := range axes {
		shape[i] = ax.Len()
	}
	return shape
}

// Shape returns the axis lengths.
func (a *Array[T]) Shape() []int { return shapeOf(a.Axes) }

// Size returns the total element count.
func (a *Array[T]) Size() int { return len(a.Data) }

// Dims returns the axis names in order.
func (a *Array[T]) Dims() []string {
	dims := make([]string, len(a.Axes))
	for i, ax := range a.Axes {
		dims[i] = ax.Name
	}
	return dims
}

// AxisIndex returns the position of the named axis, or -1.
func (a *Array[T]) AxisIndex(name string) int {
	for i, ax := range a.Axes {
		if ax.Name == name {
			return i
		}
	}
	return -1
}

// Axis returns the named axis.
func (a *Array[T]) Axis(name string) (Axis, error) {
	i := a.AxisIndex(name)
	if i < 0 {
		return Axis{}, fmt.Errorf("%w: %q", ErrUnknownAxis, name)
	}
	return a.Axes[i], nil
}

// Stride returns the element distance between consecutive indices of axis dim.
func (a *Array[T]) Stride(dim int) int {
	stride := 1
	for i := len(a.Axes) - 1; i > dim; i-- {
		stride *= a.Axes[i].Len()
	}
	return stride
}

// Offset converts a full index tuple into a position in Data.
func (a *Array[T]) Offset(idx ...int) (int, error) {
	if len(idx) != len(a.Axes) {
		return 0, fmt.Errorf("%w: %d indices for %d axes", ErrShapeMismatch, len(idx), len(a.Axes))
	}
	off := 0
	for i, ax := range a.Axes {
		n := ax.Len()
		if idx[i] < 0 || idx[i] >= n {
			return 0, fmt.Errorf("labeled: index %d out of range [0,%d) on axis %q", idx[i], n, ax.Name)
		}
		off = off*n + idx[i]
	}
	return off, nil
}

// At returns the element at idx. It panics on an invalid index, like slice
// indexing does.
func (a *Array[T]) At(idx ...int) T {
	off, err := a.Offset(idx...)
	if err != nil {
		panic(err)
	}
	return a.Data[off]
}

// Set stores v at idx. It panics on an invalid index.
func (a *Array[T]) Set(v T, idx ...int) {
	off, err := a.Offset(idx...)
	if err != nil {
		panic(err)
	}
	a.Data[off] = v
}

// Frame returns the contiguous sub-slice for leading index i. The slice
// aliases Data.
func (a *Array[T]) Frame(i int) []T {
	stride := a.Stride(0)
	return a.Data[i*stride : (i+1)*stride]
}

// Clone returns a deep copy of a.
func (a *Array[T]) Clone() *Array[T] {
	return &Array[T]{
		Data:  append([]T(nil), a.Data...),
		Axes:  cloneAxes(a.Axes),
		Attrs: a.Attrs.Clone(),
	}
}

// Component extracts the sub-array at label along the categorical axis dim.
// The result drops that axis and owns its data.
func (a *Array[T]) Component(dim, label string) (*Array[T], error) {
	k := a.AxisIndex(dim)
	if k < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAxis, dim)
	}
	pos := a.Axes[k].Index(label)
	if pos < 0 {
		return nil, fmt.Errorf("%w: label %q not on axis %q", ErrUnknownAxis, label, dim)
	}

	if len(a.Axes) == 1 {
		return nil, fmt.Errorf("%w: cannot drop the only axis %q", ErrShapeMismatch, dim)
	}

	axes := make([]Axis, 0, len(a.Axes)-1)
	axes = append(axes, a.Axes[:k]...)
	axes = append(axes, a.Axes[k+1:]...)

	inner := a.Stride(k)
	n := a.Axes[k].Len()
	outer := len(a.Data) / (inner * n)
	data := make([]T, 0, outer*inner)
	for o := 0; o < outer; o++ {
		base := (o*n + pos) * inner
		data = append(data, a.Data[base:base+inner]...)
	}
	return FromData(data, axes, a.Attrs)
}

func (a *Array[T]) String() string {
	return fmt.Sprintf("Array%v dims=%v attrs=%v", a.Shape(), a.Dims(), a.Attrs.Map())
}
