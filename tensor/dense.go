// Package tensor provides the size-checked multi-dimensional containers that
// hold feature maps, weights, biases and on-chip tile buffers.
//
// All containers are a flat slice plus row-major strides. Every element access
// is bounds-checked per dimension and a bad index panics with a *BoundsError.
package tensor

import "fmt"

// Dense is a named, row-major, N-dimensional array.
type Dense[T any] struct {
	name    string
	shape   []int
	strides []int
	data    []T
}

// NewDense allocates a zeroed Dense with the given dimensions. All dimensions
// must be positive.
func NewDense[T any](name string, dims ...int) *Dense[T] {
	if len(dims) == 0 {
		panic(fmt.Sprintf("%s: tensor needs at least one dimension", name))
	}

	size := 1
	for _, d := range dims {
		if d <= 0 {
			panic(fmt.Sprintf("%s: non-positive dimension in %v", name, dims))
		}
		size *= d
	}

	strides := make([]int, len(dims))
	stride := 1
	for i := len(dims) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= dims[i]
	}

	return &Dense[T]{
		name:    name,
		shape:   append([]int(nil), dims...),
		strides: strides,
		data:    make([]T, size),
	}
}

// Name returns the name used in error messages.
func (d *Dense[T]) Name() string {
	return d.name
}

// Shape returns a copy of the dimensions.
func (d *Dense[T]) Shape() []int {
	return append([]int(nil), d.shape...)
}

// Dim returns the size of dimension i.
func (d *Dense[T]) Dim(i int) int {
	return d.shape[i]
}

// Len returns the number of elements.
func (d *Dense[T]) Len() int {
	return len(d.data)
}

// Data exposes the flat backing slice.
func (d *Dense[T]) Data() []T {
	return d.data
}

// At returns the element at idx.
func (d *Dense[T]) At(idx ...int) T {
	return d.data[d.Offset(idx...)]
}

// Set stores v at idx.
func (d *Dense[T]) Set(v T, idx ...int) {
	d.data[d.Offset(idx...)] = v
}

// Fill sets every element to v.
func (d *Dense[T]) Fill(v T) {
	for i := range d.data {
		d.data[i] = v
	}
}

// Offset returns the flat position of idx.
func (d *Dense[T]) Offset(idx ...int) int {
	if len(idx) != len(d.shape) {
		outOfBounds(d.name, d.shape, idx...)
	}

	off := 0
	for i, x := range idx {
		if x < 0 || x >= d.shape[i] {
			outOfBounds(d.name, d.shape, idx...)
		}
		off += x * d.strides[i]
	}

	return off
}

func (d *Dense[T]) offset3(i, j, k int) int {
	if len(d.shape) != 3 ||
		i < 0 || i >= d.shape[0] ||
		j < 0 || j >= d.shape[1] ||
		k < 0 || k >= d.shape[2] {
		outOfBounds(d.name, d.shape, i, j, k)
	}

	return i*d.strides[0] + j*d.strides[1] + k
}

func (d *Dense[T]) offset4(i, j, k, l int) int {
	if len(d.shape) != 4 ||
		i < 0 || i >= d.shape[0] ||
		j < 0 || j >= d.shape[1] ||
		k < 0 || k >= d.shape[2] ||
		l < 0 || l >= d.shape[3] {
		outOfBounds(d.name, d.shape, i, j, k, l)
	}

	return i*d.strides[0] + j*d.strides[1] + k*d.strides[2] + l
}

// At3 is At for three-dimensional tensors without the variadic call.
func (d *Dense[T]) At3(i, j, k int) T {
	return d.data[d.offset3(i, j, k)]
}

// Set3 is Set for three-dimensional tensors.
func (d *Dense[T]) Set3(i, j, k int, v T) {
	d.data[d.offset3(i, j, k)] = v
}

// At4 is At for four-dimensional tensors.
func (d *Dense[T]) At4(i, j, k, l int) T {
	return d.data[d.offset4(i, j, k, l)]
}

// Set4 is Set for four-dimensional tensors.
func (d *Dense[T]) Set4(i, j, k, l int, v T) {
	d.data[d.offset4(i, j, k, l)] = v
}
