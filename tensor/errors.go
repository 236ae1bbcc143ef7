package tensor

import "fmt"

// BoundsError reports an index outside the shape of a tensor or an on-chip
// buffer. It always indicates a bug in the code computing the index and is
// raised with panic.
type BoundsError struct {
	Name  string
	Index []int
	Shape []int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s: index %v out of bounds for shape %v",
		e.Name, e.Index, e.Shape)
}

func outOfBounds(name string, shape []int, index ...int) {
	panic(&BoundsError{
		Name:  name,
		Index: append([]int(nil), index...),
		Shape: append([]int(nil), shape...),
	})
}
