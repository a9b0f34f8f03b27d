package tensor

import (
	"fmt"

	"github.com/pkg/errors"
)

// Shape represents the dimensions of an array. An empty Shape is a scalar.
type Shape []int

// NumElements returns the total number of elements in the array.
func (s Shape) NumElements() int {
	n := 1 // Scalar has 1 element
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that every dimension is non-negative. Zero-sized
// dimensions are valid and describe empty arrays.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim < 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be >= 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major strides (in elements) for the shape.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// BroadcastShapes unifies two shapes.
//
// Scalars are handled first: two scalars give a scalar, and a scalar
// against any shape gives that shape unchanged. Otherwise NumPy rules
// apply: dimensions are aligned from the right and must be equal or 1,
// and the leading dimensions of the longer shape are kept.
//
// Returns the broadcasted shape, a flag indicating if either side had to
// be stretched, and a *ShapeMismatchError if incompatible.
//
// Examples:
//
//	()     + (3, 5) → (3, 5), false, nil
//	(3, 1) + (3, 5) → (3, 5), true, nil
//	(3, 5) + (3, 5) → (3, 5), false, nil
//	(3, 4) + (3, 5) → nil, false, ShapeMismatchError
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	switch {
	case len(a) == 0 && len(b) == 0:
		return Shape{}, false, nil
	case len(a) == 0:
		return b.Clone(), false, nil
	case len(b) == 0:
		return a.Clone(), false, nil
	}

	maxLen := max(len(a), len(b))
	result := make(Shape, maxLen)
	needsBroadcast := len(a) != len(b)

	for i := 0; i < maxLen; i++ {
		aIdx := len(a) - 1 - i
		bIdx := len(b) - 1 - i

		aDim := 1
		if aIdx >= 0 {
			aDim = a[aIdx]
		}

		bDim := 1
		if bIdx >= 0 {
			bDim = b[bIdx]
		}

		switch {
		case aDim == bDim:
			result[maxLen-1-i] = aDim
		case aDim == 1:
			result[maxLen-1-i] = bDim
			needsBroadcast = true
		case bDim == 1:
			result[maxLen-1-i] = aDim
			needsBroadcast = true
		default:
			return nil, false, errors.WithStack(&ShapeMismatchError{
				Shapes: []Shape{a.Clone(), b.Clone()},
				Axis:   maxLen - 1 - i,
			})
		}
	}

	return result, needsBroadcast, nil
}

// BroadcastAll folds BroadcastShapes over every shape, left to right.
// No shapes yields a scalar shape.
func BroadcastAll(shapes ...Shape) (Shape, error) {
	result := Shape{}
	for _, s := range shapes {
		next, _, err := BroadcastShapes(result, s)
		if err != nil {
			var mismatch *ShapeMismatchError
			if errors.As(err, &mismatch) {
				mismatch.Shapes = cloneShapes(shapes)
			}
			return nil, err
		}
		result = next
	}
	return result, nil
}

func cloneShapes(shapes []Shape) []Shape {
	out := make([]Shape, len(shapes))
	for i, s := range shapes {
		out[i] = s.Clone()
	}
	return out
}
