package dispatch

import (
	"math"
	"reflect"

	"github.com/pkg/errors"

	"github.com/umer200/ivy/internal/tensor"
)

// ResolveDType computes the dtype of an operation's output.
//
// An explicit dtype wins. Otherwise the first input that is an existing
// array lends its dtype verbatim. Otherwise scalars found in the inputs
// (nested sequences included) are inspected: any complex gives complex64,
// any float gives the default float, all-bool gives bool, and integers
// give int32, or the narrowest of int64 and uint64 that holds every
// value seen. With nothing to inspect the fallback is returned.
func (c *Context) ResolveDType(inputs []any, explicit, fallback tensor.DType) (tensor.DType, error) {
	if explicit != 0 {
		if !explicit.Valid() {
			return 0, errors.Errorf("invalid dtype %v", explicit)
		}
		return explicit, nil
	}
	for _, in := range inputs {
		if arr, ok := in.(tensor.NumericArray); ok {
			return arr.DType(), nil
		}
	}

	var k kinds
	for _, in := range inputs {
		if err := k.visit(reflect.ValueOf(in)); err != nil {
			return 0, err
		}
	}
	switch {
	case k.complex:
		return tensor.Complex64, nil
	case k.float:
		return c.float, nil
	case k.integer:
		return k.intDType()
	case k.boolean:
		return tensor.Bool, nil
	}
	return fallback, nil
}

// ResolveToken parses a caller-supplied dtype token and returns the
// canonical dtype together with the engine's own spelling of it. The
// token "bool" therefore becomes "bool_" on engines that spell it so.
func (c *Context) ResolveToken(token string) (tensor.DType, string, error) {
	dt, err := tensor.ParseDType(token)
	if err != nil {
		return 0, "", errors.WithStack(err)
	}
	return dt, c.backend.NativeDTypeName(dt), nil
}

type kinds struct {
	boolean, integer, float, complex bool

	lo int64  // smallest integer value seen
	hi uint64 // largest non-negative integer value seen
}

func (k *kinds) intDType() (tensor.DType, error) {
	switch {
	case k.hi > math.MaxInt64 && k.lo < 0:
		return 0, errors.Errorf("integers from %d to %d fit no integer dtype", k.lo, k.hi)
	case k.hi > math.MaxInt64:
		return tensor.Uint64, nil
	case k.lo < math.MinInt32 || k.hi > math.MaxInt32:
		return tensor.Int64, nil
	}
	return tensor.Int32, nil
}

func (k *kinds) add(dt tensor.DType) {
	switch {
	case dt.IsComplex():
		k.complex = true
	case dt.IsFloat():
		k.float = true
	case dt.IsInt():
		k.integer = true
	case dt.IsBool():
		k.boolean = true
	}
}

func (k *kinds) visit(v reflect.Value) error {
	if !v.IsValid() {
		return nil
	}
	if v.CanInterface() {
		if arr, ok := v.Interface().(tensor.NumericArray); ok {
			k.add(arr.DType())
			return nil
		}
	}
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer:
		if v.IsNil() {
			return nil
		}
		return k.visit(v.Elem())
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := k.visit(v.Index(i)); err != nil {
				return err
			}
		}
		return nil
	}
	if dt, ok := scalarKind(v); ok {
		k.add(dt)
		switch {
		case dt == tensor.Int64:
			if n := v.Int(); n < 0 {
				k.lo = min(k.lo, n)
			} else {
				k.hi = max(k.hi, uint64(n))
			}
		case dt == tensor.Uint64:
			k.hi = max(k.hi, v.Uint())
		}
		return nil
	}
	return errors.Errorf("cannot infer dtype from %s", v.Type())
}

func scalarKind(v reflect.Value) (tensor.DType, bool) {
	switch v.Kind() {
	case reflect.Bool:
		return tensor.Bool, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return tensor.Int64, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return tensor.Uint64, true
	case reflect.Float32, reflect.Float64:
		return tensor.Float64, true
	case reflect.Complex64, reflect.Complex128:
		return tensor.Complex128, true
	}
	return 0, false
}

// Flatten walks a scalar or nested sequence and returns its shape and its
// scalars in row-major order. Ragged nesting is rejected.
func Flatten(value any) (tensor.Shape, []any, error) {
	var flat []any
	shape, err := flatten(reflect.ValueOf(value), &flat)
	if err != nil {
		return nil, nil, err
	}
	return shape, flat, nil
}

func flatten(v reflect.Value, flat *[]any) (tensor.Shape, error) {
	if !v.IsValid() {
		return nil, errors.New("cannot convert nil to an array")
	}
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer:
		if v.IsNil() {
			return nil, errors.New("cannot convert nil to an array")
		}
		return flatten(v.Elem(), flat)
	case reflect.Slice, reflect.Array:
		n := v.Len()
		if n == 0 {
			return tensor.Shape{0}, nil
		}
		var inner tensor.Shape
		for i := 0; i < n; i++ {
			s, err := flatten(v.Index(i), flat)
			if err != nil {
				return nil, err
			}
			if i == 0 {
				inner = s
			} else if !s.Equal(inner) {
				return nil, errors.Errorf("ragged sequence: element %d has shape %v, element 0 has %v", i, []int(s), []int(inner))
			}
		}
		return append(tensor.Shape{n}, inner...), nil
	}
	switch v.Kind() {
	case reflect.Bool:
		*flat = append(*flat, v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		*flat = append(*flat, v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		*flat = append(*flat, v.Uint())
	case reflect.Float32, reflect.Float64:
		*flat = append(*flat, v.Float())
	case reflect.Complex64, reflect.Complex128:
		*flat = append(*flat, v.Complex())
	default:
		return nil, errors.Errorf("cannot convert %s to an array element", v.Type())
	}
	return tensor.Shape{}, nil
}
