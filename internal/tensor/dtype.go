// Package tensor provides the core array types shared by the normalization layer and its engines.
package tensor

import (
	"fmt"
	"strings"
)

// DType is the canonical, backend-independent element kind.
// The zero value means "not specified".
type DType int

// Supported data types. The set is closed: every array produced by this
// module carries one of these.
const (
	Bool DType = iota + 1
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	BFloat16
	Float16
	Float32
	Float64
	Complex64
	Complex128
)

// AllDTypes lists the closed set in declaration order.
var AllDTypes = []DType{
	Bool, Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64,
	BFloat16, Float16, Float32, Float64, Complex64, Complex128,
}

var dtypeNames = map[DType]string{
	Bool:       "bool",
	Int8:       "int8",
	Int16:      "int16",
	Int32:      "int32",
	Int64:      "int64",
	Uint8:      "uint8",
	Uint16:     "uint16",
	Uint32:     "uint32",
	Uint64:     "uint64",
	BFloat16:   "bfloat16",
	Float16:    "float16",
	Float32:    "float32",
	Float64:    "float64",
	Complex64:  "complex64",
	Complex128: "complex128",
}

// Valid reports whether dt is a member of the closed set.
func (dt DType) Valid() bool {
	_, ok := dtypeNames[dt]
	return ok
}

// String returns the canonical name for the data type.
func (dt DType) String() string {
	if name, ok := dtypeNames[dt]; ok {
		return name
	}
	if dt == 0 {
		return "none"
	}
	return fmt.Sprintf("DType(%d)", int(dt))
}

// Size returns the byte size of one element.
func (dt DType) Size() int {
	switch dt {
	case Bool, Int8, Uint8:
		return 1
	case Int16, Uint16, BFloat16, Float16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64, Complex64:
		return 8
	case Complex128:
		return 16
	default:
		panic(fmt.Sprintf("size of invalid dtype %v", dt))
	}
}

// IsBool reports whether dt is the boolean kind.
func (dt DType) IsBool() bool { return dt == Bool }

// IsInt reports whether dt is a signed or unsigned integer kind.
func (dt DType) IsInt() bool {
	switch dt {
	case Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64:
		return true
	}
	return false
}

// IsUnsigned reports whether dt is an unsigned integer kind.
func (dt DType) IsUnsigned() bool {
	switch dt {
	case Uint8, Uint16, Uint32, Uint64:
		return true
	}
	return false
}

// IsFloat reports whether dt is a real floating kind.
func (dt DType) IsFloat() bool {
	switch dt {
	case BFloat16, Float16, Float32, Float64:
		return true
	}
	return false
}

// IsComplex reports whether dt is a complex kind.
func (dt DType) IsComplex() bool { return dt == Complex64 || dt == Complex128 }

// Narrowed maps the 64-bit integer and floating defaults to their 32-bit
// canonical counterparts. Every other dtype is returned unchanged.
func (dt DType) Narrowed() DType {
	switch dt {
	case Float64:
		return Float32
	case Int64:
		return Int32
	}
	return dt
}

// CanCastSafely reports whether every value of from is exactly representable in to.
func CanCastSafely(from, to DType) bool {
	if from == to {
		return true
	}
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from == Bool {
		return true
	}
	switch {
	case from.IsUnsigned() && to.IsUnsigned():
		return to.Size() >= from.Size()
	case from.IsUnsigned() && to.IsInt():
		return to.Size() > from.Size()
	case from.IsInt() && !from.IsUnsigned() && to.IsInt():
		return !to.IsUnsigned() && to.Size() >= from.Size()
	case from.IsInt() && to.IsFloat():
		// Mantissa must hold every integer of the source width.
		return mantissaBits(to) > 8*from.Size()
	case from.IsInt() && to.IsComplex():
		return mantissaBits(to) > 8*from.Size()
	case from.IsFloat() && to.IsFloat():
		if from == BFloat16 || to == BFloat16 {
			return to == Float32 || to == Float64
		}
		return to.Size() >= from.Size()
	case from.IsFloat() && to.IsComplex():
		return to.Size()/2 >= from.Size()
	case from.IsComplex() && to.IsComplex():
		return to.Size() >= from.Size()
	}
	return false
}

func mantissaBits(dt DType) int {
	switch dt {
	case BFloat16:
		return 8
	case Float16:
		return 11
	case Float32, Complex64:
		return 24
	case Float64, Complex128:
		return 53
	}
	return 0
}

// ParseDType parses a canonical dtype name. The spelling "bool_" used by
// some engines is accepted as an alias of bool.
func ParseDType(token string) (DType, error) {
	name := strings.ToLower(strings.TrimSpace(token))
	if name == "bool_" {
		return Bool, nil
	}
	for dt, n := range dtypeNames {
		if n == name {
			return dt, nil
		}
	}
	return 0, fmt.Errorf("unknown dtype %q", token)
}

// MustParseDType is like ParseDType but panics on error.
func MustParseDType(token string) DType {
	dt, err := ParseDType(token)
	if err != nil {
		panic(err)
	}
	return dt
}

// ScalarDType returns the natural dtype of a Go scalar value. Platform int
// and uint map to their 64-bit kinds.
func ScalarDType(v any) (DType, bool) {
	switch v.(type) {
	case bool:
		return Bool, true
	case int8:
		return Int8, true
	case int16:
		return Int16, true
	case int32:
		return Int32, true
	case int, int64:
		return Int64, true
	case uint8:
		return Uint8, true
	case uint16:
		return Uint16, true
	case uint32:
		return Uint32, true
	case uint, uint64:
		return Uint64, true
	case float32:
		return Float32, true
	case float64:
		return Float64, true
	case complex64:
		return Complex64, true
	case complex128:
		return Complex128, true
	}
	return 0, false
}

// ScalarValue converts a Go scalar to complex128. Booleans map to 0 and 1.
func ScalarValue(v any) (complex128, bool) {
	switch x := v.(type) {
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case int:
		return complex(float64(x), 0), true
	case int8:
		return complex(float64(x), 0), true
	case int16:
		return complex(float64(x), 0), true
	case int32:
		return complex(float64(x), 0), true
	case int64:
		return complex(float64(x), 0), true
	case uint:
		return complex(float64(x), 0), true
	case uint8:
		return complex(float64(x), 0), true
	case uint16:
		return complex(float64(x), 0), true
	case uint32:
		return complex(float64(x), 0), true
	case uint64:
		return complex(float64(x), 0), true
	case float32:
		return complex(float64(x), 0), true
	case float64:
		return complex(x, 0), true
	case complex64:
		return complex128(x), true
	case complex128:
		return x, true
	}
	return 0, false
}
