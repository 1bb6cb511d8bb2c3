package fact

import (
	"fmt"
	"math"
	"strconv"
)

// Kind identifies the case of a Value.
type Kind uint8

const (
	// KindBool is a boolean fact value.
	KindBool Kind = iota

	// KindInt is a signed integer fact value.
	KindInt

	// KindFloat is a floating-point fact value.
	KindFloat
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "unknown"
	}
}

// IsValid checks if the kind is a recognized value.
func (k Kind) IsValid() bool {
	switch k {
	case KindBool, KindInt, KindFloat:
		return true
	default:
		return false
	}
}

// Value is a closed tagged union over bool, int64, and float64.
// The zero value is Bool(false).
//
// Values are compared with Equal, which requires both the same kind and
// the same payload bits. There is deliberately no cross-kind numeric
// coercion: Int(1) and Float(1) are distinct.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
}

// Bool constructs a boolean Value.
func Bool(v bool) Value {
	return Value{kind: KindBool, b: v}
}

// Int constructs an integer Value.
func Int(v int64) Value {
	return Value{kind: KindInt, i: v}
}

// Float constructs a floating-point Value.
func Float(v float64) Value {
	return Value{kind: KindFloat, f: v}
}

// From converts a raw Go value into a Value. It accepts bool, every
// signed and unsigned integer width, and float32/float64 (float32 is
// widened). Any other type returns an error; callers must not silently
// coerce unknown types.
func From(v any) (Value, error) {
	switch x := v.(type) {
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return Int(int64(x)), nil
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		return Int(int64(x)), nil
	case float32:
		return Float(float64(x)), nil
	case float64:
		return Float(x), nil
	default:
		return Value{}, fmt.Errorf("unsupported fact value type %T", v)
	}
}

// Kind returns the case of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// Bool returns the boolean payload. It is only meaningful when
// Kind() == KindBool.
func (v Value) Bool() bool {
	return v.b
}

// Int returns the integer payload. It is only meaningful when
// Kind() == KindInt.
func (v Value) Int() int64 {
	return v.i
}

// Float returns the floating-point payload. It is only meaningful when
// Kind() == KindFloat.
func (v Value) Float() float64 {
	return v.f
}

// Equal reports whether two values have the same kind and the same
// payload bits. Floats are compared bitwise, so NaN values with the
// same bit pattern compare equal (keeping Equal consistent with Bits).
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return math.Float64bits(v.f) == math.Float64bits(o.f)
	default:
		return false
	}
}

// Bits returns the payload as a canonical 64-bit pattern, used for
// deterministic state hashing.
func (v Value) Bits() uint64 {
	switch v.kind {
	case KindBool:
		if v.b {
			return 1
		}
		return 0
	case KindInt:
		return uint64(v.i)
	case KindFloat:
		return math.Float64bits(v.f)
	default:
		return 0
	}
}

// Interface returns the payload as a plain Go value (bool, int64, or
// float64), suitable for handing to expression evaluators.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	default:
		return nil
	}
}

// String returns a human-readable representation, e.g. "int(5)".
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return "bool(" + strconv.FormatBool(v.b) + ")"
	case KindInt:
		return "int(" + strconv.FormatInt(v.i, 10) + ")"
	case KindFloat:
		return "float(" + strconv.FormatFloat(v.f, 'g', -1, 64) + ")"
	default:
		return "unknown"
	}
}
