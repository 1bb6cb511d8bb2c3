package fact

import (
	"math"
	"testing"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    Value
		wantErr bool
	}{
		{"bool", true, Bool(true), false},
		{"int", 42, Int(42), false},
		{"int8", int8(-3), Int(-3), false},
		{"int64", int64(7), Int(7), false},
		{"uint32", uint32(9), Int(9), false},
		{"float64", 1.5, Float(1.5), false},
		{"float32 widened", float32(2), Float(2), false},
		{"value passthrough", Int(1), Int(1), false},
		{"string unsupported", "nope", Value{}, true},
		{"struct unsupported", struct{}{}, Value{}, true},
		{"nil unsupported", nil, Value{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := From(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("From(%v) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("From(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestValue_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"same bool", Bool(true), Bool(true), true},
		{"different bool", Bool(true), Bool(false), false},
		{"same int", Int(5), Int(5), true},
		{"different int", Int(5), Int(6), false},
		{"same float", Float(1.25), Float(1.25), true},
		{"different float", Float(1.25), Float(1.5), false},
		{"no cross-case coercion int/float", Int(1), Float(1.0), false},
		{"no cross-case coercion bool/int", Bool(true), Int(1), false},
		{"nan equals nan bitwise", Float(math.NaN()), Float(math.NaN()), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("%v.Equal(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestValue_Accessors(t *testing.T) {
	if v := Bool(true); v.Kind() != KindBool || !v.Bool() {
		t.Errorf("Bool accessor mismatch: %v", v)
	}
	if v := Int(-12); v.Kind() != KindInt || v.Int() != -12 {
		t.Errorf("Int accessor mismatch: %v", v)
	}
	if v := Float(0.5); v.Kind() != KindFloat || v.Float() != 0.5 {
		t.Errorf("Float accessor mismatch: %v", v)
	}
}

func TestValue_Interface(t *testing.T) {
	if got := Bool(true).Interface(); got != true {
		t.Errorf("Interface() = %v, want true", got)
	}
	if got := Int(3).Interface(); got != int64(3) {
		t.Errorf("Interface() = %v, want int64(3)", got)
	}
	if got := Float(2.5).Interface(); got != 2.5 {
		t.Errorf("Interface() = %v, want 2.5", got)
	}
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindBool, "bool"},
		{KindInt, "int"},
		{KindFloat, "float"},
		{Kind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
	if Kind(99).IsValid() {
		t.Error("Kind(99).IsValid() should be false")
	}
	if !KindFloat.IsValid() {
		t.Error("KindFloat.IsValid() should be true")
	}
}
