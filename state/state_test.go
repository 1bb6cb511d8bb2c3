package state

import (
	"testing"

	"github.com/zero-day-ai/goap/fact"
)

func TestState_SetGet(t *testing.T) {
	reg := fact.NewRegistry()
	s := New(reg)

	id := s.SetName("WorldHasTree", fact.Bool(true))
	if !s.Has(id) {
		t.Fatal("presence bit not set after Set")
	}
	if v, ok := s.Get(id); !ok || !v.Equal(fact.Bool(true)) {
		t.Errorf("Get(%d) = %v, %v", id, v, ok)
	}
	if _, ok := s.GetName("NeverSet"); ok {
		t.Error("GetName on an unset fact should report absent")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestState_BitmapGrowth(t *testing.T) {
	reg := fact.NewRegistry()
	s := New(reg)

	// Register far more facts than the initial bitmap covers.
	var last int
	for i := 0; i < 200; i++ {
		last = s.SetName(fakeName(i), fact.Int(int64(i)))
	}
	if !s.Has(last) {
		t.Fatal("presence bit missing after bitmap growth")
	}
	if s.Len() != 200 {
		t.Errorf("Len() = %d, want 200", s.Len())
	}
}

func fakeName(i int) string {
	return "Fact" + string(rune('A'+i%26)) + string(rune('0'+i/26))
}

func TestState_Clone(t *testing.T) {
	reg := fact.NewRegistry()
	s := New(reg)
	s.SetName("WorldHasTree", fact.Bool(true))
	s.SetName("WorldTreeCount", fact.Int(5))

	c := s.Clone()
	if !c.Satisfies(s) || !s.Satisfies(c) {
		t.Fatal("clone does not satisfy its source")
	}

	// Mutating the clone must not alias back into the source.
	c.SetName("WorldTreeCount", fact.Int(99))
	if v, _ := s.GetName("WorldTreeCount"); !v.Equal(fact.Int(5)) {
		t.Errorf("source mutated through clone: %v", v)
	}
	c.SetName("NewFact", fact.Bool(true))
	if _, ok := s.GetName("NewFact"); ok {
		t.Error("presence leaked from clone into source")
	}
}

func TestState_Satisfies(t *testing.T) {
	reg := fact.NewRegistry()

	build := func(facts map[string]fact.Value) *State {
		s := New(reg)
		for name, v := range facts {
			s.SetName(name, v)
		}
		return s
	}

	tests := []struct {
		name string
		have map[string]fact.Value
		goal map[string]fact.Value
		want bool
	}{
		{
			name: "exact bool match",
			have: map[string]fact.Value{"NearTree": fact.Bool(true)},
			goal: map[string]fact.Value{"NearTree": fact.Bool(true)},
			want: true,
		},
		{
			name: "bool mismatch",
			have: map[string]fact.Value{"NearTree": fact.Bool(false)},
			goal: map[string]fact.Value{"NearTree": fact.Bool(true)},
			want: false,
		},
		{
			name: "missing fact",
			have: map[string]fact.Value{},
			goal: map[string]fact.Value{"NearTree": fact.Bool(true)},
			want: false,
		},
		{
			name: "int at threshold",
			have: map[string]fact.Value{"StickCount": fact.Int(4)},
			goal: map[string]fact.Value{"StickCount": fact.Int(4)},
			want: true,
		},
		{
			name: "int above threshold",
			have: map[string]fact.Value{"StickCount": fact.Int(10)},
			goal: map[string]fact.Value{"StickCount": fact.Int(4)},
			want: true,
		},
		{
			name: "int below threshold",
			have: map[string]fact.Value{"StickCount": fact.Int(3)},
			goal: map[string]fact.Value{"StickCount": fact.Int(4)},
			want: false,
		},
		{
			name: "float requires exact equality",
			have: map[string]fact.Value{"Fuel": fact.Float(5)},
			goal: map[string]fact.Value{"Fuel": fact.Float(4)},
			want: false,
		},
		{
			name: "int never satisfies float goal",
			have: map[string]fact.Value{"Fuel": fact.Int(4)},
			goal: map[string]fact.Value{"Fuel": fact.Float(4)},
			want: false,
		},
		{
			name: "extra facts are ignored",
			have: map[string]fact.Value{"NearTree": fact.Bool(true), "Extra": fact.Int(1)},
			goal: map[string]fact.Value{"NearTree": fact.Bool(true)},
			want: true,
		},
		{
			name: "empty goal always satisfied",
			have: map[string]fact.Value{},
			goal: map[string]fact.Value{},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := build(tt.have).Satisfies(build(tt.goal)); got != tt.want {
				t.Errorf("Satisfies() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestState_Hash(t *testing.T) {
	reg := fact.NewRegistry()

	a := New(reg)
	a.SetName("X", fact.Int(1))
	a.SetName("Y", fact.Bool(true))
	a.SetName("Z", fact.Float(2.5))

	// Same fact set, different insertion order.
	b := New(reg)
	b.SetName("Z", fact.Float(2.5))
	b.SetName("X", fact.Int(1))
	b.SetName("Y", fact.Bool(true))

	if a.Hash() != b.Hash() {
		t.Error("hash differs across insertion order")
	}

	// Hash must distinguish type, not just payload bits.
	c := New(reg)
	c.SetName("X", fact.Int(1))
	c.SetName("Y", fact.Bool(true))
	c.SetName("Z", fact.Int(int64(2)))
	if a.Hash() == c.Hash() {
		t.Error("hash collision across differing fact sets")
	}

	// Mutation invalidates the cached hash.
	before := a.Hash()
	a.SetName("X", fact.Int(2))
	if a.Hash() == before {
		t.Error("hash unchanged after mutation")
	}

	// Stable between mutations.
	if a.Hash() != a.Hash() {
		t.Error("hash unstable without mutation")
	}

	// Clone has identical hash.
	if a.Clone().Hash() != a.Hash() {
		t.Error("clone hash differs from source")
	}
}
