package eval

import (
	"fmt"
	"math"

	"github.com/google/cel-go/cel"

	"github.com/zero-day-ai/goap/fact"
	"github.com/zero-day-ai/goap/state"
	"github.com/zero-day-ai/goap/step"
)

// factsVar is the CEL variable holding the fact map.
const factsVar = "facts"

// Env compiles CEL expressions against a fact registry. An Env is safe
// for concurrent use; compiled programs are immutable and reusable
// across planning calls.
type Env struct {
	reg *fact.Registry
	env *cel.Env
}

// NewEnv creates a CEL environment exposing the fact set as a
// map(string, dyn) variable named facts.
func NewEnv(reg *fact.Registry) (*Env, error) {
	if reg == nil {
		return nil, fmt.Errorf("fact registry is required")
	}
	env, err := cel.NewEnv(
		cel.Variable(factsVar, cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		return nil, fmt.Errorf("creating CEL environment: %w", err)
	}
	return &Env{reg: reg, env: env}, nil
}

// CompileCost compiles an expression into a step cost function. The
// expression must produce an int or double. Runtime evaluation errors
// and non-numeric results yield +Inf, disabling the step for that state
// rather than aborting planning.
func (e *Env) CompileCost(src string) (step.CostFunc, error) {
	prg, err := e.compile(src)
	if err != nil {
		return nil, err
	}

	return func(s *state.State) float64 {
		out, _, err := prg.Eval(map[string]any{factsVar: e.factMap(s)})
		if err != nil {
			return math.Inf(1)
		}
		switch v := out.Value().(type) {
		case int64:
			return float64(v)
		case uint64:
			return float64(v)
		case float64:
			return v
		default:
			return math.Inf(1)
		}
	}, nil
}

// CompilePredicate compiles an expression into a boolean state
// predicate, usable for plan goal checks and factory gating. Runtime
// evaluation errors report false.
func (e *Env) CompilePredicate(src string) (func(*state.State) bool, error) {
	prg, err := e.compile(src)
	if err != nil {
		return nil, err
	}

	return func(s *state.State) bool {
		out, _, err := prg.Eval(map[string]any{factsVar: e.factMap(s)})
		if err != nil {
			return false
		}
		b, ok := out.Value().(bool)
		return ok && b
	}, nil
}

// compile parses, checks, and plans a CEL program.
func (e *Env) compile(src string) (cel.Program, error) {
	ast, iss := e.env.Compile(src)
	if iss.Err() != nil {
		return nil, fmt.Errorf("compiling expression: %w", iss.Err())
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("planning expression: %w", err)
	}
	return prg, nil
}

// factMap projects a state into the CEL activation: fact name to native
// bool/int64/float64 value, present facts only.
func (e *Env) factMap(s *state.State) map[string]any {
	m := make(map[string]any, s.Len())
	s.Each(func(id int, v fact.Value) bool {
		m[e.reg.GetName(id)] = v.Interface()
		return true
	})
	return m
}
