package eval

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/goap/fact"
	"github.com/zero-day-ai/goap/state"
)

func newTestEnv(t *testing.T) (*Env, *fact.Registry) {
	t.Helper()
	reg := fact.NewRegistry()
	env, err := NewEnv(reg)
	require.NoError(t, err)
	return env, reg
}

func TestCompileCost(t *testing.T) {
	env, reg := newTestEnv(t)

	cost, err := env.CompileCost(`("AgentEnergy" in facts) ? 10.0 - facts["AgentEnergy"] : 10.0`)
	require.NoError(t, err)

	s := state.New(reg)
	assert.Equal(t, 10.0, cost(s), "missing fact takes the fallback branch")

	s.SetName("AgentEnergy", fact.Float(3))
	assert.Equal(t, 7.0, cost(s))
}

func TestCompileCost_IntResult(t *testing.T) {
	env, reg := newTestEnv(t)

	cost, err := env.CompileCost(`facts["WorldTreeCount"] * 2`)
	require.NoError(t, err)

	s := state.New(reg)
	s.SetName("WorldTreeCount", fact.Int(3))
	assert.Equal(t, 6.0, cost(s))

	// Missing fact: the index errors at runtime, which must disable the
	// step rather than abort planning.
	assert.True(t, math.IsInf(cost(state.New(reg)), 1))
}

func TestCompileCost_CompileError(t *testing.T) {
	env, _ := newTestEnv(t)
	_, err := env.CompileCost(`facts[`)
	assert.Error(t, err)
}

func TestCompileCost_NonNumericResult(t *testing.T) {
	env, reg := newTestEnv(t)
	cost, err := env.CompileCost(`"not a number"`)
	require.NoError(t, err)
	assert.True(t, math.IsInf(cost(state.New(reg)), 1))
}

func TestCompilePredicate(t *testing.T) {
	env, reg := newTestEnv(t)

	pred, err := env.CompilePredicate(`("WorldStickCount" in facts) && facts["WorldStickCount"] >= 4`)
	require.NoError(t, err)

	s := state.New(reg)
	assert.False(t, pred(s))

	s.SetName("WorldStickCount", fact.Int(3))
	assert.False(t, pred(s))

	s.SetName("WorldStickCount", fact.Int(4))
	assert.True(t, pred(s))
}

func TestCompilePredicate_RuntimeErrorIsFalse(t *testing.T) {
	env, reg := newTestEnv(t)

	pred, err := env.CompilePredicate(`facts["Missing"] == true`)
	require.NoError(t, err)
	assert.False(t, pred(state.New(reg)))
}

func TestNewEnv_RequiresRegistry(t *testing.T) {
	_, err := NewEnv(nil)
	assert.Error(t, err)
}
