package planner

import (
	"math"

	"github.com/zero-day-ai/goap/fact"
	"github.com/zero-day-ai/goap/state"
)

// implicitGoalWeight scales the contribution of implicit-goal facts
// that are not already explicit goal facts.
const implicitGoalWeight = 0.75

// resolvedHint is a ChainHint with fact names resolved to ids.
type resolvedHint struct {
	goal   int
	prereq int
	bonus  float64
}

// estimate computes the heuristic distance from cur to goal, optionally
// blending in an implicit secondary goal and configured chain bonuses.
// It is not guaranteed admissible: chain hints may overestimate.
func estimate(cur, goal, implicit *state.State, hints []resolvedHint) float64 {
	total := 0.0

	// Explicit goal facts at full weight. Where an implicit requirement
	// overlaps on the same integer fact, the stricter (larger) target
	// wins; for other types the explicit value is used as-is.
	goal.Each(func(id int, want fact.Value) bool {
		if implicit != nil && want.Kind() == fact.KindInt {
			if iv, ok := implicit.Get(id); ok && iv.Kind() == fact.KindInt && iv.Int() > want.Int() {
				want = iv
			}
		}
		total += factDistance(cur, id, want)
		return true
	})

	// Implicit-only facts at reduced weight.
	if implicit != nil {
		implicit.Each(func(id int, want fact.Value) bool {
			if goal.Has(id) {
				return true
			}
			total += implicitGoalWeight * factDistance(cur, id, want)
			return true
		})
	}

	// Resource-chain bonuses: a requested goal fact whose prerequisite
	// resource is absent charges the estimated gathering-chain cost.
	for _, h := range hints {
		if goal.Has(h.goal) && prereqAbsent(cur, h.prereq) {
			total += h.bonus
		}
	}

	return total
}

// factDistance is the per-fact distance from cur to a target value.
// Integer facts measure the remaining shortfall; booleans and floats
// are 0/1 on match/mismatch. A fact absent from cur charges the full
// target magnitude for numeric types, or 1 otherwise.
func factDistance(cur *state.State, id int, want fact.Value) float64 {
	have, ok := cur.Get(id)
	if !ok {
		switch want.Kind() {
		case fact.KindInt:
			return math.Abs(float64(want.Int()))
		case fact.KindFloat:
			return math.Abs(want.Float())
		default:
			return 1
		}
	}

	if have.Kind() == fact.KindInt && want.Kind() == fact.KindInt {
		return math.Max(0, float64(want.Int()-have.Int()))
	}
	if have.Equal(want) {
		return 0
	}
	return 1
}

// prereqAbsent reports whether the prerequisite resource fact is
// missing from the state, or present as a false boolean.
func prereqAbsent(cur *state.State, id int) bool {
	v, ok := cur.Get(id)
	if !ok {
		return true
	}
	return v.Kind() == fact.KindBool && !v.Bool()
}
