package planner

import (
	"container/heap"
	"sort"

	"github.com/zero-day-ai/goap/state"
	"github.com/zero-day-ai/goap/step"
)

// node is a single search node. Path reconstruction walks parent
// indices through the arena rather than chasing pointers.
type node struct {
	st     *state.State
	step   *step.Step // step taken to reach this node; nil for the root
	parent int32      // arena index of the parent; -1 for the root
	depth  int32
	g      float64 // accumulated cost from the root
	f      float64 // g + heuristic estimate to the goal
}

// searchSpace holds the node arena and the open set, a min-heap of
// arena indices keyed by f. It is not internally synchronized; the
// concurrent planner guards it with a single mutex.
type searchSpace struct {
	arena []node
	open  []int32
}

func (s *searchSpace) Len() int { return len(s.open) }

func (s *searchSpace) Less(i, j int) bool {
	return s.arena[s.open[i]].f < s.arena[s.open[j]].f
}

func (s *searchSpace) Swap(i, j int) {
	s.open[i], s.open[j] = s.open[j], s.open[i]
}

func (s *searchSpace) Push(x any) {
	s.open = append(s.open, x.(int32))
}

func (s *searchSpace) Pop() any {
	last := s.open[len(s.open)-1]
	s.open = s.open[:len(s.open)-1]
	return last
}

// add appends a node to the arena and pushes it onto the open set.
func (s *searchSpace) add(n node) int32 {
	idx := int32(len(s.arena))
	s.arena = append(s.arena, n)
	heap.Push(s, idx)
	return idx
}

// next pops the lowest-f node index, or false when the open set is
// empty.
func (s *searchSpace) next() (int32, bool) {
	if len(s.open) == 0 {
		return 0, false
	}
	return heap.Pop(s).(int32), true
}

// pruneIfOver keeps only the best half of the open set (by f) when it
// exceeds max, returning the number of entries discarded. The arena is
// untouched; pruned nodes simply become unreachable from the open set.
func (s *searchSpace) pruneIfOver(limit int) int {
	if len(s.open) <= limit {
		return 0
	}
	sort.Slice(s.open, func(i, j int) bool {
		return s.arena[s.open[i]].f < s.arena[s.open[j]].f
	})
	keep := len(s.open) / 2
	dropped := len(s.open) - keep
	s.open = s.open[:keep]
	heap.Init(s)
	return dropped
}

// materialize walks parent indices from the goal node to the root and
// returns the step path in execution order.
func (s *searchSpace) materialize(goalIdx int32) []*step.Step {
	var steps []*step.Step
	for idx := goalIdx; idx >= 0; idx = s.arena[idx].parent {
		if s.arena[idx].step != nil {
			steps = append(steps, s.arena[idx].step)
		}
	}
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return steps
}
