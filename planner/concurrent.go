package planner

import (
	"context"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zero-day-ai/goap/plan"
	"github.com/zero-day-ai/goap/state"
	"github.com/zero-day-ai/goap/step"
)

// candidate is a dequeued open-set entry handed to a worker. The node
// is copied out under the queue lock so workers never read the arena
// unlocked.
type candidate struct {
	idx int32
	n   node
}

// concurrentSearch is the shared coordination state for one
// PlanConcurrent call.
type concurrentSearch struct {
	// mu guards the open set and node arena. Every dequeue and enqueue
	// is serialized through it.
	mu sync.Mutex
	ss *searchSpace

	// visited deduplicates states across workers. LoadOrStore is the
	// atomic insert-if-absent that guarantees at-most-one expansion per
	// distinct state; it is deliberately not a mutex because it sits on
	// the hottest per-candidate path.
	visited sync.Map

	// found is the cooperative cancellation flag. Workers poll it
	// between expansion units; nothing is forcibly interrupted.
	found atomic.Bool

	// resultMu guards the winning path. Simultaneous goal discoveries
	// keep whichever has fewer steps.
	resultMu    sync.Mutex
	resultSteps []*step.Step
	resultCost  float64
	haveResult  bool

	expanded atomic.Int64
	pruned   atomic.Int64
}

// offerResult stores a goal path, keeping the fewer-step plan when two
// workers discover goals near-simultaneously, and raises the shared
// cancellation flag.
func (cs *concurrentSearch) offerResult(steps []*step.Step, cost float64) {
	cs.resultMu.Lock()
	if !cs.haveResult || len(steps) < len(cs.resultSteps) {
		cs.resultSteps = steps
		cs.resultCost = cost
		cs.haveResult = true
	}
	cs.resultMu.Unlock()
	cs.found.Store(true)
}

// PlanConcurrent runs the bounded-beam concurrent search. Each round
// dequeues up to BeamWidth best candidates under the queue lock and
// expands them in parallel. Results and failure modes match Plan: a nil
// plan with nil error means no plan was found.
func (p *Planner) PlanConcurrent(ctx context.Context, initial, goal *state.State, opts ...PlanOption) (*plan.Plan, error) {
	req := &planRequest{}
	for _, opt := range opts {
		opt(req)
	}

	ctx, span := p.tracer.Start(ctx, "goap.plan",
		trace.WithAttributes(attribute.String("goap.mode", "concurrent")))
	defer span.End()
	start := time.Now()

	candidates := p.generateCandidates(ctx, initial)
	span.SetAttributes(attribute.Int("goap.candidate_steps", len(candidates)))

	cs := &concurrentSearch{ss: &searchSpace{}}
	cs.ss.add(node{
		st:     initial.Clone(),
		parent: -1,
		f:      estimate(initial, goal, req.implicit, p.hints),
	})

	for !cs.found.Load() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		batch := cs.dequeueBatch(p.cfg.BeamWidth)
		if len(batch) == 0 {
			break
		}

		var wg sync.WaitGroup
		for _, c := range batch {
			wg.Add(1)
			go func(c candidate) {
				defer wg.Done()
				p.expandCandidate(cs, c, goal, req.implicit, candidates)
			}(c)
		}
		wg.Wait()
	}

	if !cs.haveResult {
		p.recordOutcome(ctx, span, start, cs.expanded.Load(), cs.pruned.Load(), 0, false)
		return nil, nil
	}

	p.recordOutcome(ctx, span, start, cs.expanded.Load(), cs.pruned.Load(), len(cs.resultSteps), true)
	return plan.New(cs.resultSteps, initial.Clone(),
		plan.WithCost(cs.resultCost), plan.WithLogger(p.logger)), nil
}

// dequeueBatch pops up to width best candidates under the queue lock.
func (cs *concurrentSearch) dequeueBatch(width int) []candidate {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	batch := make([]candidate, 0, width)
	for len(batch) < width {
		idx, ok := cs.ss.next()
		if !ok {
			break
		}
		batch = append(batch, candidate{idx: idx, n: cs.ss.arena[idx]})
	}
	return batch
}

// expandCandidate processes one dequeued candidate: claim it in the
// visited set, test the goal, then generate and merge successors.
func (p *Planner) expandCandidate(cs *concurrentSearch, c candidate, goal, implicit *state.State, candidates []*step.Step) {
	// Checkpoint before starting new work.
	if cs.found.Load() {
		return
	}

	// Insert-if-absent claim: losing means another worker already owns
	// this state, so abandon it.
	if _, loaded := cs.visited.LoadOrStore(c.n.st.Hash(), struct{}{}); loaded {
		return
	}

	if c.n.st.Satisfies(goal) {
		cs.mu.Lock()
		steps := cs.ss.materialize(c.idx)
		cs.mu.Unlock()
		cs.offerResult(steps, c.n.g)
		return
	}

	if int(c.n.depth) >= p.cfg.MaxDepth {
		return
	}

	runnable := make([]*step.Step, 0, len(candidates))
	for _, cand := range candidates {
		if cand.CanRun(c.n.st) {
			runnable = append(runnable, cand)
		}
	}

	cs.expanded.Add(1)

	var succ []node
	if len(runnable) > p.cfg.FanoutThreshold {
		succ = p.fanout(cs, c, runnable, goal, implicit)
	} else {
		for _, cand := range runnable {
			if cs.found.Load() {
				break
			}
			if n, ok := p.successor(c, cand, goal, implicit); ok {
				succ = append(succ, n)
			}
		}
	}

	if len(succ) == 0 {
		return
	}

	cs.mu.Lock()
	for i := range succ {
		succ[i].parent = c.idx
		cs.ss.add(succ[i])
	}
	cs.pruned.Add(int64(cs.ss.pruneIfOver(p.cfg.MaxOpenSet)))
	cs.mu.Unlock()
}

// fanout parallelizes successor generation for a wide candidate into a
// locked bag, merged by the caller under the queue lock.
func (p *Planner) fanout(cs *concurrentSearch, c candidate, runnable []*step.Step, goal, implicit *state.State) []node {
	workers := p.cfg.BeamWidth
	if workers > len(runnable) {
		workers = len(runnable)
	}

	var bagMu sync.Mutex
	var bag []node
	var wg sync.WaitGroup

	chunk := (len(runnable) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > len(runnable) {
			hi = len(runnable)
		}
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(part []*step.Step) {
			defer wg.Done()
			local := make([]node, 0, len(part))
			for _, cand := range part {
				// Checkpoint between fine-grained expansion units.
				if cs.found.Load() {
					break
				}
				if n, ok := p.successor(c, cand, goal, implicit); ok {
					local = append(local, n)
				}
			}
			bagMu.Lock()
			bag = append(bag, local...)
			bagMu.Unlock()
		}(runnable[lo:hi])
	}
	wg.Wait()
	return bag
}

// successor builds the node reached by taking cand from c. The parent
// index is filled in by the caller under the queue lock.
func (p *Planner) successor(c candidate, cand *step.Step, goal, implicit *state.State) (node, bool) {
	cost := cand.Cost(c.n.st)
	if math.IsInf(cost, 1) {
		return node{}, false
	}
	st := c.n.st.Clone()
	cand.Apply(st)
	g := c.n.g + cost
	return node{
		st:    st,
		step:  cand,
		depth: c.n.depth + 1,
		g:     g,
		f:     g + estimate(st, goal, implicit, p.hints),
	}, true
}
