package planner

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zero-day-ai/goap/fact"
	"github.com/zero-day-ai/goap/plan"
	"github.com/zero-day-ai/goap/state"
	"github.com/zero-day-ai/goap/step"
	"github.com/zero-day-ai/goap/telemetry"
)

// Planner searches for step sequences that transform an initial state
// into one satisfying a goal. A Planner is safe for concurrent use:
// all per-call state is local, and the registry and factories it holds
// are themselves concurrent-safe.
type Planner struct {
	reg       *fact.Registry
	factories *step.FactoryRegistry
	cfg       Config
	hints     []resolvedHint
	logger    *slog.Logger
	tracer    trace.Tracer
	metrics   *telemetry.PlannerMetrics
}

// Option configures a Planner.
type Option func(*Planner)

// WithLogger sets a structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Planner) {
		p.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer for per-call planning spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(p *Planner) {
		p.tracer = tracer
	}
}

// WithMetrics sets the planner instruments.
func WithMetrics(m *telemetry.PlannerMetrics) Option {
	return func(p *Planner) {
		p.metrics = m
	}
}

// New creates a planner over the given registry and step factories.
// Chain-hint fact names in the config are resolved to ids here, so the
// hint vocabulary is interned up front.
func New(reg *fact.Registry, factories *step.FactoryRegistry, cfg Config, opts ...Option) (*Planner, error) {
	if reg == nil {
		return nil, fmt.Errorf("fact registry is required")
	}
	if factories == nil {
		return nil, fmt.Errorf("factory registry is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid planner config: %w", err)
	}

	p := &Planner{
		reg:       reg,
		factories: factories,
		cfg:       cfg,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	if p.tracer == nil {
		p.tracer = telemetry.NoopTracer()
	}
	if p.metrics == nil {
		p.metrics = telemetry.NoopPlannerMetrics()
	}

	for _, h := range cfg.ChainHints {
		p.hints = append(p.hints, resolvedHint{
			goal:   reg.GetID(h.Goal),
			prereq: reg.GetID(h.Prerequisite),
			bonus:  h.Bonus,
		})
	}
	return p, nil
}

// planRequest carries per-call options.
type planRequest struct {
	implicit *state.State
}

// PlanOption configures a single planning call.
type PlanOption func(*planRequest)

// WithImplicitGoal supplies a secondary goal state whose facts
// contribute to the heuristic at reduced weight. Facts overlapping the
// explicit goal take the stricter numeric target.
func WithImplicitGoal(implicit *state.State) PlanOption {
	return func(r *planRequest) {
		r.implicit = implicit
	}
}

// Plan runs the serial forward search. It returns a nil plan with a nil
// error when the search exhausts without reaching the goal: "no plan"
// is an expected, first-class outcome callers must check for. A non-nil
// error is only returned for cancellation or misuse.
func (p *Planner) Plan(ctx context.Context, initial, goal *state.State, opts ...PlanOption) (*plan.Plan, error) {
	req := &planRequest{}
	for _, opt := range opts {
		opt(req)
	}

	ctx, span := p.tracer.Start(ctx, "goap.plan",
		trace.WithAttributes(attribute.String("goap.mode", "serial")))
	defer span.End()
	start := time.Now()

	candidates := p.generateCandidates(ctx, initial)
	span.SetAttributes(attribute.Int("goap.candidate_steps", len(candidates)))

	ss := &searchSpace{}
	ss.add(node{
		st:     initial.Clone(),
		parent: -1,
		f:      estimate(initial, goal, req.implicit, p.hints),
	})

	visited := make(map[uint64]struct{})
	var expanded, pruned int64

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		idx, ok := ss.next()
		if !ok {
			break
		}
		n := ss.arena[idx]

		// First discovery wins. Only guaranteed optimal when the
		// heuristic never overestimates, which chain hints do not.
		h := n.st.Hash()
		if _, seen := visited[h]; seen {
			continue
		}
		visited[h] = struct{}{}

		if n.st.Satisfies(goal) {
			steps := ss.materialize(idx)
			p.recordOutcome(ctx, span, start, expanded, pruned, len(steps), true)
			return plan.New(steps, initial.Clone(),
				plan.WithCost(n.g), plan.WithLogger(p.logger)), nil
		}

		if int(n.depth) >= p.cfg.MaxDepth {
			continue
		}

		expanded++
		for _, cand := range candidates {
			if !cand.CanRun(n.st) {
				continue
			}
			cost := cand.Cost(n.st)
			if math.IsInf(cost, 1) {
				continue
			}
			succ := n.st.Clone()
			cand.Apply(succ)
			g := n.g + cost
			ss.add(node{
				st:     succ,
				step:   cand,
				parent: idx,
				depth:  n.depth + 1,
				g:      g,
				f:      g + estimate(succ, goal, req.implicit, p.hints),
			})
			pruned += int64(ss.pruneIfOver(p.cfg.MaxOpenSet))
		}
	}

	p.recordOutcome(ctx, span, start, expanded, pruned, 0, false)
	return nil, nil
}

// generateCandidates runs every factory against the initial state once.
// A factory that errors or panics is logged and skipped; one faulty
// factory must not abort planning.
func (p *Planner) generateCandidates(ctx context.Context, initial *state.State) []*step.Step {
	var candidates []*step.Step
	for _, f := range p.factories.All() {
		steps, err := createStepsSafe(ctx, f, initial)
		if err != nil {
			p.logger.Warn("step factory failed, skipping its contribution",
				"factory", f.Name(), "error", err)
			continue
		}
		candidates = append(candidates, steps...)
	}
	return candidates
}

// createStepsSafe converts a factory panic into an error so a single
// faulty factory cannot take down the planning call.
func createStepsSafe(ctx context.Context, f step.Factory, initial *state.State) (steps []*step.Step, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("factory panicked: %v", r)
		}
	}()
	return f.CreateSteps(ctx, initial)
}

// recordOutcome finalizes the span and instruments for one call.
func (p *Planner) recordOutcome(ctx context.Context, span trace.Span, start time.Time, expanded, pruned int64, steps int, found bool) {
	elapsed := time.Since(start)
	span.SetAttributes(
		attribute.Int64("goap.nodes_expanded", expanded),
		attribute.Int64("goap.nodes_pruned", pruned),
		attribute.Bool("goap.plan_found", found),
		attribute.Int("goap.plan_steps", steps),
	)
	p.metrics.NodesExpanded.Add(ctx, expanded)
	p.metrics.NodesPruned.Add(ctx, pruned)
	if found {
		p.metrics.PlansFound.Add(ctx, 1)
	} else {
		p.metrics.PlansNotFound.Add(ctx, 1)
	}
	p.metrics.PlanDuration.Record(ctx, elapsed.Seconds())

	p.logger.Debug("planning finished",
		"found", found,
		"steps", steps,
		"nodes_expanded", expanded,
		"nodes_pruned", pruned,
		"elapsed", elapsed)
}
