package goap

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/zero-day-ai/goap/fact"
	"github.com/zero-day-ai/goap/plan"
	"github.com/zero-day-ai/goap/planner"
	"github.com/zero-day-ai/goap/state"
	"github.com/zero-day-ai/goap/step"
	"github.com/zero-day-ai/goap/telemetry"
)

// Engine bundles the shared wiring a planning application needs: one
// fact registry, one factory registry, and a configured planner.
//
// Thread-safety: all methods are safe for concurrent use. Factories
// registered after construction are visible to subsequent Plan calls.
type Engine struct {
	logger    *slog.Logger
	registry  *fact.Registry
	factories *step.FactoryRegistry
	planner   *planner.Planner
}

// New creates an Engine from the provided options.
//
// Example:
//
//	engine, err := goap.New(
//	    goap.WithLogger(logger),
//	    goap.WithConfigFile("planner.yaml"),
//	    goap.WithFactories(gatherFactory),
//	)
func New(opts ...Option) (*Engine, error) {
	cfg := &engineConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	plannerCfg := planner.DefaultConfig()
	switch {
	case cfg.cfgSet:
		plannerCfg = cfg.cfg
	case cfg.configPath != "":
		loaded, err := planner.LoadConfig(cfg.configPath)
		if err != nil {
			return nil, fmt.Errorf("loading planner config: %w", err)
		}
		plannerCfg = loaded
	}

	registry := fact.NewRegistry()
	factories := step.NewFactoryRegistry(cfg.factories...)

	plannerOpts := []planner.Option{planner.WithLogger(cfg.logger)}
	if cfg.tracer != nil {
		plannerOpts = append(plannerOpts, planner.WithTracer(cfg.tracer))
	}
	if cfg.meter != nil {
		metrics, err := telemetry.NewPlannerMetrics(cfg.meter)
		if err != nil {
			return nil, fmt.Errorf("creating planner metrics: %w", err)
		}
		plannerOpts = append(plannerOpts, planner.WithMetrics(metrics))
	}

	p, err := planner.New(registry, factories, plannerCfg, plannerOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating planner: %w", err)
	}

	return &Engine{
		logger:    cfg.logger,
		registry:  registry,
		factories: factories,
		planner:   p,
	}, nil
}

// Registry returns the engine's shared fact registry. States and
// steps passed to Plan must be built against it.
func (e *Engine) Registry() *fact.Registry {
	return e.registry
}

// RegisterFactory adds a step factory after construction.
func (e *Engine) RegisterFactory(f step.Factory) {
	e.factories.Register(f)
}

// NewState creates an empty state bound to the engine's registry.
func (e *Engine) NewState() *state.State {
	return state.New(e.registry)
}

// Plan searches for a plan reaching goal from initial. It returns
// (nil, nil) when no plan exists within the configured bounds.
func (e *Engine) Plan(ctx context.Context, initial, goal *state.State, opts ...planner.PlanOption) (*plan.Plan, error) {
	return e.planner.Plan(ctx, initial, goal, opts...)
}

// PlanConcurrent is Plan with bounded-beam parallel expansion. The
// result may differ from Plan's, but both honor the configured depth
// and open-set bounds.
func (e *Engine) PlanConcurrent(ctx context.Context, initial, goal *state.State, opts ...planner.PlanOption) (*plan.Plan, error) {
	return e.planner.PlanConcurrent(ctx, initial, goal, opts...)
}
