package planner

import (
	"context"
	"fmt"
	"testing"

	"github.com/zero-day-ai/goap/fact"
	"github.com/zero-day-ai/goap/state"
	"github.com/zero-day-ai/goap/step"
)

func TestPlanConcurrent_WoodcuttingScenario(t *testing.T) {
	reg := fact.NewRegistry()
	factories := step.NewFactoryRegistry(woodcuttingFactory(t, reg, 1.5, 2.5))
	p := newTestPlanner(t, reg, factories, DefaultConfig())

	initial := state.New(reg)
	initial.SetName("WorldHasTree", fact.Bool(true))
	initial.SetName("WorldTreeCount", fact.Int(5))

	goal := state.New(reg)
	goal.SetName("WorldHasStick", fact.Bool(true))

	pl, err := p.PlanConcurrent(context.Background(), initial, goal)
	if err != nil {
		t.Fatalf("PlanConcurrent() error = %v", err)
	}
	if pl == nil {
		t.Fatal("PlanConcurrent() found no plan")
	}

	final := pl.State().Clone()
	for _, s := range pl.Steps() {
		s.Apply(final)
	}
	if !final.Satisfies(goal) {
		t.Error("resulting state does not satisfy the goal")
	}
}

func TestPlanConcurrent_MatchesSerialStepCount(t *testing.T) {
	reg := fact.NewRegistry()
	factories := step.NewFactoryRegistry(woodcuttingFactory(t, reg, 1, 1))
	p := newTestPlanner(t, reg, factories, DefaultConfig())

	initial := state.New(reg)
	initial.SetName("WorldHasTree", fact.Bool(true))
	goal := state.New(reg)
	goal.SetName("WorldHasStick", fact.Bool(true))

	serial, err := p.Plan(context.Background(), initial, goal)
	if err != nil || serial == nil {
		t.Fatalf("serial plan: %v, %v", serial, err)
	}

	// With deterministic costs the concurrent result never needs more
	// steps than the serial one.
	for i := 0; i < 10; i++ {
		concurrent, err := p.PlanConcurrent(context.Background(), initial, goal)
		if err != nil || concurrent == nil {
			t.Fatalf("concurrent plan (run %d): %v, %v", i, concurrent, err)
		}
		if len(concurrent.Steps()) > len(serial.Steps()) {
			t.Fatalf("concurrent plan has %d steps, serial found %d",
				len(concurrent.Steps()), len(serial.Steps()))
		}
	}
}

func TestPlanConcurrent_NoPlan(t *testing.T) {
	reg := fact.NewRegistry()
	factories := step.NewFactoryRegistry(woodcuttingFactory(t, reg, 1, 1))
	p := newTestPlanner(t, reg, factories, DefaultConfig())

	initial := state.New(reg)
	goal := state.New(reg)
	goal.SetName("WorldHasStick", fact.Bool(true))

	pl, err := p.PlanConcurrent(context.Background(), initial, goal)
	if err != nil {
		t.Fatalf("PlanConcurrent() error = %v", err)
	}
	if pl != nil {
		t.Fatal("expected no plan")
	}
}

func TestPlanConcurrent_WideFanout(t *testing.T) {
	reg := fact.NewRegistry()
	goalFact := reg.GetID("GoalReached")

	// Many parallel steps, exactly one of which reaches the goal, with
	// a legal-step count above the fanout threshold so successor
	// generation itself parallelizes.
	const width = 40
	factories := step.NewFactoryRegistry(step.FactoryFunc{
		FactoryName: "wide",
		Fn: func(ctx context.Context, initial *state.State) ([]*step.Step, error) {
			steps := make([]*step.Step, 0, width+1)
			for i := 0; i < width; i++ {
				s, err := step.NewBuilder(fmt.Sprintf("Filler%d", i)).
					Effect(reg.GetID(fmt.Sprintf("Filler%d", i)), fact.Bool(true)).
					Cost(5).
					Build(reg)
				if err != nil {
					return nil, err
				}
				steps = append(steps, s)
			}
			win, err := step.NewBuilder("Win").
				Effect(goalFact, fact.Bool(true)).
				Cost(1).
				Build(reg)
			if err != nil {
				return nil, err
			}
			return append(steps, win), nil
		},
	})

	cfg := DefaultConfig()
	cfg.FanoutThreshold = 8
	p := newTestPlanner(t, reg, factories, cfg)

	goal := state.New(reg)
	goal.Set(goalFact, fact.Bool(true))

	pl, err := p.PlanConcurrent(context.Background(), state.New(reg), goal)
	if err != nil {
		t.Fatalf("PlanConcurrent() error = %v", err)
	}
	if pl == nil {
		t.Fatal("expected a plan")
	}
	if len(pl.Steps()) != 1 || pl.Steps()[0].Name() != "Win" {
		names := make([]string, len(pl.Steps()))
		for i, s := range pl.Steps() {
			names[i] = s.Name()
		}
		t.Fatalf("plan = %v, want [Win]", names)
	}
}

func TestPlanConcurrent_ContextCancellation(t *testing.T) {
	reg := fact.NewRegistry()
	factories := step.NewFactoryRegistry(woodcuttingFactory(t, reg, 1, 1))
	p := newTestPlanner(t, reg, factories, DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	initial := state.New(reg)
	initial.SetName("WorldHasTree", fact.Bool(true))
	goal := state.New(reg)
	goal.SetName("WorldHasStick", fact.Bool(true))

	if _, err := p.PlanConcurrent(ctx, initial, goal); err == nil {
		t.Error("cancelled context should surface as an error")
	}
}
