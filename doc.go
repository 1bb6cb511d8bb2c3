// Package goap provides goal-oriented action planning for autonomous
// agents: a fact-indexed world model, an A* planner that searches over
// declarative steps, and a tick-driven executor for the plans it finds.
//
// The packages compose bottom-up and can be used individually:
//
//   - fact: typed fact values and name-to-id interning
//   - state: sparse world-state snapshots over interned facts
//   - step: planning steps with preconditions, effects, and costs
//   - action: the runtime behavior contract steps bind to
//   - plan: the execution state machine driving actions tick by tick
//   - planner: serial and concurrent forward A* search
//   - eval: CEL expressions as step costs and goal predicates
//   - reserve: resource claims for multi-agent coordination
//   - spatial: world-object queries for action implementations
//
// The Engine in this package bundles the common wiring: a shared fact
// registry, a factory registry, and a configured planner.
//
// Example:
//
//	engine, err := goap.New(
//	    goap.WithLogger(logger),
//	    goap.WithFactories(gatherFactory, craftFactory),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	p, err := engine.Plan(ctx, current, goal)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if p == nil {
//	    return // no plan reaches the goal
//	}
//	for !p.Status().IsTerminal() {
//	    p.Tick(actor, dt, goalReached)
//	}
package goap
