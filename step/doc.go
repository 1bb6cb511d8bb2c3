// Package step provides the declarative planning-time edges the planner
// searches over: preconditions, effects, a cost function, and a factory
// for the runtime action a step realizes at execution time.
//
// Steps are immutable once built. Factories regenerate them fresh for
// every planning call; a step never outlives one search. Build steps
// with the fluent Builder:
//
//	chop, err := step.NewBuilder("ChopTree").
//	    Require(nearTree, fact.Bool(true)).
//	    Require(hasTree, fact.Bool(true)).
//	    Effect(hasStick, fact.Bool(true)).
//	    EffectDerived(stickCount, func(pre *state.State) fact.Value {
//	        n, _ := pre.Get(stickCount)
//	        return fact.Int(n.Int() + 4)
//	    }).
//	    Cost(2).
//	    Action(newChopAction).
//	    Build(reg)
//
// Factory discovery is explicit: register concrete Factory instances on
// a FactoryRegistry at initialization. There is no runtime type
// scanning.
package step
