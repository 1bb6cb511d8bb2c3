// Package eval compiles CEL expressions over fact states into step
// cost functions and state predicates.
//
// Expressions see a single variable, facts, a map from fact name to its
// native value (bool, int, or double). Membership tests gate on fact
// presence:
//
//	env, _ := eval.NewEnv(reg)
//	cost, _ := env.CompileCost(`("AgentEnergy" in facts) ? 10.0 - facts["AgentEnergy"] : 10.0`)
//	goal, _ := env.CompilePredicate(`facts["WorldStickCount"] >= 4`)
//
// Cost expressions must produce a numeric result; a runtime evaluation
// error yields +Inf, which disables the step for that state instead of
// aborting planning. Predicates must produce a boolean; runtime errors
// evaluate to false.
package eval
