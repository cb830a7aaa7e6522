// Package yearzero implements the step-dice evaluation engine.
//
// This package provides the roll mechanics shared by every check:
//
//   - Die sizes (d6 through d12) and the step ladder between them
//   - Pool composition (base dice, ammo dice, an optional hit-location die)
//   - Evaluation, success counting, and hit-location reading
//   - Modifier application (stepping die sizes up or down)
//   - Pushing (re-rolling eligible dice within a push budget)
//
// Rolls are modelled as immutable values: Modify, Eval, and Push return a
// new Roll and leave the receiver untouched, so every stage of a check can
// hold on to the exact roll it observed.
//
// The mechanics are built on top of the generic primitives in
// internal/core/dice. Pool-building policy (which ratings contribute which
// dice) lives in internal/yearzero/check, not here.
package yearzero
