// Package check implements the task-resolution policy layer.
//
// This is where the game-rules arithmetic lives: translating attribute and
// skill ratings into a dice-pool composition, merging built-in defaults,
// caller parameters, and interactively chosen overrides under one precedence,
// applying pool-wide modifiers, and orchestrating the push workflow on an
// already-evaluated roll.
//
// The package owns no I/O. Interactive dialogs, publication of results, and
// actor data are collaborator interfaces supplied to the Resolver; the dice
// mechanics themselves belong to internal/yearzero. A cancelled dialog is a
// first-class "no result" outcome (nil roll, nil error), never an error.
package check
