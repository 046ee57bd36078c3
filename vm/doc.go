// Package turingvm implements the bytecode virtual machine for a compiled
// Turing-machine description language.
//
// A separate, out-of-scope compiler lowers a high-level description —
// parameterized states, pattern-matching arms, instruction sequences, and
// final-state transitions — into a linear little-endian byte stream. This
// package interprets that byte stream against an unbounded symbol tape and
// produces a final tape, head position, final state address, and move
// count.
//
// The interpreter is organized as two cooperating dispatch loops: the move
// evaluator picks one arm of the current state by comparing the symbol
// under the tape head against the arm's pattern, and the RHS evaluator runs
// that arm's effects (tape motion, writes, scratch pushes, state
// construction) down to exactly one final transition. See runMove and
// runRHS.
package turingvm
