// Package vm implements the brainruck tape machine.
//
// This package contains:
//   - Tape: a left-bounded, right-growable array of byte cells
//   - Interpreter: the instruction dispatch loop and lazy bracket matching
//   - Validate: an optional upfront bracket well-formedness pass
//   - Snapshot: a copy of machine state taken after a run
//
// Programs are raw byte slices. The eight instruction bytes are
// '>', '<', '+', '-', '.', ',', '[' and ']'; every other byte is a no-op.
package vm
