package vm

import (
	"errors"
	"fmt"
)

// Sentinel errors for run failures. A failed run returns an *Error that
// unwraps to one of these, or to the I/O error that stopped it.
var (
	// ErrInvalidProgram indicates a '[' or ']' without a matching bracket.
	ErrInvalidProgram = errors.New("invalid program")

	// ErrTapeUnderflow indicates a '<' executed with the head on cell 0.
	ErrTapeUnderflow = errors.New("tape head moved left of cell 0")

	// ErrStepLimit indicates the run exceeded Config.MaxSteps.
	ErrStepLimit = errors.New("step limit exceeded")

	// ErrInterpreterUsed indicates Run was called twice on one Interpreter.
	ErrInterpreterUsed = errors.New("interpreter already ran")
)

// Error describes the cause and the machine context of a failed run.
type Error struct {
	Err   error // sentinel above, or the I/O error from the input or output
	PC    int   // program index of the instruction that failed
	Instr byte  // instruction byte at PC
	Head  int   // tape head at the time of failure
}

func (e *Error) Error() string {
	if errors.Is(e.Err, ErrInvalidProgram) {
		return fmt.Sprintf("brainruck: %v: unmatched %q at %d", e.Err, e.Instr, e.PC)
	}
	if errors.Is(e.Err, ErrInterpreterUsed) {
		return "brainruck: " + e.Err.Error()
	}
	return fmt.Sprintf("brainruck: %v at %d (%q)", e.Err, e.PC, e.Instr)
}

// Unwrap returns the underlying cause for use with errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

func (in *Interpreter) newError(err error) error {
	return &Error{
		Err:   err,
		PC:    in.pc,
		Instr: in.instr,
		Head:  in.tape.head,
	}
}
