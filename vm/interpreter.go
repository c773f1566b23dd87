package vm

import (
	"io"

	"github.com/tliron/commonlog"
)

// Interpreter executes one program against a fresh tape. It is not
// reusable: create a new Interpreter for every run.
type Interpreter struct {
	in   io.Reader
	out  io.Writer
	tape *Tape
	cfg  Config
	log  commonlog.Logger

	pc    int  // program cursor
	instr byte // byte at pc during dispatch
	steps uint64
	ran   bool
}

// NewInterpreter creates an interpreter reading ',' input from in and
// writing '.' output to out.
func NewInterpreter(in io.Reader, out io.Writer, cfg Config) *Interpreter {
	cfg.applyDefaults()
	return &Interpreter{
		in:   in,
		out:  out,
		tape: NewTape(cfg.TapeCapacity),
		cfg:  cfg,
		log:  commonlog.GetLogger("brainruck.vm"),
	}
}

// Tape returns the interpreter's tape.
func (in *Interpreter) Tape() *Tape {
	return in.tape
}

// PC returns the program cursor. After a successful run it equals the
// program length; after a failed run it indexes the failing instruction.
func (in *Interpreter) PC() int {
	return in.pc
}

// Steps returns the number of program bytes dispatched so far.
func (in *Interpreter) Steps() uint64 {
	return in.steps
}

// Run executes program until the cursor passes its last byte.
//
// A '[' on a zero cell jumps to its matching ']' and a ']' on a nonzero
// cell jumps to its matching '['. Either way the cursor lands on the bracket
// itself and the usual advance-by-one moves past it, so a backward jump does
// not re-test the '['. Brackets are matched only when a jump is taken.
func (in *Interpreter) Run(program []byte) error {
	if in.ran {
		return &Error{Err: ErrInterpreterUsed}
	}
	in.ran = true

	if in.cfg.Strict {
		if err := Validate(program); err != nil {
			return err
		}
	}

	in.log.Infof("run: %d bytes, %d instructions", len(program), len(Disassemble(program)))
	trace := in.cfg.Trace && in.log.AllowLevel(commonlog.Debug)

	for in.pc = 0; in.pc < len(program); in.pc++ {
		if in.cfg.MaxSteps > 0 && in.steps >= in.cfg.MaxSteps {
			in.instr = program[in.pc]
			return in.newError(ErrStepLimit)
		}
		in.steps++
		in.instr = program[in.pc]

		if trace && IsInstruction(in.instr) {
			in.log.Debugf("[%04d] %-7s head=%d cell=%d", in.pc, OpName(in.instr), in.tape.head, in.tape.Cell())
		}

		switch in.instr {
		case OpRight:
			in.tape.MoveRight()

		case OpLeft:
			if err := in.tape.MoveLeft(); err != nil {
				return in.newError(err)
			}

		case OpIncrement:
			in.tape.Increment()

		case OpDecrement:
			in.tape.Decrement()

		case OpOutput:
			if err := in.tape.Output(in.out); err != nil {
				return in.newError(err)
			}

		case OpInput:
			if err := in.tape.Input(in.in); err != nil {
				return in.newError(err)
			}

		case OpLoopStart:
			if in.tape.IsZero() {
				target, ok := matchForward(program, in.pc)
				if !ok {
					return in.newError(ErrInvalidProgram)
				}
				in.pc = target
			}

		case OpLoopEnd:
			if !in.tape.IsZero() {
				target, ok := matchBackward(program, in.pc)
				if !ok {
					return in.newError(ErrInvalidProgram)
				}
				in.pc = target
			}
		}
	}

	in.log.Infof("run: finished after %d steps, %d cells", in.steps, in.tape.Len())
	return nil
}
