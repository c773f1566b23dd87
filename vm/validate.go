package vm

// Validate checks that every '[' and ']' in program has a matching bracket.
// It reports the first ']' with no opener, or else the innermost '[' left
// open at the end, as an *Error wrapping ErrInvalidProgram.
func Validate(program []byte) error {
	var open []int
	for i, b := range program {
		switch b {
		case OpLoopStart:
			open = append(open, i)
		case OpLoopEnd:
			if len(open) == 0 {
				return &Error{Err: ErrInvalidProgram, PC: i, Instr: b}
			}
			open = open[:len(open)-1]
		}
	}
	if len(open) > 0 {
		pc := open[len(open)-1]
		return &Error{Err: ErrInvalidProgram, PC: pc, Instr: OpLoopStart}
	}
	return nil
}
