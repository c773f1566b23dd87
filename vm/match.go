package vm

// matchForward returns the index of the ']' closing the '[' at pc.
// The scan starts just after pc and counts nested brackets.
func matchForward(program []byte, pc int) (int, bool) {
	depth := 0
	for i := pc + 1; i < len(program); i++ {
		switch program[i] {
		case OpLoopStart:
			depth++
		case OpLoopEnd:
			if depth == 0 {
				return i, true
			}
			depth--
		}
	}
	return 0, false
}

// matchBackward returns the index of the '[' opening the ']' at pc.
// The scan starts just before pc and counts nested brackets.
func matchBackward(program []byte, pc int) (int, bool) {
	depth := 0
	for i := pc - 1; i >= 0; i-- {
		switch program[i] {
		case OpLoopEnd:
			depth++
		case OpLoopStart:
			if depth == 0 {
				return i, true
			}
			depth--
		}
	}
	return 0, false
}
