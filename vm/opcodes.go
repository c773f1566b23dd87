package vm

import "strings"

// Instruction bytes.
const (
	OpRight     byte = '>'
	OpLeft      byte = '<'
	OpIncrement byte = '+'
	OpDecrement byte = '-'
	OpOutput    byte = '.'
	OpInput     byte = ','
	OpLoopStart byte = '['
	OpLoopEnd   byte = ']'
)

var opNames = map[byte]string{
	OpRight:     "right",
	OpLeft:      "left",
	OpIncrement: "inc",
	OpDecrement: "dec",
	OpOutput:    "out",
	OpInput:     "in",
	OpLoopStart: "loop",
	OpLoopEnd:   "endloop",
}

// IsInstruction reports whether b is one of the eight instruction bytes.
func IsInstruction(b byte) bool {
	_, ok := opNames[b]
	return ok
}

// OpName returns the mnemonic for an instruction byte, or "nop".
func OpName(b byte) string {
	if name, ok := opNames[b]; ok {
		return name
	}
	return "nop"
}

// Disassemble returns the instruction bytes of program with comments and
// whitespace stripped.
func Disassemble(program []byte) string {
	var sb strings.Builder
	sb.Grow(len(program))
	for _, b := range program {
		if IsInstruction(b) {
			sb.WriteByte(b)
		}
	}
	return sb.String()
}
