package vm

import "testing"

func TestIsInstruction(t *testing.T) {
	for _, b := range []byte("><+-.,[]") {
		if !IsInstruction(b) {
			t.Errorf("IsInstruction(%q) = false, want true", b)
		}
	}
	for _, b := range []byte("abc 0\n\t#!") {
		if IsInstruction(b) {
			t.Errorf("IsInstruction(%q) = true, want false", b)
		}
	}
}

func TestDisassemble(t *testing.T) {
	got := Disassemble([]byte("read: , then echo [.,] # done\n"))
	if got != ",[.,]" {
		t.Errorf("Disassemble = %q, want %q", got, ",[.,]")
	}
}

func TestOpName(t *testing.T) {
	if OpName('[') != "loop" {
		t.Errorf("OpName('[') = %q, want loop", OpName('['))
	}
	if OpName('x') != "nop" {
		t.Errorf("OpName('x') = %q, want nop", OpName('x'))
	}
}
