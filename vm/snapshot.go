package vm

// Snapshot is a copy of the machine state.
type Snapshot struct {
	Cells []byte
	Head  int
	PC    int
	Steps uint64
}

// Snapshot copies the current tape, head, cursor and step count.
func (in *Interpreter) Snapshot() *Snapshot {
	return &Snapshot{
		Cells: in.tape.Cells(),
		Head:  in.tape.head,
		PC:    in.pc,
		Steps: in.steps,
	}
}
