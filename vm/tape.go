package vm

import (
	"errors"
	"io"
)

const defaultTapeCapacity = 1024

// Tape is the machine memory: byte cells bounded on the left at index 0
// and growing to the right on demand. The head always indexes an existing
// cell and the tape never shrinks.
type Tape struct {
	cells []byte
	head  int
}

// NewTape creates a tape holding a single zero cell with the head on it.
// capacity preallocates room for that many cells; values <= 0 select the
// default.
func NewTape(capacity int) *Tape {
	if capacity <= 0 {
		capacity = defaultTapeCapacity
	}
	cells := make([]byte, 1, capacity)
	return &Tape{cells: cells}
}

// MoveRight advances the head, appending a zero cell when the head is on
// the last cell.
func (t *Tape) MoveRight() {
	if t.head == len(t.cells)-1 {
		t.cells = append(t.cells, 0)
	}
	t.head++
}

// MoveLeft moves the head one cell left. It returns ErrTapeUnderflow and
// leaves the head in place when the head is already on cell 0.
func (t *Tape) MoveLeft() error {
	if t.head == 0 {
		return ErrTapeUnderflow
	}
	t.head--
	return nil
}

// Increment adds one to the current cell, wrapping 255 to 0.
func (t *Tape) Increment() {
	t.cells[t.head]++
}

// Decrement subtracts one from the current cell, wrapping 0 to 255.
func (t *Tape) Decrement() {
	t.cells[t.head]--
}

// Output writes the current cell to w.
func (t *Tape) Output(w io.Writer) error {
	n, err := w.Write(t.cells[t.head : t.head+1])
	if err != nil {
		return err
	}
	if n != 1 {
		return io.ErrShortWrite
	}
	return nil
}

// Input reads one byte from r into the current cell. At end of input the
// cell is set to 0 and no error is returned.
func (t *Tape) Input(r io.Reader) error {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if errors.Is(err, io.EOF) {
			t.cells[t.head] = 0
			return nil
		}
		return err
	}
	t.cells[t.head] = buf[0]
	return nil
}

// IsZero reports whether the current cell is 0.
func (t *Tape) IsZero() bool {
	return t.cells[t.head] == 0
}

// Cell returns the value of the current cell.
func (t *Tape) Cell() byte {
	return t.cells[t.head]
}

// Head returns the head index.
func (t *Tape) Head() int {
	return t.head
}

// Len returns the number of allocated cells.
func (t *Tape) Len() int {
	return len(t.cells)
}

// Cells returns a copy of the allocated cells.
func (t *Tape) Cells() []byte {
	return append([]byte(nil), t.cells...)
}
