package history

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/chazu/brainruck/vm"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs", "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openStore(t)
	base := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		r := NewRun(fmt.Sprintf("prog%d.bf", i), []byte("+."))
		r.StartedAt = base.Add(time.Duration(i) * time.Minute)
		r.Status = StatusOK
		r.Steps = uint64(10 * i)
		r.OutputBytes = int64(i)
		r.Duration = 3 * time.Millisecond
		if err := s.Record(r); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	runs, err := s.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("len(runs) = %d, want 2", len(runs))
	}
	if runs[0].Program != "prog2.bf" || runs[1].Program != "prog1.bf" {
		t.Errorf("order = %s, %s; want prog2.bf, prog1.bf", runs[0].Program, runs[1].Program)
	}
	got := runs[0]
	if got.Steps != 20 || got.OutputBytes != 2 || got.Status != StatusOK {
		t.Errorf("run = %+v", got)
	}
	if !got.StartedAt.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("StartedAt = %v, want %v", got.StartedAt, base.Add(2*time.Minute))
	}
	if got.Duration != 3*time.Millisecond {
		t.Errorf("Duration = %v, want 3ms", got.Duration)
	}
	if got.Digest != Digest([]byte("+.")) {
		t.Errorf("Digest = %q", got.Digest)
	}
}

func TestRecordDuplicateID(t *testing.T) {
	s := openStore(t)
	r := NewRun("a.bf", nil)
	r.Status = StatusOK
	if err := s.Record(r); err != nil {
		t.Fatal(err)
	}
	if err := s.Record(r); err == nil {
		t.Error("second Record with the same ID succeeded")
	}
}

func TestReopenKeepsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	r := NewRun("keep.bf", []byte(","))
	r.Status = StatusIOError
	if err := s.Record(r); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	runs, err := s.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].ID != r.ID {
		t.Errorf("runs = %+v, want the one recorded run", runs)
	}
}

func TestNewRun(t *testing.T) {
	a := NewRun("x.bf", []byte("+"))
	b := NewRun("x.bf", []byte("+"))
	if a.ID == b.ID {
		t.Error("NewRun reused an ID")
	}
	if a.Digest != b.Digest || len(a.Digest) != 64 {
		t.Errorf("Digest = %q, want stable 64 hex chars", a.Digest)
	}
	if Digest([]byte("-")) == a.Digest {
		t.Error("different programs share a digest")
	}
}

func TestStatusOf(t *testing.T) {
	run := func(program string) error {
		var out bytes.Buffer
		return vm.NewInterpreter(strings.NewReader(""), &out, vm.Config{MaxSteps: 50}).Run([]byte(program))
	}
	tests := []struct {
		err  error
		want string
	}{
		{nil, StatusOK},
		{run("["), StatusInvalidProgram},
		{run("<"), StatusTapeUnderflow},
		{run("+[]"), StatusStepLimit},
		{&vm.Error{Err: io.ErrClosedPipe}, StatusIOError},
		{errors.New("other"), StatusIOError},
	}
	for _, tt := range tests {
		if got := StatusOf(tt.err); got != tt.want {
			t.Errorf("StatusOf(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
