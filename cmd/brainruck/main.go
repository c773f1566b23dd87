// brainruck runs a tape-language program read from a source file, with
// standard input and output as the program's byte streams.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/tliron/commonlog"
	"github.com/tliron/commonlog/simple"
	"github.com/tliron/kutil/util"

	"github.com/chazu/brainruck/history"
	"github.com/chazu/brainruck/image"
	"github.com/chazu/brainruck/manifest"
	"github.com/chazu/brainruck/vm"
)

const usage = "Usage: brainruck SOURCE_FILE"

func main() {
	// util.Exit runs the exit hooks that drain buffered log files.
	util.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) != 1 || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(stderr, usage)
		return 1
	}
	path := args[0]

	program, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "brainruck: %v\n", err)
		return 1
	}

	m, err := loadManifest(path)
	if err != nil {
		fmt.Fprintf(stderr, "brainruck: %v\n", err)
		return 1
	}
	configureLogging(m, stderr)
	log := commonlog.GetLogger("brainruck")
	if m.Dir != "" {
		log.Infof("config: %s", filepath.Join(m.Dir, manifest.FileName))
	}

	in := bufio.NewReader(stdin)
	out := bufio.NewWriter(stdout)
	counter := &countingWriter{w: out}
	interp := vm.NewInterpreter(in, counter, m.VMConfig())

	rec := history.NewRun(path, program)
	runErr := interp.Run(program)
	// Flush even after a failed run so partial output is kept.
	if err := out.Flush(); err != nil && runErr == nil {
		runErr = err
	}
	rec.Duration = time.Since(rec.StartedAt)
	rec.Status = history.StatusOf(runErr)
	rec.Steps = interp.Steps()
	rec.OutputBytes = counter.n

	code := 0
	if p := m.ImagePath(); p != "" {
		if err := image.WriteFile(p, interp.Snapshot()); err != nil {
			log.Errorf("image: %v", err)
			fmt.Fprintf(stderr, "brainruck: image: %v\n", err)
			code = 1
		}
	}
	if p := m.HistoryPath(); p != "" {
		if err := recordRun(p, rec); err != nil {
			log.Errorf("history: %v", err)
			fmt.Fprintf(stderr, "brainruck: history: %v\n", err)
			code = 1
		}
	}

	if runErr != nil {
		var vmErr *vm.Error
		if errors.As(runErr, &vmErr) {
			fmt.Fprintln(stderr, runErr)
		} else {
			fmt.Fprintf(stderr, "brainruck: %v\n", runErr)
		}
		return 1
	}
	return code
}

// loadManifest finds brainruck.toml above the program file, falling back
// to the defaults when there is none.
func loadManifest(path string) (*manifest.Manifest, error) {
	m, err := manifest.FindAndLoad(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	if m == nil {
		m = manifest.Default()
	}
	return m, nil
}

// configureLogging installs a simple backend. Without a log file, lines go
// straight to stderr rather than through the backend's buffered writer.
func configureLogging(m *manifest.Manifest, stderr io.Writer) {
	backend := simple.NewBackend()
	commonlog.SetBackend(backend)
	if p := m.LogPath(); p != "" {
		backend.Configure(m.Log.Verbosity, &p)
	} else {
		backend.Configure(m.Log.Verbosity, nil)
		backend.Writer = stderr
	}
	backend.SetMaxLevel(maxLevel(m.Log.Verbosity))
}

// maxLevel maps [log] verbosity: 0 shows warnings and errors, 1 adds run
// summaries and 2 adds instruction traces.
func maxLevel(verbosity int) commonlog.Level {
	switch {
	case verbosity >= 2:
		return commonlog.Debug
	case verbosity == 1:
		return commonlog.Info
	default:
		return commonlog.Warning
	}
}

func recordRun(path string, rec history.Run) error {
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Record(rec)
}

// countingWriter counts the bytes the program writes.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
