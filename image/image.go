// Package image encodes machine snapshots as CBOR image files.
package image

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chazu/brainruck/vm"
	"github.com/fxamacker/cbor/v2"
)

// Magic identifies a brainruck image.
const Magic = "BFIMG"

// Version is the current image format version.
// v1: cells, head, pc and step count
const Version uint = 1

// ErrBadImage indicates data that is not a valid brainruck image.
var ErrBadImage = errors.New("image: not a brainruck image")

// record is the on-disk layout. Integer keys keep the encoding compact.
type record struct {
	Magic   string `cbor:"1,keyasint"`
	Version uint   `cbor:"2,keyasint"`
	Cells   []byte `cbor:"3,keyasint"`
	Head    int    `cbor:"4,keyasint"`
	PC      int    `cbor:"5,keyasint"`
	Steps   uint64 `cbor:"6,keyasint"`
}

var encMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("image: failed to create CBOR enc mode: %v", err))
	}
	encMode = em
}

// Marshal serializes a snapshot to canonical CBOR bytes.
func Marshal(s *vm.Snapshot) ([]byte, error) {
	return encMode.Marshal(&record{
		Magic:   Magic,
		Version: Version,
		Cells:   s.Cells,
		Head:    s.Head,
		PC:      s.PC,
		Steps:   s.Steps,
	})
}

// Unmarshal deserializes a snapshot from CBOR bytes.
func Unmarshal(data []byte) (*vm.Snapshot, error) {
	var r record
	if err := cbor.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("image: unmarshal: %w", err)
	}
	if r.Magic != Magic {
		return nil, ErrBadImage
	}
	if r.Version != Version {
		return nil, fmt.Errorf("image: unsupported version %d", r.Version)
	}
	if len(r.Cells) == 0 || r.Head < 0 || r.Head >= len(r.Cells) {
		return nil, fmt.Errorf("%w: head %d outside %d cells", ErrBadImage, r.Head, len(r.Cells))
	}
	return &vm.Snapshot{
		Cells: r.Cells,
		Head:  r.Head,
		PC:    r.PC,
		Steps: r.Steps,
	}, nil
}

// Write encodes a snapshot to w.
func Write(w io.Writer, s *vm.Snapshot) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteFile saves a snapshot to path.
func WriteFile(path string, s *vm.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile loads a snapshot from path.
func ReadFile(path string) (*vm.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}
