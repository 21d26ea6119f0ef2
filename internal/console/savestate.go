package console

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// stateMagic/stateVersion guard against loading a save-state produced by
// an incompatible build; the envelope is otherwise opaque to the host.
const (
	stateMagic   = "NESC"
	stateVersion = 1
)

// StateError reports why SaveState/LoadState failed.
type StateError struct {
	Op  string
	Err error
}

func (e *StateError) Error() string { return fmt.Sprintf("console: %s: %v", e.Op, e.Err) }
func (e *StateError) Unwrap() error { return e.Err }

// SaveState writes a zstd-compressed snapshot of the components' mutable
// state to w (see Bus.SaveState for what is included). Not included: an
// OAM DMA transfer in progress and the PPU's secondary-OAM sprite buffers,
// so after a LoadState the first scanline's sprites, and a DMA that was
// mid-transfer, can differ from an uninterrupted run.
func (c *Console) SaveState(w io.Writer) error {
	raw := c.bus.SaveState()

	enc, err := zstd.NewWriter(w)
	if err != nil {
		return &StateError{Op: "save", Err: err}
	}
	header := append([]byte(stateMagic), byte(stateVersion))
	if _, err := enc.Write(header); err != nil {
		enc.Close()
		return &StateError{Op: "save", Err: err}
	}
	if _, err := enc.Write(raw); err != nil {
		enc.Close()
		return &StateError{Op: "save", Err: err}
	}
	if err := enc.Close(); err != nil {
		return &StateError{Op: "save", Err: err}
	}
	return nil
}

// LoadState restores a snapshot previously written by SaveState.
func (c *Console) LoadState(r io.Reader) error {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return &StateError{Op: "load", Err: err}
	}
	defer dec.Close()

	data, err := io.ReadAll(dec)
	if err != nil {
		return &StateError{Op: "load", Err: err}
	}
	if len(data) < len(stateMagic)+1 || string(data[:len(stateMagic)]) != stateMagic {
		return &StateError{Op: "load", Err: fmt.Errorf("not a save-state (bad magic)")}
	}
	if data[len(stateMagic)] != stateVersion {
		return &StateError{Op: "load", Err: fmt.Errorf("unsupported save-state version %d", data[len(stateMagic)])}
	}
	return c.bus.LoadState(data[len(stateMagic)+1:])
}
