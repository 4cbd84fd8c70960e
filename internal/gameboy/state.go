package gameboy

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/andybalholm/brotli"
	"github.com/thelolagemann/gbmirror/internal/types"
)

const (
	stateMagic   = "GBMS"
	stateVersion = 1
	// magic, version, mode and the ROM hash
	stateHeaderSize = 4 + 1 + 1 + 8
)

var (
	// ErrStateMagic is returned when a file is not a saved state.
	ErrStateMagic = errors.New("gameboy: not a state file")
	// ErrStateVersion is returned for states of another version.
	ErrStateVersion = errors.New("gameboy: unsupported state version")
	// ErrStateROM is returned for states saved with another ROM.
	ErrStateROM = errors.New("gameboy: state belongs to another ROM")
)

var _ types.Stater = (*GameBoy)(nil)

// Load restores the processor, the bus and the mirror from s.
func (g *GameBoy) Load(s *types.State) {
	g.CPU.Load(s)
	g.MMU.Load(s)
	g.mirror.Load(s)
}

// Save writes the processor, the bus and the mirror to s.
func (g *GameBoy) Save(s *types.State) {
	g.CPU.Save(s)
	g.MMU.Save(s)
	g.mirror.Save(s)
}

// WriteState writes a compressed state to w.
func (g *GameBoy) WriteState(w io.Writer) error {
	header := make([]byte, stateHeaderSize)
	copy(header, stateMagic)
	header[4] = stateVersion
	header[5] = uint8(g.mode)
	binary.LittleEndian.PutUint64(header[6:], g.romHash)
	if _, err := w.Write(header); err != nil {
		return err
	}

	s := types.NewState()
	g.Save(s)
	bw := brotli.NewWriterLevel(w, brotli.DefaultCompression)
	if _, err := bw.Write(s.Bytes()); err != nil {
		return err
	}
	return bw.Close()
}

// SaveState writes the state to the file at path.
func (g *GameBoy) SaveState(path string) error {
	var buf bytes.Buffer
	if err := g.WriteState(&buf); err != nil {
		return fmt.Errorf("gameboy: encoding state: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// ReadState restores a state written by WriteState.
func (g *GameBoy) ReadState(r io.Reader) error {
	_, body, err := g.readStateHeader(r)
	if err != nil {
		return err
	}
	raw, err := io.ReadAll(brotli.NewReader(body))
	if err != nil {
		return fmt.Errorf("gameboy: decoding state: %w", err)
	}
	s := types.StateFromBytes(raw)
	g.Load(s)
	return s.Err()
}

func (g *GameBoy) readStateHeader(r io.Reader) (types.Mode, io.Reader, error) {
	header := make([]byte, stateHeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return 0, nil, ErrStateMagic
	}
	if string(header[:4]) != stateMagic {
		return 0, nil, ErrStateMagic
	}
	if header[4] != stateVersion {
		return 0, nil, fmt.Errorf("%w: %d", ErrStateVersion, header[4])
	}
	if g.romHash != 0 && binary.LittleEndian.Uint64(header[6:]) != g.romHash {
		return 0, nil, ErrStateROM
	}
	return types.Mode(header[5]), r, nil
}

// LoadState restores a session of rom from the state file at
// path, which it is saved back to on Close.
func LoadState(rom []byte, path string, opts ...Opt) (*GameBoy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gameboy: reading state: %w", err)
	}

	// the session must be rebuilt in the mode it was saved in
	unbound := &GameBoy{}
	mode, _, err := unbound.readStateHeader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	opts = append(opts, AsMode(mode), WithStatePath(path))

	g, err := NewGameBoy(rom, opts...)
	if err != nil {
		return nil, err
	}
	if err := g.ReadState(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	g.log.Infof("restored state from %s", path)
	return g, nil
}
