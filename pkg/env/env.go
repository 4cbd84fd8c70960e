// Package env exposes a Game Boy session to an external controller
// as a sequence of steps, each holding an input mask for one frame
// and returning the mirror snapshot.
package env

import (
	"github.com/thelolagemann/gbmirror/internal/gameboy"
	"github.com/thelolagemann/gbmirror/internal/mirror"
	"github.com/thelolagemann/gbmirror/internal/types"
	"github.com/thelolagemann/gbmirror/pkg/log"
)

const (
	// MirrorSize is the length of a full snapshot.
	MirrorSize = mirror.Size
	// VisibleSize is the length of a snapshot without hidden fields.
	VisibleSize = mirror.VisibleSize
)

type options struct {
	hidden    bool
	statePath string
	opts      []gameboy.Opt
}

// Option configures an Env.
type Option func(*options)

// Mode selects the hardware to emulate.
func Mode(m types.Mode) Option {
	return func(o *options) {
		o.opts = append(o.opts, gameboy.AsMode(m))
	}
}

// SkipChecksum skips verifying the cartridge header checksum.
func SkipChecksum() Option {
	return func(o *options) {
		o.opts = append(o.opts, gameboy.SkipChecksum())
	}
}

// StatePath sets the file the session is persisted to on Close.
func StatePath(path string) Option {
	return func(o *options) {
		o.statePath = path
	}
}

// HiddenFields exports the debug region of the snapshot.
func HiddenFields(hidden bool) Option {
	return func(o *options) {
		o.hidden = hidden
	}
}

func Logger(l log.Logger) Option {
	return func(o *options) {
		o.opts = append(o.opts, gameboy.WithLogger(l))
	}
}

// WithGameBoyOptions passes opts through to the session.
func WithGameBoyOptions(opts ...gameboy.Opt) Option {
	return func(o *options) {
		o.opts = append(o.opts, opts...)
	}
}

// Env is a session driven one frame per step. It is not safe for
// concurrent use.
type Env struct {
	gb     *gameboy.GameBoy
	hidden bool
	frame  []byte
}

// New returns an Env running rom.
func New(rom []byte, opts ...Option) (*Env, error) {
	o := apply(opts)
	if o.statePath != "" {
		o.opts = append(o.opts, gameboy.WithStatePath(o.statePath))
	}
	gb, err := gameboy.NewGameBoy(rom, o.opts...)
	if err != nil {
		return nil, err
	}
	return &Env{gb: gb, hidden: o.hidden}, nil
}

// Restore returns an Env resumed from the state file at path.
func Restore(rom []byte, path string, opts ...Option) (*Env, error) {
	o := apply(opts)
	gb, err := gameboy.LoadState(rom, path, o.opts...)
	if err != nil {
		return nil, err
	}
	return &Env{gb: gb, hidden: o.hidden}, nil
}

func apply(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Reset returns the session to its power on state.
func (e *Env) Reset() {
	e.gb.Reset()
	e.frame = nil
}

// Step holds mask for one frame and returns the snapshot taken
// during it. Reward and done are placeholders, always 0 and false,
// left for the controller to derive from the snapshot.
func (e *Env) Step(mask uint8) (snapshot []byte, reward float32, done bool) {
	e.gb.SetJoypadMask(mask)
	e.frame = e.gb.RunToNextFrame()
	return e.Mirror(), 0, false
}

// Mirror returns a copy of the last snapshot, truncated to
// VisibleSize unless hidden fields were requested.
func (e *Env) Mirror() []byte {
	m := e.gb.Mirror()
	if !e.hidden {
		m = m[:VisibleSize]
	}
	return m
}

// SetActionMask replaces the held keys without stepping.
func (e *Env) SetActionMask(mask uint8) {
	e.gb.SetJoypadMask(mask)
}

// Frame returns the image of the last frame, or nil before the
// first step.
func (e *Env) Frame() []byte {
	if e.frame == nil {
		return nil
	}
	f := make([]byte, len(e.frame))
	copy(f, e.frame)
	return f
}

// Frames returns the number of frames stepped since power on.
func (e *Env) Frames() uint32 {
	return e.gb.Frames()
}

// Name returns the title of the cartridge.
func (e *Env) Name() string {
	return e.gb.Name()
}

// Close tears the session down, persisting it if a state path
// was given.
func (e *Env) Close() error {
	return e.gb.Close()
}
