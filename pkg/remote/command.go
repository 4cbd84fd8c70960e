package remote

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/cespare/xxhash"
)

// Command is the first byte of every request and reply.
type Command uint8

const (
	// CommandStep holds the mask in the next byte for one frame
	// and replies with the snapshot.
	CommandStep Command = iota
	// CommandReset resets the session and replies with the
	// snapshot.
	CommandReset
	// CommandMirror replies with the last snapshot.
	CommandMirror
	// CommandSetMask holds the mask in the next byte without
	// stepping.
	CommandSetMask
	// CommandFrame replies with the image of the last frame.
	CommandFrame
)

func (c Command) String() string {
	switch c {
	case CommandStep:
		return "step"
	case CommandReset:
		return "reset"
	case CommandMirror:
		return "mirror"
	case CommandSetMask:
		return "set-mask"
	case CommandFrame:
		return "frame"
	}
	return fmt.Sprintf("command(%d)", uint8(c))
}

// Status is the second byte of every reply.
type Status uint8

const (
	// StatusOK means the command was carried out.
	StatusOK Status = iota
	// StatusBadRequest means the request was malformed.
	StatusBadRequest
	// StatusUnknown means the command is not known.
	StatusUnknown
	// StatusCompressed is set alongside the others when the
	// payload is brotli compressed.
	StatusCompressed Status = 0x80
)

// headerSize is the command, the status and the payload hash.
const headerSize = 2 + 8

var (
	// ErrShortReply is returned for replies without a full header.
	ErrShortReply = errors.New("remote: short reply")
	// ErrChecksum is returned when the payload does not match its hash.
	ErrChecksum = errors.New("remote: payload checksum mismatch")
)

// Reply is a decoded reply.
type Reply struct {
	Command Command
	Status  Status
	Payload []byte
}

// encodeReply builds a reply, compressing a non empty payload
// when compress is set. The hash covers the payload as sent.
func encodeReply(cmd Command, status Status, payload []byte, compress bool) ([]byte, error) {
	if compress && len(payload) > 0 {
		var buf bytes.Buffer
		w := brotli.NewWriterLevel(&buf, 7)
		if _, err := w.Write(payload); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		payload = buf.Bytes()
		status |= StatusCompressed
	}

	msg := make([]byte, headerSize, headerSize+len(payload))
	msg[0] = uint8(cmd)
	msg[1] = uint8(status)
	binary.LittleEndian.PutUint64(msg[2:], xxhash.Sum64(payload))
	return append(msg, payload...), nil
}

// DecodeReply verifies and decompresses a reply.
func DecodeReply(msg []byte) (*Reply, error) {
	if len(msg) < headerSize {
		return nil, ErrShortReply
	}
	r := &Reply{
		Command: Command(msg[0]),
		Status:  Status(msg[1]),
		Payload: msg[headerSize:],
	}
	if xxhash.Sum64(r.Payload) != binary.LittleEndian.Uint64(msg[2:]) {
		return nil, ErrChecksum
	}
	if r.Status&StatusCompressed != 0 {
		raw, err := io.ReadAll(brotli.NewReader(bytes.NewReader(r.Payload)))
		if err != nil {
			return nil, fmt.Errorf("remote: decompressing payload: %w", err)
		}
		r.Payload = raw
		r.Status &^= StatusCompressed
	}
	return r, nil
}
