package remote

import (
	"encoding/binary"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/thelolagemann/gbmirror/internal/cartridge/cartridgetest"
	"github.com/thelolagemann/gbmirror/pkg/env"
)

func newTestServer(t *testing.T, opts ...Opt) (*Server, *Client) {
	t.Helper()
	e, err := env.New(cartridgetest.Build(cartridgetest.Options{Title: "REMOTE"}))
	if err != nil {
		t.Fatal(err)
	}
	s := NewServer(e, opts...)
	ts := httptest.NewServer(s.Handler())
	c, err := Dial("ws" + strings.TrimPrefix(ts.URL, "http"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		c.Close()
		ts.Close()
		s.Close()
	})
	return s, c
}

func TestReply_RoundTrip(t *testing.T) {
	payload := []byte("snapshot bytes snapshot bytes")
	for _, compress := range []bool{false, true} {
		msg, err := encodeReply(CommandMirror, StatusOK, payload, compress)
		if err != nil {
			t.Fatal(err)
		}
		r, err := DecodeReply(msg)
		if err != nil {
			t.Fatal(err)
		}
		if r.Command != CommandMirror || r.Status != StatusOK || string(r.Payload) != string(payload) {
			t.Errorf("compress %v: got %+v", compress, r)
		}
	}
}

func TestReply_Errors(t *testing.T) {
	if _, err := DecodeReply([]byte{0, 0, 1}); !errors.Is(err, ErrShortReply) {
		t.Errorf("got %v, want %v", err, ErrShortReply)
	}
	msg, _ := encodeReply(CommandStep, StatusOK, []byte{1, 2, 3}, false)
	msg[len(msg)-1]++
	if _, err := DecodeReply(msg); !errors.Is(err, ErrChecksum) {
		t.Errorf("got %v, want %v", err, ErrChecksum)
	}
}

func TestServer_Step(t *testing.T) {
	_, c := newTestServer(t)

	for i := uint32(1); i <= 2; i++ {
		m, err := c.Step(0x10)
		if err != nil {
			t.Fatal(err)
		}
		if len(m) != env.VisibleSize {
			t.Fatalf("got %d bytes, want %d", len(m), env.VisibleSize)
		}
		if got := binary.LittleEndian.Uint32(m); got != i {
			t.Errorf("got frame %d, want %d", got, i)
		}
	}

	m, err := c.Reset()
	if err != nil {
		t.Fatal(err)
	}
	if got := binary.LittleEndian.Uint32(m); got != 0 {
		t.Errorf("got frame %d after reset, want 0", got)
	}
	if err := c.SetMask(0x01); err != nil {
		t.Error(err)
	}
}

func TestServer_Compression(t *testing.T) {
	_, c := newTestServer(t, WithCompression())
	m, err := c.Step(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(m) != env.VisibleSize {
		t.Errorf("got %d bytes, want %d", len(m), env.VisibleSize)
	}
}

func TestServer_BadRequests(t *testing.T) {
	s, _ := newTestServer(t)
	tests := []struct {
		packet []byte
		want   Status
	}{
		{[]byte{}, StatusBadRequest},
		{[]byte{uint8(CommandStep)}, StatusBadRequest},
		{[]byte{uint8(CommandSetMask)}, StatusBadRequest},
		{[]byte{0x7F}, StatusUnknown},
	}
	for _, tt := range tests {
		msg, ok := s.Do(tt.packet)
		if !ok {
			t.Fatal("server stopped")
		}
		r, err := DecodeReply(msg)
		if err != nil {
			t.Fatal(err)
		}
		if r.Status != tt.want {
			t.Errorf("%v: got status %d, want %d", tt.packet, r.Status, tt.want)
		}
	}
}

func TestServer_Closed(t *testing.T) {
	s, _ := newTestServer(t)
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Do([]byte{uint8(CommandMirror)}); ok {
		t.Errorf("request served after close")
	}
}
