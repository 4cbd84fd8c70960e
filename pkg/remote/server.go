// Package remote serves a session over websocket, so a controller
// in another process can step it.
package remote

import (
	"net"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/thelolagemann/gbmirror/pkg/env"
	"github.com/thelolagemann/gbmirror/pkg/log"
)

// Opt configures a Server.
type Opt func(*Server)

// WithCompression brotli compresses reply payloads.
func WithCompression() Opt {
	return func(s *Server) {
		s.compression = true
	}
}

func WithLogger(l log.Logger) Opt {
	return func(s *Server) {
		s.log = l
	}
}

type request struct {
	packet []byte
	reply  chan []byte
}

// Server owns one session. Requests from every connection are
// handed to a single goroutine, so the session is never shared.
type Server struct {
	env         *env.Env
	compression bool
	log         log.Logger

	requests  chan request
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 16,
	WriteBufferSize: 1024 * 16,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// NewServer returns a running Server for e, which it takes
// ownership of.
func NewServer(e *env.Env, opts ...Opt) *Server {
	s := &Server{
		env:      e,
		log:      log.NewNullLogger(),
		requests: make(chan request),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.wg.Add(1)
	go s.run()
	return s
}

func (s *Server) run() {
	defer s.wg.Done()
	for {
		select {
		case r := <-s.requests:
			r.reply <- s.handle(r.packet)
		case <-s.done:
			return
		}
	}
}

// Do carries out one request and returns the encoded reply.
func (s *Server) Do(packet []byte) ([]byte, bool) {
	r := request{packet: packet, reply: make(chan []byte, 1)}
	select {
	case s.requests <- r:
	case <-s.done:
		return nil, false
	}
	return <-r.reply, true
}

func (s *Server) handle(packet []byte) []byte {
	if len(packet) == 0 {
		return s.reply(0, StatusBadRequest, nil)
	}

	cmd := Command(packet[0])
	switch cmd {
	case CommandStep:
		if len(packet) < 2 {
			return s.reply(cmd, StatusBadRequest, nil)
		}
		m, _, _ := s.env.Step(packet[1])
		return s.reply(cmd, StatusOK, m)
	case CommandReset:
		s.env.Reset()
		return s.reply(cmd, StatusOK, s.env.Mirror())
	case CommandMirror:
		return s.reply(cmd, StatusOK, s.env.Mirror())
	case CommandSetMask:
		if len(packet) < 2 {
			return s.reply(cmd, StatusBadRequest, nil)
		}
		s.env.SetActionMask(packet[1])
		return s.reply(cmd, StatusOK, nil)
	case CommandFrame:
		return s.reply(cmd, StatusOK, s.env.Frame())
	}
	return s.reply(cmd, StatusUnknown, nil)
}

func (s *Server) reply(cmd Command, status Status, payload []byte) []byte {
	msg, err := encodeReply(cmd, status, payload, s.compression)
	if err != nil {
		s.log.Errorf("encoding %v reply: %v", cmd, err)
		msg, _ = encodeReply(cmd, status, payload, false)
	}
	return msg
}

// Handler returns the websocket endpoint.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.log.Errorf("upgrading %s: %v", r.RemoteAddr, err)
			return
		}
		s.log.Infof("controller connected from %s", r.RemoteAddr)
		s.serve(conn)
		s.log.Infof("controller at %s disconnected", r.RemoteAddr)
	})
}

func (s *Server) serve(conn *websocket.Conn) {
	defer conn.Close()
	for {
		kind, packet, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if kind != websocket.BinaryMessage {
			continue
		}
		msg, ok := s.Do(packet)
		if !ok {
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
			return
		}
		if err := conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
			return
		}
		if tcp, ok := conn.UnderlyingConn().(*net.TCPConn); ok {
			if rtt, ok := roundTrip(tcp); ok {
				s.log.Debugf("rtt to %s: %v", conn.RemoteAddr(), rtt)
			}
		}
	}
}

// Close stops the server and closes the session.
func (s *Server) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		s.wg.Wait()
		err = s.env.Close()
	})
	return err
}
