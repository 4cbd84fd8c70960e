package remote

import (
	"fmt"

	"github.com/gorilla/websocket"
)

// Client is a controller connected to a Server.
type Client struct {
	conn *websocket.Conn
}

// Dial connects to the server at url, e.g. "ws://localhost:8090/".
func Dial(url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("remote: dialing %s: %w", url, err)
	}
	return &Client{conn: conn}, nil
}

// Send writes packet and waits for the reply.
func (c *Client) Send(packet ...byte) (*Reply, error) {
	if err := c.conn.WriteMessage(websocket.BinaryMessage, packet); err != nil {
		return nil, err
	}
	_, msg, err := c.conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	r, err := DecodeReply(msg)
	if err != nil {
		return nil, err
	}
	if r.Status != StatusOK {
		return r, fmt.Errorf("remote: %v failed with status %d", r.Command, r.Status)
	}
	return r, nil
}

// Step holds mask for one frame and returns the snapshot.
func (c *Client) Step(mask uint8) ([]byte, error) {
	r, err := c.Send(uint8(CommandStep), mask)
	if err != nil {
		return nil, err
	}
	return r.Payload, nil
}

// Reset resets the session and returns the snapshot.
func (c *Client) Reset() ([]byte, error) {
	r, err := c.Send(uint8(CommandReset))
	if err != nil {
		return nil, err
	}
	return r.Payload, nil
}

// Mirror returns the last snapshot.
func (c *Client) Mirror() ([]byte, error) {
	r, err := c.Send(uint8(CommandMirror))
	if err != nil {
		return nil, err
	}
	return r.Payload, nil
}

// SetMask holds mask without stepping.
func (c *Client) SetMask(mask uint8) error {
	_, err := c.Send(uint8(CommandSetMask), mask)
	return err
}

func (c *Client) Close() error {
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return c.conn.Close()
}
