// Package chathub implements the real-time core: the per-chat connection
// registry, the chat session state machine, and the presence janitor.
package chathub

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Conn is one live bidirectional connection handle. It belongs to exactly
// one (chat, user) pair for its lifetime and is owned by the registry entry
// it joined.
type Conn interface {
	// ReadText blocks until the next inbound text payload or a transport error.
	ReadText() ([]byte, error)
	// WriteText sends one outbound frame. Safe for concurrent callers.
	WriteText(payload []byte) error
	// CloseWithCode sends a close frame with the given status code, then
	// tears down the transport.
	CloseWithCode(code int, reason string) error
	// Close tears down the underlying transport.
	Close() error
}

// WSConn adapts a gorilla websocket connection to Conn. A mutex serializes
// writers because broadcasts arrive from other sessions' goroutines.
type WSConn struct {
	conn *websocket.Conn

	mu        sync.Mutex
	closeOnce sync.Once
	done      chan struct{}
}

// NewWSConn wraps an upgraded connection and starts its keepalive pinger.
func NewWSConn(conn *websocket.Conn) *WSConn {
	c := &WSConn{
		conn: conn,
		done: make(chan struct{}),
	}

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	go c.pingLoop()
	return c
}

func (c *WSConn) ReadText() ([]byte, error) {
	_, payload, err := c.conn.ReadMessage()
	return payload, err
}

func (c *WSConn) WriteText(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

func (c *WSConn) CloseWithCode(code int, reason string) error {
	c.mu.Lock()
	c.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason),
		time.Now().Add(writeWait),
	)
	c.mu.Unlock()
	return c.Close()
}

func (c *WSConn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		err = c.conn.Close()
	})
	return err
}

func (c *WSConn) pingLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.mu.Lock()
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := c.conn.WriteMessage(websocket.PingMessage, nil)
			c.mu.Unlock()
			if err != nil {
				return
			}
		}
	}
}
