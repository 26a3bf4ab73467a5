package bridge

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// session is one connected remote client
type session struct {
	id   string
	conn *websocket.Conn

	// Outbound queue drained by writeLoop
	sendCh chan []byte

	// Lifecycle
	closeCh   chan struct{}
	closeOnce sync.Once
}

func newSession(id string, conn *websocket.Conn, sendBuffer int) *session {
	return &session{
		id:      id,
		conn:    conn,
		sendCh:  make(chan []byte, sendBuffer),
		closeCh: make(chan struct{}),
	}
}

// send queues a frame for transmission
// Returns false if the session is closed or the queue is full
func (c *session) send(data []byte) bool {
	select {
	case <-c.closeCh:
		return false
	default:
	}

	select {
	case c.sendCh <- data:
		return true
	default:
		return false // Queue full
	}
}

// close initiates shutdown; safe from any goroutine
func (c *session) close() {
	c.closeOnce.Do(func() {
		close(c.closeCh)
		c.conn.Close()
	})
}

// readLoop pulls frames off the socket until error or close
// Pong handling extends the read deadline; a silent peer times out
func (c *session) readLoop(cfg *Config, handler func(*session, []byte)) {
	defer c.close()

	c.conn.SetReadLimit(cfg.MaxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(cfg.PongTimeout)); err != nil {
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(cfg.PongTimeout))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		handler(c, data)
	}
}

// writeLoop drains the send queue and keeps the session alive with pings
func (c *session) writeLoop(cfg *Config) {
	ticker := time.NewTicker(cfg.PingInterval)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case <-c.closeCh:
			return
		case data := <-c.sendCh:
			if err := c.conn.SetWriteDeadline(time.Now().Add(cfg.WriteTimeout)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			deadline := time.Now().Add(cfg.WriteTimeout)
			if err := c.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}
