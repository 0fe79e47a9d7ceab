package chathub

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait = 10 * time.Second
	// Attachments ride inside the frame base64-encoded, so the read limit
	// has to be generous.
	maxMessageSize = 16 << 20
	sendBufferSize = 256
)

// WebSocketClient implements Client on top of a gorilla WebSocket
// connection. A read pump, a write pump and the liveness monitor each run in
// their own goroutine; the write pump is the only writer of data frames, and
// the monitor uses control frames, which gorilla allows concurrently.
type WebSocketClient struct {
	Hub  *Hub
	Conn *websocket.Conn

	monitor   *Monitor
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func NewWebSocketClient(hub *Hub, conn *websocket.Conn) *WebSocketClient {
	c := &WebSocketClient{
		Hub:  hub,
		Conn: conn,
		send: make(chan []byte, sendBufferSize),
		done: make(chan struct{}),
	}
	c.monitor = NewMonitor(
		hub.Liveness.ProbeInterval,
		hub.Liveness.AckWindow,
		func() error {
			return conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
		},
		func() {
			// Liveness timeout: force the transport closed and take the
			// connection out of the roster.
			c.Close()
			c.Hub.Leave(c)
		},
	)
	return c
}

// Run starts the pumps and the liveness monitor.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.monitor.Run()
	go c.readPump()
}

// Send queues a frame for the write pump. A full buffer or a closed
// connection drops the frame; a slow consumer never blocks the hub.
func (c *WebSocketClient) Send(frame []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- frame:
		return true
	case <-c.done:
		return false
	default:
		return false
	}
}

// Close shuts the connection down. Idempotent: the liveness timeout and a
// transport-level close may race onto this path.
func (c *WebSocketClient) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.monitor.Stop()
		c.Conn.Close()
	})
}

func (c *WebSocketClient) readPump() {
	defer func() {
		c.Close()
		c.Hub.Leave(c)
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetPongHandler(func(string) error {
		c.monitor.Ack()
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("websocket read failed", "error", err)
			}
			break
		}
		c.Hub.HandleFrame(c, raw)
	}
}

func (c *WebSocketClient) writePump() {
	defer c.Conn.Close()

	for {
		select {
		case frame := <-c.send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-c.done:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}
