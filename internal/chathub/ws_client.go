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

// WebSocketClient implements Client on top of a gorilla websocket
// connection. Writes are serialized by a mutex so the registry, the
// broadcaster, and the router can all send to the same handle; reads stay
// with the single connection goroutine via ReadMessage.
type WebSocketClient struct {
	UserID string
	Conn   *websocket.Conn

	writeMu   sync.Mutex
	closeOnce sync.Once
	done      chan struct{}
}

func NewWebSocketClient(userID string, conn *websocket.Conn) *WebSocketClient {
	c := &WebSocketClient{
		UserID: userID,
		Conn:   conn,
		done:   make(chan struct{}),
	}

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	return c
}

func (c *WebSocketClient) GetUserID() string { return c.UserID }

// Send writes one frame as a JSON text message.
func (c *WebSocketClient) Send(frame any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.Conn.WriteJSON(frame)
}

// Run starts the protocol-level ping ticker that keeps idle connections
// from being reaped by intermediaries.
func (c *WebSocketClient) Run() {
	go c.pingLoop()
}

func (c *WebSocketClient) pingLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.writeMu.Lock()
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := c.Conn.WriteMessage(websocket.PingMessage, nil)
			c.writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

// ReadMessage blocks for the next inbound frame.
func (c *WebSocketClient) ReadMessage() ([]byte, error) {
	_, data, err := c.Conn.ReadMessage()
	return data, err
}

// Close stops the ping ticker, sends a best-effort close frame, and tears
// down the connection. Safe to call more than once.
func (c *WebSocketClient) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		c.writeMu.Lock()
		c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
		c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
		c.writeMu.Unlock()
		err = c.Conn.Close()
	})
	return err
}
