package realtime

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"crm-pulse/internal/domain"
)

// Client is one live, authenticated connection. A user may own many.
type Client struct {
	gateway  *Gateway
	conn     *websocket.Conn
	identity domain.Identity

	mu     sync.Mutex
	closed bool
	send   chan []byte
}

func newClient(g *Gateway, conn *websocket.Conn, identity domain.Identity) *Client {
	return &Client{
		gateway:  g,
		conn:     conn,
		identity: identity,
		send:     make(chan []byte, g.opts.SendBuffer),
	}
}

func (c *Client) Identity() domain.Identity {
	return c.identity
}

// enqueue never blocks. It reports false when the client is closed or its
// outbound queue is full.
func (c *Client) enqueue(msg []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// close stops the writer. Safe to call more than once.
func (c *Client) close() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	c.closed = true
	close(c.send)
	return true
}

// readPump only exists to process control frames and notice disconnects.
func (c *Client) readPump() {
	defer c.gateway.Unregister(c)

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(c.gateway.opts.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.gateway.opts.PongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("user_id", c.identity.UserID.String()).Msg("realtime read failed")
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(c.gateway.opts.PingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.gateway.opts.WriteTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				connectionsDropped.WithLabelValues("write_error").Inc()
				c.gateway.Unregister(c)
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(c.gateway.opts.WriteTimeout)); err != nil {
				connectionsDropped.WithLabelValues("ping_error").Inc()
				c.gateway.Unregister(c)
				return
			}
		}
	}
}
