package websocket

import (
	"time"

	"github.com/google/uuid"
	gwebsocket "github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 1024 * 1024

	// Outbound messages are buffered up to this size; a client that
	// falls this far behind is dropped.
	sendQueueSize = 256
)

// Client is a single websocket connection inside a room.
type Client struct {
	ID uuid.UUID

	conn *gwebsocket.Conn
	send chan []byte
}

func NewClient(conn *gwebsocket.Conn) *Client {
	return &Client{
		ID:   uuid.New(),
		conn: conn,
		send: make(chan []byte, sendQueueSize),
	}
}

// writePump pumps queued messages to the websocket connection.
// It is the only writer on the connection, which also makes it
// responsible for pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The room closed the queue.
				c.conn.WriteMessage(gwebsocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(gwebsocket.BinaryMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(gwebsocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
