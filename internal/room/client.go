package room

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"auction-platform/utils"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second

	sendBuffer = 256
)

// Client is one websocket subscription to an auction room.
type Client struct {
	ID        string
	AuctionID string
	UserID    string

	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

// NewClient wraps an upgraded websocket connection for hub registration
func NewClient(id, auctionID, userID string, conn *websocket.Conn) *Client {
	return &Client{
		ID:        id,
		AuctionID: auctionID,
		UserID:    userID,
		conn:      conn,
		send:      make(chan []byte, sendBuffer),
	}
}

// ReadLoop consumes inbound frames until the connection drops, then
// unregisters the client. This is the abrupt-disconnect path: no explicit
// leave message is required. Blocks; run from the connection handler.
func (c *Client) ReadLoop(hub *Hub) {
	defer hub.Leave(c)

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		// inbound payloads are ignored: joining is the only
		// client-initiated action and it happened at upgrade time
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				utils.Warn("websocket read error", map[string]any{
					"client_id":  c.ID,
					"auction_id": c.AuctionID,
					"error":      err.Error(),
				})
			}
			return
		}
	}
}

// writePump drains the send channel to the connection with a ping
// keepalive. Started by the hub on registration.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// close shuts the send channel and connection exactly once
func (c *Client) close() {
	c.once.Do(func() {
		close(c.send)
		c.conn.Close()
	})
}
