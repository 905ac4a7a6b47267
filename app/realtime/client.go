package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Rakhulsr/go-cosmetics/app/logger"
	"github.com/gorilla/websocket"
)

const snapshotTimeout = 5 * time.Second

// Client is one websocket connection. userID is set once the auth frame
// succeeds and only read by the hub after registration.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	userID string

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

func (c *Client) enqueue(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
		logger.Warn("Client.enqueue: send buffer full, dropping frame", "user_id", c.userID)
	}
}

func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (c *Client) reply(f outboundFrame) {
	data, err := json.Marshal(f)
	if err != nil {
		logger.Error("Client.reply: marshal failed", "type", f.Type, "error", err)
		return
	}
	c.enqueue(data)
}

func (c *Client) fail(msg string) {
	c.reply(outboundFrame{Type: FrameError, Message: msg})
}

func (c *Client) readPump() {
	defer func() {
		if c.userID != "" {
			c.hub.remove(c)
		} else {
			c.closeSend()
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("Client.readPump: unexpected close", "user_id", c.userID, "error", err)
			}
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(msg, &frame); err != nil {
			c.fail("Invalid message")
			continue
		}
		c.handle(frame)
	}
}

func (c *Client) handle(frame inboundFrame) {
	switch frame.Type {
	case FrameAuth:
		c.authenticate(frame)
	case FrameSyncRequest:
		if c.userID == "" {
			c.fail("Not authenticated")
			return
		}
		c.sync()
	case FrameUpdate:
		if c.userID == "" {
			c.fail("Not authenticated")
			return
		}
		if frame.Action == "" {
			c.fail("Missing action")
			return
		}
		data, err := json.Marshal(outboundFrame{Type: frame.Action, Payload: frame.Payload})
		if err != nil {
			c.fail("Invalid payload")
			return
		}
		c.hub.relay(c, data)
	default:
		c.fail("Unknown message type")
	}
}

func (c *Client) authenticate(frame inboundFrame) {
	claims, err := c.hub.tokens.Validate(frame.Token)
	if err != nil {
		c.fail("Invalid token")
		return
	}
	if frame.UserID != "" && frame.UserID != claims.ID {
		c.fail("User mismatch")
		return
	}
	if c.userID != "" {
		if c.userID != claims.ID {
			c.fail("Already authenticated")
			return
		}
		c.reply(outboundFrame{Type: FrameAuthOK})
		return
	}

	c.userID = claims.ID
	if !c.hub.add(c) {
		c.userID = ""
		c.fail("Server shutting down")
		return
	}
	c.reply(outboundFrame{Type: FrameAuthOK})
}

func (c *Client) sync() {
	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()

	snapshot, err := c.hub.snapshots.Snapshot(ctx, c.userID)
	if err != nil {
		logger.Warn("Client.sync: snapshot failed", "user_id", c.userID, "error", err)
		c.fail("Failed to load data")
		return
	}
	c.reply(outboundFrame{Type: FrameSyncData, Payload: snapshot})
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
