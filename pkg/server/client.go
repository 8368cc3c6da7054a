package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

var clientSeq atomic.Uint64

// client is one WebSocket connection.
type client struct {
	id   uint64
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func newClient(conn *websocket.Conn, buffer int) *client {
	return &client{
		id:   clientSeq.Add(1),
		conn: conn,
		send: make(chan []byte, buffer),
		done: make(chan struct{}),
	}
}

// enqueue queues a frame without blocking. It reports false when the
// client's buffer is full.
func (c *client) enqueue(frame []byte) bool {
	select {
	case <-c.done:
		return true
	default:
	}
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()
	if !started {
		http.Error(w, ErrNotStarted.Error(), http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := newClient(conn, s.config.SendBuffer)
	s.addClient(c)
	s.logger.Info("client connected", "client", c.id, "remote", r.RemoteAddr)

	go s.writeLoop(c)
	s.readLoop(c)
}

// readLoop reads event messages until the connection fails.
func (s *Server) readLoop(c *client) {
	defer func() {
		s.removeClient(c)
		c.close()
		s.logger.Info("client disconnected", "client", c.id)
	}()

	c.conn.SetReadLimit(s.config.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "client", c.id, "error", err)
			}
			return
		}
		c.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))

		var msg EventMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.logger.Warn("message decode error", "client", c.id, "error", err)
			continue
		}
		if msg.Type != TypeEvent {
			s.logger.Warn("unknown message type", "client", c.id, "type", msg.Type)
			continue
		}

		if err := s.disp.Post(func() { s.handleEvent(c, msg) }); err != nil {
			s.logger.Warn("event dropped", "client", c.id, "event", msg.Event, "error", err)
			s.observeEvent(msg.Event, "dropped")
		}
	}
}

// writeLoop sends queued frames and heartbeats.
func (s *Server) writeLoop(c *client) {
	ticker := time.NewTicker(s.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case frame := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				s.logger.Debug("write error", "client", c.id, "error", err)
				c.close()
				return
			}

		case <-ticker.C:
			deadline := time.Now().Add(s.config.WriteTimeout)
			if err := c.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				c.close()
				return
			}

		case <-c.done:
			return
		}
	}
}
