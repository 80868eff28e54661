package transport

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nsalerno/voicebridge/internal/event"
	"github.com/nsalerno/voicebridge/internal/session"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Outbound frames buffered per connection before sends start dropping.
	outboundBuffer = 256
)

// Peer wraps a single websocket connection and implements session.Sender.
type Peer struct {
	id     string
	conn   *websocket.Conn
	logger *slog.Logger

	limiter        *limiter
	maxMessageSize int64

	send   chan []byte
	done   chan struct{}
	once   sync.Once
	closed atomic.Bool
}

func newPeer(id string, conn *websocket.Conn, maxMessageSize int64, lim *limiter, logger *slog.Logger) *Peer {
	return &Peer{
		id:             id,
		conn:           conn,
		logger:         logger,
		limiter:        lim,
		maxMessageSize: maxMessageSize,
		send:           make(chan []byte, outboundBuffer),
		done:           make(chan struct{}),
	}
}

// ID returns the opaque connection identifier, unique for the lifetime of
// this connection.
func (p *Peer) ID() string {
	return p.id
}

// Send enqueues one outbound frame. It never blocks: a closed peer or a full
// buffer reports false and the frame is dropped.
func (p *Peer) Send(data []byte) bool {
	if p.closed.Load() {
		return false
	}

	select {
	case p.send <- data:
		return true
	default:
		return false
	}
}

// IsOpen reports whether the connection can still accept frames.
func (p *Peer) IsOpen() bool {
	return !p.closed.Load()
}

func (p *Peer) shutdown() {
	p.once.Do(func() {
		p.closed.Store(true)
		close(p.done)
	})
}

// readPump reads inbound frames, decodes them, and dispatches to the router.
// It owns the connection's read side; on exit it tears the connection down
// and reports the disconnect exactly once.
func (p *Peer) readPump(router *session.Router) {
	defer func() {
		p.shutdown()
		router.Disconnect(p.id)
		p.conn.Close()
	}()

	p.conn.SetReadLimit(p.maxMessageSize)
	p.conn.SetReadDeadline(time.Now().Add(pongWait))
	p.conn.SetPongHandler(func(string) error {
		p.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				p.logger.Warn("read error", "conn_id", p.id, "error", err)
			}
			return
		}

		if p.limiter != nil && !p.limiter.allow() {
			p.logger.Warn("rate limit exceeded, dropping frame", "conn_id", p.id)
			continue
		}

		env, err := event.Decode(data)
		if err != nil {
			p.logger.Warn("undecodable frame", "conn_id", p.id, "error", err)
			p.sendError("Invalid message format")
			continue
		}

		router.Dispatch(p.id, p, env)
	}
}

// writePump owns the connection's write side: it drains the outbound buffer
// and keeps the connection alive with pings.
func (p *Peer) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		p.shutdown()
		p.conn.Close()
	}()

	for {
		select {
		case data := <-p.send:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				p.logger.Debug("write error", "conn_id", p.id, "error", err)
				return
			}

		case <-ticker.C:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-p.done:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			p.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

func (p *Peer) sendError(msg string) {
	data, err := event.Encode(event.TypeError, event.ErrorPayload{Message: msg})
	if err != nil {
		return
	}
	p.Send(data)
}
