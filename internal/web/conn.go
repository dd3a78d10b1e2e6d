package web

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/tomz197/skyshooter/internal/draw"
	"github.com/tomz197/skyshooter/internal/loop"
	"github.com/tomz197/skyshooter/internal/loop/config"
	"github.com/tomz197/skyshooter/internal/loop/server"
	"github.com/tomz197/skyshooter/internal/object"
)

// conn is one browser playing one game.
type conn struct {
	id      uuid.UUID
	ws      *websocket.Conn
	handle  *server.ClientHandle
	session *loop.Session
	log     *log.Logger

	send chan []byte
	done chan struct{} // Closed when the read side ends

	mu        sync.Mutex
	keys      object.Input
	lastInput atomic.Int64 // Unix nanoseconds
}

func newConn(id uuid.UUID, ws *websocket.Conn, handle *server.ClientHandle, logger *log.Logger) *conn {
	c := &conn{
		id:     id,
		ws:     ws,
		handle: handle,
		log:    logger,
		send:   make(chan []byte, sendBuffer),
		done:   make(chan struct{}),
	}
	c.lastInput.Store(time.Now().UnixNano())
	return c
}

// readPump reads client messages until the socket fails or closes.
func (c *conn) readPump() {
	defer func() {
		close(c.done)
		c.ws.Close()
	}()

	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warn("WebSocket read failed", "err", err)
			}
			return
		}
		var msg ClientMsg
		if err := msgpack.Unmarshal(data, &msg); err != nil {
			c.log.Debug("Dropping malformed message", "err", err)
			continue
		}
		c.handleMsg(msg)
	}
}

func (c *conn) handleMsg(msg ClientMsg) {
	c.lastInput.Store(time.Now().UnixNano())
	switch msg.Type {
	case MsgTypeKeys:
		c.mu.Lock()
		c.keys = msg.Keys.Input()
		c.mu.Unlock()
	case MsgTypeCharge:
		c.session.ConsumeCharge()
	case MsgTypeRestart:
		if c.session.GameOver() {
			c.session.Restart()
		}
	}
}

func (c *conn) input() object.Input {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.keys
}

// run ticks the game and queues a frame per tick. It owns c.send and closes
// it on return, which makes writePump say goodbye.
func (c *conn) run() {
	defer close(c.send)

	ticker := time.NewTicker(config.TickTime)
	defer ticker.Stop()

	var rec draw.Recorder
	var shutdown <-chan time.Time

	for {
		select {
		case <-c.done:
			return
		case <-shutdown:
			return
		case ev, ok := <-c.handle.EventsCh:
			if !ok {
				return
			}
			if ev.Type == server.EventServerShutdown && shutdown == nil {
				c.queue(ShutdownMsg{Type: MsgTypeShutdown, Seconds: int(config.ShutdownDisplaySeconds)})
				shutdown = time.After(time.Duration(config.ShutdownDisplaySeconds * float64(time.Second)))
			}
		case <-ticker.C:
			if time.Since(time.Unix(0, c.lastInput.Load())).Seconds() > config.InactivityDisconnectUser {
				c.log.Info("Disconnecting inactive browser")
				return
			}
			c.session.Frame(c.input())
			rec.Reset()
			c.session.Draw(&rec)
			c.queue(FrameMsg{Type: MsgTypeFrame, Commands: rec.Commands, Stats: c.session.Stats()})
		}
	}
}

// queue encodes msg and hands it to the writer, dropping it when the browser
// is not keeping up.
func (c *conn) queue(msg any) {
	data, err := msgpack.Marshal(msg)
	if err != nil {
		c.log.Error("Failed to encode message", "err", err)
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

// writePump sends queued messages and keepalive pings.
func (c *conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.BinaryMessage, message); err != nil {
				c.log.Debug("WebSocket write failed", "err", err)
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
