package transport

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mcoot/coincollector-go/internal/model"
)

const (
	sendBufferSize = 64
	writeTimeout   = 5 * time.Second
	readLimit      = 4096
)

// WSConn adapts a websocket connection to Conn. Writes go through a
// buffered channel drained by a single pump goroutine, so Send never
// blocks the game loop; when the buffer is full the message is dropped
// in favour of fresher state.
type WSConn struct {
	ws   *websocket.Conn
	send chan []byte

	closeOnce sync.Once
	closed    chan struct{}
}

// NewWSConn wraps ws and starts its write pump.
func NewWSConn(ws *websocket.Conn) *WSConn {
	c := &WSConn{
		ws:     ws,
		send:   make(chan []byte, sendBufferSize),
		closed: make(chan struct{}),
	}
	go c.writePump()
	return c
}

// Send queues data for delivery. It returns ErrConnClosed after Close;
// a full buffer drops the message without error.
func (c *WSConn) Send(data []byte) error {
	select {
	case <-c.closed:
		return model.ErrConnClosed
	default:
	}
	select {
	case c.send <- data:
	default:
		// Snapshots supersede each other, so dropping under backpressure
		// beats stalling the tick.
	}
	return nil
}

// ReadLoop reads text frames until the connection fails or closes,
// passing each payload to onMessage. It always returns the terminal
// read error.
func (c *WSConn) ReadLoop(onMessage func(data []byte)) error {
	c.ws.SetReadLimit(readLimit)
	for {
		_, payload, err := c.ws.ReadMessage()
		if err != nil {
			return err
		}
		onMessage(payload)
	}
}

// Close shuts down the write pump and the underlying connection. It is
// safe to call more than once.
func (c *WSConn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closed)
		err = c.ws.Close()
	})
	return err
}

func (c *WSConn) writePump() {
	for {
		select {
		case <-c.closed:
			return
		case msg := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				_ = c.Close()
				return
			}
		}
	}
}
