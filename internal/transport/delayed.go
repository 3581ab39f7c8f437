package transport

import (
	"time"
)

// DelayedConn wraps a Conn so that outbound messages sit in a delay
// queue before reaching the wire. The owner calls Flush on its tick to
// release messages whose delay has elapsed.
type DelayedConn struct {
	conn  Conn
	queue *DelayQueue[[]byte]
}

// NewDelayedConn wraps conn with a fixed outbound delay.
func NewDelayedConn(conn Conn, delay time.Duration) *DelayedConn {
	return &DelayedConn{
		conn:  conn,
		queue: NewDelayQueue[[]byte](delay),
	}
}

// Enqueue schedules a message for delivery after the delay.
func (c *DelayedConn) Enqueue(now time.Time, data []byte) {
	c.queue.Push(now, data)
}

// Flush sends every message whose delay has elapsed. It stops at the
// first send failure and returns that error; earlier messages have
// already gone out.
func (c *DelayedConn) Flush(now time.Time) error {
	for _, data := range c.queue.PopReady(now) {
		if err := c.conn.Send(data); err != nil {
			return err
		}
	}
	return nil
}

// Pending returns the number of messages still delayed.
func (c *DelayedConn) Pending() int {
	return c.queue.Len()
}

// Close discards pending messages and closes the underlying conn.
func (c *DelayedConn) Close() error {
	c.queue.Clear()
	return c.conn.Close()
}
