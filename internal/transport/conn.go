package transport

// Conn is a one-way outbound message sink for a connected peer. Send must
// not block the caller; implementations drop or fail instead.
type Conn interface {
	Send(data []byte) error
	Close() error
}
