// Package pipe provides synchronous in-memory connections. It exists
// for tests that need both ends of a conversation in one process.
package pipe

import (
	"bytes"
	"io"
	"sync"
	"time"

	"clienter/transport"

	"github.com/benbjohnson/clock"
)

type conn struct {
	name string
	peer string

	in  chan []byte
	out chan []byte

	leftover []byte

	closed     chan struct{}
	peerClosed chan struct{}
	once       *sync.Once

	clock clock.Clock

	mu        sync.Mutex
	rdeadline time.Time
	wdeadline time.Time
}

var _ transport.Conn = (*conn)(nil)

// NewPair creates two connected conns. A write on one side blocks
// until the other side reads it.
func NewPair(name1, name2 string, clk clock.Clock) (transport.Conn, transport.Conn) {
	ch12 := make(chan []byte)
	ch21 := make(chan []byte)
	closed1 := make(chan struct{})
	closed2 := make(chan struct{})

	c1 := &conn{
		name: name1, peer: name2,
		in: ch21, out: ch12,
		closed: closed1, peerClosed: closed2,
		once:  new(sync.Once),
		clock: clk,
	}
	c2 := &conn{
		name: name2, peer: name1,
		in: ch12, out: ch21,
		closed: closed2, peerClosed: closed1,
		once:  new(sync.Once),
		clock: clk,
	}

	return c1, c2
}

func (c *conn) Read(p []byte) (int, error) {
	if len(c.leftover) > 0 {
		n := copy(p, c.leftover)
		c.leftover = c.leftover[n:]
		return n, nil
	}

	timeout, err := c.timeoutChan(c.readDeadline())
	if err != nil {
		return 0, err
	}

	select {
	case <-c.closed:
		return 0, transport.ErrConnClosed
	default:
	}

	select {
	case data := <-c.in:
		n := copy(p, data)
		c.leftover = data[n:]
		return n, nil
	case <-c.closed:
		return 0, transport.ErrConnClosed
	case <-c.peerClosed:
		// Peer hung up and nothing is in flight. End of stream.
		return 0, io.EOF
	case <-timeout:
		return 0, transport.ErrDeadlineExceeded
	}
}

func (c *conn) Write(p []byte) (int, error) {
	timeout, err := c.timeoutChan(c.writeDeadline())
	if err != nil {
		return 0, err
	}

	data := bytes.Clone(p)

	select {
	case c.out <- data:
		return len(p), nil
	case <-c.closed:
		return 0, transport.ErrConnClosed
	case <-c.peerClosed:
		return 0, transport.ErrConnClosed
	case <-timeout:
		return 0, transport.ErrDeadlineExceeded
	}
}

func (c *conn) Close() error {
	c.once.Do(func() { close(c.closed) })
	return nil
}

func (c *conn) LocalAddr() string  { return c.name }
func (c *conn) RemoteAddr() string { return c.peer }

func (c *conn) SetReadDeadline(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rdeadline = t
}

func (c *conn) SetWriteDeadline(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.wdeadline = t
}

func (c *conn) readDeadline() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rdeadline
}

func (c *conn) writeDeadline() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.wdeadline
}

// timeoutChan returns a channel firing at the deadline, or nil (never
// fires) when no deadline is set.
func (c *conn) timeoutChan(deadline time.Time) (<-chan time.Time, error) {
	if deadline.IsZero() {
		return nil, nil
	}

	wait := deadline.Sub(c.clock.Now())
	if wait <= 0 {
		return nil, transport.ErrDeadlineExceeded
	}

	return c.clock.After(wait), nil
}
