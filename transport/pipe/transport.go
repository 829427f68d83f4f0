package pipe

import (
	"context"
	"sync"

	"clienter/transport"

	"github.com/benbjohnson/clock"
)

// Transport connects dialers to in-process listeners by address
// string, standing in for a real network in tests.
type Transport struct {
	listeners map[string]*Listener
	clock     clock.Clock

	mu sync.Mutex
}

var _ transport.Dialer = (*Transport)(nil)

func NewTransport(clk clock.Clock) *Transport {
	return &Transport{
		listeners: make(map[string]*Listener),
		clock:     clk,
	}
}

func (t *Transport) Dial(ctx context.Context, addr string) (transport.Conn, error) {
	t.mu.Lock()
	listener, ok := t.listeners[addr]
	t.mu.Unlock()

	if !ok {
		return nil, transport.ErrNetUnreachable
	}

	local, remote := NewPair("dialer", addr, t.clock)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-listener.closed:
		return nil, transport.ErrListenerClosed
	case listener.pending <- remote:
	}

	return local, nil
}

func (t *Transport) Listen(addr string) (*Listener, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.listeners[addr]; ok {
		return nil, transport.ErrAddrAlreadyInUse
	}

	l := &Listener{
		addr:      addr,
		transport: t,
		pending:   make(chan transport.Conn),
		closed:    make(chan struct{}),
	}
	t.listeners[addr] = l

	return l, nil
}

type Listener struct {
	addr      string
	transport *Transport

	pending chan transport.Conn
	closed  chan struct{}

	once sync.Once
}

func (l *Listener) Accept(ctx context.Context) (transport.Conn, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-l.closed:
		return nil, transport.ErrListenerClosed
	case conn := <-l.pending:
		return conn, nil
	}
}

func (l *Listener) Close() error {
	l.once.Do(func() {
		close(l.closed)

		l.transport.mu.Lock()
		delete(l.transport.listeners, l.addr)
		l.transport.mu.Unlock()
	})

	return nil
}
