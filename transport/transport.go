// Package transport defines the byte-duplex connection boundary the
// client core runs on. Establishing connections, including any secure
// channel setup, happens behind the [Dialer] interface.
package transport

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrConnClosed       = errors.New("connection is closed")
	ErrDeadlineExceeded = errors.New("deadline exceeded")
	ErrNetUnreachable   = errors.New("address is unreachable")
	ErrListenerClosed   = errors.New("listener is closed")
	ErrAddrAlreadyInUse = errors.New("address is already in use")
)

type Conn interface {
	Read(p []byte) (n int, err error)
	Write(p []byte) (n int, err error)
	Close() error

	LocalAddr() string
	RemoteAddr() string

	SetReadDeadline(t time.Time)
	SetWriteDeadline(t time.Time)
}

// Dialer opens a connection to a "host:port" address. The context
// bounds connection establishment only, not reads or writes on the
// returned conn.
type Dialer interface {
	Dial(ctx context.Context, addr string) (Conn, error)
}
