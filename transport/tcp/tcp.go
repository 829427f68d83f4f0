// Package tcp adapts the operating system's TCP sockets to the
// [transport.Conn] boundary.
package tcp

import (
	"context"
	"net"
	"time"

	"clienter/transport"

	"github.com/pkg/errors"
)

type Dialer struct {
	d net.Dialer
}

var _ transport.Dialer = (*Dialer)(nil)

func NewDialer() *Dialer { return &Dialer{} }

func (d *Dialer) Dial(ctx context.Context, addr string) (transport.Conn, error) {
	nc, err := d.d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "dialing %s", addr)
	}

	return &conn{nc: nc}, nil
}

// Wrap adapts an established [net.Conn] to the transport boundary.
// Useful for conns set up elsewhere, like a finished TLS session.
func Wrap(nc net.Conn) transport.Conn { return &conn{nc: nc} }

type conn struct{ nc net.Conn }

var _ transport.Conn = (*conn)(nil)

func (c *conn) Read(p []byte) (int, error)  { return c.nc.Read(p) }
func (c *conn) Write(p []byte) (int, error) { return c.nc.Write(p) }
func (c *conn) Close() error                { return c.nc.Close() }

func (c *conn) LocalAddr() string  { return c.nc.LocalAddr().String() }
func (c *conn) RemoteAddr() string { return c.nc.RemoteAddr().String() }

func (c *conn) SetReadDeadline(t time.Time)  { _ = c.nc.SetReadDeadline(t) }
func (c *conn) SetWriteDeadline(t time.Time) { _ = c.nc.SetWriteDeadline(t) }
