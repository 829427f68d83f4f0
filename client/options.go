package client

import (
	"time"

	"clienter/http"
	"clienter/transport"
)

type Options struct {
	// SecureDialer serves https requests. It must hand back an
	// already-established encrypted byte-duplex connection; the
	// client performs no handshake of its own. When nil, https
	// requests fail.
	SecureDialer transport.Dialer

	// Headers replaces the baseline header set from
	// [http.DefaultHeaders]. Per-request headers still overlay it.
	Headers *http.Headers

	// DialTimeout bounds connection establishment only. Reads and
	// writes after the connection is up are not limited; a stalled
	// peer blocks the calling goroutine.
	DialTimeout time.Duration
}
