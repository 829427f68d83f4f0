// Package client orchestrates one HTTP exchange per connection:
// resolve the address, dial, write the request head, decode the
// response. There is no pooling. Every send owns its connection for
// the lifetime of that exchange and the connection is dropped once
// the response body is consumed or discarded.
package client

import (
	"context"
	"io"
	"log/slog"
	"time"

	"clienter/http"
	"clienter/transport"
	"clienter/uri"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
)

// Request is one exchange to be sent. Immutable once built.
type Request struct {
	Method  http.Method
	URI     uri.URI
	Headers http.Headers

	// Timeout overrides the client's dial timeout for this request.
	Timeout time.Duration
}

// NewRequest parses rawURI and builds a GET-style request around it.
func NewRequest(method http.Method, rawURI string) (*Request, error) {
	u, err := uri.Parse(rawURI)
	if err != nil {
		return nil, newError(KindInvalidURI, err)
	}

	return &Request{Method: method, URI: u}, nil
}

// Client issues independent requests. Its configuration is read-only
// during use, so one Client may be shared for non-overlapping sends.
type Client struct {
	dialer transport.Dialer
	secure transport.Dialer

	headers http.Headers
	timeout time.Duration

	logger *slog.Logger
	clock  clock.Clock
}

func New(d transport.Dialer, logger *slog.Logger, clk clock.Clock, opts Options) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if clk == nil {
		clk = clock.New()
	}

	headers := http.DefaultHeaders()
	if opts.Headers != nil {
		headers = *opts.Headers
	}

	return &Client{
		dialer:  d,
		secure:  opts.SecureDialer,
		headers: headers,
		timeout: opts.DialTimeout,
		logger:  logger,
		clock:   clk,
	}
}

// Send performs one full exchange and returns the response with its
// body not yet consumed. Any failure abandons the connection; nothing
// is retried.
func (c *Client) Send(ctx context.Context, request *Request) (*http.Response, error) {
	start := c.clock.Now()

	if request.URI.Host == "" {
		return nil, newError(KindInvalidURI, errors.New("request uri has no host"))
	}
	addr := request.URI.Addr()

	conn, err := c.connect(ctx, request, addr)
	if err != nil {
		return nil, newError(KindConnectionFailed, err)
	}

	wireRequest := &http.Request{
		Method:  request.Method,
		Target:  "/" + request.URI.EncodedPath(),
		Version: http.VersionFor(request.URI.Scheme),
		Headers: http.Combine(c.headers, request.Headers),
	}

	if err := http.NewRequestEncoder(conn).Encode(wireRequest); err != nil {
		_ = conn.Close()
		return nil, newError(KindUnknown, errors.Wrap(err, "writing request head"))
	}

	response := &http.Response{}
	if err := http.NewResponseDecoder(conn).Decode(response); err != nil {
		_ = conn.Close()
		return nil, newError(KindUnknown, errors.Wrap(err, "decoding response head"))
	}

	c.logger.Debug("request sent",
		slog.String("addr", addr),
		slog.String("method", string(request.Method)),
		slog.Uint64("status", uint64(response.Status.Code)),
		slog.Duration("elapsed", c.clock.Since(start)),
	)

	return response, nil
}

func (c *Client) connect(ctx context.Context, request *Request, addr string) (transport.Conn, error) {
	dialer, err := c.dialerFor(request.URI.Scheme)
	if err != nil {
		return nil, err
	}

	// The timeout bounds the connect step only.
	timeout := c.timeout
	if request.Timeout > 0 {
		timeout = request.Timeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	conn, err := dialer.Dial(ctx, addr)
	if err != nil {
		return nil, errors.Wrapf(err, "dialing %s", addr)
	}

	return conn, nil
}

// dialerFor selects the per-scheme connection procedure. The choice
// is closed: only the two known schemes exist.
func (c *Client) dialerFor(scheme uri.Scheme) (transport.Dialer, error) {
	switch scheme {
	case uri.SchemeHTTP:
		return c.dialer, nil
	case uri.SchemeHTTPS:
		if c.secure == nil {
			return nil, errors.New("no secure dialer configured")
		}
		return c.secure, nil
	}
	return nil, errors.Errorf("no dialer for scheme %q", scheme)
}
