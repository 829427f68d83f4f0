// Command fetch issues a single HTTP request and prints the response.
//
//	fetch [-method GET] [-timeout 10s] [-v] http://example.com/path
package main

import (
	"context"
	"crypto/tls"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"clienter/client"
	"clienter/http"
	"clienter/transport"
	"clienter/transport/tcp"

	"github.com/benbjohnson/clock"
)

func main() {
	method := flag.String("method", "GET", "request method")
	timeout := flag.Duration("timeout", 10*time.Second, "dial timeout")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: fetch [flags] <url>")
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	c := client.New(tcp.NewDialer(), logger, clock.New(), client.Options{
		SecureDialer: &tlsDialer{},
		DialTimeout:  *timeout,
	})

	request, err := client.NewRequest(http.Method(*method), flag.Arg(0))
	if err != nil {
		logger.Error("building request", slog.Any("error", err))
		os.Exit(1)
	}
	request.Headers.Insert("Host", request.URI.Host)

	response, err := c.Send(context.Background(), request)
	if err != nil {
		logger.Error("sending request", slog.Any("error", err))
		os.Exit(1)
	}

	fmt.Printf("Status: %s\n\n", response.Status)
	for _, field := range response.Headers.Fields() {
		fmt.Printf("%s: %s\n", field[0], field[1])
	}

	body, err := response.Body.Text()
	if err != nil {
		logger.Error("reading body", slog.Any("error", err))
		os.Exit(1)
	}
	fmt.Printf("\n%s\n", body)
}

// tlsDialer hands the client an already-established encrypted
// connection. The handshake is entirely the standard library's
// business.
type tlsDialer struct {
	d tls.Dialer
}

func (t *tlsDialer) Dial(ctx context.Context, addr string) (transport.Conn, error) {
	nc, err := t.d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}

	return tcp.Wrap(nc), nil
}
