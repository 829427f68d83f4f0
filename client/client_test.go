package client

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"clienter/http"
	"clienter/transport"
	"clienter/transport/pipe"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type ClientTestSuite struct {
	suite.Suite

	transport *pipe.Transport
	client    *Client

	wg sync.WaitGroup
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) SetupTest() {
	s.transport = pipe.NewTransport(clock.New())
	s.client = New(s.transport, nil, nil, Options{})
}

func (s *ClientTestSuite) TearDownTest() {
	s.wg.Wait()
}

// serve accepts one connection, reads the full request head and
// replies with raw. The received head lands in the returned buffer
// once the server goroutine is done.
func (s *ClientTestSuite) serve(addr, raw string) *bytes.Buffer {
	listener, err := s.transport.Listen(addr)
	s.Require().NoError(err)

	head := bytes.NewBuffer(nil)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer listener.Close()

		conn, err := listener.Accept(context.Background())
		if err != nil {
			return
		}
		defer conn.Close()

		buf := make([]byte, 4096)
		for !bytes.Contains(head.Bytes(), []byte("\r\n\r\n")) {
			n, err := conn.Read(buf)
			if err != nil {
				return
			}
			head.Write(buf[:n])
		}

		if _, err := conn.Write([]byte(raw)); err != nil {
			return
		}
	}()

	return head
}

func (s *ClientTestSuite) TestSend() {
	head := s.serve("example.com:80",
		"HTTP/1.1 200 OK\r\n"+
			"Content-Type: text/plain\r\n"+
			"Content-Length: 5\r\n"+
			"\r\n"+
			"hello",
	)

	request, err := NewRequest(http.MethodGet, "http://example.com/greeting")
	s.Require().NoError(err)
	request.Headers.Insert("Host", "example.com")

	response, err := s.client.Send(context.Background(), request)
	s.Require().NoError(err)

	s.Equal(http.StatusOK, response.Status)
	s.True(response.Status.IsSuccess())

	v, ok := response.Headers.Get("Content-Type")
	s.Require().True(ok)
	s.Equal("text/plain", v)

	body, err := response.Body.Text()
	s.Require().NoError(err)
	s.Equal("hello", body)

	s.wg.Wait()

	// What went over the wire: request line, default headers with
	// the per-request Host override, double terminator.
	sent := head.String()
	s.True(strings.HasPrefix(sent, "GET /greeting HTTP/1.1\r\n"))
	s.Contains(sent, "Host: example.com\r\n")
	s.Contains(sent, "User-Agent: clienter/1.0 (Go)\r\n")
	s.Contains(sent, "Connection: keep-alive\r\n")
	s.True(strings.HasSuffix(sent, "\r\n\r\n\r\n"))
}

func (s *ClientTestSuite) TestSendEncodedTarget() {
	head := s.serve("example.com:80",
		"HTTP/1.1 200 OK\r\nContent-Length: 0\r\n\r\n")

	request, err := NewRequest(http.MethodGet, "http://example.com/a b")
	s.Require().NoError(err)

	response, err := s.client.Send(context.Background(), request)
	s.Require().NoError(err)
	s.NoError(response.Close())

	s.wg.Wait()
	s.True(strings.HasPrefix(head.String(), "GET /a%20b HTTP/1.1\r\n"))
}

func (s *ClientTestSuite) TestSendBodyUntilClose() {
	s.serve("example.com:80",
		"HTTP/1.1 200 OK\r\n\r\neverything until the peer hangs up")

	request, err := NewRequest(http.MethodGet, "http://example.com")
	s.Require().NoError(err)

	response, err := s.client.Send(context.Background(), request)
	s.Require().NoError(err)

	body, err := response.Body.Bytes()
	s.Require().NoError(err)
	s.Equal("everything until the peer hangs up", string(body))
}

func (s *ClientTestSuite) TestSendShortBody() {
	s.serve("example.com:80",
		"HTTP/1.1 200 OK\r\nContent-Length: 50\r\n\r\nonly this much")

	request, err := NewRequest(http.MethodGet, "http://example.com")
	s.Require().NoError(err)

	response, err := s.client.Send(context.Background(), request)
	s.Require().NoError(err)

	_, err = response.Body.Bytes()
	s.ErrorIs(err, http.ErrInvalidBody)
}

func (s *ClientTestSuite) TestSendMalformedStatusLine() {
	s.serve("example.com:80", "garbage\r\n\r\n")

	request, err := NewRequest(http.MethodGet, "http://example.com")
	s.Require().NoError(err)

	_, err = s.client.Send(context.Background(), request)
	s.Require().Error(err)

	// The boundary kind is Unknown but the specific wire error is
	// still reachable underneath.
	var sendErr *Error
	s.Require().ErrorAs(err, &sendErr)
	s.Equal(KindUnknown, sendErr.Kind)
	s.ErrorIs(err, http.ErrInvalidStatusLine)
}

func (s *ClientTestSuite) TestSendConnectionFailed() {
	request, err := NewRequest(http.MethodGet, "http://nobody-listens.example")
	s.Require().NoError(err)

	_, err = s.client.Send(context.Background(), request)

	var sendErr *Error
	s.Require().ErrorAs(err, &sendErr)
	s.Equal(KindConnectionFailed, sendErr.Kind)
	s.ErrorIs(err, transport.ErrNetUnreachable)
}

func (s *ClientTestSuite) TestSendHTTPSWithoutSecureDialer() {
	request, err := NewRequest(http.MethodGet, "https://example.com")
	s.Require().NoError(err)

	_, err = s.client.Send(context.Background(), request)

	var sendErr *Error
	s.Require().ErrorAs(err, &sendErr)
	s.Equal(KindConnectionFailed, sendErr.Kind)
}

func (s *ClientTestSuite) TestSendHTTPSUsesSecureDialer() {
	s.client = New(s.transport, nil, nil, Options{SecureDialer: s.transport})

	head := s.serve("example.com:443",
		"HTTP/1.1 200 OK\r\nContent-Length: 0\r\n\r\n")

	request, err := NewRequest(http.MethodGet, "https://example.com")
	s.Require().NoError(err)

	response, err := s.client.Send(context.Background(), request)
	s.Require().NoError(err)
	s.NoError(response.Close())

	s.wg.Wait()
	// The https request line declares its own version label.
	s.True(strings.HasPrefix(head.String(), "GET / HTTP/2\r\n"))
}

func (s *ClientTestSuite) TestNewRequestInvalidURI() {
	_, err := NewRequest(http.MethodGet, "ftp://example.com")

	var sendErr *Error
	s.Require().ErrorAs(err, &sendErr)
	s.Equal(KindInvalidURI, sendErr.Kind)
}

func (s *ClientTestSuite) TestSendMissingHost() {
	request := &Request{Method: http.MethodGet}

	_, err := s.client.Send(context.Background(), request)

	var sendErr *Error
	s.Require().ErrorAs(err, &sendErr)
	s.Equal(KindInvalidURI, sendErr.Kind)
}

func (s *ClientTestSuite) TestHeaderOverride() {
	head := s.serve("example.com:80",
		"HTTP/1.1 200 OK\r\nContent-Length: 0\r\n\r\n")

	request, err := NewRequest(http.MethodGet, "http://example.com")
	s.Require().NoError(err)
	request.Headers.Insert("User-Agent", "custom/2.0")

	response, err := s.client.Send(context.Background(), request)
	s.Require().NoError(err)
	s.NoError(response.Close())

	s.wg.Wait()
	sent := head.String()
	s.Contains(sent, "User-Agent: custom/2.0\r\n")
	s.NotContains(sent, "clienter/1.0")
}
