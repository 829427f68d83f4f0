package http

import (
	"bufio"
	"bytes"
	"io"

	"github.com/pkg/errors"
)

// Request is the serialized form of one exchange: the request line
// plus the combined header set. Bodies are not part of this client.
type Request struct {
	Method  Method
	Target  string // absolute path, including the leading slash.
	Version Version

	Headers Headers
}

// RequestLine renders "{METHOD} {target} {VERSION}".
func (r *Request) RequestLine() []byte {
	buf := bytes.NewBuffer(nil)
	buf.WriteString(string(r.Method))
	buf.WriteByte(SP)
	buf.WriteString(r.Target)
	buf.WriteByte(SP)
	buf.WriteString(string(r.Version))
	return buf.Bytes()
}

type RequestEncoder struct {
	bw *bufio.Writer
}

func NewRequestEncoder(w io.Writer) *RequestEncoder {
	return &RequestEncoder{bw: bufio.NewWriter(w)}
}

// Encode writes the request head and flushes it. The blank line
// terminating the head is written twice, for servers expecting either
// one or two terminators.
func (re *RequestEncoder) Encode(request *Request) error {
	if err := re.writeLine(request.RequestLine()); err != nil {
		return errors.Wrap(err, "writing request line")
	}

	for _, field := range request.Headers.Fields() {
		line := []byte(field[0] + ": " + field[1])
		if err := re.writeLine(line); err != nil {
			return errors.Wrap(err, "writing field")
		}
	}

	if err := re.writeLine(nil); err != nil {
		return errors.Wrap(err, "terminating head")
	}
	if err := re.writeLine(nil); err != nil {
		return errors.Wrap(err, "terminating head")
	}

	if err := re.bw.Flush(); err != nil {
		return errors.Wrap(err, "flushing request head")
	}

	return nil
}

func (re *RequestEncoder) writeLine(line []byte) error {
	if _, err := re.bw.Write(line); err != nil {
		return err
	}

	_, err := re.bw.Write(CRLF)
	return err
}
