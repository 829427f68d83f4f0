package http

import (
	"bytes"
	"io"
	"strconv"
	"unicode/utf8"

	iolib "clienter/lib/io"

	"github.com/pkg/errors"
)

var (
	ErrInvalidStatusLine = errors.New("status line is malformed")
	ErrInvalidHeader     = errors.New("header line is malformed")
	ErrInvalidBody       = errors.New("body could not be read")
)

// Response is the decoded head of a server reply. Body is a lazy
// cursor over the rest of the connection. It has not been touched
// when Decode returns.
type Response struct {
	Status  Status
	Headers Headers

	Body *Body
}

// Close drops the connection without consuming the body.
func (r *Response) Close() error { return r.Body.discard() }

// ResponseDecoder decodes status line, header block and body framing
// off a byte stream, in that order. It never backtracks. A framing
// error leaves the stream position unusable.
type ResponseDecoder struct {
	r *iolib.UntilReader

	closer io.Closer
}

// NewResponseDecoder wraps the stream the response arrives on. When r
// also implements [io.Closer], the connection is closed once the body
// is consumed or the response discarded.
func NewResponseDecoder(r io.Reader) *ResponseDecoder {
	rd := &ResponseDecoder{r: iolib.NewUntilReader(r)}
	if c, ok := r.(io.Closer); ok {
		rd.closer = c
	}
	return rd
}

// Decode consumes exactly the status line and header block.
func (rd *ResponseDecoder) Decode(response *Response) error {
	if err := rd.decodeStatusLine(&response.Status); err != nil {
		return err
	}

	if err := rd.decodeHeaders(&response.Headers); err != nil {
		return err
	}

	response.Body = &Body{
		r:      rd.r,
		length: contentLength(response.Headers),
		closer: rd.closer,
	}

	return nil
}

// readLine reads raw bytes until LF or end of stream and trims the
// surrounding whitespace, which also removes a preceding CR. End of
// stream is reported as io.EOF along with whatever was read. The
// caller decides whether a truncated line is an error for its state.
func (rd *ResponseDecoder) readLine() ([]byte, error) {
	line, err := rd.r.ReadUntil(LF)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	return bytes.TrimSpace(line), err
}

func (rd *ResponseDecoder) decodeStatusLine(status *Status) error {
	line, err := rd.readLine()
	if err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrap(err, "reading status line")
	}
	if len(line) == 0 {
		// Includes the stream ending before a status line arrived.
		return ErrInvalidStatusLine
	}

	parsed, err := parseStatusLine(line)
	if err != nil {
		return errors.Wrap(ErrInvalidStatusLine, err.Error())
	}

	*status = parsed

	return nil
}

// parseStatusLine splits on the first two spaces into version, code
// and reason phrase. Version and phrase are ignored. The code must
// convert to a registered status.
func parseStatusLine(line []byte) (Status, error) {
	parts := bytes.SplitN(line, []byte{SP}, 3)
	if len(parts) < 3 {
		return Status{}, errors.New("expected three space-delimited parts")
	}

	code, err := strconv.ParseUint(string(parts[1]), 10, 16)
	if err != nil {
		return Status{}, errors.Wrap(err, "parsing status code")
	}

	return FromCode(uint16(code))
}

func (rd *ResponseDecoder) decodeHeaders(headers *Headers) error {
	parsed := NewHeaders(nil)

	for {
		line, err := rd.readLine()
		if err != nil && !errors.Is(err, io.EOF) {
			return errors.Wrap(err, "reading header line")
		}

		if len(line) == 0 {
			// Blank line, or the peer closed after a complete head.
			// Either way the header block is over.
			break
		}

		name, value, found := bytes.Cut(line, []byte{':'})
		if !found {
			return errors.Wrapf(ErrInvalidHeader, "no colon in %q", line)
		}

		// Last occurrence of a duplicate name wins.
		parsed.Insert(
			string(bytes.TrimSpace(name)),
			string(bytes.TrimSpace(value)),
		)

		if err != nil {
			break // Stream ended on a partial final line.
		}
	}

	*headers = parsed

	return nil
}

// contentLength returns the declared body size, or nil when the
// header is absent or unparsable. Nil selects connection-close
// framing.
func contentLength(h Headers) *uint {
	v, ok := h.Get("Content-Length")
	if !ok {
		return nil
	}

	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return nil
	}

	l := uint(n)
	return &l
}

// Body is a single-pass stateful cursor over the remaining connection
// bytes. It is not rewindable. With a known length the cursor is
// bounded to exactly that many bytes; otherwise it runs until the
// peer closes the connection.
type Body struct {
	r      io.Reader
	length *uint
	closer io.Closer

	drained bool
}

// Read streams body bytes, bounded by the declared length if one was
// given. It does not detect short streams. Use [Body.Bytes] for that.
func (b *Body) Read(p []byte) (int, error) {
	return b.reader().Read(p)
}

func (b *Body) reader() io.Reader {
	if b.length != nil {
		b.r = iolib.LimitReader(b.r, *b.length)
		b.length = nil
	}
	return b.r
}

// Bytes drains the remaining body. With Content-Length framing the
// transport closing early is an error, not a short result. Without
// it, whatever arrives before close is the body. The cursor is
// exhausted afterwards and subsequent calls return nothing.
func (b *Body) Bytes() ([]byte, error) {
	if b.drained {
		return nil, nil
	}

	want := b.length

	data, err := io.ReadAll(b.reader())
	if err != nil {
		_ = b.finish()
		return nil, errors.Wrap(ErrInvalidBody, err.Error())
	}

	if want != nil && uint(len(data)) != *want {
		_ = b.finish()
		return nil, errors.Wrapf(ErrInvalidBody,
			"expected %d bytes, transport closed after %d", *want, len(data))
	}

	return data, b.finish()
}

// Text is [Body.Bytes] plus UTF-8 validation.
func (b *Body) Text() (string, error) {
	data, err := b.Bytes()
	if err != nil {
		return "", err
	}

	if !utf8.Valid(data) {
		return "", errors.Wrap(ErrInvalidBody, "body is not valid UTF-8")
	}

	return string(data), nil
}

func (b *Body) finish() error {
	b.drained = true
	if b.closer == nil {
		return nil
	}
	return b.closer.Close()
}

func (b *Body) discard() error {
	if b.drained {
		return nil
	}
	return b.finish()
}
