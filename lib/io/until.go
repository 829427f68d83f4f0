package iolib

import (
	"bytes"
	"io"
)

// UntilReader reads lines delimited by a single byte off a stream
// without losing whatever arrived after the delimiter. Over-read
// bytes are buffered and served by the next ReadUntil or Read call,
// so the same reader can hand out the message head line by line and
// then the body.
type UntilReader struct {
	r io.Reader

	buf bytes.Buffer
}

func NewUntilReader(r io.Reader) *UntilReader {
	return &UntilReader{r: r}
}

func (ur *UntilReader) Read(p []byte) (n int, err error) {
	if ur.buf.Len() > 0 {
		n, err = ur.buf.Read(p)
		if err == io.EOF {
			err = nil
		}
		return n, err
	}

	return ur.r.Read(p)
}

// ReadUntil reads up to and including the first occurrence of delim.
// When the underlying reader fails first, the bytes read so far are
// returned along with the error. A partial line at end of stream thus
// comes back as (line, io.EOF).
func (ur *UntilReader) ReadUntil(delim byte) ([]byte, error) {
	if idx := bytes.IndexByte(ur.buf.Bytes(), delim); idx >= 0 {
		line := make([]byte, idx+1)
		_, _ = ur.buf.Read(line) // cannot fail, length is known.
		return line, nil
	}

	line := ur.takeBuffered()

	tmp := make([]byte, 512)
	for {
		n, err := ur.r.Read(tmp)
		if n > 0 {
			if idx := bytes.IndexByte(tmp[:n], delim); idx >= 0 {
				line = append(line, tmp[:idx+1]...)
				ur.buf.Write(tmp[idx+1 : n])
				return line, nil
			}
			line = append(line, tmp[:n]...)
		}

		if err != nil {
			return line, err
		}
	}
}

func (ur *UntilReader) takeBuffered() []byte {
	if ur.buf.Len() == 0 {
		return nil
	}

	b := bytes.Clone(ur.buf.Bytes())
	ur.buf.Reset()
	return b
}
