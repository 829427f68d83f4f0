package iolib

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunkReader returns at most one byte per Read call, forcing
// ReadUntil to cross read boundaries.
type chunkReader struct{ s string }

func (cr *chunkReader) Read(p []byte) (int, error) {
	if len(cr.s) == 0 {
		return 0, io.EOF
	}
	p[0] = cr.s[0]
	cr.s = cr.s[1:]
	return 1, nil
}

func TestReadUntil(t *testing.T) {
	testcases := []struct {
		desc     string
		input    string
		expected []string
		wantErr  error
	}{
		{
			desc:     "two lines",
			input:    "hello\nworld\n",
			expected: []string{"hello\n", "world\n"},
		},
		{
			desc:     "partial last line",
			input:    "hello\nwor",
			expected: []string{"hello\n", "wor"},
			wantErr:  io.EOF,
		},
		{
			desc:     "empty line",
			input:    "\nrest\n",
			expected: []string{"\n", "rest\n"},
		},
		{
			desc:     "no delimiter at all",
			input:    "hello",
			expected: []string{"hello"},
			wantErr:  io.EOF,
		},
	}
	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			ur := NewUntilReader(strings.NewReader(tc.input))

			for i, want := range tc.expected {
				line, err := ur.ReadUntil('\n')
				if i == len(tc.expected)-1 && tc.wantErr != nil {
					assert.ErrorIs(t, err, tc.wantErr)
				} else {
					require.NoError(t, err)
				}
				assert.Equal(t, want, string(line))
			}
		})
	}
}

func TestReadUntilChunked(t *testing.T) {
	ur := NewUntilReader(&chunkReader{s: "a\nbb\nccc"})

	line, err := ur.ReadUntil('\n')
	require.NoError(t, err)
	assert.Equal(t, "a\n", string(line))

	line, err = ur.ReadUntil('\n')
	require.NoError(t, err)
	assert.Equal(t, "bb\n", string(line))

	line, err = ur.ReadUntil('\n')
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "ccc", string(line))
}

func TestReadServesLeftover(t *testing.T) {
	ur := NewUntilReader(strings.NewReader("head\nbody bytes"))

	line, err := ur.ReadUntil('\n')
	require.NoError(t, err)
	assert.Equal(t, "head\n", string(line))

	rest, err := io.ReadAll(ur)
	require.NoError(t, err)
	assert.Equal(t, "body bytes", string(rest))
}

func TestLimitedReader(t *testing.T) {
	lr := LimitReader(strings.NewReader("0123456789"), 4)

	b, err := io.ReadAll(lr)
	require.NoError(t, err)
	assert.Equal(t, "0123", string(b))

	n, err := lr.Read(make([]byte, 1))
	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.EOF)
}
