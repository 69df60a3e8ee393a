// Copyright 2021 The conf Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package scan

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(src Source) string {
	var sb strings.Builder
	for {
		c := src.Next()
		if c == EOF {
			return sb.String()
		}
		sb.WriteByte(byte(c))
	}
}

func TestBytes(t *testing.T) {
	for _, input := range []string{
		"",
		"a",
		"key=value\n",
		"\x00\xff\n",
	} {
		src := Bytes([]byte(input))
		require.Equal(t, input, drain(src))
		// EOF is sticky
		for i := 0; i < 3; i++ {
			require.Equal(t, EOF, src.Next())
		}
		require.NoError(t, src.Err())
	}
}

func TestBytesHighByteIsNotEOF(t *testing.T) {
	src := Bytes([]byte{0xff})
	require.Equal(t, 0xff, src.Next())
	require.Equal(t, EOF, src.Next())
}

func TestStream(t *testing.T) {
	input := strings.Repeat("abc=1\n", 50000)
	src := Stream(strings.NewReader(input))
	require.Equal(t, input, drain(src))
	require.Equal(t, EOF, src.Next())
	require.NoError(t, src.Err())
}

type failingReader struct {
	data []byte
}

func (r *failingReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, errors.New("read failed")
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestStreamError(t *testing.T) {
	src := Stream(&failingReader{data: []byte("ab")})
	require.Equal(t, "ab", drain(src))
	require.Equal(t, EOF, src.Next())
	assert.EqualError(t, src.Err(), "read failed")
}

func TestStripCR(t *testing.T) {
	for _, testcase := range []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"\r", ""},
		{"a\r\n", "a\n"},
		{"a\r\nb\r\n", "a\nb\n"},
		{"a\r", "a"},
		{"a\rb", "a\rb"},
		{"\r\r\n", "\r\n"},
		{"a\r\r", "a\r"},
		{"a\n\r\n", "a\n\n"},
	} {
		src := StripCR(Bytes([]byte(testcase.input)))
		require.Equal(t, testcase.expected, drain(src), "input %q", testcase.input)
		require.Equal(t, EOF, src.Next())
	}
}

func TestMap(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "test.conf")
	contents := "# comment\nkey=value\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	m, err := Map(path)
	require.NoError(t, err)
	require.Equal(t, contents, drain(Bytes(m.Bytes())))
	require.NoError(t, m.Close())
	// multiple closes should be fine
	require.NoError(t, m.Close())

	empty := filepath.Join(dir, "empty.conf")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	m, err = Map(empty)
	require.NoError(t, err)
	require.Len(t, m.Bytes(), 0)
	require.NoError(t, m.Close())

	_, err = Map(filepath.Join(dir, "does-not-exist.conf"))
	require.Error(t, err)
	require.True(t, errors.Is(err, os.ErrNotExist))
}
