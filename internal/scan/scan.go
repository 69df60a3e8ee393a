// Copyright 2021 The conf Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package scan provides byte-at-a-time sources for the conf parser.
//
// A Source yields one byte per call to Next, then EOF forever.
package scan

import (
	"bufio"
	"errors"
	"io"
)

// EOF is returned by Next once the source is exhausted.  It is distinct
// from every byte value.
const EOF = -1

const defaultBufferSize = 64 * 1024

// Source produces the bytes of a document one at a time.
type Source interface {
	// Next returns the next byte as a value in [0, 255], or EOF.  Calling
	// Next again after EOF keeps returning EOF.
	Next() int
	// Err returns the error that ended the source early, if any.
	Err() error
}

type bytesSource struct {
	data []byte
	off  int
}

// Bytes returns a Source reading from an in-memory buffer.  The buffer must
// not be modified while the source is in use.
func Bytes(data []byte) Source {
	return &bytesSource{data: data}
}

func (s *bytesSource) Next() int {
	if s.off >= len(s.data) {
		return EOF
	}
	c := s.data[s.off]
	s.off++
	return int(c)
}

func (s *bytesSource) Err() error {
	return nil
}

type streamSource struct {
	r   *bufio.Reader
	err error
	eof bool
}

// Stream returns a Source reading from r.  Reads block on r; a read error
// other than io.EOF ends the stream and is reported by Err.
func Stream(r io.Reader) Source {
	return &streamSource{r: bufio.NewReaderSize(r, defaultBufferSize)}
}

func (s *streamSource) Next() int {
	if s.eof {
		return EOF
	}
	c, err := s.r.ReadByte()
	if err != nil {
		s.eof = true
		if !errors.Is(err, io.EOF) {
			s.err = err
		}
		return EOF
	}
	return int(c)
}

func (s *streamSource) Err() error {
	return s.err
}

type stripCR struct {
	src     Source
	pending int
	held    bool
}

// StripCR wraps src so that a carriage return immediately before a line
// feed or the end of input is dropped.  Other carriage returns pass through.
func StripCR(src Source) Source {
	return &stripCR{src: src}
}

func (s *stripCR) Next() int {
	var c int
	if s.held {
		s.held = false
		c = s.pending
	} else {
		c = s.src.Next()
	}
	if c != '\r' {
		return c
	}
	next := s.src.Next()
	if next == '\n' || next == EOF {
		return next
	}
	// a lone CR: hand it out now and look at the byte after it next call
	s.pending = next
	s.held = true
	return c
}

func (s *stripCR) Err() error {
	return s.src.Err()
}
