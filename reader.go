// Copyright 2021 The conf Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package conf

import (
	"io"
	"os"

	"github.com/bpowers/conf/internal/scan"
)

// Reader is an immutable, sorted table of the entries of one document.
// Strings returned by a Reader share memory with it.  A Reader is not safe
// for concurrent use with Close.
type Reader struct {
	entries []entry
}

// Parse reads a document that is already in memory.
func Parse(data []byte, opts ...Option) (*Reader, error) {
	return read(scan.Bytes(data), "memory", opts)
}

// NewReader reads a document from r until EOF.
func NewReader(r io.Reader, opts ...Option) (*Reader, error) {
	return read(scan.Stream(r), "stream", opts)
}

// Open reads the document in the file at path.
func Open(path string, opts ...Option) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newError(FileOpenFailure, 0, err)
	}
	defer func() {
		_ = f.Close()
	}()

	return read(scan.Stream(f), path, opts)
}

// OpenMapped is like Open, but memory-maps the file instead of reading it
// through a buffer.  The mapping is released before OpenMapped returns.
func OpenMapped(path string, opts ...Option) (*Reader, error) {
	m, err := scan.Map(path)
	if err != nil {
		return nil, newError(FileOpenFailure, 0, err)
	}
	defer func() {
		_ = m.Close()
	}()

	return read(scan.Bytes(m.Bytes()), path, opts)
}

func read(src scan.Source, name string, opts []Option) (*Reader, error) {
	o := newOptions(opts)
	if o.stripCR {
		src = scan.StripCR(src)
	}

	p := newParser(src, &o)
	entries, err := p.parse()
	if err != nil {
		o.logger.Debug("conf: parse failed", "source", name, "error", err)
		return nil, err
	}

	o.logger.Debug("conf: parsed document",
		"source", name,
		"entries", len(entries),
		"lines", p.lines(),
		"bytes", p.bud.used)

	return &Reader{entries: entries}, nil
}

func (r *Reader) find(key string) (*entry, bool) {
	i, ok := searchEntries(r.entries, key)
	if !ok {
		return nil, false
	}
	return &r.entries[i], true
}

// TypeOf returns the type of the value stored under key.
func (r *Reader) TypeOf(key string) (Type, bool) {
	e, ok := r.find(key)
	if !ok {
		return 0, false
	}
	return e.typ, true
}

// GetInt returns the value under key if it is an Integer.
func (r *Reader) GetInt(key string) (int64, bool) {
	e, ok := r.find(key)
	if !ok || e.typ != Integer {
		return 0, false
	}
	return e.i, true
}

// GetFloat returns the value under key if it is a Float.  An Integer value is
// also returned, converted, when the conversion is exact: every integer with
// |v| <= 2^53, and larger ones whose low bits are zero, like 1<<60.
func (r *Reader) GetFloat(key string) (float64, bool) {
	e, ok := r.find(key)
	if !ok {
		return 0, false
	}
	switch e.typ {
	case Float:
		return e.f, true
	case Integer:
		// 2^63 itself is out of int64 range, so the round trip would overflow
		f := float64(e.i)
		if f >= 0x1p63 || int64(f) != e.i {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// GetBool returns the value under key if it is a Boolean.
func (r *Reader) GetBool(key string) (bool, bool) {
	e, ok := r.find(key)
	if !ok || e.typ != Boolean {
		return false, false
	}
	return e.b, true
}

// GetString returns the value under key if it is a String.  The result has
// the exact stored length and may contain any byte but a newline.
func (r *Reader) GetString(key string) (string, bool) {
	e, ok := r.find(key)
	if !ok || e.typ != String {
		return "", false
	}
	return e.s, true
}

// Len returns the number of entries.
func (r *Reader) Len() int {
	return len(r.entries)
}

// Keys returns every key in table order: shorter keys first, keys of the
// same length in byte order.
func (r *Reader) Keys() []string {
	keys := make([]string, len(r.entries))
	for i := range r.entries {
		keys[i] = r.entries[i].key
	}
	return keys
}

// Close drops the table.  Lookups on a closed Reader find nothing.
func (r *Reader) Close() error {
	clear(r.entries)
	r.entries = nil
	return nil
}
