// Copyright 2021 The conf Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package conf

import (
	"io"
	"log/slog"
)

// Option configures how a document is read.
type Option func(*options)

type options struct {
	logger      *slog.Logger
	stripCR     bool
	memoryLimit int
	limited     bool
}

func newOptions(opts []Option) options {
	var o options
	o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets an optional logger that receives debug records about
// each parse.  If not provided, no logging output will be produced.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithStripCR drops a carriage return that immediately precedes a line
// feed or the end of input, so CRLF documents read like LF ones.
func WithStripCR(strip bool) Option {
	return func(o *options) {
		o.stripCR = strip
	}
}

// WithMemoryLimit caps the number of bytes the parser may allocate for
// buffers, keys, values, the entry table and the duplicate-key check.  Exceeding it fails the parse
// with AllocationFailure.
func WithMemoryLimit(n int) Option {
	return func(o *options) {
		o.memoryLimit = n
		o.limited = true
	}
}
