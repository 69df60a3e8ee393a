// Copyright 2021 The conf Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package conf

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/bpowers/conf/internal/unsafestring"
)

const (
	defaultBufferSize = 32 * 1024

	// maxFractionDigits bounds the number of fractional digits written.
	maxFractionDigits = 255

	// finite floats must stay below this so their integer part parses
	// back as an int64
	maxFloatMagnitude = 1 << 63
)

// Writer appends records in the conf format to an output stream.  Every
// method either writes one whole record or returns an error; after an
// error the position in the stream is unspecified.
type Writer struct {
	w       io.Writer
	bw      *bufio.Writer
	f       *os.File
	scratch []byte
	closed  atomic.Bool
}

// NewWriter returns a Writer that hands each record to w in a single Write
// call.  Close does not close w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Create creates or truncates the file at path and returns a buffered
// Writer for it.  Close flushes and closes the file.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, newError(FileOpenFailure, 0, err)
	}
	bw := bufio.NewWriterSize(f, defaultBufferSize)
	return &Writer{
		w:  bw,
		bw: bw,
		f:  f,
	}, nil
}

func (w *Writer) emit(record []byte) error {
	if w.closed.Load() {
		return ErrClosed
	}
	_, err := w.w.Write(record)
	return err
}

// WriteComment writes "# text".
func (w *Writer) WriteComment(text string) error {
	if strings.IndexByte(text, lineEnd) >= 0 {
		return fmt.Errorf("%w: comment contains a newline", ErrInvalidValue)
	}
	b := append(w.scratch[:0], commentMark, ' ')
	b = append(b, text...)
	b = append(b, lineEnd)
	w.scratch = b
	return w.emit(b)
}

// WriteNewLine writes an empty line.
func (w *Writer) WriteNewLine() error {
	b := append(w.scratch[:0], lineEnd)
	w.scratch = b
	return w.emit(b)
}

// WriteInt writes "key=value" with value in decimal.
func (w *Writer) WriteInt(key string, value int64) error {
	if err := checkKey(key); err != nil {
		return err
	}
	b := w.appendKey(key)
	b = strconv.AppendInt(b, value, 10)
	return w.finish(b)
}

// WriteFloat writes "key=value".  Infinities and NaN are written as inf,
// -inf and nan.  Other values get enough fractional digits (at least one) to
// read back as the same float64, limited to precision when precision is
// non-zero and smaller.
func (w *Writer) WriteFloat(key string, value float64, precision uint8) error {
	if err := checkKey(key); err != nil {
		return err
	}

	var text string
	switch {
	case math.IsInf(value, 1):
		text = "inf"
	case math.IsInf(value, -1):
		text = "-inf"
	case math.IsNaN(value):
		text = "nan"
	}
	if text != "" {
		b := w.appendKey(key)
		b = append(b, text...)
		return w.finish(b)
	}

	if math.Abs(value) >= maxFloatMagnitude {
		return fmt.Errorf("%w: %g is out of range", ErrInvalidValue, value)
	}
	digits, err := exactDigits(value)
	if err != nil {
		return err
	}
	if precision != 0 && int(precision) < digits {
		digits = int(precision)
	}

	b := w.appendKey(key)
	b = strconv.AppendFloat(b, value, 'f', digits, 64)
	return w.finish(b)
}

// WriteBool writes "key=true" or "key=false".
func (w *Writer) WriteBool(key string, value bool) error {
	if err := checkKey(key); err != nil {
		return err
	}
	b := w.appendKey(key)
	b = strconv.AppendBool(b, value)
	return w.finish(b)
}

// WriteString writes "key=value" verbatim.  value must be non-empty, must
// not contain a newline, and must not read back as another type (like
// "12" or "true"), since the format has no quoting.
func (w *Writer) WriteString(key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if len(value) == 0 {
		return fmt.Errorf("%w: empty string", ErrInvalidValue)
	}
	if strings.IndexByte(value, lineEnd) >= 0 {
		return fmt.Errorf("%w: string contains a newline", ErrInvalidValue)
	}
	if v, ok := classify(unsafestring.ToBytes(value)); ok {
		return fmt.Errorf("%w: %q would read back as %s", ErrInvalidValue, value, v.typ)
	}
	b := w.appendKey(key)
	b = append(b, value...)
	return w.finish(b)
}

func (w *Writer) appendKey(key string) []byte {
	b := append(w.scratch[:0], key...)
	return append(b, separator)
}

func (w *Writer) finish(b []byte) error {
	b = append(b, lineEnd)
	w.scratch = b
	return w.emit(b)
}

// Close flushes buffered records and closes the file if the Writer was
// made by Create.  Calling Close more than once is fine.
func (w *Writer) Close() error {
	if alreadyClosed := w.closed.Swap(true); alreadyClosed {
		return nil
	}
	w.scratch = nil
	if w.bw == nil {
		return nil
	}

	flushErr := w.bw.Flush()
	var syncErr error
	if flushErr == nil {
		syncErr = w.f.Sync()
	}
	closeErr := w.f.Close()
	w.bw = nil
	w.f = nil

	switch {
	case flushErr != nil:
		return fmt.Errorf("bufio.Flush: %w", flushErr)
	case syncErr != nil:
		return fmt.Errorf("f.Sync: %w", syncErr)
	case closeErr != nil:
		return fmt.Errorf("f.Close: %w", closeErr)
	}
	return nil
}

// checkKey rejects keys that would not read back as the same key.
func checkKey(key string) error {
	if len(key) == 0 {
		return fmt.Errorf("%w: empty key", ErrInvalidKey)
	}
	if key[0] == commentMark {
		return fmt.Errorf("%w: %q starts with a comment mark", ErrInvalidKey, key)
	}
	if strings.IndexByte(key, separator) >= 0 || strings.IndexByte(key, lineEnd) >= 0 {
		return fmt.Errorf("%w: %q contains a separator or newline", ErrInvalidKey, key)
	}
	return nil
}

// exactDigits returns how many fractional digits value needs to parse back
// to itself.  The x10 search can stop early, since every multiply rounds;
// then the shortest round-tripping form decides.
func exactDigits(value float64) (int, error) {
	digits, err := fractionDigits(value)
	if err != nil {
		return 0, err
	}
	text := strconv.FormatFloat(value, 'f', digits, 64)
	if back, err := strconv.ParseFloat(text, 64); err == nil && back == value {
		return digits, nil
	}

	shortest := strconv.FormatFloat(value, 'f', -1, 64)
	_, frac, _ := strings.Cut(shortest, ".")
	digits = len(frac)
	if digits >= maxFractionDigits {
		return 0, ErrPrecision
	}
	if digits == 0 {
		digits = 1
	}
	return digits, nil
}

// fractionDigits returns how many fractional digits value has, found by
// scaling by 10 until it is integral.
func fractionDigits(value float64) (int, error) {
	count := 0
	for math.Trunc(value) != value {
		value *= 10
		count++
		if count >= maxFractionDigits {
			return 0, ErrPrecision
		}
	}
	if count == 0 {
		return 1, nil
	}
	return count, nil
}
