// Copyright 2021 The conf Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package conf

import (
	"errors"
	"fmt"
)

// Kind classifies why reading a document failed.
type Kind uint8

const (
	AllocationFailure Kind = iota + 1
	FileOpenFailure
	BadKey
	BadValue
	BadItem
	RepeatingKeys
	ReadFailure
)

var kindStrings = [...]string{
	AllocationFailure: "failed to allocate",
	FileOpenFailure:   "failed to open file",
	BadKey:            "bad key",
	BadValue:          "bad value",
	BadItem:           "bad item",
	RepeatingKeys:     "repeating keys",
	ReadFailure:       "failed to read",
}

func (k Kind) String() string {
	if k == 0 || int(k) >= len(kindStrings) {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindStrings[k]
}

var (
	ErrAllocation    = errors.New("conf: failed to allocate")
	ErrFileOpen      = errors.New("conf: failed to open file")
	ErrBadKey        = errors.New("conf: bad key")
	ErrBadValue      = errors.New("conf: bad value")
	ErrBadItem       = errors.New("conf: bad item")
	ErrRepeatingKeys = errors.New("conf: repeating keys")
	ErrRead          = errors.New("conf: failed to read")
)

func (k Kind) sentinel() error {
	switch k {
	case AllocationFailure:
		return ErrAllocation
	case FileOpenFailure:
		return ErrFileOpen
	case BadKey:
		return ErrBadKey
	case BadValue:
		return ErrBadValue
	case BadItem:
		return ErrBadItem
	case RepeatingKeys:
		return ErrRepeatingKeys
	case ReadFailure:
		return ErrRead
	default:
		return nil
	}
}

// Error reports why a document could not be read or a file could not be
// opened.  Line is the 1-based line where a syntax fault was found, and 0 for
// faults that do not belong to a single line (allocation, file open, read and
// duplicate-key failures).
type Error struct {
	Kind Kind
	Line int
	// Key is the repeated key for RepeatingKeys.
	Key string
	// Err is the underlying error, if any (e.g. from os.Open).
	Err error
}

func (e *Error) Error() string {
	msg := "conf: " + e.Kind.String()
	if e.Line > 0 {
		msg = fmt.Sprintf("conf: line %d: %s", e.Line, e.Kind)
	}
	if e.Key != "" {
		msg += fmt.Sprintf(" %q", e.Key)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Is reports whether target is the sentinel error for e's Kind, so that
// errors.Is(err, ErrBadKey) works.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && s == target
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, line int, err error) *Error {
	return &Error{Kind: kind, Line: line, Err: err}
}

// Writer errors.
var (
	ErrInvalidKey   = errors.New("conf: invalid key")
	ErrInvalidValue = errors.New("conf: invalid value")
	ErrPrecision    = errors.New("conf: too many fractional digits")
	ErrClosed       = errors.New("conf: writer closed")
)
