// Copyright 2021 The conf Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package conf

import (
	"math"
	"strconv"
	"strings"

	"github.com/bpowers/conf/internal/unsafestring"
)

// value is the typed payload of an entry.  Exactly one of i, f, b and s is
// meaningful, selected by typ.
type value struct {
	typ Type
	i   int64
	f   float64
	b   bool
	s   string
}

// classify decides the type of a non-empty value span.  It reports false if
// the span is a plain string; the caller owns copying it.
func classify(span []byte) (value, bool) {
	if v, ok := parseNumber(span); ok {
		return v, true
	}

	switch {
	case asciiEqualFold(span, "true"):
		return value{typ: Boolean, b: true}, true
	case asciiEqualFold(span, "false"):
		return value{typ: Boolean, b: false}, true
	case asciiEqualFold(span, "inf"):
		return value{typ: Float, f: math.Inf(1)}, true
	case asciiEqualFold(span, "-inf"):
		return value{typ: Float, f: math.Inf(-1)}, true
	case asciiEqualFold(span, "nan"):
		return value{typ: Float, f: math.NaN()}, true
	}

	return value{}, false
}

// parseNumber accepts exactly -?[0-9]+ as an Integer and -?[0-9]+.[0-9]+ as
// a Float.  The integer part must fit in an int64: "9223372036854775808" is
// not clamped, it is no number at all and the caller keeps it as a String.
func parseNumber(span []byte) (value, bool) {
	if len(span) == 0 || (!isDigit(span[0]) && span[0] != '-') {
		return value{}, false
	}
	// SAFETY: s does not outlive this call, and span isn't written to here
	s := unsafestring.FromBytes(span)

	intPart, frac, hasDot := strings.Cut(s, ".")
	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return value{}, false
	}
	if !hasDot {
		return value{typ: Integer, i: n}, true
	}
	if len(frac) == 0 || !allDigits(frac) {
		return value{}, false
	}

	// the text is plain decimal, so ParseFloat gives the correctly rounded
	// int +/- frac/10^n, keeping the sign of "-0.0"
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return value{}, false
	}
	return value{typ: Float, f: f}, true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

// asciiEqualFold is bytes.EqualFold restricted to ASCII letters, so the
// result never depends on Unicode case folding.
func asciiEqualFold(b []byte, lit string) bool {
	if len(b) != len(lit) {
		return false
	}
	for i := 0; i < len(b); i++ {
		if toLower(b[i]) != toLower(lit[i]) {
			return false
		}
	}
	return true
}

func toLower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
