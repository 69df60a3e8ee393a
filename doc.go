// Copyright 2021 The conf Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package conf reads and writes a small line-oriented key/value
// configuration format.
//
// A document looks like:
//
//	# comment
//	count=3
//	ratio=0.5
//	flag=true
//	name=Hello world!
//
// Each line is blank, a comment starting with '#', or key=value.  Keys are
// any non-empty run of bytes without '=' or a newline; values run to the end
// of the line and must not be empty.  There is no quoting, escaping or
// trimming: "string =Hello" has the key "string " and the value "Hello".
//
// Values are typed when read:
//
//	-?[0-9]+              Integer (int64)
//	-?[0-9]+.[0-9]+       Float
//	true, false           Boolean (any case)
//	inf, -inf, nan        Float (any case)
//	anything else         String
//
// A document with a repeated key is rejected.  Reading is all-or-nothing:
// any error leaves no Reader behind, and syntax errors carry the 1-based
// line they were found on.
//
// Lookups use binary search over keys ordered by length first, then by byte
// content.
package conf
