// Copyright 2021 The conf Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package unsafestring

import (
	"unsafe"
)

// FromBytes returns a string referring to the contents of the input slice.
// SAFETY: the slice must not be modified while the string is in use.
func FromBytes(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// ToBytes returns a byte slice referring to the contents of the input string.
// SAFETY: the returned byte slice must never be written to, only read.
func ToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
