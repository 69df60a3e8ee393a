// Copyright 2021 The conf Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package conf

import (
	"fmt"
)

// Type identifies which kind of value an entry holds.
type Type uint8

const (
	Integer Type = iota
	Float
	Boolean
	String
)

func (t Type) String() string {
	switch t {
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Boolean:
		return "boolean"
	case String:
		return "string"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}
