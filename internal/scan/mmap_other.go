// Copyright 2021 The conf Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

//go:build !linux && !darwin

package scan

import (
	"os"
)

// Mapping holds the whole contents of a file.  Platforms without mmap
// support read the file into memory instead.
type Mapping struct {
	data []byte
}

// Map reads the file at path.
func Map(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Mapping{data: data}, nil
}

// Bytes returns the file contents.  The slice is invalid after Close.
func (m *Mapping) Bytes() []byte {
	return m.data
}

// Close releases the contents.
func (m *Mapping) Close() error {
	m.data = nil
	return nil
}
