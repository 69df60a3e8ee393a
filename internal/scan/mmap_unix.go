// Copyright 2021 The conf Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

//go:build linux || darwin

package scan

import (
	"fmt"
	"os"
	"sync/atomic"

	"golang.org/x/sys/unix"
)

// Mapping is a read-only view of a whole file.
type Mapping struct {
	data   []byte
	closed atomic.Bool
}

// Map memory-maps the file at path read-only.
func Map(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("f.Stat: %w", err)
	}
	size := fi.Size()
	if size == 0 {
		// mmap rejects zero-length mappings
		return &Mapping{}, nil
	}
	if size != int64(int(size)) {
		return nil, fmt.Errorf("file %s too large to map (%d bytes)", path, size)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("unix.Mmap(%s): %w", path, err)
	}
	// the parser makes exactly one forward pass
	if err := unix.Madvise(data, unix.MADV_SEQUENTIAL); err != nil {
		_ = unix.Munmap(data)
		return nil, fmt.Errorf("madvise: %w", err)
	}

	return &Mapping{data: data}, nil
}

// Bytes returns the mapped contents.  The slice is invalid after Close.
func (m *Mapping) Bytes() []byte {
	return m.data
}

// Close unmaps the file.  Calling Close more than once is fine.
func (m *Mapping) Close() error {
	if alreadyClosed := m.closed.Swap(true); alreadyClosed {
		return nil
	}
	if m.data == nil {
		return nil
	}
	data := m.data
	m.data = nil
	if err := unix.Munmap(data); err != nil {
		return fmt.Errorf("unix.Munmap: %w", err)
	}
	return nil
}
