// Copyright 2021 The conf Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package conf

import (
	"github.com/bpowers/conf/internal/scan"
)

const (
	separator   = '='
	commentMark = '#'
	lineEnd     = '\n'
)

// parser turns a Source into a sorted entry table in one pass.  It is
// either awaiting a key (hasKey == false) or awaiting a value.
type parser struct {
	src scan.Source
	bud budget

	buf     growBuf
	entries []entry

	key     string
	keyHash uint64
	hasKey  bool

	line int // 0-based index of the current line
}

func newParser(src scan.Source, o *options) *parser {
	return &parser{
		src: src,
		bud: budget{limit: o.memoryLimit, limited: o.limited},
	}
}

// parse runs the state machine to the end of input.  On failure every
// buffer, key, value and the entry table are released before returning.
func (p *parser) parse() ([]entry, error) {
	if err := p.run(); err != nil {
		p.teardown()
		return nil, err
	}

	p.buf.free(&p.bud)

	if err := p.checkDuplicates(); err != nil {
		p.teardown()
		return nil, err
	}
	sortEntries(p.entries)

	entries := p.entries
	p.entries = nil
	return entries, nil
}

func (p *parser) run() *Error {
	if !p.growEntries() || !p.buf.init(&p.bud) {
		return newError(AllocationFailure, 0, nil)
	}

	for {
		c := p.src.Next()

		switch {
		case c == separator && !p.hasKey:
			if len(p.buf.b) == 0 {
				return p.fail(BadKey)
			}
			if !p.bud.reserve(len(p.buf.b)) {
				return newError(AllocationFailure, 0, nil)
			}
			p.key = string(p.buf.b)
			p.keyHash = hashKey(p.buf.b)
			p.hasKey = true
			p.buf.reset()

		case c == lineEnd || c == scan.EOF:
			if c == scan.EOF {
				if err := p.src.Err(); err != nil {
					return newError(ReadFailure, 0, err)
				}
			}
			if !p.hasKey {
				if len(p.buf.b) != 0 {
					return p.fail(BadItem)
				}
			} else {
				if len(p.buf.b) == 0 {
					return p.fail(BadValue)
				}
				if err := p.commit(); err != nil {
					return err
				}
			}
			if c == scan.EOF {
				return nil
			}
			p.line++

		case c == commentMark && !p.hasKey && len(p.buf.b) == 0:
			// the terminator is consumed here; an EOF will be seen again
			// on the next call to Next
			for c != lineEnd && c != scan.EOF {
				c = p.src.Next()
			}
			p.line++

		default:
			if !p.buf.add(byte(c), &p.bud) {
				return newError(AllocationFailure, 0, nil)
			}
		}
	}
}

// commit classifies the accumulated value and appends the finished entry.
func (p *parser) commit() *Error {
	span := p.buf.b
	v, ok := classify(span)
	if !ok {
		if !p.bud.reserve(len(span)) {
			return newError(AllocationFailure, 0, nil)
		}
		v = value{typ: String, s: string(span)}
	}

	if len(p.entries) == cap(p.entries) && !p.growEntries() {
		if v.typ == String {
			p.bud.release(len(v.s))
		}
		return newError(AllocationFailure, 0, nil)
	}
	p.entries = append(p.entries, entry{key: p.key, hash: p.keyHash, value: v})

	p.key = ""
	p.keyHash = 0
	p.hasKey = false
	p.buf.reset()
	return nil
}

// checkDuplicates rejects a table with a repeated key.  The lookup buckets
// are charged to the budget while they exist.
func (p *parser) checkDuplicates() *Error {
	n := len(p.entries) * bucketSize
	if !p.bud.reserve(n) {
		return newError(AllocationFailure, 0, nil)
	}
	defer p.bud.release(n)

	if key, ok := findDuplicate(p.entries); ok {
		return &Error{Kind: RepeatingKeys, Key: key}
	}
	return nil
}

// growEntries doubles the capacity of the entry table.
func (p *parser) growEntries() bool {
	newCap := 2 * cap(p.entries)
	if newCap == 0 {
		newCap = 1
	}
	if !p.bud.reserve((newCap - cap(p.entries)) * entrySize) {
		return false
	}
	entries := make([]entry, len(p.entries), newCap)
	copy(entries, p.entries)
	p.entries = entries
	return true
}

func (p *parser) fail(kind Kind) *Error {
	return newError(kind, p.line+1, nil)
}

// teardown releases everything reserved so far.
func (p *parser) teardown() {
	if p.hasKey {
		p.bud.release(len(p.key))
		p.key = ""
		p.hasKey = false
	}
	p.buf.free(&p.bud)
	for i := range p.entries {
		p.bud.release(len(p.entries[i].key))
		if p.entries[i].typ == String {
			p.bud.release(len(p.entries[i].s))
		}
	}
	clear(p.entries)
	p.bud.release(cap(p.entries) * entrySize)
	p.entries = nil
}

// lines returns the number of lines seen so far.
func (p *parser) lines() int {
	return p.line + 1
}
