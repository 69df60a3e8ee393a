// Copyright 2021 The conf Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package conf

// budget tracks the bytes a parse holds.  Every reservation is matched by a
// release when the parse fails, so a failed parse always ends at zero.
type budget struct {
	limit   int
	limited bool
	used    int
}

func (b *budget) reserve(n int) bool {
	if b.limited && b.used+n > b.limit {
		return false
	}
	b.used += n
	return true
}

func (b *budget) release(n int) {
	b.used -= n
}

// growBuf is an accumulation buffer whose capacity doubles when full.
type growBuf struct {
	b []byte
}

func (g *growBuf) init(bud *budget) bool {
	if !bud.reserve(1) {
		return false
	}
	g.b = make([]byte, 0, 1)
	return true
}

func (g *growBuf) add(c byte, bud *budget) bool {
	if len(g.b) == cap(g.b) {
		newCap := 2 * cap(g.b)
		if newCap == 0 {
			newCap = 1
		}
		if !bud.reserve(newCap - cap(g.b)) {
			return false
		}
		nb := make([]byte, len(g.b), newCap)
		copy(nb, g.b)
		g.b = nb
	}
	g.b = append(g.b, c)
	return true
}

func (g *growBuf) reset() {
	g.b = g.b[:0]
}

func (g *growBuf) free(bud *budget) {
	bud.release(cap(g.b))
	g.b = nil
}
