// Copyright 2021 The conf Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Command gen-testdata writes a large random conf document to stdout, for
// use as testdata.large:
//
//	go run ./cmd/gen-testdata > testdata.large
package main

import (
	"bufio"
	"crypto/hmac"
	crand "crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/bpowers/conf"
)

const (
	nPairs    = 1000000
	prefix    = "pref_"
	suffixLen = 16
	hmacKey   = "d259c7f656caf7f1"
)

func newRand() *rand.Rand {
	var seedBytes [8]byte
	_, _ = crand.Read(seedBytes[:])
	seed := int64(binary.LittleEndian.Uint64(seedBytes[:]))
	return rand.New(rand.NewSource(seed))
}

func writeRecord(w *conf.Writer, rng *rand.Rand, key string, suffix []byte) error {
	switch rng.Intn(4) {
	case 0:
		return w.WriteInt(key, rng.Int63()-rng.Int63())
	case 1:
		// dyadic fractions print and parse back exactly
		v := float64(rng.Int63n(1<<30)-(1<<29)) / 1024
		return w.WriteFloat(key, v, 0)
	case 2:
		return w.WriteBool(key, rng.Intn(2) == 0)
	default:
		return w.WriteString(key, fmt.Sprintf("%s%x", prefix, suffix))
	}
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	rng := newRand()
	h := hmac.New(sha256.New, []byte(hmacKey))

	out := bufio.NewWriterSize(os.Stdout, 64*1024)
	w := conf.NewWriter(out)
	if err := w.WriteComment(fmt.Sprintf("%d generated records", nPairs)); err != nil {
		logger.Error("write failed", "error", err)
		os.Exit(1)
	}

	for i := 0; i < nPairs; i++ {
		var buf [suffixLen / 2]byte
		if _, err := rng.Read(buf[:]); err != nil {
			panic(err)
		}
		h.Reset()
		h.Write(buf[:])
		key := hex.EncodeToString(h.Sum(nil))

		if err := writeRecord(w, rng, key, buf[:]); err != nil {
			logger.Error("write failed", "key", key, "error", err)
			os.Exit(1)
		}
	}

	if err := w.Close(); err != nil {
		logger.Error("close failed", "error", err)
		os.Exit(1)
	}
	if err := out.Flush(); err != nil {
		logger.Error("flush failed", "error", err)
		os.Exit(1)
	}
}
