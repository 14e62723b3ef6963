// Package targets holds the digests a run is still searching for.
package targets

import (
	"encoding/hex"
	"sort"
	"sync/atomic"
	"unsafe"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/zeebo/xxh3"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Digest is the raw bytes of a hash held in a string so it can key a map and compare byte-exactly.
type Digest string

func (d Digest) String() string { return hex.EncodeToString([]byte(d)) }

func (d Digest) Bytes() []byte { return []byte(d) }

// Set is the mutable working set of outstanding digests. Every method is safe for concurrent use;
// Remove is the only mutation once searching begins.
type Set struct {
	m    *xsync.MapOf[Digest, struct{}]
	left atomic.Int64
	size int
}

// New builds a Set of size-byte digests. Duplicates collapse to one entry.
func New(size int, digests ...[]byte) *Set {
	s := &Set{size: size, m: xsync.NewMapOfWithHasher[Digest, struct{}](
		func(d Digest, seed uint64) uint64 { return xxh3.HashStringSeed(string(d), seed) },
		xsync.WithPresize(len(digests)))}
	for _, d := range digests {
		s.add(d)
	}
	return s
}

func (s *Set) add(d []byte) {
	if _, loaded := s.m.LoadOrStore(Digest(d), struct{}{}); !loaded {
		s.left.Add(1)
	}
}

// Size is the length in bytes of every digest in the set.
func (s *Set) Size() int { return s.size }

// Len is the number of digests still outstanding.
func (s *Set) Len() int { return int(s.left.Load()) }

// Empty reports whether every target has been claimed. It is a single atomic load, cheap enough
// for workers to poll between candidates.
func (s *Set) Empty() bool { return s.left.Load() == 0 }

func (s *Set) Contains(d []byte) bool {
	_, ok := s.m.Load(Digest(bytesToStr(d)))
	return ok
}

// Remove claims d. Exactly one caller ever sees true for a given digest, no matter how many
// workers compute it at once.
func (s *Set) Remove(d []byte) bool {
	if _, ok := s.m.LoadAndDelete(Digest(bytesToStr(d))); !ok {
		return false
	}
	s.left.Add(-1)
	return true
}

// Remaining returns the outstanding digests sorted bytewise.
func (s *Set) Remaining() []Digest {
	out := make([]Digest, 0, s.Len())
	s.m.Range(func(d Digest, _ struct{}) bool {
		out = append(out, d)
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// bytesToStr views b as a string without copying. The result is only used as a lookup key and is
// never retained by the map.
func bytesToStr(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}
