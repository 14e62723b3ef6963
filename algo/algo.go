// Package algo is the closed set of digest functions a cracking run may select. An Algorithm is a
// plain value: it is chosen once, passed to every component that hashes, and never stored in
// package state.
package algo

import (
	"crypto/md5"
	"crypto/sha512"
	"fmt"
	"hash"
	"sort"
	"strings"

	"github.com/minio/sha256-simd"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/md4"
	"golang.org/x/crypto/sha3"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

type Algorithm uint8

const (
	SHA256 Algorithm = iota
	SHA512
	MD5
	SHA3_256
	SHA3_512
	BLAKE2b256
	BLAKE2b512
	BLAKE3
	MD4
	count
)

type entry struct {
	name string
	size int
	sum  func(dst, msg []byte) []byte
	new  func() hash.Hash
}

var table = [count]entry{
	SHA256: {"sha256", sha256.Size, func(dst, msg []byte) []byte {
		s := sha256.Sum256(msg)
		return append(dst, s[:]...)
	}, sha256.New},
	SHA512: {"sha512", sha512.Size, func(dst, msg []byte) []byte {
		s := sha512.Sum512(msg)
		return append(dst, s[:]...)
	}, sha512.New},
	MD5: {"md5", md5.Size, func(dst, msg []byte) []byte {
		s := md5.Sum(msg)
		return append(dst, s[:]...)
	}, md5.New},
	SHA3_256: {"sha3-256", 32, func(dst, msg []byte) []byte {
		s := sha3.Sum256(msg)
		return append(dst, s[:]...)
	}, func() hash.Hash { return sha3.New256() }},
	SHA3_512: {"sha3-512", 64, func(dst, msg []byte) []byte {
		s := sha3.Sum512(msg)
		return append(dst, s[:]...)
	}, func() hash.Hash { return sha3.New512() }},
	BLAKE2b256: {"blake2b-256", blake2b.Size256, func(dst, msg []byte) []byte {
		s := blake2b.Sum256(msg)
		return append(dst, s[:]...)
	}, func() hash.Hash { h, _ := blake2b.New256(nil); return h }},
	BLAKE2b512: {"blake2b-512", blake2b.Size, func(dst, msg []byte) []byte {
		s := blake2b.Sum512(msg)
		return append(dst, s[:]...)
	}, func() hash.Hash { h, _ := blake2b.New512(nil); return h }},
	BLAKE3: {"blake3", 32, func(dst, msg []byte) []byte {
		s := blake3.Sum256(msg)
		return append(dst, s[:]...)
	}, func() hash.Hash { return blake3.New() }},
	/* x/crypto/md4 has no one-shot Sum. */
	MD4: {"md4", md4.Size, func(dst, msg []byte) []byte {
		h := md4.New()
		h.Write(msg)
		return h.Sum(dst)
	}, md4.New},
}

// Parse resolves a case-insensitive algorithm name such as "sha256" or "BLAKE2b-512".
func Parse(name string) (Algorithm, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i := range table {
		if table[i].name == name {
			return Algorithm(i), nil
		}
	}
	return 0, fmt.Errorf("unknown algorithm %q (want one of %s)", name, strings.Join(List(), ", "))
}

// List returns every selectable algorithm name in sorted order.
func List() []string {
	names := make([]string, 0, count)
	for i := range table {
		names = append(names, table[i].name)
	}
	sort.Strings(names)
	return names
}

func (a Algorithm) Valid() bool { return a < count }

func (a Algorithm) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Algorithm(%d)", a)
	}
	return table[a].name
}

// Size is the digest length in bytes.
func (a Algorithm) Size() int { return table[a].size }

// Digest hashes msg into a freshly allocated slice.
func (a Algorithm) Digest(msg []byte) []byte {
	return table[a].sum(make([]byte, 0, table[a].size), msg)
}

// Sum appends the digest of msg to dst. Workers pass dst[:0] of a reused buffer so the hot loop
// does not allocate.
func (a Algorithm) Sum(dst, msg []byte) []byte { return table[a].sum(dst, msg) }

// New returns a streaming hash.Hash for the algorithm.
func (a Algorithm) New() hash.Hash { return table[a].new() }

// Set implements pflag.Value so the algorithm can be given as a flag as well as positionally.
func (a *Algorithm) Set(s string) error {
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

func (a *Algorithm) Type() string { return "algorithm" }
