package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/p7r0x7/ratcrack/algo"
	"github.com/p7r0x7/ratcrack/wordlist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

func TestFmtFloats(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "         3", fmtFloats(3))
	assert.Equal(t, "  2.500000", fmtFloats(2.5))
	assert.Equal(t, "  12.25000", fmtFloats(12.25))
	assert.Equal(t, "   1.5e+09", fmtFloats(1.5e9))
	assert.Equal(t, "         1         2", fmtFloats(1, 2))
}

func TestEngine(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "words.txt")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, wordlist.Synthesize(f, 500, []byte("engine")))
	require.NoError(t, f.Close())

	for _, a := range []algo.Algorithm{algo.MD5, algo.BLAKE3} {
		assert.NoError(t, engine(a, path, 500), a.String())
	}
}
