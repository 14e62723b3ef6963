package main

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/p7r0x7/ratcrack/algo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sha256Hex(s string) string { return hex.EncodeToString(algo.SHA256.Digest([]byte(s))) }

func fixture(t *testing.T, hashes []string, words ...string) (hashPath, wordPath string) {
	t.Helper()
	dir := t.TempDir()
	hashPath, wordPath = filepath.Join(dir, "hashes.txt"), filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(hashPath, []byte(strings.Join(hashes, "\n")+"\n"), 0o600))
	require.NoError(t, os.WriteFile(wordPath, []byte(strings.Join(words, "\n")+"\n"), 0o600))
	return hashPath, wordPath
}

func run(args []string, stdin string) (code int, stdout, stderr string) {
	var out, errb bytes.Buffer
	code = program(args, strings.NewReader(stdin), &out, &errb)
	return code, out.String(), errb.String()
}

func TestFound(t *testing.T) {
	t.Parallel()
	hashes, words := fixture(t, []string{sha256Hex("password123")}, "hunter2", "password123", "letmein")

	code, out, _ := run([]string{"--no-codes", "-j", "3", hashes, "sha256", words}, "")
	assert.Equal(t, success, code)
	assert.Contains(t, out, "password123 -> "+sha256Hex("password123")+" (")
	assert.Contains(t, out, "Password found for the given hash: password123 in ")
}

func TestUnresolvedStillSucceeds(t *testing.T) {
	t.Parallel()
	hashes, words := fixture(t, []string{sha256Hex("a"), sha256Hex("zzz")}, "a", "b", "c")

	code, out, _ := run([]string{"--no-codes", hashes, "SHA256", words}, "")
	assert.Equal(t, success, code)
	assert.Contains(t, out, "No password found for 1 of 2 hashes:\n  "+sha256Hex("zzz")+"\n")
}

func TestQuiet(t *testing.T) {
	t.Parallel()
	md5a := hex.EncodeToString(algo.MD5.Digest([]byte("a")))

	code, out, _ := run([]string{"--quiet", "-s", md5a + "," + md5a, "md5", "-"}, "x\na\ny\n")
	assert.Equal(t, success, code)
	assert.Equal(t, md5a+":a\n", out)
}

func TestInvalidInput(t *testing.T) {
	t.Parallel()
	hashes, words := fixture(t, []string{"not hex"}, "a")
	good, _ := fixture(t, []string{sha256Hex("a")}, "a")

	cases := map[string][]string{
		"bad hex":           {hashes, "sha256", words},
		"unknown algorithm": {good, "rot13", words},
		"wrong digest size": {good, "md5", words},
		"missing wordlist":  {good, "sha256", filepath.Join(t.TempDir(), "none")},
		"missing hashes":    {filepath.Join(t.TempDir(), "none"), "sha256", words},
		"too few arguments": {good, "sha256"},
		"unknown flag":      {"--frobnicate", good, "sha256", words},
		"zero jobs":         {"-j", "0", good, "sha256", words},
	}
	for name, args := range cases {
		args := args
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			code, out, stderr := run(args, "")
			assert.Equal(t, invalid, code)
			assert.Empty(t, out)
			assert.NotEmpty(t, stderr)
		})
	}
}

func TestHelp(t *testing.T) {
	t.Parallel()
	for _, args := range [][]string{nil, {"-h"}, {"--help", "--no-codes"}} {
		code, out, stderr := run(args, "")
		assert.Equal(t, success, code)
		assert.Empty(t, out)
		assert.Contains(t, stderr, "Usage:")
		assert.Contains(t, stderr, "blake2b-256")
		assert.Contains(t, stderr, "--jobs")
	}
}

func TestEnvJobs(t *testing.T) {
	var warned []string
	warn := func(format string, args ...interface{}) { warned = append(warned, format) }

	t.Setenv(jobsEnv, "5")
	assert.Equal(t, 5, envJobs(warn))
	assert.Empty(t, warned)

	t.Setenv(jobsEnv, "lots")
	assert.Positive(t, envJobs(warn))
	assert.Len(t, warned, 1)

	t.Setenv(jobsEnv, "-2")
	assert.Positive(t, envJobs(warn))
	assert.Len(t, warned, 2)
}
