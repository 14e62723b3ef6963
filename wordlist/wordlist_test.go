package wordlist

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeList(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func readAll(t *testing.T, path string, n int) (all []string, perPart [][]string) {
	t.Helper()
	parts, err := SplitFile(path, n)
	require.NoError(t, err)
	for _, p := range parts {
		rd, err := Open(path, p)
		require.NoError(t, err)
		var got []string
		for rd.Next() {
			got = append(got, rd.Text())
		}
		require.NoError(t, rd.Err())
		require.NoError(t, rd.Close())
		all = append(all, got...)
		perPart = append(perPart, got)
	}
	return all, perPart
}

func TestSplit(t *testing.T) {
	t.Parallel()

	parts := Split(10, 3)
	assert.Equal(t, []Partition{
		{Index: 0, Start: 0, End: 3},
		{Index: 1, Start: 3, End: 6},
		{Index: 2, Start: 6, End: -1},
	}, parts)

	assert.Equal(t, []Partition{{Index: 0, Start: 0, End: -1}}, Split(0, 8))
	assert.Len(t, Split(3, 8), 3, "never more partitions than bytes")
	assert.Len(t, Split(100, 0), 1)
	assert.Equal(t, "#2 [6, EOF)", parts[2].String())
	assert.Equal(t, "#0 [0, 3)", parts[0].String())
}

func TestPartitionsCoverEveryLineOnce(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", bufSize*2+17)
	files := map[string]string{
		"plain":        "hunter2\npassword123\nletmein\n",
		"no-final-nl":  "alpha\nbeta\ngamma",
		"crlf":         "one\r\ntwo\r\nthree\r\n",
		"blank-lines":  "a\n\nb\n\n\nc\n",
		"single":       "lonely",
		"long-line":    "short\n" + long + "\nafter\n",
		"tiny-lines":   "a\nb\nc\nd\ne\nf\ng\nh\ni\nj\n",
		"leading-nl":   "\n\nfirst\n",
		"only-newline": "\n",
	}
	for name, content := range files {
		name, content := name, content
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			path := writeList(t, content)

			want, _ := readAll(t, path, 1)
			expected := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
			if strings.HasSuffix(content, "\n") {
				expected = expected[:len(expected)-1]
			}
			require.Equal(t, expected, want)

			for n := 2; n <= 12; n++ {
				got, _ := readAll(t, path, n)
				assert.Equal(t, want, got, "split into %d", n)
			}
		})
	}
}

func TestBoundaryLineOwnedByStartingPartition(t *testing.T) {
	t.Parallel()
	/* "abcdef\n" spans the boundary at byte 4; partition 0 owns it, partition 1 must skip it. */
	path := writeList(t, "abcdef\nxy\nz\n")
	_, per := readAll(t, path, 3)
	require.Len(t, per, 3)
	assert.Equal(t, []string{"abcdef"}, per[0])
	assert.Equal(t, []string{"xy"}, per[1])
	assert.Equal(t, []string{"z"}, per[2])
}

func TestBoundaryOnNewline(t *testing.T) {
	t.Parallel()
	/* Byte 3 is the newline, so the line starting exactly at byte 4 belongs to partition 1. */
	path := writeList(t, "abc\ndefg\n")
	_, per := readAll(t, path, 2)
	assert.Equal(t, []string{"abc"}, per[0])
	assert.Equal(t, []string{"defg"}, per[1])
}

func TestEmptyFile(t *testing.T) {
	t.Parallel()
	path := writeList(t, "")
	got, per := readAll(t, path, 4)
	assert.Empty(t, got)
	assert.Len(t, per, 1)
}

func TestSplitFileErrors(t *testing.T) {
	t.Parallel()
	_, err := SplitFile(filepath.Join(t.TempDir(), "missing"), 2)
	assert.True(t, os.IsNotExist(err))

	_, err = SplitFile(t.TempDir(), 2)
	assert.ErrorContains(t, err, "is a directory")
}

type failingReader struct {
	data []byte
	err  error
}

func (f *failingReader) Read(p []byte) (int, error) {
	if len(f.data) == 0 {
		return 0, f.err
	}
	n := copy(p, f.data)
	f.data = f.data[n:]
	return n, nil
}

func TestReadErrorSurfaces(t *testing.T) {
	t.Parallel()
	boom := errors.New("disk on fire")
	rd := NewReader(&failingReader{data: []byte("one\ntwo\nthr"), err: boom})

	var got []string
	for rd.Next() {
		got = append(got, rd.Text())
	}
	assert.Equal(t, []string{"one", "two"}, got, "the torn line is not a candidate")
	assert.ErrorIs(t, rd.Err(), boom)
	assert.Equal(t, int64(11), rd.Offset())
	assert.False(t, rd.Next())
	assert.NoError(t, rd.Close())
}

func TestSynthesizeDeterministic(t *testing.T) {
	t.Parallel()
	var a, b, c bytes.Buffer
	require.NoError(t, Synthesize(&a, 500, []byte("seed")))
	require.NoError(t, Synthesize(&b, 500, []byte("seed")))
	require.NoError(t, Synthesize(&c, 500, []byte("other")))

	assert.Equal(t, a.Bytes(), b.Bytes())
	assert.NotEqual(t, a.Bytes(), c.Bytes())

	lines := strings.Split(strings.TrimSuffix(a.String(), "\n"), "\n")
	require.Len(t, lines, 500)
	for _, l := range lines {
		assert.GreaterOrEqual(t, len(l), 4)
		assert.LessOrEqual(t, len(l), 12)
		assert.Empty(t, strings.Trim(l, alphabet))
	}
}

func BenchmarkReader(b *testing.B) {
	var list bytes.Buffer
	if err := Synthesize(&list, 1<<16, nil); err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(list.Len()))
	b.ReportAllocs()
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		rd := NewReader(bytes.NewReader(list.Bytes()))
		for rd.Next() {
		}
	}
}
