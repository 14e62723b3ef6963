package wordlist

import (
	"bufio"
	"bytes"
	"io"
	"os"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const bufSize = 64 << 10

// Reader yields the candidates of one partition in file order. It is not safe for concurrent use;
// each worker owns its own Reader and its own file handle.
type Reader struct {
	r      *bufio.Reader
	c      io.Closer
	part   Partition
	off    int64 /* offset of the next unread byte */
	skip   bool  /* discard through the first newline before yielding */
	eof    bool
	done   bool
	err    error
	errOff int64
	cur    []byte
	long   []byte /* backing store for lines longer than the bufio buffer */
}

// Open opens path with a file handle private to the returned Reader, positioned for p.
func Open(path string, p Partition) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	rd := &Reader{c: f, part: p}
	if p.Start > 0 {
		if _, err = f.Seek(p.Start-1, io.SeekStart); err != nil {
			f.Close()
			return nil, err
		}
		rd.off, rd.skip = p.Start-1, true
	}
	rd.r = bufio.NewReaderSize(f, bufSize)
	return rd, nil
}

// NewReader reads every line of r with no slicing. It is the non-partitioned mode, used when the
// wordlist is a stream such as STDIN.
func NewReader(r io.Reader) *Reader {
	rd := &Reader{r: bufio.NewReaderSize(r, bufSize), part: Partition{End: -1}}
	if c, ok := r.(io.Closer); ok {
		rd.c = c
	}
	return rd
}

func (rd *Reader) Partition() Partition { return rd.part }

// Next advances to the next candidate. It returns false once the partition is exhausted or a read
// fails; Err distinguishes the two.
func (rd *Reader) Next() bool {
	if rd.done {
		return false
	}
	if rd.eof {
		return rd.finish(nil)
	}
	if rd.skip {
		rd.skip = false
		if _, err := rd.readLine(); err == io.EOF {
			return rd.finish(nil)
		} else if err != nil {
			return rd.finish(err)
		}
	}
	if rd.part.Bounded() && rd.off >= rd.part.End {
		return rd.finish(nil)
	}

	line, err := rd.readLine()
	switch {
	case err == io.EOF && len(line) == 0:
		return rd.finish(nil)
	case err == io.EOF:
		rd.eof = true /* unterminated final line */
	case err != nil:
		return rd.finish(err)
	}
	line = bytes.TrimSuffix(line, []byte{'\n'})
	rd.cur = bytes.TrimSuffix(line, []byte{'\r'})
	return true
}

// Bytes returns the current candidate. The slice is only valid until the next call to Next.
func (rd *Reader) Bytes() []byte { return rd.cur }

// Text returns a copy of the current candidate.
func (rd *Reader) Text() string { return string(rd.cur) }

// Err returns the first non-EOF read error.
func (rd *Reader) Err() error { return rd.err }

// Offset returns the byte offset of the next unread byte, or of the failed read if Err is set.
func (rd *Reader) Offset() int64 {
	if rd.err != nil {
		return rd.errOff
	}
	return rd.off
}

func (rd *Reader) Close() error {
	if rd.c == nil {
		return nil
	}
	return rd.c.Close()
}

func (rd *Reader) finish(err error) bool {
	rd.done, rd.cur = true, nil
	if err != nil && rd.err == nil {
		rd.err, rd.errOff = err, rd.off
	}
	return false
}

/* readLine returns one line including its newline; a nil error means the newline was found. */
func (rd *Reader) readLine() ([]byte, error) {
	rd.long = rd.long[:0]
	for {
		chunk, err := rd.r.ReadSlice('\n')
		rd.off += int64(len(chunk))
		if err == bufio.ErrBufferFull {
			rd.long = append(rd.long, chunk...)
			continue
		}
		if len(rd.long) > 0 {
			rd.long = append(rd.long, chunk...)
			chunk = rd.long
		}
		return chunk, err
	}
}
