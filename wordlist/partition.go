// Package wordlist reads candidate preimages, one per line, from a wordlist file that may be split
// into byte ranges so that several workers can read it at once.
//
// A line belongs to the partition that holds its first byte. A reader for any partition but the
// first starts one byte early and discards through the first newline it sees; it then yields every
// line that starts before the partition's end. Every line of the file is therefore read by exactly
// one partition, whatever the split.
package wordlist

import (
	"fmt"
	"os"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Partition is a permanent byte-range assignment [Start, End). End is -1 for the last partition,
// which reads to EOF and so absorbs the remainder of the integer division.
type Partition struct {
	Index      int
	Start, End int64
}

func (p Partition) Bounded() bool { return p.End >= 0 }

func (p Partition) String() string {
	if !p.Bounded() {
		return fmt.Sprintf("#%d [%d, EOF)", p.Index, p.Start)
	}
	return fmt.Sprintf("#%d [%d, %d)", p.Index, p.Start, p.End)
}

// Split divides a file of size bytes into n partitions starting at i*(size/n). n is clamped to
// [1, size] so no partition starts past the end of the file.
func Split(size int64, n int) []Partition {
	if n < 1 {
		n = 1
	}
	if size < int64(n) {
		n = int(size)
		if n < 1 {
			n = 1
		}
	}
	stride := size / int64(n)
	parts := make([]Partition, n)
	for i := range parts {
		parts[i] = Partition{Index: i, Start: int64(i) * stride, End: int64(i+1) * stride}
	}
	parts[n-1].End = -1
	return parts
}

// SplitFile stats path and splits it as Split does.
func SplitFile(path string, n int) ([]Partition, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return Split(info.Size(), n), nil
}
