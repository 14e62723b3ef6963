package targets

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/p7r0x7/ratcrack/internal/errors"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// LoadFile reads a file of hex digests, one per line. See Load.
func LoadFile(path string, size int) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStackTrace(&errors.LoadError{Path: path, Err: err})
	}
	defer f.Close()
	return Load(f, path, size)
}

// Load parses one hex digest per line of r; name identifies r in errors. Blank lines are skipped
// and either hex case is accepted. Any undecodable line, or any digest that is not size bytes long
// and so could never match, fails the whole load.
func Load(r io.Reader, name string, size int) (*Set, error) {
	var digests [][]byte
	sc, line := bufio.NewScanner(r), 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		d, err := decode(text, size)
		if err != nil {
			return nil, errors.WithStackTrace(&errors.LoadError{Path: name, Line: line, Err: err})
		}
		digests = append(digests, d)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.WithStackTrace(&errors.LoadError{Path: name, Err: err})
	}
	return build(name, size, digests)
}

// Parse is Load for digests given directly, such as on the command line.
func Parse(hexes []string, size int) (*Set, error) {
	digests := make([][]byte, 0, len(hexes))
	for i, text := range hexes {
		if text = strings.TrimSpace(text); text == "" {
			continue
		}
		d, err := decode(text, size)
		if err != nil {
			return nil, errors.WithStackTrace(&errors.LoadError{Path: "argument", Line: i + 1, Err: err})
		}
		digests = append(digests, d)
	}
	return build("argument", size, digests)
}

func build(name string, size int, digests [][]byte) (*Set, error) {
	if len(digests) == 0 {
		return nil, errors.WithStackTrace(&errors.LoadError{Path: name, Err: fmt.Errorf("no digests")})
	}
	return New(size, digests...), nil
}

func decode(text string, size int) ([]byte, error) {
	d, err := hex.DecodeString(text)
	if err != nil {
		return nil, err
	}
	if size > 0 && len(d) != size {
		return nil, fmt.Errorf("%d-byte digest where %d bytes are expected", len(d), size)
	}
	return d, nil
}
