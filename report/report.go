// Package report prints a cracking run for a person at a terminal.
package report

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/p7r0x7/ratcrack"
	"github.com/p7r0x7/vainpath"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Console writes one line per match as it happens and a summary once the run is over. With Quiet
// set it writes only `hex:candidate` lines, one per match, and no summary.
type Console struct {
	w                     io.Writer
	quiet                 bool
	mu                    sync.Mutex
	yell, purp, und, zero string
}

func New(w io.Writer, quiet, noCodes bool) *Console {
	c := &Console{w: w, quiet: quiet, yell: "\033[33m", purp: "\033[35m", und: "\033[4m", zero: "\033[0m"}
	if quiet || noCodes {
		c.yell, c.purp, c.und, c.zero = "", "", "", ""
	}
	return c
}

func (c *Console) Match(m ratcrack.Match) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.quiet {
		fmt.Fprintf(c.w, "%s:%s\n", m.Digest, m.Candidate)
		return
	}
	fmt.Fprintf(c.w, "%s%s%s -> %s (%s)\n", c.yell, m.Candidate, c.zero, m.Digest, Duration(m.Elapsed))
}

// Summary reports timings, any digests left unmatched, and whether the wordlist was only partly
// searched, which would make "not found" unreliable.
func (c *Console) Summary(res *ratcrack.Result, wordlist string) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if wordlist == "-" || wordlist == "" {
		wordlist = "STDIN"
	} else {
		wordlist = c.und + vainpath.Simplify(wordlist) + c.zero
	}
	fmt.Fprintf(c.w, "Loaded in %s; searched %d candidates from %s in %s (%s, %d workers).\n",
		Duration(res.LoadTime), res.Candidates, wordlist, Duration(res.SearchTime),
		res.Algorithm, res.Workers)

	total := len(res.Matches) + len(res.Unresolved)
	switch {
	case res.Found() && total == 1:
		fmt.Fprintf(c.w, "Password found for the given hash: %s%s%s in %s\n",
			c.yell, res.Matches[0].Candidate, c.zero, Duration(res.Matches[0].Elapsed))
	case res.Found():
		fmt.Fprintf(c.w, "All %d hashes found.\n", total)
	default:
		fmt.Fprintf(c.w, "%sNo password found for %d of %d hashes:%s\n",
			c.purp, len(res.Unresolved), total, c.zero)
		for _, d := range res.Unresolved {
			fmt.Fprintf(c.w, "  %s\n", d)
		}
	}

	if n := len(res.Failed); n > 0 {
		noun := "partitions were"
		if n == 1 {
			noun = "partition was"
		}
		fmt.Fprintf(c.w, "%s%d %s not fully searched; unresolved hashes may still be in %s:%s\n",
			c.purp, n, noun, wordlist, c.zero)
		for _, pe := range res.Failed {
			fmt.Fprintf(c.w, "  %v\n", pe)
		}
	}
	if res.Interrupted {
		fmt.Fprintf(c.w, "%sInterrupted before the wordlist was exhausted.%s\n", c.purp, c.zero)
	}
}

// Duration rounds d for display: whole tens of microseconds once it exceeds 99µs.
func Duration(d time.Duration) string {
	if d.Microseconds() > 99 {
		d = d.Truncate(10 * time.Microsecond)
	}
	return d.String()
}
