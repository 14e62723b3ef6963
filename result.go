package ratcrack

import (
	"sort"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/p7r0x7/ratcrack/algo"
	"github.com/p7r0x7/ratcrack/internal/errors"
	"github.com/p7r0x7/ratcrack/targets"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Match is reported the moment a worker claims a target.
type Match struct {
	Digest    targets.Digest
	Candidate string
	Elapsed   time.Duration /* since the search phase began */
	Partition int
}

// Reporter receives matches as they are found. Calls are serialised by the engine and arrive in
// discovery order, so implementations need no locking of their own but must not block for long.
type Reporter interface {
	Match(Match)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(Match)

func (f ReporterFunc) Match(m Match) { f(m) }

type discard struct{}

func (discard) Match(Match) {}

// Result is the outcome of a completed run. Leftover targets are not an error: Found reports
// whether any remain.
type Result struct {
	Algorithm  algo.Algorithm
	Workers    int
	Matches    []Match
	Unresolved []targets.Digest
	Failed     []*errors.PartitionError /* partitions not fully searched, by index */
	Candidates int64
	/* The caller's context ended the search before candidates or targets ran out. */
	Interrupted          bool
	LoadTime, SearchTime time.Duration
}

// Found reports whether every target was recovered.
func (r *Result) Found() bool { return len(r.Unresolved) == 0 }

// Incomplete reports whether some candidates were never tested while targets remained.
func (r *Result) Incomplete() bool { return len(r.Failed) > 0 || r.Interrupted }

// Err aggregates the partition failures, or returns nil if every partition was read to its end.
func (r *Result) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	var merr *multierror.Error
	for _, pe := range r.Failed {
		merr = errors.Append(merr, pe)
	}
	return merr.ErrorOrNil()
}

func (r *Result) sortFailed() {
	sort.Slice(r.Failed, func(i, j int) bool { return r.Failed[i].Index < r.Failed[j].Index })
}
