package ratcrack

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/p7r0x7/ratcrack/algo"
	"github.com/p7r0x7/ratcrack/internal/errors"
	"github.com/p7r0x7/ratcrack/targets"
	"github.com/p7r0x7/ratcrack/wordlist"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

type state uint8

const (
	running state = iota
	exhausted
	cancelled
	failed
)

func (s state) String() string {
	return [...]string{"running", "exhausted", "cancelled", "failed"}[s]
}

// worker drives one partition. It never resumes once run returns.
type worker struct {
	rd    *wordlist.Reader
	alg   algo.Algorithm
	set   *targets.Set
	found *atomic.Bool /* non-nil only in single-target mode */
	emit  func(Match)
	start time.Time
	tried int64
}

// halted is polled once per candidate, so at most one more digest is computed per worker after the
// search is decided.
func (w *worker) halted(done <-chan struct{}) bool {
	select {
	case <-done:
		return true
	default:
	}
	if w.found != nil {
		return w.found.Load()
	}
	return w.set.Empty()
}

func (w *worker) run(ctx context.Context) (state, error) {
	done, sum := ctx.Done(), make([]byte, 0, w.alg.Size())
	for {
		if w.halted(done) {
			return cancelled, nil
		}
		if !w.rd.Next() {
			break
		}
		w.tried++

		sum = w.alg.Sum(sum[:0], w.rd.Bytes())
		if !w.set.Remove(sum) {
			continue
		}
		if w.found != nil {
			w.found.Store(true) /* other workers poll this between candidates */
		}
		w.emit(Match{
			Digest:    targets.Digest(sum),
			Candidate: w.rd.Text(),
			Elapsed:   time.Since(w.start),
			Partition: w.rd.Partition().Index,
		})
		if w.found != nil {
			return cancelled, nil
		}
	}

	if err := w.rd.Err(); err != nil {
		p := w.rd.Partition()
		return failed, &errors.PartitionError{
			Index: p.Index, Start: p.Start, End: p.End, Offset: w.rd.Offset(), Err: err}
	}
	return exhausted, nil
}
