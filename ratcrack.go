// Package ratcrack recovers preimages of hex digests by hashing every line of a wordlist. The
// wordlist is split into byte ranges, one per worker, and every worker claims matches from a
// shared set of outstanding targets until the set is empty or its range runs out.
package ratcrack

import (
	"context"
	"io"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/p7r0x7/ratcrack/algo"
	"github.com/p7r0x7/ratcrack/internal/errors"
	"github.com/p7r0x7/ratcrack/targets"
	"github.com/p7r0x7/ratcrack/wordlist"
	"github.com/sirupsen/logrus"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Config is fixed for the whole run.
type Config struct {
	Algorithm algo.Algorithm
	Workers   int /* <= 0 means one per CPU */
	Reporter  Reporter
	Logger    *logrus.Entry
}

func (c Config) withDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Reporter == nil {
		c.Reporter = discard{}
	}
	if c.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		c.Logger = logrus.NewEntry(l)
	}
	return c
}

// Input names where a run's targets and candidates come from.
type Input struct {
	Targets  string   /* path to a file of hex digests, one per line */
	Digests  []string /* hex digests given directly; used instead of Targets when non-empty */
	Wordlist string   /* path, or "-" to read Stdin without partitioning */
	Stdin    io.Reader
}

// Crack loads the targets, prepares the wordlist, and searches it. Load failures, including an
// unopenable wordlist, abort before any hashing and are returned as errors; partition read failures
// during the search are carried in the Result.
func Crack(ctx context.Context, cfg Config, in Input) (*Result, error) {
	cfg = cfg.withDefaults()
	if !cfg.Algorithm.Valid() {
		return nil, errors.Errorf("invalid algorithm %v", cfg.Algorithm)
	}
	t := time.Now()

	var set *targets.Set
	var err error
	if len(in.Digests) > 0 {
		set, err = targets.Parse(in.Digests, cfg.Algorithm.Size())
	} else {
		set, err = targets.LoadFile(in.Targets, cfg.Algorithm.Size())
	}
	if err != nil {
		return nil, err
	}

	var readers []*wordlist.Reader
	if in.Wordlist == "-" {
		stdin := in.Stdin
		if stdin == nil {
			return nil, errors.New("wordlist is - but no stdin was given")
		}
		readers = []*wordlist.Reader{wordlist.NewReader(stdin)}
	} else if readers, err = open(in.Wordlist, cfg.Workers); err != nil {
		return nil, err
	}
	load := time.Since(t)
	cfg.Logger.WithFields(logrus.Fields{
		"targets": set.Len(), "partitions": len(readers), "load": load,
	}).Info("Targets loaded")

	res := search(ctx, cfg, set, readers)
	res.LoadTime = load
	return res, nil
}

// Run searches the wordlist at path for the digests in set. The set is consumed: matched digests
// are removed from it.
func Run(ctx context.Context, cfg Config, set *targets.Set, path string) (*Result, error) {
	cfg = cfg.withDefaults()
	if err := check(cfg, set); err != nil {
		return nil, err
	}
	t := time.Now()
	readers, err := open(path, cfg.Workers)
	if err != nil {
		return nil, err
	}
	load := time.Since(t)
	res := search(ctx, cfg, set, readers)
	res.LoadTime = load
	return res, nil
}

// RunReader is Run for a stream that cannot be partitioned; a single worker reads all of r.
func RunReader(ctx context.Context, cfg Config, set *targets.Set, r io.Reader) (*Result, error) {
	cfg = cfg.withDefaults()
	if err := check(cfg, set); err != nil {
		return nil, err
	}
	return search(ctx, cfg, set, []*wordlist.Reader{wordlist.NewReader(r)}), nil
}

func check(cfg Config, set *targets.Set) error {
	switch {
	case !cfg.Algorithm.Valid():
		return errors.Errorf("invalid algorithm %v", cfg.Algorithm)
	case set == nil:
		return errors.New("nil target set")
	case set.Size() != cfg.Algorithm.Size():
		return errors.Errorf("targets are %d-byte digests but %s digests are %d bytes",
			set.Size(), cfg.Algorithm, cfg.Algorithm.Size())
	}
	return nil
}

/* open splits path and gives every partition its own file handle before the clock starts. */
func open(path string, n int) ([]*wordlist.Reader, error) {
	parts, err := wordlist.SplitFile(path, n)
	if err != nil {
		return nil, errors.WithStackTrace(&errors.LoadError{Path: path, Err: err})
	}
	readers := make([]*wordlist.Reader, 0, len(parts))
	for _, p := range parts {
		rd, err := wordlist.Open(path, p)
		if err != nil {
			for _, opened := range readers {
				opened.Close()
			}
			return nil, errors.WithStackTrace(&errors.LoadError{Path: path, Err: err})
		}
		readers = append(readers, rd)
	}
	return readers, nil
}

func search(ctx context.Context, cfg Config, set *targets.Set, readers []*wordlist.Reader) *Result {
	res := &Result{Algorithm: cfg.Algorithm, Workers: len(readers)}
	var (
		found   *atomic.Bool
		summing sync.WaitGroup
		mapping sync.Mutex
	)
	/* With one target the first claim ends the run, so a plain flag is the termination signal. */
	if set.Len() == 1 {
		found = new(atomic.Bool)
	}
	emit := func(m Match) {
		mapping.Lock()
		res.Matches = append(res.Matches, m)
		cfg.Reporter.Match(m)
		mapping.Unlock()
	}

	start := time.Now()
	summing.Add(len(readers))
	for _, rd := range readers {
		w := &worker{rd: rd, alg: cfg.Algorithm, set: set, found: found, emit: emit, start: start}
		go func() {
			defer summing.Done()
			log := cfg.Logger.WithField("partition", rd.Partition().String())
			log.Debug("Worker started")

			st, err := w.run(ctx)
			if cerr := rd.Close(); cerr != nil {
				log.WithError(cerr).Debug("Closing wordlist failed")
			}

			mapping.Lock()
			res.Candidates += w.tried
			if pe := (*errors.PartitionError)(nil); errors.As(err, &pe) {
				res.Failed = append(res.Failed, pe)
			}
			mapping.Unlock()

			if err != nil {
				log.WithError(err).Warn("Partition not fully searched")
			}
			log.WithFields(logrus.Fields{"state": st, "candidates": w.tried}).Debug("Worker done")
		}()
	}
	summing.Wait() /* Every worker has observed the end of the search and returned. */

	res.SearchTime = time.Since(start)
	res.Unresolved = set.Remaining()
	res.Interrupted = ctx.Err() != nil && !set.Empty()
	res.sortFailed()
	cfg.Logger.WithFields(logrus.Fields{
		"candidates": res.Candidates, "found": len(res.Matches),
		"unresolved": len(res.Unresolved), "search": res.SearchTime,
	}).Infof("Search finished across %d workers", res.Workers)
	return res
}
