package main

import (
	"context"
	. "fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"unicode/utf8"

	"github.com/p7r0x7/ratcrack"
	"github.com/p7r0x7/ratcrack/algo"
	"github.com/p7r0x7/ratcrack/internal/errors"
	"github.com/p7r0x7/ratcrack/report"
	"github.com/p7r0x7/vainpath"
	"github.com/sirupsen/logrus"
	. "github.com/spf13/pflag"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const n = "\n"
const success, failure, invalid = 0, 1, 2

func main() { os.Exit(program(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)) }

// help prints a usage menu. To consistently render in most terminal windows, its content should be
// no wider than 80 columns.
func help(fs *FlagSet, o *options, stderr io.Writer) {
	origin, err := os.Executable()
	if err != nil {
		origin = "ratcrack" /* Default binary name */
	} else {
		origin = filepath.Base(origin)
	}
	name := vainpath.Trim(origin, "…", 12)
	spaces := strings.Repeat(" ", utf8.RuneCountInString(name)+3)
	Fprint(stderr, o.yell, "Recovers the words behind hashes from a wordlist.", o.zero, n+n+
		"Usage:"+n+
		"  ", name, " [-h]"+n,
		spaces, "[-j <int>] [--quiet|no-codes] [--debug] HASHFILE ALGORITHM WORDLIST|-"+n,
		spaces, "[-j <int>] [--quiet|no-codes] [--debug] -s HEX[,HEX...] ALGORITHM WORDLIST|-"+n+n+
			"Options:"+n)
	fs.PrintDefaults()
	Fprint(stderr, n+"Algorithms: ", strings.Join(algo.List(), ", "), n+n+
		"Each hash is searched for once no matter how often it appears. `-` reads the"+n+
		"wordlist from ", os.Stdin.Name(), " with a single worker. Exit status is 0 when the search"+n+
		"completes, 1 when part of the wordlist could not be read or the search was"+n+
		"interrupted, and 2 for invalid input."+n)
}

// program is the command-line interface for ratcrack: it parses flags, runs one search, prints the
// results as they arrive, and maps the outcome to an exit status.
func program(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	o, fs := newFlags(args, stderr)
	if err := fs.Parse(args); err != nil {
		Fprintln(stderr, err)
		return invalid
	}

	log := logrus.New()
	log.SetOutput(stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableColors: o.noCodes, FullTimestamp: true})
	log.SetLevel(logrus.WarnLevel)
	if o.debug {
		log.SetLevel(logrus.DebugLevel)
	}
	if !fs.Changed("jobs") {
		o.jobs = envJobs(log.Warnf)
	}

	if o.help || fs.NArg() == 0 {
		help(fs, o, stderr)
		return success
	} else if fs.NArg() != 3 {
		log.Errorf("Expected HASHES ALGORITHM WORDLIST, got %d arguments", fs.NArg())
		return invalid
	} else if o.jobs < 1 {
		log.Errorf("--jobs must be at least 1, got %d", o.jobs)
		return invalid
	}

	alg, err := algo.Parse(fs.Arg(1))
	if err != nil {
		log.Error(err)
		return invalid
	}

	if o.debug {
		log.Debugf("CPU features: %s", algo.Features())
		if cf, err := os.Create("cpu.prof"); err != nil {
			log.WithError(err).Warn("CPU profile not written")
		} else {
			defer cf.Close()
			if err = pprof.StartCPUProfile(cf); err == nil {
				defer pprof.StopCPUProfile()
			}
		}
	}

	in := ratcrack.Input{Wordlist: fs.Arg(2), Stdin: stdin}
	if o.str {
		in.Digests = strings.Split(fs.Arg(0), ",")
	} else {
		in.Targets = fs.Arg(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out := report.New(stdout, o.quiet, o.noCodes)
	res, err := ratcrack.Crack(ctx, ratcrack.Config{
		Algorithm: alg,
		Workers:   o.jobs,
		Reporter:  out,
		Logger:    logrus.NewEntry(log),
	}, in)
	if err != nil {
		log.Error(err)
		log.Debug(errors.ErrorWithStackTrace(err))
		return invalid
	}

	out.Summary(res, in.Wordlist)
	if res.Incomplete() {
		return failure
	}
	return success
}
