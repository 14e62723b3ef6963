package main

import (
	"io"
	"os"
	"runtime"
	"strconv"

	. "github.com/spf13/pflag"
	"golang.org/x/term"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const jobsEnv = "RATCRACK_JOBS"

/* Redirected output gets no formatting codes unless --no-codes=false is given. */
var noCodesDefault = !term.IsTerminal(int(os.Stdout.Fd()))

type options struct {
	help, str, quiet, noCodes, debug bool
	jobs                             int
	yell, purp, zero                 string
}

// newFlags registers every flag on a fresh FlagSet. Formatting codes are decided before parsing,
// by scanning args, because the help text itself is coloured.
func newFlags(args []string, stderr io.Writer) (*options, *FlagSet) {
	o := &options{noCodes: noCodesDefault, yell: "\033[33m", purp: "\033[35m", zero: "\033[0m"}
	for _, arg := range args {
		switch arg {
		case "--no-codes=false":
			o.noCodes = false
		case "--quiet", "--quiet=true":
			o.noCodes = true
		case "--no-codes", "--no-codes=true":
			o.noCodes = true
		}
	}
	if o.noCodes {
		o.yell, o.purp, o.zero = "", "", ""
	}
	purp, zero := o.purp, o.zero

	fs := NewFlagSet("ratcrack", ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {}

	fs.BoolVarP(&o.help, "help", "h", false,
		purp+"print this help menu"+zero+n)

	fs.BoolVar(&o.debug, "debug", false,
		purp+"log every partition and write a CPU profile to cpu.prof"+zero)

	fs.IntVarP(&o.jobs, "jobs", "j", runtime.NumCPU(),
		purp+"number of workers, each searching its own slice of the"+zero+
			n+purp+"wordlist"+zero+" (default $"+jobsEnv+" or one per CPU)")

	fs.BoolVar(&o.noCodes, "no-codes", o.noCodes,
		purp+"print to console w/o formatting codes or simplified"+zero+
			n+purp+"filepaths"+zero)

	fs.BoolVar(&o.quiet, "quiet", false,
		purp+"print ONLY hex:candidate for each recovered hash"+zero+
			n+"(enables --no-codes)")

	fs.BoolVarP(&o.str, "string", "s", false,
		purp+"treat HASHES as comma-separated hex digests instead of"+zero+
			n+purp+"a path"+zero)

	/* Order flags alphabetically except for help, which is hoisted to the top. */
	fs.SortFlags = false
	return o, fs
}

// envJobs reads the worker count from the environment, falling back to one per CPU.
func envJobs(warn func(format string, args ...interface{})) int {
	val := os.Getenv(jobsEnv)
	if val == "" {
		return runtime.NumCPU()
	}
	jobs, err := strconv.Atoi(val)
	if err != nil || jobs < 1 {
		warn("Invalid %s value %q, using %d workers", jobsEnv, val, runtime.NumCPU())
		return runtime.NumCPU()
	}
	return jobs
}
