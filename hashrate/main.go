package main

import (
	"context"
	. "fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dterei/gotsc"
	"github.com/p7r0x7/ratcrack"
	"github.com/p7r0x7/ratcrack/algo"
	"github.com/p7r0x7/ratcrack/targets"
	"github.com/p7r0x7/ratcrack/wordlist"
	"github.com/spf13/pflag"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// Hashrate measures how fast each algorithm digests candidate-sized inputs on this machine, and how
// many candidates per second the full engine sustains over a synthetic wordlist.

var lengths = [...]int{8, 16, 64}
var calltime = gotsc.TSCOverhead()

func benchAlg(a algo.Algorithm) {
	const s = len(lengths)
	rates, speeds, usages := make([]float64, s), make([]float64, s), make([]float64, s)

	for i, size := range lengths {
		msg := make([]byte, size)
		fn := func(b *testing.B) {
			sum := make([]byte, 0, a.Size())
			b.SetBytes(int64(size))
			b.ReportAllocs()
			b.ResetTimer()
			for i := b.N; i > 0; i-- {
				sum = a.Sum(sum[:0], msg)
			}
		}

		totalHz, polls, mut, stop := uint64(0), uint64(0), &sync.Mutex{}, make(chan struct{})
		if calltime > 0 {
			go func() {
				for {
					select {
					case <-stop:
						return
					default:
					}
					tsc1 := gotsc.BenchStart()
					time.Sleep(time.Millisecond)
					tsc2 := gotsc.BenchEnd()

					mut.Lock()
					totalHz += tsc2 - tsc1 - calltime
					polls++
					mut.Unlock()

					time.Sleep(time.Millisecond * 9)
				}
			}()
		}
		r := testing.Benchmark(fn)
		close(stop)
		mut.Lock()
		totalHz *= 1000

		perSec := float64(r.N) / r.T.Seconds()
		rates[i] = perSec / 1e6 /* MH/s */
		if polls > 0 {
			speeds[i] = float64(totalHz) / float64(polls) / perSec /* cycles per digest */
		}
		usages[i] = float64(r.AllocedBytesPerOp())
		mut.Unlock()
	}

	Println("Rate  " + fmtFloats(rates...) + "   MH/s")
	if calltime > 0 {
		Println("      " + fmtFloats(speeds...) + "   cycles/hash")
	}
	Println("Usage " + fmtFloats(usages...) + "   B/op\n")
}

// engine times a full search for an absent target, so every candidate is hashed exactly once.
func engine(a algo.Algorithm, path string, candidates int) error {
	set := targets.New(a.Size(), a.Digest([]byte("\x00not a synthetic word\x00")))
	res, err := ratcrack.Run(context.Background(), ratcrack.Config{Algorithm: a}, set, path)
	if err != nil {
		return err
	}
	if err = res.Err(); err != nil {
		return err
	}
	rate := float64(res.Candidates) / res.SearchTime.Seconds() / 1e6
	Printf("%-12s %s MH/s across %d workers (%d of %d candidates in %s)\n",
		a, fmtFloats(rate), res.Workers, res.Candidates, candidates,
		res.SearchTime.Truncate(time.Millisecond))
	return nil
}

func fmtFloats(f ...float64) string {
	var str, style string
	for _, v := range f {
		switch whole := float64(int64(v)) == v; {
		case v > 1e8 || (v < 1e-6 && !whole):
			style = "%8.3g"
		case v <= 1e1 && !whole:
			style = "%8.6f"
		case v <= 1e2 && !whole:
			style = "%8.5f"
		case v <= 1e3 && !whole:
			style = "%8.4f"
		case v <= 1e4 && !whole:
			style = "%8.3f"
		case v <= 1e5 && !whole:
			style = "%8.2f"
		case v <= 1e6 && !whole:
			style = "%8.1f"
		default:
			style = "%8.f"
		}
		str += "  " + Sprintf(style, v)
	}
	return str
}

func main() {
	words := pflag.IntP("words", "n", 1<<20, "synthetic wordlist length for the engine run")
	names := pflag.StringSliceP("algorithms", "a", algo.List(), "algorithms to measure")
	pflag.Parse()

	var algs []algo.Algorithm
	for _, name := range *names {
		a, err := algo.Parse(name)
		if err != nil {
			Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		algs = append(algs, a)
	}

	Printf("Running Hashrate on %d CPUs!\n%s/%s %s\n\n"+
		"              8B       16B       64B\n",
		runtime.NumCPU(), runtime.GOOS, runtime.GOARCH, algo.Features())
	t := time.Now()

	for _, a := range algs {
		Println(a)
		benchAlg(a)
	}

	dir, err := os.MkdirTemp("", "hashrate")
	if err != nil {
		Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "words.txt")
	f, err := os.Create(path)
	if err == nil {
		err = wordlist.Synthesize(f, *words, []byte("hashrate"))
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	Println(strings.Repeat("=", 46))
	for _, a := range algs {
		if err = engine(a, path, *words); err != nil {
			Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	Println("\nFinished in " + time.Since(t).Truncate(time.Millisecond).String() + ".")
}
