package algo

import (
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Features lists the instruction-set extensions that the SIMD-backed digests can take advantage of
// on this machine, for debug logging. An empty string means portable code paths only.
func Features() string {
	var have []string
	switch runtime.GOARCH {
	case "amd64", "386":
		for _, f := range [...]struct {
			ok   bool
			name string
		}{
			{cpu.X86.HasSSSE3, "ssse3"},
			{cpu.X86.HasSSE41, "sse4.1"},
			{cpu.X86.HasAVX2, "avx2"},
			{cpu.X86.HasAVX512F, "avx512f"},
			{cpu.X86.HasBMI2, "bmi2"},
		} {
			if f.ok {
				have = append(have, f.name)
			}
		}
	case "arm64":
		for _, f := range [...]struct {
			ok   bool
			name string
		}{
			{cpu.ARM64.HasSHA2, "sha2"},
			{cpu.ARM64.HasSHA512, "sha512"},
			{cpu.ARM64.HasSHA3, "sha3"},
			{cpu.ARM64.HasASIMD, "asimd"},
		} {
			if f.ok {
				have = append(have, f.name)
			}
		}
	}
	return strings.Join(have, ",")
}
