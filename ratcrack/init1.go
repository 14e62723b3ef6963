//go:build windows

package main

import (
	"os"

	"golang.org/x/sys/windows"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

func init() {
	noCodesDefault = noCodesDefault || !enableVT(os.Stdout) || !enableVT(os.Stderr)
}

// enableVT turns on escape-sequence processing for a console handle, reporting false if f is not a
// console or its console cannot interpret formatting codes.
func enableVT(f *os.File) bool {
	h := windows.Handle(f.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return false
	}
	if mode&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING != 0 {
		return true
	}
	return windows.SetConsoleMode(h, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING) == nil
}
