package errors

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// LoadError reports an unusable target input. It is always fatal: no search begins.
type LoadError struct {
	Path string
	Line int /* 0 if the failure is not tied to a line */
	Err  error
}

func (e *LoadError) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("load %s: line %d: %v", e.Path, e.Line, e.Err)
	case e.Path != "":
		return fmt.Sprintf("load %s: %v", e.Path, e.Err)
	default:
		return fmt.Sprintf("load: %v", e.Err)
	}
}

func (e *LoadError) Unwrap() error { return e.Err }

// PartitionError reports a read failure that ended one worker's contribution early. Candidates in
// [Offset, End) of that partition were never tested.
type PartitionError struct {
	Index      int
	Start, End int64 /* End is -1 for the final, unbounded partition. */
	Offset     int64
	Err        error
}

func (e *PartitionError) Error() string {
	end := "EOF"
	if e.End >= 0 {
		end = fmt.Sprint(e.End)
	}
	return fmt.Sprintf("partition %d [%d, %s): read failed at byte %d: %v",
		e.Index, e.Start, end, e.Offset, e.Err)
}

func (e *PartitionError) Unwrap() error { return e.Err }

// Append accumulates partition failures in the shape go-multierror expects; a nil *Error means no
// failures.
func Append(merr *multierror.Error, errs ...error) *multierror.Error {
	merr = multierror.Append(merr, errs...)
	merr.ErrorFormat = listFormat
	return merr
}

func listFormat(errs []error) string {
	if len(errs) == 1 {
		return errs[0].Error()
	}
	lines := make([]string, len(errs))
	for i, err := range errs {
		lines[i] = "  * " + err.Error()
	}
	return fmt.Sprintf("%d partitions failed:\n%s", len(errs), strings.Join(lines, "\n"))
}
