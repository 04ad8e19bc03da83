package savings

import (
	"fmt"
	"strings"
	"time"
)

// ParseError describes one malformed row in an input file.
type ParseError struct {
	File   string
	Row    int
	Reason string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s row %d: %s", e.File, e.Row, e.Reason)
}

// ParseReport collects every parse error found across all input files so a
// single run surfaces all problems at once.
type ParseReport struct {
	Errors []ParseError
}

func (r *ParseReport) Add(file string, row int, reason string) {
	r.Errors = append(r.Errors, ParseError{File: file, Row: row, Reason: reason})
}

func (r *ParseReport) Merge(other *ParseReport) {
	if other != nil {
		r.Errors = append(r.Errors, other.Errors...)
	}
}

func (r *ParseReport) Empty() bool {
	return r == nil || len(r.Errors) == 0
}

func (r *ParseReport) Error() string {
	if r.Empty() {
		return "no parse errors"
	}
	lines := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		lines = append(lines, e.Error())
	}
	return fmt.Sprintf("%d malformed rows:\n%s", len(r.Errors), strings.Join(lines, "\n"))
}

// MissingPriceError reports energy samples whose timestamp is covered by no
// price interval. The merge fails closed: all gaps are collected before the
// run aborts.
type MissingPriceError struct {
	Timestamps []time.Time
}

func (e *MissingPriceError) Error() string {
	if len(e.Timestamps) == 1 {
		return fmt.Sprintf("no price interval covers sample at %s", e.Timestamps[0].Format(time.RFC3339))
	}
	return fmt.Sprintf("no price interval covers %d samples (first at %s, last at %s)",
		len(e.Timestamps),
		e.Timestamps[0].Format(time.RFC3339),
		e.Timestamps[len(e.Timestamps)-1].Format(time.RFC3339))
}

// DataIntegrityError signals a negative or non-finite energy value that
// survived past the loader. The loader rejects these; reaching the calculator
// with one means a broken invariant, and the run must not produce a
// partially-wrong figure.
type DataIntegrityError struct {
	Time  time.Time
	Field string
	Value float64
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("invalid %s value %g at %s", e.Field, e.Value, e.Time.Format(time.RFC3339))
}

// EmptyInputError means there was nothing to analyze: no files matched, or
// the date-range filter left zero rows.
type EmptyInputError struct {
	Reason string
}

func (e *EmptyInputError) Error() string {
	return "empty input: " + e.Reason
}
