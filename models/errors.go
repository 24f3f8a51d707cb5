package models

import (
	"errors"
	"fmt"
)

// Input-absence errors
var (
	ErrNoArchives = errors.New("no archives found in input directory")
	ErrNoTables   = errors.New("archive contains no tabular entries")
)

// Archive and schema errors
var (
	ErrCorruptArchive = errors.New("archive is corrupt or unreadable")
	ErrSchemaMismatch = errors.New("tables have mismatched columns")
	ErrMissingColumn  = errors.New("required column is missing")
)

// Data-quality errors
var (
	ErrUnknownMonth = errors.New("unrecognized month abbreviation")
	ErrInvalidDay   = errors.New("day must be an integer between 1 and 31")
	ErrInvalidValue = errors.New("value cannot be parsed")
)

// DataError locates a data-quality problem in the unified table.
type DataError struct {
	Row    int
	Source string
	Column string
	Value  string
	Err    error
}

func (e *DataError) Error() string {
	return fmt.Sprintf("row %d (%s): column %s = %q: %v", e.Row, e.Source, e.Column, e.Value, e.Err)
}

// Unwrap allows errors.Is against the sentinel errors above
func (e *DataError) Unwrap() error {
	return e.Err
}
