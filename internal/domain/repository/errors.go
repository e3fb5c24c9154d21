package repository

import (
	"errors"
	"fmt"
)

// ErrRecordNotFound is returned when a sale record does not exist
var ErrRecordNotFound = errors.New("sale record not found")

// SourceUnavailableError indicates that a record source could not be
// reached at all, as opposed to returning bad data.
type SourceUnavailableError struct {
	Source string
	Err    error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("record source %s unavailable: %v", e.Source, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

// MalformedDataError indicates that a record source was reachable but
// returned data that could not be decoded into sale records.
type MalformedDataError struct {
	Source string
	Err    error
}

func (e *MalformedDataError) Error() string {
	return fmt.Sprintf("malformed data from %s: %v", e.Source, e.Err)
}

func (e *MalformedDataError) Unwrap() error {
	return e.Err
}

// WriteFailureError indicates that a report sink rejected or failed a
// write. Destination is the key the report was published under.
type WriteFailureError struct {
	Destination string
	Err         error
}

func (e *WriteFailureError) Error() string {
	return fmt.Sprintf("failed to write report %s: %v", e.Destination, e.Err)
}

func (e *WriteFailureError) Unwrap() error {
	return e.Err
}
