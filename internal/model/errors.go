package model

import "errors"

var (
	// ErrMalformedInput is returned when the declaration file cannot be parsed
	// or does not describe a valid data model. Nothing has been written when
	// it is returned.
	ErrMalformedInput = errors.New("malformed input")

	// ErrMissingField is returned when a required field is absent. It is
	// always reported together with ErrMalformedInput.
	ErrMissingField = errors.New("missing field")

	// ErrDuplicateEntryName is returned when two entries of one table share a name.
	ErrDuplicateEntryName = errors.New("duplicate entry name")
)
