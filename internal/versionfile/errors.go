package versionfile

import "errors"

var (
	// ErrMissingFile is returned when a required input file does not exist
	// or cannot be read.
	ErrMissingFile = errors.New("missing file")

	// ErrMalformedConfig is returned when a manifest fails to parse or lacks
	// the key path being synchronized.
	ErrMalformedConfig = errors.New("malformed config")

	// ErrNotFound is returned when a required entry or text pattern is absent.
	ErrNotFound = errors.New("version not found")

	// ErrOutOfSync is returned in check mode when source and manifest disagree.
	ErrOutOfSync = errors.New("versions out of sync")
)
