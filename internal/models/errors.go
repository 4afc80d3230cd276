package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for pipeline stages.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrMetadata indicates the embedded metadata could not be read or
	// did not contain a capture date.
	ErrMetadata = errors.New("metadata error")

	// ErrValidation indicates an empty answer to a required prompt.
	ErrValidation = errors.New("validation error")

	// ErrIO indicates a filesystem failure while moving the photo or
	// writing its page.
	ErrIO = errors.New("io error")

	// ErrDestinationExists indicates a target file is already present.
	// Nothing is overwritten. Wraps ErrIO.
	ErrDestinationExists = fmt.Errorf("%w: destination already exists", ErrIO)

	// ErrSpawn indicates the upload command could not be started.
	ErrSpawn = errors.New("spawn error")

	// ErrUploadFailed indicates the upload command exited non-zero.
	ErrUploadFailed = errors.New("upload failed")
)
