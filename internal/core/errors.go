package core

import "errors"

// Failure kinds for every public operation. Operations return results rather
// than panicking past their boundary; callers pick these out with errors.Is.
var (
	// ErrValidation means caller-supplied input failed a required-field or
	// shape check (missing text, missing folder name, missing id).
	ErrValidation = errors.New("validation failed")

	// ErrNotFound means a referenced id did not exist at mutation time.
	ErrNotFound = errors.New("not found")

	// ErrInvalidStatus means a status value outside todo/inProgress/done.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrUpstream means the extraction endpoint call failed or returned no
	// usable text block.
	ErrUpstream = errors.New("extraction service failed")

	// ErrNoExtractableJSON means the completion text contained no JSON array
	// of objects.
	ErrNoExtractableJSON = errors.New("no extractable JSON in completion")

	// ErrMalformedExtraction means a JSON array was located but did not parse.
	ErrMalformedExtraction = errors.New("malformed extraction JSON")

	// ErrPersistence means the store rejected a read or write.
	ErrPersistence = errors.New("persistence failed")
)
