package index

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by mutating and lookup operations. Callers match
// them with errors.Is; the index never aborts on malformed input.
var (
	// ErrMissingIdentifier means a document lacks the _id member, or it is
	// not a string.
	ErrMissingIdentifier = errors.New("document identifier missing or not a string")

	// ErrDuplicateIdentifier means Add was called with an external id that
	// is already indexed.
	ErrDuplicateIdentifier = errors.New("document identifier already indexed")

	// ErrUnknownIdentifier means the external id is not in the identity map.
	ErrUnknownIdentifier = errors.New("document identifier not indexed")

	// ErrMalformedPayload means a stored payload could not be re-parsed.
	// Search treats this as silent exclusion of the candidate; Get surfaces
	// it to the caller.
	ErrMalformedPayload = errors.New("stored payload cannot be parsed")
)

func wrapID(op, externalID string, sentinel error) error {
	return fmt.Errorf("%s %q: %w", op, externalID, sentinel)
}

func wrapPayload(op, externalID string, cause error) error {
	return fmt.Errorf("%s %q: %w: %v", op, externalID, ErrMalformedPayload, cause)
}
