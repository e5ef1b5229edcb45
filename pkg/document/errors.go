package document

import "errors"

// Mutation errors are data: the session layer converts them into transient
// notices at the action-dispatch boundary. Classify with errors.Is.
var (
	// ErrNotFound means a path segment did not resolve: absent key,
	// out-of-range index, or a scalar where a container was expected.
	ErrNotFound = errors.New("path not found")

	// ErrInvalidTarget means the operation's structural precondition failed,
	// e.g. renaming a sequence element or deleting the root.
	ErrInvalidTarget = errors.New("invalid target")

	// ErrDuplicateKey means an insert or rename collides with a sibling key.
	ErrDuplicateKey = errors.New("key already exists")
)
