package rst2rfcxml

import "errors"

// Sentinel errors for library operations.
var (
	ErrNoInput      = errors.New("no input sources specified")
	ErrOutputCreate = errors.New("failed to create output")
	ErrOutputWrite  = errors.New("failed to write output")

	// Metadata directive errors.
	ErrNoAuthor    = errors.New("author directive without a preceding authorFullname")
	ErrAuthorOrder = errors.New("author directive not adjacent to its authorFullname")
)
