package models

import "errors"

// Error kinds surfaced by the boards. Wrap them with fmt.Errorf("%w: ...")
// and test with errors.Is.
var (
	ErrValidation    = errors.New("validation failed")
	ErrNotFound      = errors.New("not found")
	ErrDuplicateVote = errors.New("already voted")
)
