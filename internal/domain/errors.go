package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict, e.g. a duplicate
	// collection title.
	ErrAlreadyExists = errors.New("already exists")
)
