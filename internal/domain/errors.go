package domain

import "errors"

var (
	// ErrEmptyBank is returned when the question bank holds no pairs.
	// The service cannot function without questions, so this is fatal at startup.
	ErrEmptyBank = errors.New("question bank is empty")
)
