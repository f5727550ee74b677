package repository

import "errors"

var (
	// ErrNotFound signals that the referenced row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotOwner signals that the row exists but belongs to another user.
	ErrNotOwner = errors.New("not owner")
)
