package application

import "errors"

// Expected failure conditions surfaced to handlers. Anything else coming out
// of a service is treated as an internal error.
var (
	ErrProductNotFound = errors.New("product not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotOwner        = errors.New("not the owner")
)
