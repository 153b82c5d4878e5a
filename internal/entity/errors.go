package entity

import "errors"

// Error categories matched with errors.Is; handlers map them to HTTP codes.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("invalid input")
	ErrStorage      = errors.New("storage failure")
	ErrUnauthorized = errors.New("unauthorized")
)
