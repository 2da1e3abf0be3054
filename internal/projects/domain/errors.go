package domain

import "errors"

var (
	ErrNotFound   = errors.New("project not found")
	ErrValidation = errors.New("validation failed")
	ErrIO         = errors.New("i/o failure")
	ErrStore      = errors.New("store unavailable")
)
