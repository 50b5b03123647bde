package domain

import "errors"

var (
	ErrInvalidID    = errors.New("invalid_id")
	ErrInvalidRate  = errors.New("invalid_rate")
	ErrInvalidLabel = errors.New("invalid_label")
	ErrDuplicate    = errors.New("duplicate_rate")
	ErrNotFound     = errors.New("not_found")
)
