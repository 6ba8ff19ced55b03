package domain

import "errors"

var (
	ErrInvalidTypeID     = errors.New("type_id must be a positive integer")
	ErrUnknownSort       = errors.New("unknown sort option")
	ErrInvertedRange     = errors.New("range minimum is greater than maximum")
	ErrNegativeValue     = errors.New("numeric filter must not be negative")
	ErrInvalidPagination = errors.New("invalid pagination")
)
