package domain

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrMalformedURL = errors.New("malformed object url")
	ErrFetch        = errors.New("fetch failed")
	ErrDetection    = errors.New("detection failed")
)
