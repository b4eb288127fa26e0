package errors

import "errors"

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrPropertyInactive = errors.New("property is inactive")
)
