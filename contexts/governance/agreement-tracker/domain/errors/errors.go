package errors

import "errors"

var (
	ErrInvalidAgreementInput = errors.New("invalid agreement input")
	ErrAgreementNotFound     = errors.New("agreement not found")
	ErrDateOrder             = errors.New("due date must not precede agreement date")
	ErrTerminalState         = errors.New("agreement is in a terminal state")
	ErrInvalidProgressInput  = errors.New("invalid progress update input")
)
