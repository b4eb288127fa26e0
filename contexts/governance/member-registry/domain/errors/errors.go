package errors

import "errors"

var (
	ErrInvalidMemberInput = errors.New("invalid member input")
	ErrMemberNotFound     = errors.New("member not found")
	ErrRoleConflict       = errors.New("role is already held by an active member")
	ErrPropertyInactive   = errors.New("linked property is inactive")
	ErrDateOrder          = errors.New("start date must precede end date")
	ErrMemberInactive     = errors.New("member is inactive")
)
