package errors

import "errors"

var (
	ErrInvalidPollInput     = errors.New("invalid poll input")
	ErrOptionsInsufficient  = errors.New("poll needs at least two options")
	ErrOptionsDuplicate     = errors.New("poll options must be distinct")
	ErrPollNotFound         = errors.New("poll not found")
	ErrPollNotOpen          = errors.New("poll is not open")
	ErrOutsideWindow        = errors.New("poll window is not active")
	ErrAudienceMismatch     = errors.New("respondent is not in the poll audience")
	ErrDuplicateResponse    = errors.New("respondent already answered this poll")
	ErrUnknownOption        = errors.New("option does not belong to this poll")
	ErrTerminalState        = errors.New("poll is in a terminal state")
	ErrInvalidTransition    = errors.New("invalid poll status transition")
	ErrAudienceUnresolvable = errors.New("poll audience could not be resolved")
)
