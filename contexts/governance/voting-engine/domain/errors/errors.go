package errors

import "errors"

var (
	ErrInvalidSessionInput = errors.New("invalid voting session input")
	ErrSessionNotFound     = errors.New("voting session not found")
	ErrSessionNotOpen      = errors.New("voting session is not open")
	ErrSessionNotClosed    = errors.New("voting session is not closed")
	ErrNotSubmittable      = errors.New("voting session is not submittable")
	ErrTerminalState       = errors.New("voting session is in a terminal state")
	ErrDoubleVote          = errors.New("voter has already cast a ballot in this session")
	ErrNotEligible         = errors.New("voter is not eligible for this session")
	ErrIntegrityBroken     = errors.New("vote signature verification failed")
	ErrVoteNotFound        = errors.New("vote not found")
	ErrAssemblyUnavailable = errors.New("parent assembly is not available for voting")
)
