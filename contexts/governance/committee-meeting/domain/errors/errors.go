package errors

import "errors"

var (
	ErrInvalidMeetingInput = errors.New("invalid committee meeting input")
	ErrMeetingNotFound     = errors.New("committee meeting not found")
	ErrInvalidTransition   = errors.New("meeting transition not allowed from current status")
	ErrTerminalState       = errors.New("committee meeting is in a terminal state")
	ErrCriticalUndecided   = errors.New("critical agenda items lack a decision")
	ErrNoAttendees         = errors.New("meeting submission requires at least one attendee")
	ErrAgendaItemNotFound  = errors.New("agenda item not found")
)
