package errors

import "errors"

var (
	ErrInvalidScheduleInput = errors.New("invalid meeting schedule input")
	ErrScheduleNotFound     = errors.New("meeting schedule not found")
	ErrDuplicateDate        = errors.New("scheduled dates must be unique within the series")
	ErrDateOutsideYear      = errors.New("scheduled date falls outside the target year")
	ErrNotApproved          = errors.New("only approved schedules materialize meetings")
	ErrAlreadyApproved      = errors.New("schedule is already approved")
)
