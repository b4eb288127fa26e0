// Package meetingscheduler implements yearly meeting planning inside the
// governance context: standard schedule generation per period, approval, and
// the idempotent sweep that materializes upcoming entries into committee
// meetings.
package meetingscheduler
