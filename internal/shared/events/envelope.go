package events

import "time"

// NotificationKind enumerates the governance event kinds accepted by the
// notification sink.
type NotificationKind string

const (
	KindOverdue         NotificationKind = "overdue"
	KindDueSoon         NotificationKind = "due-soon"
	KindMeetingReminder NotificationKind = "meeting-reminder"
	KindVoteResult      NotificationKind = "vote-result"
	KindPollResult      NotificationKind = "poll-result"
)

// Notification is the shared record handed to the notification sink.
// Delivery is at-least-once; emitters deduplicate per (kind, subject, day).
type Notification struct {
	EventID       string           `json:"event_id"`
	Kind          NotificationKind `json:"kind"`
	SubjectID     string           `json:"subject_id"`
	Recipients    []string         `json:"recipients"`
	OccurredAtUTC time.Time        `json:"occurred_at_utc"`
	Payload       map[string]any   `json:"payload"`
}

// DedupKey is the reservation key for sink emissions: one emission per
// (kind, subject, calendar day).
func (n Notification) DedupKey() string {
	return string(n.Kind) + ":" + n.SubjectID + ":" + n.OccurredAtUTC.UTC().Format("2006-01-02")
}
