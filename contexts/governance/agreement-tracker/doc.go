// Package agreementtracker implements agreement tracking inside the
// governance context.
//
// The module owns the lifecycle of tracked commitments derived from assembly
// and committee-meeting decisions: ACU numbering, append-only progress
// updates, completion promotion, overdue escalation, and due-soon reminders.
// Periodic work runs through idempotent RunOnce workers driven by the
// platform scheduler.
package agreementtracker
