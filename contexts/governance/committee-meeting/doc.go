// Package committeemeeting implements board meeting management inside the
// governance context: the meeting lifecycle, format invariants, decision
// capture per agenda item, agreement derivation on completion, and the
// weekly reminder sweep.
package committeemeeting
