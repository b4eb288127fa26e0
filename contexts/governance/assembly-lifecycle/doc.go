// Package assemblylifecycle implements owners' assembly orchestration inside
// the governance context.
//
// The module owns the assembly state machine (planned, convened, in session,
// completed, submitted, cancelled), the quorum registration snapshot with
// double-call thresholds, the formal agenda, and submission-time derivation
// of agreements from approved agenda items.
package assemblylifecycle
