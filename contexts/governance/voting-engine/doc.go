// Package votingengine implements motion voting inside the governance
// context.
//
// The module owns voting-session lifecycle (draft, open, closed, submitted),
// eligibility against the parent assembly's quorum, weighted ballot casting
// with integrity signatures, denormalized tallying under the four majority
// rules, and certified submission. Anonymous sessions retain the
// voter-to-power mapping for recounts but never reveal voter choices.
package votingengine
