// Package pollengine runs lightweight asynchronous polls for quick or
// non-binding community decisions. Eligibility is resolved per audience
// when the poll opens, responses are deduplicated per respondent, and
// closing finalizes participation and per-option shares.
package pollengine
