// Package propertyview exposes the read-only projection of the property
// module that governance components consume for eligibility decisions.
//
// The core never mutates property records: active flags, ownership
// percentages, and occupancy are resolved at call time through the Registry
// port so that write paths always observe the current projection.
package propertyview
