// Package pricing reconciles an admin-edited order price against the base
// pricing breakdown.
//
// A Breakdown is either a LineList (legalization orders) or the fixed-key
// VisaFees record (visa orders); the shape is chosen once by BreakdownFor and
// the engine only ever sees Lines. LineOverride values layer admin edits over
// individual lines by position without discarding the derived base amount, so
// a Record can always be reset to its defaults.
//
// ComputeTotal never fails. Missing or malformed line data falls back to a
// zero base amount.
package pricing
