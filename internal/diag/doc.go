// Package diag defines the diagnostic model shared by every validation
// phase.
//
// Diagnostic is the central record: a Severity, a compact numeric Code
// with a stable string form, a short human message, the primary
// source.Span the finding points at, the index of the owning tree node,
// and optional secondary Notes ("first declared here").
//
// Producers emit through the Reporter interface so they stay decoupled
// from storage and formatting. BagReporter aggregates into a Bag, the
// append-only list a validation run returns to its caller. Diagnostics
// are advisory: no producer may stop walking the document because one
// was emitted.
package diag
