// Package diag defines the diagnostic model shared by the recoverable
// collaborators around the lowering core.
//
// The lowering core itself (internal/lower) never emits a Diagnostic: every
// failure there is a violated program invariant and panics. Diagnostics are
// reserved for the two surfaces that can legitimately fail on unremarkable
// input: the include graph (internal/includegraph), when a file cannot be
// resolved or an OS error occurs, and project configuration loading
// (internal/config), when arcc.toml is malformed or missing a required
// section.
//
// Diagnostic is the central record: a Severity, a compact Code with a
// stable string form, a human message, a primary source.Span, and optional
// Notes for secondary context. Producers use a diag.Reporter to decouple
// emission from storage; BagReporter is the only implementation in this
// repository, collecting diagnostics into a Bag that internal/diagfmt can
// render. The CLI commands do not currently route their output through
// either.
package diag
