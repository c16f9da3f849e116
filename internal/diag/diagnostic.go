package diag

import "arcc/internal/source"

// Note provides auxiliary context for a diagnostic message.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic captures a single issue reported by a recoverable collaborator
// (the include graph, config loading). The lowering core itself never
// constructs one of these: invariant violations there panic instead.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}
