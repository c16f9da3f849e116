package diag

import "fmt"

// Code identifies the kind of a diagnostic. The lowering core never
// allocates one of these (its failures are panics, per design); codes are
// reserved for the two recoverable surfaces in this repository: the include
// graph and project configuration.
type Code uint16

const (
	UnknownCode Code = 0

	// Include graph (internal/includegraph), mirroring FileOsError from the
	// original compiler's include resolution logic.
	IncludeInfo         Code = 1000
	IncludeOsError      Code = 1001
	IncludeCycleMissing Code = 1002

	// Project/compiler configuration (internal/config).
	ConfigInfo           Code = 2000
	ConfigParseError     Code = 2001
	ConfigSectionMissing Code = 2002
	ConfigFieldMissing   Code = 2003
)

var codeDescription = map[Code]string{
	UnknownCode:          "unknown error",
	IncludeInfo:          "include graph notice",
	IncludeOsError:       "failed to resolve an included file",
	IncludeCycleMissing:  "a custom-gates node reaches a file without the pragma",
	ConfigInfo:           "configuration notice",
	ConfigParseError:     "failed to parse project configuration",
	ConfigSectionMissing: "required configuration section is missing",
	ConfigFieldMissing:   "required configuration field is missing",
}

// ID renders the code as a stable, grep-friendly string such as "INC1001".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("INC%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("CFG%04d", ic)
	}
	return "E0000"
}

// Title returns a short human-readable description of the code.
func (c Code) Title() string {
	if desc, ok := codeDescription[c]; ok {
		return desc
	}
	return codeDescription[UnknownCode]
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
