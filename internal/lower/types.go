// Package lower implements the Body Translator and Symbol Resolver: the
// recursive-descent lowering of one template body or function body into
// a flat, address-oriented instruction list.
package lower

import (
	"arcc/internal/addr"
	"arcc/internal/fieldstr"
	"arcc/internal/ir"
	"arcc/internal/tdb"
	"arcc/internal/vcp"
)

// DefaultCallArenaSize is the calling-convention scratch-arena size
// threaded into every emitted Call instruction. See ir.DefaultCallArenaSize
// for the design-notes rationale; it is re-exported here so call lowering
// can name it locally. internal/config's `call_arena_size` value is not
// applied to it.
const DefaultCallArenaSize = ir.DefaultCallArenaSize

// ClusterOwner records, for one component name, which trigger cluster
// owns it and the data needed to resolve a signal access against that
// cluster: for a Mixed cluster, the owning template's name (used with
// TemplateDB.GetSignalID); for a Uniform cluster, the owning instance id
// and a header string threaded into the resulting LocationRule.
type ClusterOwner struct {
	Type         vcp.ClusterType
	TemplateName string // used by Mixed to resolve a signal name via TemplateDB.GetSignalID
	InstanceID   int    // always populated; both cluster types use it for the signal's shape and type, and Uniform also for its address
	Header       string // meaningful when Type == ClusterUniform
}

// CodeInfo is everything the translator needs to lower one body. It is
// the Go analogue of the source compiler's CodeInfo input struct.
type CodeInfo struct {
	IsParallel          bool
	Header              string // function/template name, used for panic messages and as the FunctionSigs key for Return's size
	MessageID           int
	Params              []vcp.Param
	Signals             []vcp.Signal
	Constants           []vcp.Constant
	Components          []vcp.Component
	StartCmpID          int
	TDB                 *tdb.TemplateDB
	Triggers            []vcp.Trigger
	Clusters            []vcp.TriggerCluster
	CmpToType           map[string]ClusterOwner
	FunctionSigs        map[string][]int // function name -> return shape
	FieldTracker        *fieldstr.FieldTracker
	StringTable         *fieldstr.StringTable
	ComponentToParallel map[string]bool
	Body                *vcp.Stmt
}

// CodeOutput is the translator's result.
type CodeOutput struct {
	Code                []*ir.Instr
	StackDepth          int
	SignalDepth         int
	ExpressionDepth     int
	NextCmpID           int
	FieldTracker        *fieldstr.FieldTracker
	StringTable         *fieldstr.StringTable
	ComponentToInstance map[string]int
}

// state is the per-body mutable translation state. One is constructed per
// body and discarded once CodeOutput is produced; nothing here is shared
// across bodies except the FieldTracker/StringTable handed in through
// CodeInfo, which are updated in place and returned in CodeOutput.
type state struct {
	fieldTracker *fieldstr.FieldTracker
	stringTable  *fieldstr.StringTable
	env          *addr.Environment
	counters     addr.Counters

	componentToParallel map[string]bool
	componentToInstance map[string]int
	signalToType        map[string]vcp.SignalType
	cmpToType           map[string]ClusterOwner

	isParallel bool
	messageID  int

	code []*ir.Instr
}

// ctx bundles the read-only collaborators the translator consults but
// never mutates: the template database, the function signature table
// (for Return's with_size), and the header, used in panic messages and as
// the function signature table key.
type ctx struct {
	tdb          *tdb.TemplateDB
	functionSigs map[string][]int
	header       string
}

// emit appends instr to the current code buffer.
func (s *state) emit(instr *ir.Instr) {
	s.code = append(s.code, instr)
}
