// Package vcp is the "very concrete program" data model: the resolved,
// type-annotated, shape-inferred representation that semantic analysis
// hands to the lowering core. Every dimension in this package is already
// a concrete integer and every symbol reference is already known to
// exist; the lowering core trusts that and panics rather than validating
// it again (see internal/lower's error-handling discipline).
package vcp

import "arcc/internal/source"

// SignalType classifies a Signal's role.
type SignalType uint8

const (
	SignalInput SignalType = iota
	SignalOutput
	SignalIntermediate
)

// Signal is a named, typed, array-valued wire owned by a template.
type Signal struct {
	Name  string
	Shape []int
	Type  SignalType
}

// Size returns ∏Shape (1 for a scalar).
func (s Signal) Size() int { return product(s.Shape) }

// Component is a named array of subcomponent slots.
type Component struct {
	Name  string
	Shape []int
}

// Size returns ∏Shape.
func (c Component) Size() int { return product(c.Shape) }

// Constant is a compile-time constant array. Values holds the declared
// elements in row-major order as decimal strings (field-tracker keys);
// len(Values) == ∏Shape.
type Constant struct {
	Name   string
	Shape  []int
	Values []string
}

// Size returns ∏Shape.
func (k Constant) Size() int { return product(k.Shape) }

// Param is a function or template parameter, populated by the caller
// rather than by an emitted store.
type Param struct {
	Name  string
	Shape []int
}

// Size returns ∏Shape.
func (p Param) Size() int { return product(p.Shape) }

// TemplateInstance is one monomorphized specialization of a template.
type TemplateInstance struct {
	TemplateName string
	TemplateID   int
	IsParallel   bool
	Signals      []Signal
	Components   []Component
}

// Trigger is a scheduled subcomponent instantiation event discovered by
// semantic analysis.
type Trigger struct {
	ComponentName   string
	TemplateID      int
	SignalOffset    int
	ComponentOffset int
	IndicesUsed     []int
	HasInputs       bool
	IsParallel      bool
}

// ClusterType distinguishes the two bulk-creation strategies for a run of
// triggers.
type ClusterType uint8

const (
	ClusterUniform ClusterType = iota
	ClusterMixed
)

// TriggerCluster is a contiguous run of Triggers grouped for bulk
// emission. For a Uniform cluster, Dimensions/OffsetJump/ComponentOffsetJump
// describe the dense grid and DefinedPositions lists which linearized
// positions actually have a trigger (a subset of [0,∏Dimensions) when the
// grid is sparse); for a Mixed cluster those fields are unused.
type TriggerCluster struct {
	Start               int
	End                 int
	Type                ClusterType
	Dimensions          []int
	OffsetJump          int
	ComponentOffsetJump int
	DefinedPositions    []int
}

// Triggers returns the cluster's trigger slice out of all.
func (c TriggerCluster) Triggers(all []Trigger) []Trigger { return all[c.Start:c.End] }

// Function is a callable body with a fixed parameter list and return
// shape.
type Function struct {
	Name        string
	Params      []Param
	ReturnShape []int
	Body        *Stmt
}

// Meta carries source-location information for diagnostics produced by
// collaborators upstream of lowering; the lowering core itself never
// reports a diagnostic, but keeps Meta so a panic message can cite a
// location.
type Meta struct {
	Span source.Span
}

func product(dims []int) int {
	n := 1
	for _, d := range dims {
		n *= d
	}
	return n
}
