// Package driver wires the independently-testable pieces (internal/tdb,
// internal/lower, internal/postpass, internal/artifact) into the single
// pipeline cmd/arcc's lower subcommand drives: build a TemplateDB from a
// program's instances, lower every body concurrently, run the three
// external post-passes over each body's tree, and pack the result.
//
// It is deliberately thin: everything it does is also directly reachable
// by calling those packages in sequence. Its only job is to be the one
// place that sequence is written down, and to be what a progress UI
// (internal/tui) reports against.
package driver

import (
	"fmt"

	"arcc/internal/artifact"
	"arcc/internal/lower"
	"arcc/internal/postpass"
	"arcc/internal/tdb"
	"arcc/internal/tui"
	"arcc/internal/vcp"
)

// BodySpec is everything a program's front end must additionally supply,
// beyond what's already recorded on the TemplateInstance it belongs to,
// to lower one body: the statement tree, the initializer data, and the
// subcomponent scheduling already computed by semantic analysis.
type BodySpec struct {
	// InstanceIndex selects the TemplateInstance this body belongs to,
	// supplying Header, Signals, Components and IsParallel. -1 marks a
	// free function body instead of a template instantiation.
	InstanceIndex int
	FunctionName  string // meaningful when InstanceIndex == -1

	MessageID    int
	StartCmpID   int
	Params       []vcp.Param
	Constants    []vcp.Constant
	Triggers     []vcp.Trigger
	Clusters     []vcp.TriggerCluster
	CmpToType    map[string]lower.ClusterOwner
	FunctionSigs map[string][]int
	Body         *vcp.Stmt
}

// Program is the whole input to one lowering run.
type Program struct {
	Instances []vcp.TemplateInstance
	Bodies    []BodySpec
}

// Lower runs the full pipeline over program, emitting a tui.Event on
// events (if non-nil) as each body moves through its stages, and returns
// the assembled artifact.Pack.
func Lower(program Program, events chan<- tui.Event) (artifact.Pack, error) {
	db := tdb.Build(program.Instances)

	infos := make([]lower.CodeInfo, len(program.Bodies))
	identities := make([]artifact.BodyIdentity, len(program.Bodies))
	for i, spec := range program.Bodies {
		header, signals, components, isParallel, err := resolveInstance(program.Instances, spec)
		if err != nil {
			return artifact.Pack{}, err
		}
		infos[i] = lower.CodeInfo{
			IsParallel:   isParallel,
			Header:       header,
			MessageID:    spec.MessageID,
			Params:       spec.Params,
			Signals:      signals,
			Constants:    spec.Constants,
			Components:   components,
			StartCmpID:   spec.StartCmpID,
			TDB:          db,
			Triggers:     spec.Triggers,
			Clusters:     spec.Clusters,
			CmpToType:    spec.CmpToType,
			FunctionSigs: spec.FunctionSigs,
			Body:         spec.Body,
		}
		identities[i] = artifact.BodyIdentity{Header: header, MessageID: spec.MessageID}
		emit(events, header, tui.StageQueued, nil)
	}

	emitAll(events, identities, tui.StageInit)
	outputs, err := lower.LowerProgram(infos)
	if err != nil {
		emitAll(events, identities, tui.StageError)
		return artifact.Pack{}, fmt.Errorf("driver: lowering failed: %w", err)
	}
	emitAll(events, identities, tui.StageBody)

	for i := range outputs {
		outputs[i].ExpressionDepth = postpass.Run(outputs[i].Code)
	}
	emitAll(events, identities, tui.StagePostpass)

	pack, err := artifact.BuildPack(outputs, identities)
	if err != nil {
		emitAll(events, identities, tui.StageError)
		return artifact.Pack{}, err
	}
	emitAll(events, identities, tui.StageDone)
	return pack, nil
}

func resolveInstance(instances []vcp.TemplateInstance, spec BodySpec) (header string, signals []vcp.Signal, components []vcp.Component, isParallel bool, err error) {
	if spec.InstanceIndex < 0 {
		return spec.FunctionName, nil, nil, false, nil
	}
	if spec.InstanceIndex >= len(instances) {
		return "", nil, nil, false, fmt.Errorf("driver: body references instance %d, only %d instances given", spec.InstanceIndex, len(instances))
	}
	inst := instances[spec.InstanceIndex]
	return inst.TemplateName, inst.Signals, inst.Components, inst.IsParallel, nil
}

func emit(events chan<- tui.Event, header string, stage tui.Stage, err error) {
	if events == nil {
		return
	}
	events <- tui.Event{Header: header, Stage: stage, Err: err}
}

func emitAll(events chan<- tui.Event, identities []artifact.BodyIdentity, stage tui.Stage) {
	for _, id := range identities {
		emit(events, id.Header, stage, nil)
	}
}
