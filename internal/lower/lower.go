package lower

import (
	"golang.org/x/sync/errgroup"

	"arcc/internal/addr"
	"arcc/internal/fieldstr"
	"arcc/internal/ir"
	"arcc/internal/vcp"
)

// LowerBody translates a single template or function body per info,
// running the fixed-order initializers, then subcomponent cluster
// creation, then the body's statement tree.
func LowerBody(info CodeInfo) CodeOutput {
	ft := info.FieldTracker
	if ft == nil {
		ft = fieldstr.NewFieldTracker()
	}
	st := info.StringTable
	if st == nil {
		st = fieldstr.NewStringTable()
	}
	componentToParallel := info.ComponentToParallel
	if componentToParallel == nil {
		componentToParallel = make(map[string]bool)
	}
	cmpToType := info.CmpToType
	if cmpToType == nil {
		cmpToType = make(map[string]ClusterOwner)
	}

	s := &state{
		fieldTracker:        ft,
		stringTable:         st,
		env:                 addr.NewEnvironment(),
		componentToParallel: componentToParallel,
		componentToInstance: make(map[string]int),
		signalToType:        make(map[string]vcp.SignalType),
		cmpToType:           cmpToType,
		isParallel:          info.IsParallel,
		messageID:           info.MessageID,
	}
	// Consuming StartCmpID fresh ids up front keeps the fresh-component-id
	// space program-wide monotonic across bodies lowered in sequence by
	// the same caller. LowerProgram does not renumber component ids: each
	// body's ids start at its own StartCmpID.
	s.counters.ReserveComponentIDs(info.StartCmpID)

	c := &ctx{tdb: info.TDB, functionSigs: info.FunctionSigs, header: info.Header}

	initializeComponents(info.Components, s)
	initializeSignals(info.Signals, s)
	initializeConstants(info.Constants, s)
	initializeParameters(info.Params, s)

	createComponents(info.Triggers, info.Clusters, s)

	if info.Body != nil {
		translateStatement(info.Body, s, c)
	}

	return CodeOutput{
		Code:                s.code,
		StackDepth:          s.counters.MaxStackDepth(),
		SignalDepth:         s.counters.SignalDepth(),
		NextCmpID:           s.counters.NextComponentID(),
		FieldTracker:        s.fieldTracker,
		StringTable:         s.stringTable,
		ComponentToInstance: s.componentToInstance,
		// ExpressionDepth is left zero: it is filled in by the auxiliary-stack
		// sizing post-pass (internal/postpass), which runs after every body
		// in the program has been lowered.
	}
}

// LowerProgram lowers every body concurrently, each against its own
// private FieldTracker/StringTable, then sequentially folds the per-body
// tables into one program-wide pair via MergeWithRemap and rewrites each
// body's already-emitted constant/string references through the returned
// remap. The fold is sequential by design (§5): concurrency is confined
// to the CPU-bound tree walk, never to the shared tables.
func LowerProgram(infos []CodeInfo) ([]CodeOutput, error) {
	outputs := make([]CodeOutput, len(infos))

	g := new(errgroup.Group)
	for i := range infos {
		i := i
		local := infos[i]
		local.FieldTracker = fieldstr.NewFieldTracker()
		local.StringTable = fieldstr.NewStringTable()
		g.Go(func() error {
			outputs[i] = LowerBody(local)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	programFields := fieldstr.NewFieldTracker()
	programStrings := fieldstr.NewStringTable()
	for i := range outputs {
		fieldRemap := programFields.MergeWithRemap(outputs[i].FieldTracker)
		stringRemap := programStrings.MergeWithRemap(outputs[i].StringTable)
		remapCode(outputs[i].Code, fieldRemap, stringRemap)
		outputs[i].FieldTracker = programFields
		outputs[i].StringTable = programStrings
	}
	return outputs, nil
}

func remapCode(code []*ir.Instr, fieldRemap, stringRemap []int) {
	for _, in := range code {
		remapInstr(in, fieldRemap, stringRemap)
	}
}

func remapInstr(in *ir.Instr, fieldRemap, stringRemap []int) {
	if in == nil {
		return
	}
	switch in.Kind {
	case ir.KindValue:
		if in.Value.ParseAs == ir.ValueBigInt {
			in.Value.ID = uint64(fieldRemap[in.Value.ID])
		}
	case ir.KindCompute:
		for _, op := range in.Compute.Operands {
			remapInstr(op, fieldRemap, stringRemap)
		}
	case ir.KindLoad:
		remapAddressType(&in.Load.AddressType, fieldRemap, stringRemap)
		remapLocation(&in.Load.Src, fieldRemap, stringRemap)
	case ir.KindStore:
		remapAddressType(&in.Store.AddressType, fieldRemap, stringRemap)
		remapLocation(&in.Store.Dest, fieldRemap, stringRemap)
		remapInstr(in.Store.Src, fieldRemap, stringRemap)
	case ir.KindBranch:
		remapInstr(in.Branch.Cond, fieldRemap, stringRemap)
		remapCode(in.Branch.Then, fieldRemap, stringRemap)
		remapCode(in.Branch.Else, fieldRemap, stringRemap)
	case ir.KindLoop:
		remapInstr(in.Loop.Cond, fieldRemap, stringRemap)
		remapCode(in.Loop.Body, fieldRemap, stringRemap)
	case ir.KindCall:
		for _, a := range in.Call.Args {
			remapInstr(a, fieldRemap, stringRemap)
		}
		if in.Call.Return.Kind == ir.ReturnFinal {
			remapAddressType(&in.Call.Return.Dest.AddressType, fieldRemap, stringRemap)
			remapLocation(&in.Call.Return.Dest.Location, fieldRemap, stringRemap)
		}
	case ir.KindCreateCmp:
		remapInstr(in.CreateCmp.SubCmpBase, fieldRemap, stringRemap)
	case ir.KindReturn:
		remapInstr(in.Return.Value, fieldRemap, stringRemap)
	case ir.KindAssert:
		remapInstr(in.Assert.Evaluate, fieldRemap, stringRemap)
	case ir.KindLog:
		for i := range in.Log.Args {
			a := &in.Log.Args[i]
			if a.Kind == ir.LogArgStr {
				a.StrID = stringRemap[a.StrID]
			} else {
				remapInstr(a.Exp, fieldRemap, stringRemap)
			}
		}
	}
}

func remapAddressType(at *ir.AddressType, fieldRemap, stringRemap []int) {
	remapInstr(at.CmpAddress, fieldRemap, stringRemap)
}

func remapLocation(loc *ir.LocationRule, fieldRemap, stringRemap []int) {
	remapInstr(loc.Location, fieldRemap, stringRemap)
	for _, idx := range loc.Indexes {
		remapInstr(idx, fieldRemap, stringRemap)
	}
}
