// Package postpass implements the external rewrite passes the lowering
// core hands its output to: input-information refinement, address-op
// algebraic reduction, and auxiliary expression-stack sizing. None of
// these run inside internal/lower itself — they operate on the owned IR
// tree lower.CodeOutput.Code returns, treating every node as independently
// rewriteable, matching the contract in the core's own documentation.
package postpass

import "arcc/internal/ir"

// Run applies all three passes in the fixed order the core's contract
// requires: refining input-information statuses first, then address
// reduction, then stack sizing last since it measures the already-reduced
// tree. Refinement therefore compares Stores by their unreduced CmpAddress
// subtrees: two writes whose addresses only become equal once folded are
// counted as separate targets.
func Run(code []*ir.Instr) (expressionDepth int) {
	RefineInputInformation(code)
	ReduceAddressOps(code)
	return SizeAuxStack(code)
}

func walkCode(code []*ir.Instr, visit func(*ir.Instr)) {
	for _, in := range code {
		walk(in, visit)
	}
}

func walk(in *ir.Instr, visit func(*ir.Instr)) {
	if in == nil {
		return
	}
	visit(in)
	switch in.Kind {
	case ir.KindCompute:
		for _, op := range in.Compute.Operands {
			walk(op, visit)
		}
	case ir.KindLoad:
		walk(in.Load.AddressType.CmpAddress, visit)
		walk(in.Load.Src.Location, visit)
		for _, idx := range in.Load.Src.Indexes {
			walk(idx, visit)
		}
	case ir.KindStore:
		walk(in.Store.AddressType.CmpAddress, visit)
		walk(in.Store.Dest.Location, visit)
		for _, idx := range in.Store.Dest.Indexes {
			walk(idx, visit)
		}
		walk(in.Store.Src, visit)
	case ir.KindBranch:
		walk(in.Branch.Cond, visit)
		walkCode(in.Branch.Then, visit)
		walkCode(in.Branch.Else, visit)
	case ir.KindLoop:
		walk(in.Loop.Cond, visit)
		walkCode(in.Loop.Body, visit)
	case ir.KindCall:
		for _, a := range in.Call.Args {
			walk(a, visit)
		}
		if in.Call.Return.Kind == ir.ReturnFinal {
			walk(in.Call.Return.Dest.AddressType.CmpAddress, visit)
			walk(in.Call.Return.Dest.Location.Location, visit)
			for _, idx := range in.Call.Return.Dest.Location.Indexes {
				walk(idx, visit)
			}
		}
	case ir.KindCreateCmp:
		walk(in.CreateCmp.SubCmpBase, visit)
	case ir.KindReturn:
		walk(in.Return.Value, visit)
	case ir.KindAssert:
		walk(in.Assert.Evaluate, visit)
	case ir.KindLog:
		for _, a := range in.Log.Args {
			if a.Kind == ir.LogArgExp {
				walk(a.Exp, visit)
			}
		}
	}
}
