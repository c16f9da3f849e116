package postpass

import (
	"math"

	"arcc/internal/ir"
)

// ReduceAddressOps rewrites every AddAddress/MulAddress subtree reachable
// from a Load/Store/Call-return/CreateCmp address field, folding constant
// operands and dropping additive/multiplicative identities. It never
// touches ordinary Compute nodes (OpAdd, OpMul, ...): those belong to the
// witness-value expression tree, not address arithmetic, and reducing
// them would change program semantics rather than just its address-space
// footprint.
func ReduceAddressOps(code []*ir.Instr) {
	for _, in := range code {
		reduceInstrFields(in)
	}
}

func reduceInstrFields(in *ir.Instr) {
	if in == nil {
		return
	}
	switch in.Kind {
	case ir.KindLoad:
		in.Load.AddressType.CmpAddress = reduceAddressTree(in.Load.AddressType.CmpAddress)
		reduceLocation(&in.Load.Src)
	case ir.KindStore:
		in.Store.AddressType.CmpAddress = reduceAddressTree(in.Store.AddressType.CmpAddress)
		reduceLocation(&in.Store.Dest)
		reduceInstrFields(in.Store.Src)
	case ir.KindCompute:
		for i, op := range in.Compute.Operands {
			reduceInstrFields(op)
			in.Compute.Operands[i] = op
		}
	case ir.KindBranch:
		reduceInstrFields(in.Branch.Cond)
		ReduceAddressOps(in.Branch.Then)
		ReduceAddressOps(in.Branch.Else)
	case ir.KindLoop:
		reduceInstrFields(in.Loop.Cond)
		ReduceAddressOps(in.Loop.Body)
	case ir.KindCall:
		for _, a := range in.Call.Args {
			reduceInstrFields(a)
		}
		if in.Call.Return.Kind == ir.ReturnFinal {
			dest := &in.Call.Return.Dest
			dest.AddressType.CmpAddress = reduceAddressTree(dest.AddressType.CmpAddress)
			reduceLocation(&dest.Location)
		}
	case ir.KindCreateCmp:
		in.CreateCmp.SubCmpBase = reduceAddressTree(in.CreateCmp.SubCmpBase)
	case ir.KindReturn:
		reduceInstrFields(in.Return.Value)
	case ir.KindAssert:
		reduceInstrFields(in.Assert.Evaluate)
	case ir.KindLog:
		for i := range in.Log.Args {
			if in.Log.Args[i].Kind == ir.LogArgExp {
				reduceInstrFields(in.Log.Args[i].Exp)
			}
		}
	}
}

// reduceLocation folds a LocationRule's own address fields: Location for
// Indexed, the residual Indexes for Mapped.
func reduceLocation(loc *ir.LocationRule) {
	switch loc.Kind {
	case ir.LocIndexed:
		loc.Location = reduceAddressTree(loc.Location)
	case ir.LocMapped:
		for i, idx := range loc.Indexes {
			loc.Indexes[i] = reduceAddressTree(idx)
		}
	}
}

func reduceAddressTree(in *ir.Instr) *ir.Instr {
	if in == nil {
		return nil
	}
	if in.Kind == ir.KindLoad {
		reduceInstrFields(in)
		return in
	}
	if in.Kind != ir.KindCompute {
		return in
	}
	ops := in.Compute.Operands
	for i, op := range ops {
		ops[i] = reduceAddressTree(op)
	}
	if in.Compute.Op == ir.OpAddAddress || in.Compute.Op == ir.OpMulAddress {
		// An operand equal to internal/lower's AddressPoison sentinel poisons
		// the whole node instead of being folded (and wrapped) arithmetically.
		for _, op := range ops {
			if isU32(op) && op.Value.ID == math.MaxUint64 {
				return u32(math.MaxUint64)
			}
		}
	}
	switch in.Compute.Op {
	case ir.OpAddAddress:
		if isU32(ops[0]) && isU32(ops[1]) {
			return u32(ops[0].Value.ID + ops[1].Value.ID)
		}
		if isU32Zero(ops[0]) {
			return ops[1]
		}
		if isU32Zero(ops[1]) {
			return ops[0]
		}
	case ir.OpMulAddress:
		if isU32(ops[0]) && isU32(ops[1]) {
			return u32(ops[0].Value.ID * ops[1].Value.ID)
		}
		if isU32Zero(ops[0]) || isU32Zero(ops[1]) {
			return u32(0)
		}
		if isU32One(ops[0]) {
			return ops[1]
		}
		if isU32One(ops[1]) {
			return ops[0]
		}
	}
	return in
}

func isU32(in *ir.Instr) bool {
	return in != nil && in.Kind == ir.KindValue && in.Value.ParseAs == ir.ValueU32
}

func isU32Zero(in *ir.Instr) bool { return isU32(in) && in.Value.ID == 0 }
func isU32One(in *ir.Instr) bool  { return isU32(in) && in.Value.ID == 1 }

func u32(v uint64) *ir.Instr {
	return &ir.Instr{Kind: ir.KindValue, Value: ir.ValueInstr{ParseAs: ir.ValueU32, ID: v}}
}
