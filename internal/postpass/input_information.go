package postpass

import (
	"fmt"
	"strings"

	"arcc/internal/ir"
)

// RefineInputInformation resolves every subcomponent-input address whose
// InputInformation is still InputUnknown. It has no retrieved reference
// implementation to ground on (the lowering core only documents the
// contract, not the refinement rule itself), so the rule here is a
// conservative one designed to fit that contract: a subcomponent address
// written to by exactly one Store in the whole body is marked Yes (the
// backend never needs to re-check readiness after it), every other write
// to an address shared by more than one Store is marked No (more
// assignments to the same subcomponent may still be pending, so the
// backend must keep checking).
//
// Addresses are grouped by a structural signature of their CmpAddress
// subtree plus the destination signal's location, compared as lowered
// (before ReduceAddressOps). The signature records kinds, operators and
// constant values; a Load inside the address contributes only its kind, so
// two different dynamic indices share a signature.
func RefineInputInformation(code []*ir.Instr) {
	counts := make(map[string]int)
	var targets []*ir.Instr

	walkCode(code, func(in *ir.Instr) {
		if in.Kind != ir.KindStore {
			return
		}
		at := &in.Store.AddressType
		if at.Kind != ir.AddrSubcmpSignal || at.IsOutput || !at.Input.HasInput {
			return
		}
		key := signature(at.CmpAddress) + "|" + locationSignature(&in.Store.Dest)
		counts[key]++
		targets = append(targets, in)
	})

	for _, in := range targets {
		at := &in.Store.AddressType
		key := signature(at.CmpAddress) + "|" + locationSignature(&in.Store.Dest)
		if counts[key] == 1 {
			at.Input.Status = ir.StatusYes
		} else {
			at.Input.Status = ir.StatusNo
		}
	}
}

func signature(in *ir.Instr) string {
	if in == nil {
		return "-"
	}
	var b strings.Builder
	writeSignature(&b, in)
	return b.String()
}

func writeSignature(b *strings.Builder, in *ir.Instr) {
	if in == nil {
		b.WriteByte('_')
		return
	}
	fmt.Fprintf(b, "(%d", in.Kind)
	switch in.Kind {
	case ir.KindValue:
		fmt.Fprintf(b, ":%d:%d", in.Value.ParseAs, in.Value.ID)
	case ir.KindCompute:
		fmt.Fprintf(b, ":%d", in.Compute.Op)
		for _, op := range in.Compute.Operands {
			writeSignature(b, op)
		}
	}
	b.WriteByte(')')
}

func locationSignature(loc *ir.LocationRule) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d", loc.Kind)
	switch loc.Kind {
	case ir.LocIndexed:
		writeSignature(&b, loc.Location)
	case ir.LocMapped:
		fmt.Fprintf(&b, ":%d", loc.SignalCode)
		for _, idx := range loc.Indexes {
			writeSignature(&b, idx)
		}
	}
	return b.String()
}
