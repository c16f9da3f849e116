package postpass

import (
	"testing"

	"arcc/internal/ir"
)

func val(v uint64) *ir.Instr {
	return &ir.Instr{Kind: ir.KindValue, Value: ir.ValueInstr{ParseAs: ir.ValueU32, ID: v}}
}

func TestReduceAddressOpsFoldsConstants(t *testing.T) {
	tree := &ir.Instr{Kind: ir.KindCompute, Compute: ir.ComputeInstr{
		Op:       ir.OpAddAddress,
		Operands: []*ir.Instr{val(3), val(4)},
	}}
	store := &ir.Instr{Kind: ir.KindStore, Store: ir.StoreInstr{
		AddressType: ir.Variable,
		Dest:        ir.LocationRule{Kind: ir.LocIndexed, Location: tree},
		Src:         val(0),
		Size:        1,
	}}
	ReduceAddressOps([]*ir.Instr{store})

	got := store.Store.Dest.Location
	if got.Kind != ir.KindValue || got.Value.ID != 7 {
		t.Fatalf("expected folded constant 7, got %+v", got)
	}
}

func TestReduceAddressOpsDropsIdentities(t *testing.T) {
	// A non-literal address (here, a Load standing in for a variable index)
	// so AddAddress(x, 0) -> x is exercised as an identity-elimination, not
	// a constant fold that happens to agree with it.
	base := &ir.Instr{Kind: ir.KindLoad, Load: ir.LoadInstr{AddressType: ir.Variable}}
	addZero := &ir.Instr{Kind: ir.KindCompute, Compute: ir.ComputeInstr{
		Op:       ir.OpAddAddress,
		Operands: []*ir.Instr{base, val(0)},
	}}
	store := &ir.Instr{Kind: ir.KindStore, Store: ir.StoreInstr{
		AddressType: ir.Variable,
		Dest:        ir.LocationRule{Kind: ir.LocIndexed, Location: addZero},
		Src:         val(0),
		Size:        1,
	}}
	ReduceAddressOps([]*ir.Instr{store})

	if store.Store.Dest.Location != base {
		t.Fatalf("expected AddAddress(x, 0) to reduce to x itself")
	}
}

func TestRefineInputInformationMarksSoleWriteYes(t *testing.T) {
	cmp := val(5)
	at := ir.AddressType{Kind: ir.AddrSubcmpSignal, CmpAddress: cmp, Input: ir.InputUnknown}
	store := &ir.Instr{Kind: ir.KindStore, Store: ir.StoreInstr{
		AddressType: at,
		Dest:        ir.LocationRule{Kind: ir.LocIndexed, Location: val(0)},
		Src:         val(1),
		Size:        1,
	}}
	RefineInputInformation([]*ir.Instr{store})

	if store.Store.AddressType.Input.Status != ir.StatusYes {
		t.Fatalf("expected StatusYes for a subcomponent input written exactly once, got %v",
			store.Store.AddressType.Input.Status)
	}
}

func TestRefineInputInformationMarksRepeatedWritesNo(t *testing.T) {
	cmp := func() *ir.Instr { return val(5) }
	mk := func() *ir.Instr {
		return &ir.Instr{Kind: ir.KindStore, Store: ir.StoreInstr{
			AddressType: ir.AddressType{Kind: ir.AddrSubcmpSignal, CmpAddress: cmp(), Input: ir.InputUnknown},
			Dest:        ir.LocationRule{Kind: ir.LocIndexed, Location: val(0)},
			Src:         val(1),
			Size:        1,
		}}
	}
	a, b := mk(), mk()
	RefineInputInformation([]*ir.Instr{a, b})

	if a.Store.AddressType.Input.Status != ir.StatusNo || b.Store.AddressType.Input.Status != ir.StatusNo {
		t.Fatalf("expected StatusNo for both writes to the same subcomponent address, got %v / %v",
			a.Store.AddressType.Input.Status, b.Store.AddressType.Input.Status)
	}
}

func TestSizeAuxStackLabelsBinaryTree(t *testing.T) {
	leaf := func() *ir.Instr { return val(1) }
	inner := &ir.Instr{Kind: ir.KindCompute, Compute: ir.ComputeInstr{Op: ir.OpAdd, Operands: []*ir.Instr{leaf(), leaf()}}}
	outer := &ir.Instr{Kind: ir.KindCompute, Compute: ir.ComputeInstr{Op: ir.OpMul, Operands: []*ir.Instr{inner, leaf()}}}
	assertInstr := &ir.Instr{Kind: ir.KindAssert, Assert: ir.AssertInstr{Evaluate: outer}}

	depth := SizeAuxStack([]*ir.Instr{assertInstr})
	if depth != 2 {
		t.Fatalf("SizeAuxStack depth = %d, want 2", depth)
	}
	if outer.Compute.AuxNo != 2 {
		t.Fatalf("outer.AuxNo = %d, want 2", outer.Compute.AuxNo)
	}
}
