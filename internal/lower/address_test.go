package lower

import (
	"testing"

	"arcc/internal/addr"
	"arcc/internal/ir"
)

func TestComputeFullAddressNoOpOnDimensionlessSymbol(t *testing.T) {
	base := addr.BaseAccess(7)
	got := computeFullAddress(base, nil, nil)
	if got != base {
		t.Fatalf("computeFullAddress with no dims and no indices must return base unchanged, got a different node")
	}
	if got.Kind != ir.KindValue {
		t.Fatalf("expected the untouched base Value node, got Kind %v", got.Kind)
	}
}

func TestComputeFullAddressLinearizesRowMajor(t *testing.T) {
	base := addr.BaseAccess(0)
	shape := []int{2, 3}
	idx0 := addr.BaseAccess(1) // i
	idx1 := addr.BaseAccess(2) // j
	got := computeFullAddress(base, shape, []*ir.Instr{idx0, idx1})

	if got.Kind != ir.KindCompute || got.Compute.Op != ir.OpAddAddress {
		t.Fatalf("expected a top-level AddAddress compute node, got %+v", got)
	}
	if got.Compute.Operands[0] != base {
		t.Fatalf("left operand of the top-level AddAddress must be base")
	}
	offset := got.Compute.Operands[1]
	if offset.Kind != ir.KindCompute || offset.Compute.Op != ir.OpAddAddress {
		t.Fatalf("offset must itself be an AddAddress fold of the two index terms")
	}
	first := offset.Compute.Operands[0]
	if first.Kind != ir.KindCompute || first.Compute.Op != ir.OpMulAddress {
		t.Fatalf("first index term (i) must be scaled by the inner dimension (3), got %+v", first)
	}
	second := offset.Compute.Operands[1]
	if second != idx1 {
		t.Fatalf("last index term (j) must pass through unscaled (factor 1)")
	}
}

func TestIndexingInstructionsFilterPoisonsOverflowingLiteral(t *testing.T) {
	overflow := "99999999999999999999999999999999"
	s := &state{fieldTracker: newTestFieldTracker()}
	got := indexingInstructionFilter(numberExpr(overflow), s, &ctx{header: "t"})
	if got.Value.ID != AddressPoison {
		t.Fatalf("overflowing literal index must poison to AddressPoison, got %d", got.Value.ID)
	}
}
