package lower

import (
	"math"
	"strconv"

	"arcc/internal/addr"
	"arcc/internal/ir"
	"arcc/internal/vcp"
)

// AddressPoison is the sentinel address substituted for a constant index
// expression that overflows the address width. It is deliberately NOT a
// panic: an out-of-range constant index is a user-program bug that later
// bounds-checking (out of scope here) reports, not a compiler invariant
// violation. Any address arithmetic built on top of a poisoned operand
// stays poisoned, so the bad value survives to wherever it gets reported.
const AddressPoison = math.MaxUint64

// computeFullAddress linearizes an access list's indices against base's
// shape and folds the result into base. It is a true no-op when indices
// is empty: no AddAddress(base, 0) is ever emitted for a dimensionless
// symbol, since base is already a complete address in that case.
func computeFullAddress(base *ir.Instr, shape []int, indices []*ir.Instr) *ir.Instr {
	if len(indices) == 0 {
		return base
	}
	offset := linearizeOffset(shape, indices)
	return &ir.Instr{
		Kind:    ir.KindCompute,
		Compute: ir.ComputeInstr{Op: ir.OpAddAddress, Operands: []*ir.Instr{base, offset}},
	}
}

// linearizeOffset builds Σ_j indices[j] * ∏_{m>j} shape[m], the row-major
// linearization formula, as a right-associative chain of address-algebra
// Compute nodes.
func linearizeOffset(shape []int, indices []*ir.Instr) *ir.Instr {
	terms := make([]*ir.Instr, len(indices))
	for j, idx := range indices {
		factor := productFrom(shape, j+1)
		if factor == 1 {
			terms[j] = idx
			continue
		}
		terms[j] = &ir.Instr{
			Kind: ir.KindCompute,
			Compute: ir.ComputeInstr{
				Op:       ir.OpMulAddress,
				Operands: []*ir.Instr{idx, addr.BaseAccess(factor)},
			},
		}
	}
	return foldAddAddress(terms)
}

// foldAddAddress right-folds terms into a single AddAddress chain:
// terms[0] + (terms[1] + (terms[2] + ...)).
func foldAddAddress(terms []*ir.Instr) *ir.Instr {
	if len(terms) == 1 {
		return terms[0]
	}
	return &ir.Instr{
		Kind: ir.KindCompute,
		Compute: ir.ComputeInstr{
			Op:       ir.OpAddAddress,
			Operands: []*ir.Instr{terms[0], foldAddAddress(terms[1:])},
		},
	}
}

// constantIndices converts compile-time-known integer indices (as carried
// by vcp.Trigger.IndicesUsed) into address-width IR values, the same shape
// indexingInstructionFilter produces for a literal-number expression.
func constantIndices(indices []int) []*ir.Instr {
	out := make([]*ir.Instr, len(indices))
	for i, v := range indices {
		out[i] = addr.BaseAccess(v)
	}
	return out
}

func productFrom(shape []int, from int) int {
	n := 1
	for _, d := range shape[from:] {
		n *= d
	}
	return n
}

// indexingInstructionsFilter translates each array-access index expression
// into an address-width IR value. A constant (literal) index that does not
// fit the address width is poisoned to AddressPoison rather than rejected
// here; a non-constant index is translated as an ordinary expression and
// then retagged into address algebra by toAddressAlgebra.
func indexingInstructionsFilter(exprs []*vcp.Expr, s *state, c *ctx) []*ir.Instr {
	out := make([]*ir.Instr, len(exprs))
	for i, e := range exprs {
		out[i] = indexingInstructionFilter(e, s, c)
	}
	return out
}

func indexingInstructionFilter(e *vcp.Expr, s *state, c *ctx) *ir.Instr {
	if e.Kind == vcp.ExprNumber {
		s.fieldTracker.Insert(e.Number) // interned for round-trip even when used only as an index
		n, err := strconv.ParseUint(e.Number, 10, 64)
		if err != nil {
			return &ir.Instr{Kind: ir.KindValue, Value: ir.ValueInstr{ParseAs: ir.ValueU32, ID: AddressPoison}}
		}
		return &ir.Instr{Kind: ir.KindValue, Value: ir.ValueInstr{ParseAs: ir.ValueU32, ID: n}}
	}
	return toAddressAlgebra(translateExpression(e, s, c))
}

// toAddressAlgebra retags an already-translated non-literal index expression
// into pure address algebra: an Add/Mul Compute node becomes
// AddAddress/MulAddress, recursing into its operands the same way, and
// anything else (a Load, a comparison, ...) is wrapped in a single
// ToAddress node. Without this, a dynamic index such as s[i+1] would leave
// its Add node tagged as ordinary field arithmetic inside what must be a
// pure address subtree, indistinguishable from witness-value arithmetic to
// internal/postpass.ReduceAddressOps and any other address-algebra-aware
// consumer.
func toAddressAlgebra(in *ir.Instr) *ir.Instr {
	if in.Kind == ir.KindCompute {
		switch in.Compute.Op {
		case ir.OpAdd, ir.OpMul:
			op := ir.OpAddAddress
			if in.Compute.Op == ir.OpMul {
				op = ir.OpMulAddress
			}
			operands := make([]*ir.Instr, len(in.Compute.Operands))
			for i, o := range in.Compute.Operands {
				operands[i] = toAddressAlgebra(o)
			}
			return &ir.Instr{Kind: ir.KindCompute, Compute: ir.ComputeInstr{Op: op, Operands: operands}}
		}
	}
	return &ir.Instr{Kind: ir.KindCompute, Compute: ir.ComputeInstr{Op: ir.OpToAddress, Operands: []*ir.Instr{in}}}
}
