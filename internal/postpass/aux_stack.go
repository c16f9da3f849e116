package postpass

import "arcc/internal/ir"

// SizeAuxStack assigns every Compute node an AuxNo slot on a simulated
// evaluation stack (the classic Sethi-Ullman labeling: evaluate the
// costlier operand first, reusing its slot once it's consumed) and
// returns the deepest slot count reached, which becomes
// CodeOutput.ExpressionDepth. A leaf costs one slot and a single-operand
// node costs what its operand costs; a binary node costs the larger of its
// operands' costs, or one more than that when they tie, matching the usual
// register-allocation labeling rule.
func SizeAuxStack(code []*ir.Instr) int {
	depth := 0
	walkCode(code, func(in *ir.Instr) {
		if in.Kind != ir.KindCompute {
			return
		}
		cost := labelCompute(in)
		if cost > depth {
			depth = cost
		}
	})
	return depth
}

func labelCompute(in *ir.Instr) int {
	ops := in.Compute.Operands
	switch len(ops) {
	case 0:
		in.Compute.AuxNo = 1
		return 1
	case 1:
		cost := exprCost(ops[0])
		in.Compute.AuxNo = cost
		return cost
	default:
		left, right := exprCost(ops[0]), exprCost(ops[1])
		var cost int
		switch {
		case left > right:
			cost = left
		case right > left:
			cost = right
		default:
			cost = left + 1
		}
		for _, extra := range ops[2:] {
			c := exprCost(extra)
			if c+1 > cost {
				cost = c + 1
			}
		}
		in.Compute.AuxNo = cost
		return cost
	}
}

func exprCost(in *ir.Instr) int {
	if in == nil {
		return 0
	}
	if in.Kind != ir.KindCompute {
		return 1
	}
	return labelCompute(in)
}
