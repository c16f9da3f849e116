package lower

import (
	"fmt"

	"arcc/internal/ir"
	"arcc/internal/vcp"
)

var infixToOp = map[vcp.InfixOp]ir.Op{
	vcp.InfixMul:      ir.OpMul,
	vcp.InfixDiv:      ir.OpDiv,
	vcp.InfixAdd:      ir.OpAdd,
	vcp.InfixSub:      ir.OpSub,
	vcp.InfixPow:      ir.OpPow,
	vcp.InfixIntDiv:   ir.OpIntDiv,
	vcp.InfixMod:      ir.OpMod,
	vcp.InfixShiftL:   ir.OpShiftL,
	vcp.InfixShiftR:   ir.OpShiftR,
	vcp.InfixLesserEq: ir.OpLesserEq,
	vcp.InfixGreaterEq: ir.OpGreaterEq,
	vcp.InfixLesser:   ir.OpLesser,
	vcp.InfixGreater:  ir.OpGreater,
	vcp.InfixEq:       ir.OpEq,
	vcp.InfixNotEq:    ir.OpNotEq,
	vcp.InfixBoolOr:   ir.OpBoolOr,
	vcp.InfixBoolAnd:  ir.OpBoolAnd,
	vcp.InfixBitOr:    ir.OpBitOr,
	vcp.InfixBitAnd:   ir.OpBitAnd,
	vcp.InfixBitXor:   ir.OpBitXor,
}

var prefixToOp = map[vcp.PrefixOp]ir.Op{
	vcp.PrefixSub:        ir.OpPrefixSub,
	vcp.PrefixBoolNot:    ir.OpBoolNot,
	vcp.PrefixComplement: ir.OpComplement,
}

// translateExpression lowers one expression tree node into an IR value.
// ExprArray and ExprSwitch are syntactic sugar: semantic analysis is
// required to have rewritten them away before this stage, so encountering
// one here is a program-invariant violation.
func translateExpression(e *vcp.Expr, s *state, c *ctx) *ir.Instr {
	switch e.Kind {
	case vcp.ExprInfix:
		op, ok := infixToOp[e.Infix.Op]
		if !ok {
			panic(fmt.Errorf("lower[%s]: unknown infix operator %v", c.header, e.Infix.Op))
		}
		lhs := translateExpression(e.Infix.LHS, s, c)
		rhs := translateExpression(e.Infix.RHS, s, c)
		return &ir.Instr{Kind: ir.KindCompute, Compute: ir.ComputeInstr{Op: op, Operands: []*ir.Instr{lhs, rhs}}}

	case vcp.ExprPrefix:
		op, ok := prefixToOp[e.Prefix.Op]
		if !ok {
			panic(fmt.Errorf("lower[%s]: unknown prefix operator %v", c.header, e.Prefix.Op))
		}
		operand := translateExpression(e.Prefix.Operand, s, c)
		return &ir.Instr{Kind: ir.KindCompute, Compute: ir.ComputeInstr{Op: op, Operands: []*ir.Instr{operand}}}

	case vcp.ExprVariable:
		sym := resolveSymbol(e.Variable, s, c)
		return sym.intoLoad()

	case vcp.ExprNumber:
		id := s.fieldTracker.Insert(e.Number)
		return &ir.Instr{Kind: ir.KindValue, Value: ir.ValueInstr{ParseAs: ir.ValueBigInt, ID: uint64(id)}}

	case vcp.ExprCall:
		return translateCall(e.Call, s, c)

	case vcp.ExprArray, vcp.ExprSwitch:
		panic(fmt.Errorf("lower[%s]: sugar expression kind %v reached the lowering core", c.header, e.Kind))

	default:
		panic(fmt.Errorf("lower[%s]: unhandled expression kind %v", c.header, e.Kind))
	}
}
