package lower

import (
	"arcc/internal/ir"
	"arcc/internal/vcp"
)

// translateCallArguments lowers each call argument expression and pairs it
// with its element count, recovered from a variable argument's
// SymbolInfo.Shape (see argumentSize). Every other argument sizes to 1.
func translateCallArguments(args []*vcp.Expr, s *state, c *ctx) ([]*ir.Instr, []int) {
	instrs := make([]*ir.Instr, len(args))
	sizes := make([]int, len(args))
	for i, a := range args {
		instrs[i] = translateExpression(a, s, c)
		sizes[i] = argumentSize(a, s)
	}
	return instrs, sizes
}

// argumentSize recovers a call argument's element count from the variable's
// full declared shape minus the dimensions its own access list already
// consumes: a bare `matrix` consumes none of its shape and sizes to the
// full product, while `matrix[0]` consumes one leading dimension and sizes
// to the product of what's left. Consumption stops at the first
// AccessComponent entry, since a component access switches to a different
// symbol's address space rather than indexing this variable's own shape.
func argumentSize(e *vcp.Expr, s *state) int {
	if e.Kind != vcp.ExprVariable {
		return 1
	}
	info, ok := s.env.Lookup(e.Variable.Name)
	if !ok {
		return 1
	}
	consumed := 0
	for _, a := range e.Variable.Access {
		if a.Kind != vcp.AccessArray {
			break
		}
		consumed++
	}
	return productFrom(info.Shape, consumed)
}

// translateCall lowers a call used in expression position. Its result is
// embedded directly as a Call Instr, carrying ReturnIntermediate: the
// caller (translateExpression) treats the whole Call node as the value,
// and whatever consumes it reads the value the backend leaves behind for
// an intermediate call result.
func translateCall(call vcp.CallExpr, s *state, c *ctx) *ir.Instr {
	args, sizes := translateCallArguments(call.Args, s, c)
	return &ir.Instr{
		Kind: ir.KindCall,
		Call: ir.CallInstr{
			Callee:    call.Callee,
			Args:      args,
			ArgSizes:  sizes,
			ArenaSize: DefaultCallArenaSize,
			Return:    ir.ReturnInfo{Kind: ir.ReturnIntermediate},
		},
	}
}

// translateCallAssign lowers a call whose result must be written to dest,
// used when a Substitution's RHS is directly a call expression: this
// avoids an extra Load/Store round trip for the common `x <== Comp(a, b)`
// shape.
func translateCallAssign(call vcp.CallExpr, dest ir.DestDescriptor, s *state, c *ctx) *ir.Instr {
	args, sizes := translateCallArguments(call.Args, s, c)
	return &ir.Instr{
		Kind: ir.KindCall,
		Call: ir.CallInstr{
			Callee:    call.Callee,
			Args:      args,
			ArgSizes:  sizes,
			ArenaSize: DefaultCallArenaSize,
			Return:    ir.ReturnInfo{Kind: ir.ReturnFinal, Dest: dest},
		},
	}
}
