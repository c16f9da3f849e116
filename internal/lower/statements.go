package lower

import (
	"fmt"

	"arcc/internal/addr"
	"arcc/internal/ir"
	"arcc/internal/vcp"
)

// translateStatement dispatches one statement tree node into zero or more
// emitted instructions. StmtInitializationBlock is syntactic sugar that
// semantic analysis is required to have rewritten away before this
// stage; encountering one here is a program-invariant violation.
func translateStatement(stmt *vcp.Stmt, s *state, c *ctx) {
	switch stmt.Kind {
	case vcp.StmtDeclaration:
		translateDeclaration(stmt.Declaration, s)

	case vcp.StmtBlock:
		translateBlock(stmt.Block, s, c)

	case vcp.StmtSubstitution:
		translateSubstitution(stmt.Substitution, s, c)

	case vcp.StmtIfThenElse:
		translateIfThenElse(stmt.IfThenElse, s, c)

	case vcp.StmtWhile:
		translateWhile(stmt.While, s, c)

	case vcp.StmtConstraintEquality:
		lhs := translateExpression(stmt.Equality.LHS, s, c)
		rhs := translateExpression(stmt.Equality.RHS, s, c)
		s.emit(&ir.Instr{
			Kind:    ir.KindCompute,
			Compute: ir.ComputeInstr{Op: ir.OpEq, Operands: []*ir.Instr{lhs, rhs}},
		})

	case vcp.StmtAssert:
		arg := translateExpression(stmt.Assert.Arg, s, c)
		s.emit(&ir.Instr{Kind: ir.KindAssert, Assert: ir.AssertInstr{Evaluate: arg}})

	case vcp.StmtReturn:
		translateReturn(stmt.Return, s, c)

	case vcp.StmtLogCall:
		translateLogCall(stmt.LogCall, s, c)

	case vcp.StmtInitializationBlock:
		panic(fmt.Errorf("lower[%s]: initialization-block sugar reached the lowering core", c.header))

	default:
		panic(fmt.Errorf("lower[%s]: unhandled statement kind %v", c.header, stmt.Kind))
	}
}

func translateDeclaration(d vcp.DeclarationStmt, s *state) {
	switch d.TypeReduction {
	case vcp.TypeVariable:
		base := s.counters.ReserveVariable(product(d.Dims))
		s.env.Declare(d.Name, addr.SymbolInfo{Shape: d.Dims, Access: addr.BaseAccess(base)})
	case vcp.TypeSignalOrComponent:
		// Signals and components are hoisted and reserved by
		// initializeSignals/initializeComponents before any statement
		// runs; a declaration reaching here is only a scope marker, so
		// just confirm the name already resolves.
		s.env.MustLookup(d.Name)
	}
}

func translateBlock(b vcp.BlockStmt, s *state, c *ctx) {
	s.env.PushBlock()
	mark := s.counters.VariableWatermark()
	for _, child := range b.Stmts {
		translateStatement(child, s, c)
	}
	s.counters.RestoreVariableWatermark(mark)
	s.env.PopBlock()
}

func translateSubstitution(sub vcp.SubstitutionStmt, s *state, c *ctx) {
	if sub.RHS.Kind == vcp.ExprCall {
		dest := resolveSymbol(sub.LHS, s, c)
		s.emit(translateCallAssign(sub.RHS.Call, dest.intoCallAssign(), s, c))
		return
	}
	rhs := translateExpression(sub.RHS, s, c)
	dest := resolveSymbol(sub.LHS, s, c)
	s.emit(dest.intoStore(rhs))
}

func translateIfThenElse(stmt vcp.IfStmt, s *state, c *ctx) {
	cond := translateExpression(stmt.Cond, s, c)

	thenCode := translateBranch(stmt.Then, s, c)
	var elseCode []*ir.Instr
	if stmt.Else != nil {
		elseCode = translateBranch(stmt.Else, s, c)
	}

	s.emit(&ir.Instr{
		Kind:   ir.KindBranch,
		Branch: ir.BranchInstr{Cond: cond, Then: thenCode, Else: elseCode},
	})
}

func translateWhile(stmt vcp.WhileStmt, s *state, c *ctx) {
	cond := translateExpression(stmt.Cond, s, c)
	body := translateBranch(stmt.Body, s, c)
	s.emit(&ir.Instr{Kind: ir.KindLoop, Loop: ir.LoopInstr{Cond: cond, Body: body}})
}

// translateBranch lowers a single-statement branch body into its own
// code slice, using a nested scope so declarations inside the branch
// don't leak into the enclosing body.
func translateBranch(stmt *vcp.Stmt, s *state, c *ctx) []*ir.Instr {
	outer := s.code
	s.code = nil
	s.env.PushBlock()
	mark := s.counters.VariableWatermark()

	translateStatement(stmt, s, c)

	s.counters.RestoreVariableWatermark(mark)
	s.env.PopBlock()
	branchCode := s.code
	s.code = outer
	return branchCode
}

func translateReturn(ret vcp.ReturnStmt, s *state, c *ctx) {
	value := translateExpression(ret.Value, s, c)
	shape := c.functionSigs[c.header]
	s.emit(&ir.Instr{Kind: ir.KindReturn, Return: ir.ReturnInstr{Value: value, WithSize: product(shape)}})
}

func translateLogCall(stmt vcp.LogCallStmt, s *state, c *ctx) {
	args := make([]ir.LogArg, len(stmt.Args))
	for i, a := range stmt.Args {
		if a.IsString {
			id := s.stringTable.Intern(a.Str)
			args[i] = ir.LogArg{Kind: ir.LogArgStr, StrID: id}
			continue
		}
		args[i] = ir.LogArg{Kind: ir.LogArgExp, Exp: translateExpression(a.Exp, s, c)}
	}
	s.emit(&ir.Instr{Kind: ir.KindLog, Log: ir.LogInstr{Args: args}})
}
