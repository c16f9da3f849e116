package lower

import (
	"arcc/internal/fieldstr"
	"arcc/internal/vcp"
)

func newTestFieldTracker() *fieldstr.FieldTracker { return fieldstr.NewFieldTracker() }

func numberExpr(decimal string) *vcp.Expr {
	return &vcp.Expr{Kind: vcp.ExprNumber, Number: decimal}
}

func variableExpr(name string, access ...vcp.Access) *vcp.Expr {
	return &vcp.Expr{Kind: vcp.ExprVariable, Variable: vcp.SymbolDef{Name: name, Access: access}}
}

func infixExpr(op vcp.InfixOp, lhs, rhs *vcp.Expr) *vcp.Expr {
	return &vcp.Expr{Kind: vcp.ExprInfix, Infix: vcp.InfixExpr{Op: op, LHS: lhs, RHS: rhs}}
}

func arrayIndex(i int) vcp.Access {
	return vcp.Access{Kind: vcp.AccessArray, Index: numberExpr(itoa(i))}
}

func componentAccess(signal string) vcp.Access {
	return vcp.Access{Kind: vcp.AccessComponent, Name: signal}
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var digits []byte
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	if neg {
		return "-" + string(digits)
	}
	return string(digits)
}
