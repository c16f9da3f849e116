package vcp

// AccessKind distinguishes the two kinds of access-list entries a symbol
// reference can carry.
type AccessKind uint8

const (
	AccessArray AccessKind = iota
	AccessComponent
)

// Access is one entry of a SymbolDef's access list, walked in order by
// the symbol resolver (internal/lower.ProcessedSymbol).
type Access struct {
	Kind  AccessKind
	Index *Expr  // meaningful when Kind == AccessArray
	Name  string // meaningful when Kind == AccessComponent: the signal name
}

// SymbolDef is a named reference together with its access list, exactly
// as semantic analysis resolved it (e.g. `c[1].x[2]` is Name="c",
// Access=[Array(1), Component("x"), Array(2)]).
type SymbolDef struct {
	Meta   Meta
	Name   string
	Access []Access
}

// TypeReduction classifies what address space a declared name lives in.
type TypeReduction uint8

const (
	TypeVariable TypeReduction = iota
	TypeSignalOrComponent
)

// StmtKind discriminates a Stmt's payload.
type StmtKind uint8

const (
	StmtDeclaration StmtKind = iota
	StmtBlock
	StmtSubstitution
	StmtIfThenElse
	StmtWhile
	StmtConstraintEquality
	StmtAssert
	StmtReturn
	StmtLogCall
	// StmtInitializationBlock is syntactic sugar that must not survive to
	// this stage; translating one is a program-invariant violation.
	StmtInitializationBlock
)

// Stmt is one statement tree node.
type Stmt struct {
	Kind StmtKind
	Meta Meta

	Declaration   DeclarationStmt
	Block         BlockStmt
	Substitution  SubstitutionStmt
	IfThenElse    IfStmt
	While         WhileStmt
	Equality      ConstraintEqualityStmt
	Assert        AssertStmt
	Return        ReturnStmt
	LogCall       LogCallStmt
}

// DeclarationStmt introduces a variable or signal/component name with a
// concrete shape.
type DeclarationStmt struct {
	Name          string
	Dims          []int
	TypeReduction TypeReduction
}

// BlockStmt is a lexical scope containing an ordered list of statements.
type BlockStmt struct {
	Stmts []*Stmt
}

// SubstitutionStmt assigns RHS to the symbol denoted by LHS.
type SubstitutionStmt struct {
	LHS SymbolDef
	RHS *Expr
}

// IfStmt is an if/else. Else is nil when there is no else-branch.
type IfStmt struct {
	Cond *Expr
	Then *Stmt
	Else *Stmt
}

// WhileStmt is a while loop.
type WhileStmt struct {
	Cond *Expr
	Body *Stmt
}

// ConstraintEqualityStmt asserts LHS === RHS.
type ConstraintEqualityStmt struct {
	LHS *Expr
	RHS *Expr
}

// AssertStmt asserts Arg is truthy.
type AssertStmt struct {
	Arg *Expr
}

// ReturnStmt returns Value from the enclosing function.
type ReturnStmt struct {
	Value *Expr
}

// LogArg is one argument to a log() call: either an expression or a
// string literal.
type LogArg struct {
	IsString bool
	Str      string // meaningful when IsString
	Exp      *Expr  // meaningful when !IsString
}

// LogCallStmt prints each of Args in order.
type LogCallStmt struct {
	Args []LogArg
}

// InfixOp enumerates the source language's binary operators.
type InfixOp uint8

const (
	InfixMul InfixOp = iota
	InfixDiv
	InfixAdd
	InfixSub
	InfixPow
	InfixIntDiv
	InfixMod
	InfixShiftL
	InfixShiftR
	InfixLesserEq
	InfixGreaterEq
	InfixLesser
	InfixGreater
	InfixEq
	InfixNotEq
	InfixBoolOr
	InfixBoolAnd
	InfixBitOr
	InfixBitAnd
	InfixBitXor
)

// PrefixOp enumerates the source language's unary operators.
type PrefixOp uint8

const (
	PrefixSub PrefixOp = iota
	PrefixBoolNot
	PrefixComplement
)

// ExprKind discriminates an Expr's payload.
type ExprKind uint8

const (
	ExprInfix ExprKind = iota
	ExprPrefix
	ExprVariable
	ExprNumber
	ExprCall
	// ExprArray and ExprSwitch are syntactic sugar that must not survive to
	// this stage.
	ExprArray
	ExprSwitch
)

// Expr is one expression tree node.
type Expr struct {
	Kind ExprKind
	Meta Meta

	Infix    InfixExpr
	Prefix   PrefixExpr
	Variable SymbolDef
	Number   string // decimal string literal, meaningful when Kind == ExprNumber
	Call     CallExpr
}

// InfixExpr is a binary operation.
type InfixExpr struct {
	Op  InfixOp
	LHS *Expr
	RHS *Expr
}

// PrefixExpr is a unary operation.
type PrefixExpr struct {
	Op      PrefixOp
	Operand *Expr
}

// CallExpr invokes Callee with Args. Element counts are not stored here:
// when the call is marshaled, internal/lower takes a variable argument's
// count from its declared shape, counts any other argument as 1, and
// records them in the emitted Call's ArgSizes.
type CallExpr struct {
	Callee string
	Args   []*Expr
}
