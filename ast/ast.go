package ast

import "github.com/pontaoski/fnc/types"

//go:generate sh -c "cd ../tool && go run . ../ast/ast.adt ../ast/ast_gen.go ast"

type Program struct {
	Declarations []Declaration
}

type FunctionDeclaration struct {
	Name       string
	Parameters []ParameterDeclaration
	ReturnType Type
	Body       Block
}

type ParameterDeclaration struct {
	Name     string
	Datatype Type
}

type SimpleType int

const (
	// InvalidType stands in for a type that failed to parse.
	InvalidType SimpleType = iota
	I8
	I16
	I32
	I64
	U8
	U16
	U32
	U64
	Void
)

var simpleTypeNames = map[SimpleType]string{
	InvalidType: "<invalid>",
	I8:          "i8",
	I16:         "i16",
	I32:         "i32",
	I64:         "i64",
	U8:          "u8",
	U16:         "u16",
	U32:         "u32",
	U64:         "u64",
	Void:        "void",
}

var simpleTypeKinds = map[types.TokenKind]SimpleType{
	types.I8:   I8,
	types.I16:  I16,
	types.I32:  I32,
	types.I64:  I64,
	types.U8:   U8,
	types.U16:  U16,
	types.U32:  U32,
	types.U64:  U64,
	types.VOID: Void,
}

// SimpleTypeOf maps a type keyword to its type, and any other kind to
// InvalidType.
func SimpleTypeOf(kind types.TokenKind) SimpleType {
	return simpleTypeKinds[kind]
}

type DeclarationStatement struct {
	Variable string
	Datatype Type
	Value    Expression
}

type VariableAssignmentStatement struct {
	Variable string
	Value    Expression
}

// IfStatement is one link of an if / else if / else chain. A nil Condition
// marks the final else block, which never has a Tail.
type IfStatement struct {
	Condition Expression
	Body      Block
	Tail      *IfStatement
}

func NewIf(cond Expression, body Block, tail *IfStatement) *IfStatement {
	return &IfStatement{
		Condition: cond,
		Body:      body,
		Tail:      tail,
	}
}

func NewElse(body Block) *IfStatement {
	return &IfStatement{Body: body}
}

func (v *IfStatement) IsElse() bool {
	return v.Condition == nil
}

type WhileStatement struct {
	Condition Expression
	Body      Block
}

// ReturnStatement.Value is nil for a bare return.
type ReturnStatement struct {
	Value Expression
}

type ExpressionStatement struct {
	Expression Expression
}

type Operator int

const (
	Plus Operator = iota
	Min
	Mul
	Div
	Mod
)

var operatorKinds = map[types.TokenKind]Operator{
	types.PLUS:    Plus,
	types.MINUS:   Min,
	types.STAR:    Mul,
	types.SLASH:   Div,
	types.PERCENT: Mod,
}

func OperatorOf(kind types.TokenKind) (Operator, bool) {
	op, ok := operatorKinds[kind]
	return op, ok
}

type BinOpExpression struct {
	Left  Expression
	Op    Operator
	Right Expression
}

// LiteralExpression holds the digits exactly as written.
type LiteralExpression struct {
	Value string
}

type VariableReferenceExpression struct {
	Name string
}

type FunctionCallExpression struct {
	Name      string
	Arguments []Expression
}

// BadExpression takes the place of an expression that could not be parsed.
type BadExpression struct {
	Location types.Position
}
