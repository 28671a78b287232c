package calc

import "fmt"

// Expr is the interface implemented by all AST nodes.
type Expr interface {
	expr()
	String() string
}

// NumberExpr is a decimal literal.
type NumberExpr struct {
	Value float64
}

func (e *NumberExpr) expr() {}
func (e *NumberExpr) String() string {
	return FormatNumber(e.Value)
}

// UnaryExpr is a sign applied to an operand (e.g. -a).
type UnaryExpr struct {
	Op      TokenKind
	Operand Expr
}

func (e *UnaryExpr) expr() {}
func (e *UnaryExpr) String() string {
	return fmt.Sprintf("(%s%s)", e.Op, e.Operand)
}

// BinaryExpr is an arithmetic operation (e.g. a * b).
type BinaryExpr struct {
	Left  Expr
	Op    TokenKind
	Right Expr
}

func (e *BinaryExpr) expr() {}
func (e *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left, e.Op, e.Right)
}
