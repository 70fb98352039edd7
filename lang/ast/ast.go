// Package ast defines the closed set of expression node types produced by
// the parser.
package ast

import "fmt"

// Node is any node of the expression AST.
type Node interface {
	fmt.Stringer
	node()
}

// Literal is a numeric constant. true/false are folded to 1.0/0.0 by the
// parser, so no boolean literal kind exists.
type Literal struct {
	Value float64
}

// Variable is a bare identifier reference.
type Variable struct {
	Name string
}

// MemberAccess is a left-associative "." chain, e.g. a.b.c.
type MemberAccess struct {
	Base   Node
	Member string
}

// UnaryOp applies a prefix operator to Operand.
type UnaryOp struct {
	Op      string
	Operand Node
}

// BinaryOp applies an infix operator between Left and Right.
type BinaryOp struct {
	Left  Node
	Op    string
	Right Node
}

// Ternary is the "cond ? then : else" expression.
type Ternary struct {
	Cond Node
	Then Node
	Else Node
}

// Call is a function call. Callee is itself a Node so that chains like
// a.b(...) parse correctly: the callee is whatever identifier/access chain
// preceded the opening parenthesis.
type Call struct {
	Callee Node
	Args   []Node
}

func (*Literal) node()      {}
func (*Variable) node()     {}
func (*MemberAccess) node() {}
func (*UnaryOp) node()      {}
func (*BinaryOp) node()     {}
func (*Ternary) node()      {}
func (*Call) node()         {}

func (n *Literal) String() string { return fmt.Sprintf("%g", n.Value) }
func (n *Variable) String() string { return n.Name }
func (n *MemberAccess) String() string {
	return fmt.Sprintf("%s.%s", n.Base, n.Member)
}
func (n *UnaryOp) String() string { return fmt.Sprintf("(%s%s)", n.Op, n.Operand) }
func (n *BinaryOp) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left, n.Op, n.Right)
}
func (n *Ternary) String() string {
	return fmt.Sprintf("(%s ? %s : %s)", n.Cond, n.Then, n.Else)
}
func (n *Call) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	s := "("
	for i, a := range args {
		if i > 0 {
			s += ", "
		}
		s += a
	}
	return fmt.Sprintf("%s%s)", n.Callee, s)
}

// DottedName returns the dotted string form of a chain of MemberAccess
// nodes rooted at a Variable, and true if the node is indeed such a chain
// (the only shape the compiler needs to classify as local/global).
func DottedName(n Node) (string, bool) {
	switch t := n.(type) {
	case *Variable:
		return t.Name, true
	case *MemberAccess:
		base, ok := DottedName(t.Base)
		if !ok {
			return "", false
		}
		return base + "." + t.Member, true
	default:
		return "", false
	}
}
