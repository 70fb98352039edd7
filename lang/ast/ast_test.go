package ast_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wired-desktop/shimejictl/lang/ast"
)

func TestNodeStringForms(t *testing.T) {
	lit := &ast.Literal{Value: 1.5}
	assert.Equal(t, "1.5", lit.String())

	v := &ast.Variable{Name: "mascot"}
	assert.Equal(t, "mascot", v.String())

	ma := &ast.MemberAccess{Base: v, Member: "x"}
	assert.Equal(t, "mascot.x", ma.String())

	un := &ast.UnaryOp{Op: "-", Operand: lit}
	assert.Equal(t, "(-1.5)", un.String())

	bin := &ast.BinaryOp{Left: v, Op: "+", Right: lit}
	assert.Equal(t, "(mascot + 1.5)", bin.String())

	tern := &ast.Ternary{Cond: v, Then: lit, Else: un}
	assert.Equal(t, "(mascot ? 1.5 : (-1.5))", tern.String())

	call := &ast.Call{Callee: ma, Args: []ast.Node{lit, v}}
	assert.Equal(t, "mascot.x(1.5, mascot)", call.String())

	noArgs := &ast.Call{Callee: v}
	assert.Equal(t, "mascot()", noArgs.String())
}

func TestDottedName(t *testing.T) {
	chain := &ast.MemberAccess{
		Base:   &ast.MemberAccess{Base: &ast.Variable{Name: "a"}, Member: "b"},
		Member: "c",
	}
	name, ok := ast.DottedName(chain)
	require.True(t, ok)
	assert.Equal(t, "a.b.c", name)

	_, ok = ast.DottedName(&ast.Literal{Value: 1})
	assert.False(t, ok)
}

func TestPrinterWritesStringFormWithNewline(t *testing.T) {
	var buf bytes.Buffer
	p := ast.Printer{Output: &buf}
	require.NoError(t, p.Print(&ast.BinaryOp{Left: &ast.Variable{Name: "a"}, Op: "+", Right: &ast.Literal{Value: 2}}))
	assert.Equal(t, "(a + 2)\n", buf.String())
}
