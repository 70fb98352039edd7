package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wired-desktop/shimejictl/lang/ast"
	"github.com/wired-desktop/shimejictl/lang/parser"
	"github.com/wired-desktop/shimejictl/lang/scanner"
)

func parse(t *testing.T, body string) ast.Node {
	t.Helper()
	toks := scanner.Scan(body)
	n, err := parser.Parse(toks)
	require.NoError(t, err)
	return n
}

func TestParseBooleanFolding(t *testing.T) {
	n := parse(t, "true")
	lit, ok := n.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, 1.0, lit.Value)
}

func TestParseMemberAccessChain(t *testing.T) {
	n := parse(t, "mascot.x.y")
	name, ok := ast.DottedName(n)
	require.True(t, ok)
	assert.Equal(t, "mascot.x.y", name)
}

func TestParseBinaryPrecedence(t *testing.T) {
	n := parse(t, "1+2*3")
	assert.Equal(t, "(1 + (2 * 3))", n.String())
}

func TestParseTernaryIsRightAssociativeAndLowestPrecedence(t *testing.T) {
	n := parse(t, "1?2:3?4:5")
	assert.Equal(t, "(1 ? 2 : (3 ? 4 : 5))", n.String())
}

func TestParseFunctionCall(t *testing.T) {
	n := parse(t, "mascot.distance(1,2)")
	call, ok := n.(*ast.Call)
	require.True(t, ok)
	assert.Len(t, call.Args, 2)
	assert.Equal(t, "mascot.distance", call.Callee.String())
}

func TestParseUnaryMinus(t *testing.T) {
	n := parse(t, "-mascot.x")
	u, ok := n.(*ast.UnaryOp)
	require.True(t, ok)
	assert.Equal(t, "-", u.Op)
}

func TestParseSyntaxErrorOnDanglingOperator(t *testing.T) {
	toks := scanner.Scan("1+")
	_, err := parser.Parse(toks)
	assert.Error(t, err)
}

func TestParseParenthesized(t *testing.T) {
	n := parse(t, "(1+2)*3")
	assert.Equal(t, "((1 + 2) * 3)", n.String())
}
