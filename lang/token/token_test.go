package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wired-desktop/shimejictl/lang/token"
)

func TestIsUnaryOp(t *testing.T) {
	cases := []struct {
		tok  token.Token
		want bool
	}{
		{token.Token{Kind: token.Operator, Subkind: token.Not}, true},
		{token.Token{Kind: token.Operator, Subkind: token.Subtract}, true},
		{token.Token{Kind: token.Operator, Subkind: token.BitwiseNot}, true},
		{token.Token{Kind: token.Operator, Subkind: token.Add}, true},
		{token.Token{Kind: token.Operator, Subkind: token.Multiply}, false},
		{token.Token{Kind: token.Identifier}, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.tok.IsUnaryOp())
	}
}

func TestBracketSubkind(t *testing.T) {
	assert.Equal(t, token.Expression, token.BracketSubkind('('))
	assert.Equal(t, token.Array, token.BracketSubkind('['))
	assert.Equal(t, token.Scope, token.BracketSubkind('{'))
}

func TestOperatorSubkindsGreedyOrdering(t *testing.T) {
	// Two-character operators must resolve distinctly from their
	// one-character prefixes.
	assert.Equal(t, token.Power, token.OperatorSubkinds["**"])
	assert.Equal(t, token.Multiply, token.OperatorSubkinds["*"])
	assert.Equal(t, token.LessThanOrEqual, token.OperatorSubkinds["<="])
	assert.Equal(t, token.LessThan, token.OperatorSubkinds["<"])
}
