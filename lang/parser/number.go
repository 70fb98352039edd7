package parser

import (
	"strconv"

	"github.com/wired-desktop/shimejictl/lang/ast"
	"github.com/wired-desktop/shimejictl/lang/token"
)

func parseNumberLiteral(t token.Token) (ast.Node, error) {
	f, err := strconv.ParseFloat(t.Lexeme, 64)
	if err != nil {
		return nil, &SyntaxError{Expected: "number", Got: t, Pos: t.Start}
	}
	return &ast.Literal{Value: f}, nil
}
