// Package parser implements a recursive-descent, precedence-climbing
// parser for the inline expression grammar, modeled on the teacher's
// parseSubExpr/binopPriority structure but specialized to this grammar's
// flat precedence table (ternary, then binary operators by precedence,
// then unary, then primary).
package parser

import (
	"fmt"

	"github.com/wired-desktop/shimejictl/lang/ast"
	"github.com/wired-desktop/shimejictl/lang/token"
)

// SyntaxError is returned for any malformed expression. Nothing in this
// module substitutes a value for an expression that fails to parse.
type SyntaxError struct {
	Expected string
	Got      token.Token
	Pos      int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d: expected %s, got %s %q", e.Pos, e.Expected, e.Got.Kind, e.Got.Lexeme)
}

type parser struct {
	toks []token.Token
	pos  int
}

// Parse parses the token stream produced by scanner.Scan into an
// expression AST. tokens must not include an EOF sentinel; Parse
// synthesizes one internally.
func Parse(toks []token.Token) (ast.Node, error) {
	p := &parser{toks: toks}
	n, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	if cur := p.current(); cur.Kind != token.EOF {
		return nil, &SyntaxError{Expected: "end of expression", Got: cur, Pos: cur.Start}
	}
	return n, nil
}

func (p *parser) current() token.Token {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	end := 0
	if len(p.toks) > 0 {
		end = p.toks[len(p.toks)-1].End
	}
	return token.Token{Kind: token.EOF, Start: end, End: end}
}

func (p *parser) advance() token.Token {
	t := p.current()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *parser) expect(kind token.Kind) (token.Token, error) {
	cur := p.current()
	if cur.Kind != kind {
		return token.Token{}, &SyntaxError{Expected: kind.String(), Got: cur, Pos: cur.Start}
	}
	return p.advance(), nil
}

// parseTernary handles "cond ? then : else", the lowest-precedence
// production. then/else are full expressions, making the operator
// right-associative.
func (p *parser) parseTernary() (ast.Node, error) {
	cond, err := p.parseBinary(0)
	if err != nil {
		return nil, err
	}
	if p.current().Kind != token.Question {
		return cond, nil
	}
	p.advance()
	then, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Colon); err != nil {
		return nil, err
	}
	els, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	return &ast.Ternary{Cond: cond, Then: then, Else: els}, nil
}

// binopPriority mirrors the teacher's precedence table: lowest to highest
// is or, and, equality, relational, additive, multiplicative.
var binopPriority = map[token.Subkind]int{
	token.Or:                 1,
	token.And:                2,
	token.Equal:               3,
	token.NotEqual:            3,
	token.LessThan:            4,
	token.LessThanOrEqual:     4,
	token.GreaterThan:         4,
	token.GreaterThanOrEqual:  4,
	token.Add:                 5,
	token.Subtract:            5,
	token.Multiply:            6,
	token.Divide:              6,
	token.Modulus:             6,
}

func (p *parser) parseBinary(minPrio int) (ast.Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		cur := p.current()
		if cur.Kind != token.Operator {
			return left, nil
		}
		prio, ok := binopPriority[cur.Subkind]
		if !ok || prio < minPrio {
			return left, nil
		}
		p.advance()
		right, err := p.parseBinary(prio + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Left: left, Op: cur.Subkind.String(), Right: right}
	}
}

func (p *parser) parseUnary() (ast.Node, error) {
	cur := p.current()
	if cur.IsUnaryOp() {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: cur.Subkind.String(), Operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (ast.Node, error) {
	cur := p.current()
	switch cur.Kind {
	case token.Number:
		p.advance()
		return parseNumberLiteral(cur)
	case token.Identifier:
		return p.parseIdentOrCall()
	case token.OpeningBracket:
		if cur.Subkind != token.Expression {
			return nil, &SyntaxError{Expected: "(", Got: cur, Pos: cur.Start}
		}
		p.advance()
		inner, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectCloseParen(); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		return nil, &SyntaxError{Expected: "expression", Got: cur, Pos: cur.Start}
	}
}

func (p *parser) expectCloseParen() (token.Token, error) {
	cur := p.current()
	if cur.Kind != token.ClosingBracket || cur.Subkind != token.Expression {
		return token.Token{}, &SyntaxError{Expected: ")", Got: cur, Pos: cur.Start}
	}
	return p.advance(), nil
}

// parseIdentOrCall parses an identifier, folding true/false to literals,
// then zero or more ".member" suffixes, then an optional call.
func (p *parser) parseIdentOrCall() (ast.Node, error) {
	ident, err := p.expect(token.Identifier)
	if err != nil {
		return nil, err
	}

	var node ast.Node
	switch ident.Lexeme {
	case "true":
		node = &ast.Literal{Value: 1.0}
	case "false":
		node = &ast.Literal{Value: 0.0}
	default:
		node = &ast.Variable{Name: ident.Lexeme}
	}

	for p.current().Kind == token.Access {
		p.advance()
		member, err := p.expect(token.Identifier)
		if err != nil {
			return nil, err
		}
		node = &ast.MemberAccess{Base: node, Member: member.Lexeme}
	}

	if p.current().Kind == token.OpeningBracket && p.current().Subkind == token.Expression {
		p.advance()
		var args []ast.Node
		for p.current().Kind != token.ClosingBracket && p.current().Kind != token.EOF {
			arg, err := p.parseTernary()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.current().Kind == token.Comma {
				p.advance()
			}
		}
		if _, err := p.expectCloseParen(); err != nil {
			return nil, &SyntaxError{Expected: "closing bracket for function call", Got: p.current(), Pos: p.current().Start}
		}
		node = &ast.Call{Callee: node, Args: args}
	}

	return node, nil
}
