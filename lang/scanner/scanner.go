// Package scanner tokenizes inline expression strings for the parser to
// consume. The scanner is a single left-to-right pass, modeled on the same
// "one pending token, emit on boundary" structure used by hand-written
// recursive-descent lexers, generalized here to the small expression
// grammar instead of a full programming language.
package scanner

import (
	"strings"

	"github.com/wired-desktop/shimejictl/lang/token"
)

var htmlEntities = []struct{ from, to string }{
	{"&lt;", "<"}, {"&gt;", ">"}, {"&amp;", "&"}, {"&quot;", "\""},
	{"&apos;", "'"}, {"&nbsp;", " "}, {"&copy;", "©"}, {"&reg;", "®"},
	{"&trade;", "™"}, {"&euro;", "€"}, {"&pound;", "£"},
}

var randomPatches = []struct{ from, to string }{
	{"math.random*", "math.random()*"},
	{"math.random/", "math.random()/"},
	{"math.random-", "math.random()-"},
	{"math.random+", "math.random()+"},
}

// Prepare strips the "${...}"/"#{...}" wrapper (if present), lowercases the
// body, decodes the fixed set of HTML-entity escapes, and patches
// "math.random" into a call where it is directly followed by *, /, - or
// +; other occurrences are left as they are. It returns the
// processed body and whether the expression was wrapped in "#{" (the
// evaluate-once marker, decided by the caller before trimming per §4.A).
func Prepare(raw string) (body string, evaluateOnce bool) {
	s := raw
	hashWrapped := strings.HasPrefix(s, "#{")
	if (strings.HasPrefix(s, "${") || hashWrapped) && strings.HasSuffix(s, "}") {
		s = s[2 : len(s)-1]
	}
	s = strings.ToLower(s)
	for _, e := range htmlEntities {
		s = strings.ReplaceAll(s, e.from, e.to)
	}
	for _, p := range randomPatches {
		s = strings.ReplaceAll(s, p.from, p.to)
	}
	return s, !hashWrapped
}

const (
	identStart = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ_"
	digits     = "0123456789"
	operators  = "+-*/%&|^~<>=!"
	brackets   = "()[]{}"
	whitespace = " \t\n\r"
)

func isIdentStart(c byte) bool { return strings.IndexByte(identStart, c) >= 0 }
func isIdentCont(c byte) bool  { return isIdentStart(c) || isDigit(c) }
func isDigit(c byte) bool      { return strings.IndexByte(digits, c) >= 0 }
func isOperator(c byte) bool   { return strings.IndexByte(operators, c) >= 0 }
func isBracket(c byte) bool    { return strings.IndexByte(brackets, c) >= 0 }
func isWhitespace(c byte) bool { return strings.IndexByte(whitespace, c) >= 0 }
func isOpeningBracket(c byte) bool {
	return c == '(' || c == '[' || c == '{'
}

// Scan tokenizes body (already processed by Prepare) and returns the token
// sequence. No EOF sentinel is appended; the parser synthesizes one.
func Scan(body string) []token.Token {
	var toks []token.Token
	var cur *token.Token

	emit := func(end int) {
		if cur == nil {
			return
		}
		finalize(cur)
		cur.End = end
		toks = append(toks, *cur)
		cur = nil
	}

	for i := 0; i < len(body); i++ {
		c := body[i]

		if cur == nil {
			if isWhitespace(c) {
				continue
			}
			cur = startToken(c, i)
			continue
		}

		switch cur.Kind {
		case token.Identifier:
			if isIdentCont(c) {
				cur.Lexeme += string(c)
				continue
			}
		case token.Number:
			switch {
			case isDigit(c) || c == '.':
				cur.Lexeme += string(c)
				continue
			case isIdentStart(c):
				cur.Kind = token.Invalid
				cur.InvalidReason = "invalid character '" + string(c) + "' in number"
				cur.Lexeme += string(c)
				continue
			}
		case token.Operator:
			if _, ok := token.OperatorSubkinds[cur.Lexeme+string(c)]; ok {
				cur.Lexeme += string(c)
				continue
			}
		}

		// current token cannot extend: emit it and start a new one.
		emit(i)
		if isWhitespace(c) {
			continue
		}
		cur = startToken(c, i)
	}
	emit(len(body))

	return toks
}

func startToken(c byte, pos int) *token.Token {
	t := &token.Token{Start: pos, Lexeme: string(c)}
	switch {
	case isIdentStart(c):
		t.Kind = token.Identifier
	case isDigit(c):
		t.Kind = token.Number
	case isOperator(c):
		t.Kind = token.Operator
	case isBracket(c):
		if isOpeningBracket(c) {
			t.Kind = token.OpeningBracket
		} else {
			t.Kind = token.ClosingBracket
		}
		t.Subkind = token.BracketSubkind(c)
	case c == '.':
		t.Kind = token.Access
	case c == '?':
		t.Kind = token.Question
	case c == ':':
		t.Kind = token.Colon
	case c == ';':
		t.Kind = token.Semicolon
	case c == ',':
		t.Kind = token.Comma
	default:
		t.Kind = token.Invalid
		t.InvalidReason = "unexpected character '" + string(c) + "'"
	}
	return t
}

// finalize resolves the subkind of operator tokens once their full lexeme
// is known (a number or identifier token never needs this).
func finalize(t *token.Token) {
	if t.Kind == token.Operator {
		if sub, ok := token.OperatorSubkinds[t.Lexeme]; ok {
			t.Subkind = sub
		} else {
			t.Kind = token.Invalid
			t.InvalidReason = "invalid operator " + t.Lexeme
		}
	}
}
