package deffile

import (
	"fmt"
	"strconv"
	"strings"
)

// === Tokens ===

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokString // quoted dimension / display-unit literal
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPower // **
	tokLParen
	tokRParen
	tokComma
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of expression"
	case tokNumber:
		return "number"
	case tokIdent:
		return "identifier"
	case tokString:
		return "string"
	case tokPlus:
		return "'+'"
	case tokMinus:
		return "'-'"
	case tokStar:
		return "'*'"
	case tokSlash:
		return "'/'"
	case tokPower:
		return "'**'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokComma:
		return "','"
	}
	return "unknown token"
}

type token struct {
	kind tokenKind
	text string  // raw text for idents and strings
	num  float64 // value for tokNumber
	col  int     // 1-based column in the expression
}

// lexer tokenizes one definition expression. The sub-language is small
// enough that the whole token stream is produced up front.
type lexer struct {
	src string
	pos int
}

func lex(src string) ([]token, error) {
	l := &lexer{src: src}
	var toks []token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.kind == tokEOF {
			return toks, nil
		}
	}
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.src) && (l.src[l.pos] == ' ' || l.src[l.pos] == '\t') {
		l.pos++
	}
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, col: l.pos + 1}, nil
	}

	start := l.pos
	col := start + 1
	c := l.src[l.pos]
	switch {
	case c == '+':
		l.pos++
		return token{kind: tokPlus, col: col}, nil
	case c == '-':
		l.pos++
		return token{kind: tokMinus, col: col}, nil
	case c == '*':
		if l.pos+1 < len(l.src) && l.src[l.pos+1] == '*' {
			l.pos += 2
			return token{kind: tokPower, col: col}, nil
		}
		l.pos++
		return token{kind: tokStar, col: col}, nil
	case c == '/':
		l.pos++
		return token{kind: tokSlash, col: col}, nil
	case c == '(':
		l.pos++
		return token{kind: tokLParen, col: col}, nil
	case c == ')':
		l.pos++
		return token{kind: tokRParen, col: col}, nil
	case c == ',':
		l.pos++
		return token{kind: tokComma, col: col}, nil
	case c == '\'' || c == '"':
		quote := c
		l.pos++
		for l.pos < len(l.src) && l.src[l.pos] != quote {
			l.pos++
		}
		if l.pos >= len(l.src) {
			return token{}, fmt.Errorf("column %d: unterminated string", col)
		}
		text := l.src[start+1 : l.pos]
		l.pos++
		return token{kind: tokString, text: text, col: col}, nil
	case isDigit(c) || c == '.':
		for l.pos < len(l.src) && (isDigit(l.src[l.pos]) || l.src[l.pos] == '.') {
			l.pos++
		}
		// Exponent suffix, e.g. 483597.870e9.
		if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
			mark := l.pos
			l.pos++
			if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
				l.pos++
			}
			if l.pos < len(l.src) && isDigit(l.src[l.pos]) {
				for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
					l.pos++
				}
			} else {
				// Not an exponent after all (e.g. "2*eV"): back off.
				l.pos = mark
			}
		}
		text := l.src[start:l.pos]
		num, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return token{}, fmt.Errorf("column %d: invalid number %q", col, text)
		}
		return token{kind: tokNumber, text: text, num: num, col: col}, nil
	case isIdentStart(c):
		for l.pos < len(l.src) && isIdentChar(l.src[l.pos]) {
			l.pos++
		}
		return token{kind: tokIdent, text: l.src[start:l.pos], col: col}, nil
	}
	return token{}, fmt.Errorf("column %d: unexpected character %q", col, string(c))
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c == '_'
}

func isIdentChar(c byte) bool { return isIdentStart(c) || isDigit(c) }

// validSymbol reports whether s can name a definition.
func validSymbol(s string) bool {
	if s == "" || !isIdentStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentChar(s[i]) {
			return false
		}
	}
	return !strings.ContainsAny(s, " \t")
}
