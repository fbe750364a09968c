package deffile

import "fmt"

// AST of the restricted expression sub-language. The grammar is
// deliberately small: arithmetic, exponentiation with rational exponents,
// grouping, and calls to allow-listed constructors. There is no
// assignment, no indexing, no attribute access, and no way to reach
// arbitrary code from a definition file.
//
//	expr    := term (('+' | '-') term)*
//	term    := unary (('*' | '/') unary)*
//	unary   := '-' unary | power
//	power   := primary ('**' unary)?
//	primary := NUMBER | STRING | IDENT | IDENT '(' expr (',' expr)* ')' | '(' expr ')'

type node interface{ exprNode() }

type numberNode struct {
	value float64
	text  string // raw literal, kept for exact rational interpretation
}

type stringNode struct{ value string }

type identNode struct {
	name string
	col  int
}

type callNode struct {
	name string
	col  int
	args []node
}

type unaryNode struct {
	op rune // '-'
	x  node
}

type binaryNode struct {
	op  string // "+", "-", "*", "/", "**"
	lhs node
	rhs node
}

func (numberNode) exprNode() {}
func (stringNode) exprNode() {}
func (identNode) exprNode()  {}
func (callNode) exprNode()   {}
func (unaryNode) exprNode()  {}
func (binaryNode) exprNode() {}

// parseExpr parses one definition expression into an AST.
func parseExpr(src string) (node, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, fmt.Errorf("column %d: unexpected %s", p.peek().col, p.peek().kind)
	}
	return n, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) advance() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(k tokenKind) (token, error) {
	t := p.peek()
	if t.kind != k {
		return token{}, fmt.Errorf("column %d: expected %s, found %s", t.col, k, t.kind)
	}
	return p.advance(), nil
}

func (p *parser) expr() (node, error) {
	lhs, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().kind {
		case tokPlus:
			p.advance()
			rhs, err := p.term()
			if err != nil {
				return nil, err
			}
			lhs = binaryNode{op: "+", lhs: lhs, rhs: rhs}
		case tokMinus:
			p.advance()
			rhs, err := p.term()
			if err != nil {
				return nil, err
			}
			lhs = binaryNode{op: "-", lhs: lhs, rhs: rhs}
		default:
			return lhs, nil
		}
	}
}

func (p *parser) term() (node, error) {
	lhs, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().kind {
		case tokStar:
			p.advance()
			rhs, err := p.unary()
			if err != nil {
				return nil, err
			}
			lhs = binaryNode{op: "*", lhs: lhs, rhs: rhs}
		case tokSlash:
			p.advance()
			rhs, err := p.unary()
			if err != nil {
				return nil, err
			}
			lhs = binaryNode{op: "/", lhs: lhs, rhs: rhs}
		default:
			return lhs, nil
		}
	}
}

func (p *parser) unary() (node, error) {
	if p.peek().kind == tokMinus {
		p.advance()
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return unaryNode{op: '-', x: x}, nil
	}
	return p.power()
}

func (p *parser) power() (node, error) {
	base, err := p.primary()
	if err != nil {
		return nil, err
	}
	if p.peek().kind == tokPower {
		p.advance()
		// Right-associative; the exponent may carry a leading minus.
		exp, err := p.unary()
		if err != nil {
			return nil, err
		}
		return binaryNode{op: "**", lhs: base, rhs: exp}, nil
	}
	return base, nil
}

func (p *parser) primary() (node, error) {
	t := p.peek()
	switch t.kind {
	case tokNumber:
		p.advance()
		return numberNode{value: t.num, text: t.text}, nil
	case tokString:
		p.advance()
		return stringNode{value: t.text}, nil
	case tokIdent:
		p.advance()
		if p.peek().kind != tokLParen {
			return identNode{name: t.text, col: t.col}, nil
		}
		p.advance()
		call := callNode{name: t.text, col: t.col}
		if p.peek().kind != tokRParen {
			for {
				arg, err := p.expr()
				if err != nil {
					return nil, err
				}
				call.args = append(call.args, arg)
				if p.peek().kind != tokComma {
					break
				}
				p.advance()
			}
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return call, nil
	case tokLParen:
		p.advance()
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return nil, fmt.Errorf("column %d: expected a value, found %s", t.col, t.kind)
}

// containsCall reports whether any constructor/function call appears in the
// tree. A unit defined without one is a coherent combination of existing
// symbols, which the loader records as a simplification relation.
func containsCall(n node) bool {
	switch v := n.(type) {
	case callNode:
		return true
	case unaryNode:
		return containsCall(v.x)
	case binaryNode:
		return containsCall(v.lhs) || containsCall(v.rhs)
	}
	return false
}
