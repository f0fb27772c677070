package mathexpr

import (
	"strconv"
	"unicode"
)

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokOperator
	tokLParen
	tokRParen
)

type token struct {
	kind  tokenKind
	op    rune
	value float64
}

func (t token) isOperator() bool {
	return t.kind == tokOperator
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func tokenize(expr string) ([]token, error) {
	runes := []rune(expr)
	var toks []token

	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '(':
			toks = append(toks, token{kind: tokLParen})
			i++
		case r == ')':
			toks = append(toks, token{kind: tokRParen})
			i++
		case r == '+' || r == '-' || r == '*' || r == '/':
			toks = append(toks, token{kind: tokOperator, op: r})
			i++
		case isDigit(r) || r == '.':
			start := i
			for i < len(runes) && (isDigit(runes[i]) || runes[i] == '.') {
				i++
			}
			v, err := strconv.ParseFloat(string(runes[start:i]), 64)
			if err != nil {
				return nil, ErrSyntax
			}
			if n := len(toks); n > 0 && (toks[n-1].kind == tokNumber || toks[n-1].kind == tokRParen) {
				// "1 2" or "(1)2"
				return nil, ErrSyntax
			}
			toks = append(toks, token{kind: tokNumber, value: v})
		default:
			return nil, ErrNotExpression
		}
	}
	return toks, nil
}

// parser is a recursive-descent evaluator over numbers, the four operators,
// unary minus and parentheses. It has no names, calls or scope.
//
//	expr   = term { ("+" | "-") term }
//	term   = unary { ("*" | "/") unary }
//	unary  = "-" unary | primary
//	primary = number | "(" expr ")"
type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.pos], true
}

func (p *parser) parseExpr() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		t, ok := p.peek()
		if !ok || t.kind != tokOperator || (t.op != '+' && t.op != '-') {
			return left, nil
		}
		p.pos++
		right, err := p.parseTerm()
		if err != nil {
			return 0, err
		}
		if t.op == '+' {
			left += right
		} else {
			left -= right
		}
	}
}

func (p *parser) parseTerm() (float64, error) {
	left, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		t, ok := p.peek()
		if !ok || t.kind != tokOperator || (t.op != '*' && t.op != '/') {
			return left, nil
		}
		p.pos++
		right, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		if t.op == '*' {
			left *= right
		} else {
			left /= right
		}
	}
}

func (p *parser) parseUnary() (float64, error) {
	t, ok := p.peek()
	if ok && t.kind == tokOperator && t.op == '-' {
		p.pos++
		v, err := p.parseUnary()
		return -v, err
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (float64, error) {
	t, ok := p.peek()
	if !ok {
		return 0, ErrSyntax
	}
	switch t.kind {
	case tokNumber:
		p.pos++
		return t.value, nil
	case tokLParen:
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		closing, ok := p.peek()
		if !ok || closing.kind != tokRParen {
			return 0, ErrSyntax
		}
		p.pos++
		return v, nil
	default:
		return 0, ErrSyntax
	}
}
