package router

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrMalformedExpression marks calculator input that cannot be evaluated.
var ErrMalformedExpression = errors.New("malformed expression")

// Evaluate computes a restricted arithmetic expression. Characters outside
// digits, + - * / % . ( ) and whitespace are stripped before parsing; a
// leading "sqrt" takes the square root of the rest. Standard precedence
// applies.
func Evaluate(input string) (float64, error) {
	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, "sqrt") {
		inner, err := Evaluate(strings.TrimPrefix(trimmed, "sqrt"))
		if err != nil {
			return 0, err
		}
		if inner < 0 {
			return 0, fmt.Errorf("%w: sqrt of negative number", ErrMalformedExpression)
		}
		return math.Sqrt(inner), nil
	}

	p := &exprParser{src: sanitize(trimmed)}
	p.skipSpace()
	if p.eof() {
		return 0, fmt.Errorf("%w: empty input", ErrMalformedExpression)
	}
	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if !p.eof() {
		return 0, fmt.Errorf("%w: trailing input at %q", ErrMalformedExpression, p.rest())
	}
	return v, nil
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case strings.ContainsRune("+-*/%.() \t", r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

type exprParser struct {
	src string
	pos int
}

func (p *exprParser) eof() bool     { return p.pos >= len(p.src) }
func (p *exprParser) rest() string  { return p.src[p.pos:] }
func (p *exprParser) peek() byte    { return p.src[p.pos] }
func (p *exprParser) advance() byte { c := p.src[p.pos]; p.pos++; return c }

func (p *exprParser) skipSpace() {
	for !p.eof() && (p.peek() == ' ' || p.peek() == '\t') {
		p.pos++
	}
}

func (p *exprParser) parseExpr() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpace()
		if p.eof() || (p.peek() != '+' && p.peek() != '-') {
			return left, nil
		}
		op := p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return 0, err
		}
		if op == '+' {
			left += right
		} else {
			left -= right
		}
	}
}

func (p *exprParser) parseTerm() (float64, error) {
	left, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpace()
		if p.eof() || (p.peek() != '*' && p.peek() != '/' && p.peek() != '%') {
			return left, nil
		}
		op := p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		switch op {
		case '*':
			left *= right
		case '/':
			if right == 0 {
				return 0, fmt.Errorf("%w: division by zero", ErrMalformedExpression)
			}
			left /= right
		case '%':
			if right == 0 {
				return 0, fmt.Errorf("%w: modulo by zero", ErrMalformedExpression)
			}
			left = math.Mod(left, right)
		}
	}
}

func (p *exprParser) parseUnary() (float64, error) {
	p.skipSpace()
	if !p.eof() && p.peek() == '-' {
		p.pos++
		v, err := p.parseUnary()
		return -v, err
	}
	return p.parsePrimary()
}

func (p *exprParser) parsePrimary() (float64, error) {
	p.skipSpace()
	if p.eof() {
		return 0, fmt.Errorf("%w: unexpected end of input", ErrMalformedExpression)
	}
	if p.peek() == '(' {
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		p.skipSpace()
		if p.eof() || p.peek() != ')' {
			return 0, fmt.Errorf("%w: missing closing parenthesis", ErrMalformedExpression)
		}
		p.pos++
		return v, nil
	}
	return p.parseNumber()
}

func (p *exprParser) parseNumber() (float64, error) {
	start := p.pos
	for !p.eof() && (p.peek() >= '0' && p.peek() <= '9' || p.peek() == '.') {
		p.pos++
	}
	if p.pos == start {
		return 0, fmt.Errorf("%w: expected number at %q", ErrMalformedExpression, p.rest())
	}
	v, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad number %q", ErrMalformedExpression, p.src[start:p.pos])
	}
	return v, nil
}
