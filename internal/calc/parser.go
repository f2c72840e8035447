package calc

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokDoubleSlash
	tokPercent
	tokPower
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	kind  tokenKind
	value float64
	text  string
}

type parser struct {
	input  string
	tokens []token
	pos    int
}

func newParser(expr string) *parser {
	return &parser{input: expr}
}

// Grammar (precedence lowest to highest):
//
//	expr    := term (('+'|'-') term)*
//	term    := factor (('*'|'/'|'//'|'%') factor)*
//	factor  := ('+'|'-') factor | power
//	power   := primary ('**' factor)?
//	primary := number | ident ('(' expr (',' expr)* ')')? | '(' expr ')'
//
// '**' is right-associative and binds tighter than a unary minus on its
// left, so -2**2 == -4 and 2**-3 parses.
func (p *parser) parse() (float64, error) {
	if err := p.tokenize(); err != nil {
		return 0, err
	}
	v, err := p.expr()
	if err != nil {
		return 0, err
	}
	if p.peek().kind != tokEOF {
		return 0, evalErrorf("invalid syntax")
	}
	return v, nil
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expr() (float64, error) {
	v, err := p.term()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek().kind {
		case tokPlus:
			p.next()
			rhs, err := p.term()
			if err != nil {
				return 0, err
			}
			v += rhs
		case tokMinus:
			p.next()
			rhs, err := p.term()
			if err != nil {
				return 0, err
			}
			v -= rhs
		default:
			return v, nil
		}
	}
}

func (p *parser) term() (float64, error) {
	v, err := p.factor()
	if err != nil {
		return 0, err
	}
	for {
		op := p.peek().kind
		switch op {
		case tokStar, tokSlash, tokDoubleSlash, tokPercent:
			p.next()
			rhs, err := p.factor()
			if err != nil {
				return 0, err
			}
			v, err = applyTermOp(op, v, rhs)
			if err != nil {
				return 0, err
			}
		default:
			return v, nil
		}
	}
}

func applyTermOp(op tokenKind, a, b float64) (float64, error) {
	switch op {
	case tokStar:
		return a * b, nil
	case tokSlash:
		if b == 0 {
			return 0, evalErrorf("division by zero")
		}
		return a / b, nil
	case tokDoubleSlash:
		if b == 0 {
			return 0, evalErrorf("division by zero")
		}
		return math.Floor(a / b), nil
	default: // tokPercent
		if b == 0 {
			return 0, evalErrorf("modulo by zero")
		}
		// Modulo takes the sign of the divisor.
		m := math.Mod(a, b)
		if m != 0 && (m < 0) != (b < 0) {
			m += b
		}
		return m, nil
	}
}

func (p *parser) factor() (float64, error) {
	switch p.peek().kind {
	case tokPlus:
		p.next()
		return p.factor()
	case tokMinus:
		p.next()
		v, err := p.factor()
		if err != nil {
			return 0, err
		}
		return -v, nil
	}
	return p.power()
}

func (p *parser) power() (float64, error) {
	v, err := p.primary()
	if err != nil {
		return 0, err
	}
	if p.peek().kind == tokPower {
		p.next()
		exp, err := p.factor()
		if err != nil {
			return 0, err
		}
		r := math.Pow(v, exp)
		if math.IsNaN(r) && !math.IsNaN(v) && !math.IsNaN(exp) {
			return 0, evalErrorf("math domain error")
		}
		return r, nil
	}
	return v, nil
}

func (p *parser) primary() (float64, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return t.value, nil
	case tokLParen:
		v, err := p.expr()
		if err != nil {
			return 0, err
		}
		if p.next().kind != tokRParen {
			return 0, evalErrorf("invalid syntax")
		}
		return v, nil
	case tokIdent:
		if p.peek().kind == tokLParen {
			return p.call(t.text)
		}
		if v, ok := constants[t.text]; ok {
			return v, nil
		}
		if _, ok := functions[t.text]; ok {
			return 0, evalErrorf("'%s' is not a value", t.text)
		}
		return 0, evalErrorf("name '%s' is not defined", t.text)
	default:
		return 0, evalErrorf("invalid syntax")
	}
}

func (p *parser) call(name string) (float64, error) {
	fn, ok := functions[name]
	if !ok {
		if _, isConst := constants[name]; isConst {
			return 0, evalErrorf("'%s' is not callable", name)
		}
		return 0, evalErrorf("name '%s' is not defined", name)
	}

	p.next() // consume '('

	var args []float64
	if p.peek().kind != tokRParen {
		for {
			v, err := p.expr()
			if err != nil {
				return 0, err
			}
			args = append(args, v)
			if p.peek().kind != tokComma {
				break
			}
			p.next()
		}
	}
	if p.next().kind != tokRParen {
		return 0, evalErrorf("invalid syntax")
	}

	if len(args) < fn.minArgs || len(args) > fn.maxArgs {
		if fn.minArgs == fn.maxArgs {
			return 0, evalErrorf("%s() takes %d argument(s), got %d", name, fn.minArgs, len(args))
		}
		return 0, evalErrorf("%s() takes %d to %d arguments, got %d", name, fn.minArgs, fn.maxArgs, len(args))
	}

	return fn.apply(args)
}

func (p *parser) tokenize() error {
	s := p.input
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c >= '0' && c <= '9' || c == '.':
			start := i
			for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
				i++
			}
			// Optional exponent.
			if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
				j := i + 1
				if j < len(s) && (s[j] == '+' || s[j] == '-') {
					j++
				}
				if j < len(s) && s[j] >= '0' && s[j] <= '9' {
					i = j
					for i < len(s) && s[i] >= '0' && s[i] <= '9' {
						i++
					}
				}
			}
			v, err := strconv.ParseFloat(s[start:i], 64)
			if err != nil {
				return evalErrorf("invalid number '%s'", s[start:i])
			}
			p.tokens = append(p.tokens, token{kind: tokNumber, value: v})
		case isIdentStart(rune(c)):
			start := i
			for i < len(s) && isIdentPart(rune(s[i])) {
				i++
			}
			p.tokens = append(p.tokens, token{kind: tokIdent, text: s[start:i]})
		case c == '*':
			if strings.HasPrefix(s[i:], "**") {
				p.tokens = append(p.tokens, token{kind: tokPower})
				i += 2
			} else {
				p.tokens = append(p.tokens, token{kind: tokStar})
				i++
			}
		case c == '/':
			if strings.HasPrefix(s[i:], "//") {
				p.tokens = append(p.tokens, token{kind: tokDoubleSlash})
				i += 2
			} else {
				p.tokens = append(p.tokens, token{kind: tokSlash})
				i++
			}
		case c == '+':
			p.tokens = append(p.tokens, token{kind: tokPlus})
			i++
		case c == '-':
			p.tokens = append(p.tokens, token{kind: tokMinus})
			i++
		case c == '%':
			p.tokens = append(p.tokens, token{kind: tokPercent})
			i++
		case c == '(':
			p.tokens = append(p.tokens, token{kind: tokLParen})
			i++
		case c == ')':
			p.tokens = append(p.tokens, token{kind: tokRParen})
			i++
		case c == ',':
			p.tokens = append(p.tokens, token{kind: tokComma})
			i++
		default:
			return evalErrorf("unexpected character '%c'", c)
		}
	}
	p.tokens = append(p.tokens, token{kind: tokEOF})
	return nil
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
