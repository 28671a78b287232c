package calc

import (
	"errors"
	"fmt"
	"strconv"
)

// Parse parses an arithmetic expression into an AST.
func Parse(input string) (Expr, error) {
	tokens, err := Lex(input)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	expr, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if p.current().Kind != TokenEOF {
		return nil, fmt.Errorf("%w: unexpected token %s at position %d", ErrSyntax, p.current().Kind, p.current().Pos)
	}
	return expr, nil
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *parser) advance() Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *parser) expect(kind TokenKind) (Token, error) {
	tok := p.current()
	if tok.Kind != kind {
		return tok, fmt.Errorf("%w: expected %s but got %s at position %d", ErrSyntax, kind, tok.Kind, tok.Pos)
	}
	p.advance()
	return tok, nil
}

// Precedence levels (low to high):
// 1. +, - (left associative)
// 2. *, / (left associative)
// 3. ** (right associative; its left operand may not carry a bare sign)
// 4. unary +, -
// 5. numbers, parenthesised expressions

func (p *parser) parseAdditive() (Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.current().Kind == TokenPlus || p.current().Kind == TokenMinus {
		op := p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Op: op.Kind, Right: right}
	}
	return left, nil
}

func (p *parser) parseMultiplicative() (Expr, error) {
	left, err := p.parseExponent()
	if err != nil {
		return nil, err
	}
	for p.current().Kind == TokenStar || p.current().Kind == TokenSlash {
		op := p.advance()
		right, err := p.parseExponent()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Op: op.Kind, Right: right}
	}
	return left, nil
}

func (p *parser) parseExponent() (Expr, error) {
	if k := p.current().Kind; k == TokenPlus || k == TokenMinus {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		// -2 ** 2 is ambiguous and rejected; (-2) ** 2 is fine.
		if p.current().Kind == TokenPow {
			return nil, fmt.Errorf("%w: signed base before ** at position %d", ErrSyntax, p.current().Pos)
		}
		return operand, nil
	}
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.current().Kind != TokenPow {
		return base, nil
	}
	op := p.advance()
	exponent, err := p.parseExponent()
	if err != nil {
		return nil, err
	}
	return &BinaryExpr{Left: base, Op: op.Kind, Right: exponent}, nil
}

func (p *parser) parseUnary() (Expr, error) {
	if k := p.current().Kind; k == TokenPlus || k == TokenMinus {
		op := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: op.Kind, Operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Expr, error) {
	tok := p.current()
	switch tok.Kind {
	case TokenNumber:
		p.advance()
		// Out-of-range literals keep the ±Inf or 0 ParseFloat rounds them to.
		val, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, fmt.Errorf("%w: invalid number %q at position %d", ErrSyntax, tok.Value, tok.Pos)
		}
		return &NumberExpr{Value: val}, nil
	case TokenLParen:
		p.advance()
		inner, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		return nil, fmt.Errorf("%w: unexpected %s at position %d", ErrSyntax, tok.Kind, tok.Pos)
	}
}
