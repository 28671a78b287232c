// Package calc implements the calculator tool's arithmetic language: decimal
// numbers, + - * / **, parentheses and unary signs. Expressions are lexed,
// parsed into a small AST and evaluated without any dynamic code execution.
package calc

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrSyntax reports an expression that cannot be parsed.
	ErrSyntax = errors.New("calc: invalid expression")
	// ErrNotFinite reports an expression that evaluated to NaN or an infinity.
	ErrNotFinite = errors.New("calc: result is not finite")
)

// TokenKind identifies the type of a lexer token.
type TokenKind int

const (
	TokenNumber TokenKind = iota
	TokenPlus             // +
	TokenMinus            // -
	TokenStar             // *
	TokenSlash            // /
	TokenPow              // **
	TokenLParen           // (
	TokenRParen           // )
	TokenEOF
)

var tokenNames = map[TokenKind]string{
	TokenNumber: "number",
	TokenPlus:   "+",
	TokenMinus:  "-",
	TokenStar:   "*",
	TokenSlash:  "/",
	TokenPow:    "**",
	TokenLParen: "(",
	TokenRParen: ")",
	TokenEOF:    "EOF",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return fmt.Sprintf("token(%d)", int(k))
}

// Token is a lexed token with its byte offset in the source.
type Token struct {
	Kind  TokenKind
	Value string
	Pos   int
}

// Sanitize drops every character that is not a digit, an operator, a
// parenthesis, a decimal point or whitespace. Runs of operators survive
// untouched so "2**8" keeps its exponent.
func Sanitize(expression string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9':
			return r
		case strings.ContainsRune("+-*/().", r):
			return r
		case isSpace(r):
			return r
		}
		return -1
	}, expression)
}

// isSpace reports whether r is in the ECMAScript whitespace class: the
// WhiteSpace and LineTerminator code points. Unlike unicode.IsSpace it
// excludes U+0085 and includes U+FEFF.
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', 0x00A0, 0x1680, 0x2028, 0x2029, 0x202F, 0x205F, 0x3000, 0xFEFF:
		return true
	}
	return r >= 0x2000 && r <= 0x200A
}

// Lex tokenizes src. The returned slice always ends with a TokenEOF.
func Lex(src string) ([]Token, error) {
	var tokens []Token
	pos := 0
	for pos < len(src) {
		ch := rune(src[pos])
		if ch >= utf8.RuneSelf {
			r, size := utf8.DecodeRuneInString(src[pos:])
			if isSpace(r) {
				pos += size
				continue
			}
			return nil, fmt.Errorf("%w: unexpected %q at position %d", ErrSyntax, r, pos)
		}
		switch {
		case isSpace(ch):
			pos++
		case isDigit(src[pos]) || src[pos] == '.':
			tok, next, err := lexNumber(src, pos)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			pos = next
		case ch == '*':
			if pos+1 < len(src) && src[pos+1] == '*' {
				tokens = append(tokens, Token{Kind: TokenPow, Value: "**", Pos: pos})
				pos += 2
				continue
			}
			tokens = append(tokens, Token{Kind: TokenStar, Value: "*", Pos: pos})
			pos++
		case ch == '+' || ch == '-':
			// "++" and "--" are increment operators, never valid on literals.
			if pos+1 < len(src) && src[pos+1] == src[pos] {
				return nil, fmt.Errorf("%w: unexpected %q at position %d", ErrSyntax, src[pos:pos+2], pos)
			}
			kind := TokenPlus
			if ch == '-' {
				kind = TokenMinus
			}
			tokens = append(tokens, Token{Kind: kind, Value: string(ch), Pos: pos})
			pos++
		case ch == '/':
			tokens = append(tokens, Token{Kind: TokenSlash, Value: "/", Pos: pos})
			pos++
		case ch == '(':
			tokens = append(tokens, Token{Kind: TokenLParen, Value: "(", Pos: pos})
			pos++
		case ch == ')':
			tokens = append(tokens, Token{Kind: TokenRParen, Value: ")", Pos: pos})
			pos++
		default:
			return nil, fmt.Errorf("%w: unexpected %q at position %d", ErrSyntax, ch, pos)
		}
	}
	tokens = append(tokens, Token{Kind: TokenEOF, Pos: len(src)})
	return tokens, nil
}

func lexNumber(src string, start int) (Token, int, error) {
	pos := start
	digits := 0
	for pos < len(src) && isDigit(src[pos]) {
		pos++
		digits++
	}
	intPart := src[start:pos]
	if pos < len(src) && src[pos] == '.' {
		pos++
		for pos < len(src) && isDigit(src[pos]) {
			pos++
			digits++
		}
	}
	if digits == 0 {
		return Token{}, 0, fmt.Errorf("%w: lone '.' at position %d", ErrSyntax, start)
	}
	// Leading zeros are legacy octal literals and rejected in strict arithmetic.
	if len(intPart) > 1 && intPart[0] == '0' {
		return Token{}, 0, fmt.Errorf("%w: leading zero in %q at position %d", ErrSyntax, src[start:pos], start)
	}
	return Token{Kind: TokenNumber, Value: src[start:pos], Pos: start}, pos, nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
