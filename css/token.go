// Package css provides the CSS value parsing consumed by the intersection
// observation engine, following CSS Syntax Module Level 3 where it applies.
// Reference: https://www.w3.org/TR/css-syntax-3/
package css

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenType represents the type of a CSS token.
type TokenType int

const (
	// Token types per CSS Syntax Module Level 3 §4, reduced to the set a
	// property value can contain.
	TokenEOF TokenType = iota
	TokenIdent
	TokenDelim
	TokenNumber
	TokenPercentage
	TokenDimension
	TokenWhitespace
)

// NumberType indicates whether a number is integer or number.
type NumberType int

const (
	NumberInteger NumberType = iota
	NumberNumber
)

// Token represents a CSS token.
type Token struct {
	Type     TokenType
	Value    string     // The string value of the token
	NumValue float64    // Numeric value for number/percentage/dimension
	NumType  NumberType // Whether numeric value is integer or number
	Unit     string     // Unit for dimension tokens
	Delim    rune       // The delimiter character for delim tokens
	Line     int        // Line number in source
	Column   int        // Column number in source
}

func (t Token) String() string {
	switch t.Type {
	case TokenEOF:
		return "<EOF>"
	case TokenIdent:
		return fmt.Sprintf("<IDENT %q>", t.Value)
	case TokenDelim:
		return fmt.Sprintf("<DELIM %q>", string(t.Delim))
	case TokenNumber:
		if t.NumType == NumberInteger {
			return fmt.Sprintf("<NUMBER int %v>", t.NumValue)
		}
		return fmt.Sprintf("<NUMBER %v>", t.NumValue)
	case TokenPercentage:
		return fmt.Sprintf("<PERCENTAGE %v%%>", t.NumValue)
	case TokenDimension:
		return fmt.Sprintf("<DIMENSION %v%s>", t.NumValue, t.Unit)
	case TokenWhitespace:
		return "<WHITESPACE>"
	default:
		return "<UNKNOWN>"
	}
}

// Tokenizer tokenizes a CSS property value string.
type Tokenizer struct {
	input  []rune
	pos    int
	line   int
	column int
}

// NewTokenizer creates a tokenizer for the given input.
func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{
		input:  []rune(input),
		line:   1,
		column: 1,
	}
}

// peek returns the current code point without consuming it.
func (t *Tokenizer) peek() rune {
	if t.pos >= len(t.input) {
		return -1 // EOF
	}
	return t.input[t.pos]
}

// peekN returns the code point at offset n from current position.
func (t *Tokenizer) peekN(n int) rune {
	pos := t.pos + n
	if pos >= len(t.input) || pos < 0 {
		return -1
	}
	return t.input[pos]
}

// consume consumes and returns the current code point.
func (t *Tokenizer) consume() rune {
	if t.pos >= len(t.input) {
		return -1
	}
	r := t.input[t.pos]
	t.pos++
	if r == '\n' {
		t.line++
		t.column = 1
	} else {
		t.column++
	}
	return r
}

// isWhitespace returns true if r is a CSS whitespace character.
func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f'
}

// isDigit returns true if r is a digit.
func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isLetter returns true if r is a letter.
func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// isNameCodePoint returns true if r can appear in an identifier.
func isNameCodePoint(r rune) bool {
	return isLetter(r) || isDigit(r) || r == '-' || r == '_' || r >= 0x80
}

// startsNumber checks if the next code points would start a number.
func (t *Tokenizer) startsNumber() bool {
	first := t.peek()
	if isDigit(first) {
		return true
	}
	if first == '+' || first == '-' {
		second := t.peekN(1)
		if isDigit(second) {
			return true
		}
		if second == '.' && isDigit(t.peekN(2)) {
			return true
		}
		return false
	}
	if first == '.' {
		return isDigit(t.peekN(1))
	}
	return false
}

// startsIdentifier checks if the next code points would start an identifier.
func (t *Tokenizer) startsIdentifier() bool {
	first := t.peek()
	if isLetter(first) || first == '_' || first >= 0x80 {
		return true
	}
	if first == '-' {
		second := t.peekN(1)
		return isLetter(second) || second == '_' || second == '-' || second >= 0x80
	}
	return false
}

// consumeName consumes an identifier and returns the string.
func (t *Tokenizer) consumeName() string {
	var result strings.Builder
	for isNameCodePoint(t.peek()) {
		result.WriteRune(t.consume())
	}
	return result.String()
}

// consumeNumber consumes a number and returns value, representation, and type.
func (t *Tokenizer) consumeNumber() (float64, string, NumberType) {
	var repr strings.Builder
	numType := NumberInteger

	// Sign
	if t.peek() == '+' || t.peek() == '-' {
		repr.WriteRune(t.consume())
	}

	// Integer part
	for isDigit(t.peek()) {
		repr.WriteRune(t.consume())
	}

	// Decimal part
	if t.peek() == '.' && isDigit(t.peekN(1)) {
		repr.WriteRune(t.consume()) // .
		numType = NumberNumber
		for isDigit(t.peek()) {
			repr.WriteRune(t.consume())
		}
	}

	// Exponent part
	if t.peek() == 'e' || t.peek() == 'E' {
		next := t.peekN(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(t.peekN(2))) {
			repr.WriteRune(t.consume()) // e or E
			numType = NumberNumber
			if t.peek() == '+' || t.peek() == '-' {
				repr.WriteRune(t.consume())
			}
			for isDigit(t.peek()) {
				repr.WriteRune(t.consume())
			}
		}
	}

	val, _ := strconv.ParseFloat(repr.String(), 64)
	return val, repr.String(), numType
}

// consumeNumericToken consumes a numeric token.
func (t *Tokenizer) consumeNumericToken() Token {
	line, col := t.line, t.column
	numVal, repr, numType := t.consumeNumber()

	if t.startsIdentifier() {
		unit := t.consumeName()
		return Token{
			Type:     TokenDimension,
			Value:    repr,
			NumValue: numVal,
			NumType:  numType,
			Unit:     unit,
			Line:     line,
			Column:   col,
		}
	}

	if t.peek() == '%' {
		t.consume()
		return Token{
			Type:     TokenPercentage,
			Value:    repr,
			NumValue: numVal,
			NumType:  numType,
			Line:     line,
			Column:   col,
		}
	}

	return Token{
		Type:     TokenNumber,
		Value:    repr,
		NumValue: numVal,
		NumType:  numType,
		Line:     line,
		Column:   col,
	}
}

// Next returns the next token from the input.
func (t *Tokenizer) Next() Token {
	line, col := t.line, t.column

	r := t.peek()
	switch {
	case r == -1:
		return Token{Type: TokenEOF, Line: line, Column: col}
	case isWhitespace(r):
		for isWhitespace(t.peek()) {
			t.consume()
		}
		return Token{Type: TokenWhitespace, Line: line, Column: col}
	case t.startsNumber():
		return t.consumeNumericToken()
	case t.startsIdentifier():
		return Token{Type: TokenIdent, Value: t.consumeName(), Line: line, Column: col}
	default:
		t.consume()
		return Token{Type: TokenDelim, Delim: r, Line: line, Column: col}
	}
}

// Tokenize returns all tokens in the input, excluding whitespace, up to EOF.
func Tokenize(input string) []Token {
	tokenizer := NewTokenizer(input)
	var tokens []Token
	for {
		tok := tokenizer.Next()
		if tok.Type == TokenEOF {
			return tokens
		}
		if tok.Type == TokenWhitespace {
			continue
		}
		tokens = append(tokens, tok)
	}
}
