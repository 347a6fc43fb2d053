package css

import (
	"testing"
)

func TestTokenizerBasicTokens(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenType
	}{
		{"", []TokenType{TokenEOF}},
		{"   ", []TokenType{TokenWhitespace, TokenEOF}},
		{"10px", []TokenType{TokenDimension, TokenEOF}},
		{"50%", []TokenType{TokenPercentage, TokenEOF}},
		{"0", []TokenType{TokenNumber, TokenEOF}},
		{"auto", []TokenType{TokenIdent, TokenEOF}},
		{"10px 20%", []TokenType{TokenDimension, TokenWhitespace, TokenPercentage, TokenEOF}},
		{"!", []TokenType{TokenDelim, TokenEOF}},
	}

	for _, tt := range tests {
		tokenizer := NewTokenizer(tt.input)
		for i, expected := range tt.expected {
			tok := tokenizer.Next()
			if tok.Type != expected {
				t.Errorf("input %q: token %d: expected %v, got %v", tt.input, i, expected, tok.Type)
			}
		}
	}
}

func TestTokenizerNumbers(t *testing.T) {
	tests := []struct {
		input   string
		value   float64
		numType NumberType
	}{
		{"0", 0, NumberInteger},
		{"42", 42, NumberInteger},
		{"-7", -7, NumberInteger},
		{"+3", 3, NumberInteger},
		{"1.5", 1.5, NumberNumber},
		{".5", 0.5, NumberNumber},
		{"-2.25", -2.25, NumberNumber},
		{"1e2", 100, NumberNumber},
	}

	for _, tt := range tests {
		tokenizer := NewTokenizer(tt.input)
		tok := tokenizer.Next()

		if tok.Type != TokenNumber {
			t.Errorf("input %q: expected NUMBER, got %v", tt.input, tok.Type)
			continue
		}
		if tok.NumValue != tt.value {
			t.Errorf("input %q: expected value %v, got %v", tt.input, tt.value, tok.NumValue)
		}
		if tok.NumType != tt.numType {
			t.Errorf("input %q: expected number type %v, got %v", tt.input, tt.numType, tok.NumType)
		}
	}
}

func TestTokenizerDimensions(t *testing.T) {
	tests := []struct {
		input string
		value float64
		unit  string
	}{
		{"10px", 10, "px"},
		{"-5px", -5, "px"},
		{"1.5em", 1.5, "em"},
		{"0px", 0, "px"},
	}

	for _, tt := range tests {
		tokenizer := NewTokenizer(tt.input)
		tok := tokenizer.Next()

		if tok.Type != TokenDimension {
			t.Errorf("input %q: expected DIMENSION, got %v", tt.input, tok.Type)
			continue
		}
		if tok.NumValue != tt.value {
			t.Errorf("input %q: expected value %v, got %v", tt.input, tt.value, tok.NumValue)
		}
		if tok.Unit != tt.unit {
			t.Errorf("input %q: expected unit %q, got %q", tt.input, tt.unit, tok.Unit)
		}
	}
}

func TestTokenizerPercentages(t *testing.T) {
	tokenizer := NewTokenizer("-25.5%")
	tok := tokenizer.Next()

	if tok.Type != TokenPercentage {
		t.Fatalf("Expected PERCENTAGE, got %v", tok.Type)
	}
	if tok.NumValue != -25.5 {
		t.Errorf("Expected value -25.5, got %v", tok.NumValue)
	}
}

func TestTokenizeSkipsWhitespace(t *testing.T) {
	tokens := Tokenize("  10px\t20% \n 0  ")
	if len(tokens) != 3 {
		t.Fatalf("Expected 3 tokens, got %d", len(tokens))
	}
	if tokens[0].Type != TokenDimension || tokens[1].Type != TokenPercentage || tokens[2].Type != TokenNumber {
		t.Errorf("Unexpected token types: %v %v %v", tokens[0].Type, tokens[1].Type, tokens[2].Type)
	}
}
