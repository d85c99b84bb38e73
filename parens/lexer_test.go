package parens

import (
	"errors"
	"testing"
)

func TestLexTokenSequences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "term with arithmetic",
			input: "(+ 1 -2.5)",
			want: []Token{
				{Type: TokenOperator, Literal: "(", Offset: 0},
				{Type: TokenIdentifier, Literal: "+", Offset: 1},
				{Type: TokenNumber, Literal: "1", Offset: 3},
				{Type: TokenNumber, Literal: "-2.5", Offset: 5},
				{Type: TokenOperator, Literal: ")", Offset: 9},
			},
		},
		{
			name:  "symbolic identifiers",
			input: "set! equals? <= .hello -abc",
			want: []Token{
				{Type: TokenIdentifier, Literal: "set!", Offset: 0},
				{Type: TokenIdentifier, Literal: "equals?", Offset: 5},
				{Type: TokenIdentifier, Literal: "<=", Offset: 13},
				{Type: TokenIdentifier, Literal: ".hello", Offset: 16},
				{Type: TokenIdentifier, Literal: "-abc", Offset: 23},
			},
		},
		{
			name:  "bare sign at end of input",
			input: "-",
			want:  []Token{{Type: TokenIdentifier, Literal: "-", Offset: 0}},
		},
		{
			name:  "sign before bracket",
			input: "+(",
			want: []Token{
				{Type: TokenIdentifier, Literal: "+", Offset: 0},
				{Type: TokenOperator, Literal: "(", Offset: 1},
			},
		},
		{
			name:  "lone dot",
			input: ". x",
			want: []Token{
				{Type: TokenOperator, Literal: ".", Offset: 0},
				{Type: TokenIdentifier, Literal: "x", Offset: 2},
			},
		},
		{
			name:  "trailing dot ends number",
			input: "5.",
			want: []Token{
				{Type: TokenNumber, Literal: "5", Offset: 0},
				{Type: TokenOperator, Literal: ".", Offset: 1},
			},
		},
		{
			name:  "second dot ends number",
			input: "1.2.3",
			want: []Token{
				{Type: TokenNumber, Literal: "1.2", Offset: 0},
				{Type: TokenIdentifier, Literal: ".3", Offset: 3},
			},
		},
		{
			name:  "string keeps escapes",
			input: `"a\n\"b\""`,
			want:  []Token{{Type: TokenString, Literal: `"a\n\"b\""`, Offset: 0}},
		},
		{
			name:  "brackets and whitespace runs",
			input: "[x \t\r\n  y]",
			want: []Token{
				{Type: TokenOperator, Literal: "[", Offset: 0},
				{Type: TokenIdentifier, Literal: "x", Offset: 1},
				{Type: TokenIdentifier, Literal: "y", Offset: 8},
				{Type: TokenOperator, Literal: "]", Offset: 9},
			},
		},
		{
			name:  "empty input",
			input: "   ",
			want:  []Token{},
		},
		{
			name:  "multibyte operator",
			input: "café",
			want: []Token{
				{Type: TokenIdentifier, Literal: "caf", Offset: 0},
				{Type: TokenOperator, Literal: "é", Offset: 3},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Lex(tt.input)
			if err != nil {
				t.Fatalf("lex %q: %v", tt.input, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("token count mismatch: got %v want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("token %d: got %+v want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		offset int
	}{
		{name: "unterminated string", input: `(print "abc`, offset: 7},
		{name: "apostrophe in string", input: `"it's"`, offset: 0},
		{name: "unknown escape", input: `"\q"`, offset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Lex(tt.input)
			if err == nil {
				t.Fatalf("expected lex error for %q", tt.input)
			}
			var lexErr *LexError
			if !errors.As(err, &lexErr) {
				t.Fatalf("expected *LexError, got %T", err)
			}
			if lexErr.Offset != tt.offset {
				t.Fatalf("offset mismatch: got %d want %d", lexErr.Offset, tt.offset)
			}
		})
	}
}

func TestCharStreamEmit(t *testing.T) {
	s := newCharStream("ab(")
	s.advance()
	s.advance()
	tok := s.emit(TokenIdentifier)
	if tok.Literal != "ab" || tok.Offset != 0 {
		t.Fatalf("unexpected identifier token %+v", tok)
	}
	if s.length != 0 {
		t.Fatalf("emit should reset the literal length, got %d", s.length)
	}
	op := s.emit(TokenOperator)
	if op.Literal != "(" || op.Offset != 2 || s.index != 2 {
		t.Fatalf("operator emit should not consume: %+v index=%d", op, s.index)
	}
	if _, err := s.get(5); err == nil {
		t.Fatalf("expected out-of-range get to fail")
	}
}
