package parens

import "unicode/utf8"

// charStream wraps the source text with a scan cursor and the length of the
// literal accumulated for the token being lexed.
type charStream struct {
	input  string
	index  int
	length int
}

func newCharStream(input string) *charStream {
	return &charStream{input: input}
}

// has reports whether a character exists at index+offset.
func (s *charStream) has(offset int) bool {
	return s.index+offset < len(s.input)
}

func (s *charStream) get(offset int) (byte, error) {
	if !s.has(offset) {
		return 0, &LexError{Offset: s.index, Msg: "unexpected end of input", source: s.input}
	}
	return s.input[s.index+offset], nil
}

func (s *charStream) advance() {
	s.index++
	s.length++
}

// reset starts a new literal without moving the cursor.
func (s *charStream) reset() {
	s.length = 0
}

// emit builds a token of the given type. Operators are the single rune at the
// cursor and are not consumed; every other type spans the characters
// accumulated since the last reset.
func (s *charStream) emit(tt TokenType) Token {
	var tok Token
	if tt == TokenOperator {
		_, width := utf8.DecodeRuneInString(s.input[s.index:])
		tok = Token{Type: tt, Literal: s.input[s.index : s.index+width], Offset: s.index}
	} else {
		start := s.index - s.length
		tok = Token{Type: tt, Literal: s.input[start:s.index], Offset: start}
	}
	s.reset()
	return tok
}
