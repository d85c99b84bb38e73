package parens

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	TokenIdentifier TokenType = "IDENTIFIER"
	TokenNumber     TokenType = "NUMBER"
	TokenString     TokenType = "STRING"
	TokenOperator   TokenType = "OPERATOR"
)

// Token captures lexical information for the parser. Literal is the raw
// source text; string tokens keep their quotes and escape sequences.
type Token struct {
	Type    TokenType
	Literal string
	Offset  int
}

// Position identifies a location in the source text.
type Position struct {
	Offset int
	Line   int
	Column int
}

// PositionAt converts a byte offset into a 1-based line and column.
func PositionAt(source string, offset int) Position {
	pos := Position{Offset: offset, Line: 1, Column: 1}
	if offset > len(source) {
		offset = len(source)
	}
	for _, r := range source[:offset] {
		if r == '\n' {
			pos.Line++
			pos.Column = 1
			continue
		}
		pos.Column++
	}
	return pos
}
