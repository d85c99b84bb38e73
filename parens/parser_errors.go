package parens

import (
	"fmt"
	"strconv"
	"strings"
)

// LexError reports input the lexer could not classify.
type LexError struct {
	Offset int
	Msg    string
	source string
}

func (e *LexError) Error() string {
	return formatSourceError("lex error", e.source, e.Offset, e.Msg)
}

// ParseError reports a token sequence that does not fit the grammar.
type ParseError struct {
	Offset int
	Msg    string
	source string
}

func (e *ParseError) Error() string {
	return formatSourceError("parse error", e.source, e.Offset, e.Msg)
}

func (p *parser) errorAt(offset int, msg string) error {
	return &ParseError{Offset: offset, Msg: msg, source: p.source}
}

func formatSourceError(label, source string, offset int, msg string) string {
	pos := PositionAt(source, offset)
	var b strings.Builder
	fmt.Fprintf(&b, "%s at %d:%d: %s", label, pos.Line, pos.Column, msg)
	if frame := formatCodeFrame(source, pos); frame != "" {
		b.WriteString("\n")
		b.WriteString(frame)
	}
	return b.String()
}

func tokenLabel(tok Token) string {
	switch tok.Type {
	case TokenIdentifier:
		return fmt.Sprintf("identifier %q", tok.Literal)
	case TokenNumber:
		return fmt.Sprintf("number %s", tok.Literal)
	case TokenString:
		return "string"
	case TokenOperator:
		return fmt.Sprintf("%q", tok.Literal)
	default:
		return "end of input"
	}
}

func formatCodeFrame(source string, pos Position) string {
	if source == "" || pos.Line <= 0 {
		return ""
	}

	lines := strings.Split(source, "\n")
	if pos.Line > len(lines) {
		return ""
	}

	lineText := lines[pos.Line-1]
	lineRunes := []rune(lineText)

	column := pos.Column
	if column <= 0 {
		column = 1
	}
	if column > len(lineRunes)+1 {
		column = len(lineRunes) + 1
	}

	lineLabel := strconv.Itoa(pos.Line)
	gutterPad := strings.Repeat(" ", len(lineLabel))
	caretPad := strings.Repeat(" ", column-1)

	return fmt.Sprintf(
		"  --> line %d, column %d\n %s | %s\n %s | %s^",
		pos.Line,
		column,
		lineLabel,
		lineText,
		gutterPad,
		caretPad,
	)
}
