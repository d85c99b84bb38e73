package parens

import "strings"

// Format renders node as canonical source. The synthetic source term renders
// one top-level expression per line; every other term uses parentheses and
// single spaces.
func Format(node Node) string {
	var b strings.Builder
	if term, ok := node.(*Term); ok && term.Name == SourceTermName && term.Pos() == 0 {
		for _, arg := range term.Args {
			writeNode(&b, arg)
			b.WriteByte('\n')
		}
		return b.String()
	}
	writeNode(&b, node)
	return b.String()
}

func writeNode(b *strings.Builder, node Node) {
	switch n := node.(type) {
	case *Term:
		b.WriteByte('(')
		b.WriteString(n.Name)
		for _, arg := range n.Args {
			b.WriteByte(' ')
			writeNode(b, arg)
		}
		b.WriteByte(')')
	case *Identifier:
		b.WriteString(n.Name)
	case *NumberLiteral:
		b.WriteString(formatNumber(n.Value))
	case *StringLiteral:
		b.WriteString(quoteString(n.Value))
	}
}

// quoteString is the inverse of the parser's unescaping.
func quoteString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\b':
			b.WriteString(`\b`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '"':
			b.WriteString(`\"`)
		case '\'':
			b.WriteString(`\'`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
