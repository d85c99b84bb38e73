package parens

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// SourceTermName names the synthetic term wrapping every top-level expression.
const SourceTermName = "source"

type parser struct {
	tokens []Token
	index  int
	source string
}

// Parse lexes and parses input into a single Term named "source" whose
// arguments are the top-level expressions in order.
func Parse(input string) (*Term, error) {
	tokens, err := Lex(input)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens, source: input}
	return p.parseProgram()
}

func (p *parser) parseProgram() (*Term, error) {
	exprs := make([]Node, 0)
	for p.has(0) {
		expr, err := p.parseAst()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return &Term{Name: SourceTermName, Args: exprs}, nil
}

func (p *parser) parseAst() (Node, error) {
	tok := p.current()
	switch {
	case p.peekOperator("(") || p.peekOperator("["):
		return p.parseTerm()
	case tok.Type == TokenNumber:
		return p.parseNumberLiteral()
	case tok.Type == TokenString:
		return p.parseStringLiteral()
	case tok.Type == TokenIdentifier:
		p.advance()
		return &Identifier{Name: tok.Literal, position: tok.Offset}, nil
	default:
		return nil, p.errorAt(tok.Offset, fmt.Sprintf("unexpected %s", tokenLabel(tok)))
	}
}

func (p *parser) parseTerm() (Node, error) {
	open := p.current()
	p.advance()
	closer := closingDelimiter(open.Literal)

	if !p.has(0) || p.current().Type != TokenIdentifier {
		return nil, p.errorAt(open.Offset, fmt.Sprintf("expected term name after %q", open.Literal))
	}
	name := p.current().Literal
	p.advance()

	args := make([]Node, 0)
	for {
		if !p.has(0) {
			return nil, p.errorAt(p.previous().Offset, fmt.Sprintf("unterminated term %q, expected %q", name, closer))
		}
		if p.peekOperator(")") || p.peekOperator("]") {
			tok := p.current()
			if tok.Literal != closer {
				return nil, p.errorAt(tok.Offset, fmt.Sprintf("mismatched delimiter, expected %q but got %q", closer, tok.Literal))
			}
			p.advance()
			return &Term{Name: name, Args: args, position: open.Offset}, nil
		}
		arg, err := p.parseAst()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
}

func (p *parser) parseNumberLiteral() (Node, error) {
	tok := p.current()
	p.advance()
	value, err := parseDecimal(tok.Literal)
	if err != nil {
		return nil, p.errorAt(tok.Offset, fmt.Sprintf("invalid number %q", tok.Literal))
	}
	return &NumberLiteral{Value: value, position: tok.Offset}, nil
}

func (p *parser) parseStringLiteral() (Node, error) {
	tok := p.current()
	p.advance()
	raw := tok.Literal
	if len(raw) < 2 {
		return nil, p.errorAt(tok.Offset, "malformed string literal")
	}
	return &StringLiteral{Value: unescapeString(raw[1 : len(raw)-1]), position: tok.Offset}, nil
}

func (p *parser) has(offset int) bool {
	return p.index+offset < len(p.tokens)
}

func (p *parser) current() Token {
	return p.tokens[p.index]
}

func (p *parser) previous() Token {
	if p.index == 0 {
		return Token{}
	}
	return p.tokens[p.index-1]
}

func (p *parser) advance() {
	p.index++
}

func (p *parser) peekOperator(literal string) bool {
	if !p.has(0) {
		return false
	}
	tok := p.current()
	return tok.Type == TokenOperator && tok.Literal == literal
}

func closingDelimiter(open string) string {
	if open == "[" {
		return "]"
	}
	return ")"
}

func parseDecimal(literal string) (*apd.Decimal, error) {
	value, _, err := apd.NewFromString(strings.TrimPrefix(literal, "+"))
	if err != nil {
		return nil, err
	}
	return normalizeZero(value), nil
}

// unescapeString maps \b \n \r \t \" \' \\ to the characters they denote in a
// single left-to-right pass.
func unescapeString(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'b':
			b.WriteByte('\b')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
