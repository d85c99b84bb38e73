package parens

import "github.com/cockroachdb/apd/v3"

// Node is implemented by the four AST node types. Pos returns the byte offset
// of the node's first token.
type Node interface {
	Pos() int
	node()
}

// Term is a named invocation; Args are kept unevaluated.
type Term struct {
	Name     string
	Args     []Node
	position int
}

func (t *Term) node()    {}
func (t *Term) Pos() int { return t.position }

type Identifier struct {
	Name     string
	position int
}

func (e *Identifier) node()    {}
func (e *Identifier) Pos() int { return e.position }

type NumberLiteral struct {
	Value    *apd.Decimal
	position int
}

func (e *NumberLiteral) node()    {}
func (e *NumberLiteral) Pos() int { return e.position }

// StringLiteral holds the unescaped string value.
type StringLiteral struct {
	Value    string
	position int
}

func (e *StringLiteral) node()    {}
func (e *StringLiteral) Pos() int { return e.position }

// NewTerm builds a term at the given offset. Hosts use it to synthesize
// invocations without going through the parser.
func NewTerm(name string, args []Node, pos int) *Term {
	return &Term{Name: name, Args: args, position: pos}
}

func NewIdentifier(name string, pos int) *Identifier {
	return &Identifier{Name: name, position: pos}
}

func NewNumberLiteral(value *apd.Decimal, pos int) *NumberLiteral {
	return &NumberLiteral{Value: value, position: pos}
}

func NewStringLiteral(value string, pos int) *StringLiteral {
	return &StringLiteral{Value: value, position: pos}
}
