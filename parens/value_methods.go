package parens

import (
	"fmt"
	"strings"
)

func (k ValueKind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "boolean"
	case KindList:
		return "list"
	case KindCallable:
		return "callable"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// String returns the textual form used by print: strings are written raw,
// lists as [a, b, c] and Void as the empty string.
func (v Value) String() string {
	switch v.kind {
	case KindVoid:
		return ""
	case KindNumber:
		return formatNumber(v.Number())
	case KindString:
		return v.data.(string)
	case KindBool:
		if v.Bool() {
			return "true"
		}
		return "false"
	case KindList:
		items := v.List()
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = item.String()
		}
		return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
	case KindCallable:
		return fmt.Sprintf("<callable %s>", v.Callable().Name)
	default:
		return fmt.Sprintf("<%v>", v.kind)
	}
}

// Literal returns source text that evaluates back to an equal value, where
// one exists. Callables and Void have no literal form and render as String.
func (v Value) Literal() string {
	switch v.kind {
	case KindString:
		return quoteString(v.data.(string))
	case KindList:
		items := v.List()
		var b strings.Builder
		b.WriteString("(list")
		for _, item := range items {
			b.WriteByte(' ')
			b.WriteString(item.Literal())
		}
		b.WriteByte(')')
		return b.String()
	default:
		return v.String()
	}
}

// Equal is deep value equality. Numbers compare by numeric value, so 2 and
// 2.0 are equal; callables compare by identity.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindVoid:
		return true
	case KindNumber:
		return v.Number().Cmp(other.Number()) == 0
	case KindString:
		return v.data.(string) == other.data.(string)
	case KindBool:
		return v.Bool() == other.Bool()
	case KindList:
		a, b := v.List(), other.List()
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}
		return true
	case KindCallable:
		return v.Callable() == other.Callable()
	default:
		return false
	}
}
