// Package parens implements a small interpreter for a bracketed expression
// language. A program is a sequence of expressions:
//   - Terms written as `(name args...)` or `[name args...]`; the closing
//     delimiter must match the opening one.
//   - Identifiers, which may contain most symbol characters (`set!`, `<=`,
//     `equals?`, `.hello`).
//   - Arbitrary-precision decimal numbers and double-quoted strings.
//
// Terms are evaluated by looking up their name as a callable and handing it
// the unevaluated argument trees. Control forms such as `define`, `do`,
// `while` and `for` are ordinary library entries built on that contract.
package parens
