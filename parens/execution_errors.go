package parens

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies evaluation failures.
type ErrorKind string

const (
	ErrName        ErrorKind = "NameError"
	ErrArity       ErrorKind = "ArityError"
	ErrType        ErrorKind = "TypeError"
	ErrDivision    ErrorKind = "DivisionError"
	ErrArgument    ErrorKind = "ArgumentError"
	ErrForm        ErrorKind = "FormError"
	ErrArithmetic  ErrorKind = "ArithmeticError"
	ErrRecursion   ErrorKind = "RecursionError"
	ErrInterrupted ErrorKind = "Interrupted"
	ErrOutput      ErrorKind = "OutputError"
)

const (
	evalErrorFrameHead = 8
	evalErrorFrameTail = 8
)

// StackFrame names a user function call site active when an error occurred.
type StackFrame struct {
	Function string
	Pos      Position
}

// EvalError aborts evaluation of the current top-level expression. Offset is
// the byte offset of the innermost term or identifier that failed, or -1 when
// the error was raised outside any node.
type EvalError struct {
	Kind      ErrorKind
	Message   string
	Offset    int
	CodeFrame string
	Frames    []StackFrame
	cause     error
}

func newEvalError(kind ErrorKind, format string, args ...any) *EvalError {
	return &EvalError{Kind: kind, Message: fmt.Sprintf(format, args...), Offset: -1}
}

func wrapEvalError(kind ErrorKind, cause error, format string, args ...any) *EvalError {
	err := newEvalError(kind, format, args...)
	err.cause = cause
	return err
}

func (e *EvalError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Kind, e.Message)
	if e.CodeFrame != "" {
		b.WriteString("\n")
		b.WriteString(e.CodeFrame)
	}
	renderFrame := func(frame StackFrame) {
		if frame.Pos.Line > 0 {
			fmt.Fprintf(&b, "\n  at %s (%d:%d)", frame.Function, frame.Pos.Line, frame.Pos.Column)
		} else {
			fmt.Fprintf(&b, "\n  at %s", frame.Function)
		}
	}

	if len(e.Frames) <= evalErrorFrameHead+evalErrorFrameTail {
		for _, frame := range e.Frames {
			renderFrame(frame)
		}
		return b.String()
	}

	for _, frame := range e.Frames[:evalErrorFrameHead] {
		renderFrame(frame)
	}
	omitted := len(e.Frames) - (evalErrorFrameHead + evalErrorFrameTail)
	fmt.Fprintf(&b, "\n  ... %d frames omitted ...", omitted)
	for _, frame := range e.Frames[len(e.Frames)-evalErrorFrameTail:] {
		renderFrame(frame)
	}
	return b.String()
}

func (e *EvalError) Unwrap() error {
	return e.cause
}

// annotate attaches the failing node's position, code frame and the active
// call stack to err the first time it crosses a node boundary.
func (exec *Execution) annotate(err error, node Node) error {
	var evalErr *EvalError
	if !errors.As(err, &evalErr) {
		evalErr = wrapEvalError(ErrArithmetic, err, "%v", err)
	}
	if evalErr.Offset >= 0 {
		return evalErr
	}
	evalErr.Offset = node.Pos()
	if exec.source != "" {
		evalErr.CodeFrame = formatCodeFrame(exec.source, PositionAt(exec.source, evalErr.Offset))
	}
	evalErr.Frames = exec.stackFrames()
	return evalErr
}

func (exec *Execution) stackFrames() []StackFrame {
	if len(exec.callStack) == 0 {
		return nil
	}
	frames := make([]StackFrame, 0, len(exec.callStack))
	for i := len(exec.callStack) - 1; i >= 0; i-- {
		frame := exec.callStack[i]
		pos := Position{Offset: frame.Offset}
		if exec.source != "" {
			pos = PositionAt(exec.source, frame.Offset)
		}
		frames = append(frames, StackFrame{Function: frame.Function, Pos: pos})
	}
	return frames
}

func arityError(name string, want string, got int) error {
	return newEvalError(ErrArity, "%s expects %s, got %d", name, want, got)
}

func typeError(name string, want ValueKind, got Value) error {
	return newEvalError(ErrType, "%s expects a %s, got %s %s", name, want, got.Kind(), describeValue(got))
}

func describeValue(v Value) string {
	if v.IsVoid() {
		return "(void)"
	}
	return v.Literal()
}
