package parens

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"

	"github.com/cockroachdb/apd/v3"
)

const (
	defaultDivisionPrecision = 34
	maxDivisionPrecision     = 10000
	defaultRecursionLimit    = 10000
)

// Config controls evaluation output, numeric precision and call depth.
type Config struct {
	Output            io.Writer
	DivisionPrecision uint32
	RecursionLimit    int
	Logger            *slog.Logger
}

// Engine owns the builtin library and evaluates trees against caller-owned
// scopes.
type Engine struct {
	config   Config
	builtins map[string]Value
	division *apd.Context
	logger   *slog.Logger
}

// NewEngine constructs an Engine with defaults filled in and the standard
// library registered.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.DivisionPrecision == 0 {
		cfg.DivisionPrecision = defaultDivisionPrecision
	}
	if cfg.DivisionPrecision > maxDivisionPrecision {
		return nil, fmt.Errorf("parens: division precision %d exceeds limit %d", cfg.DivisionPrecision, maxDivisionPrecision)
	}
	if cfg.RecursionLimit < 0 {
		return nil, fmt.Errorf("parens: recursion limit cannot be negative")
	}
	if cfg.RecursionLimit == 0 {
		cfg.RecursionLimit = defaultRecursionLimit
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	engine := &Engine{
		config:   cfg,
		builtins: make(map[string]Value),
		division: newDivisionContext(cfg.DivisionPrecision),
		logger:   cfg.Logger,
	}
	registerStandardLibrary(engine)
	return engine, nil
}

// MustNewEngine constructs an Engine or panics if the config is invalid.
func MustNewEngine(cfg Config) *Engine {
	engine, err := NewEngine(cfg)
	if err != nil {
		panic(err)
	}
	return engine
}

// RegisterBuiltin adds a callable to the library. Scopes created by NewScope
// afterwards see it.
func (e *Engine) RegisterBuiltin(name string, fn CallableFunc) {
	e.builtins[name] = NewBuiltin(name, fn)
}

// RegisterValue binds a non-callable constant in the library.
func (e *Engine) RegisterValue(name string, val Value) {
	e.builtins[name] = val
}

// Builtins returns a copy of the registered library.
func (e *Engine) Builtins() map[string]Value {
	out := make(map[string]Value, len(e.builtins))
	maps.Copy(out, e.builtins)
	return out
}

// NewScope returns a top-level scope seeded with the library. Library names
// live in the scope itself, so programs may redefine them.
func (e *Engine) NewScope() *Scope {
	scope := NewScope(nil)
	for name, val := range e.builtins {
		scope.Define(name, val)
	}
	return scope
}

// Evaluate evaluates node with scope as the current scope. Bindings made by
// define or set! before a failure remain committed.
func (e *Engine) Evaluate(ctx context.Context, node Node, scope *Scope) (Value, error) {
	return e.evaluate(ctx, node, scope, "")
}

// EvaluateSource parses source and evaluates the resulting program. Errors
// carry a code frame pointing into source.
func (e *Engine) EvaluateSource(ctx context.Context, source string, scope *Scope) (Value, error) {
	program, err := Parse(source)
	if err != nil {
		return NewVoid(), err
	}
	return e.evaluate(ctx, program, scope, source)
}

func (e *Engine) evaluate(ctx context.Context, node Node, scope *Scope, source string) (Value, error) {
	if node == nil {
		return NewVoid(), errors.New("parens: nil node")
	}
	if scope == nil {
		return NewVoid(), errors.New("parens: nil scope")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	exec := &Execution{
		engine:       e,
		ctx:          ctx,
		scope:        scope,
		out:          e.config.Output,
		source:       source,
		recursionCap: e.config.RecursionLimit,
	}
	e.logger.Debug("evaluate", "node", fmt.Sprintf("%T", node), "offset", node.Pos())
	return exec.Eval(node)
}

// ConfigSummary provides a human-readable description of the engine settings.
func (e *Engine) ConfigSummary() string {
	return fmt.Sprintf("division_precision=%d recursion=%d", e.config.DivisionPrecision, e.config.RecursionLimit)
}
