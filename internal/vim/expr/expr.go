// Package expr evaluates the expression register.
//
// Expressions are Lua. An expression is first compiled as "return <expr>";
// if that fails it is run as a chunk, which must return its value. The
// result is converted to register text: numbers without a trailing ".0",
// booleans as "true"/"false", nil as "", and array tables as one line per
// element.
//
// Scripts run in a reduced Lua state with only the base, table, string and
// math libraries, and two helpers:
//
//	reg("a")    text of a register
//	opt("sw")   value of an option
package expr

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// DefaultTimeout bounds one evaluation.
const DefaultTimeout = time.Second

var (
	// ErrEvaluation is returned when an expression fails to compile or run.
	ErrEvaluation = errors.New("expression failed")

	// ErrClosed is returned by a closed evaluator.
	ErrClosed = errors.New("evaluator is closed")
)

// Evaluator turns an expression into register text.
type Evaluator interface {
	Evaluate(ctx context.Context, expr string) (string, error)
}

// Env is what expressions can read. Either function may be nil.
type Env struct {
	// Register returns the text of the register named by a character.
	Register func(name rune) (string, bool)

	// Option returns the value of an option.
	Option func(name string) (any, error)
}

// Option configures a Lua evaluator.
type Option func(*Lua)

// WithTimeout sets the time limit of one evaluation.
func WithTimeout(d time.Duration) Option {
	return func(l *Lua) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// WithLogger sets the logger used for debug events.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Lua) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Lua evaluates expressions with gopher-lua. The Lua state is not
// goroutine-safe; Lua serializes evaluations with a mutex.
type Lua struct {
	mu     sync.Mutex
	L      *lua.LState
	closed bool

	env     Env
	timeout time.Duration
	logger  *zap.Logger
}

var _ Evaluator = (*Lua)(nil)

// NewLua creates an evaluator reading registers and options from env.
func NewLua(env Env, opts ...Option) *Lua {
	l := &Lua{
		env:     env,
		timeout: DefaultTimeout,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// Nothing may reach the file system.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}

	L.SetGlobal("reg", L.NewFunction(l.luaReg))
	L.SetGlobal("opt", L.NewFunction(l.luaOpt))
	l.L = L
	return l
}

// Evaluate runs expr and returns its value as register text.
func (l *Lua) Evaluate(ctx context.Context, expr string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return "", ErrClosed
	}

	fn, err := l.L.LoadString("return " + expr)
	if err != nil {
		fn, err = l.L.LoadString(expr)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrEvaluation, err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	l.L.SetContext(ctx)
	defer l.L.RemoveContext()

	top := l.L.GetTop()
	l.L.Push(fn)
	if err := l.L.PCall(0, 1, nil); err != nil {
		l.L.SetTop(top)
		l.logger.Debug("expression failed", zap.String("expr", expr), zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrEvaluation, err)
	}
	result := l.L.Get(-1)
	l.L.SetTop(top)

	return toText(result), nil
}

// Close releases the Lua state. It is safe to call more than once.
func (l *Lua) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.closed {
		l.closed = true
		l.L.Close()
	}
}

func (l *Lua) luaReg(L *lua.LState) int {
	name := L.CheckString(1)
	if l.env.Register == nil || len([]rune(name)) != 1 {
		L.Push(lua.LString(""))
		return 1
	}
	text, _ := l.env.Register([]rune(name)[0])
	L.Push(lua.LString(text))
	return 1
}

func (l *Lua) luaOpt(L *lua.LState) int {
	name := L.CheckString(1)
	if l.env.Option == nil {
		L.Push(lua.LNil)
		return 1
	}
	v, err := l.env.Option(name)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	switch val := v.(type) {
	case bool:
		L.Push(lua.LBool(val))
	case int:
		L.Push(lua.LNumber(val))
	case string:
		L.Push(lua.LString(val))
	default:
		L.Push(lua.LNil)
	}
	return 1
}

// toText converts a Lua value to register text.
func toText(v lua.LValue) string {
	switch val := v.(type) {
	case lua.LString:
		return string(val)
	case lua.LNumber:
		return formatNumber(float64(val))
	case lua.LBool:
		return strconv.FormatBool(bool(val))
	case *lua.LTable:
		n := val.Len()
		lines := make([]string, 0, n)
		for i := 1; i <= n; i++ {
			lines = append(lines, toText(val.RawGetInt(i)))
		}
		return strings.Join(lines, "\n")
	case *lua.LNilType:
		return ""
	default:
		return v.String()
	}
}

func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
