package scripting

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/shapepush/arena/internal/scoring"
)

// ErrNoFunction is returned when a rule function is not defined by any script.
var ErrNoFunction = errors.New("lua function not defined")

// Engine wraps a single gopher-lua VM for scripted game rules.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads every .lua file in scriptsDir.
// A missing directory yields an engine with no rules.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	vm.SetGlobal("CREDIT_PER_MASS", lua.LNumber(scoring.CreditPerMass))

	e := &Engine{vm: vm, log: log}
	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	return e, nil
}

// LoadString runs a chunk of Lua source in the engine.
func (e *Engine) LoadString(src string) error {
	return e.vm.DoString(src)
}

func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// Has reports whether a global function is defined.
func (e *Engine) Has(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// CollectValue calls collect_value(ctx) and returns the score delta.
func (e *Engine) CollectValue(ctx scoring.CollectContext) (float64, error) {
	fn := e.vm.GetGlobal("collect_value")
	if fn == lua.LNil {
		return 0, fmt.Errorf("%w: collect_value", ErrNoFunction)
	}

	t := e.vm.NewTable()
	t.RawSetString("kind", lua.LString(ctx.Kind.String()))
	t.RawSetString("mass", lua.LNumber(ctx.Mass))
	t.RawSetString("level", lua.LNumber(ctx.Level))
	t.RawSetString("first", lua.LBool(ctx.First))
	if !ctx.First {
		t.RawSetString("last_kind", lua.LString(ctx.LastKind.String()))
		t.RawSetString("last_value", lua.LNumber(ctx.LastValue))
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		return 0, fmt.Errorf("lua collect_value: %w", err)
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := result.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("lua collect_value returned %s, want number", result.Type())
	}
	return float64(n), nil
}

func (e *Engine) Close() {
	e.vm.Close()
}
