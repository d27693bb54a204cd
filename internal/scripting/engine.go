package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM holding the tunable simulation formulas.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads every .lua file in scriptsDir.
// A missing directory is not an error: every formula then uses its fallback.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	e := newEngine(log)
	if err := e.loadDir(scriptsDir); err != nil {
		e.vm.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	return e, nil
}

// NewEngineFromSource creates a Lua engine from an inline chunk.
func NewEngineFromSource(src string, log *zap.Logger) (*Engine, error) {
	e := newEngine(log)
	if err := e.vm.DoString(src); err != nil {
		e.vm.Close()
		return nil, fmt.Errorf("load inline script: %w", err)
	}
	return e, nil
}

func newEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	return &Engine{vm: vm, log: log}
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			e.log.Warn("script directory missing, using fallbacks", zap.String("dir", dir))
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

// Has reports whether the named global function is defined.
func (e *Engine) Has(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// CalcRegen calls Lua calc_regen(hp, max_hp) and returns the HP to add this
// tick. Without a script the fallback regenerates one point.
func (e *Engine) CalcRegen(hp, maxHP int) int {
	ret, ok := e.call("calc_regen", 1, lua.LNumber(hp), lua.LNumber(maxHP))
	if !ok {
		return 1
	}
	return int(lua.LVAsNumber(ret[0]))
}

// CalcDrag calls Lua calc_drag(vx, vy, dt) and returns the damped velocity.
// dt is in seconds. Without a script velocity is returned unchanged.
func (e *Engine) CalcDrag(vx, vy, dt float64) (float64, float64) {
	ret, ok := e.call("calc_drag", 2, lua.LNumber(vx), lua.LNumber(vy), lua.LNumber(dt))
	if !ok {
		return vx, vy
	}
	return float64(lua.LVAsNumber(ret[0])), float64(lua.LVAsNumber(ret[1]))
}

// call invokes a global function with nret results. It reports false when the
// function is missing or raised an error.
func (e *Engine) call(name string, nret int, args ...lua.LValue) ([]lua.LValue, bool) {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		return nil, false
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    nret,
		Protect: true,
	}, args...); err != nil {
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return nil, false
	}

	ret := make([]lua.LValue, nret)
	for i := nret - 1; i >= 0; i-- {
		ret[i] = e.vm.Get(-1)
		e.vm.Pop(1)
	}
	return ret, true
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
