package frame

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/mapreel/mapreel/constant"
	"github.com/mapreel/mapreel/filesystem"
	"github.com/mapreel/mapreel/util"
	libs "github.com/metafates/mangal-lua-libs"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

var bytecodeCache sync.Map

// LuaTemplate renders frames by calling FrameURL (and optionally FrameLabel) in a user script.
// Rendered values are memoized so a script can never return two URLs for one index.
type LuaTemplate struct {
	name  string
	mu    sync.Mutex
	state *lua.LState

	urls   map[int]string
	labels map[int]string
}

// NewLuaTemplate loads and validates the script at path.
func NewLuaTemplate(path string) (*LuaTemplate, error) {
	state := lua.NewState()
	libs.Preload(state)

	if err := compileAndLoad(state, path); err != nil {
		state.Close()
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	name := util.FileStem(path)
	if state.GetGlobal(constant.FrameURLFn).Type() != lua.LTFunction {
		state.Close()
		return nil, fmt.Errorf("%w %s in %s", ErrMissingFunction, constant.FrameURLFn, name)
	}

	return &LuaTemplate{
		name:   name,
		state:  state,
		urls:   make(map[int]string),
		labels: make(map[int]string),
	}, nil
}

// compileAndLoad executes the script, reusing a compiled prototype when the path was seen before.
func compileAndLoad(L *lua.LState, path string) error {
	if cached, ok := bytecodeCache.Load(path); ok {
		L.Push(L.NewFunctionFromProto(cached.(*lua.FunctionProto)))
		return L.PCall(0, lua.MultRet, nil)
	}

	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		return err
	}

	chunk, err := parse.Parse(bytes.NewReader(data), path)
	if err != nil {
		return err
	}

	proto, err := lua.Compile(chunk, path)
	if err != nil {
		return err
	}

	bytecodeCache.Store(path, proto)

	L.Push(L.NewFunctionFromProto(proto))
	return L.PCall(0, lua.MultRet, nil)
}

// Name returns the script name without extension.
func (t *LuaTemplate) Name() string {
	return t.name
}

func (t *LuaTemplate) Render(index int) (string, error) {
	return t.call(constant.FrameURLFn, t.urls, index)
}

func (t *LuaTemplate) Label(index int) (string, error) {
	t.mu.Lock()
	defined := t.state.GetGlobal(constant.FrameLabelFn).Type() == lua.LTFunction
	t.mu.Unlock()

	if !defined {
		return "", fmt.Errorf("%w %s in %s", ErrMissingFunction, constant.FrameLabelFn, t.name)
	}
	return t.call(constant.FrameLabelFn, t.labels, index)
}

func (t *LuaTemplate) call(fn string, memo map[int]string, index int) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if v, ok := memo[index]; ok {
		return v, nil
	}

	err := t.state.CallByParam(lua.P{
		Fn:      t.state.GetGlobal(fn),
		NRet:    1,
		Protect: true,
	}, lua.LNumber(index))
	if err != nil {
		return "", fmt.Errorf("%s(%d): %w", fn, index, err)
	}

	ret := t.state.Get(-1)
	t.state.Pop(1)

	switch ret.Type() {
	case lua.LTString, lua.LTNumber:
		memo[index] = ret.String()
		return memo[index], nil
	default:
		return "", fmt.Errorf("%s(%d) returned %s, expected string", fn, index, ret.Type())
	}
}

// Close releases the Lua state.
func (t *LuaTemplate) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.Close()
}
