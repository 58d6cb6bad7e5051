package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

// ScriptContext is the read-only per-tick state every script sees.
type ScriptContext struct {
	DeltaTime  float32
	MouseX     float32
	MouseY     float32
	LeftMouse  bool
	RightMouse bool
	WindowW    float32
	WindowH    float32

	// Budget bounds one script run; zero means no limit.
	Budget time.Duration
}

func (sc ScriptContext) inject(L *lua.LState) {
	L.SetGlobal("delta_time", lua.LNumber(sc.DeltaTime))
	L.SetGlobal("mouse_x", lua.LNumber(sc.MouseX))
	L.SetGlobal("mouse_y", lua.LNumber(sc.MouseY))
	L.SetGlobal("left_mouse", lua.LBool(sc.LeftMouse))
	L.SetGlobal("right_mouse", lua.LBool(sc.RightMouse))
	L.SetGlobal("window_dim_x", lua.LNumber(sc.WindowW))
	L.SetGlobal("window_dim_y", lua.LNumber(sc.WindowH))
}

func compileScript(name, src string) (*lua.FunctionProto, error) {
	chunk, err := parse.Parse(strings.NewReader(src), name)
	if err != nil {
		return nil, err
	}
	return lua.Compile(chunk, name)
}

// newScriptState opens a Lua state without the io and os libraries.
func newScriptState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	return L
}

// run executes the compiled chunk once and returns the position the script
// left in x, y and z.
func (b *ScriptBinding) run(ctx context.Context, sc ScriptContext, o *WorldObject) (rl.Vector3, error) {
	L := b.state
	pos := o.Transform.Position

	sc.inject(L)
	L.SetGlobal("id", lua.LNumber(o.ID))
	L.SetGlobal("name", lua.LString(o.Name))
	L.SetGlobal("x", lua.LNumber(pos.X))
	L.SetGlobal("y", lua.LNumber(pos.Y))
	L.SetGlobal("z", lua.LNumber(pos.Z))

	if ctx == nil {
		ctx = context.Background()
	}
	if sc.Budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, sc.Budget)
		defer cancel()
	}
	L.SetContext(ctx)
	defer L.RemoveContext()

	L.Push(L.NewFunctionFromProto(b.proto))
	err := L.PCall(0, lua.MultRet, nil)
	L.SetTop(0)
	if err != nil {
		return pos, err
	}

	var out rl.Vector3
	for _, f := range []struct {
		name string
		dst  *float32
	}{
		{"x", &out.X},
		{"y", &out.Y},
		{"z", &out.Z},
	} {
		n, ok := L.GetGlobal(f.name).(lua.LNumber)
		if !ok {
			return pos, fmt.Errorf("global %s is %s, want number", f.name, L.GetGlobal(f.name).Type())
		}
		*f.dst = float32(n)
	}
	return out, nil
}
