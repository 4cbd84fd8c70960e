// Package script drives a session from a Lua controller. The
// chunk defines a global step(frame, mirror) function returning
// the input mask to hold for the next frame.
package script

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// ErrNoStep is returned for chunks without a step function.
var ErrNoStep = errors.New("script: no global step function")

// Controller is a compiled Lua controller. It is not safe for
// concurrent use.
type Controller struct {
	state *lua.LState
	step  lua.LValue
}

// Load compiles and runs source, returning its controller.
func Load(source string) (*Controller, error) {
	L := lua.NewState()
	if err := L.DoString(source); err != nil {
		L.Close()
		return nil, fmt.Errorf("script: %w", err)
	}
	step := L.GetGlobal("step")
	if step.Type() != lua.LTFunction {
		L.Close()
		return nil, ErrNoStep
	}
	return &Controller{state: L, step: step}, nil
}

// Next calls step with the frame number and the snapshot as a
// table indexed from 1, and returns the mask it chose.
func (c *Controller) Next(frame uint32, mirror []byte) (uint8, error) {
	t := c.state.CreateTable(len(mirror), 0)
	for i, b := range mirror {
		t.RawSetInt(i+1, lua.LNumber(b))
	}

	if err := c.state.CallByParam(lua.P{
		Fn:      c.step,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(frame), t); err != nil {
		return 0, fmt.Errorf("script: %w", err)
	}
	ret := c.state.Get(-1)
	c.state.Pop(1)

	n, ok := ret.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("script: step returned %s, want a number", ret.Type())
	}
	return uint8(int64(n) & 0xFF), nil
}

// Close releases the Lua state.
func (c *Controller) Close() {
	c.state.Close()
}
