package natives

import (
	"fmt"
	"sync/atomic"

	"github.com/reusee/taihost/hostobjs"
	"go.starlark.net/starlark"
)

// Counter is an atomic counter. step is write-only.
type Counter struct {
	*hostobjs.Object[*Counter]

	value atomic.Int64
	step  atomic.Int64
}

var counterTable = hostobjs.NewTable[*Counter]("Counter").
	Getter("value", func(_ *starlark.Thread, c *Counter) (starlark.Value, error) {
		return starlark.MakeInt64(c.value.Load()), nil
	}).
	Setter("step", func(_ *starlark.Thread, c *Counter, value starlark.Value) error {
		step, err := starlark.AsInt32(value)
		if err != nil {
			return fmt.Errorf("step: %w", err)
		}
		c.step.Store(int64(step))
		return nil
	}).
	Func("incr", func(_ *starlark.Thread, c *Counter, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		n := int(c.step.Load())
		if err := starlark.UnpackArgs("incr", args, kwargs, "n?", &n); err != nil {
			return nil, err
		}
		return starlark.MakeInt64(c.value.Add(int64(n))), nil
	}).
	Func("reset", func(_ *starlark.Thread, c *Counter, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := starlark.UnpackPositionalArgs("reset", args, kwargs, 0); err != nil {
			return nil, err
		}
		c.value.Store(0)
		return starlark.None, nil
	}).
	MustBuild()

func NewCounter() *Counter {
	c := new(Counter)
	c.step.Store(1)
	c.Object = hostobjs.New(counterTable, c)
	return c
}

func (c *Counter) Value() int64 {
	return c.value.Load()
}
