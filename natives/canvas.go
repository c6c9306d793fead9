package natives

import (
	"sync"

	"github.com/reusee/taihost/hostobjs"
	"go.starlark.net/starlark"
)

// Canvas is a drawing surface shared by every runtime it is exposed into.
type Canvas struct {
	*hostobjs.Object[*Canvas]

	mu     sync.Mutex
	width  int
	height int
	title  string
}

var canvasTable = hostobjs.NewTable[*Canvas]("Canvas").
	Getter("width", func(_ *starlark.Thread, c *Canvas) (starlark.Value, error) {
		c.mu.Lock()
		defer c.mu.Unlock()
		return starlark.MakeInt(c.width), nil
	}).
	Getter("height", func(_ *starlark.Thread, c *Canvas) (starlark.Value, error) {
		c.mu.Lock()
		defer c.mu.Unlock()
		return starlark.MakeInt(c.height), nil
	}).
	Getter("size", func(_ *starlark.Thread, c *Canvas) (starlark.Value, error) {
		w, h := c.Size()
		return hostobjs.ToValue([]int{w, h}), nil
	}).
	Getter("title", func(_ *starlark.Thread, c *Canvas) (starlark.Value, error) {
		c.mu.Lock()
		defer c.mu.Unlock()
		return starlark.String(c.title), nil
	}).
	Setter("title", func(_ *starlark.Thread, c *Canvas, value starlark.Value) error {
		title, ok := starlark.AsString(value)
		if !ok {
			return errWantString("title", value)
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		c.title = title
		return nil
	}).
	Func("resize", func(thread *starlark.Thread, c *Canvas, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var w, h int
		if err := starlark.UnpackArgs("resize", args, kwargs, "width", &w, "height", &h); err != nil {
			return nil, err
		}
		if w < 0 || h < 0 {
			return nil, errNegativeSize(w, h)
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		c.width = w
		c.height = h
		return starlark.None, nil
	}).
	Func("area", func(thread *starlark.Thread, c *Canvas, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := starlark.UnpackPositionalArgs("area", args, kwargs, 0); err != nil {
			return nil, err
		}
		w, h := c.Size()
		return starlark.MakeInt(w * h), nil
	}).
	MustBuild()

func NewCanvas(width, height int) *Canvas {
	c := &Canvas{
		width:  width,
		height: height,
	}
	c.Object = hostobjs.New(canvasTable, c)
	return c
}

func (c *Canvas) Size() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.height
}

func (c *Canvas) Title() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.title
}
