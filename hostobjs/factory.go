package hostobjs

import "go.starlark.net/starlark"

// CallFunc is a function handler with its receiver already bound.
type CallFunc func(thread *starlark.Thread, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

// Factory materializes the callable value for a function property.
type Factory func(name string, call CallFunc) starlark.Callable

func NewBuiltin(name string, call CallFunc) starlark.Callable {
	return starlark.NewBuiltin(name, func(thread *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		return call(thread, args, kwargs)
	})
}
