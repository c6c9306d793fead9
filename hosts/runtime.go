package hosts

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/reusee/taihost/hostobjs"
	"github.com/reusee/taihost/logs"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// HostObject is a native object that can be exposed into runtimes.
type HostObject interface {
	Bind(thread *starlark.Thread) *hostobjs.Binding
	Detach(thread *starlark.Thread)
}

// Runtime is one starlark execution context. It must be used from one
// goroutine at a time; host objects exposed into it may be shared with other
// runtimes.
type Runtime struct {
	ID      string
	Name    string
	Span    logs.Span
	Thread  *starlark.Thread
	Globals starlark.StringDict

	exposed []HostObject
}

var FileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
}

type NewRuntime func(ctx context.Context, name string) (context.Context, *Runtime)

func (Module) NewRuntime(
	logger logs.Logger,
	newSpan logs.NewSpan,
	config Config,
) NewRuntime {
	return func(ctx context.Context, name string) (context.Context, *Runtime) {
		ctx, span := newSpan(ctx, "")
		id := uuid.NewString()

		thread := &starlark.Thread{
			Name: name,
			Print: func(_ *starlark.Thread, msg string) {
				logger.InfoContext(ctx, "print",
					"runtime", name,
					"text", msg,
				)
			},
		}
		if config.WarnUnknownWrites {
			hostobjs.WarnUnknownWrites(thread, logger.With("runtime_id", id))
		}

		logger.DebugContext(ctx, "new runtime",
			"name", name,
			"id", id,
		)

		return ctx, &Runtime{
			ID:      id,
			Name:    name,
			Span:    span,
			Thread:  thread,
			Globals: make(starlark.StringDict),
		}
	}
}

// Expose binds obj into the runtime's globals under name.
func (r *Runtime) Expose(name string, obj HostObject) {
	r.Globals[name] = obj.Bind(r.Thread)
	r.exposed = append(r.exposed, obj)
}

// Exec runs a script. src follows starlark.ExecFile: nil reads filename.
// Cancelling ctx cancels the running script.
func (r *Runtime) Exec(ctx context.Context, filename string, src any) (starlark.StringDict, error) {
	if ctx.Err() != nil {
		return nil, logs.WrapSpan(ctx, fmt.Errorf("runtime %s: exec %s: %w", r.Name, filename, context.Cause(ctx)))
	}
	stop := context.AfterFunc(ctx, func() {
		r.Thread.Cancel(context.Cause(ctx).Error())
	})
	defer stop()

	globals, err := starlark.ExecFileOptions(FileOptions, r.Thread, filename, src, r.Globals)
	if err != nil {
		return nil, logs.WrapSpan(ctx, fmt.Errorf("runtime %s: exec %s: %w", r.Name, filename, err))
	}
	return globals, nil
}

// Close detaches every exposed object from the runtime.
func (r *Runtime) Close() {
	for _, obj := range r.exposed {
		obj.Detach(r.Thread)
	}
	r.exposed = nil
}
