package debugs

import (
	"context"
	"maps"
	"slices"

	"github.com/reusee/taihost/hosts"
	"github.com/reusee/taihost/logs"
	"go.starlark.net/repl"
)

// Tap opens a REPL on stdin in a new runtime with objects exposed.
type Tap func(ctx context.Context, what string, objects map[string]hosts.HostObject)

func (Module) Tap(
	logger logs.Logger,
	newRuntime hosts.NewRuntime,
) Tap {
	return func(ctx context.Context, what string, objects map[string]hosts.HostObject) {
		names := slices.Sorted(maps.Keys(objects))
		logger.InfoContext(ctx, "tap: "+what,
			"objects", names,
		)
		defer func() {
			logger.InfoContext(ctx, "tap end: "+what)
		}()

		_, rt := newRuntime(ctx, "repl")
		defer rt.Close()
		for _, name := range names {
			rt.Expose(name, objects[name])
		}

		repl.REPLOptions(hosts.FileOptions, rt.Thread, rt.Globals)
	}
}
