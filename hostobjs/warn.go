package hostobjs

import (
	"github.com/reusee/taihost/logs"
	"go.starlark.net/starlark"
)

const writeWarnerKey = "hostobjs.write_warner"

// WarnUnknownWrites makes writes to properties without a setter log a warning
// in the runtime. The writes are still dropped without error.
func WarnUnknownWrites(thread *starlark.Thread, logger logs.Logger) {
	thread.SetLocal(writeWarnerKey, logger)
}
