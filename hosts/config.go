package hosts

import (
	"runtime"
	"slices"

	"github.com/reusee/taihost/cmds"
	"github.com/reusee/taihost/configs"
	"github.com/reusee/taihost/modes"
	"github.com/reusee/taihost/vars"
)

type Config struct {
	// Workers bounds the number of runtimes executing at the same time.
	Workers int
	// WarnUnknownWrites logs writes to properties that have no setter.
	WarnUnknownWrites bool
	// TrackHostObjects enables the live object registry.
	TrackHostObjects bool
	// Scripts lists scripts from every config file, in load order.
	Scripts []string
}

var (
	workersFlag    = cmds.Var[int]("-workers")
	warnWritesFlag = cmds.Switch("-warn-writes")
	trackFlag      = cmds.Switch("-track-host-objects")
)

func (Module) Config(
	loader configs.Loader,
	mode modes.Mode,
) Config {
	return Config{
		Workers: vars.FirstNonZero(
			*workersFlag,
			configs.First[int](loader, "workers"),
			runtime.NumCPU(),
		),
		WarnUnknownWrites: *warnWritesFlag ||
			configs.First[bool](loader, "warn_unknown_writes") ||
			mode == modes.ModeDevelopment,
		TrackHostObjects: *trackFlag ||
			configs.First[bool](loader, "track_host_objects"),
		Scripts: slices.Concat(slices.Collect(
			configs.All[[]string](loader, "scripts"),
		)...),
	}
}
