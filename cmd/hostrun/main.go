package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"

	"github.com/reusee/dscope"
	"github.com/reusee/taihost/cmds"
	"github.com/reusee/taihost/debugs"
	"github.com/reusee/taihost/hostobjs"
	"github.com/reusee/taihost/hosts"
	"github.com/reusee/taihost/modes"
)

var (
	scriptArgs = cmds.Args()
	runFlag    = cmds.Collect[string]("-run")
	replMode   = cmds.Switch("-repl")
)

func main() {
	cmds.Execute(os.Args[1:])

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	dscope.New(
		new(Module),
		modes.ForProduction(),
	).Call(func(
		config hosts.Config,
		run Run,
		tap debugs.Tap,
	) {
		if config.TrackHostObjects {
			hostobjs.EnableTracking(true)
		}

		objects := newObjects()

		if *replMode {
			tap(ctx, "hostrun", objects)
			return
		}

		scripts := slices.Concat(*scriptArgs, *runFlag, config.Scripts)
		if len(scripts) == 0 {
			fmt.Fprintln(os.Stderr, "usage: hostrun [flags] script.star... | hostrun -repl")
			os.Exit(1)
		}

		if err := run(ctx, objects, scripts); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	})
}
