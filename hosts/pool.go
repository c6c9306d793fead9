package hosts

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/reusee/taihost/logs"
	"github.com/reusee/taihost/syncs"
	"go.starlark.net/starlark"
)

// Job is a script to run in its own runtime.
type Job struct {
	Name     string
	Filename string
	// Source follows starlark.ExecFile: nil reads Filename.
	Source any
}

// RunPool runs each job in a fresh runtime with objects exposed, at most
// Config.Workers at a time. Results are indexed like jobs; failed jobs have nil
// results and their errors are joined.
type RunPool func(ctx context.Context, objects map[string]HostObject, jobs []Job) ([]starlark.StringDict, error)

func (Module) RunPool(
	config Config,
	newRuntime NewRuntime,
	logger logs.Logger,
) RunPool {
	return func(ctx context.Context, objects map[string]HostObject, jobs []Job) ([]starlark.StringDict, error) {
		sem := syncs.NewSemaphore(max(config.Workers, 1))
		results := make([]starlark.StringDict, len(jobs))
		errs := make([]error, len(jobs))

		var wg sync.WaitGroup
		for i, job := range jobs {
			if err := sem.AcquireContext(ctx); err != nil {
				// jobs from i on never start
				for j := i; j < len(jobs); j++ {
					errs[j] = logs.WrapSpan(ctx, fmt.Errorf("runtime %s: %w", jobs[j].Name, err))
				}
				break
			}
			wg.Go(func() {
				defer sem.Release()

				ctx, rt := newRuntime(ctx, job.Name)
				defer rt.Close()
				for name, obj := range objects {
					rt.Expose(name, obj)
				}

				t0 := time.Now()
				results[i], errs[i] = rt.Exec(ctx, job.Filename, job.Source)
				if errs[i] != nil {
					logger.WarnContext(ctx, "runtime failed",
						"name", job.Name,
						"error", errs[i],
					)
					return
				}
				logger.InfoContext(ctx, "runtime done",
					"name", job.Name,
					"duration", time.Since(t0),
				)
			})
		}
		wg.Wait()

		return results, errors.Join(errs...)
	}
}
