package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/reusee/taihost/hostobjs"
	"github.com/reusee/taihost/hosts"
	"github.com/reusee/taihost/logs"
	"github.com/reusee/taihost/natives"
)

func newObjects() map[string]hosts.HostObject {
	return map[string]hosts.HostObject{
		"canvas":  natives.NewCanvas(640, 480),
		"counter": natives.NewCounter(),
	}
}

// Run executes script files, one runtime each, sharing objects.
type Run func(ctx context.Context, objects map[string]hosts.HostObject, paths []string) error

func (Module) Run(
	logger logs.Logger,
	runPool hosts.RunPool,
) Run {
	return func(ctx context.Context, objects map[string]hosts.HostObject, paths []string) error {
		jobs := make([]hosts.Job, 0, len(paths))
		for _, path := range paths {
			jobs = append(jobs, hosts.Job{
				Name:     filepath.Base(path),
				Filename: path,
			})
		}
		_, err := runPool(ctx, objects, jobs)

		if hostobjs.TrackingEnabled() {
			for _, obj := range hostobjs.Tracked() {
				logger.Info("live host object",
					"id", obj.ID,
					"type", obj.TypeName,
					"age", time.Since(obj.Created),
				)
			}
		}

		return err
	}
}
