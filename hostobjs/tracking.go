package hostobjs

import (
	"cmp"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

var tracking atomic.Bool

// EnableTracking toggles the registry of live objects. Only objects created
// while tracking is enabled are recorded.
func EnableTracking(enabled bool) {
	tracking.Store(enabled)
}

func TrackingEnabled() bool {
	return tracking.Load()
}

type TrackedObject struct {
	ID       uint64
	TypeName string
	Created  time.Time
}

var registry struct {
	sync.Mutex
	nextID uint64
	live   map[uint64]TrackedObject
}

func track[T any](o *Object[T], typeName string) {
	if !tracking.Load() {
		return
	}
	registry.Lock()
	registry.nextID++
	id := registry.nextID
	if registry.live == nil {
		registry.live = make(map[uint64]TrackedObject)
	}
	registry.live[id] = TrackedObject{
		ID:       id,
		TypeName: typeName,
		Created:  time.Now(),
	}
	registry.Unlock()
	runtime.AddCleanup(o, untrack, id)
}

func untrack(id uint64) {
	registry.Lock()
	defer registry.Unlock()
	delete(registry.live, id)
}

// Tracked returns the recorded objects not yet collected, oldest first.
func Tracked() []TrackedObject {
	registry.Lock()
	ret := make([]TrackedObject, 0, len(registry.live))
	for _, obj := range registry.live {
		ret = append(ret, obj)
	}
	registry.Unlock()
	slices.SortFunc(ret, func(a, b TrackedObject) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return ret
}

func LiveCount() int {
	registry.Lock()
	defer registry.Unlock()
	return len(registry.live)
}
