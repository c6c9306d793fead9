package hostobjs

import (
	"runtime"
	"sync"
	"sync/atomic"
	"weak"

	"github.com/reusee/taihost/logs"
	"go.starlark.net/starlark"
)

// Object exposes a native value to starlark runtimes through its type's Table.
// One Object may be bound into several runtimes concurrently; each runtime gets
// its own cache slot.
type Object[T any] struct {
	table *Table[T]
	this  T

	// guards index, slots and free; slot contents belong to the slot's runtime
	mu    sync.Mutex
	index map[weak.Pointer[starlark.Thread]]int
	slots []*slot
	free  []int
}

// slot holds the callables materialized for one runtime.
type slot struct {
	thread    weak.Pointer[starlark.Thread]
	callables map[string]starlark.Value
	binding   *Binding
	cleanup   runtime.Cleanup
	released  atomic.Bool
}

type slotRef[T any] struct {
	object weak.Pointer[Object[T]]
	key    weak.Pointer[starlark.Thread]
}

func New[T any](table *Table[T], this T) *Object[T] {
	o := &Object[T]{
		table: table,
		this:  this,
	}
	track(o, table.typeName)
	return o
}

func (o *Object[T]) TypeName() string {
	return o.table.typeName
}

// Get resolves a property for the runtime. A nil value means the property
// does not exist.
func (o *Object[T]) Get(thread *starlark.Thread, name string) (starlark.Value, error) {
	return o.get(o.slot(thread), thread, name)
}

func (o *Object[T]) get(s *slot, thread *starlark.Thread, name string) (starlark.Value, error) {
	if v, ok := s.callables[name]; ok {
		return v, nil
	}

	if getter, ok := o.table.getters[name]; ok {
		v, err := getter(thread, o.this)
		if err != nil {
			return nil, err
		}
		if v == nil {
			v = starlark.None
		}
		return v, nil
	}

	if fn, ok := o.table.funcs[name]; ok {
		this := o.this
		v := o.table.factory(name, func(thread *starlark.Thread, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			return fn(thread, this, args, kwargs)
		})
		s.callables[name] = v
		return v, nil
	}

	return nil, nil
}

// Set applies a property write. Writes to names without a setter are dropped.
func (o *Object[T]) Set(thread *starlark.Thread, name string, value starlark.Value) error {
	if setter, ok := o.table.setters[name]; ok {
		return setter(thread, o.this, value)
	}
	if logger, ok := thread.Local(writeWarnerKey).(logs.Logger); ok {
		logger.Warn("write to unknown host object property dropped",
			"type", o.table.typeName,
			"name", name,
			"runtime", thread.Name,
		)
	}
	return nil
}

// Names lists function names then getter names, each in definition order.
// Setter-only names are not listed.
func (o *Object[T]) Names() []string {
	names := make([]string, 0, len(o.table.funcNames)+len(o.table.getterNames))
	names = append(names, o.table.funcNames...)
	names = append(names, o.table.getterNames...)
	return names
}

// Bind returns the value representing o in the runtime.
func (o *Object[T]) Bind(thread *starlark.Thread) *Binding {
	return o.slot(thread).binding
}

// Detach releases the runtime's slot. Later accesses from the runtime start
// with an empty cache; a Binding the runtime still holds attaches again on its
// next property read.
func (o *Object[T]) Detach(thread *starlark.Thread) {
	o.release(weak.Make(thread), true)
}

// Runtimes returns the number of runtimes holding a slot.
func (o *Object[T]) Runtimes() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.index)
}

func (o *Object[T]) slot(thread *starlark.Thread) *slot {
	return o.attach(thread, nil)
}

// attach returns the runtime's slot, creating one if needed. A new slot adopts
// binding when it is not nil.
func (o *Object[T]) attach(thread *starlark.Thread, binding *Binding) *slot {
	if thread == nil {
		panic("hostobjs: nil thread")
	}
	key := weak.Make(thread)

	o.mu.Lock()
	defer o.mu.Unlock()

	if i, ok := o.index[key]; ok {
		return o.slots[i]
	}

	s := &slot{
		thread:    key,
		callables: make(map[string]starlark.Value),
	}
	if binding == nil {
		binding = &Binding{
			target: o,
			slot:   s,
		}
	}
	s.binding = binding

	var i int
	if n := len(o.free); n > 0 {
		i = o.free[n-1]
		o.free = o.free[:n-1]
		o.slots[i] = s
	} else {
		i = len(o.slots)
		o.slots = append(o.slots, s)
	}
	if o.index == nil {
		o.index = make(map[weak.Pointer[starlark.Thread]]int)
	}
	o.index[key] = i

	s.cleanup = runtime.AddCleanup(thread, releaseSlot[T], slotRef[T]{
		object: weak.Make(o),
		key:    key,
	})

	return s
}

func releaseSlot[T any](ref slotRef[T]) {
	if o := ref.object.Value(); o != nil {
		o.release(ref.key, false)
	}
}

func (o *Object[T]) release(key weak.Pointer[starlark.Thread], stopCleanup bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	i, ok := o.index[key]
	if !ok {
		return
	}
	if stopCleanup {
		o.slots[i].cleanup.Stop()
	}
	o.slots[i].released.Store(true)
	delete(o.index, key)
	o.slots[i] = nil
	o.free = append(o.free, i)
}
