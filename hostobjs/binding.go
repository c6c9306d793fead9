package hostobjs

import (
	"fmt"

	"go.starlark.net/starlark"
)

// Dispatcher is the host-object protocol of a native object.
type Dispatcher interface {
	TypeName() string
	Get(thread *starlark.Thread, name string) (starlark.Value, error)
	Set(thread *starlark.Thread, name string, value starlark.Value) error
	Names() []string
}

var _ Dispatcher = new(Object[any])

type bindingTarget interface {
	Dispatcher
	get(s *slot, thread *starlark.Thread, name string) (starlark.Value, error)
	attach(thread *starlark.Thread, binding *Binding) *slot
}

// Binding is a native object as seen from one runtime. It is used from that
// runtime's goroutine only.
type Binding struct {
	target bindingTarget
	slot   *slot
}

var (
	_ starlark.Value       = new(Binding)
	_ starlark.HasAttrs    = new(Binding)
	_ starlark.HasSetField = new(Binding)
)

func (b *Binding) String() string {
	return fmt.Sprintf("<%s>", b.target.TypeName())
}

func (b *Binding) Type() string {
	return b.target.TypeName()
}

func (b *Binding) Freeze() {}

func (b *Binding) Truth() starlark.Bool {
	return starlark.True
}

func (b *Binding) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: %s", b.target.TypeName())
}

func (b *Binding) Attr(name string) (starlark.Value, error) {
	thread := b.slot.thread.Value()
	if thread == nil {
		return nil, nil
	}
	if b.slot.released.Load() {
		b.slot = b.target.attach(thread, b)
	}
	return b.target.get(b.slot, thread, name)
}

func (b *Binding) AttrNames() []string {
	return b.target.Names()
}

func (b *Binding) SetField(name string, value starlark.Value) error {
	thread := b.slot.thread.Value()
	if thread == nil {
		return nil
	}
	return b.target.Set(thread, name, value)
}
