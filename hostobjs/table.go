package hostobjs

import (
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"
	"go.starlark.net/starlark"
)

var (
	ErrHandlerCollision = errors.New("handler collision")
	ErrInvalidHandler   = errors.New("invalid handler")
)

// FuncHandler implements a callable property. argc is len(args).
type FuncHandler[T any] func(thread *starlark.Thread, this T, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

// GetterHandler computes a property value on every read.
type GetterHandler[T any] func(thread *starlark.Thread, this T) (starlark.Value, error)

// SetterHandler applies a property write.
type SetterHandler[T any] func(thread *starlark.Thread, this T, value starlark.Value) error

// Table holds the handlers of one native type. It is immutable once built and
// shared by every object of the type.
type Table[T any] struct {
	typeName    string
	factory     Factory
	funcNames   []string
	getterNames []string
	setterNames []string
	funcs       map[string]FuncHandler[T]
	getters     map[string]GetterHandler[T]
	setters     map[string]SetterHandler[T]
}

func (t *Table[T]) TypeName() string {
	return t.typeName
}

func (t *Table[T]) FuncNames() []string {
	return slices.Clone(t.funcNames)
}

func (t *Table[T]) GetterNames() []string {
	return slices.Clone(t.getterNames)
}

func (t *Table[T]) SetterNames() []string {
	return slices.Clone(t.setterNames)
}

type handlerKind uint8

const (
	kindFunc handlerKind = iota
	kindGetter
	kindSetter
)

type tableEntry[T any] struct {
	kind   handlerKind
	name   string
	fn     FuncHandler[T]
	getter GetterHandler[T]
	setter SetterHandler[T]
}

// TableBuilder registers handlers for a native type. Build is expected to run
// once, at package initialization of the type.
type TableBuilder[T any] struct {
	typeName string
	factory  Factory
	entries  []tableEntry[T]
}

func NewTable[T any](typeName string) *TableBuilder[T] {
	return &TableBuilder[T]{
		typeName: typeName,
	}
}

func (b *TableBuilder[T]) Func(name string, handler FuncHandler[T]) *TableBuilder[T] {
	b.entries = append(b.entries, tableEntry[T]{
		kind: kindFunc,
		name: name,
		fn:   handler,
	})
	return b
}

func (b *TableBuilder[T]) Getter(name string, handler GetterHandler[T]) *TableBuilder[T] {
	b.entries = append(b.entries, tableEntry[T]{
		kind:   kindGetter,
		name:   name,
		getter: handler,
	})
	return b
}

func (b *TableBuilder[T]) Setter(name string, handler SetterHandler[T]) *TableBuilder[T] {
	b.entries = append(b.entries, tableEntry[T]{
		kind:   kindSetter,
		name:   name,
		setter: handler,
	})
	return b
}

// Factory replaces the callable factory used to materialize function handlers.
func (b *TableBuilder[T]) Factory(factory Factory) *TableBuilder[T] {
	b.factory = factory
	return b
}

func (b *TableBuilder[T]) Build() (*Table[T], error) {
	table := &Table[T]{
		typeName: b.typeName,
		factory:  b.factory,
		funcs:    make(map[string]FuncHandler[T]),
		getters:  make(map[string]GetterHandler[T]),
		setters:  make(map[string]SetterHandler[T]),
	}
	if table.typeName == "" {
		return nil, fmt.Errorf("%w: empty type name", ErrInvalidHandler)
	}
	if table.factory == nil {
		table.factory = NewBuiltin
	}

	for _, entry := range b.entries {
		if entry.name == "" {
			return nil, fmt.Errorf("%s: %w: empty name", b.typeName, ErrInvalidHandler)
		}
		switch entry.kind {
		case kindFunc:
			if entry.fn == nil {
				return nil, fmt.Errorf("%s.%s: %w: nil function", b.typeName, entry.name, ErrInvalidHandler)
			}
			table.funcNames = append(table.funcNames, entry.name)
			table.funcs[entry.name] = entry.fn
		case kindGetter:
			if entry.getter == nil {
				return nil, fmt.Errorf("%s.%s: %w: nil getter", b.typeName, entry.name, ErrInvalidHandler)
			}
			table.getterNames = append(table.getterNames, entry.name)
			table.getters[entry.name] = entry.getter
		case kindSetter:
			if entry.setter == nil {
				return nil, fmt.Errorf("%s.%s: %w: nil setter", b.typeName, entry.name, ErrInvalidHandler)
			}
			table.setterNames = append(table.setterNames, entry.name)
			table.setters[entry.name] = entry.setter
		}
	}

	// a getter and a setter may share a name to form a read-write property;
	// any other overlap is ambiguous
	if dups := lo.FindDuplicates(slices.Concat(table.funcNames, table.getterNames)); len(dups) > 0 {
		return nil, fmt.Errorf("%s: %w: %v", b.typeName, ErrHandlerCollision, dups)
	}
	if dups := lo.FindDuplicates(slices.Concat(table.funcNames, table.setterNames)); len(dups) > 0 {
		return nil, fmt.Errorf("%s: %w: %v", b.typeName, ErrHandlerCollision, dups)
	}

	return table, nil
}

func (b *TableBuilder[T]) MustBuild() *Table[T] {
	table, err := b.Build()
	if err != nil {
		panic(err)
	}
	return table
}
