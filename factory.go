package registry

import (
	"reflect"

	"github.com/TheBitDrifter/table"
)

type factory struct{}

var Factory factory

// NewRegistry builds a registry over a closed kind set.
func (f factory) NewRegistry(opts ...Option) (*Registry, error) {
	return newRegistry(opts...)
}

// FactoryNewComponent declares a component kind carrying values of type T.
func FactoryNewComponent[T any]() ComponentKind[T] {
	return ComponentKind[T]{
		elem: table.FactoryNewElementType[T](),
		name: kindName[T](),
	}
}

// FactoryNewTag declares a tag kind identified by the marker type T.
func FactoryNewTag[T any]() TagKind {
	return TagKind{
		elem: table.FactoryNewElementType[T](),
		name: kindName[T](),
	}
}

// kindName falls back to the full type string for unnamed types, so
// diagnostics never carry an empty kind name.
func kindName[T any]() string {
	t := reflect.TypeFor[T]()
	if n := t.Name(); n != "" {
		return n
	}
	return t.String()
}
