package registry

import (
	"github.com/TheBitDrifter/table"
)

// Kind identifies a declared component or tag type. The kind set of a
// registry is fixed at construction and partitioned into component kinds
// (which carry data) and tag kinds (boolean only).
type Kind interface {
	Name() string
	elementType() table.ElementType
	isTag() bool
	makeColumn() column
}

// Attachment is an item passed to Create: either a bare TagKind or a
// component kind bound to an initial value via ComponentKind.With.
type Attachment interface {
	kind() Kind
	apply(r *Registry, e *Entity) error
}

// ComponentKind is the declared identity of one component type T.
type ComponentKind[T any] struct {
	elem table.ElementType
	name string
}

func (k ComponentKind[T]) Name() string { return k.name }

func (k ComponentKind[T]) elementType() table.ElementType { return k.elem }

func (k ComponentKind[T]) isTag() bool { return false }

func (k ComponentKind[T]) makeColumn() column { return &sortedColumn[T]{} }

// With binds an initial value to the kind for use with Create.
func (k ComponentKind[T]) With(value T) Attachment {
	return componentAttachment[T]{component: k, value: value}
}

// TagKind is the declared identity of one tag type. Tags ride the same
// schema registration as components but allocate no storage.
type TagKind struct {
	elem table.ElementType
	name string
}

func (k TagKind) Name() string { return k.name }

func (k TagKind) elementType() table.ElementType { return k.elem }

func (k TagKind) isTag() bool { return true }

func (k TagKind) makeColumn() column { return nil }

// A bare TagKind is a valid Create attachment: it sets the tag.
func (k TagKind) kind() Kind { return k }

func (k TagKind) apply(r *Registry, e *Entity) error {
	_, err := r.SetTag(e, k, true)
	return err
}

type componentAttachment[T any] struct {
	component ComponentKind[T]
	value     T
}

func (a componentAttachment[T]) kind() Kind { return a.component }

func (a componentAttachment[T]) apply(r *Registry, e *Entity) error {
	_, _, err := AddComponent(e, a.component, a.value)
	return err
}
