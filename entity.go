package registry

import (
	"cmp"

	"github.com/TheBitDrifter/mask"
)

// Entity is a value handle: identity, owning registry and a cached mask.
// The mask is a snapshot, not a live view; mutations performed through a
// different handle to the same identity leave this one stale until Sync.
// Only a registry constructs live handles.
type Entity struct {
	id   EntityID
	reg  *Registry
	mask mask.Mask
}

func (e Entity) ID() EntityID { return e.id }

// Status derives the handle's relationship to the authoritative record.
func (e Entity) Status() Status {
	if e.reg == nil {
		return StatusUninitialized
	}
	_, status := e.reg.lookup(&e)
	return status
}

// Has reports whether the handle's cached mask holds the kind. It reads the
// snapshot only, so it is cheap but can be stale. Undeclared kinds report
// false.
func (e Entity) Has(k Kind) bool {
	if e.reg == nil {
		return false
	}
	bit, ok := e.reg.bits[k.elementType()]
	if !ok {
		return false
	}
	return maskHas(e.mask, bit)
}

// Sync copies the live mask into the handle. It returns false and leaves
// the handle unchanged when the identity has been deleted. This is the only
// way to recover a stale handle.
func (e *Entity) Sync() bool {
	if e.reg == nil {
		return false
	}
	rec := e.reg.entities.get(e.id)
	if rec == nil {
		return false
	}
	e.mask = rec.mask
	return true
}

// Destroy removes the entity from its registry.
func (e *Entity) Destroy() error {
	if e.reg == nil {
		return BadEntityError{Msg: "entity handle is uninitialized"}
	}
	return e.reg.Destroy(e)
}

// Compare orders handles by identity.
func (e Entity) Compare(other Entity) int {
	return cmp.Compare(e.id, other.id)
}
