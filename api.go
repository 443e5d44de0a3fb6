package registry

// EntityID names a created entity for the lifetime of its registry.
// Identities are allocated monotonically and never recycled.
type EntityID uint64

// Status describes how a handle relates to the authoritative entity record.
// It is derived on demand and never cached.
type Status int

const (
	// StatusUninitialized marks a zero handle never attached to a registry.
	StatusUninitialized Status = iota
	// StatusDeleted marks a handle whose identity is absent from the live set.
	StatusDeleted
	// StatusStale marks a handle whose cached mask disagrees with the record.
	StatusStale
	// StatusOK marks a handle whose cached mask matches the record.
	StatusOK
)

func (s Status) String() string {
	switch s {
	case StatusUninitialized:
		return "uninitialized"
	case StatusDeleted:
		return "deleted"
	case StatusStale:
		return "stale"
	case StatusOK:
		return "ok"
	}
	return "unknown"
}

// ControlBlock is handed to ForEachWithControl callbacks. Setting Breakout
// stops iteration immediately after the current callback returns.
type ControlBlock struct {
	Breakout bool
}

// EventSink observes entity/component/tag lifecycle transitions. A registry
// holds at most one sink at a time and never owns it; attaching a sink does
// not replay past events.
//
// Component events carry the component value: ComponentAdded fires after the
// bit is set and the value exists, ComponentRemoved fires while the old value
// is still present. TagAdded fires after the bit is set; TagRemoved fires
// before the bit is cleared.
type EventSink interface {
	EntityCreated(Entity)
	EntityDestroyed(Entity)
	ComponentAdded(e Entity, k Kind, value any)
	ComponentRemoved(e Entity, k Kind, value any)
	TagAdded(e Entity, k Kind)
	TagRemoved(e Entity, k Kind)
}
