/*
Package registry provides an in-memory entity/component/tag store with cached
multi-kind indices and a merge-join iteration engine.

A Registry is a miniature single-threaded database for game objects. Component
and tag kinds are declared up front; each component kind gets one ordered
column mapping entity identity to its value, and every entity carries a
fixed-width bit mask recording which kinds it currently has. Groupings are
cached indices over mask combinations, maintained incrementally on every
mutation so multi-kind queries stay cheap at read time.

Core Concepts:

  - Entity: a cheap value handle (identity plus a cached mask) into a Registry.
  - ComponentKind / TagKind: a declared attribute type; components carry data,
    tags are boolean markers.
  - Grouping: a cached snapshot of all entities matching a set of kinds.
  - Cursor: a merge-join iterator over the entities matching a query.

Basic Usage:

	// Declare kinds
	position := registry.FactoryNewComponent[Position]()
	velocity := registry.FactoryNewComponent[Velocity]()
	frozen := registry.FactoryNewTag[Frozen]()

	// Create a registry over a closed kind set
	reg, _ := registry.Factory.NewRegistry(
		registry.WithComponents(position, velocity),
		registry.WithTags(frozen),
	)

	// Create entities
	e, _ := reg.Create(position.With(Position{X: 1}), velocity.With(Velocity{Y: 2}))

	// Iterate entities holding both components
	cursor, _ := reg.NewCursor(position, velocity)
	for cursor.Next() {
		pos := position.GetFromCursor(cursor)
		vel := velocity.GetFromCursor(cursor)
		pos.X += vel.X
		pos.Y += vel.Y
	}

	_ = e

Handles are views, not owners: after a mutation through another handle to the
same identity, a handle goes stale and must be refreshed with Sync before use.
A Registry has no internal locking and must be used from a single goroutine.
*/
package registry
