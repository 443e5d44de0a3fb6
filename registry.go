package registry

import (
	"math"

	"github.com/TheBitDrifter/mask"
	"github.com/TheBitDrifter/table"
	"github.com/rotisserie/eris"
)

type groupingID uint64

// Registry owns the per-kind stores, the live entity set, all groupings and
// an optional event sink. All mutation flows through it; handles are
// non-owning views validated on use.
type Registry struct {
	schema  table.Schema
	bits    map[table.ElementType]uint32
	kinds   []Kind   // indexed by bit position
	columns []column // indexed by bit position, nil for tags

	entities recordSet

	// kindGroupings holds the implicit single-kind grouping per declared
	// kind (the 1-kind query fast path); groupings holds the explicit ones.
	kindGroupings []*grouping
	groupings     []*grouping

	nextEntityID   EntityID
	nextGroupingID groupingID

	linearSearchThreshold int
	sink                  EventSink
	errorCallback         ErrorCallback
}

func newRegistry(opts ...Option) (*Registry, error) {
	cfg := config{linearSearchThreshold: defaultLinearSearchThreshold}
	for _, opt := range opts {
		opt(&cfg)
	}

	total := len(cfg.components) + len(cfg.tags)
	if total > maxKinds {
		return nil, InvalidComponentError{Msg: "too many kinds declared"}
	}

	r := &Registry{
		schema:                table.Factory.NewSchema(),
		bits:                  make(map[table.ElementType]uint32, total),
		kinds:                 make([]Kind, total),
		columns:               make([]column, total),
		linearSearchThreshold: cfg.linearSearchThreshold,
		sink:                  cfg.sink,
		errorCallback:         cfg.errorCallback,
		nextEntityID:          1,
	}

	declare := func(k Kind, tag bool) error {
		if k == nil {
			return InvalidComponentError{Msg: "nil kind declared"}
		}
		if k.isTag() != tag {
			return InvalidComponentError{Msg: "kind " + k.Name() + " declared in the wrong kind list"}
		}
		if _, dup := r.bits[k.elementType()]; dup {
			return InvalidComponentError{Msg: "kind " + k.Name() + " declared more than once"}
		}
		// Bit positions are registry-local, assigned densely in declaration
		// order. Element types are process-global, so two registries may hold
		// the same kind at different positions.
		bit := uint32(len(r.bits))
		r.schema.Register(k.elementType())
		r.bits[k.elementType()] = bit
		r.kinds[bit] = k
		if !tag {
			r.columns[bit] = k.makeColumn()
		}
		return nil
	}

	for _, k := range cfg.components {
		if err := declare(k, false); err != nil {
			return nil, err
		}
	}
	for _, k := range cfg.tags {
		if err := declare(k, true); err != nil {
			return nil, err
		}
	}

	// One implicit single-kind grouping per kind, ids below the explicit range.
	r.kindGroupings = make([]*grouping, total)
	for bit := range r.kinds {
		r.kindGroupings[bit] = &grouping{
			id:  groupingID(bit),
			key: bitMask(uint32(bit)),
		}
	}
	r.nextGroupingID = groupingID(total)

	return r, nil
}

// SetEventSink attaches the sink notified of lifecycle transitions. The
// registry borrows the sink and never replays past events.
func (r *Registry) SetEventSink(sink EventSink) {
	r.sink = sink
}

// ClearEventSink detaches the current sink.
func (r *Registry) ClearEventSink() {
	r.sink = nil
}

// EntityCount reports the number of live entities.
func (r *Registry) EntityCount() int {
	return r.entities.len()
}

// Entity returns a fresh handle for the given identity, or false if it is
// not live.
func (r *Registry) Entity(id EntityID) (Entity, bool) {
	rec := r.entities.get(id)
	if rec == nil {
		return Entity{}, false
	}
	return Entity{id: id, reg: r, mask: rec.mask}, true
}

// Create allocates the next identity, inserts a zero-mask record, emits the
// created event, then applies each tag and component attachment through the
// same paths as SetTag and AddComponent, including their events and grouping
// updates. The attachment lists are validated before any mutation.
func (r *Registry) Create(attachments ...Attachment) (Entity, error) {
	if err := r.validateAttachments(attachments); err != nil {
		return Entity{}, err
	}
	if r.nextEntityID == math.MaxUint64 {
		return Entity{}, r.report(CodeInvalidComponent, "entity identity space exhausted")
	}

	id := r.nextEntityID
	r.nextEntityID++
	r.entities.push(record{id: id})

	e := Entity{id: id, reg: r}
	if r.sink != nil {
		r.sink.EntityCreated(e)
	}

	// Tags first, then components, regardless of argument interleaving.
	for _, a := range attachments {
		if _, tag := a.(TagKind); !tag {
			continue
		}
		if err := a.apply(r, &e); err != nil {
			return Entity{}, eris.Wrap(err, "failed to create entity")
		}
	}
	for _, a := range attachments {
		if _, tag := a.(TagKind); tag {
			continue
		}
		if err := a.apply(r, &e); err != nil {
			return Entity{}, eris.Wrap(err, "failed to create entity")
		}
	}
	return e, nil
}

// CreateMany creates n entities with identical attachments and returns their
// handles in identity order.
func (r *Registry) CreateMany(n int, attachments ...Attachment) ([]Entity, error) {
	entities := make([]Entity, 0, n)
	for i := 0; i < n; i++ {
		e, err := r.Create(attachments...)
		if err != nil {
			return nil, eris.Wrap(err, "failed to create entities")
		}
		entities = append(entities, e)
	}
	return entities, nil
}

func (r *Registry) validateAttachments(attachments []Attachment) error {
	var seen mask.Mask
	for _, a := range attachments {
		if a == nil {
			return r.report(CodeInvalidComponent, "nil attachment")
		}
		k := a.kind()
		bit, ok := r.bits[k.elementType()]
		if !ok {
			return r.report(CodeInvalidComponent, "kind "+k.Name()+" is not declared on this registry")
		}
		if maskHas(seen, bit) {
			return r.report(CodeInvalidComponent, "kind "+k.Name()+" listed more than once")
		}
		seen.Mark(bit)
	}
	return nil
}

// Destroy validates the handle, emits the destroyed event, then one
// component-removed and one tag-removed event per set bit in store order,
// erases the identity from every kind store that held it, from every
// matching grouping, and finally from the entity set.
func (r *Registry) Destroy(e *Entity) error {
	rec, err := r.assertEntity(e)
	if err != nil {
		return err
	}
	live := Entity{id: rec.id, reg: r, mask: rec.mask}
	if r.sink != nil {
		r.sink.EntityDestroyed(live)
	}

	for bit, col := range r.columns {
		if col == nil || !maskHas(rec.mask, uint32(bit)) {
			continue
		}
		if r.sink != nil {
			i, _ := col.find(rec.id)
			r.sink.ComponentRemoved(live, r.kinds[bit], col.value(i))
		}
		col.erase(rec.id)
	}
	for bit, k := range r.kinds {
		if !k.isTag() || !maskHas(rec.mask, uint32(bit)) {
			continue
		}
		if r.sink != nil {
			r.sink.TagRemoved(live, k)
		}
	}

	for _, g := range r.kindGroupings {
		if rec.mask.ContainsAll(g.key) {
			g.set.remove(rec.id)
		}
	}
	for _, g := range r.groupings {
		if rec.mask.ContainsAll(g.key) {
			g.set.remove(rec.id)
		}
	}

	r.entities.remove(rec.id)
	return nil
}

// SetTag sets or clears a tag and returns the previous value. Already at the
// desired state is a no-op with no events. TagAdded fires after the bit is
// set; TagRemoved fires before the bit is cleared.
func (r *Registry) SetTag(e *Entity, k TagKind, set bool) (bool, error) {
	bit, ok := r.bits[k.elem]
	if !ok {
		return false, r.report(CodeInvalidComponent, "tag "+k.name+" is not declared on this registry")
	}
	rec, err := r.assertEntity(e)
	if err != nil {
		return false, err
	}

	old := maskHas(rec.mask, bit)
	if old == set {
		return old, nil
	}
	if set {
		r.setBit(rec, e, bit)
		if r.sink != nil {
			r.sink.TagAdded(*e, k)
		}
	} else {
		if r.sink != nil {
			r.sink.TagRemoved(*e, k)
		}
		r.clearBit(rec, e, bit)
	}
	return old, nil
}

// lookup resolves a handle against the authoritative record.
func (r *Registry) lookup(e *Entity) (*record, Status) {
	rec := r.entities.get(e.id)
	if rec == nil {
		return nil, StatusDeleted
	}
	if rec.mask != e.mask {
		return rec, StatusStale
	}
	return rec, StatusOK
}

// assertEntity is the shared gate for every mutating and reading operation:
// only a handle whose cached mask matches the live record passes.
func (r *Registry) assertEntity(e *Entity) (*record, error) {
	if e.reg == nil {
		return nil, BadEntityError{Msg: "entity handle is uninitialized"}
	}
	if e.reg != r {
		return nil, r.report(CodeBadEntity, "entity belongs to a different registry")
	}
	rec, status := r.lookup(e)
	switch status {
	case StatusDeleted:
		return nil, r.report(CodeBadEntity, "entity has been deleted")
	case StatusStale:
		return nil, r.report(CodeBadEntity, "entity is stale, refresh it with Sync")
	}
	return rec, nil
}

// setBit marks a kind bit on the record and the caller's handle, then
// updates every grouping incrementally.
func (r *Registry) setBit(rec *record, e *Entity, bit uint32) {
	before := rec.mask
	rec.mask.Mark(bit)
	e.mask.Mark(bit)
	r.refreshGroupings(rec.id, before, rec.mask)
}

func (r *Registry) clearBit(rec *record, e *Entity, bit uint32) {
	before := rec.mask
	rec.mask.Unmark(bit)
	e.mask.Unmark(bit)
	r.refreshGroupings(rec.id, before, rec.mask)
}

// refreshGroupings applies one bit transition to every grouping snapshot.
// An entity enters a grouping only when the transition completes its
// required mask, leaves only when it breaks it, and otherwise has just the
// snapshot's cached mask refreshed. O(groupings) per bit flip.
func (r *Registry) refreshGroupings(id EntityID, before, after mask.Mask) {
	update := func(g *grouping) {
		was := before.ContainsAll(g.key)
		now := after.ContainsAll(g.key)
		switch {
		case now && !was:
			g.set.insert(record{id: id, mask: after})
		case was && !now:
			g.set.remove(id)
		case was:
			if snap := g.set.get(id); snap != nil {
				snap.mask = after
			}
		}
	}
	for _, g := range r.kindGroupings {
		update(g)
	}
	for _, g := range r.groupings {
		update(g)
	}
}
