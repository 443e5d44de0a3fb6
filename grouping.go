package registry

import (
	"iter"

	"github.com/TheBitDrifter/mask"
)

// grouping is a cached index: a required mask and the ordered snapshot of
// every live entity whose mask is a superset of it. Snapshots are kept
// consistent incrementally by refreshGroupings.
type grouping struct {
	id  groupingID
	key mask.Mask
	set recordSet
}

// Grouping is the caller's handle to an explicit grouping. Destroying it
// removes only the cached snapshot, never the underlying data.
type Grouping struct {
	id  groupingID
	reg *Registry
}

// CreateGrouping builds a cached index over two or more distinct declared
// kinds. Single-kind groupings are redundant with the per-kind stores and
// are rejected.
func (r *Registry) CreateGrouping(kinds ...Kind) (*Grouping, error) {
	if len(kinds) < 2 {
		return nil, r.report(CodeInvalidComponent, "grouping requires at least two kinds")
	}
	key, err := r.queryKey(kinds)
	if err != nil {
		return nil, err
	}

	g := &grouping{id: r.nextGroupingID, key: key}
	candidates, encompassing := r.smallestCandidate(key, kinds)
	for i := 0; i < candidates.len(); i++ {
		rec := candidates.at(i)
		if encompassing || rec.mask.ContainsAll(key) {
			// The candidate set is ordered by identity, so append keeps order.
			g.set.recs = append(g.set.recs, *rec)
		}
	}

	r.nextGroupingID++
	r.groupings = append(r.groupings, g)
	return &Grouping{id: g.id, reg: r}, nil
}

func (r *Registry) destroyGrouping(id groupingID) bool {
	for i, g := range r.groupings {
		if g.id == id {
			r.groupings = append(r.groupings[:i], r.groupings[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Registry) groupingByID(id groupingID) *grouping {
	for _, g := range r.groupings {
		if g.id == id {
			return g
		}
	}
	return nil
}

// Valid reports whether the handle still refers to a live grouping.
func (g *Grouping) Valid() bool {
	return g != nil && g.reg != nil
}

// Destroy removes the cached grouping. A second call is a no-op returning
// false.
func (g *Grouping) Destroy() bool {
	if g == nil || g.reg == nil {
		return false
	}
	ok := g.reg.destroyGrouping(g.id)
	g.reg = nil
	return ok
}

// Size reports the number of entities currently in the snapshot.
func (g *Grouping) Size() int {
	if !g.Valid() {
		return 0
	}
	if grp := g.reg.groupingByID(g.id); grp != nil {
		return grp.set.len()
	}
	return 0
}

// Entities yields a handle per snapshot member in identity order. The
// sequence is valid until the next registry mutation.
func (g *Grouping) Entities() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		if !g.Valid() {
			return
		}
		grp := g.reg.groupingByID(g.id)
		if grp == nil {
			return
		}
		for i := 0; i < grp.set.len(); i++ {
			rec := grp.set.at(i)
			if !yield(Entity{id: rec.id, reg: g.reg, mask: rec.mask}) {
				return
			}
		}
	}
}
