package registry

import (
	"iter"

	"github.com/TheBitDrifter/mask"
	iter_util "github.com/TheBitDrifter/util/iter"
)

// queryKey folds a kind list into its mask, rejecting undeclared or
// duplicated kinds.
func (r *Registry) queryKey(kinds []Kind) (mask.Mask, error) {
	var key mask.Mask
	for _, k := range kinds {
		if k == nil {
			return key, r.report(CodeInvalidComponent, "nil kind in query")
		}
		bit, ok := r.bits[k.elementType()]
		if !ok {
			return key, r.report(CodeInvalidComponent, "kind "+k.Name()+" is not declared on this registry")
		}
		if maskHas(key, bit) {
			return key, r.report(CodeInvalidComponent, "kind "+k.Name()+" listed more than once in query")
		}
		key.Mark(bit)
	}
	return key, nil
}

// smallestCandidate picks the cheapest starting set for a query: the entity
// set for the empty query, the implicit single-kind grouping for one kind,
// and otherwise the smallest grouping whose mask is a subset of the query's.
// The second result reports whether the candidate is encompassing (its mask
// equals the query mask, so no per-record filtering is needed).
func (r *Registry) smallestCandidate(key mask.Mask, kinds []Kind) (*recordSet, bool) {
	switch len(kinds) {
	case 0:
		return &r.entities, true
	case 1:
		bit := r.bits[kinds[0].elementType()]
		return &r.kindGroupings[bit].set, true
	}

	var best *grouping
	consider := func(g *grouping) {
		if !key.ContainsAll(g.key) {
			return
		}
		if best == nil || g.set.len() < best.set.len() {
			best = g
		}
	}
	for _, g := range r.kindGroupings {
		consider(g)
	}
	for _, g := range r.groupings {
		consider(g)
	}
	// At least the single-kind groupings of the queried kinds qualify.
	return &best.set, best.key == key
}

// All yields a handle per matching entity in identity order. The sequence
// reads the live containers and is valid until the next mutation.
func (r *Registry) All(kinds ...Kind) (iter.Seq[Entity], error) {
	key, err := r.queryKey(kinds)
	if err != nil {
		return nil, err
	}
	candidates, encompassing := r.smallestCandidate(key, kinds)
	return func(yield func(Entity) bool) {
		for i := 0; i < candidates.len(); i++ {
			rec := candidates.at(i)
			if !encompassing && !rec.mask.ContainsAll(key) {
				continue
			}
			if !yield(Entity{id: rec.id, reg: r, mask: rec.mask}) {
				return
			}
		}
	}, nil
}

// GetEntities returns the handles of every live entity whose mask is a
// superset of the queried kinds, regardless of which candidate set served
// the query.
func (r *Registry) GetEntities(kinds ...Kind) ([]Entity, error) {
	seq, err := r.All(kinds...)
	if err != nil {
		return nil, err
	}
	return iter_util.Collect(seq), nil
}
