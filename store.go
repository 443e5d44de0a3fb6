package registry

import (
	"cmp"
	"slices"

	"github.com/TheBitDrifter/mask"
)

// column is the type-erased view over one component kind's store: an ordered
// map from entity identity to the component value, laid out as two parallel
// slices sorted by identity.
type column interface {
	len() int
	idAt(i int) EntityID
	find(id EntityID) (int, bool)
	lowerBound(from int, id EntityID) int
	value(i int) any
	erase(id EntityID) (any, bool)
}

type sortedColumn[T any] struct {
	ids  []EntityID
	vals []T
}

var _ column = &sortedColumn[int]{}

func (c *sortedColumn[T]) len() int { return len(c.ids) }

func (c *sortedColumn[T]) idAt(i int) EntityID { return c.ids[i] }

func (c *sortedColumn[T]) find(id EntityID) (int, bool) {
	return slices.BinarySearch(c.ids, id)
}

// lowerBound returns the first position at or after from whose identity is
// not less than id.
func (c *sortedColumn[T]) lowerBound(from int, id EntityID) int {
	i, _ := slices.BinarySearch(c.ids[from:], id)
	return from + i
}

func (c *sortedColumn[T]) value(i int) any { return c.vals[i] }

func (c *sortedColumn[T]) at(i int) *T { return &c.vals[i] }

func (c *sortedColumn[T]) insert(id EntityID, v T) *T {
	i, found := slices.BinarySearch(c.ids, id)
	if found {
		c.vals[i] = v
		return &c.vals[i]
	}
	c.ids = slices.Insert(c.ids, i, id)
	c.vals = slices.Insert(c.vals, i, v)
	return &c.vals[i]
}

func (c *sortedColumn[T]) erase(id EntityID) (any, bool) {
	i, found := slices.BinarySearch(c.ids, id)
	if !found {
		return nil, false
	}
	old := c.vals[i]
	c.ids = slices.Delete(c.ids, i, i+1)
	c.vals = slices.Delete(c.vals, i, i+1)
	return old, true
}

// record is the authoritative per-entity state: identity plus the live mask.
// Grouping snapshots hold copies whose masks are refreshed on every mutation.
type record struct {
	id   EntityID
	mask mask.Mask
}

// recordSet is an ordered set of records keyed by identity. It backs both
// the live entity set and every grouping snapshot.
type recordSet struct {
	recs []record
}

func (s *recordSet) len() int { return len(s.recs) }

func (s *recordSet) at(i int) *record { return &s.recs[i] }

func (s *recordSet) search(id EntityID) (int, bool) {
	return slices.BinarySearchFunc(s.recs, id, func(r record, target EntityID) int {
		return cmp.Compare(r.id, target)
	})
}

func (s *recordSet) get(id EntityID) *record {
	if i, found := s.search(id); found {
		return &s.recs[i]
	}
	return nil
}

func (s *recordSet) insert(rec record) bool {
	i, found := s.search(rec.id)
	if found {
		return false
	}
	s.recs = slices.Insert(s.recs, i, rec)
	return true
}

// push appends without searching. Valid only for monotonically increasing
// identities, which is how the live entity set grows.
func (s *recordSet) push(rec record) {
	s.recs = append(s.recs, rec)
}

func (s *recordSet) remove(id EntityID) bool {
	i, found := s.search(id)
	if !found {
		return false
	}
	s.recs = slices.Delete(s.recs, i, i+1)
	return true
}

func bitMask(bit uint32) mask.Mask {
	var m mask.Mask
	m.Mark(bit)
	return m
}

func maskHas(m mask.Mask, bit uint32) bool {
	return m.ContainsAll(bitMask(bit))
}
