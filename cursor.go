package registry

import (
	"github.com/TheBitDrifter/mask"
)

// Cursor is a merge-join iterator over the entities matching a query: the
// candidate set plus one ordered column per queried component kind, advanced
// together as k+1 sorted sequences. Tags filter but contribute no column.
//
// A cursor reads the live containers directly; mutating the registry while
// iterating invalidates it.
type Cursor struct {
	reg          *Registry
	key          mask.Mask
	candidates   *recordSet
	encompassing bool

	pos     int
	current *record
	cols    []cursorColumn
}

type cursorColumn struct {
	bit    uint32
	col    column
	pos    int
	linear bool
}

// NewCursor resolves the smallest candidate set for the queried kinds and
// fixes the per-column advancement strategy: a column much larger than the
// candidate set is advanced by binary search, otherwise by linear scan.
func (r *Registry) NewCursor(kinds ...Kind) (*Cursor, error) {
	key, err := r.queryKey(kinds)
	if err != nil {
		return nil, err
	}
	candidates, encompassing := r.smallestCandidate(key, kinds)
	c := &Cursor{
		reg:          r,
		key:          key,
		candidates:   candidates,
		encompassing: encompassing,
	}
	if candidates.len() == 0 {
		return c, nil
	}
	for _, k := range kinds {
		if k.isTag() {
			continue
		}
		bit := r.bits[k.elementType()]
		col := r.columns[bit]
		c.cols = append(c.cols, cursorColumn{
			bit:    bit,
			col:    col,
			linear: col.len()/candidates.len() < r.linearSearchThreshold,
		})
	}
	return c, nil
}

// Next advances to the next matching entity, positioning every component
// column at its identity. It returns false when the candidates are spent.
func (c *Cursor) Next() bool {
	for c.pos < c.candidates.len() {
		rec := c.candidates.at(c.pos)
		c.pos++
		if !c.encompassing && !rec.mask.ContainsAll(c.key) {
			continue
		}
		for i := range c.cols {
			c.cols[i].advance(rec.id)
		}
		c.current = rec
		return true
	}
	c.current = nil
	return false
}

// advance moves the column position to the target identity. The identity is
// guaranteed present: the candidate passed the mask filter, and the mask and
// store agree bit for bit.
func (cc *cursorColumn) advance(id EntityID) {
	if cc.linear {
		for cc.col.idAt(cc.pos) < id {
			cc.pos++
		}
		return
	}
	cc.pos = cc.col.lowerBound(cc.pos, id)
}

// Entity returns a handle for the entity under the cursor.
func (c *Cursor) Entity() Entity {
	return Entity{id: c.current.id, reg: c.reg, mask: c.current.mask}
}

func (c *Cursor) columnFor(bit uint32) *cursorColumn {
	for i := range c.cols {
		if c.cols[i].bit == bit {
			return &c.cols[i]
		}
	}
	return nil
}

// ForEach runs the callback once per entity matching the queried kinds.
func (r *Registry) ForEach(fn func(*Cursor), kinds ...Kind) error {
	c, err := r.NewCursor(kinds...)
	if err != nil {
		return err
	}
	for c.Next() {
		fn(c)
	}
	return nil
}

// ForEachWithControl is ForEach with a per-callback control block; setting
// Breakout stops iteration after the current callback returns.
func (r *Registry) ForEachWithControl(fn func(*Cursor, *ControlBlock), kinds ...Kind) error {
	c, err := r.NewCursor(kinds...)
	if err != nil {
		return err
	}
	for c.Next() {
		control := ControlBlock{}
		fn(c, &control)
		if control.Breakout {
			break
		}
	}
	return nil
}
