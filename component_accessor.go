package registry

// GetFromCursor returns the component value for the entity under the cursor.
// The kind must be part of the cursor's query; anything else is a programmer
// error and panics. Use GetFromCursorSafe to probe.
func (k ComponentKind[T]) GetFromCursor(c *Cursor) *T {
	ok, v := k.GetFromCursorSafe(c)
	if !ok {
		panic("registry: component " + k.name + " is not part of the cursor's query")
	}
	return v
}

// GetFromCursorSafe reports whether the kind is part of the cursor's query
// and the cursor is positioned on an entity, and if so returns the value for
// the entity under the cursor.
func (k ComponentKind[T]) GetFromCursorSafe(c *Cursor) (bool, *T) {
	if c.current == nil {
		return false, nil
	}
	bit, ok := c.reg.bits[k.elem]
	if !ok {
		return false, nil
	}
	cc := c.columnFor(bit)
	if cc == nil {
		return false, nil
	}
	return true, cc.col.(*sortedColumn[T]).at(cc.pos)
}
