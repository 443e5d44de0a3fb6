package registry

// AddComponent attaches a component value to the entity, or returns the
// existing value when the kind is already present (get-or-create: the value
// argument is then ignored). The second result reports whether an insert
// happened. The returned pointer stays valid until the next mutation of the
// kind's store.
func AddComponent[T any](e *Entity, k ComponentKind[T], value T) (*T, bool, error) {
	r := e.reg
	if r == nil {
		return nil, false, BadEntityError{Msg: "entity handle is uninitialized"}
	}
	bit, ok := r.bits[k.elem]
	if !ok {
		return nil, false, r.report(CodeInvalidComponent, "component "+k.name+" is not declared on this registry")
	}
	rec, err := r.assertEntity(e)
	if err != nil {
		return nil, false, err
	}

	col := r.columns[bit].(*sortedColumn[T])
	if maskHas(rec.mask, bit) {
		i, _ := col.find(e.id)
		return col.at(i), false, nil
	}

	ptr := col.insert(e.id, value)
	r.setBit(rec, e, bit)
	if r.sink != nil {
		r.sink.ComponentAdded(*e, k, *ptr)
	}
	return ptr, true, nil
}

// RemoveComponent detaches a component. Removing a kind the entity does not
// have returns false and touches nothing.
func RemoveComponent[T any](e *Entity, k ComponentKind[T]) (bool, error) {
	r := e.reg
	if r == nil {
		return false, BadEntityError{Msg: "entity handle is uninitialized"}
	}
	bit, ok := r.bits[k.elem]
	if !ok {
		return false, r.report(CodeInvalidComponent, "component "+k.name+" is not declared on this registry")
	}
	rec, err := r.assertEntity(e)
	if err != nil {
		return false, err
	}
	if !maskHas(rec.mask, bit) {
		return false, nil
	}

	col := r.columns[bit].(*sortedColumn[T])
	if r.sink != nil {
		i, _ := col.find(e.id)
		r.sink.ComponentRemoved(*e, k, *col.at(i))
	}
	col.erase(e.id)
	r.clearBit(rec, e, bit)
	return true, nil
}

// GetComponent returns the entity's value for the kind. The handle must be
// fresh and the kind present, otherwise the read fails.
func GetComponent[T any](e *Entity, k ComponentKind[T]) (*T, error) {
	r := e.reg
	if r == nil {
		return nil, BadEntityError{Msg: "entity handle is uninitialized"}
	}
	bit, ok := r.bits[k.elem]
	if !ok {
		return nil, r.report(CodeInvalidComponent, "component "+k.name+" is not declared on this registry")
	}
	rec, err := r.assertEntity(e)
	if err != nil {
		return nil, err
	}
	if !maskHas(rec.mask, bit) {
		return nil, r.report(CodeInvalidComponent, "entity does not have component "+k.name)
	}

	col := r.columns[bit].(*sortedColumn[T])
	i, _ := col.find(e.id)
	return col.at(i), nil
}
