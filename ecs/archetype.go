package ecs

import (
	"reflect"
	"slices"
	"strings"
	"weak"

	"github.com/kamstrup/intmap"
)

// Archetype holds every entity that has exactly one particular set of
// component types, one column per type.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []componentColumn
	refs    *intmap.Map[EntityId, weak.Pointer[EntityRef]]

	// generations[slot] is the generation of the slot's current occupant.
	generations []uint8
}

func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]componentColumn, len(types)),
		refs:    intmap.New[EntityId, weak.Pointer[EntityRef]](16),
	}
	for i, typ := range types {
		factory := registry.factory(typ)
		if factory == nil {
			panic("component type " + typ.String() + " not registered")
		}
		a.columns[i] = factory()
	}
	return a
}

// spawn appends one value to every column and returns the new entity's ID.
// Columns are kept in lockstep, so every Append lands on the same index.
func (a *Archetype) spawn(components []any) EntityId {
	var slot int
	for _, comp := range components {
		if idx := a.columnOf(componentType(comp)); idx >= 0 {
			slot = a.columns[idx].Append(comp)
		}
	}
	if slot >= MaxEntitiesPerArchetype {
		panic("archetype " + a.String() + " is full")
	}
	for len(a.generations) <= slot {
		a.generations = append(a.generations, 0)
	}
	return a.idOf(slot)
}

// idOf is the ID of the slot's current occupant.
func (a *Archetype) idOf(slot int) EntityId {
	return NewEntityId(a.id, uint32(slot), a.generations[slot])
}

// alive reports whether id names the current occupant of its slot.
func (a *Archetype) alive(id EntityId) bool {
	slot := int(id.Index())
	if len(a.columns) == 0 || !a.columns[0].Has(slot) {
		return false
	}
	return a.generations[slot] == id.Generation()
}

func (a *Archetype) columnOf(t reflect.Type) int {
	return slices.Index(a.types, t)
}

// GetComponent returns a pointer to the component, or nil.
func (a *Archetype) GetComponent(index uint32, t reflect.Type) any {
	idx := a.columnOf(t)
	if idx < 0 {
		return nil
	}
	return a.columns[idx].Get(int(index))
}

// delete frees the slot in every column, invalidates any live ref and
// bumps the slot's generation.
func (a *Archetype) delete(id EntityId) {
	if wp, ok := a.refs.Get(id); ok {
		if ref := wp.Value(); ref != nil {
			ref.Id = 0
			ref.Archetype = nil
		}
		a.refs.Del(id)
	}
	slot := int(id.Index())
	for _, c := range a.columns {
		c.Delete(slot)
	}
	a.generations[slot]++
}

// bindRef points ref at id and records it so moves and deletes update it.
func (a *Archetype) bindRef(ref *EntityRef, id EntityId) {
	ref.Id = id
	ref.Archetype = a
	a.refs.Put(id, weak.Make(ref))
}

// moveRef carries the ref registered for oldId (if any) over to newId in dst.
func (a *Archetype) moveRef(oldId EntityId, dst *Archetype, newId EntityId) {
	wp, ok := a.refs.Get(oldId)
	if !ok {
		return
	}
	a.refs.Del(oldId)
	if ref := wp.Value(); ref != nil {
		dst.bindRef(ref, newId)
	}
}

func (a *Archetype) HasComponent(t reflect.Type) bool {
	return slices.Contains(a.types, t)
}

func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the component types sorted by name.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len is the number of live entities.
func (a *Archetype) Len() int {
	if len(a.columns) == 0 {
		return 0
	}
	return a.columns[0].Len()
}

func (a *Archetype) String() string {
	names := make([]string, len(a.types))
	for i, t := range a.types {
		names[i] = t.String()
	}
	return "[" + strings.Join(names, ", ") + "]"
}

// Iter yields the IDs of all live entities.
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		if len(a.columns) == 0 {
			return
		}
		for index := range a.columns[0].Iter() {
			if !yield(a.idOf(index)) {
				return
			}
		}
	}
}
