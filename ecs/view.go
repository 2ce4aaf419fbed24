package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// View matches entities against a struct of component pointers.
//
//	ecs.NewView[struct {
//		ecs.EntityId
//		*geom.Transform
//		*Sprite
//		Anim *FrameAnimation `ecs:"optional"`
//	}](storage)
//
// An embedded EntityId field receives the entity's ID. Embedded component
// pointers are required; named fields may be tagged `ecs:"optional"` and are
// nil for entities without that component.
type View[T any] struct {
	storage  *Storage
	types    []reflect.Type
	optional []bool
	offsets  []uintptr

	idOffset uintptr
	hasId    bool
}

var entityIdType = reflect.TypeFor[EntityId]()

func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			v.idOffset = field.Offset
			v.hasId = true
			continue
		}
		if field.Type.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types")
		}

		optional := false
		if tag := field.Tag.Get("ecs"); tag != "" && !field.Anonymous {
			if tag != "optional" {
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
			optional = true
		}

		v.types = append(v.types, field.Type.Elem())
		v.optional = append(v.optional, optional)
		v.offsets = append(v.offsets, field.Offset)
	}
	return v
}

// Fill writes the entity's components into *out. It reports false when a
// required component is missing.
func (v *View[T]) Fill(id EntityId, out *T) bool {
	archetype, ok := v.storage.archetypes[id.ArchetypeId()]
	if !ok || !archetype.alive(id) {
		return false
	}
	return v.populate(unsafe.Pointer(out), archetype, int(id.Index()), v.columnIndices(archetype), id)
}

func (v *View[T]) Get(id EntityId) *T {
	var out T
	if !v.Fill(id, &out) {
		return nil
	}
	return &out
}

func (v *View[T]) GetRef(ref *EntityRef) *T {
	id, ok := v.storage.ResolveEntityRef(ref)
	if !ok {
		return nil
	}
	return v.Get(id)
}

func (v *View[T]) matches(archetype *Archetype) bool {
	for i, t := range v.types {
		if !v.optional[i] && !archetype.HasComponent(t) {
			return false
		}
	}
	return true
}

func (v *View[T]) columnIndices(archetype *Archetype) []int {
	indices := make([]int, len(v.types))
	for i, t := range v.types {
		indices[i] = archetype.columnOf(t)
	}
	return indices
}

func (v *View[T]) populate(out unsafe.Pointer, archetype *Archetype, slot int, columns []int, id EntityId) bool {
	for i, col := range columns {
		field := unsafe.Pointer(uintptr(out) + v.offsets[i])

		var comp any
		if col >= 0 {
			comp = archetype.columns[col].Get(slot)
		}
		if comp == nil {
			if !v.optional[i] {
				return false
			}
			*(*unsafe.Pointer)(field) = nil
			continue
		}
		*(*unsafe.Pointer)(field) = ifaceData(comp)
	}
	if v.hasId {
		*(*EntityId)(unsafe.Pointer(uintptr(out) + v.idOffset)) = id
	}
	return true
}

func (v *View[T]) iterArchetype(archetype *Archetype) iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		if len(archetype.columns) == 0 {
			return
		}
		columns := v.columnIndices(archetype)

		var out T
		for slot := range archetype.columns[0].Iter() {
			id := archetype.idOf(slot)
			if !v.populate(unsafe.Pointer(&out), archetype, slot, columns, id) {
				continue
			}
			if !yield(id, out) {
				return
			}
		}
	}
}

// Iter walks the live storage directly. Structural changes made during
// iteration are visible; use Commands from inside systems.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range v.storage.archetypes {
			if !v.matches(archetype) {
				continue
			}
			for id, item := range v.iterArchetype(archetype) {
				if !yield(id, item) {
					return
				}
			}
		}
	}
}

func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range v.Iter() {
			if !yield(item) {
				return
			}
		}
	}
}
