package ecs

import (
	"reflect"
	"sort"
	"unsafe"
)

// Storage owns all archetypes and singletons of one world.
type Storage struct {
	archetypes map[uint32]*Archetype
	singletons map[reflect.Type]*singletonEntry
	registry   *ComponentRegistry
}

type singletonEntry struct {
	value   reflect.Value
	dataPtr unsafe.Pointer
}

func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		singletons: make(map[reflect.Type]*singletonEntry),
		registry:   registry,
	}
}

// Spawn creates an entity from the given components. Values and pointers are
// both accepted; pointers are copied.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types := extractComponentTypes(components)
	archetype := s.archetypeFor(types)
	return archetype.spawn(components)
}

func (s *Storage) archetypeFor(sortedTypes []reflect.Type) *Archetype {
	id := hashTypesToUint32(sortedTypes)
	archetype, ok := s.archetypes[id]
	if !ok {
		archetype = newArchetype(id, sortedTypes, s.registry)
		s.archetypes[id] = archetype
	}
	return archetype
}

// Delete removes the entity. Unknown or already deleted IDs are ignored,
// including IDs whose slot has since been reused.
func (s *Storage) Delete(id EntityId) {
	if archetype := s.live(id); archetype != nil {
		archetype.delete(id)
	}
}

// Alive reports whether id still names an entity.
func (s *Storage) Alive(id EntityId) bool {
	return s.live(id) != nil
}

// live returns the archetype holding id, or nil when id is stale or unknown.
func (s *Storage) live(id EntityId) *Archetype {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !archetype.alive(id) {
		return nil
	}
	return archetype
}

// AddComponent moves the entity into the archetype that also holds the new
// component and returns its new ID. Refs follow the move.
func (s *Storage) AddComponent(id EntityId, component any) EntityId {
	old := s.live(id)
	if old == nil {
		return 0
	}
	added := componentType(component)

	types := make([]reflect.Type, 0, len(old.types)+1)
	types = append(types, old.types...)
	types = append(types, added)
	sortTypes(types)

	components := make([]any, 0, len(types))
	for _, t := range types {
		if t == added {
			components = append(components, component)
			continue
		}
		components = append(components, old.GetComponent(id.Index(), t))
	}
	return s.move(id, old, types, components)
}

// RemoveComponent moves the entity into the archetype without compType.
// Removing the last component deletes the entity and returns 0.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) EntityId {
	old := s.live(id)
	if old == nil {
		return 0
	}

	types := make([]reflect.Type, 0, len(old.types))
	for _, t := range old.types {
		if t != compType {
			types = append(types, t)
		}
	}
	if len(types) == 0 {
		old.delete(id)
		return 0
	}

	components := make([]any, 0, len(types))
	for _, t := range types {
		components = append(components, old.GetComponent(id.Index(), t))
	}
	return s.move(id, old, types, components)
}

func (s *Storage) move(id EntityId, old *Archetype, types []reflect.Type, components []any) EntityId {
	dst := s.archetypeFor(types)
	newId := dst.spawn(components)
	old.moveRef(id, dst, newId)
	old.delete(id)
	return newId
}

// GetComponent returns a pointer to the entity's component of compType, or
// nil when the entity is gone or has no such component.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype := s.live(id)
	if archetype == nil {
		return nil
	}
	return archetype.GetComponent(id.Index(), compType)
}

// HasComponent reports whether the live entity id has a compType component.
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype := s.live(id)
	return archetype != nil && archetype.HasComponent(compType)
}

// CreateEntityRef returns the ref tracking id, creating it if needed. It
// returns nil when id no longer names a live entity.
func (s *Storage) CreateEntityRef(id EntityId) *EntityRef {
	archetype := s.live(id)
	if archetype == nil {
		return nil
	}
	if wp, ok := archetype.refs.Get(id); ok {
		if ref := wp.Value(); ref != nil {
			return ref
		}
		archetype.refs.Del(id)
	}
	ref := &EntityRef{}
	archetype.bindRef(ref, id)
	return ref
}

// ResolveEntityRef returns the ref's current ID, or false when it is unbound
// or its entity was deleted.
func (s *Storage) ResolveEntityRef(ref *EntityRef) (EntityId, bool) {
	if !ref.Valid() {
		return 0, false
	}
	return ref.Id, true
}

// AddSingleton stores value as the world-wide instance of its type,
// replacing any previous one. Singletons need no registration.
func (s *Storage) AddSingleton(value any) {
	t := reflect.TypeOf(value)
	v := reflect.New(t)
	v.Elem().Set(reflect.ValueOf(value))
	s.singletons[t] = &singletonEntry{value: v, dataPtr: v.UnsafePointer()}
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

// ReadSingleton points *target at the stored singleton of type T.
// target must be a **T. It reports false and leaves target alone when no
// such singleton exists.
func (s *Storage) ReadSingleton(target any) bool {
	ptr := reflect.ValueOf(target)
	if ptr.Kind() != reflect.Ptr || ptr.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton target must be a pointer to a pointer")
	}
	entry := s.singletons[ptr.Elem().Type().Elem()]
	if entry == nil {
		return false
	}
	ptr.Elem().Set(entry.value)
	return true
}

// componentType resolves the stored type of a component value, looking
// through one level of pointer.
func componentType(comp any) reflect.Type {
	t := reflect.TypeOf(comp)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		t := componentType(comp)
		switch t.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}
		types = append(types, t)
	}
	sortTypes(types)
	return types
}

func sortTypes(types []reflect.Type) {
	sort.Slice(types, func(i, j int) bool {
		return types[i].String() < types[j].String()
	})
}

// hashTypesToUint32 is FNV-1a over the runtime type pointers of an already
// sorted type list.
func hashTypesToUint32(types []reflect.Type) uint32 {
	const prime uint32 = 16777619
	h := uint32(2166136261)

	for _, t := range types {
		ptr := uintptr(ifaceData(t))
		val := uint32(ptr)
		if unsafe.Sizeof(ptr) == 8 {
			val ^= uint32(uint64(ptr) >> 32)
		}
		h ^= val
		h *= prime
	}
	return h
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's T, or nil if it has none.
func ReadComponent[T any](reader ComponentReader, id EntityId) *T {
	comp, _ := reader.GetComponent(id, reflect.TypeFor[T]()).(*T)
	return comp
}
