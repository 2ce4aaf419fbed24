package ecs

// EntityId packs the archetype ID into the upper 32 bits, the slot
// generation into the next 8 and the slot index into the low 24. The zero
// value never names a live entity.
//
// A slot's generation is bumped every time it is freed, so an ID kept past
// its entity's deletion stops matching once the slot is reused. Generations
// wrap after 256 reuses of the same slot.
type EntityId uint64

const (
	indexBits = 24
	indexMask = 1<<indexBits - 1

	// MaxEntitiesPerArchetype bounds the slot index.
	MaxEntitiesPerArchetype = 1 << indexBits
)

func NewEntityId(archetypeId uint32, index uint32, generation uint8) EntityId {
	return EntityId(uint64(archetypeId)<<32 | uint64(generation)<<indexBits | uint64(index&indexMask))
}

func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

// Index is the slot inside the archetype's columns.
func (e EntityId) Index() uint32 {
	return uint32(e & indexMask)
}

func (e EntityId) Generation() uint8 {
	return uint8(e >> indexBits)
}

// EntityRef is a handle that follows an entity across archetype moves.
// Deleting the entity zeroes Id, and a ref handed out by Commands.Spawn stays
// zero until the command buffer is flushed.
type EntityRef struct {
	Id        EntityId
	Archetype *Archetype
}

// Valid reports whether the ref currently names a live entity.
func (r *EntityRef) Valid() bool {
	return r != nil && r.Id != 0
}
