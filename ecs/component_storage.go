package ecs

import (
	"iter"
	"reflect"
)

// componentColumn is the type-erased view of one component type's slots
// inside an archetype.
type componentColumn interface {
	Append(item any) int
	Delete(index int)
	Get(index int) any
	Has(index int) bool
	Len() int
	Iter() iter.Seq[int]
}

// ComponentRegistry maps component types to column factories. Each Storage
// owns one, so independent worlds never share type registrations.
type ComponentRegistry struct {
	factories map[reflect.Type]func() componentColumn
}

func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() componentColumn),
	}
}

// RegisterComponent makes T usable as a component. Spawning an entity with
// an unregistered type panics.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() componentColumn {
		return &column[T]{}
	}
}

func (r *ComponentRegistry) factory(t reflect.Type) func() componentColumn {
	return r.factories[t]
}

const blockSize = 64

// column stores values of T in separately allocated fixed-size blocks so
// pointers handed out by Get stay valid while the column grows. Freed slots go on a free list and
// are handed back out by Append before the column grows.
type column[T any] struct {
	blocks    []*[blockSize]T
	filled    [][blockSize]bool
	freeSlots []int
	nextIndex int
}

func (c *column[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return -1
	}

	var index int
	if n := len(c.freeSlots); n > 0 {
		index = c.freeSlots[n-1]
		c.freeSlots = c.freeSlots[:n-1]
	} else {
		index = c.nextIndex
		c.nextIndex++
		if index/blockSize >= len(c.blocks) {
			c.blocks = append(c.blocks, new([blockSize]T))
			c.filled = append(c.filled, [blockSize]bool{})
		}
	}

	c.blocks[index/blockSize][index%blockSize] = value
	c.filled[index/blockSize][index%blockSize] = true
	return index
}

func (c *column[T]) inRange(index int) bool {
	return index >= 0 && index/blockSize < len(c.blocks)
}

// Get returns a *T for the slot, or nil when the slot is empty.
func (c *column[T]) Get(index int) any {
	if !c.inRange(index) || !c.filled[index/blockSize][index%blockSize] {
		return nil
	}
	return &c.blocks[index/blockSize][index%blockSize]
}

func (c *column[T]) Delete(index int) {
	if !c.inRange(index) {
		return
	}
	b, s := index/blockSize, index%blockSize
	if !c.filled[b][s] {
		return
	}
	var zero T
	c.blocks[b][s] = zero
	c.filled[b][s] = false
	c.freeSlots = append(c.freeSlots, index)
}

func (c *column[T]) Has(index int) bool {
	return c.inRange(index) && c.filled[index/blockSize][index%blockSize]
}

// Len is the number of occupied slots.
func (c *column[T]) Len() int {
	return c.nextIndex - len(c.freeSlots)
}

func (c *column[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < c.nextIndex; i++ {
			if !c.filled[i/blockSize][i%blockSize] {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}
