package ecs

import (
	"time"

	"github.com/milk9111/locomotion/ecs/component"
)

// World owns entities, their component stores, the frame event queue and the
// simulation clock.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue
	clock    Clock

	fixedStep  time.Duration
	frameDelta time.Duration
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Clock returns the simulation clock advanced by the Dispatcher.
func (w *World) Clock() *Clock {
	if w == nil {
		return nil
	}
	return &w.clock
}

// FixedStep is the duration of one physics tick.
func (w *World) FixedStep() time.Duration {
	if w == nil {
		return 0
	}
	return w.fixedStep
}

// FrameDelta is the wall time covered by the current frame.
func (w *World) FrameDelta() time.Duration {
	if w == nil {
		return 0
	}
	return w.frameDelta
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if w.stores == nil {
		if !create {
			return nil
		}
		w.stores = make(map[component.ComponentID]*SparseSet)
	}
	s, ok := w.stores[id]
	if !ok && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}
