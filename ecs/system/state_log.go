package system

import (
	"log"

	"github.com/milk9111/locomotion/ecs"
)

// StateLogSystem writes locomotion events to a logger. Schedule it last in
// the render phase so it sees the whole frame.
type StateLogSystem struct {
	logger *log.Logger
}

// NewStateLogSystem logs to l, or the standard logger when l is nil.
func NewStateLogSystem(l *log.Logger) *StateLogSystem {
	if l == nil {
		l = log.Default()
	}
	return &StateLogSystem{logger: l}
}

func (s *StateLogSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	now := w.Clock().Now()
	for _, evt := range w.Events().Peek() {
		switch evt.Type {
		case ecs.EventStateChanged:
			sc, ok := evt.Data.(ecs.StateChanged)
			if !ok {
				continue
			}
			s.logger.Printf("t=%v entity=%s %s -> %s", now, sc.Entity, sc.From, sc.To)
		case ecs.EventJumped, ecs.EventLanded:
			e, _ := evt.Data.(ecs.Entity)
			s.logger.Printf("t=%v entity=%s %s", now, e, evt.Type)
		}
	}
}
