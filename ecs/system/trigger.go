package system

import (
	"sort"

	"github.com/milk9111/hearthlight/ecs"
	"github.com/milk9111/hearthlight/ecs/component"
)

// TriggerSystem keeps trigger volumes in step with their transforms and
// emits enter and exit events when characters cross them. Events are visible
// to every system later in the same frame.
type TriggerSystem struct{}

func NewTriggerSystem() *TriggerSystem {
	return &TriggerSystem{}
}

func (s *TriggerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	pw := w.PhysicsWorld()
	events := w.Events()

	ecs.ForEach2(w, component.TriggerComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, trig *component.Trigger, tr *component.Transform) {
		pw.SetVolumeCenter(e, tr.Position.Add(trig.Offset))
		pw.SetVolumeEnabled(e, trig.Enabled)
		if !trig.Enabled {
			trig.Inside = nil
			return
		}

		now := pw.Overlapping(e)
		for _, evt := range DiffOverlaps(e, trig.Inside, now) {
			events.Push(ecs.Event{Type: ecs.EventTrigger, Data: evt})
		}
		trig.Inside = trig.Inside[:0]
		for _, other := range now {
			trig.Inside = append(trig.Inside, uint64(other))
		}
	})
}

// DiffOverlaps returns the exits, then the enters, between two overlap sets.
func DiffOverlaps(trigger ecs.Entity, before []uint64, now []ecs.Entity) []ecs.TriggerEvent {
	current := make(map[ecs.Entity]bool, len(now))
	for _, e := range now {
		current[e] = true
	}
	previous := make(map[ecs.Entity]bool, len(before))
	var out []ecs.TriggerEvent
	for _, id := range before {
		e := ecs.Entity(id)
		previous[e] = true
		if !current[e] {
			out = append(out, ecs.TriggerEvent{Trigger: trigger, Other: e, Kind: ecs.TriggerExit})
		}
	}
	for _, e := range now {
		if !previous[e] {
			out = append(out, ecs.TriggerEvent{Trigger: trigger, Other: e, Kind: ecs.TriggerEnter})
		}
	}
	return out
}

// isPlayer reports whether e is tagged as the player.
func isPlayer(w *ecs.World, e ecs.Entity) bool {
	return ecs.Has(w, e, component.PlayerTagComponent.Kind())
}

func sortEntities(es []ecs.Entity) {
	sort.Slice(es, func(i, j int) bool { return es[i] < es[j] })
}
