package system

import (
	"github.com/milk9111/hearthlight/common"
	"github.com/milk9111/hearthlight/ecs"
	"github.com/milk9111/hearthlight/ecs/component"
)

// maxAttachmentDepth bounds parent chains so a cycle cannot recurse forever.
const maxAttachmentDepth = 16

// AttachmentSystem derives the world transform of every parented entity
// from its parent chain.
type AttachmentSystem struct{}

func NewAttachmentSystem() *AttachmentSystem {
	return &AttachmentSystem{}
}

func (s *AttachmentSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	resolved := make(map[ecs.Entity]bool)
	ecs.ForEach2(w, component.ParentComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Parent, _ *component.Transform) {
		resolveAttachment(w, e, resolved, 0)
	})
}

func resolveAttachment(w *ecs.World, e ecs.Entity, resolved map[ecs.Entity]bool, depth int) {
	if resolved[e] || depth > maxAttachmentDepth {
		return
	}
	resolved[e] = true

	p, ok := ecs.Get(w, e, component.ParentComponent.Kind())
	if !ok {
		return
	}
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	parent := ecs.Entity(p.Entity)
	resolveAttachment(w, parent, resolved, depth+1)

	parentTr, ok := ecs.Get(w, parent, component.TransformComponent.Kind())
	if !ok {
		return
	}
	ApplyParent(tr, parentTr, p)
}

// ApplyParent writes the world transform of a child attached to parent.
func ApplyParent(child, parent *component.Transform, p *component.Parent) {
	yaw := common.Euler(0, parent.Yaw, 0)
	child.Position = parent.Position.Add(yaw.Rotate(p.LocalPosition))
	child.Pitch = p.LocalPitch
	child.Yaw = common.NormalizeAngle(parent.Yaw + p.LocalYaw)
	child.Roll = p.LocalRoll
}

// Attach parents child to parent with an identity local pose and snaps the
// child onto the parent immediately.
func Attach(w *ecs.World, child, parent ecs.Entity) error {
	p := &component.Parent{Entity: uint64(parent)}
	if err := ecs.Add(w, child, component.ParentComponent.Kind(), p); err != nil {
		return err
	}
	tr, ok := ecs.Get(w, child, component.TransformComponent.Kind())
	if !ok {
		return nil
	}
	if parentTr, ok := ecs.Get(w, parent, component.TransformComponent.Kind()); ok {
		ApplyParent(tr, parentTr, p)
	}
	return nil
}

// Detach removes child from its parent, leaving its world transform as is.
func Detach(w *ecs.World, child ecs.Entity) {
	ecs.Remove(w, child, component.ParentComponent.Kind())
}

// Children returns the entities directly attached to parent, in entity order.
func Children(w *ecs.World, parent ecs.Entity) []ecs.Entity {
	var out []ecs.Entity
	ecs.ForEach(w, component.ParentComponent.Kind(), func(e ecs.Entity, p *component.Parent) {
		if ecs.Entity(p.Entity) == parent {
			out = append(out, e)
		}
	})
	sortEntities(out)
	return out
}

// FindChild searches the descendants of parent, breadth first, for an
// entity with the given name.
func FindChild(w *ecs.World, parent ecs.Entity, name string) (ecs.Entity, bool) {
	queue := Children(w, parent)
	seen := make(map[ecs.Entity]bool)
	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]
		if seen[e] {
			continue
		}
		seen[e] = true
		if n, ok := ecs.Get(w, e, component.NameComponent.Kind()); ok && n.Value == name {
			return e, true
		}
		queue = append(queue, Children(w, e)...)
	}
	return 0, false
}

// FindByName returns the lowest entity carrying the given name.
func FindByName(w *ecs.World, name string) (ecs.Entity, bool) {
	var found ecs.Entity
	ok := false
	ecs.ForEach(w, component.NameComponent.Kind(), func(e ecs.Entity, n *component.Name) {
		if n.Value != name {
			return
		}
		if !ok || e < found {
			found, ok = e, true
		}
	})
	return found, ok
}
