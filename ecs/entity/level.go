package entity

import (
	"fmt"

	"github.com/milk9111/hearthlight/ecs"
	"github.com/milk9111/hearthlight/ecs/component"
	"github.com/milk9111/hearthlight/levels"
)

// LoadLevelToWorld adds a level's blocks to the physics world and
// instantiates its prefabs. Name references between prefabs are resolved
// once every entity exists, so placement order does not matter.
func LoadLevelToWorld(world *ecs.World, lvl *levels.Level) error {
	if world == nil || lvl == nil {
		return fmt.Errorf("load level: world and level are required")
	}
	if world.PhysicsWorld() == nil {
		world.SetPhysicsWorld(ecs.NewPhysicsWorld())
	}
	pw := world.PhysicsWorld()

	for _, b := range lvl.Blocks {
		e := ecs.CreateEntity(world)
		block := &component.Block{Min: b.Min.Vec(), Max: b.Max.Vec(), Layer: uint(ecs.LayerDefault)}
		if err := ecs.Add(world, e, component.BlockComponent.Kind(), block); err != nil {
			return fmt.Errorf("load level %s: block: %w", lvl.Name, err)
		}
		pw.AddBlock(e, block.Min, block.Max, ecs.Layer(block.Layer))
	}

	links := &linker{}
	for _, placed := range lvl.Entities {
		placement := Placement{Name: placed.Name, Yaw: placed.Yaw}
		if placed.Position != nil {
			pos := placed.Position.Vec()
			placement.Position = &pos
		}
		if _, err := buildEntity(world, placed.Prefab, placement, links); err != nil {
			return fmt.Errorf("load level %s: %w", lvl.Name, err)
		}
	}
	links.resolve(world)
	return nil
}

// LoadLevel reads a level by name and loads it into world.
func LoadLevel(world *ecs.World, name string) (*levels.Level, error) {
	lvl, err := levels.LoadLevelFromFS(name)
	if err != nil {
		return nil, err
	}
	if err := LoadLevelToWorld(world, lvl); err != nil {
		return nil, err
	}
	return lvl, nil
}
