package ecs

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

// Layer is a collision category bit.
type Layer uint

const (
	LayerDefault Layer = 1 << iota
	LayerPlayer
	LayerItem
	LayerTrigger
)

// solidMask selects every block layer. Characters, items and trigger
// volumes never obstruct movement.
var solidMask = cp.ALL_CATEGORIES &^ uint(LayerPlayer|LayerItem|LayerTrigger)

const (
	// horizontal moves are split so no substep travels further than this
	// fraction of the character radius
	moveSubstep   = 0.5
	resolvePasses = 4
	skinWidth     = 1e-4
	rayEpsilon    = 1e-3
)

// Block is an axis-aligned static box.
type Block struct {
	Entity Entity
	Min    mgl64.Vec3
	Max    mgl64.Vec3
	Layer  Layer
}

// RaycastHit describes the first surface a downward ray touched.
type RaycastHit struct {
	Entity   Entity
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
}

// solid is attached to block shapes. The cp shape holds the footprint on the
// XZ plane (cp X = world X, cp Y = world Z); the height range lives here.
type solid struct {
	entity      Entity
	bottom, top float64
}

type character struct {
	entity     Entity
	body       *cp.Body
	shape      *cp.Shape
	y          float64
	radius     float64
	height     float64
	stepOffset float64
	layer      Layer
	grounded   bool
}

type volume struct {
	entity      Entity
	body        *cp.Body
	shape       *cp.Shape
	bottom, top float64
	enabled     bool
}

// PhysicsWorld resolves character movement against static blocks and tracks
// trigger volumes. Chipmunk provides the spatial index and 2D shape queries;
// heights are handled on top of it.
type PhysicsWorld struct {
	space      *cp.Space
	blocks     []Block
	characters map[Entity]*character
	volumes    map[Entity]*volume
}

// NewPhysicsWorld creates an empty physics world.
func NewPhysicsWorld() *PhysicsWorld {
	return &PhysicsWorld{
		space:      cp.NewSpace(),
		characters: make(map[Entity]*character),
		volumes:    make(map[Entity]*volume),
	}
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// AddBlock adds a static box spanning min..max.
func (pw *PhysicsWorld) AddBlock(e Entity, min, max mgl64.Vec3, layer Layer) {
	if pw == nil {
		return
	}
	lo := mgl64.Vec3{math.Min(min.X(), max.X()), math.Min(min.Y(), max.Y()), math.Min(min.Z(), max.Z())}
	hi := mgl64.Vec3{math.Max(min.X(), max.X()), math.Max(min.Y(), max.Y()), math.Max(min.Z(), max.Z())}
	if layer == 0 {
		layer = LayerDefault
	}

	shape := cp.NewBox2(pw.space.StaticBody, cp.BB{L: lo.X(), B: lo.Z(), R: hi.X(), T: hi.Z()}, 0)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(layer), cp.ALL_CATEGORIES))
	shape.UserData = &solid{entity: e, bottom: lo.Y(), top: hi.Y()}
	pw.space.AddShape(shape)

	pw.blocks = append(pw.blocks, Block{Entity: e, Min: lo, Max: hi, Layer: layer})
}

// Blocks returns the static boxes in insertion order.
func (pw *PhysicsWorld) Blocks() []Block {
	if pw == nil {
		return nil
	}
	return pw.blocks
}

// AddCharacter registers an upright cylinder whose feet sit at position.
func (pw *PhysicsWorld) AddCharacter(e Entity, position mgl64.Vec3, radius, height, stepOffset float64, layer Layer) {
	if pw == nil || radius <= 0 {
		return
	}
	pw.Remove(e)
	if layer == 0 {
		layer = LayerDefault
	}

	body := cp.NewKinematicBody()
	body.SetPosition(cp.Vector{X: position.X(), Y: position.Z()})
	pw.space.AddBody(body)

	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetSensor(true)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(layer), cp.ALL_CATEGORIES))

	c := &character{
		entity:     e,
		body:       body,
		shape:      shape,
		y:          position.Y(),
		radius:     radius,
		height:     height,
		stepOffset: stepOffset,
		layer:      layer,
	}
	shape.UserData = c
	body.UserData = c
	pw.space.AddShape(shape)
	pw.characters[e] = c
}

// HasCharacter reports whether e was registered with AddCharacter.
func (pw *PhysicsWorld) HasCharacter(e Entity) bool {
	if pw == nil {
		return false
	}
	_, ok := pw.characters[e]
	return ok
}

// CharacterPosition returns the feet position of a character.
func (pw *PhysicsWorld) CharacterPosition(e Entity) (mgl64.Vec3, bool) {
	if pw == nil {
		return mgl64.Vec3{}, false
	}
	c, ok := pw.characters[e]
	if !ok {
		return mgl64.Vec3{}, false
	}
	return c.position(), true
}

// SetCharacterPosition teleports a character without collision.
func (pw *PhysicsWorld) SetCharacterPosition(e Entity, position mgl64.Vec3) {
	if pw == nil {
		return
	}
	c, ok := pw.characters[e]
	if !ok {
		return
	}
	c.y = position.Y()
	c.grounded = false
	pw.place(c.shape, cp.Vector{X: position.X(), Y: position.Z()})
}

// Grounded reports whether the last Move of e ended on a supporting surface.
func (pw *PhysicsWorld) Grounded(e Entity) bool {
	if pw == nil {
		return false
	}
	c, ok := pw.characters[e]
	return ok && c.grounded
}

// Move displaces a character, sliding along blocks it would walk into and
// landing on blocks below it. It returns the resolved feet position and
// whether the character ended up grounded.
func (pw *PhysicsWorld) Move(e Entity, displacement mgl64.Vec3) (mgl64.Vec3, bool) {
	if pw == nil {
		return mgl64.Vec3{}, false
	}
	c, ok := pw.characters[e]
	if !ok {
		return mgl64.Vec3{}, false
	}

	center := c.body.Position()
	horizontal := cp.Vector{X: displacement.X(), Y: displacement.Z()}
	steps := int(math.Ceil(horizontal.Length() / (c.radius * moveSubstep)))
	if steps < 1 {
		steps = 1
	}
	step := horizontal.Mult(1 / float64(steps))
	for i := 0; i < steps; i++ {
		center = pw.pushOut(c, center.Add(step))
	}

	dy := displacement.Y()
	y := c.y + dy
	grounded := false
	if dy <= 0 {
		if support, ok := pw.supportHeight(c, center); ok && y <= support {
			y = support
			grounded = true
		}
	} else if ceiling, ok := pw.ceilingHeight(c, center); ok && y+c.height > ceiling {
		y = math.Max(c.y, ceiling-c.height)
	}

	c.y = y
	c.grounded = grounded
	pw.place(c.shape, center)
	return c.position(), grounded
}

// RaycastDown casts a ray straight down from origin for at most maxDistance
// and returns the highest surface hit. Shapes in exclude are ignored; trigger
// volumes never block the ray.
func (pw *PhysicsWorld) RaycastDown(origin mgl64.Vec3, maxDistance float64, exclude Layer) (RaycastHit, bool) {
	if pw == nil || maxDistance < 0 {
		return RaycastHit{}, false
	}
	pt := cp.Vector{X: origin.X(), Y: origin.Z()}
	bb := cp.BB{L: pt.X - rayEpsilon, B: pt.Y - rayEpsilon, R: pt.X + rayEpsilon, T: pt.Y + rayEpsilon}
	mask := cp.ALL_CATEGORIES &^ uint(exclude|LayerTrigger)
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, mask)

	var best RaycastHit
	found := false
	pw.space.BBQuery(bb, filter, func(shape *cp.Shape, _ interface{}) {
		if shape.PointQuery(pt).Distance > 0 {
			return
		}
		var top float64
		var owner Entity
		switch data := shape.UserData.(type) {
		case *solid:
			top, owner = data.top, data.entity
		case *character:
			top, owner = data.y+data.height, data.entity
		default:
			return
		}
		if top > origin.Y()+rayEpsilon || origin.Y()-top > maxDistance {
			return
		}
		if !found || top > best.Point.Y() {
			best = RaycastHit{
				Entity:   owner,
				Point:    mgl64.Vec3{origin.X(), top, origin.Z()},
				Normal:   mgl64.Vec3{0, 1, 0},
				Distance: origin.Y() - top,
			}
			found = true
		}
	}, nil)
	return best, found
}

// AddVolume registers a trigger box centered at center.
func (pw *PhysicsWorld) AddVolume(e Entity, center, halfExtents mgl64.Vec3) {
	if pw == nil {
		return
	}
	if old, ok := pw.volumes[e]; ok {
		pw.space.RemoveShape(old.shape)
		pw.space.RemoveBody(old.body)
	}

	body := cp.NewKinematicBody()
	body.SetPosition(cp.Vector{X: center.X(), Y: center.Z()})
	pw.space.AddBody(body)

	hx, hz := math.Abs(halfExtents.X()), math.Abs(halfExtents.Z())
	shape := cp.NewBox2(body, cp.BB{L: -hx, B: -hz, R: hx, T: hz}, 0)
	shape.SetSensor(true)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(LayerTrigger), cp.ALL_CATEGORIES))

	hy := math.Abs(halfExtents.Y())
	v := &volume{
		entity:  e,
		body:    body,
		shape:   shape,
		bottom:  center.Y() - hy,
		top:     center.Y() + hy,
		enabled: true,
	}
	shape.UserData = v
	pw.space.AddShape(shape)
	pw.volumes[e] = v
}

// SetVolumeCenter moves a trigger volume.
func (pw *PhysicsWorld) SetVolumeCenter(e Entity, center mgl64.Vec3) {
	if pw == nil {
		return
	}
	v, ok := pw.volumes[e]
	if !ok {
		return
	}
	half := (v.top - v.bottom) / 2
	v.bottom = center.Y() - half
	v.top = center.Y() + half
	p := cp.Vector{X: center.X(), Y: center.Z()}
	if v.body.Position() == p {
		return
	}
	pw.place(v.shape, p)
}

// SetVolumeEnabled turns overlap detection for a volume on or off.
func (pw *PhysicsWorld) SetVolumeEnabled(e Entity, enabled bool) {
	if pw == nil {
		return
	}
	if v, ok := pw.volumes[e]; ok {
		v.enabled = enabled
	}
}

// VolumeEnabled reports whether a registered volume is active.
func (pw *PhysicsWorld) VolumeEnabled(e Entity) bool {
	if pw == nil {
		return false
	}
	v, ok := pw.volumes[e]
	return ok && v.enabled
}

// Overlapping returns the characters currently inside a volume, ordered by
// entity.
func (pw *PhysicsWorld) Overlapping(e Entity) []Entity {
	if pw == nil {
		return nil
	}
	v, ok := pw.volumes[e]
	if !ok || !v.enabled {
		return nil
	}
	var out []Entity
	pw.space.ShapeQuery(v.shape, func(shape *cp.Shape, _ *cp.ContactPointSet) {
		c, ok := shape.UserData.(*character)
		if !ok {
			return
		}
		if c.y < v.top && c.y+c.height > v.bottom {
			out = append(out, c.entity)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Remove drops every shape registered for e.
func (pw *PhysicsWorld) Remove(e Entity) {
	if pw == nil {
		return
	}
	if c, ok := pw.characters[e]; ok {
		pw.space.RemoveShape(c.shape)
		pw.space.RemoveBody(c.body)
		delete(pw.characters, e)
	}
	if v, ok := pw.volumes[e]; ok {
		pw.space.RemoveShape(v.shape)
		pw.space.RemoveBody(v.body)
		delete(pw.volumes, e)
	}
}

// place moves a shape's body and reinserts the shape so spatial queries see
// the new bounds.
func (pw *PhysicsWorld) place(shape *cp.Shape, p cp.Vector) {
	pw.space.RemoveShape(shape)
	shape.Body().SetPosition(p)
	pw.space.AddShape(shape)
}

// pushOut separates a character circle from every block that overlaps its
// body above the step height.
func (pw *PhysicsWorld) pushOut(c *character, center cp.Vector) cp.Vector {
	lo := c.y + c.stepOffset
	hi := c.y + c.height
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, solidMask)

	for pass := 0; pass < resolvePasses; pass++ {
		moved := false
		pw.space.BBQuery(cp.NewBBForCircle(center, c.radius), filter, func(shape *cp.Shape, _ interface{}) {
			s, ok := shape.UserData.(*solid)
			if !ok || s.bottom >= hi || s.top <= lo {
				return
			}
			info := shape.PointQuery(center)
			if info.Distance >= c.radius {
				return
			}
			center = center.Add(info.Gradient.Mult(c.radius - info.Distance + skinWidth))
			moved = true
		}, nil)
		if !moved {
			break
		}
	}
	return center
}

// supportHeight returns the highest block top under the circle that the
// character can stand on.
func (pw *PhysicsWorld) supportHeight(c *character, center cp.Vector) (float64, bool) {
	limit := c.y + c.stepOffset
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, solidMask)
	best, found := 0.0, false
	pw.space.BBQuery(cp.NewBBForCircle(center, c.radius), filter, func(shape *cp.Shape, _ interface{}) {
		s, ok := shape.UserData.(*solid)
		if !ok || s.top > limit {
			return
		}
		if shape.PointQuery(center).Distance >= c.radius {
			return
		}
		if !found || s.top > best {
			best, found = s.top, true
		}
	}, nil)
	return best, found
}

func (pw *PhysicsWorld) ceilingHeight(c *character, center cp.Vector) (float64, bool) {
	head := c.y + c.height
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, solidMask)
	best, found := 0.0, false
	pw.space.BBQuery(cp.NewBBForCircle(center, c.radius), filter, func(shape *cp.Shape, _ interface{}) {
		s, ok := shape.UserData.(*solid)
		if !ok || s.bottom < head {
			return
		}
		if shape.PointQuery(center).Distance >= c.radius {
			return
		}
		if !found || s.bottom < best {
			best, found = s.bottom, true
		}
	}, nil)
	return best, found
}

func (c *character) position() mgl64.Vec3 {
	p := c.body.Position()
	return mgl64.Vec3{p.X, c.y, p.Y}
}
