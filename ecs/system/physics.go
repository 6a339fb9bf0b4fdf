package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

const boundsRadius = 2.0

// PhysicsSystem integrates character velocities in a zero-gravity Chipmunk
// space. It runs once per fixed step.
type PhysicsSystem struct {
	space  *cp.Space
	bodies map[ecs.Entity]*bodyInfo
	bounds []*cp.Shape
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	static bool
}

func NewPhysicsSystem() *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})
	return &PhysicsSystem{
		space:  space,
		bodies: make(map[ecs.Entity]*bodyInfo),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// SetBounds walls in the rectangle (0,0)-(width,height).
func (ps *PhysicsSystem) SetBounds(width, height float64) {
	if ps == nil || ps.space == nil {
		return
	}
	for _, s := range ps.bounds {
		ps.space.RemoveShape(s)
	}
	ps.bounds = nil
	if width <= 0 || height <= 0 {
		return
	}

	corners := []cp.Vector{{X: 0, Y: 0}, {X: width, Y: 0}, {X: width, Y: height}, {X: 0, Y: height}}
	for i := range corners {
		a := corners[i]
		b := corners[(i+1)%len(corners)]
		seg := cp.NewSegment(ps.space.StaticBody, a, b, boundsRadius)
		seg.SetFriction(0)
		ps.space.AddShape(seg)
		ps.bounds = append(ps.bounds, seg)
	}
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || ps.space == nil || w == nil {
		return
	}

	dt := 1.0 / DefaultFixedHz
	if c := Clock(w); c != nil && c.FixedDelta > 0 {
		dt = c.FixedDelta
	}

	ps.syncEntities(w)
	ps.applyVelocities(w)
	ps.space.Step(dt)
	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	for e, info := range ps.bodies {
		if ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		ps.removeBody(info)
		delete(ps.bodies, e)
	}

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if _, ok := ps.bodies[e]; ok {
			return
		}
		ps.bodies[e] = ps.createBody(pb, t)
	})
}

func (ps *PhysicsSystem) createBody(pb *component.PhysicsBody, t *component.Transform) *bodyInfo {
	var body *cp.Body
	if pb.Static {
		body = cp.NewStaticBody()
	} else {
		mass := pb.Mass
		if mass <= 0 {
			mass = 1
		}
		// Infinite moment keeps characters upright.
		body = cp.NewBody(mass, math.Inf(1))
	}
	body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
	ps.space.AddBody(body)

	var shape *cp.Shape
	if pb.Radius > 0 {
		shape = cp.NewCircle(body, pb.Radius, cp.Vector{})
	} else {
		width := math.Max(pb.Width, 1)
		height := math.Max(pb.Height, 1)
		shape = cp.NewBox(body, width, height, 0)
	}
	shape.SetFriction(pb.Friction)
	shape.SetSensor(pb.Sensor)
	ps.space.AddShape(shape)

	pb.Body = body
	pb.Shape = shape
	return &bodyInfo{body: body, shape: shape, static: pb.Static}
}

func (ps *PhysicsSystem) removeBody(info *bodyInfo) {
	if info == nil {
		return
	}
	if info.shape != nil {
		ps.space.RemoveShape(info.shape)
	}
	if info.body != nil {
		ps.space.RemoveBody(info.body)
	}
}

func (ps *PhysicsSystem) applyVelocities(w *ecs.World) {
	ecs.ForEach2(w, component.VelocityComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, v *component.Velocity, pb *component.PhysicsBody) {
		if pb.Body == nil || pb.Static {
			return
		}
		pb.Body.SetVelocityVector(cp.Vector{X: v.X, Y: v.Y})
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.bodies {
		if info.static {
			continue
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := info.body.Position()
		t.X = pos.X
		t.Y = pos.Y
		info.body.SetAngle(0)
		info.body.SetAngularVelocity(0)
	}
}
