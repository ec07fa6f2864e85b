package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Body is a 3D body with position, velocity, and AABB (from scale).
// Static bodies are not integrated and ignore gravity; they can still be moved directly each frame
// (the lens probe follows the camera that way). Trigger bodies never take part in collision
// response and only report overlap enter/exit.
type Body struct {
	Name     string
	Tag      string
	Position rl.Vector3
	Velocity rl.Vector3
	Scale    rl.Vector3
	// Yaw is the rotation about +Y in radians. Forward is +Z at yaw 0.
	Yaw     float32
	Mass    float32
	Static  bool
	Trigger bool
}

// NewBody returns a solid body with the given position and scale. Velocity is zero.
// mass is used for collision response; use 1 for default.
func NewBody(name string, position, scale rl.Vector3, mass float32, static bool) *Body {
	if mass <= 0 {
		mass = 1
	}
	return &Body{
		Name:     name,
		Position: position,
		Scale:    scale,
		Mass:     mass,
		Static:   static,
	}
}

// NewTrigger returns a static trigger volume tagged with tag.
func NewTrigger(name, tag string, position, scale rl.Vector3, yaw float32) *Body {
	b := NewBody(name, position, scale, 1, true)
	b.Tag = tag
	b.Trigger = true
	b.Yaw = yaw
	return b
}

// Bounds returns the world AABB around the yawed box: center Position, half extents Scale/2.
// A zero scale axis counts as 1.
func (b *Body) Bounds() rl.BoundingBox {
	s := b.Scale
	if s.X == 0 {
		s.X = 1
	}
	if s.Y == 0 {
		s.Y = 1
	}
	if s.Z == 0 {
		s.Z = 1
	}
	half := rl.Vector3Scale(s, 0.5)
	if b.Yaw != 0 {
		c, sn := math32.Abs(math32.Cos(b.Yaw)), math32.Abs(math32.Sin(b.Yaw))
		half = rl.NewVector3(c*half.X+sn*half.Z, half.Y, sn*half.X+c*half.Z)
	}
	return rl.NewBoundingBox(rl.Vector3Subtract(b.Position, half), rl.Vector3Add(b.Position, half))
}

// BoundsCenter returns the center of Bounds.
func (b *Body) BoundsCenter() rl.Vector3 {
	box := b.Bounds()
	return rl.Vector3Scale(rl.Vector3Add(box.Min, box.Max), 0.5)
}

// Forward returns the horizontal unit vector the body faces.
func (b *Body) Forward() rl.Vector3 {
	return rl.NewVector3(math32.Sin(b.Yaw), 0, math32.Cos(b.Yaw))
}
