package ar

import (
	"cagedworld/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"
)

// Plane is a detected horizontal surface. Size is the extent on X and Z.
type Plane struct {
	ID       uuid.UUID
	Center   rl.Vector3
	Size     rl.Vector2
	Disabled bool
	Muted    bool
}

// NewPlane returns an active plane with a fresh ID.
func NewPlane(center rl.Vector3, size rl.Vector2) *Plane {
	return &Plane{ID: uuid.New(), Center: center, Size: size}
}

// Mute keeps the plane but draws it with the disabled material.
func (p *Plane) Mute() { p.Muted = true }

// Disable hides the plane and removes it from hit testing.
func (p *Plane) Disable() { p.Disabled = true }

// Corners returns the quad corners in winding order for ray tests and drawing.
func (p *Plane) Corners() [4]rl.Vector3 {
	hx, hz := p.Size.X*0.5, p.Size.Y*0.5
	c := p.Center
	return [4]rl.Vector3{
		rl.NewVector3(c.X-hx, c.Y, c.Z-hz),
		rl.NewVector3(c.X-hx, c.Y, c.Z+hz),
		rl.NewVector3(c.X+hx, c.Y, c.Z+hz),
		rl.NewVector3(c.X+hx, c.Y, c.Z-hz),
	}
}

// PlaneProvider exposes the detected planes.
type PlaneProvider interface {
	Planes() []*Plane
	Plane(id uuid.UUID) (*Plane, bool)
	SetEnabled(enabled bool)
	Enabled() bool
}

// Phase is the touch phase of a pointer sample.
type Phase int

const (
	PhaseBegan Phase = iota
	PhaseMoved
	PhaseEnded
)

// Pointer is one screen-space pointer sample.
type Pointer struct {
	Position rl.Vector2
	Phase    Phase
}

// PointerProvider returns at most one pointer sample per tick.
type PointerProvider interface {
	Poll() (Pointer, bool)
}

// TrackableType filters what a raycast may hit. Values combine as a bit set.
type TrackableType int

const (
	// PlaneWithinPolygon hits only inside a plane's detected extent.
	PlaneWithinPolygon TrackableType = 1 << iota
	// PlaneWithinInfinity hits a plane's infinite extension.
	PlaneWithinInfinity
)

// Pose is a world-space hit pose. Planes are horizontal so only position matters.
type Pose struct {
	Position rl.Vector3
}

// Hit is a ranked raycast result.
type Hit struct {
	PlaneID  uuid.UUID
	Pose     Pose
	Distance float32
}

// HitTester raycasts a screen position against detected planes, nearest first.
type HitTester interface {
	Raycast(screen rl.Vector2, filter TrackableType) []Hit
}

// Spawner instantiates the portal at a world pose and removes it when the session ends.
type Spawner interface {
	Spawn(position rl.Vector3, yaw float32) *physics.Body
	Despawn(b *physics.Body)
}
