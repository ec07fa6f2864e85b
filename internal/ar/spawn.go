package ar

import (
	"cagedworld/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// WorldSpawner places the portal as a tagged trigger body in a physics world. The volume's base
// sits on the spawn position.
type WorldSpawner struct {
	World *physics.World
	Tag   string
	Size  rl.Vector3
}

// Spawn adds the portal trigger to the world.
func (s *WorldSpawner) Spawn(position rl.Vector3, yaw float32) *physics.Body {
	center := position
	center.Y += s.Size.Y * 0.5
	b := physics.NewTrigger("portal", s.Tag, center, s.Size, yaw)
	s.World.AddBody(b)
	return b
}

// Despawn removes b from the world, closing any overlap it still has.
func (s *WorldSpawner) Despawn(b *physics.Body) {
	s.World.RemoveBody(b)
}
