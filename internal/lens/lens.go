package lens

import (
	"cagedworld/internal/crossing"
	"cagedworld/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// DefaultTag is the collider tag the probe reacts to.
const DefaultTag = "Portal"

// Handler is what the probe calls for each portal overlap transition.
type Handler interface {
	OnLensTriggeringPortal(lens rl.Vector3, portal crossing.Collider, onExit bool)
}

// Probe is the small trigger volume attached to the viewer. Only bodies tagged Tag are forwarded;
// everything else it touches is ignored.
type Probe struct {
	Body    *physics.Body
	Tag     string
	handler Handler
}

// New returns a probe of the given edge length at position. An empty tag means DefaultTag.
func New(position rl.Vector3, size float32, tag string) *Probe {
	if tag == "" {
		tag = DefaultTag
	}
	body := physics.NewBody("lens", position, rl.NewVector3(size, size, size), 1, true)
	body.Trigger = true
	return &Probe{Body: body, Tag: tag}
}

// Attach adds the probe body to world and routes its trigger events to h.
func (p *Probe) Attach(world *physics.World, h Handler) {
	p.handler = h
	world.AddBody(p.Body)
	world.OnTrigger(p.onTrigger)
}

// Follow moves the probe to the viewer position. Call before the physics step.
func (p *Probe) Follow(position rl.Vector3) {
	p.Body.Position = position
}

// Position is the probe's current world position.
func (p *Probe) Position() rl.Vector3 {
	return p.Body.Position
}

func (p *Probe) onTrigger(ev physics.TriggerEvent) {
	if ev.Self != p.Body || ev.Other.Tag != p.Tag || p.handler == nil {
		return
	}
	p.handler.OnLensTriggeringPortal(p.Body.Position, ev.Other, ev.Kind == physics.TriggerExit)
}
