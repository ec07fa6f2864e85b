package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// TriggerKind is the overlap transition reported for a trigger pair.
type TriggerKind int

const (
	// TriggerEnter fires on the first step a pair overlaps.
	TriggerEnter TriggerKind = iota
	// TriggerExit fires on the first step a pair stops overlapping, or when one side is removed.
	TriggerExit
)

// TriggerEvent is delivered to each side of a pair where at least one body is a trigger.
// Self is the receiving body and Other the body it overlaps.
type TriggerEvent struct {
	Kind  TriggerKind
	Self  *Body
	Other *Body
}

type pair struct {
	a, b *Body
}

// World holds a set of bodies and runs a simple 3D physics step: gravity, integration, AABB
// collision for solid bodies, then trigger overlap tracking.
type World struct {
	Gravity  rl.Vector3
	Bodies   []*Body
	contacts map[pair]bool
	handlers []func(TriggerEvent)
}

// NewWorld returns a new physics world with default gravity (0, -9.8, 0). The scene is Y-up.
func NewWorld() *World {
	return &World{
		Gravity:  rl.NewVector3(0, -9.8, 0),
		contacts: make(map[pair]bool),
	}
}

// SetGravity sets the gravity vector. AR scenes usually run with zero gravity.
func (w *World) SetGravity(g rl.Vector3) {
	w.Gravity = g
}

// AddBody appends a body to the world. Order is preserved and decides event order.
func (w *World) AddBody(b *Body) {
	w.Bodies = append(w.Bodies, b)
}

// RemoveBody drops b from the world. Open overlaps involving b are closed with exit events first.
func (w *World) RemoveBody(b *Body) {
	for _, other := range w.Bodies {
		if other == b {
			continue
		}
		p := w.key(b, other)
		if w.contacts[p] {
			delete(w.contacts, p)
			w.emitPair(TriggerExit, p.a, p.b)
		}
	}
	for i, other := range w.Bodies {
		if other == b {
			w.Bodies = append(w.Bodies[:i], w.Bodies[i+1:]...)
			break
		}
	}
}

// OnTrigger registers fn to receive trigger events. Handlers run synchronously inside Step.
func (w *World) OnTrigger(fn func(TriggerEvent)) {
	w.handlers = append(w.handlers, fn)
}

// Overlapping reports whether a and b currently have an open trigger overlap.
func (w *World) Overlapping(a, b *Body) bool {
	return w.contacts[w.key(a, b)]
}

// key orders a pair by insertion index so lookups do not depend on argument order.
func (w *World) key(a, b *Body) pair {
	for _, x := range w.Bodies {
		if x == a {
			return pair{a, b}
		}
		if x == b {
			return pair{b, a}
		}
	}
	return pair{a, b}
}

// penetrationAxis returns the overlap amount and axis index (0=X, 1=Y, 2=Z) for the minimum penetration.
// If no overlap, returns (0, -1).
func penetrationAxis(a, b rl.BoundingBox) (depth float32, axis int) {
	overlapX := min(a.Max.X, b.Max.X) - max(a.Min.X, b.Min.X)
	overlapY := min(a.Max.Y, b.Max.Y) - max(a.Min.Y, b.Min.Y)
	overlapZ := min(a.Max.Z, b.Max.Z) - max(a.Min.Z, b.Min.Z)
	if overlapX <= 0 || overlapY <= 0 || overlapZ <= 0 {
		return 0, -1
	}
	depth, axis = overlapX, 0
	if overlapY < depth {
		depth, axis = overlapY, 1
	}
	if overlapZ < depth {
		depth, axis = overlapZ, 2
	}
	return depth, axis
}

// overlaps is a strict AABB test: touching faces do not count, so a probe resting exactly on a
// trigger face does not flicker between enter and exit.
func overlaps(a, b rl.BoundingBox) bool {
	if !rl.CheckCollisionBoxes(a, b) {
		return false
	}
	_, axis := penetrationAxis(a, b)
	return axis >= 0
}

// Step advances the simulation by dt seconds: gravity and integration for dynamic bodies, push-apart
// of overlapping solid bodies, then trigger enter/exit dispatch.
func (w *World) Step(dt float32) {
	for _, b := range w.Bodies {
		if b.Static || b.Trigger {
			continue
		}
		b.Velocity = rl.Vector3Add(b.Velocity, rl.Vector3Scale(w.Gravity, dt))
		b.Position = rl.Vector3Add(b.Position, rl.Vector3Scale(b.Velocity, dt))
	}
	w.resolveSolids()
	w.updateTriggers()
}

func (w *World) resolveSolids() {
	for i := 0; i < len(w.Bodies); i++ {
		bi := w.Bodies[i]
		if bi.Trigger {
			continue
		}
		for j := i + 1; j < len(w.Bodies); j++ {
			bj := w.Bodies[j]
			if bj.Trigger || (bi.Static && bj.Static) {
				continue
			}
			depth, axis := penetrationAxis(bi.Bounds(), bj.Bounds())
			if axis < 0 {
				continue
			}
			var moveI, moveJ float32
			switch {
			case bi.Static:
				moveJ = depth
			case bj.Static:
				moveI = -depth
			default:
				total := bi.Mass + bj.Mass
				moveI = -depth * (bj.Mass / total)
				moveJ = depth * (bi.Mass / total)
			}
			push(bi, axis, moveI)
			push(bj, axis, moveJ)
		}
	}
}

// push moves b along axis and stops its velocity on that axis. Static bodies are left alone.
func push(b *Body, axis int, d float32) {
	if b.Static {
		return
	}
	switch axis {
	case 0:
		b.Position.X += d
		b.Velocity.X = 0
	case 1:
		b.Position.Y += d
		b.Velocity.Y = 0
	case 2:
		b.Position.Z += d
		b.Velocity.Z = 0
	}
}

func (w *World) updateTriggers() {
	for i := 0; i < len(w.Bodies); i++ {
		bi := w.Bodies[i]
		for j := i + 1; j < len(w.Bodies); j++ {
			bj := w.Bodies[j]
			if !bi.Trigger && !bj.Trigger {
				continue
			}
			p := pair{bi, bj}
			now := overlaps(bi.Bounds(), bj.Bounds())
			was := w.contacts[p]
			switch {
			case now && !was:
				w.contacts[p] = true
				w.emitPair(TriggerEnter, bi, bj)
			case !now && was:
				delete(w.contacts, p)
				w.emitPair(TriggerExit, bi, bj)
			}
		}
	}
}

func (w *World) emitPair(kind TriggerKind, a, b *Body) {
	for _, fn := range w.handlers {
		fn(TriggerEvent{Kind: kind, Self: a, Other: b})
		fn(TriggerEvent{Kind: kind, Self: b, Other: a})
	}
}
