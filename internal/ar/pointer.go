package ar

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ScriptedPointer replays queued samples, one per Poll.
type ScriptedPointer struct {
	queue []*Pointer
}

// Tap queues a Began sample at pos.
func (s *ScriptedPointer) Tap(pos rl.Vector2) {
	s.queue = append(s.queue, &Pointer{Position: pos, Phase: PhaseBegan})
}

// Push queues an arbitrary sample.
func (s *ScriptedPointer) Push(p Pointer) {
	s.queue = append(s.queue, &p)
}

// Idle queues a tick with no pointer.
func (s *ScriptedPointer) Idle() {
	s.queue = append(s.queue, nil)
}

// Poll pops the next queued sample.
func (s *ScriptedPointer) Poll() (Pointer, bool) {
	if len(s.queue) == 0 {
		return Pointer{}, false
	}
	p := s.queue[0]
	s.queue = s.queue[1:]
	if p == nil {
		return Pointer{}, false
	}
	return *p, true
}

// MousePointer reads raylib input: the left mouse button on desktop, the first touch point on
// touch screens. While the cursor is captured for mouse-look, clicks report the screen center
// (the crosshair), since the captured cursor position drifts with every look motion.
// Needs an open window.
type MousePointer struct {
	touching bool
}

func (m *MousePointer) Poll() (Pointer, bool) {
	if rl.GetTouchPointCount() > 0 {
		phase := PhaseMoved
		if !m.touching {
			phase = PhaseBegan
		}
		m.touching = true
		return Pointer{Position: rl.GetTouchPosition(0), Phase: phase}, true
	}
	m.touching = false
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		pos := clickPosition(rl.IsCursorHidden(), rl.GetMousePosition(), int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
		return Pointer{Position: pos, Phase: PhaseBegan}, true
	}
	return Pointer{}, false
}

// clickPosition is where a mouse click aims: the screen center when the cursor is captured,
// the cursor itself otherwise.
func clickPosition(captured bool, mouse rl.Vector2, width, height int32) rl.Vector2 {
	if captured {
		return rl.NewVector2(float32(width)/2, float32(height)/2)
	}
	return mouse
}
