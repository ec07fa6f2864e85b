package crossing

import (
	"fmt"

	"cagedworld/internal/orientation"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// State is whether the viewer is considered on the inside of the portal.
type State int

const (
	// NotInside is the initial state: the viewer is on the outside of the portal.
	NotInside State = iota
	// Inside means the viewer has passed through once and sees the back portal.
	Inside
)

func (s State) String() string {
	if s == Inside {
		return "inside"
	}
	return "not-inside"
}

// EventKind tags a trigger callback as the lens entering or leaving the portal volume.
type EventKind int

const (
	// Enter is the lens starting to overlap the portal volume.
	Enter EventKind = iota
	// Exit is the lens leaving the portal volume.
	Exit
)

func (k EventKind) String() string {
	if k == Exit {
		return "exit"
	}
	return "enter"
}

// Outcome describes what a single event did to the machine.
type Outcome int

const (
	// Entered: an enter event recorded the approach orientation and showed the lens.
	Entered Outcome = iota
	// Crossed: a consistent exit moved the viewer from NotInside to Inside.
	Crossed
	// Returned: a consistent exit moved the viewer from Inside back to NotInside.
	Returned
	// Grazed: the orientation flipped between enter and exit; nothing changed.
	Grazed
	// Skipped: the displacement was degenerate and the event was ignored.
	Skipped
)

var outcomeNames = [...]string{"entered", "crossed", "returned", "grazed", "skipped"}

func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Collider is the portal's trigger volume as seen by the lens probe.
type Collider interface {
	Forward() rl.Vector3
	BoundsCenter() rl.Vector3
}

// Event is one trigger transition between the lens probe and the portal collider.
type Event struct {
	Kind   EventKind
	Lens   rl.Vector3
	Portal Collider
}

// Visibility receives the two render toggles driven by the machine.
type Visibility interface {
	SetLensVisible(visible bool)
	SetBackPortalVisible(visible bool)
}

// Machine tracks portal crossings for a single portal. It is not safe for concurrent use;
// events are expected from the physics step on the main loop.
type Machine struct {
	out                Visibility
	state              State
	enteredOrientation bool
	lensVisible        bool
	backPortalVisible  bool
}

// New returns a machine in the NotInside state and hides the back portal.
func New(out Visibility) *Machine {
	m := &Machine{out: out}
	m.setBackPortal(false)
	return m
}

// OnLensTriggeringPortal is the engine-facing entry point: onExit false for an overlap start,
// true for its end.
func (m *Machine) OnLensTriggeringPortal(lens rl.Vector3, portal Collider, onExit bool) (Outcome, error) {
	kind := Enter
	if onExit {
		kind = Exit
	}
	return m.Handle(Event{Kind: kind, Lens: lens, Portal: portal})
}

// Handle applies one event. Enter records the orientation of center-lens and shows the lens.
// Exit re-measures with lens-center; when that matches the recorded value the viewer has
// passed through and the state toggles.
func (m *Machine) Handle(ev Event) (Outcome, error) {
	center := ev.Portal.BoundsCenter()
	forward := ev.Portal.Forward()

	if ev.Kind == Enter {
		o, err := orientation.IsToward(forward, rl.Vector3Subtract(center, ev.Lens))
		if err != nil {
			return Skipped, fmt.Errorf("crossing: %s at %v: %w", ev.Kind, ev.Lens, err)
		}
		m.enteredOrientation = o
		m.setLens(true)
		return Entered, nil
	}

	o, err := orientation.IsToward(forward, rl.Vector3Subtract(ev.Lens, center))
	if err != nil {
		return Skipped, fmt.Errorf("crossing: %s at %v: %w", ev.Kind, ev.Lens, err)
	}
	if o != m.enteredOrientation {
		return Grazed, nil
	}
	if m.state == Inside {
		m.state = NotInside
		m.setBackPortal(false)
		m.setLens(false)
		return Returned, nil
	}
	m.state = Inside
	m.setBackPortal(true)
	return Crossed, nil
}

func (m *Machine) setLens(v bool) {
	m.lensVisible = v
	if m.out != nil {
		m.out.SetLensVisible(v)
	}
}

func (m *Machine) setBackPortal(v bool) {
	m.backPortalVisible = v
	if m.out != nil {
		m.out.SetBackPortalVisible(v)
	}
}

// State returns the current crossing state.
func (m *Machine) State() State { return m.state }

// IsInside reports whether the viewer is on the inside of the portal.
func (m *Machine) IsInside() bool { return m.state == Inside }

// EnteredOrientation is the orientation recorded by the most recent enter event.
func (m *Machine) EnteredOrientation() bool { return m.enteredOrientation }

// LensVisible is the last value sent to SetLensVisible.
func (m *Machine) LensVisible() bool { return m.lensVisible }

// BackPortalVisible is the last value sent to SetBackPortalVisible.
func (m *Machine) BackPortalVisible() bool { return m.backPortalVisible }
