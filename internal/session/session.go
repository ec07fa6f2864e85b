package session

import (
	"errors"
	"fmt"

	"cagedworld/internal/ar"
	"cagedworld/internal/config"
	"cagedworld/internal/crossing"
	"cagedworld/internal/logger"
	"cagedworld/internal/orientation"
	"cagedworld/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// Deps are the platform collaborators a session drives. Planes and Spawner are needed to place a
// portal; without them taps are logged and ignored. Pointer, Hits and Visibility may be nil.
type Deps struct {
	Planes     ar.PlaneProvider
	Pointer    ar.PointerProvider
	Hits       ar.HitTester
	Spawner    ar.Spawner
	Visibility crossing.Visibility
}

// Snapshot is a point-in-time copy of the session status, safe to keep across ticks.
type Snapshot struct {
	ID                uuid.UUID
	IsClicked         bool
	IsPortalSpawned   bool
	IsInsidePortal    bool
	LensVisible       bool
	BackPortalVisible bool
	Status            string
	ChosenPlane       uuid.UUID
	Outcomes          []crossing.Outcome
}

// Session owns the crossing machine for its single portal.
type Session struct {
	cfg     config.Prefs
	deps    Deps
	log     *logger.Logger
	machine *crossing.Machine

	id       uuid.UUID
	ended    bool
	clicked  bool
	pointer  ar.Pointer
	spawned  bool
	portal   *physics.Body
	chosen   *ar.Plane
	status   string
	outcomes []crossing.Outcome
}

// New returns a session that has not spawned its portal yet. log may be nil.
// Call End when the session is over to remove the portal.
func New(cfg config.Prefs, deps Deps, log *logger.Logger) *Session {
	if log == nil {
		log = logger.New("")
	}
	return &Session{
		cfg:     cfg,
		deps:    deps,
		log:     log,
		machine: crossing.New(deps.Visibility),
		id:      uuid.New(),
	}
}

// Start sets the placement hint. The back portal was already hidden by the crossing machine.
func (s *Session) Start() {
	s.setStatus(fmt.Sprintf("Click on an area of minimum %vx%v", s.cfg.PlaneMinSize, s.cfg.PlaneMinSize))
	s.log.Logf("session %s started", s.id)
}

// Update runs once per tick: poll input, try to place the portal, refresh the status text.
func (s *Session) Update() {
	if s.ended {
		return
	}
	s.pollInput()

	if s.spawned {
		s.setStatus(fmt.Sprintf("Pass through the portal (%t)", s.machine.IsInside()))
		return
	}
	if !s.clicked || s.pointer.Phase != ar.PhaseBegan || s.deps.Hits == nil {
		return
	}
	if s.deps.Planes == nil || s.deps.Spawner == nil {
		s.log.Log("tap ignored: no plane provider or spawner")
		return
	}
	hits := s.deps.Hits.Raycast(s.pointer.Position, ar.PlaneWithinPolygon)
	if len(hits) == 0 {
		return
	}
	plane, ok := s.deps.Planes.Plane(hits[0].PlaneID)
	if !ok {
		s.log.Logf("hit unknown plane %s", hits[0].PlaneID)
		return
	}
	s.chosen = plane
	if plane.Size.X > s.cfg.PlaneMinSize && plane.Size.Y > s.cfg.PlaneMinSize {
		s.spawn(hits[0].Pose.Position)
		return
	}
	s.setStatus(fmt.Sprintf("The area is too small (%v|%v)", plane.Size.X, plane.Size.Y))
}

func (s *Session) pollInput() {
	s.clicked = false
	if s.deps.Pointer == nil {
		return
	}
	if p, ok := s.deps.Pointer.Poll(); ok {
		s.pointer = p
		s.clicked = true
	}
}

func (s *Session) spawn(pos rl.Vector3) {
	s.spawned = true
	s.portal = s.deps.Spawner.Spawn(pos, 0)
	s.log.Logf("portal spawned at (%.2f, %.2f, %.2f) on plane %s", pos.X, pos.Y, pos.Z, s.chosen.ID)
	s.disablePlanes()
}

// disablePlanes mutes the chosen plane, hides every other one and stops detection.
func (s *Session) disablePlanes() {
	for _, p := range s.deps.Planes.Planes() {
		if p.ID == s.chosen.ID {
			p.Mute()
		} else {
			p.Disable()
		}
	}
	s.deps.Planes.SetEnabled(false)
}

// OnLensTriggeringPortal forwards a lens trigger event to the crossing machine. Degenerate
// geometry is logged and the event dropped.
func (s *Session) OnLensTriggeringPortal(lens rl.Vector3, portal crossing.Collider, onExit bool) {
	if s.ended {
		return
	}
	out, err := s.machine.OnLensTriggeringPortal(lens, portal, onExit)
	s.outcomes = append(s.outcomes, out)
	if errors.Is(err, orientation.ErrDegenerateDirection) {
		s.log.Logf("lens event skipped: %v", err)
		return
	}
	s.log.Logf("lens %s: %s (inside=%t)", eventName(onExit), out, s.machine.IsInside())
}

func eventName(onExit bool) string {
	if onExit {
		return crossing.Exit.String()
	}
	return crossing.Enter.String()
}

// PlaceAt spawns the portal at pos without a tap, for scripted runs. It is a no-op once spawned
// or ended, and returns nil without a Spawner.
func (s *Session) PlaceAt(pos rl.Vector3, yaw float32) *physics.Body {
	if s.spawned || s.ended || s.deps.Spawner == nil {
		return s.portal
	}
	s.spawned = true
	s.portal = s.deps.Spawner.Spawn(pos, yaw)
	s.log.Logf("portal placed at (%.2f, %.2f, %.2f)", pos.X, pos.Y, pos.Z)
	return s.portal
}

// End tears the session down: the portal is despawned and later ticks and lens events are
// ignored. The exit events raised by removing the portal do not reach the crossing machine.
func (s *Session) End() {
	if s.ended {
		return
	}
	s.ended = true
	if s.portal != nil && s.deps.Spawner != nil {
		s.deps.Spawner.Despawn(s.portal)
	}
	s.portal = nil
	s.spawned = false
	s.log.Logf("session %s ended", s.id)
}

// IsEnded reports whether End was called.
func (s *Session) IsEnded() bool { return s.ended }

func (s *Session) setStatus(text string) {
	s.status = text
}

// ID identifies the session in logs.
func (s *Session) ID() uuid.UUID { return s.id }

// IsClicked reports whether a pointer sample arrived this tick.
func (s *Session) IsClicked() bool { return s.clicked }

// IsPortalSpawned reports whether the portal has been placed.
func (s *Session) IsPortalSpawned() bool { return s.spawned }

// IsInsidePortal reports the crossing state.
func (s *Session) IsInsidePortal() bool { return s.machine.IsInside() }

// Status is the hint text shown to the user.
func (s *Session) Status() string { return s.status }

// Portal is the spawned portal body, nil before spawn.
func (s *Session) Portal() *physics.Body { return s.portal }

// Machine exposes the crossing machine for overlays and tests.
func (s *Session) Machine() *crossing.Machine { return s.machine }

// Snapshot returns a deep copy of the current status.
func (s *Session) Snapshot() Snapshot {
	cur := Snapshot{
		ID:                s.id,
		IsClicked:         s.clicked,
		IsPortalSpawned:   s.spawned,
		IsInsidePortal:    s.machine.IsInside(),
		LensVisible:       s.machine.LensVisible(),
		BackPortalVisible: s.machine.BackPortalVisible(),
		Status:            s.status,
		Outcomes:          s.outcomes,
	}
	if s.chosen != nil {
		cur.ChosenPlane = s.chosen.ID
	}
	var out Snapshot
	if err := copier.CopyWithOption(&out, &cur, copier.Option{DeepCopy: true}); err != nil {
		s.log.Logf("snapshot: %v", err)
		return cur
	}
	return out
}
