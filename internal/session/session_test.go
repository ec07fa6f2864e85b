package session

import (
	"strings"
	"testing"

	"cagedworld/internal/ar"
	"cagedworld/internal/config"
	"cagedworld/internal/crossing"
	"cagedworld/internal/lens"
	"cagedworld/internal/logger"
	"cagedworld/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type visibility struct {
	lens, back bool
}

func (v *visibility) SetLensVisible(b bool)       { v.lens = b }
func (v *visibility) SetBackPortalVisible(b bool) { v.back = b }

// fixedHits answers every raycast with the same ranked hits.
type fixedHits []ar.Hit

func (h fixedHits) Raycast(rl.Vector2, ar.TrackableType) []ar.Hit { return h }

type fixture struct {
	world   *physics.World
	planes  *ar.PlaneSet
	big     *ar.Plane
	small   *ar.Plane
	pointer *ar.ScriptedPointer
	vis     *visibility
	log     *logger.Logger
	s       *Session
}

func newFixture() *fixture {
	f := &fixture{
		world:   physics.NewWorld(),
		big:     ar.NewPlane(rl.NewVector3(0, 0, 0), rl.NewVector2(4, 5)),
		small:   ar.NewPlane(rl.NewVector3(8, 0, 0), rl.NewVector2(2, 6)),
		pointer: &ar.ScriptedPointer{},
		vis:     &visibility{},
		log:     logger.New(""),
	}
	f.world.SetGravity(rl.Vector3{})
	f.planes = ar.NewPlaneSet(f.big, f.small)
	cfg := config.Default()
	f.s = New(cfg, Deps{
		Planes:     f.planes,
		Pointer:    f.pointer,
		Hits:       fixedHits(nil),
		Spawner:    &ar.WorldSpawner{World: f.world, Tag: cfg.PortalTag, Size: rl.NewVector3(cfg.PortalWidth, cfg.PortalHeight, cfg.PortalDepth)},
		Visibility: f.vis,
	}, f.log)
	return f
}

func hitOn(p *ar.Plane, pos rl.Vector3) fixedHits {
	return fixedHits{{PlaneID: p.ID, Pose: ar.Pose{Position: pos}, Distance: 1}}
}

func TestStartStatus(t *testing.T) {
	f := newFixture()
	f.s.Start()
	assert.Equal(t, "Click on an area of minimum 3x3", f.s.Status())
	assert.False(t, f.vis.back)
	assert.False(t, f.s.IsPortalSpawned())
	assert.NotEqual(t, uuid.Nil, f.s.ID())
}

func TestSpawnOnLargePlane(t *testing.T) {
	f := newFixture()
	f.s.deps.Hits = hitOn(f.big, rl.NewVector3(0.5, 0, 1))
	f.s.Start()

	f.pointer.Tap(rl.NewVector2(100, 200))
	f.s.Update()
	require.True(t, f.s.IsPortalSpawned())
	assert.True(t, f.s.IsClicked())
	require.NotNil(t, f.s.Portal())
	assert.InDelta(t, 0.5, f.s.Portal().Position.X, 1e-6)
	assert.Equal(t, "Portal", f.s.Portal().Tag)
	assert.Contains(t, f.world.Bodies, f.s.Portal())

	assert.True(t, f.big.Muted)
	assert.False(t, f.big.Disabled)
	assert.True(t, f.small.Disabled)
	assert.False(t, f.planes.Enabled())

	f.s.Update()
	assert.False(t, f.s.IsClicked(), "click resets every tick")
	assert.Equal(t, "Pass through the portal (false)", f.s.Status())

	// A second tap never spawns again.
	f.pointer.Tap(rl.NewVector2(100, 200))
	f.s.Update()
	assert.Len(t, f.world.Bodies, 1)
	assert.Equal(t, f.big.ID, f.s.Snapshot().ChosenPlane)
}

func TestTooSmallPlane(t *testing.T) {
	f := newFixture()
	f.s.deps.Hits = hitOn(f.small, rl.NewVector3(8, 0, 0))
	f.s.Start()
	f.pointer.Tap(rl.NewVector2(1, 1))
	f.s.Update()

	assert.False(t, f.s.IsPortalSpawned())
	assert.Equal(t, "The area is too small (2|6)", f.s.Status())
	assert.Empty(t, f.world.Bodies)
	assert.True(t, f.planes.Enabled())
}

func TestExactMinimumIsTooSmall(t *testing.T) {
	f := newFixture()
	edge := ar.NewPlane(rl.Vector3{}, rl.NewVector2(3, 3))
	f.planes.Add(edge)
	f.s.deps.Hits = hitOn(edge, rl.Vector3{})
	f.pointer.Tap(rl.Vector2{})
	f.s.Update()
	assert.False(t, f.s.IsPortalSpawned())
}

func TestIgnoredInput(t *testing.T) {
	f := newFixture()
	f.s.deps.Hits = hitOn(f.big, rl.Vector3{})
	f.s.Start()

	f.pointer.Idle()
	f.s.Update()
	f.pointer.Push(ar.Pointer{Phase: ar.PhaseMoved})
	f.s.Update()
	assert.True(t, f.s.IsClicked())
	assert.False(t, f.s.IsPortalSpawned(), "only a began touch places the portal")

	f.s.deps.Hits = fixedHits(nil)
	f.pointer.Tap(rl.Vector2{})
	f.s.Update()
	assert.False(t, f.s.IsPortalSpawned(), "no hit, no portal")

	f.s.deps.Hits = fixedHits{{PlaneID: uuid.New()}}
	f.pointer.Tap(rl.Vector2{})
	f.s.Update()
	assert.False(t, f.s.IsPortalSpawned())
	assert.True(t, strings.Contains(strings.Join(f.log.Lines(), "\n"), "hit unknown plane"))
}

func TestWalkThroughPortal(t *testing.T) {
	f := newFixture()
	f.s.deps.Hits = hitOn(f.big, rl.Vector3{})
	f.s.Start()
	f.pointer.Tap(rl.Vector2{})
	f.s.Update()
	require.True(t, f.s.IsPortalSpawned())

	probe := lens.New(rl.NewVector3(0, 1.6, -2), 0.1, "")
	probe.Attach(f.world, f.s)

	walk := func(from, to float32) {
		step := float32(0.05)
		if to < from {
			step = -step
		}
		for z := from; (step > 0 && z <= to) || (step < 0 && z >= to); z += step {
			probe.Follow(rl.NewVector3(0, 1.6, z))
			f.world.Step(1.0 / 30)
			f.s.Update()
		}
	}

	walk(-2, 2)
	assert.True(t, f.s.IsInsidePortal())
	assert.True(t, f.vis.back)
	assert.True(t, f.vis.lens)
	assert.Equal(t, "Pass through the portal (true)", f.s.Status())

	walk(2, -2)
	assert.False(t, f.s.IsInsidePortal())
	assert.False(t, f.vis.back)
	assert.False(t, f.vis.lens)

	// Step in and back out the way we came.
	walk(-2, 0)
	walk(0, -2)
	assert.False(t, f.s.IsInsidePortal())
	assert.False(t, f.vis.back)

	snap := f.s.Snapshot()
	want := []crossing.Outcome{
		crossing.Entered, crossing.Crossed,
		crossing.Entered, crossing.Returned,
		crossing.Entered, crossing.Grazed,
	}
	assert.Equal(t, want, snap.Outcomes)
	assert.False(t, snap.IsInsidePortal)
	assert.True(t, snap.LensVisible, "graze leaves the lens shown")

	snap.Outcomes[0] = crossing.Skipped
	assert.Equal(t, crossing.Entered, f.s.Snapshot().Outcomes[0], "snapshot is a deep copy")
}

func TestDegenerateEventLogged(t *testing.T) {
	f := newFixture()
	portal := f.s.PlaceAt(rl.Vector3{}, 0)
	assert.Same(t, portal, f.s.PlaceAt(rl.NewVector3(5, 0, 5), 0))

	f.s.OnLensTriggeringPortal(portal.BoundsCenter(), portal, false)
	assert.Equal(t, []crossing.Outcome{crossing.Skipped}, f.s.Snapshot().Outcomes)
	assert.Contains(t, strings.Join(f.log.Lines(), "\n"), "lens event skipped")
	assert.False(t, f.vis.lens)
}

func TestEndRemovesPortal(t *testing.T) {
	f := newFixture()
	portal := f.s.PlaceAt(rl.Vector3{}, 0)
	probe := lens.New(rl.NewVector3(0, 1.6, -0.1), 0.1, "")
	probe.Attach(f.world, f.s)
	f.world.Step(0)
	require.True(t, f.world.Overlapping(probe.Body, portal))
	require.Equal(t, []crossing.Outcome{crossing.Entered}, f.s.Snapshot().Outcomes)

	f.s.End()
	assert.True(t, f.s.IsEnded())
	assert.False(t, f.s.IsPortalSpawned())
	assert.Nil(t, f.s.Portal())
	assert.Equal(t, []*physics.Body{probe.Body}, f.world.Bodies)
	assert.Equal(t, []crossing.Outcome{crossing.Entered}, f.s.Snapshot().Outcomes, "teardown exit is not a crossing")

	f.pointer.Tap(rl.Vector2{})
	f.s.deps.Hits = hitOn(f.big, rl.Vector3{})
	f.s.Update()
	assert.False(t, f.s.IsPortalSpawned(), "ended sessions do not respawn")
	assert.Nil(t, f.s.PlaceAt(rl.Vector3{}, 0))
	assert.NotPanics(t, f.s.End)
}

func TestTapWithoutPlanesOrSpawner(t *testing.T) {
	log := logger.New("")
	pointer := &ar.ScriptedPointer{}
	s := New(config.Default(), Deps{Pointer: pointer, Hits: fixedHits{{PlaneID: uuid.New()}}}, log)
	pointer.Tap(rl.Vector2{})
	assert.NotPanics(t, s.Update)
	assert.False(t, s.IsPortalSpawned())
	assert.Contains(t, strings.Join(log.Lines(), "\n"), "tap ignored")
	assert.Nil(t, s.PlaceAt(rl.Vector3{}, 0))
	assert.NotPanics(t, s.End)
}
