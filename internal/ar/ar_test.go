package ar

import (
	"testing"

	"cagedworld/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func down(x, z float32) rl.Ray {
	return rl.NewRay(rl.NewVector3(x, 5, z), rl.NewVector3(0, -1, 0))
}

func TestRaycastRayRanksByDistance(t *testing.T) {
	floor := NewPlane(rl.NewVector3(0, 0, 0), rl.NewVector2(4, 4))
	table := NewPlane(rl.NewVector3(0, 1, 0), rl.NewVector2(1, 1))
	set := NewPlaneSet(floor, table)

	hits := RaycastRay(set, down(0.2, 0.2), PlaneWithinPolygon)
	require.Len(t, hits, 2)
	assert.Equal(t, table.ID, hits[0].PlaneID)
	assert.Equal(t, floor.ID, hits[1].PlaneID)
	assert.InDelta(t, 4, hits[0].Distance, 1e-4)
	assert.InDelta(t, 1, hits[0].Pose.Position.Y, 1e-4)
	assert.InDelta(t, 0.2, hits[1].Pose.Position.X, 1e-4)
}

func TestRaycastRayPolygonBounds(t *testing.T) {
	floor := NewPlane(rl.Vector3{}, rl.NewVector2(2, 2))
	set := NewPlaneSet(floor)

	assert.Empty(t, RaycastRay(set, down(3, 0), PlaneWithinPolygon))
	hits := RaycastRay(set, down(3, 0), PlaneWithinInfinity)
	require.Len(t, hits, 1)
	assert.InDelta(t, 3, hits[0].Pose.Position.X, 1e-4)

	floor.Disable()
	assert.Empty(t, RaycastRay(set, down(0, 0), PlaneWithinPolygon|PlaneWithinInfinity))
}

func TestRaycastRayParallelMisses(t *testing.T) {
	set := NewPlaneSet(NewPlane(rl.Vector3{}, rl.NewVector2(2, 2)))
	ray := rl.NewRay(rl.NewVector3(-5, 1, 0), rl.NewVector3(1, 0, 0))
	assert.Empty(t, RaycastRay(set, ray, PlaneWithinPolygon|PlaneWithinInfinity))
}

func TestPlaneSet(t *testing.T) {
	a := NewPlane(rl.Vector3{}, rl.NewVector2(1, 1))
	set := NewPlaneSet(a)
	assert.True(t, set.Enabled())

	got, ok := set.Plane(a.ID)
	require.True(t, ok)
	assert.Same(t, a, got)
	_, ok = set.Plane(uuid.New())
	assert.False(t, ok)

	set.SetEnabled(false)
	set.Add(NewPlane(rl.Vector3{}, rl.NewVector2(1, 1)))
	assert.Len(t, set.Planes(), 1, "no detection while disabled")
}

func TestPlaneMuteDisable(t *testing.T) {
	p := NewPlane(rl.NewVector3(1, 0, 1), rl.NewVector2(2, 4))
	c := p.Corners()
	assert.Equal(t, rl.NewVector3(0, 0, -1), c[0])
	assert.Equal(t, rl.NewVector3(2, 0, 3), c[2])
	p.Mute()
	assert.True(t, p.Muted)
	assert.False(t, p.Disabled)
	p.Disable()
	assert.True(t, p.Disabled)
}

func TestScriptedPointer(t *testing.T) {
	s := &ScriptedPointer{}
	s.Tap(rl.NewVector2(10, 20))
	s.Idle()
	s.Push(Pointer{Position: rl.NewVector2(1, 1), Phase: PhaseMoved})

	p, ok := s.Poll()
	require.True(t, ok)
	assert.Equal(t, PhaseBegan, p.Phase)
	assert.Equal(t, rl.NewVector2(10, 20), p.Position)

	_, ok = s.Poll()
	assert.False(t, ok)

	p, ok = s.Poll()
	require.True(t, ok)
	assert.Equal(t, PhaseMoved, p.Phase)

	_, ok = s.Poll()
	assert.False(t, ok)
}

func TestWorldSpawner(t *testing.T) {
	w := physics.NewWorld()
	s := &WorldSpawner{World: w, Tag: "Portal", Size: rl.NewVector3(1.5, 2.2, 0.3)}
	b := s.Spawn(rl.NewVector3(1, 0, 2), 0)
	assert.Equal(t, []*physics.Body{b}, w.Bodies)
	assert.True(t, b.Trigger)
	assert.Equal(t, "Portal", b.Tag)
	assert.InDelta(t, 1.1, b.Position.Y, 1e-6)
	assert.InDelta(t, 0, b.Bounds().Min.Y, 1e-6)
}

func TestClickPosition(t *testing.T) {
	drifted := rl.NewVector2(-3400, 9100)
	assert.Equal(t, rl.NewVector2(640, 360), clickPosition(true, drifted, 1280, 720), "captured clicks aim at the crosshair")
	assert.Equal(t, rl.NewVector2(640, 360.5), clickPosition(true, rl.Vector2{}, 1280, 721))
	assert.Equal(t, drifted, clickPosition(false, drifted, 1280, 720))
}

func TestCapturedClickHitsPlaneUnderCrosshair(t *testing.T) {
	cam := rl.Camera3D{
		Position:   rl.NewVector3(0, 1.6, -4),
		Target:     rl.NewVector3(0, 0, 0),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       60,
		Projection: rl.CameraPerspective,
	}
	floor := NewPlane(rl.Vector3{}, rl.NewVector2(2, 2))
	hits := &CameraHitTester{Camera: &cam, Planes: NewPlaneSet(floor), Width: 1280, Height: 720}

	got := hits.Raycast(clickPosition(true, rl.NewVector2(-3400, 9100), hits.Width, hits.Height), PlaneWithinPolygon)
	require.Len(t, got, 1)
	assert.Equal(t, floor.ID, got[0].PlaneID)
	assert.InDelta(t, 0, got[0].Pose.Position.X, 1e-3)
	assert.InDelta(t, 0, got[0].Pose.Position.Z, 1e-3)
}
