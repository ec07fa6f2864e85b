package ar

import (
	"cmp"
	"slices"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// CameraHitTester turns screen positions into rays from Camera and tests them against Planes.
type CameraHitTester struct {
	Camera *rl.Camera3D
	Planes PlaneProvider
	Width  int32
	Height int32
}

// Raycast implements HitTester.
func (h *CameraHitTester) Raycast(screen rl.Vector2, filter TrackableType) []Hit {
	ray := rl.GetScreenToWorldRayEx(screen, *h.Camera, h.Width, h.Height)
	return RaycastRay(h.Planes, ray, filter)
}

// RaycastRay tests ray against every enabled plane and returns hits sorted by distance.
func RaycastRay(planes PlaneProvider, ray rl.Ray, filter TrackableType) []Hit {
	var hits []Hit
	for _, p := range planes.Planes() {
		if p.Disabled {
			continue
		}
		if filter&PlaneWithinPolygon != 0 {
			c := p.Corners()
			if rc := rl.GetRayCollisionQuad(ray, c[0], c[1], c[2], c[3]); rc.Hit {
				hits = append(hits, Hit{PlaneID: p.ID, Pose: Pose{Position: rc.Point}, Distance: rc.Distance})
				continue
			}
		}
		if filter&PlaneWithinInfinity != 0 {
			if pos, d, ok := rayHorizontal(ray, p.Center.Y); ok {
				hits = append(hits, Hit{PlaneID: p.ID, Pose: Pose{Position: pos}, Distance: d})
			}
		}
	}
	slices.SortStableFunc(hits, func(a, b Hit) int { return cmp.Compare(a.Distance, b.Distance) })
	return hits
}

// rayHorizontal intersects ray with the plane y = height.
func rayHorizontal(ray rl.Ray, height float32) (rl.Vector3, float32, bool) {
	dir := rl.Vector3Normalize(ray.Direction)
	if math32.Abs(dir.Y) < 1e-6 {
		return rl.Vector3{}, 0, false
	}
	t := (height - ray.Position.Y) / dir.Y
	if t < 0 {
		return rl.Vector3{}, 0, false
	}
	return rl.Vector3Add(ray.Position, rl.Vector3Scale(dir, t)), t, true
}
