package scene

import (
	"cagedworld/internal/ar"
	"cagedworld/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	gridExtent     = 20
	gridMinorAlpha = 40
	eyeHeight      = 1.6
	cageSize       = 6
	cageBars       = 12
)

var (
	planeColor      = rl.NewColor(60, 200, 220, 110)
	mutedPlaneColor = rl.NewColor(90, 90, 90, 160)
	portalColor     = rl.NewColor(255, 170, 40, 255)
	cageColor       = rl.NewColor(200, 60, 60, 255)
	lensTint        = rl.NewColor(120, 40, 160, 60)
	crosshairColor  = rl.NewColor(255, 255, 255, 200)
)

// Scene draws the passthrough stand-in: detected planes, the portal frame, the caged world
// behind it (the back portal render object) and the lens tint. It is the crossing machine's
// Visibility sink.
type Scene struct {
	Camera     rl.Camera3D
	planes     ar.PlaneProvider
	portal     *physics.Body
	cursorDone bool

	LensVisible       bool
	BackPortalVisible bool
}

// New returns a scene with a first-person camera at eye height looking down +Z.
func New(planes ar.PlaneProvider) *Scene {
	s := &Scene{planes: planes}
	s.Camera.Position = rl.NewVector3(0, eyeHeight, -6)
	s.Camera.Target = rl.NewVector3(0, eyeHeight, 0)
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = 60
	s.Camera.Projection = rl.CameraPerspective
	return s
}

// SetLensVisible implements crossing.Visibility.
func (s *Scene) SetLensVisible(visible bool) { s.LensVisible = visible }

// SetBackPortalVisible implements crossing.Visibility.
func (s *Scene) SetBackPortalVisible(visible bool) { s.BackPortalVisible = visible }

// SetPortal sets the portal body to draw; nil before spawn.
func (s *Scene) SetPortal(b *physics.Body) { s.portal = b }

// Update moves the viewer with the mouse and WASD. The cursor is captured for mouse-look, so its
// position is meaningless; ar.MousePointer aims captured clicks at the crosshair instead.
func (s *Scene) Update() {
	if !s.cursorDone {
		rl.DisableCursor()
		s.cursorDone = true
	}
	rl.UpdateCamera(&s.Camera, rl.CameraFirstPerson)
}

// Draw renders the 3D scene and the 2D lens tint and crosshair. Call between BeginDrawing and EndDrawing.
func (s *Scene) Draw() {
	rl.BeginMode3D(s.Camera)
	drawFloorGrid()
	s.drawPlanes()
	if s.portal != nil {
		s.drawPortal()
		if s.BackPortalVisible {
			s.drawCage()
		}
	}
	rl.EndMode3D()

	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	if s.LensVisible {
		rl.DrawRectangle(0, 0, w, h, lensTint)
	}
	rl.DrawLine(w/2-8, h/2, w/2+8, h/2, crosshairColor)
	rl.DrawLine(w/2, h/2-8, w/2, h/2+8, crosshairColor)
}

func (s *Scene) drawPlanes() {
	for _, p := range s.planes.Planes() {
		if p.Disabled {
			continue
		}
		c := planeColor
		if p.Muted {
			c = mutedPlaneColor
		}
		rl.DrawPlane(p.Center, p.Size, c)
		corners := p.Corners()
		for i := range corners {
			rl.DrawLine3D(corners[i], corners[(i+1)%len(corners)], rl.White)
		}
	}
}

// drawPortal draws the trigger volume and an arrow along its forward direction.
func (s *Scene) drawPortal() {
	rl.DrawBoundingBox(s.portal.Bounds(), portalColor)
	center := s.portal.BoundsCenter()
	tip := rl.Vector3Add(center, s.portal.Forward())
	rl.DrawLine3D(center, tip, portalColor)
	rl.DrawSphere(tip, 0.05, portalColor)
}

// drawCage draws the bars of the caged world on the far side of the portal.
func (s *Scene) drawCage() {
	base := s.portal.Position
	base.Y = s.portal.Bounds().Min.Y
	center := rl.Vector3Add(base, rl.Vector3Scale(s.portal.Forward(), cageSize*0.5))
	center.Y += cageSize * 0.5
	rl.DrawCubeWires(center, cageSize, cageSize, cageSize, cageColor)
	half := float32(cageSize) * 0.5
	for i := 0; i <= cageBars; i++ {
		x := center.X - half + float32(i)*cageSize/cageBars
		rl.DrawLine3D(rl.NewVector3(x, center.Y-half, center.Z+half), rl.NewVector3(x, center.Y+half, center.Z+half), cageColor)
		rl.DrawLine3D(rl.NewVector3(x, center.Y-half, center.Z-half), rl.NewVector3(x, center.Y+half, center.Z-half), cageColor)
	}
}

// drawFloorGrid draws a faint grid on Y=0 so the viewer has a sense of motion.
func drawFloorGrid() {
	c := rl.NewColor(128, 128, 128, gridMinorAlpha)
	for i := -gridExtent; i <= gridExtent; i++ {
		rl.DrawLine3D(rl.NewVector3(float32(i), 0, -gridExtent), rl.NewVector3(float32(i), 0, gridExtent), c)
		rl.DrawLine3D(rl.NewVector3(-gridExtent, 0, float32(i)), rl.NewVector3(gridExtent, 0, float32(i)), c)
	}
}
