package orientation

import (
	"errors"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Epsilon is the shortest horizontal displacement that still has a usable direction.
const Epsilon = 1e-6

// ErrDegenerateDirection is returned when a displacement has no horizontal component
// (viewer directly above or below the portal center). Callers skip the event.
var ErrDegenerateDirection = errors.New("orientation: degenerate horizontal direction")

// horizontal drops the up (Y) component and normalizes. ok is false when nothing is left.
func horizontal(direction rl.Vector3) (dir rl.Vector3, ok bool) {
	direction.Y = 0
	length := math32.Sqrt(direction.X*direction.X + direction.Z*direction.Z)
	if length < Epsilon || math32.IsNaN(length) {
		return rl.Vector3{}, false
	}
	return rl.NewVector3(direction.X/length, 0, direction.Z/length), true
}

// IsToward reports whether direction, projected on the horizontal plane, points to the front
// side of a portal facing portalForward: the angle between them is strictly below 90°.
// The comparison is done on the dot product sign, which is the same test without the acos
// rounding around the 90° boundary.
func IsToward(portalForward, direction rl.Vector3) (bool, error) {
	dir, ok := horizontal(direction)
	if !ok {
		return false, ErrDegenerateDirection
	}
	return rl.Vector3DotProduct(portalForward, dir) > 0, nil
}

// Angle returns the angle in degrees between portalForward and the horizontal projection
// of direction. Degenerate input yields 0.
func Angle(portalForward, direction rl.Vector3) float32 {
	dir, ok := horizontal(direction)
	if !ok {
		return 0
	}
	return rl.Vector3Angle(portalForward, dir) * rl.Rad2deg
}
