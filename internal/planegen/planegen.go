package planegen

import (
	"fmt"
	"time"

	"cagedworld/internal/ar"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"
)

// Options controls procedural plane layouts for running without a real AR device.
// Planes are laid out on a Columns-wide grid with Spacing between cell centers. Each plane's
// X and Z extents fall in [MinSize, MaxSize]; its height is jittered by up to HeightJitter.
// Seed controls randomness; Seed == 0 uses a time-based seed.
type Options struct {
	Count        int
	Columns      int
	Spacing      float32
	MinSize      float32
	MaxSize      float32
	HeightJitter float32
	Seed         int64
}

// DefaultOptions returns six planes, some smaller than the default 3 m spawn minimum.
func DefaultOptions() Options {
	return Options{
		Count:        6,
		Columns:      3,
		Spacing:      6,
		MinSize:      1.5,
		MaxSize:      5,
		HeightJitter: 0.4,
		Seed:         0,
	}
}

// Generate returns opts.Count detected planes centered around the origin on XZ. The same non-zero
// seed always yields the same layout and the same plane IDs.
func Generate(opts Options) []*ar.Plane {
	if opts.Count <= 0 {
		return nil
	}
	if opts.Columns <= 0 {
		opts.Columns = 1
	}
	if opts.MinSize <= 0 {
		opts.MinSize = 0.5
	}
	if opts.MaxSize < opts.MinSize {
		opts.MaxSize = opts.MinSize
	}
	if opts.Spacing < opts.MaxSize {
		opts.Spacing = opts.MaxSize + 0.5
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	rows := (opts.Count + opts.Columns - 1) / opts.Columns
	startX := -float32(opts.Columns-1) * opts.Spacing * 0.5
	startZ := -float32(rows-1) * opts.Spacing * 0.5

	planes := make([]*ar.Plane, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		col, row := int32(i%opts.Columns), int32(i/opts.Columns)
		s := int32(seed)
		sx := lerp(opts.MinSize, opts.MaxSize, hash2D(col, row, s))
		sz := lerp(opts.MinSize, opts.MaxSize, hash2D(col, row, s+1))
		y := (hash2D(col, row, s+2)*2 - 1) * opts.HeightJitter
		center := rl.NewVector3(startX+float32(col)*opts.Spacing, y, startZ+float32(row)*opts.Spacing)
		planes = append(planes, &ar.Plane{
			ID:     uuid.NewSHA1(uuid.NameSpaceOID, fmt.Appendf(nil, "plane/%d/%d", seed, i)),
			Center: center,
			Size:   rl.NewVector2(sx, sz),
		})
	}
	return planes
}

// hash2D maps integer lattice coordinates to a deterministic pseudo-random float in [0,1].
func hash2D(x, y, seed int32) float32 {
	n := x*374761393 + y*668265263 + seed*362437
	n = (n ^ (n >> 13)) * 1274126177
	n = n ^ (n >> 16)
	const invMaxInt = 1.0 / 2147483647.0
	return float32(n&0x7fffffff) * float32(invMaxInt)
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
