package scenario

import (
	"errors"
	"fmt"
	"os"

	"cagedworld/internal/ar"
	"cagedworld/internal/config"
	"cagedworld/internal/crossing"
	"cagedworld/internal/lens"
	"cagedworld/internal/logger"
	"cagedworld/internal/physics"
	"cagedworld/internal/session"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

// Vec is a YAML [x, y, z] triple.
type Vec [3]float32

func (v Vec) vector() rl.Vector3 { return rl.NewVector3(v[0], v[1], v[2]) }

// Scenario is one scripted walk. Path is a polyline the lens follows; each segment is split into
// StepsPerSegment physics steps.
type Scenario struct {
	Name   string `yaml:"name"`
	Portal struct {
		Position Vec     `yaml:"position"`
		Yaw      float32 `yaml:"yaw"`
	} `yaml:"portal"`
	Lens struct {
		Size float32 `yaml:"size"`
	} `yaml:"lens"`
	StepsPerSegment int    `yaml:"steps_per_segment"`
	Path            []Vec  `yaml:"path"`
	Expect          Expect `yaml:"expect"`
}

// Expect lists the final flags to check. Unset fields are not checked.
type Expect struct {
	Inside            *bool `yaml:"inside"`
	LensVisible       *bool `yaml:"lens_visible"`
	BackPortalVisible *bool `yaml:"back_portal_visible"`
}

// Result is what a replay produced.
type Result struct {
	Name              string
	Outcomes          []crossing.Outcome
	Inside            bool
	LensVisible       bool
	BackPortalVisible bool
	Steps             int
	// PortalRemoved is true when teardown left only the lens probe in the world.
	PortalRemoved bool
}

const defaultSteps = 40

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes a scenario and checks it has a usable path.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if len(sc.Path) < 2 {
		return nil, errors.New("scenario path needs at least two points")
	}
	if sc.StepsPerSegment <= 0 {
		sc.StepsPerSegment = defaultSteps
	}
	return &sc, nil
}

// visibility records the last toggles sent by the crossing machine.
type visibility struct {
	lens, back bool
}

func (v *visibility) SetLensVisible(b bool)       { v.lens = b }
func (v *visibility) SetBackPortalVisible(b bool) { v.back = b }

// Run places the portal, walks the lens along the path and returns every crossing outcome.
func Run(sc *Scenario, cfg config.Prefs, log *logger.Logger) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	if log == nil {
		log = logger.New("")
	}
	world := physics.NewWorld()
	world.SetGravity(rl.Vector3{})
	vis := &visibility{}
	s := session.New(cfg, session.Deps{
		Planes: ar.NewPlaneSet(),
		Spawner: &ar.WorldSpawner{
			World: world,
			Tag:   cfg.PortalTag,
			Size:  rl.NewVector3(cfg.PortalWidth, cfg.PortalHeight, cfg.PortalDepth),
		},
		Visibility: vis,
	}, log)
	s.Start()
	s.PlaceAt(sc.Portal.Position.vector(), sc.Portal.Yaw*rl.Deg2rad)

	size := sc.Lens.Size
	if size <= 0 {
		size = cfg.LensSize
	}
	probe := lens.New(sc.Path[0].vector(), size, cfg.PortalTag)
	probe.Attach(world, s)

	dt := 1 / float32(cfg.TargetFPS)
	steps := 0
	for i := 1; i < len(sc.Path); i++ {
		a, b := sc.Path[i-1].vector(), sc.Path[i].vector()
		for k := 1; k <= sc.StepsPerSegment; k++ {
			probe.Follow(rl.Vector3Lerp(a, b, float32(k)/float32(sc.StepsPerSegment)))
			world.Step(dt)
			s.Update()
			steps++
		}
	}

	snap := s.Snapshot()
	s.End()
	return Result{
		Name:              sc.Name,
		Outcomes:          snap.Outcomes,
		Inside:            snap.IsInsidePortal,
		LensVisible:       vis.lens,
		BackPortalVisible: vis.back,
		Steps:             steps,
		PortalRemoved:     len(world.Bodies) == 1,
	}, nil
}

// Check compares the result with e and joins every mismatch into one error.
func (r Result) Check(e Expect) error {
	var errs []error
	check := func(name string, want *bool, got bool) {
		if want != nil && *want != got {
			errs = append(errs, fmt.Errorf("%s: want %t, got %t", name, *want, got))
		}
	}
	check("inside", e.Inside, r.Inside)
	check("lens_visible", e.LensVisible, r.LensVisible)
	check("back_portal_visible", e.BackPortalVisible, r.BackPortalVisible)
	return errors.Join(errs...)
}
