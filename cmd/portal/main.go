package main

import (
	"flag"
	"fmt"
	"os"

	"cagedworld/internal/ar"
	"cagedworld/internal/config"
	"cagedworld/internal/debug"
	"cagedworld/internal/graphics"
	"cagedworld/internal/lens"
	"cagedworld/internal/logger"
	"cagedworld/internal/orientation"
	"cagedworld/internal/physics"
	"cagedworld/internal/planegen"
	"cagedworld/internal/scene"
	"cagedworld/internal/session"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	cfgPath := flag.String("config", config.DefaultPath, "portal config file")
	seed := flag.Int64("seed", 0, "plane layout seed, 0 for time based")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "portal:", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogPath)

	opts := planegen.DefaultOptions()
	opts.Seed = *seed
	planes := ar.NewPlaneSet(planegen.Generate(opts)...)

	world := physics.NewWorld()
	world.SetGravity(rl.Vector3{})
	scn := scene.New(planes)
	hits := &ar.CameraHitTester{Camera: &scn.Camera, Planes: planes}
	sess := session.New(cfg, session.Deps{
		Planes:  planes,
		Pointer: &ar.MousePointer{},
		Hits:    hits,
		Spawner: &ar.WorldSpawner{
			World: world,
			Tag:   cfg.PortalTag,
			Size:  rl.NewVector3(cfg.PortalWidth, cfg.PortalHeight, cfg.PortalDepth),
		},
		Visibility: scn,
	}, log)
	probe := lens.New(scn.Camera.Position, cfg.LensSize, cfg.PortalTag)
	probe.Attach(world, sess)

	dbg := debug.New()
	dbg.SetShowFPS(cfg.ShowFPS)
	sess.Start()

	update := func() {
		hits.Width, hits.Height = int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
		scn.Update()
		probe.Follow(scn.Camera.Position)
		world.Step(rl.GetFrameTime())
		sess.Update()
		scn.SetPortal(sess.Portal())
	}
	draw := func() {
		scn.Draw()
		var extra []string
		if p := sess.Portal(); p != nil {
			dir := rl.Vector3Subtract(probe.Position(), p.BoundsCenter())
			extra = append(extra, fmt.Sprintf("angle to portal forward: %.1f", orientation.Angle(p.Forward(), dir)))
		}
		dbg.Draw(sess.Status(), extra...)
	}
	graphics.Run("CagedWorld", cfg.TargetFPS, update, draw)
	sess.End()
}
