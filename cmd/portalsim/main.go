package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"cagedworld/internal/commands"
	"cagedworld/internal/config"
	"cagedworld/internal/logger"
	"cagedworld/internal/orientation"
	"cagedworld/internal/planegen"
	"cagedworld/internal/scenario"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "portalsim:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	reg := commands.NewRegistry(out)
	registerReplay(reg, out)
	registerClassify(reg, out)
	registerPlanes(reg, out)
	return reg.Execute(args)
}

func registerReplay(reg *commands.Registry, out io.Writer) {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	file := fs.String("file", "", "scenario YAML file")
	cfgPath := fs.String("config", config.DefaultPath, "portal config file")
	verbose := fs.Bool("v", false, "print the session log")
	reg.Register("replay", "walk the lens along a scripted path", fs, func() error {
		if *file == "" {
			return fmt.Errorf("replay: -file is required")
		}
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			return err
		}
		sc, err := scenario.Load(*file)
		if err != nil {
			return err
		}
		log := logger.New("")
		res, err := scenario.Run(sc, cfg, log)
		if err != nil {
			return err
		}
		if *verbose {
			for _, l := range log.Lines() {
				fmt.Fprintln(out, l)
			}
		}
		fmt.Fprintf(out, "%s: %d steps, outcomes %v\n", res.Name, res.Steps, res.Outcomes)
		fmt.Fprintf(out, "inside=%t lens=%t back_portal=%t\n", res.Inside, res.LensVisible, res.BackPortalVisible)
		return res.Check(sc.Expect)
	})
}

func registerClassify(reg *commands.Registry, out io.Writer) {
	fs := flag.NewFlagSet("classify", flag.ContinueOnError)
	forward := &commands.Vector3Flag{}
	forward.V.Z = 1
	dir := &commands.Vector3Flag{}
	fs.Var(forward, "forward", "portal forward x,y,z")
	fs.Var(dir, "dir", "displacement x,y,z")
	reg.Register("classify", "report which side of the portal a displacement points to", fs, func() error {
		toward, err := orientation.IsToward(forward.V, dir.V)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "toward=%t angle=%.2f\n", toward, orientation.Angle(forward.V, dir.V))
		return nil
	})
}

func registerPlanes(reg *commands.Registry, out io.Writer) {
	fs := flag.NewFlagSet("planes", flag.ContinueOnError)
	opts := planegen.DefaultOptions()
	fs.IntVar(&opts.Count, "n", opts.Count, "number of planes")
	fs.Int64Var(&opts.Seed, "seed", 1, "layout seed, 0 for time based")
	minSize := fs.Float64("min-size", 3, "smallest X and Z extent that can host the portal")
	reg.Register("planes", "print a generated plane layout", fs, func() error {
		for _, p := range planegen.Generate(opts) {
			ok := float64(p.Size.X) > *minSize && float64(p.Size.Y) > *minSize
			fmt.Fprintf(out, "%s center=(%.2f, %.2f, %.2f) size=%.2fx%.2f spawnable=%t\n",
				p.ID, p.Center.X, p.Center.Y, p.Center.Z, p.Size.X, p.Size.Y, ok)
		}
		return nil
	})
}
