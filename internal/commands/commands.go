package commands

import (
	"flag"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Command is a subcommand with its own flags and a Run function.
// Flags are defined on FlagSet; Run is called after Parse and can read flag state.
type Command struct {
	Name    string
	Usage   string
	FlagSet *flag.FlagSet
	Run     func() error
}

// Registry holds subcommands by name. Add commands with Register; run with Execute.
type Registry struct {
	cmds map[string]*Command
	out  io.Writer
}

// NewRegistry returns an empty command registry. Flag errors and usage go to out.
func NewRegistry(out io.Writer) *Registry {
	return &Registry{cmds: make(map[string]*Command), out: out}
}

// Register adds a subcommand. fs is that command's FlagSet; run is called after fs.Parse(args[1:]) succeeds.
func (r *Registry) Register(name, usage string, fs *flag.FlagSet, run func() error) {
	fs.SetOutput(r.out)
	r.cmds[name] = &Command{Name: name, Usage: usage, FlagSet: fs, Run: run}
}

// Execute runs the subcommand in args[0] with args[1:] as flag/positional arguments.
// Returns an error for unknown command, parse error, or from Run().
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		r.PrintUsage()
		return fmt.Errorf("missing subcommand")
	}
	name := args[0]
	cmd, ok := r.cmds[name]
	if !ok {
		r.PrintUsage()
		return fmt.Errorf("unknown command: %s", name)
	}
	if err := cmd.FlagSet.Parse(args[1:]); err != nil {
		return err
	}
	return cmd.Run()
}

// PrintUsage lists registered commands in name order.
func (r *Registry) PrintUsage() {
	names := make([]string, 0, len(r.cmds))
	for n := range r.cmds {
		names = append(names, n)
	}
	sort.Strings(names)
	fmt.Fprintln(r.out, "commands:")
	for _, n := range names {
		fmt.Fprintf(r.out, "  %-10s %s\n", n, r.cmds[n].Usage)
	}
}

// ParseVector3 parses "x,y,z" (spaces allowed) into a vector.
func ParseVector3(s string) (rl.Vector3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return rl.Vector3{}, fmt.Errorf("want x,y,z, got %q", s)
	}
	var v [3]float32
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return rl.Vector3{}, fmt.Errorf("component %d of %q: %w", i, s, err)
		}
		v[i] = float32(f)
	}
	return rl.NewVector3(v[0], v[1], v[2]), nil
}

// Vector3Flag adapts a vector for flag.Var.
type Vector3Flag struct {
	V rl.Vector3
}

func (f *Vector3Flag) String() string {
	return fmt.Sprintf("%g,%g,%g", f.V.X, f.V.Y, f.V.Z)
}

func (f *Vector3Flag) Set(s string) error {
	v, err := ParseVector3(s)
	if err != nil {
		return err
	}
	f.V = v
	return nil
}
