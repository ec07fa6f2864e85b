package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file path, relative to the process working directory.
const DefaultPath = "config/portal.yaml"

// Prefs holds the portal session settings. Every field can be overridden with the PORTAL_*
// environment variable named in its env tag.
type Prefs struct {
	PlaneMinSize float32 `yaml:"plane_min_size" env:"PORTAL_PLANE_MIN_SIZE"`
	TargetFPS    int32   `yaml:"target_fps" env:"PORTAL_TARGET_FPS"`
	PortalTag    string  `yaml:"portal_tag" env:"PORTAL_TAG"`
	PortalWidth  float32 `yaml:"portal_width" env:"PORTAL_WIDTH"`
	PortalHeight float32 `yaml:"portal_height" env:"PORTAL_HEIGHT"`
	PortalDepth  float32 `yaml:"portal_depth" env:"PORTAL_DEPTH"`
	LensSize     float32 `yaml:"lens_size" env:"PORTAL_LENS_SIZE"`
	ShowFPS      bool    `yaml:"show_fps" env:"PORTAL_SHOW_FPS"`
	LogPath      string  `yaml:"log_path,omitempty" env:"PORTAL_LOG_PATH"`
}

// Default returns the settings the app ships with: planes must exceed 3x3 m and the loop runs at 30 FPS.
func Default() Prefs {
	return Prefs{
		PlaneMinSize: 3,
		TargetFPS:    30,
		PortalTag:    "Portal",
		PortalWidth:  1.5,
		PortalHeight: 2.2,
		PortalDepth:  0.3,
		LensSize:     0.1,
		ShowFPS:      false,
		LogPath:      "logs/portal.txt",
	}
}

// Load reads prefs from the YAML file at path on top of Default, then applies environment
// overrides. A missing file is not an error.
func Load(path string) (Prefs, error) {
	p := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return p, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &p); err != nil {
			return Default(), fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := env.Parse(&p); err != nil {
		return p, fmt.Errorf("parse env: %w", err)
	}
	return p, p.Validate()
}

// Save writes prefs to path as YAML, creating the directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects settings the session cannot run with.
func (p Prefs) Validate() error {
	switch {
	case p.PlaneMinSize < 0:
		return fmt.Errorf("plane_min_size must not be negative, got %v", p.PlaneMinSize)
	case p.TargetFPS <= 0:
		return fmt.Errorf("target_fps must be positive, got %d", p.TargetFPS)
	case p.PortalTag == "":
		return errors.New("portal_tag must not be empty")
	case p.PortalWidth <= 0 || p.PortalHeight <= 0 || p.PortalDepth <= 0:
		return fmt.Errorf("portal size must be positive, got %vx%vx%v", p.PortalWidth, p.PortalHeight, p.PortalDepth)
	case p.LensSize <= 0:
		return fmt.Errorf("lens_size must be positive, got %v", p.LensSize)
	}
	return nil
}
