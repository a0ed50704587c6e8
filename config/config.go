// Package config loads optional run configuration from a YAML file.
// Every field is optional, zero values leave the built in defaults
// untouched.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vidmark/go-vidmark/render"
)

// StyleConfig holds overlay geometry overrides
type StyleConfig struct {
	// FontMin is the smallest badge font size in pixels
	FontMin int `yaml:"font_min"`
	// FontRatio scales the badge font with the box short side
	FontRatio float64 `yaml:"font_ratio"`
	// OutlineWidth is the box outline thickness at 720p
	OutlineWidth int `yaml:"outline_width"`
	// CornerRadius is the box corner radius at 720p
	CornerRadius int `yaml:"corner_radius"`
	// BadgeAlpha is the badge background opacity, 0 to 1
	BadgeAlpha float64 `yaml:"badge_alpha"`
	// BadgePad is the badge text padding in pixels
	BadgePad int `yaml:"badge_pad"`
}

// Config is the optional YAML run configuration
type Config struct {
	// MaxGap is the largest frame gap bridged by interpolation
	MaxGap int `yaml:"max_gap"`
	// DetectionKey is the preferred label attribute key
	DetectionKey string `yaml:"detection_key"`
	// Codecs is the output codec fallback chain
	Codecs []string `yaml:"codecs"`
	// Output is the annotated video destination
	Output string `yaml:"output"`
	// Style holds overlay geometry overrides
	Style StyleConfig `yaml:"style"`
}

// Load reads and parses the YAML configuration at the given path
func Load(path string) (*Config, error) {

	data, err := os.ReadFile(path)

	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return &cfg, nil
}

// ApplyStyle overlays the non zero style fields onto the given style and
// returns the result
func (c *Config) ApplyStyle(s render.Style) render.Style {

	if c.Style.FontMin > 0 {
		s.FontMin = c.Style.FontMin
	}

	if c.Style.FontRatio > 0 {
		s.FontRatio = c.Style.FontRatio
	}

	if c.Style.OutlineWidth > 0 {
		s.OutlineWidth = c.Style.OutlineWidth
	}

	if c.Style.CornerRadius > 0 {
		s.CornerRadius = c.Style.CornerRadius
	}

	if c.Style.BadgeAlpha > 0 {
		s.BadgeAlpha = c.Style.BadgeAlpha
	}

	if c.Style.BadgePad > 0 {
		s.BadgePad = c.Style.BadgePad
	}

	return s
}
