// Package config handles loading and saving the diagram style.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/f3rmion/pitchgraph/internal/kana"
	"gopkg.in/yaml.v3"
)

// StyleFile is the name of the style file inside the config directory.
const StyleFile = "style.yaml"

// ErrInvalidStyle is returned when a style has unusable values.
var ErrInvalidStyle = errors.New("invalid style")

// Style holds every numeric and visual option of the diagram.
type Style struct {
	SizeUnit                 float64   `yaml:"size_unit"`                  // Top margin and left/right inset of the first circle
	FontSize                 float64   `yaml:"font_size"`                  // Kana label size
	TextDX                   float64   `yaml:"text_dx"`                    // Label shift per glyph
	XStep                    float64   `yaml:"x_step"`                     // Horizontal distance between morae
	CircleRadius             float64   `yaml:"circle_radius"`              // Mora circle radius
	StrokeWidth              float64   `yaml:"stroke_width"`               // Line and circle stroke width
	StrokeDasharray          string    `yaml:"stroke_dasharray"`           // Dashing of tape connectors
	GraphHeight              float64   `yaml:"graph_height"`               // Gap between the high and low rows
	GraphVisibleHeight       float64   `yaml:"graph_visible_height"`       // Rendered height in px
	GraphHorizontalPadding   float64   `yaml:"graph_horizontal_padding"`   // Extra left/right padding
	GraphFont                string    `yaml:"graph_font"`                 // CSS font-family of labels
	DevoicedCircleWidth      float64   `yaml:"devoiced_circle_width"`      // Stroke of devoiced marks
	DevoicedCircleRadius     float64   `yaml:"devoiced_circle_radius"`     // Radius of devoiced marks
	DevoicedStrokeDasharray  string    `yaml:"devoiced_stroke_dasharray"`  // Dashing of devoiced marks
	DevoicedRectanglePadding float64   `yaml:"devoiced_rectangle_padding"` // Padding of fused devoiced marks
	ConvertReading           kana.Mode `yaml:"convert_reading"`            // as-given, hiragana or katakana
	NoText                   bool      `yaml:"no_text"`                    // Omit the kana label row
}

// DefaultStyle returns the stock style.
func DefaultStyle() Style {
	return Style{
		SizeUnit:                 25,
		FontSize:                 24,
		TextDX:                   -12,
		XStep:                    50,
		CircleRadius:             5.25,
		StrokeWidth:              2.5,
		StrokeDasharray:          "4",
		GraphHeight:              40,
		GraphVisibleHeight:       100,
		GraphHorizontalPadding:   6,
		GraphFont:                "Noto Sans, Noto Sans CJK JP, sans-serif",
		DevoicedCircleWidth:      1.5,
		DevoicedCircleRadius:     17,
		DevoicedStrokeDasharray:  "2 3",
		DevoicedRectanglePadding: 5,
		ConvertReading:           kana.ModeKatakana,
	}
}

// Validate checks that the style can produce a diagram.
func (s Style) Validate() error {
	switch {
	case s.XStep <= 0:
		return fmt.Errorf("%w: x_step must be positive, got %g", ErrInvalidStyle, s.XStep)
	case s.GraphHeight <= 0:
		return fmt.Errorf("%w: graph_height must be positive, got %g", ErrInvalidStyle, s.GraphHeight)
	case s.CircleRadius < 0:
		return fmt.Errorf("%w: circle_radius must not be negative, got %g", ErrInvalidStyle, s.CircleRadius)
	case s.FontSize <= 0:
		return fmt.Errorf("%w: font_size must be positive, got %g", ErrInvalidStyle, s.FontSize)
	}
	if _, ok := kana.ParseMode(string(s.ConvertReading)); !ok {
		return fmt.Errorf("%w: unknown convert_reading %q", ErrInvalidStyle, s.ConvertReading)
	}
	return nil
}

// LoadStyle loads a style from a YAML file. Keys missing from the file keep
// their default values.
func LoadStyle(path string) (Style, error) {
	style := DefaultStyle()

	data, err := os.ReadFile(path)
	if err != nil {
		return style, fmt.Errorf("reading style file: %w", err)
	}
	if err := yaml.Unmarshal(data, &style); err != nil {
		return style, fmt.Errorf("parsing style file: %w", err)
	}
	if mode, ok := kana.ParseMode(string(style.ConvertReading)); ok {
		style.ConvertReading = mode
	}
	if err := style.Validate(); err != nil {
		return style, err
	}

	return style, nil
}

// SaveStyle saves a style to a YAML file.
func SaveStyle(path string, style Style) error {
	out, err := yaml.Marshal(&style)
	if err != nil {
		return fmt.Errorf("marshaling style: %w", err)
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing style file: %w", err)
	}

	return nil
}

// LoadDir loads the style from a config directory, falling back to the
// default style when the directory has no style file.
func LoadDir(dir string) (Style, error) {
	path := filepath.Join(dir, StyleFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultStyle(), nil
	}
	return LoadStyle(path)
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "pitchgraph"), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
