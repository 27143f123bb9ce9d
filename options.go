package hexfield

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultPalette is the brand palette shapes are colored from.
var DefaultPalette = []Color{
	MustParseColor("#667eea"),
	MustParseColor("#764ba2"),
	MustParseColor("#10b981"),
	MustParseColor("#fbbf24"),
	MustParseColor("#f472b6"),
}

// Options configures an Engine.
type Options struct {
	Columns int
	Rows    int

	// BaseScale is the hover scale outside the influence radius.
	BaseScale float64
	// MinScale is the hover scale at the pointer center.
	MinScale float64
	// MouseRadiusDivisor sets the influence radius to maxViewport / divisor.
	MouseRadiusDivisor float64

	Colors []Color

	AnimateJiggle     bool
	JiggleDurationSec float64
	JiggleScaleRange  [2]float64
	JiggleEase        string
	// JiggleRecolor starts a color transition on every jiggle repeat.
	JiggleRecolor bool

	// PixelRatio multiplies the backing store size. Values below 1 use the
	// viewport's device scale factor.
	PixelRatio float64

	ColorTransitionSec float64
	ColorEase          string
}

// DefaultOptions returns the stock configuration.
func DefaultOptions() Options {
	return Options{
		Columns:            14,
		Rows:               9,
		BaseScale:          1.1,
		MinScale:           0.8,
		MouseRadiusDivisor: 4,
		Colors:             slices.Clone(DefaultPalette),
		AnimateJiggle:      true,
		JiggleDurationSec:  2.4,
		JiggleScaleRange:   [2]float64{0.9, 1.05},
		JiggleEase:         "sine.inOut",
		JiggleRecolor:      true,
		PixelRatio:         0,
		ColorTransitionSec: 0.6,
		ColorEase:          "power2.inOut",
	}
}

// PartialOptions is a sparse Options update. Nil fields are left unchanged.
type PartialOptions struct {
	Columns            *int        `yaml:"columns" toml:"columns" json:"columns"`
	Rows               *int        `yaml:"rows" toml:"rows" json:"rows"`
	BaseScale          *float64    `yaml:"base_scale" toml:"base_scale" json:"baseScale"`
	MinScale           *float64    `yaml:"min_scale" toml:"min_scale" json:"minScale"`
	MouseRadiusDivisor *float64    `yaml:"mouse_radius_divisor" toml:"mouse_radius_divisor" json:"mouseRadiusDivisor"`
	Colors             []Color     `yaml:"colors" toml:"colors" json:"colors"`
	AnimateJiggle      *bool       `yaml:"animate_jiggle" toml:"animate_jiggle" json:"animateJiggle"`
	JiggleDurationSec  *float64    `yaml:"jiggle_duration_sec" toml:"jiggle_duration_sec" json:"jiggleDurationSec"`
	JiggleScaleRange   *[2]float64 `yaml:"jiggle_scale_range" toml:"jiggle_scale_range" json:"jiggleScaleRange"`
	JiggleEase         *string     `yaml:"jiggle_ease" toml:"jiggle_ease" json:"jiggleEase"`
	JiggleRecolor      *bool       `yaml:"jiggle_recolor" toml:"jiggle_recolor" json:"jiggleRecolor"`
	PixelRatio         *float64    `yaml:"pixel_ratio" toml:"pixel_ratio" json:"pixelRatio"`
	ColorTransitionSec *float64    `yaml:"color_transition_sec" toml:"color_transition_sec" json:"colorTransitionSec"`
	ColorEase          *string     `yaml:"color_ease" toml:"color_ease" json:"colorEase"`
}

// Merge returns o with every non-nil field of p applied.
func (o Options) Merge(p PartialOptions) Options {
	if p.Columns != nil {
		o.Columns = *p.Columns
	}
	if p.Rows != nil {
		o.Rows = *p.Rows
	}
	if p.BaseScale != nil {
		o.BaseScale = *p.BaseScale
	}
	if p.MinScale != nil {
		o.MinScale = *p.MinScale
	}
	if p.MouseRadiusDivisor != nil {
		o.MouseRadiusDivisor = *p.MouseRadiusDivisor
	}
	if p.Colors != nil {
		o.Colors = slices.Clone(p.Colors)
	}
	if p.AnimateJiggle != nil {
		o.AnimateJiggle = *p.AnimateJiggle
	}
	if p.JiggleDurationSec != nil {
		o.JiggleDurationSec = *p.JiggleDurationSec
	}
	if p.JiggleScaleRange != nil {
		o.JiggleScaleRange = *p.JiggleScaleRange
	}
	if p.JiggleEase != nil {
		o.JiggleEase = *p.JiggleEase
	}
	if p.JiggleRecolor != nil {
		o.JiggleRecolor = *p.JiggleRecolor
	}
	if p.PixelRatio != nil {
		o.PixelRatio = *p.PixelRatio
	}
	if p.ColorTransitionSec != nil {
		o.ColorTransitionSec = *p.ColorTransitionSec
	}
	if p.ColorEase != nil {
		o.ColorEase = *p.ColorEase
	}
	return o
}

// AffectsGeometry reports whether p sets any field that invalidates the grid
// layout. Presence counts, not a changed value.
func (p PartialOptions) AffectsGeometry() bool {
	return p.Columns != nil || p.Rows != nil ||
		p.MouseRadiusDivisor != nil || p.PixelRatio != nil
}

// Validate checks o for values the engine cannot work with.
func (o Options) Validate() error {
	var errs []error
	if o.Columns < 1 {
		errs = append(errs, fmt.Errorf("columns must be at least 1, got %d", o.Columns))
	}
	if o.Rows < 1 {
		errs = append(errs, fmt.Errorf("rows must be at least 1, got %d", o.Rows))
	}
	if o.BaseScale <= 0 {
		errs = append(errs, fmt.Errorf("base scale must be positive, got %g", o.BaseScale))
	}
	if o.MinScale <= 0 {
		errs = append(errs, fmt.Errorf("min scale must be positive, got %g", o.MinScale))
	}
	if o.MouseRadiusDivisor <= 0 {
		errs = append(errs, fmt.Errorf("mouse radius divisor must be positive, got %g", o.MouseRadiusDivisor))
	}
	if len(o.Colors) == 0 {
		errs = append(errs, errors.New("palette must contain at least one color"))
	}
	if o.JiggleDurationSec < 0 {
		errs = append(errs, fmt.Errorf("jiggle duration must not be negative, got %g", o.JiggleDurationSec))
	}
	if lo, hi := o.JiggleScaleRange[0], o.JiggleScaleRange[1]; lo > hi {
		errs = append(errs, fmt.Errorf("jiggle scale range is inverted: [%g, %g]", lo, hi))
	}
	if o.ColorTransitionSec < 0 {
		errs = append(errs, fmt.Errorf("color transition must not be negative, got %g", o.ColorTransitionSec))
	}
	if _, err := ParseEase(o.JiggleEase); err != nil {
		errs = append(errs, fmt.Errorf("jiggle ease: %w", err))
	}
	if _, err := ParseEase(o.ColorEase); err != nil {
		errs = append(errs, fmt.Errorf("color ease: %w", err))
	}
	return errors.Join(errs...)
}

// LoadOptions reads a YAML (.yaml, .yml) or TOML (.toml) file, layers it over
// DefaultOptions and validates the result.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("failed to read options file %s: %w", path, err)
	}

	p, err := DecodePartialOptions(filepath.Ext(path), data)
	if err != nil {
		return Options{}, fmt.Errorf("failed to parse options from %s: %w", path, err)
	}

	opts := DefaultOptions().Merge(p)
	if err := opts.Validate(); err != nil {
		return Options{}, fmt.Errorf("invalid options in %s: %w", path, err)
	}
	return opts, nil
}

// DecodePartialOptions decodes data in the format named by ext.
func DecodePartialOptions(ext string, data []byte) (PartialOptions, error) {
	var p PartialOptions
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
			return PartialOptions{}, err
		}
	case ".toml":
		md, err := toml.Decode(string(data), &p)
		if err != nil {
			return PartialOptions{}, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return PartialOptions{}, fmt.Errorf("unknown option %q", undecoded[0].String())
		}
	default:
		return PartialOptions{}, fmt.Errorf("unsupported options format %q", ext)
	}
	return p, nil
}
