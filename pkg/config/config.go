// Package config loads chart settings from TOML.
//
// Every field has a default (see [Default]), so a file only needs the keys
// it changes:
//
//	title_band_height = 30
//	dimmed_opacity = 0.5
//	tiling = "slicedice"
//	relayout_on_isolate = true
//
// Unknown keys are rejected so that typos surface as INVALID_CONFIG errors
// rather than silently falling back to defaults.
package config

import (
	"io"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/treemap/pkg/core/interact"
	"github.com/matzehuels/treemap/pkg/core/layout"
	"github.com/matzehuels/treemap/pkg/core/scene"
	"github.com/matzehuels/treemap/pkg/errors"
)

// Config is the configuration bag for one chart.
type Config struct {
	Width               float64 `toml:"width"`
	Height              float64 `toml:"height"`
	OuterPadding        float64 `toml:"outer_padding"`
	InnerPadding        float64 `toml:"inner_padding"`
	TitleBandHeight     float64 `toml:"title_band_height"`
	RoundCoordinates    bool    `toml:"round_coordinates"`
	Tiling              string  `toml:"tiling"`
	DimmedOpacity       float64 `toml:"dimmed_opacity"`
	LassoRemovalDelayMs int     `toml:"lasso_removal_delay_ms"`
	EnableValueLabels   bool    `toml:"enable_value_labels"`
	ValueUnit           string  `toml:"value_unit"`
	RelayoutOnIsolate   bool    `toml:"relayout_on_isolate"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Width:               960,
		Height:              600,
		OuterPadding:        layout.DefaultOuterPadding,
		InnerPadding:        layout.DefaultInnerPadding,
		TitleBandHeight:     layout.DefaultTitleBand,
		RoundCoordinates:    true,
		Tiling:              layout.TilerSquarify,
		DimmedOpacity:       scene.DefaultDimmedOpacity,
		LassoRemovalDelayMs: int(interact.DefaultLassoRemovalDelay / time.Millisecond),
		EnableValueLabels:   true,
	}
}

// Load reads path on top of the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load %s", path)
	}
	return finish(cfg, md)
}

// Parse reads TOML from r on top of the defaults and validates the result.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	return finish(cfg, md)
}

func finish(cfg Config, md toml.MetaData) (Config, error) {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field and returns the first problem found.
func (c Config) Validate() error {
	if err := errors.ValidateDimensions(c.Width, c.Height); err != nil {
		return err
	}
	spacing := []struct {
		field string
		v     float64
	}{
		{"outer_padding", c.OuterPadding},
		{"inner_padding", c.InnerPadding},
		{"title_band_height", c.TitleBandHeight},
	}
	for _, s := range spacing {
		if err := errors.ValidateNonNegative(s.field, s.v); err != nil {
			return err
		}
	}
	if err := errors.ValidateOpacity("dimmed_opacity", c.DimmedOpacity); err != nil {
		return err
	}
	if c.LassoRemovalDelayMs < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "lasso_removal_delay_ms cannot be negative (got %d)", c.LassoRemovalDelayMs)
	}
	if _, err := layout.TilerByName(c.Tiling); err != nil {
		return err
	}
	return nil
}

// Write encodes c as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// LassoRemovalDelay returns the guide delay as a duration.
func (c Config) LassoRemovalDelay() time.Duration {
	return time.Duration(c.LassoRemovalDelayMs) * time.Millisecond
}

// LayoutOptions converts c into layout options. An unknown tiling falls
// back to squarify; call Validate first to reject it instead.
func (c Config) LayoutOptions() []layout.Option {
	tiler, err := layout.TilerByName(c.Tiling)
	if err != nil {
		tiler = layout.Squarify{}
	}
	return []layout.Option{
		layout.WithTitleBand(c.TitleBandHeight),
		layout.WithOuterPadding(c.OuterPadding),
		layout.WithInnerPadding(c.InnerPadding),
		layout.WithRounding(c.RoundCoordinates),
		layout.WithTiler(tiler),
	}
}

// SceneOptions converts c into scene options.
func (c Config) SceneOptions() []scene.Option {
	return []scene.Option{
		scene.WithValueLabels(c.EnableValueLabels),
		scene.WithValueUnit(c.ValueUnit),
		scene.WithDimmedOpacity(c.DimmedOpacity),
	}
}

// EngineOptions converts c into interaction engine options. The layout
// options are included so relayout matches the original layout.
func (c Config) EngineOptions() []interact.Option {
	return []interact.Option{
		interact.WithDimmedOpacity(c.DimmedOpacity),
		interact.WithRelayoutOnIsolate(c.RelayoutOnIsolate),
		interact.WithLayoutOptions(c.LayoutOptions()...),
		interact.WithLassoRemovalDelay(c.LassoRemovalDelay()),
	}
}
