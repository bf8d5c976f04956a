package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/treemap/pkg/config"
)

// chartFlags are the configuration flags shared by every command that
// builds a chart. Flags override values from --config; unset flags leave
// the file's values alone.
type chartFlags struct {
	configPath string
	cfg        config.Config
}

func (f *chartFlags) bind(cmd *cobra.Command) {
	d := config.Default()
	fs := cmd.Flags()
	fs.StringVarP(&f.configPath, "config", "c", "", "TOML configuration file")
	fs.Float64Var(&f.cfg.Width, "width", d.Width, "chart width")
	fs.Float64Var(&f.cfg.Height, "height", d.Height, "chart height")
	fs.StringVar(&f.cfg.Tiling, "tiling", d.Tiling, "tiling algorithm: squarify, slicedice")
	fs.Float64Var(&f.cfg.TitleBandHeight, "title-band", d.TitleBandHeight, "group title band height")
	fs.Float64Var(&f.cfg.OuterPadding, "outer-padding", d.OuterPadding, "padding inside every group")
	fs.Float64Var(&f.cfg.InnerPadding, "inner-padding", d.InnerPadding, "gap between siblings")
	fs.BoolVar(&f.cfg.RoundCoordinates, "round", d.RoundCoordinates, "snap rectangles to whole pixels")
	fs.Float64Var(&f.cfg.DimmedOpacity, "dimmed-opacity", d.DimmedOpacity, "opacity of selected cells and isolated groups")
	fs.BoolVar(&f.cfg.EnableValueLabels, "labels", d.EnableValueLabels, "show values next to names")
	fs.StringVar(&f.cfg.ValueUnit, "unit", d.ValueUnit, "unit appended to values")
	fs.BoolVar(&f.cfg.RelayoutOnIsolate, "relayout", d.RelayoutOnIsolate, "let an isolated group take its siblings' space")
}

// flagFields maps flag names to the config field they set.
var flagFields = map[string]func(dst *config.Config, src config.Config){
	"width":          func(d *config.Config, s config.Config) { d.Width = s.Width },
	"height":         func(d *config.Config, s config.Config) { d.Height = s.Height },
	"tiling":         func(d *config.Config, s config.Config) { d.Tiling = s.Tiling },
	"title-band":     func(d *config.Config, s config.Config) { d.TitleBandHeight = s.TitleBandHeight },
	"outer-padding":  func(d *config.Config, s config.Config) { d.OuterPadding = s.OuterPadding },
	"inner-padding":  func(d *config.Config, s config.Config) { d.InnerPadding = s.InnerPadding },
	"round":          func(d *config.Config, s config.Config) { d.RoundCoordinates = s.RoundCoordinates },
	"dimmed-opacity": func(d *config.Config, s config.Config) { d.DimmedOpacity = s.DimmedOpacity },
	"labels":         func(d *config.Config, s config.Config) { d.EnableValueLabels = s.EnableValueLabels },
	"unit":           func(d *config.Config, s config.Config) { d.ValueUnit = s.ValueUnit },
	"relayout":       func(d *config.Config, s config.Config) { d.RelayoutOnIsolate = s.RelayoutOnIsolate },
}

// resolve returns the effective configuration: defaults, then the config
// file, then any flag the user set explicitly.
func (f *chartFlags) resolve(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	for name, set := range flagFields {
		if cmd.Flags().Changed(name) {
			set(&cfg, f.cfg)
		}
	}
	return cfg, cfg.Validate()
}
