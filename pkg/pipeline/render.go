package pipeline

import (
	"github.com/matzehuels/treemap/pkg/core/hierarchy"
	"github.com/matzehuels/treemap/pkg/core/interact"
	"github.com/matzehuels/treemap/pkg/core/scene"
	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/render/nodelink"
	"github.com/matzehuels/treemap/pkg/render/sink"
)

// Render generates output artifacts in the requested formats. ds names the
// dataset in the JSON document.
func Render(ds string, t *hierarchy.Tree, sc *scene.Scene, eng *interact.Engine, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if _, done := artifacts[format]; done {
			continue
		}
		data, err := renderFormat(format, ds, t, sc, eng, opts)
		if err != nil {
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeInternal
			}
			return nil, errors.Wrap(code, err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(format, ds string, t *hierarchy.Tree, sc *scene.Scene, eng *interact.Engine, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(sc), nil
	case FormatJSON:
		var selected, isolated []hierarchy.NodeID
		if eng != nil {
			selected, isolated = eng.Selected(), eng.Isolated()
		}
		return sink.RenderJSON(sc,
			sink.WithJSONName(ds),
			sink.WithJSONTiling(opts.Config.Tiling),
			sink.WithJSONSelection(selected, isolated),
		)
	case FormatDOT:
		return []byte(nodelink.ToDOT(t, nodelink.Options{Detailed: opts.Detailed})), nil
	case FormatPNG:
		return sink.RenderPNG(sc, sink.WithScale(opts.Scale))
	case FormatPDF:
		return sink.RenderPDF(sc)
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
}
