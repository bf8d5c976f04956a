package pipeline

import (
	"bytes"

	"github.com/matzehuels/treemap/pkg/cache"
	"github.com/matzehuels/treemap/pkg/core/hierarchy"
	"github.com/matzehuels/treemap/pkg/errors"
	pkgio "github.com/matzehuels/treemap/pkg/io"
)

// Load reads the dataset named by opts.
func Load(opts Options) (pkgio.Dataset, error) {
	if opts.Data == nil {
		return pkgio.ReadFile(opts.Path)
	}
	ds, err := pkgio.Read(bytes.NewReader(opts.Data), opts.Format)
	if err != nil {
		return pkgio.Dataset{}, err
	}
	if ds.Forest() && opts.Name != "" {
		ds.Name = opts.Name
	}
	return ds, nil
}

// HashDataset returns a content hash of ds that ignores formatting and
// source format: the same trees in JSON or YAML hash identically.
func HashDataset(ds pkgio.Dataset) (string, error) {
	var buf bytes.Buffer
	if err := pkgio.WriteJSON(ds, &buf); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash dataset")
	}
	if ds.Forest() {
		buf.WriteString(ds.Name)
	}
	return cache.Hash(buf.Bytes()), nil
}

// Build converts ds into a tree.
func Build(ds pkgio.Dataset) (*hierarchy.Tree, error) {
	return ds.Build()
}
