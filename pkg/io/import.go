package io

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/treemap/pkg/core/hierarchy"
	"github.com/matzehuels/treemap/pkg/errors"
)

// Format names a dataset encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf infers the encoding from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unsupported dataset extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
}

// Dataset is one or more raw trees read from a single source.
type Dataset struct {
	Name  string // label for the synthetic root of a forest
	Roots []*hierarchy.RawNode
}

// Forest reports whether the dataset holds more than one top-level tree.
func (d Dataset) Forest() bool { return len(d.Roots) != 1 }

// Build converts the dataset into a tree. A single root is built as is;
// several are wrapped under a synthetic root named after the dataset.
func (d Dataset) Build(opts ...hierarchy.BuildOption) (*hierarchy.Tree, error) {
	if len(d.Roots) == 1 {
		return hierarchy.Build(d.Roots[0], opts...)
	}
	if len(d.Roots) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "dataset %q has no trees", d.Name)
	}
	return hierarchy.BuildForest(d.Name, d.Roots, opts...)
}

// ReadJSON decodes a JSON dataset: either one tree object or an array of
// them. ReadJSON does not close r.
func ReadJSON(r io.Reader) (Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Dataset{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read json")
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Dataset{}, errors.New(errors.ErrCodeInvalidFormat, "empty json document")
	}

	var ds Dataset
	if trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &ds.Roots)
	} else {
		var root hierarchy.RawNode
		err = json.Unmarshal(trimmed, &root)
		ds.Roots = []*hierarchy.RawNode{&root}
		ds.Name = root.Name
	}
	if err != nil {
		return Dataset{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
	}
	return ds, nil
}

// ReadYAML decodes a YAML dataset: either one tree mapping or a sequence of
// them. ReadYAML does not close r.
func ReadYAML(r io.Reader) (Dataset, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if stderrors.Is(err, io.EOF) {
			return Dataset{}, errors.New(errors.ErrCodeInvalidFormat, "empty yaml document")
		}
		return Dataset{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
	}

	body := &doc
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		body = doc.Content[0]
	}

	var ds Dataset
	var err error
	switch body.Kind {
	case yaml.SequenceNode:
		err = body.Decode(&ds.Roots)
	case yaml.MappingNode:
		var root hierarchy.RawNode
		err = body.Decode(&root)
		ds.Roots = []*hierarchy.RawNode{&root}
		ds.Name = root.Name
	default:
		return Dataset{}, errors.New(errors.ErrCodeInvalidFormat, "yaml dataset must be a mapping or a sequence (line %d)", body.Line)
	}
	if err != nil {
		return Dataset{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
	}
	return ds, nil
}

// ReadFile loads the dataset at path, choosing the decoder by extension.
// A forest is named after the file's base name.
func ReadFile(path string) (Dataset, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Dataset{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return Dataset{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Dataset{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	ds, err := Read(f, format)
	if err != nil {
		return Dataset{}, err
	}
	if ds.Forest() {
		ds.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return ds, nil
}

// Read decodes r in the given format.
func Read(r io.Reader, format Format) (Dataset, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatYAML:
		return ReadYAML(r)
	}
	return Dataset{}, errors.New(errors.ErrCodeUnsupported, "unsupported dataset format %q", format)
}
