package pipeline

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treemap/pkg/config"
	"github.com/matzehuels/treemap/pkg/core/hierarchy"
	"github.com/matzehuels/treemap/pkg/core/interact"
	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/observability"
)

// PathSeparator joins node names in a reference.
const PathSeparator = "/"

// Resolve finds the node ref points at. A reference is either a full path
// of names from the root ("Budget/Engineering/Infra"; a synthetic forest
// root is left out) or a bare name that is unique in the tree.
func Resolve(t *hierarchy.Tree, ref string) (hierarchy.NodeID, error) {
	paths := make([]string, t.Len())
	var byName []hierarchy.NodeID
	found := hierarchy.NoNode

	t.Walk(func(n *hierarchy.Node) bool {
		switch {
		case n.Synthetic:
			paths[n.ID] = ""
		case n.IsRoot() || paths[n.Parent] == "":
			paths[n.ID] = n.Name
		default:
			paths[n.ID] = paths[n.Parent] + PathSeparator + n.Name
		}
		if paths[n.ID] == ref && !n.Synthetic {
			found = n.ID
			return false
		}
		if n.Name == ref {
			byName = append(byName, n.ID)
		}
		return true
	})

	if found != hierarchy.NoNode {
		return found, nil
	}
	switch len(byName) {
	case 0:
		return hierarchy.NoNode, errors.New(errors.ErrCodeNotFound, "no node matches %q", ref)
	case 1:
		return byName[0], nil
	}
	if strings.Contains(ref, PathSeparator) {
		return hierarchy.NoNode, errors.New(errors.ErrCodeNotFound, "no node matches %q", ref)
	}
	return hierarchy.NoNode, errors.New(errors.ErrCodeInvalidInput, "%q names %d nodes; use a full path", ref, len(byName))
}

// Replay creates an engine for t and applies the recorded state: every
// group in isolate is isolated in order, then every leaf in select is
// selected. Leaves already selected by an isolation are left alone.
func Replay(ctx context.Context, t *hierarchy.Tree, opts Options) (*interact.Engine, error) {
	if opts.Config == nil {
		cfg := config.Default()
		opts.Config = &cfg
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	eng := interact.New(t, opts.Config.EngineOptions()...)
	hooks := observability.Interaction()

	for _, ref := range opts.Isolate {
		id, err := Resolve(t, ref)
		if err != nil {
			return nil, err
		}
		if !t.Node(id).IsGroup() {
			return nil, errors.New(errors.ErrCodeInvalidInput, "cannot isolate leaf %q", ref)
		}
		if eng.IsIsolated(id) {
			continue
		}
		ev := interact.ToggleGroupEvent{Node: id}
		deltas := eng.Apply(ev)
		hooks.OnTransition(ctx, ev.Name(), len(deltas))
		opts.Logger.Debug("isolated group", "ref", ref, "deltas", len(deltas))
	}

	for _, ref := range opts.Select {
		id, err := Resolve(t, ref)
		if err != nil {
			return nil, err
		}
		if !t.Node(id).IsLeaf() {
			return nil, errors.New(errors.ErrCodeInvalidInput, "cannot select group %q; isolate it instead", ref)
		}
		if eng.IsSelected(id) {
			continue
		}
		ev := interact.ToggleLeafEvent{Node: id}
		deltas := eng.Apply(ev)
		hooks.OnTransition(ctx, ev.Name(), len(deltas))
		opts.Logger.Debug("selected leaf", "ref", ref, "deltas", len(deltas))
	}
	return eng, nil
}
