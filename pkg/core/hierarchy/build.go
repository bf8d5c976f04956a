package hierarchy

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/treemap/pkg/errors"
)

// ValuePolicy decides what happens to a value carried by a group.
type ValuePolicy int

const (
	// ValuePolicyDerive ignores the group's own value and sums its children.
	ValuePolicyDerive ValuePolicy = iota
	// ValuePolicyReject fails the build when a group has both a value and
	// non-empty children.
	ValuePolicyReject
)

// BuildOption configures [Build] and [BuildForest].
type BuildOption func(*buildConfig)

type buildConfig struct {
	policy ValuePolicy
}

// WithValuePolicy selects how ambiguous group values are handled.
func WithValuePolicy(p ValuePolicy) BuildOption {
	return func(c *buildConfig) { c.policy = p }
}

// Build converts raw into a Tree rooted at raw.
func Build(raw *RawNode, opts ...BuildOption) (*Tree, error) {
	if raw == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "tree has no root")
	}
	b := newBuilder(opts)
	root, err := b.scan(raw, 0, raw.Name)
	if err != nil {
		return nil, err
	}
	return b.finish(root, false), nil
}

// BuildForest wraps several top-level trees under a synthetic super-root
// named name. The super-root is a group but reserves no title band.
func BuildForest(name string, roots []*RawNode, opts ...BuildOption) (*Tree, error) {
	return buildSynthetic(&RawNode{Name: name, Children: nonNil(roots)}, opts)
}

func buildSynthetic(raw *RawNode, opts []BuildOption) (*Tree, error) {
	b := newBuilder(opts)
	root, err := b.scan(raw, 0, raw.Name)
	if err != nil {
		return nil, err
	}
	return b.finish(root, true), nil
}

func nonNil(roots []*RawNode) []*RawNode {
	if roots == nil {
		return []*RawNode{}
	}
	return roots
}

// pending is a validated, value-annotated node awaiting ID assignment.
type pending struct {
	raw   *RawNode
	value float64
	order int
	kids  []*pending
}

type builder struct {
	cfg   buildConfig
	seen  map[*RawNode]struct{}
	count int
}

func newBuilder(opts []BuildOption) *builder {
	b := &builder{seen: make(map[*RawNode]struct{})}
	for _, opt := range opts {
		opt(&b.cfg)
	}
	return b
}

// scan validates raw, computes aggregates bottom-up and sorts children.
func (b *builder) scan(raw *RawNode, order int, path string) (*pending, error) {
	if raw == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil child at %s", path)
	}
	if _, dup := b.seen[raw]; dup {
		return nil, errors.New(errors.ErrCodeInvalidInput, "node %s appears more than once (cycle or shared subtree)", path)
	}
	b.seen[raw] = struct{}{}
	b.count++

	p := &pending{raw: raw, order: order}
	if !raw.IsGroup() {
		if raw.Value != nil {
			if err := errors.ValidateWeight(path, *raw.Value); err != nil {
				return nil, err
			}
			p.value = *raw.Value
		}
		return p, nil
	}

	if raw.Value != nil && len(raw.Children) > 0 && b.cfg.policy == ValuePolicyReject {
		return nil, errors.New(errors.ErrCodeInvalidInput, "group %s has both a value and children", path)
	}

	p.kids = make([]*pending, 0, len(raw.Children))
	for i, c := range raw.Children {
		childPath := path + "/<nil>"
		if c != nil {
			childPath = path + "/" + c.Name
		}
		kid, err := b.scan(c, i, childPath)
		if err != nil {
			return nil, err
		}
		p.value += kid.value
		p.kids = append(p.kids, kid)
	}
	if math.IsInf(p.value, 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "total weight of %s overflows", path)
	}
	slices.SortStableFunc(p.kids, func(a, c *pending) int {
		return cmp.Compare(c.value, a.value)
	})
	return p, nil
}

// finish assigns pre-order IDs and depths.
func (b *builder) finish(root *pending, synthetic bool) *Tree {
	t := &Tree{nodes: make([]Node, 0, b.count)}
	t.emit(root, NoNode, 0)
	t.nodes[0].Synthetic = synthetic
	return t
}

func (t *Tree) emit(p *pending, parent NodeID, depth int) NodeID {
	id := NodeID(len(t.nodes))
	n := Node{
		ID:      id,
		Name:    p.raw.Name,
		Value:   p.value,
		Depth:   depth,
		Parent:  parent,
		Kind:    KindLeaf,
		Order:   p.order,
		Visible: true,
	}
	if p.raw.IsGroup() {
		n.Kind = KindGroup
		n.Children = make([]NodeID, 0, len(p.kids))
	} else if p.raw.Value != nil {
		v := *p.raw.Value
		n.RawValue = &v
	}
	t.nodes = append(t.nodes, n)

	for _, k := range p.kids {
		child := t.emit(k, id, depth+1)
		t.nodes[id].Children = append(t.nodes[id].Children, child)
	}
	t.nodes[id].end = NodeID(len(t.nodes))
	return id
}
