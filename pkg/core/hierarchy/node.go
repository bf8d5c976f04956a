package hierarchy

import "github.com/matzehuels/treemap/pkg/core/geom"

// NodeID indexes a node inside its [Tree].
type NodeID int

// NoNode is the parent of the root and the result of failed lookups.
const NoNode NodeID = -1

// Kind distinguishes leaves from groups.
type Kind uint8

const (
	KindLeaf  Kind = iota // carries a weight, selectable
	KindGroup             // has a title band, isolatable
)

// String returns "leaf" or "group".
func (k Kind) String() string {
	if k == KindGroup {
		return "group"
	}
	return "leaf"
}

// RawNode is the input shape accepted by [Build].
type RawNode struct {
	Name     string     `json:"name" yaml:"name"`
	Value    *float64   `json:"value,omitempty" yaml:"value,omitempty"`
	Children []*RawNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// NewLeaf returns a leaf RawNode with the given weight.
func NewLeaf(name string, value float64) *RawNode {
	return &RawNode{Name: name, Value: &value}
}

// NewGroup returns a group RawNode. Calling it without children yields an
// empty group, which is still a group.
func NewGroup(name string, children ...*RawNode) *RawNode {
	if children == nil {
		children = []*RawNode{}
	}
	return &RawNode{Name: name, Children: children}
}

// IsGroup reports whether the raw node will become a group.
func (r *RawNode) IsGroup() bool { return r.Children != nil }

// Node is one position in the tree.
//
// Topology fields (ID through Order) are fixed once [Build] returns.
// Rect, Title and Laid are written by the layout engine; Visible, Selected
// and Isolated are written by the interaction engine.
type Node struct {
	ID        NodeID
	Name      string
	RawValue  *float64 // leaves only; nil when the input had no value
	Value     float64  // aggregate of descendant leaf weights
	Depth     int
	Parent    NodeID
	Children  []NodeID // sorted by descending Value, stable
	Kind      Kind
	Synthetic bool // synthetic super-root created by BuildForest
	Order     int  // position among the original input siblings

	Rect  geom.Rect
	Title geom.Rect // title band of a group; zero-area for leaves and synthetic roots
	Laid  bool

	Visible  bool
	Selected bool // meaningful on leaves only
	Isolated bool // meaningful on groups only

	end NodeID // exclusive end of the subtree's ID range
}

// IsLeaf reports whether the node is a leaf.
func (n *Node) IsLeaf() bool { return n.Kind == KindLeaf }

// IsGroup reports whether the node is a group.
func (n *Node) IsGroup() bool { return n.Kind == KindGroup }

// IsRoot reports whether the node has no parent.
func (n *Node) IsRoot() bool { return n.Parent == NoNode }
