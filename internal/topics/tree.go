package topics

import (
	"sort"

	"github.com/abhisek/quizdrill/internal/progress"
)

// RootName is the synthetic root every topic path hangs off.
const RootName = "All Topics"

// Node is one topic in the aggregated tree. History is the
// concatenation of the full histories of every question contributing
// to this node or any descendant.
type Node struct {
	Name     string
	Children map[string]*Node
	History  []bool

	order []string // child names in insertion order
}

// Contribution is one question's input to the tree: its normalized
// topic paths and its full answer history.
type Contribution struct {
	Paths   [][]string
	History []bool
}

// Build assembles the topic tree. Questions with empty histories
// contribute nothing; attempted questions append their full history to
// every node along each of their paths, root included.
func Build(contribs []Contribution) *Node {
	root := newNode(RootName)
	for _, c := range contribs {
		if len(c.History) == 0 {
			continue
		}
		for _, path := range c.Paths {
			root.History = append(root.History, c.History...)
			node := root
			for _, seg := range path {
				node = node.child(seg)
				node.History = append(node.History, c.History...)
			}
		}
	}
	return root
}

func newNode(name string) *Node {
	return &Node{Name: name, Children: make(map[string]*Node)}
}

func (n *Node) child(name string) *Node {
	if c, ok := n.Children[name]; ok {
		return c
	}
	c := newNode(name)
	n.Children[name] = c
	n.order = append(n.order, name)
	return c
}

// ChildNames returns the node's children in first-seen order.
func (n *Node) ChildNames() []string {
	out := make([]string, len(n.order))
	copy(out, n.order)
	return out
}

// SortedChildNames returns child names alphabetically, for stable
// report rendering independent of bank order.
func (n *Node) SortedChildNames() []string {
	out := n.ChildNames()
	sort.Strings(out)
	return out
}

// Accuracy returns the node's aggregated accuracy.
func (n *Node) Accuracy() progress.Accuracy {
	return progress.Compute(n.History)
}

// Trend returns the node's aggregated improvement trend.
func (n *Node) Trend(window int) progress.Trend {
	return progress.Improvement(n.History, window)
}

// Weakest finds the node with the lowest accuracy percentage among
// nodes with non-empty history, searching depth-first from (and
// including) this node. Ties go to the first node found. Returns nil
// if no node has history.
func (n *Node) Weakest() *Node {
	var weakest *Node
	var walk func(node *Node)
	walk = func(node *Node) {
		if len(node.History) > 0 {
			if weakest == nil || node.Accuracy().Percentage < weakest.Accuracy().Percentage {
				weakest = node
			}
		}
		for _, name := range node.ChildNames() {
			walk(node.Children[name])
		}
	}
	walk(n)
	return weakest
}
