package glr

import (
	"fmt"

	"github.com/npillmayer/glrnl/lr/sppf"
)

// gss is a graph-structured stack. Nodes live in an arena and are addressed
// by index. Edges point from a node to its predecessors, i.e. backwards in
// input order, therefore the graph is acyclic.
type gss struct {
	nodes []gssNode
}

type gssNode struct {
	tree  *sppf.SyntaxTree // nil for root nodes
	state int
	preds []int
}

func newGSS() *gss {
	return &gss{nodes: make([]gssNode, 0, 64)}
}

func (s *gss) size() int {
	return len(s.nodes)
}

// push creates a new node. pred < 0 creates a root node.
func (s *gss) push(tree *sppf.SyntaxTree, state int, pred int) int {
	node := gssNode{tree: tree, state: state}
	if pred >= 0 {
		node.preds = []int{pred}
	}
	s.nodes = append(s.nodes, node)
	return len(s.nodes) - 1
}

// link adds pred to the predecessors of node n. It returns false if pred is
// already a predecessor of n (or is negative).
func (s *gss) link(n int, pred int) bool {
	if pred < 0 {
		return false
	}
	for _, p := range s.nodes[n].preds {
		if p == pred {
			return false
		}
	}
	s.nodes[n].preds = append(s.nodes[n].preds, pred)
	return true
}

// paths returns all paths of length depth+1 ending in node n. Every path
// starts with its base node, followed by depth nodes, the last being n.
// A node with more than one predecessor yields more than one path.
func (s *gss) paths(n int, depth int) [][]int {
	if depth == 0 {
		return [][]int{{n}}
	}
	var result [][]int
	for _, pred := range s.nodes[n].preds {
		for _, path := range s.paths(pred, depth-1) {
			p := make([]int, len(path), len(path)+1)
			copy(p, path)
			result = append(result, append(p, n))
		}
	}
	return result
}

func (n gssNode) String() string {
	if n.tree == nil {
		return fmt.Sprintf("root.%d", n.state)
	}
	return fmt.Sprintf("%s.%d", n.tree.Symbol, n.state)
}
