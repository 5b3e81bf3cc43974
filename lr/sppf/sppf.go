/*
Package sppf implements syntax trees and a "Shared Packed Parse Forest".

A packed parse forest re-uses existing parse tree nodes between different
parse trees. For a conventional non-ambiguous parse, a parse forest degrades
to a single tree. Ambiguous grammars, on the other hand, may result in parse
runs where more than one parse tree is created. To save space these parse
trees will share common nodes: a forest interns every node, so that
identical derivations of a span of input are represented by one node.
The GLR parser relies on this to recognize equivalent stack tops.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sppf

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/glrnl"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glrnl.lr'.
func tracer() tracing.Trace {
	return tracing.Select("glrnl.lr")
}

// SyntaxTree is a node of a syntax tree. Leaves represent input tokens,
// inner nodes represent the application of a grammar rule.
type SyntaxTree struct {
	Symbol   string        // terminal or LHS of a reduced rule
	Token    *glrnl.Token  // input token, for leaves only
	Rule     int           // serial number of the rule reduced, -1 for leaves
	Children []*SyntaxTree // RHS nodes
	Extent   glrnl.Span    // span of input covered by this node
}

// NewLeaf creates a leaf for a token, not interned in any forest.
func NewLeaf(sym string, tok *glrnl.Token) *SyntaxTree {
	t := &SyntaxTree{Symbol: sym, Token: tok, Rule: -1}
	if tok != nil {
		t.Extent = tok.Span
	}
	return t
}

// NewNode creates an inner node for a rule reduction, not interned in any forest.
func NewNode(sym string, rule int, children []*SyntaxTree) *SyntaxTree {
	t := &SyntaxTree{Symbol: sym, Rule: rule, Children: children}
	for _, ch := range children {
		t.Extent = t.Extent.Extend(ch.Extent)
	}
	return t
}

// IsLeaf is true for nodes without children.
func (t *SyntaxTree) IsLeaf() bool {
	return len(t.Children) == 0
}

// LeafToken returns the token of a leaf. For an inner node which derives a
// single token by a chain of unit rules (A ➞ B ➞ b), the token of b is
// returned. Otherwise LeafToken returns nil.
func (t *SyntaxTree) LeafToken() *glrnl.Token {
	for t != nil {
		if t.IsLeaf() {
			return t.Token
		}
		if len(t.Children) != 1 {
			return nil
		}
		t = t.Children[0]
	}
	return nil
}

// Leaves returns the leaves of t from left to right.
func (t *SyntaxTree) Leaves() []*SyntaxTree {
	var leaves []*SyntaxTree
	stack := arraystack.New()
	stack.Push(t)
	for !stack.Empty() {
		x, _ := stack.Pop()
		node := x.(*SyntaxTree)
		if node.IsLeaf() {
			leaves = append(leaves, node)
			continue
		}
		for i := len(node.Children) - 1; i >= 0; i-- {
			stack.Push(node.Children[i])
		}
	}
	return leaves
}

// Tokens returns the tokens of the leaves of t from left to right.
func (t *SyntaxTree) Tokens() []*glrnl.Token {
	leaves := t.Leaves()
	toks := make([]*glrnl.Token, 0, len(leaves))
	for _, l := range leaves {
		if l.Token != nil {
			toks = append(toks, l.Token)
		}
	}
	return toks
}

// Surface returns the input text covered by t, re-assembled from the leaves'
// surface text and separated by blanks.
func (t *SyntaxTree) Surface() string {
	toks := t.Tokens()
	s := make([]string, len(toks))
	for i, tok := range toks {
		s[i] = tok.Surface
	}
	return strings.Join(s, " ")
}

// Flatten collects all nodes for symbol, top-down and from left to right.
// Nodes for symbol are not searched for nested nodes for symbol.
func (t *SyntaxTree) Flatten(symbol string) []*SyntaxTree {
	if t.Symbol == symbol {
		return []*SyntaxTree{t}
	}
	var result []*SyntaxTree
	for _, ch := range t.Children {
		result = append(result, ch.Flatten(symbol)...)
	}
	return result
}

// String returns a bracketed representation of t, e.g.
//
//     S(adj(красивый), CLOTHES(куртка))
//
// Leaves print their token value. A node with a quoted literal as its only
// child prints like a leaf, e.g. CLOTHES(куртка) for CLOTHES ➞ 'куртка'.
func (t *SyntaxTree) String() string {
	if t == nil {
		return "<nil>"
	}
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t *SyntaxTree) write(b *strings.Builder) {
	b.WriteString(t.Symbol)
	b.WriteByte('(')
	if t.IsLeaf() {
		if t.Token != nil {
			b.WriteString(t.Token.Value)
		}
	} else if lit := t.Children[0]; len(t.Children) == 1 && isLiteral(lit) {
		b.WriteString(lit.Token.Value)
	} else {
		for i, ch := range t.Children {
			if i > 0 {
				b.WriteString(", ")
			}
			ch.write(b)
		}
	}
	b.WriteByte(')')
}

// isLiteral is true for leaves which matched a quoted literal.
func isLiteral(t *SyntaxTree) bool {
	return t.IsLeaf() && t.Token != nil && t.Symbol == t.Token.Value && t.Symbol != t.Token.Symbol
}

// Format returns an indented multi-line representation of t, one node per line:
//
//     S
//     ├── adj ......... красивый
//     ╰── CLOTHES ..... куртка
func (t *SyntaxTree) Format() string {
	var lines [][2]string
	var collect func(n *SyntaxTree, prefix, branch string)
	collect = func(n *SyntaxTree, prefix, branch string) {
		value := ""
		if n.IsLeaf() && n.Token != nil {
			value = n.Token.Value
		}
		lines = append(lines, [2]string{prefix + branch + n.Symbol, value})
		indent := prefix
		if branch == "├── " {
			indent += "│   "
		} else if branch == "╰── " {
			indent += "    "
		}
		for i, ch := range n.Children {
			if i == len(n.Children)-1 {
				collect(ch, indent, "╰── ")
			} else {
				collect(ch, indent, "├── ")
			}
		}
	}
	collect(t, "", "")
	width := 0
	for _, l := range lines {
		if w := len([]rune(l[0])); w > width {
			width = w
		}
	}
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l[0])
		if l[1] != "" {
			pad := width - len([]rune(l[0])) + 2
			b.WriteString(" " + strings.Repeat(".", pad) + " " + l[1])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// --- Forest ----------------------------------------------------------------

// Forest is a shared packed parse forest. Nodes added to a forest are
// interned: adding a node identical to an existing one returns the existing
// node. Leaves are identical if they carry the same symbol and token, inner
// nodes if they have the same symbol, rule and children.
//
// A forest is not safe for concurrent use.
type Forest struct {
	leaves map[leafKey]*SyntaxTree
	nodes  map[string]*SyntaxTree
	roots  []*SyntaxTree
}

type leafKey struct {
	sym string
	tok *glrnl.Token
}

// NewForest creates an empty parse forest.
func NewForest() *Forest {
	return &Forest{
		leaves: make(map[leafKey]*SyntaxTree),
		nodes:  make(map[string]*SyntaxTree),
	}
}

// AddTerminal adds a leaf for a token to the forest.
func (f *Forest) AddTerminal(sym string, tok *glrnl.Token) *SyntaxTree {
	key := leafKey{sym, tok}
	if leaf, ok := f.leaves[key]; ok {
		return leaf
	}
	leaf := NewLeaf(sym, tok)
	f.leaves[key] = leaf
	return leaf
}

// AddReduction adds a node for the reduction of a rule to the forest.
func (f *Forest) AddReduction(sym string, rule int, children []*SyntaxTree) *SyntaxTree {
	return f.Intern(NewNode(sym, rule, children))
}

// Intern adds a node to the forest, if no identical node is present, and
// returns the forest's node. Children of t are expected to be interned already.
func (f *Forest) Intern(t *SyntaxTree) *SyntaxTree {
	if t.IsLeaf() {
		key := leafKey{t.Symbol, t.Token}
		if leaf, ok := f.leaves[key]; ok {
			return leaf
		}
		f.leaves[key] = t
		return t
	}
	sig := signature(t)
	if node, ok := f.nodes[sig]; ok {
		tracer().Debugf("sharing node %s", node.Symbol)
		return node
	}
	f.nodes[sig] = t
	return t
}

// AddRoot registers t as the root of an accepted derivation. Roots are
// registered once.
func (f *Forest) AddRoot(t *SyntaxTree) bool {
	for _, r := range f.roots {
		if r == t {
			return false
		}
	}
	f.roots = append(f.roots, t)
	return true
}

// Roots returns the accepted derivations in order of registration.
func (f *Forest) Roots() []*SyntaxTree {
	return f.roots
}

// Size returns the number of nodes (leaves and inner nodes) in the forest.
func (f *Forest) Size() int {
	return len(f.leaves) + len(f.nodes)
}

func signature(t *SyntaxTree) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%d", t.Symbol, t.Rule)
	for _, ch := range t.Children {
		fmt.Fprintf(&b, "|%p", ch)
	}
	return b.String()
}
