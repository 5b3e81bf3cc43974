package sppf

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/

import (
	"github.com/npillmayer/glrnl"
)

/*
Walking a syntax tree is the usual way for clients to make use of a parse.
Every syntax tree delivered by the GLR parser is unambiguous, even if it
shares nodes with other trees of the same parse run. A Cursor therefore
views a tree as a plain tree of nodes, and clients may attach values to
nodes, propagating them upwards during a walk.
*/

// RuleNode represents a node occuring during a syntax tree walk.
type RuleNode struct {
	tree  *SyntaxTree
	Value interface{} // user-defined value of a node
}

// Symbol returns the grammar symbol a RuleNode refers to.
// It is either a terminal or the LHS of a reduced rule.
func (rnode *RuleNode) Symbol() string {
	return rnode.tree.Symbol
}

// Tree returns the syntax tree node.
func (rnode *RuleNode) Tree() *SyntaxTree {
	return rnode.tree
}

// Span returns the span of input this node covers.
func (rnode *RuleNode) Span() glrnl.Span {
	return rnode.tree.Extent
}

// A Cursor is a movable mark within a syntax tree, intended for navigating over
// rule nodes.
type Cursor struct {
	current *SyntaxTree
	stack   []frame // path from the start node to current
}

type frame struct {
	parent *SyntaxTree
	index  int
	dir    Direction
}

// SetCursor sets up a cursor at the root of a syntax tree.
func (t *SyntaxTree) SetCursor() *Cursor {
	if t == nil {
		return nil
	}
	return &Cursor{
		current: t,
		stack:   make([]frame, 0, 32),
	}
}

// Current returns the node the cursor is located at.
func (c *Cursor) Current() *SyntaxTree {
	return c.current
}

// RHS collects the children of a node as a slice of rule nodes.
func (c *Cursor) RHS(t *SyntaxTree) (int, []*RuleNode) {
	rhsnodes := make([]*RuleNode, len(t.Children))
	for i, ch := range t.Children {
		rhsnodes[i] = &RuleNode{tree: ch}
	}
	return t.Rule, rhsnodes
}

// Up moves the cursor up to the parent node of the current node, if any.
func (c *Cursor) Up() (*SyntaxTree, bool) {
	if len(c.stack) == 0 {
		return c.current, false
	}
	c.current = c.stack[len(c.stack)-1].parent
	c.stack = c.stack[:len(c.stack)-1]
	tracer().Debugf("UP Cursor @ %v", c.current.Symbol)
	return c.current, true
}

// Down moves the cursor down to the first child of the curent node, if any.
// dir lets clients start at either the leftmost child (default) or the rightmost
// child.
func (c *Cursor) Down(dir Direction) (*SyntaxTree, bool) {
	n := len(c.current.Children)
	if n == 0 {
		return c.current, false
	}
	i := 0
	if dir == RtoL {
		i = n - 1
	}
	c.stack = append(c.stack, frame{parent: c.current, index: i, dir: dir})
	c.current = c.current.Children[i]
	tracer().Debugf("DOWN Cursor @ %v", c.current.Symbol)
	return c.current, true
}

// Sibling moves the cursor to the next sibling of the current node, if any.
// Siblings are visited in the direction given for Down.
func (c *Cursor) Sibling() (*SyntaxTree, bool) {
	if len(c.stack) == 0 {
		return c.current, false
	}
	top := &c.stack[len(c.stack)-1]
	next := top.index + int(top.dir)
	if next < 0 || next >= len(top.parent.Children) {
		return c.current, false
	}
	top.index = next
	c.current = top.parent.Children[next]
	tracer().Debugf("SIBLING Cursor @ %v", c.current.Symbol)
	return c.current, true
}

// TopDown traverses a sub-tree top-down, applying Listener-methods for all nodes
// encountered. It returns a user-defined value, calculated by the listener.
func (c *Cursor) TopDown(listener Listener, dir Direction, breakmode Breakmode) interface{} {
	tracer().Debugf("TopDown starting at node %v", c.current.Symbol)
	return c.traverseTopDown(listener, dir, breakmode, 0)
}

func (c *Cursor) traverseTopDown(listener Listener, dir Direction, breakmode Breakmode, level int) interface{} {
	node := c.current
	if node.IsLeaf() {
		ctxt := makeCtxt(node.Extent, level, -1, nil)
		return listener.Terminal(node.Symbol, node.Token, ctxt)
	}
	ruleno, rhsNodes := c.RHS(node)
	localAttributes := listener.MakeAttrs(node.Symbol)
	ctxt := makeCtxt(node.Extent, level, ruleno, localAttributes)
	doContinue := listener.EnterRule(node.Symbol, rhsNodes, ctxt)
	if doContinue || breakmode == Continue {
		i := 0
		if dir == RtoL {
			i = len(rhsNodes) - 1
		}
		if _, ok := c.Down(dir); ok {
			for ; ok; _, ok = c.Sibling() {
				chvalue := c.traverseTopDown(listener, dir, breakmode, level+1)
				rhsNodes[i].Value = chvalue
				i += int(dir)
			}
			c.Up()
		}
	}
	return listener.ExitRule(node.Symbol, rhsNodes, ctxt)
}

// Walk traverses t top-down and left to right, calling listener for every node.
func Walk(t *SyntaxTree, listener Listener) interface{} {
	if t == nil {
		return nil
	}
	return t.SetCursor().TopDown(listener, LtoR, Continue)
}

// Direction lets clients decide wether children nodes should be traversed left-to-right
// (default) or right-to-left.
type Direction int

// Children nodes may be traversed left-to-right (default) or right-to-left.
const (
	LtoR Direction = 1
	RtoL Direction = -1
)

// Breakmode is a client hint wether to stop traversing on break-signals or not.
type Breakmode int

// Setting Continue will always traverse a complete (sub-)tree. Break will skip
// traversing sub-tree as soon as an Enter-function signals a break.
const (
	Continue Breakmode = iota
	Break
)

// --- Listener --------------------------------------------------------------

// Listener is a type for walking a syntax tree.
//
// Arguments are:
//
//     - string:      the grammar symbol at the current node
//     - []*RuleNode: the right-hand side of the grammar production at this node
//     - RuleCtxt:    contextual information for the node
//
// EnterRule returns a boolean value indicating if the traversal should continue to
// the children of this node. ExitRule and Terminal may return user-defined values
// to be propagated upwards of the tree.
type Listener interface {
	EnterRule(string, []*RuleNode, RuleCtxt) bool
	ExitRule(string, []*RuleNode, RuleCtxt) interface{}
	Terminal(string, *glrnl.Token, RuleCtxt) interface{}
	MakeAttrs(string) interface{}
}

// RuleCtxt is a context structure for Listeners.
type RuleCtxt struct {
	Span      glrnl.Span  // span of input covered by this rule
	Level     int         // nesting level
	RuleIndex int         // -1 for terminals
	Attrs     interface{} // client-defined attributes local to node
}

func makeCtxt(span glrnl.Span, level int, rule int, attrs interface{}) RuleCtxt {
	return RuleCtxt{
		Span:      span,
		Level:     level,
		RuleIndex: rule,
		Attrs:     attrs,
	}
}
