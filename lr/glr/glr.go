/*
Package glr implements a Generalized-LR parser for ambiguous grammars.

The parser executes the LR(0)-style action table built by package lr with a
graph-structured stack (GSS). All viable parses are explored in parallel,
stack tops holding equal sub-trees in the same state are merged, and every
accepted syntax tree is reported.

	g, _ := dsl.Compile("S = adj CLOTHES | CLOTHES adj", "S")
	table, _ := lr.BuildTables(g)
	p := glr.NewParser(g, table, glr.FullMatch(false))
	trees := p.Parse(tokens)

In full-match mode (the default) the whole token stream has to be derived
from the start symbol. With FullMatch(false) the parser probes for matches
anywhere in the input: a rule may start before every token and end after
every token. Tokens with a symbol not known to the grammar act as
end-of-input for all derivations in progress.

A Validator may reject a reduction on semantic grounds. A rejected sub-tree
never enters the GSS, while alternative derivations continue.

Configuration

Two global configuration keys are read with gconf:

	glr-drop-on-invariant   bool: trace internal inconsistencies and drop
	                        the affected branch instead of panicking
	glr-max-gss-nodes       int: stop a parse when the GSS grows beyond
	                        this number of nodes (0 = unlimited)

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package glr

import (
	"fmt"

	"github.com/npillmayer/glrnl"
	"github.com/npillmayer/glrnl/lr"
	"github.com/npillmayer/glrnl/lr/sppf"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glrnl.glr'.
func tracer() tracing.Trace {
	return tracing.Select("glrnl.glr")
}

// Validator is a hook to reject a completed sub-tree before it enters the
// stack. It receives a candidate node for a reduction, with all children
// already in place.
type Validator func(*sppf.SyntaxTree) bool

// Parser is a GLR parser for a grammar. A parser holds no state between
// parses and may be used by concurrent goroutines.
type Parser struct {
	g         *lr.Grammar
	table     *lr.Table
	fullMatch bool
	validate  Validator
}

// Option configures a parser.
type Option func(p *Parser)

// FullMatch sets the matching mode. If b is false, the parser looks for
// derivations of the start symbol anywhere in the input.
func FullMatch(b bool) Option {
	return func(p *Parser) {
		p.fullMatch = b
	}
}

// WithValidator sets a reduce validator. A nil validator accepts every reduction.
func WithValidator(v Validator) Option {
	return func(p *Parser) {
		p.validate = v
	}
}

// NewParser creates a parser for a grammar and its action table.
func NewParser(g *lr.Grammar, table *lr.Table, opts ...Option) *Parser {
	p := &Parser{
		g:         g,
		table:     table,
		fullMatch: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Grammar returns the grammar of the parser.
func (p *Parser) Grammar() *lr.Grammar {
	return p.g
}

// Parse runs the parser on a token sequence and returns all accepted syntax
// trees, in order of acceptance. If tokens does not end with an end-of-input
// token, one is appended. An empty result is not an error.
func (p *Parser) Parse(tokens []*glrnl.Token) []*sppf.SyntaxTree {
	r := p.run(tokens)
	return r.forest.Roots()
}

// Diagnose parses like Parse. In full-match mode it additionally reports the
// position of the token at which the last derivation in progress died, or -1
// if the parser did not get stuck. If the input is accepted, the position
// is always -1.
func (p *Parser) Diagnose(tokens []*glrnl.Token) ([]*sppf.SyntaxTree, int) {
	r := p.run(tokens)
	if len(r.forest.Roots()) > 0 {
		return r.forest.Roots(), -1
	}
	return r.forest.Roots(), r.stuckAt
}

// lookahead is the set of grammar symbols a token may be matched with: its
// symbol, and its value if the grammar contains it as a raw terminal.
type lookahead struct {
	token *glrnl.Token
	syms  []string
}

func (p *Parser) lookaheadFor(tok *glrnl.Token) lookahead {
	la := lookahead{token: tok}
	if p.g.IsTerminal(tok.Symbol) {
		la.syms = append(la.syms, tok.Symbol)
	}
	if tok.Value != tok.Symbol && p.g.IsRaw(tok.Value) {
		la.syms = append(la.syms, tok.Value)
	}
	return la
}

var endOfInput = lookahead{syms: []string{glrnl.EOF}}

// parseRun holds the state of one invocation of Parse.
type parseRun struct {
	p        *Parser
	stack    *gss
	forest   *sppf.Forest
	current  []int
	index    map[topKey]int // merge index for the current generation
	maxNodes int
	aborted  bool
	stuckAt  int // token position where all stack tops died
}

type topKey struct {
	tree  *sppf.SyntaxTree
	state int
}

func (p *Parser) run(tokens []*glrnl.Token) *parseRun {
	r := &parseRun{
		p:        p,
		stack:    newGSS(),
		forest:   sppf.NewForest(),
		maxNodes: gconf.GetInt("glr-max-gss-nodes"),
		stuckAt:  -1,
	}
	tokens = withEOF(tokens)
	r.newGeneration()
	if p.fullMatch {
		r.addTop(nil, 0, -1)
	}
	for i, tok := range tokens {
		tracer().Debugf("TOKEN #%d: %v", i, tok)
		la := p.lookaheadFor(tok)
		lookaheads := []lookahead{la}
		if !p.fullMatch {
			if len(la.syms) == 0 {
				tracer().Debugf("- not in grammar, interpret as end of input")
				lookaheads = nil
			}
			r.addTop(nil, 0, -1) // a rule may start here
			if !tok.IsEOF() {
				lookaheads = append(lookaheads, endOfInput)
			}
		}
		for _, la := range lookaheads {
			r.reduceAll(la)
			r.accept(la)
			if r.aborted {
				return r
			}
		}
		r.shift(la)
		tracer().Debugf("- STACK: %d tops, %d nodes", len(r.current), r.stack.size())
		if len(r.current) == 0 && p.fullMatch {
			tracer().Debugf("parser stuck at token #%d %v", i, tok)
			r.stuckAt = i
			break
		}
	}
	tracer().Infof("GLR parse: %d nodes in GSS, %d accepted trees", r.stack.size(), len(r.forest.Roots()))
	return r
}

func withEOF(tokens []*glrnl.Token) []*glrnl.Token {
	if len(tokens) > 0 && tokens[len(tokens)-1].IsEOF() {
		return tokens
	}
	var pos uint64
	if len(tokens) > 0 {
		pos = tokens[len(tokens)-1].Span.To()
	}
	return append(tokens[:len(tokens):len(tokens)], glrnl.EOFToken(pos))
}

// newGeneration starts a new set of stack tops.
func (r *parseRun) newGeneration() {
	r.current = r.current[:0:0]
	r.index = make(map[topKey]int)
}

// addTop adds a stack top for (tree, state) with predecessor pred (-1 for
// none). If an equal top already exists in the current generation, pred is
// added to its predecessors. changed reports if the GSS has been modified.
func (r *parseRun) addTop(tree *sppf.SyntaxTree, state int, pred int) (n int, changed bool) {
	key := topKey{tree, state}
	if n, ok := r.index[key]; ok {
		return n, r.stack.link(n, pred)
	}
	if r.maxNodes > 0 && r.stack.size() >= r.maxNodes {
		tracer().Errorf("GSS exceeds %d nodes, stopping parse", r.maxNodes)
		r.aborted = true
		return -1, false
	}
	n = r.stack.push(tree, state, pred)
	r.index[key] = n
	r.current = append(r.current, n)
	return n, true
}

// reduceAll performs reductions for a lookahead until no stack top yields
// any further reduction.
func (r *parseRun) reduceAll(la lookahead) {
	work := append([]int(nil), r.current...)
	for len(work) > 0 && !r.aborted {
		var next []int
		for _, n := range work {
			for _, a := range r.actions(n, la, lr.ReduceAction) {
				next = append(next, r.reduce(n, r.p.g.Rule(a.Target))...)
			}
		}
		work = next
	}
}

// reduce pops len(RHS) nodes along every path starting at n, and pushes a
// node for the reduced rule on top of the path's base.
func (r *parseRun) reduce(n int, rule *lr.Rule) []int {
	if rule == nil {
		invariant("reduce by unknown rule")
		return nil
	}
	var tops []int
	for _, path := range r.stack.paths(n, len(rule.RHS)) {
		base := path[0]
		gotos := r.p.table.Actions(r.stack.nodes[base].state, rule.LHS)
		found := false
		for _, a := range gotos {
			if a.Type != lr.GotoAction {
				continue
			}
			found = true
			children := make([]*sppf.SyntaxTree, 0, len(rule.RHS))
			for _, k := range path[1:] {
				children = append(children, r.stack.nodes[k].tree)
			}
			candidate := sppf.NewNode(rule.LHS, rule.Serial, children)
			if r.p.validate != nil && !r.p.validate(candidate) {
				tracer().Debugf("- REJECT: %v", candidate)
				continue
			}
			tree := r.forest.Intern(candidate)
			top, changed := r.addTop(tree, a.Target, base)
			if changed {
				tracer().Debugf("- REDUCE: %v by %v => %d", r.stack.nodes[n], rule, top)
				tops = append(tops, top)
			}
		}
		if !found {
			invariant(fmt.Sprintf("no goto for %s in state %d", rule.LHS, r.stack.nodes[base].state))
		}
	}
	return tops
}

func (r *parseRun) accept(la lookahead) {
	for _, n := range r.current {
		if len(r.actions(n, la, lr.AcceptAction)) > 0 {
			node := r.stack.nodes[n]
			if node.tree == nil {
				invariant("accepting stack top without a syntax tree")
				continue
			}
			if r.forest.AddRoot(node.tree) {
				tracer().Debugf("- ACCEPT: %v", node.tree)
			}
		}
	}
}

// shift creates the next generation of stack tops from all tops with a shift
// action for the token. New tops are merged on creation.
func (r *parseRun) shift(la lookahead) {
	type shifted struct {
		leaf  *sppf.SyntaxTree
		state int
		pred  int
	}
	var moves []shifted
	for _, n := range r.current {
		state := r.stack.nodes[n].state
		for _, sym := range la.syms {
			for _, a := range r.p.table.Actions(state, sym) {
				if a.Type == lr.ShiftAction {
					leaf := r.forest.AddTerminal(sym, la.token)
					moves = append(moves, shifted{leaf, a.Target, n})
				}
			}
		}
	}
	r.newGeneration()
	for _, m := range moves {
		r.addTop(m.leaf, m.state, m.pred)
		if r.aborted {
			return
		}
	}
}

// actions collects the actions of a given type for the state of stack node n
// under every symbol of a lookahead.
func (r *parseRun) actions(n int, la lookahead, typ lr.ActionType) []lr.Action {
	state := r.stack.nodes[n].state
	var result []lr.Action
	for _, sym := range la.syms {
		for _, a := range r.p.table.Actions(state, sym) {
			if a.Type == typ && !containsAction(result, a) {
				result = append(result, a)
			}
		}
	}
	return result
}

func containsAction(actions []lr.Action, a lr.Action) bool {
	for _, x := range actions {
		if x == a {
			return true
		}
	}
	return false
}

func invariant(msg string) {
	tracer().Errorf("GLR parser: %s", msg)
	if !gconf.GetBool("glr-drop-on-invariant") {
		panic("glr: internal inconsistency: " + msg)
	}
}
