package lr

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dekarrin/rosed"
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/glrnl"
	"github.com/npillmayer/glrnl/lr/sparse"
)

// https://stackoverflow.com/questions/12968048/what-is-the-closure-of-a-left-recursive-lr0-item-with-epsilon-transitions
// https://www.cs.bgu.ac.il/~comp151/wiki.files/ps6.html#sec-2-7-3

// ActionType is the kind of a parser action.
type ActionType int8

// Actions for parser action tables.
const (
	ShiftAction  ActionType = iota // shift a terminal, change to state Target
	GotoAction                     // shift a non-terminal after reduce, change to state Target
	ReduceAction                   // reduce with rule Target
	AcceptAction                   // accept input
)

// Action is an entry of a parser table. For shift and goto actions, Target is
// the successor state. For reduce actions, Target is the serial number of the
// rule to reduce.
type Action struct {
	Type   ActionType
	Target int
}

func (a Action) String() string {
	switch a.Type {
	case ShiftAction:
		return fmt.Sprintf("s%d", a.Target)
	case GotoAction:
		return fmt.Sprintf("g%d", a.Target)
	case ReduceAction:
		return fmt.Sprintf("r%d", a.Target)
	}
	return "acc"
}

// actions are stored in sparse matrices as int32
func (a Action) encode() int32 {
	return int32(a.Target)<<2 | int32(a.Type)
}

func decodeAction(v int32) Action {
	return Action{Type: ActionType(v & 3), Target: int(v >> 2)}
}

// === CFSM Construction =====================================================

// CFSMState is a state within the CFSM for a grammar.
type CFSMState struct {
	ID     int         // serial ID of this state
	items  *ItemSet    // configuration items within this state
	edges  []*cfsmEdge // outgoing transitions
	Accept bool        // is this an accepting state?
}

// CFSM edge between 2 states, directed and with a grammar symbol
type cfsmEdge struct {
	from  *CFSMState
	to    *CFSMState
	label string
}

// Items returns the configuration items of a state in canonical order.
func (s *CFSMState) Items() []Item {
	return s.items.Items()
}

// Transitions returns the successor state IDs of s for every symbol.
func (s *CFSMState) Transitions() map[string][]int {
	t := make(map[string][]int, len(s.edges))
	for _, e := range s.edges {
		t[e.label] = append(t[e.label], e.to.ID)
	}
	return t
}

// Dump is a debugging helper
func (s *CFSMState) Dump() {
	tracer().Debugf("--- state %03d -----------", s.ID)
	for _, i := range s.items.Items() {
		tracer().Debugf("    %v", i)
	}
	tracer().Debugf("-------------------------")
}

func (s *CFSMState) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.items.Size())
}

func (s *CFSMState) containsCompletedStartRule() bool {
	for _, i := range s.items.Items() {
		if i.rule.Serial == 0 && i.IsCompleted() {
			return true
		}
	}
	return false
}

// CFSM is the characteristic finite state machine for a LR grammar, i.e. the
// LR(0) state diagram. Will be constructed by a TableGenerator.
// Clients normally do not use it directly. Nevertheless, there are some methods
// defined on it, e.g, for debugging purposes, or even to
// compute your own tables from it.
type CFSM struct {
	g       *Grammar              // this CFSM is for Grammar g
	states  []*CFSMState          // all the states, indexed by ID
	byItems map[string]*CFSMState // states by canonical item set key
	edges   *arraylist.List       // all the edges between states
	S0      *CFSMState            // start state
}

// create an empty (initial) CFSM automata.
func emptyCFSM(g *Grammar) *CFSM {
	return &CFSM{
		g:       g,
		byItems: make(map[string]*CFSMState),
		edges:   arraylist.New(),
	}
}

// States returns all states of the CFSM, ordered by ID.
func (c *CFSM) States() []*CFSMState {
	return c.states
}

// State returns the state with a given ID, or nil.
func (c *CFSM) State(id int) *CFSMState {
	if id < 0 || id >= len(c.states) {
		return nil
	}
	return c.states[id]
}

// Add a new state to the CFSM.
func (c *CFSM) addState(iset *ItemSet) *CFSMState {
	s := &CFSMState{ID: len(c.states), items: iset}
	s.Accept = s.containsCompletedStartRule()
	c.states = append(c.states, s)
	c.byItems[iset.Key()] = s
	return s
}

// Find a CFSM state by the contained item set.
func (c *CFSM) findStateByItems(iset *ItemSet) *CFSMState {
	return c.byItems[iset.Key()]
}

func (c *CFSM) addEdge(s0, s1 *CFSMState, sym string) *cfsmEdge {
	for _, e := range s0.edges {
		if e.to == s1 && e.label == sym {
			return e
		}
	}
	e := &cfsmEdge{from: s0, to: s1, label: sym}
	s0.edges = append(s0.edges, e)
	c.edges.Add(e)
	return e
}

// TableGenerator is a generator object to construct GLR parser tables.
// Clients usually create a Grammar G, then a LRAnalysis-object for G,
// and then a table generator. TableGenerator.CreateTables() constructs
// the CFSM and parser tables for a GLR parser recognizing grammar G.
type TableGenerator struct {
	g            *Grammar
	ga           *LRAnalysis
	dfa          *CFSM
	actiontable  *Table
	HasConflicts bool
}

// NewTableGenerator creates a new TableGenerator for a (previously analysed) grammar.
func NewTableGenerator(ga *LRAnalysis) *TableGenerator {
	lrgen := &TableGenerator{}
	lrgen.g = ga.Grammar()
	lrgen.ga = ga
	return lrgen
}

// BuildTables is a shortcut to analyse a grammar and create its parser table.
func BuildTables(g *Grammar) (*Table, error) {
	if g == nil || g.Size() == 0 {
		return nil, errors.New("cannot build tables for empty grammar")
	}
	lrgen := NewTableGenerator(Analysis(g))
	lrgen.CreateTables()
	return lrgen.ActionTable(), nil
}

// CFSM returns the characteristic finite state machine (CFSM) for a grammar.
// Usually clients call lrgen.CreateTables() beforehand, but it is possible
// to call lrgen.CFSM() directly. The CFSM will be created, if it has not
// been constructed previously.
func (lrgen *TableGenerator) CFSM() *CFSM {
	if lrgen.dfa == nil {
		lrgen.dfa = lrgen.buildCFSM()
	}
	return lrgen.dfa
}

// ActionTable returns the combined ACTION/GOTO table for GLR-parsing a grammar.
// The tables have to be built by calling CreateTables() previously.
func (lrgen *TableGenerator) ActionTable() *Table {
	if lrgen.actiontable == nil {
		tracer().Errorf("tables not yet initialized")
	}
	return lrgen.actiontable
}

// CreateTables creates the necessary data structures for a GLR parser.
func (lrgen *TableGenerator) CreateTables() {
	lrgen.dfa = lrgen.CFSM()
	lrgen.actiontable, lrgen.HasConflicts = lrgen.BuildActionTable()
	tracer().Infof("grammar %s: %d states, conflicts=%v", lrgen.g.Name,
		len(lrgen.dfa.states), lrgen.HasConflicts)
}

// AcceptingStates returns all states of the CFSM which represent an accept action.
// Clients have to call CreateTables() first.
func (lrgen *TableGenerator) AcceptingStates() []int {
	if lrgen.dfa == nil {
		tracer().Errorf("tables not yet generated; call CreateTables() first")
		return nil
	}
	acc := make([]int, 0, 1)
	for _, state := range lrgen.dfa.states {
		if state.Accept {
			acc = append(acc, state.ID)
		}
	}
	return acc
}

type cfsmWork struct {
	parent    *CFSMState
	lookahead string
	items     *ItemSet
}

// Construct the characteristic finite state machine CFSM for a grammar.
// States are discovered breadth first. An item set seen before will not
// result in a new state, but just in an edge to the existing one.
func (lrgen *TableGenerator) buildCFSM() *CFSM {
	tracer().Debugf("=== build CFSM ==================================================")
	G := lrgen.g
	cfsm := emptyCFSM(G)
	closure0 := lrgen.ga.Closure(NewItemSet(StartItem(G)))
	worklist := arraylist.New()
	worklist.Add(cfsmWork{items: closure0})
	for !worklist.Empty() {
		x, _ := worklist.Get(0)
		worklist.Remove(0)
		w := x.(cfsmWork)
		if s := cfsm.findStateByItems(w.items); s != nil {
			cfsm.addEdge(w.parent, s, w.lookahead)
			continue
		}
		s := cfsm.addState(w.items)
		if w.parent == nil {
			cfsm.S0 = s
		} else {
			cfsm.addEdge(w.parent, s, w.lookahead)
		}
		s.Dump()
		follow := lrgen.ga.follow(s.items)
		it := follow.Iterator()
		for it.Next() {
			A := it.Key().(string)
			T := it.Value().(*ItemSet)
			tracer().Debugf("goto(%d) --%s--> %s", s.ID, A, T)
			worklist.Add(cfsmWork{parent: s, lookahead: A, items: T})
		}
	}
	return cfsm
}

// CFSM2GraphViz exports a CFSM to the Graphviz Dot format.
func (c *CFSM) CFSM2GraphViz(w io.Writer) error {
	var b strings.Builder
	b.WriteString(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, s := range c.states {
		b.WriteString(fmt.Sprintf("s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, nodecolor(s), s.ID, forGraphviz(s.items)))
	}
	it := c.edges.Iterator()
	for it.Next() {
		edge := it.Value().(*cfsmEdge)
		b.WriteString(fmt.Sprintf("s%03d -> s%03d [label=\"%s\"]\n", edge.from.ID, edge.to.ID,
			escapeGraphviz(edge.label)))
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func nodecolor(state *CFSMState) string {
	if state.Accept {
		return "lightgray"
	}
	return "white"
}

func forGraphviz(S *ItemSet) string {
	items := S.Items()
	s := make([]string, len(items))
	for i, item := range items {
		s[i] = escapeGraphviz(item.String())
	}
	return strings.Join(s, "\\l") + "\\l"
}

var graphvizEscaper = strings.NewReplacer(`"`, `\"`, `{`, `\{`, `}`, `\}`,
	`<`, `\<`, `>`, `\>`, `|`, `\|`)

func escapeGraphviz(s string) string {
	return graphvizEscaper.Replace(s)
}

// ===========================================================================

// BuildActionTable constructs the combined ACTION/GOTO table. This method is
// normally not called by clients, but rather via CreateTables().
//
// For building the table we iterate over all the states of the CFSM.
// An inner loop iterates over all the items within a CFSM-state.
// If an item's dot is behind the complete RHS of a rule, we produce a
// reduce-entry for the rule for each terminal from Followers(LHS) and for
// end-of-input. A completed start rule produces an accept entry.
// Edges of the CFSM produce shift entries for terminals and goto entries for
// non-terminals.
//
// Every table cell may hold more than one action, thus allowing for
// shift/reduce- or reduce/reduce-conflicts. The second return value tells if
// any such conflict is present.
func (lrgen *TableGenerator) BuildActionTable() (*Table, bool) {
	dfa := lrgen.CFSM()
	table := newTable(lrgen.g, len(dfa.states))
	for _, state := range dfa.states {
		tracer().Debugf("--- state %d --------------------------------", state.ID)
		for _, i := range state.items.Items() {
			if !i.IsCompleted() {
				continue
			}
			if i.rule.Serial == 0 {
				table.add(state.ID, glrnl.EOF, Action{Type: AcceptAction})
				continue
			}
			for _, la := range lrgen.ga.Followers(i.rule.LHS) {
				table.add(state.ID, la, Action{Type: ReduceAction, Target: i.rule.Serial})
			}
			table.add(state.ID, glrnl.EOF, Action{Type: ReduceAction, Target: i.rule.Serial})
		}
		for _, e := range state.edges {
			if lrgen.g.IsNonTerminal(e.label) {
				table.add(state.ID, e.label, Action{Type: GotoAction, Target: e.to.ID})
			} else {
				table.add(state.ID, e.label, Action{Type: ShiftAction, Target: e.to.ID})
			}
		}
	}
	hasConflicts := false
	for state := range dfa.states {
		table.matrix.Row(state, func(j int, values []int32) {
			if len(values) > 1 {
				tracer().Debugf("state %d has conflicts for %s: %s", state, table.symbols[j],
					table.cellString(state, j))
				hasConflicts = true
			}
		})
	}
	return table, hasConflicts
}

// Table is a GLR parser table. For every state and grammar symbol, it holds
// a list of actions. Tables are read-only once built and may be shared
// between parsers.
type Table struct {
	g       *Grammar
	matrix  *sparse.IntMatrix
	columns map[string]int // grammar symbol -> column
	symbols []string       // column -> grammar symbol
}

func newTable(g *Grammar, statecnt int) *Table {
	t := &Table{g: g, columns: make(map[string]int)}
	g.EachSymbol(func(A string) {
		t.columns[A] = len(t.symbols)
		t.symbols = append(t.symbols, A)
	})
	tracer().Infof("ACTION table of size %d x %d", statecnt, len(t.symbols))
	t.matrix = sparse.NewIntMatrix(statecnt, len(t.symbols), sparse.DefaultNullValue)
	return t
}

func (t *Table) add(state int, sym string, a Action) {
	j, ok := t.columns[sym]
	if !ok {
		panic(fmt.Sprintf("lr.Table.add() with unknown symbol %q", sym))
	}
	t.matrix.Add(state, j, a.encode())
}

// Grammar returns the grammar this table has been built for.
func (t *Table) Grammar() *Grammar {
	return t.g
}

// StateCount returns the number of states of the table.
func (t *Table) StateCount() int {
	return t.matrix.M()
}

// Actions returns all actions for a state and a grammar symbol, in the order
// of creation (reduce and accept actions before shift and goto actions).
// Symbols unknown to the grammar have no actions.
//
// Querying a state not present in the table is an internal error and will
// result in a panic.
func (t *Table) Actions(state int, sym string) []Action {
	if state < 0 || state >= t.matrix.M() {
		panic(fmt.Sprintf("lr.Table: no state %d in table for %s", state, t.g.Name))
	}
	j, ok := t.columns[sym]
	if !ok {
		return nil
	}
	vals := t.matrix.Values(state, j)
	if len(vals) == 0 {
		return nil
	}
	actions := make([]Action, len(vals))
	for i, v := range vals {
		actions[i] = decodeAction(v)
	}
	return actions
}

// Symbols returns all grammar symbols with actions in a given state, in column order.
func (t *Table) Symbols(state int) []string {
	var syms []string
	t.matrix.Row(state, func(j int, _ []int32) {
		syms = append(syms, t.symbols[j])
	})
	return syms
}

func (t *Table) cellString(state, j int) string {
	vals := t.matrix.Values(state, j)
	s := make([]string, len(vals))
	for i, v := range vals {
		s[i] = decodeAction(v).String()
	}
	return strings.Join(s, "/")
}

// Dump writes a text table listing all actions of the parser table.
func (t *Table) Dump(w io.Writer) error {
	data := [][]string{{"state", "symbol", "actions"}}
	for state := 0; state < t.matrix.M(); state++ {
		t.matrix.Row(state, func(j int, _ []int32) {
			data = append(data, []string{fmt.Sprintf("%d", state), t.symbols[j], t.cellString(state, j)})
		})
	}
	out := rosed.Edit("").
		InsertTableOpts(0, data, 80, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
	_, err := io.WriteString(w, out+"\n")
	return err
}
