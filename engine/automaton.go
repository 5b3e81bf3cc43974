package engine

import (
	"sync"

	"github.com/npillmayer/glrnl"
	"github.com/npillmayer/glrnl/lr"
	"github.com/npillmayer/glrnl/lr/dsl"
	"github.com/npillmayer/glrnl/lr/glr"
	"github.com/npillmayer/glrnl/lr/sppf"
)

// Automaton is a compiled grammar, together with its parser tables and a
// label validator.
type Automaton struct {
	Grammar *lr.Grammar
	Table   *lr.Table
	parser  *glr.Parser
}

// NewAutomaton compiles a grammar definition and creates the parser tables.
// Options WithRegistry and FullMatch are respected, other options are
// ignored. Automata for grammars with identical rules share their grammar
// and tables.
func NewAutomaton(grammar string, start string, opts ...Option) (*Automaton, error) {
	conf := makeConfig(opts)
	g, err := dsl.Compile(grammar, start, dsl.WithRegistry(conf.registry))
	if err != nil {
		return nil, err
	}
	g, table, err := tablesFor(g)
	if err != nil {
		return nil, err
	}
	a := &Automaton{Grammar: g, Table: table}
	a.parser = glr.NewParser(g, table,
		glr.FullMatch(conf.fullMatch),
		glr.WithValidator(conf.registry.Validator(g)),
	)
	return a, nil
}

// Parse runs the GLR parser on a list of tokens. Labels of grammar rules
// are validated for every reduction.
func (a *Automaton) Parse(tokens []*glrnl.Token) []*sppf.SyntaxTree {
	return a.parser.Parse(tokens)
}

// --- Table cache -----------------------------------------------------------

type compiled struct {
	g     *lr.Grammar
	table *lr.Table
}

var cache = struct {
	sync.RWMutex
	automata map[string]compiled // grammar fingerprint → grammar and tables
}{automata: make(map[string]compiled)}

// tablesFor returns parser tables for g. If tables for a grammar with
// identical rules have been built before, this grammar is returned instead
// of g, together with its tables.
func tablesFor(g *lr.Grammar) (*lr.Grammar, *lr.Table, error) {
	fp := g.Fingerprint()
	cache.RLock()
	c, ok := cache.automata[fp]
	cache.RUnlock()
	if ok {
		tracer().Debugf("re-using tables for grammar %s", g.Name)
		return c.g, c.table, nil
	}
	table, err := lr.BuildTables(g)
	if err != nil {
		return nil, nil, err
	}
	cache.Lock()
	defer cache.Unlock()
	if c, ok = cache.automata[fp]; ok {
		return c.g, c.table, nil
	}
	cache.automata[fp] = compiled{g: g, table: table}
	tracer().Infof("grammar %s: %d states", g.Name, table.StateCount())
	return g, table, nil
}
