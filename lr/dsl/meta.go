package dsl

import (
	"sync"

	"github.com/npillmayer/glrnl/lr"
	"github.com/npillmayer/glrnl/lr/glr"
	"github.com/npillmayer/glrnl/lr/scanner/lexmach"
	"github.com/timtadh/lexmachine"
)

// --- Meta grammar ----------------------------------------------------------

// metaRule is a rule of the grammar for grammar definitions.
type metaRule struct {
	lhs string
	rhs []string
}

// baseRules are the rules of the grammar DSL, without the rule for
// commit markers. Rule numbers start at 1, rule 0 is '@ ➞ S'.
var baseRules = []metaRule{
	{"S", []string{"S", "Rule"}},                 // 1
	{"S", []string{"Rule"}},                      // 2
	{"Rule", []string{"word", "sep", "Options"}}, // 3
	{"Options", []string{"Options", "alt", "Option"}},
	{"Options", []string{"Option"}},
	{"Option", []string{"Symbols", "weight"}}, // 6
	{"Option", []string{"Symbols"}},
	{"Symbols", []string{"Symbols", "Symbol"}},
	{"Symbols", []string{"Symbol"}},
	{"Symbol", []string{"word", "label"}}, // 10
	{"Symbol", []string{"word"}},
	{"Symbol", []string{"raw"}}, // 12
}

// metaRules are the rules of the grammar DSL.
var metaRules = append(baseRules[:len(baseRules):len(baseRules)],
	metaRule{"Rule", []string{"minus", "word", "sep", "Options"}}, // 13
)

func buildMetaGrammar(name string, rules []metaRule) (*lr.Grammar, error) {
	b := lr.NewGrammarBuilder(name)
	for _, mr := range rules {
		rb := b.LHS(mr.lhs)
		for _, sym := range mr.rhs {
			rb.N(sym)
		}
		rb.End()
	}
	return b.Grammar()
}

// --- Meta scanner ----------------------------------------------------------

var metaTokenIds = map[string]int{
	"word":   1,
	"raw":    2,
	"label":  3,
	"weight": 4,
	"sep":    5,
	"alt":    6,
	"minus":  7,
}

// Words are runs of ASCII letters, digits and underscores, or of bytes of
// multi-byte UTF-8 sequences.
const wordPattern = "([a-zA-Z0-9_]|[\x80-\xff])+"

func initMetaLexer(lexer *lexmachine.Lexer) {
	lexer.Add([]byte(wordPattern), lexmach.MakeToken("word", metaTokenIds["word"]))
	lexer.Add([]byte(`'[^']+'|"[^"]+"`), lexmach.MakeToken("raw", metaTokenIds["raw"]))
	lexer.Add([]byte(`<[^>]+>`), lexmach.MakeToken("label", metaTokenIds["label"]))
	lexer.Add([]byte(`\([0-9]+([.,][0-9]+)?\)`), lexmach.MakeToken("weight", metaTokenIds["weight"]))
	lexer.Add([]byte(`=`), lexmach.MakeToken("sep", metaTokenIds["sep"]))
	lexer.Add([]byte(`\|`), lexmach.MakeToken("alt", metaTokenIds["alt"]))
	lexer.Add([]byte(`\-`), lexmach.MakeToken("minus", metaTokenIds["minus"]))
	lexer.Add([]byte(`( |\t|\n|\r)+`), lexmach.Skip)
}

// --- Compiler --------------------------------------------------------------

// compiler bundles the meta grammar with its parser and scanner.
type compiler struct {
	grammar *lr.Grammar
	parser  *glr.Parser
	scanner *lexmach.LMAdapter
}

func newCompiler(rules []metaRule) (*compiler, error) {
	g, err := buildMetaGrammar("DSL", rules)
	if err != nil {
		return nil, err
	}
	table, err := lr.BuildTables(g)
	if err != nil {
		return nil, err
	}
	lm, err := lexmach.NewLMAdapter(initMetaLexer, nil, nil, metaTokenIds)
	if err != nil {
		return nil, err
	}
	return &compiler{
		grammar: g,
		parser:  glr.NewParser(g, table, glr.FullMatch(true)),
		scanner: lm,
	}, nil
}

var meta struct {
	once sync.Once
	c    *compiler
	err  error
}

// metaCompiler returns the compiler for the grammar DSL, creating it on
// first use.
func metaCompiler() (*compiler, error) {
	meta.once.Do(func() {
		meta.c, meta.err = newCompiler(metaRules)
		if meta.err != nil {
			tracer().Errorf("cannot create grammar compiler: %v", meta.err)
		}
	})
	return meta.c, meta.err
}

// MetaGrammar returns the grammar of the grammar DSL.
func MetaGrammar() (*lr.Grammar, error) {
	c, err := metaCompiler()
	if err != nil {
		return nil, err
	}
	return c.grammar, nil
}
