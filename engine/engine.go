/*
Package engine provides a facade for parsing natural language texts with
GLR grammars.

An Engine bundles a tokenizer, a morphological lexer and a compiled grammar.
Grammars are extended by a default grammar for the non-terminal "Word",
which derives every word terminal, and by one rule per dictionary:

	eng, err := engine.New("S = adj<agr-gnc=1> CLOTHES | CLOTHES adj<agr-gnc=-1>", "S",
	    engine.WithDictionaries(map[string][]string{
	        "CLOTHES": {"куртка", "пальто", "шуба"},
	    }))
	results, err := eng.Parse("на вешалке висят пять красивых курток")

Texts are split into sentences, and every sentence is parsed on its own. By
default, parsers run in probing mode, i.e. they find all sub-sequences of
tokens which derive the start symbol.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/google/uuid"
	"github.com/npillmayer/glrnl"
	"github.com/npillmayer/glrnl/labels"
	"github.com/npillmayer/glrnl/lr/glr"
	"github.com/npillmayer/glrnl/lr/scanner"
	"github.com/npillmayer/glrnl/lr/sppf"
	"github.com/npillmayer/glrnl/morph"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glrnl.engine'.
func tracer() tracing.Trace {
	return tracing.Select("glrnl.engine")
}

// DefaultGrammar derives non-terminal "Word" from every word terminal.
var DefaultGrammar = "Word = " + strings.Join(morph.Terminals(), " | ")

// --- Options ---------------------------------------------------------------

type config struct {
	registry     *labels.Registry
	fullMatch    bool
	rank         bool
	tokenizer    scanner.Tokenizer
	analyzer     morph.Analyzer
	dictionaries map[string][]string
}

func makeConfig(opts []Option) *config {
	conf := &config{registry: labels.Default, analyzer: morph.Default}
	for _, opt := range opts {
		opt(conf)
	}
	return conf
}

// Option configures engines and automata.
type Option func(c *config)

// WithRegistry sets the label registry. Default is labels.Default.
func WithRegistry(r *labels.Registry) Option {
	return func(c *config) {
		if r != nil {
			c.registry = r
		}
	}
}

// FullMatch switches the parser to full-match mode, where the complete
// token sequence of a sentence has to derive the start symbol.
func FullMatch(b bool) Option {
	return func(c *config) {
		c.fullMatch = b
	}
}

// RankByWeight orders the trees for a sentence by the product of their rule
// weights.
func RankByWeight(b bool) Option {
	return func(c *config) {
		c.rank = b
	}
}

// WithTokenizer sets the tokenizer. Default is scanner.NewWordTokenizer().
func WithTokenizer(t scanner.Tokenizer) Option {
	return func(c *config) {
		c.tokenizer = t
	}
}

// WithAnalyzer sets the morphological analyzer. Default is morph.Default.
func WithAnalyzer(a morph.Analyzer) Option {
	return func(c *config) {
		if a != nil {
			c.analyzer = a
		}
	}
}

// WithDictionaries sets dictionaries of words, mapping a dictionary name to
// its words. Dictionary names are non-terminals of the grammar.
func WithDictionaries(d map[string][]string) Option {
	return func(c *config) {
		c.dictionaries = d
	}
}

// --- Engine ----------------------------------------------------------------

// Engine parses texts with a grammar.
type Engine struct {
	conf      *config
	tokenizer scanner.Tokenizer
	lexer     *morph.Lexer
	automaton *Automaton
}

// Result holds the syntax trees found for a sentence.
type Result struct {
	RunID    string   // identifies the call to Parse
	Sentence Sentence // sentence parsed
	Tokens   []*glrnl.Token
	Trees    []*sppf.SyntaxTree
}

// New creates an engine for a grammar definition with a given start symbol.
func New(grammar string, start string, opts ...Option) (*Engine, error) {
	conf := makeConfig(opts)
	e := &Engine{conf: conf, tokenizer: conf.tokenizer}
	if e.tokenizer == nil {
		e.tokenizer = scanner.NewWordTokenizer()
	}
	var err error
	if e.lexer, err = morph.NewLexer(conf.analyzer, conf.dictionaries); err != nil {
		return nil, err
	}
	text := CombineGrammar(grammar, conf.dictionaries, conf.analyzer)
	tracer().Debugf("grammar:\n%s", text)
	if e.automaton, err = NewAutomaton(text, start, opts...); err != nil {
		return nil, err
	}
	return e, nil
}

// Automaton returns the automaton of the engine.
func (e *Engine) Automaton() *Automaton {
	return e.automaton
}

// CombineGrammar appends the default grammar and one rule for every
// dictionary to a grammar definition. Dictionary words are normalized with
// analyzer a.
func CombineGrammar(grammar string, dictionaries map[string][]string, a morph.Analyzer) string {
	var b strings.Builder
	b.WriteString(grammar)
	b.WriteString("\n")
	b.WriteString(DefaultGrammar)
	names := treemap.NewWithStringComparator()
	for name, words := range dictionaries {
		names.Put(name, words)
	}
	it := names.Iterator()
	for it.Next() {
		words := it.Value().([]string)
		if len(words) == 0 {
			continue
		}
		lits := make([]string, len(words))
		for i, w := range words {
			lits[i] = quote(a.Normalize(w))
		}
		fmt.Fprintf(&b, "\n%s = %s", it.Key(), strings.Join(lits, " | "))
	}
	return b.String()
}

func quote(word string) string {
	if strings.Contains(word, "'") {
		return `"` + word + `"`
	}
	return "'" + word + "'"
}

// Tokenize splits a sentence into tokens and performs morphological
// analysis on them. Token spans are positions within the text the sentence
// has been split from.
func (e *Engine) Tokenize(s Sentence) ([]*glrnl.Token, error) {
	tokens, err := e.tokenizer.Tokenize(s.Text)
	for _, t := range tokens {
		t.Span = glrnl.Span{t.Span.From() + uint64(s.Offset), t.Span.To() + uint64(s.Offset)}
	}
	if err != nil {
		var desync *scanner.DesyncError
		if errors.As(err, &desync) {
			desync.Span = glrnl.Span{desync.Span.From() + uint64(s.Offset), desync.Span.To() + uint64(s.Offset)}
		}
		return nil, err
	}
	return e.lexer.Lex(tokens), nil
}

// Parse splits a text into sentences and parses every sentence. Results are
// returned for sentences with at least one syntax tree.
func (e *Engine) Parse(text string) ([]Result, error) {
	runID := uuid.New().String()
	sentences := Split(text)
	tracer().Infof("[%s] parsing %d sentences", runID, len(sentences))
	var results []Result
	for _, s := range sentences {
		tokens, err := e.Tokenize(s)
		if err != nil {
			return results, fmt.Errorf("[%s] %w", runID, err)
		}
		trees := e.automaton.Parse(tokens)
		tracer().Debugf("[%s] %d trees for %q", runID, len(trees), s.Text)
		if len(trees) == 0 {
			continue
		}
		if e.conf.rank {
			trees = glr.RankByWeight(e.automaton.Grammar, trees)
		}
		results = append(results, Result{RunID: runID, Sentence: s, Tokens: tokens, Trees: trees})
	}
	return results, nil
}

// Trees returns the syntax trees of all results.
func Trees(results []Result) []*sppf.SyntaxTree {
	var trees []*sppf.SyntaxTree
	for _, r := range results {
		trees = append(trees, r.Trees...)
	}
	return trees
}
