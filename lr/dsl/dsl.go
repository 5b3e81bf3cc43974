/*
Package dsl compiles grammars from a textual definition.

A grammar definition is a sequence of rules

	S = adj<agr-gnc=1> CLOTHES | CLOTHES adj<agr-gnc=-1>
	CLOTHES = 'куртка' | 'пальто' | 'шуба' (0.5)

Each rule has a left-hand side symbol, followed by '=' and one or more
alternatives, separated by '|'. An alternative is a sequence of symbols,
optionally followed by a weight in parentheses (a decimal separator may be
'.' or ','). A symbol is either a word, a word with labels in angle brackets,
or a quoted literal. Quoted literals match tokens by their value rather than
by their symbol. A left-hand side prefixed by '-' marks a non-committing rule;
the marker is stored with the rule but has no effect on parsing.

Grammar definitions are parsed by a GLR parser for a fixed meta grammar,
which is itself built from rules of package lr. Labels are checked against a
label registry (default is labels.Default), so unknown labels are reported at
compile time.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dsl

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/glrnl"
	"github.com/npillmayer/glrnl/labels"
	"github.com/npillmayer/glrnl/lr"
	"github.com/npillmayer/glrnl/lr/scanner"
	"github.com/npillmayer/glrnl/lr/sppf"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glrnl.dsl'.
func tracer() tracing.Trace {
	return tracing.Select("glrnl.dsl")
}

// ErrSyntax is reported for grammar definitions which do not conform to the
// grammar DSL.
var ErrSyntax = errors.New("syntax error in grammar definition")

// ErrAmbiguous is reported if a grammar definition has more than one
// interpretation.
var ErrAmbiguous = errors.New("ambiguous grammar definition")

// Error is an error in a grammar definition. It wraps either ErrSyntax or
// ErrAmbiguous.
type Error struct {
	Err  error
	Span glrnl.Span // position in the grammar definition
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%v at %s", e.Err, e.Span)
	}
	return fmt.Sprintf("%v at %s: %s", e.Err, e.Span, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Option configures Compile.
type Option func(c *config)

type config struct {
	name     string
	registry *labels.Registry
}

// Name sets the name of the grammar to create. Default is the start symbol.
func Name(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithRegistry sets the label registry to check labels against.
func WithRegistry(r *labels.Registry) Option {
	return func(c *config) {
		if r != nil {
			c.registry = r
		}
	}
}

// Compile creates a grammar from a grammar definition. Rule 0 of the grammar
// will be '@ ➞ start', followed by one rule for every alternative in the
// order of the definition.
//
// Compile reports an *Error for malformed or ambiguous definitions. Epsilon
// rules are reported as lr.ErrEpsilonRule, unknown or malformed labels as
// labels.ErrUnknownLabel or labels.ErrLabelSyntax.
func Compile(text string, start string, opts ...Option) (*lr.Grammar, error) {
	c, err := metaCompiler()
	if err != nil {
		return nil, err
	}
	return c.compile(text, start, opts...)
}

func (c *compiler) compile(text string, start string, opts ...Option) (*lr.Grammar, error) {
	conf := &config{name: start, registry: labels.Default}
	for _, opt := range opts {
		opt(conf)
	}
	tree, err := c.parse(text)
	if err != nil {
		return nil, err
	}
	rules, err := extractRules(tree, conf.registry)
	if err != nil {
		return nil, err
	}
	g, err := lr.NewGrammar(conf.name, start, rules)
	if err != nil {
		return nil, err
	}
	if err = conf.registry.Check(g); err != nil {
		return nil, err
	}
	tracer().Infof("compiled grammar %s with %d rules", g.Name, g.Size())
	return g, nil
}

// parse runs the meta parser on a grammar definition and returns the single
// derivation.
func (c *compiler) parse(text string) (*sppf.SyntaxTree, error) {
	tokens, err := c.scanner.Tokenize(text)
	if err != nil {
		var desync *scanner.DesyncError
		if errors.As(err, &desync) {
			return nil, &Error{Err: ErrSyntax, Span: desync.Span, Msg: fmt.Sprintf("unexpected %q", desync.Text)}
		}
		return nil, err
	}
	trees, stuck := c.parser.Diagnose(tokens)
	switch {
	case len(trees) == 0:
		at := tokens[len(tokens)-1]
		if stuck >= 0 && stuck < len(tokens) {
			at = tokens[stuck]
		}
		msg := fmt.Sprintf("unexpected %s", at.Symbol)
		if !at.IsEOF() {
			msg = fmt.Sprintf("unexpected %s %q", at.Symbol, at.Value)
		}
		return nil, &Error{Err: ErrSyntax, Span: at.Span, Msg: msg}
	case len(trees) > 1:
		return nil, &Error{
			Err:  ErrAmbiguous,
			Span: glrnl.Span{0, uint64(len(text))},
			Msg:  fmt.Sprintf("%d interpretations", len(trees)),
		}
	}
	tracer().Debugf("grammar definition = %v", trees[0])
	return trees[0], nil
}

// extractRules creates grammar rules from the derivation of a grammar
// definition.
func extractRules(tree *sppf.SyntaxTree, registry *labels.Registry) ([]*lr.Rule, error) {
	var rules []*lr.Rule
	for _, ruleNode := range tree.Flatten("Rule") {
		lhs, options, commit := ruleNode.Children[0], ruleNode.Children[2], false
		if len(ruleNode.Children) == 4 { // -LHS = …
			lhs, options, commit = ruleNode.Children[1], ruleNode.Children[3], true
		}
		for _, optionNode := range options.Flatten("Option") {
			rule := &lr.Rule{LHS: lhs.Token.Value, Weight: 1.0, Commit: commit}
			if len(optionNode.Children) == 2 {
				w, err := weight(optionNode.Children[1].Token)
				if err != nil {
					return nil, err
				}
				rule.Weight = w
			}
			labeled := false
			for _, symbolNode := range optionNode.Flatten("Symbol") {
				sym, params, err := symbol(symbolNode, registry)
				if err != nil {
					return nil, err
				}
				rule.RHS = append(rule.RHS, sym)
				rule.Params = append(rule.Params, params)
				labeled = labeled || len(params) > 0
			}
			if !labeled {
				rule.Params = nil
			}
			rules = append(rules, rule)
		}
	}
	return rules, nil
}

// symbol extracts a right-hand side symbol together with its labels.
func symbol(node *sppf.SyntaxTree, registry *labels.Registry) (string, lr.Labels, error) {
	tok := node.Children[0].Token
	if tok.Symbol == "raw" {
		lit := strings.TrimSpace(tok.Value[1 : len(tok.Value)-1])
		if lit == "" {
			return "", nil, &Error{Err: ErrSyntax, Span: tok.Span, Msg: "empty literal"}
		}
		return lit, lr.Labels{{Key: lr.RawLabel, Value: "true"}}, nil
	}
	if len(node.Children) == 1 {
		return tok.Value, nil, nil
	}
	text := node.Children[1].Token.Value
	text = text[1 : len(text)-1]
	params, err := registry.Parse(text)
	if err != nil {
		return "", nil, fmt.Errorf("symbol %s at %s: %w", tok.Value, node.Children[1].Token.Span, err)
	}
	return tok.Value, params, nil
}

// weight parses a weight token like '(0,5)'.
func weight(tok *glrnl.Token) (float64, error) {
	s := strings.Replace(tok.Value[1:len(tok.Value)-1], ",", ".", 1)
	w, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &Error{Err: ErrSyntax, Span: tok.Span, Msg: fmt.Sprintf("malformed weight %s", tok.Value)}
	}
	return w, nil
}
