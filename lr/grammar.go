package lr

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/emirpasic/gods/sets/linkedhashset"
	"github.com/npillmayer/glrnl"
)

// AugmentedStart is the synthetic start symbol of every grammar.
const AugmentedStart = "@"

// RawLabel marks a right-hand side symbol as a quoted literal.
const RawLabel = "raw"

// ErrEpsilonRule is returned when a grammar contains a rule with an empty
// right-hand side.
var ErrEpsilonRule = errors.New("epsilon rules are not supported")

// --- Labels ----------------------------------------------------------------

// Label is a semantic constraint attached to a right-hand side symbol of a
// rule. Labels without a value carry value "true".
type Label struct {
	Key   string
	Value string
}

// Labels is an ordered collection of labels for one right-hand side symbol.
// Keys may occur more than once.
type Labels []Label

// Keys returns the distinct label keys in order of appearance.
func (ls Labels) Keys() []string {
	var keys []string
	seen := make(map[string]bool, len(ls))
	for _, l := range ls {
		if !seen[l.Key] {
			seen[l.Key] = true
			keys = append(keys, l.Key)
		}
	}
	return keys
}

// Values returns all values for a label key.
func (ls Labels) Values(key string) []string {
	var vals []string
	for _, l := range ls {
		if l.Key == key {
			vals = append(vals, l.Value)
		}
	}
	return vals
}

// Has is true if key is present.
func (ls Labels) Has(key string) bool {
	for _, l := range ls {
		if l.Key == key {
			return true
		}
	}
	return false
}

// IsRaw is true if the labels mark a quoted literal.
func (ls Labels) IsRaw() bool {
	return len(ls) == 1 && ls[0].Key == RawLabel
}

func (ls Labels) String() string {
	s := make([]string, len(ls))
	for i, l := range ls {
		if l.Value == "true" {
			s[i] = l.Key
		} else {
			s[i] = l.Key + "=" + l.Value
		}
	}
	return strings.Join(s, ",")
}

// --- Rules -----------------------------------------------------------------

// Rule is a type for rules of a grammar. Rules cannot be shared between grammars.
type Rule struct {
	Serial int      // order number of this rule within a grammar
	LHS    string   // symbol of left hand side
	RHS    []string // right hand side symbols, never empty
	Params []Labels // nil, or one slot per RHS symbol
	Weight float64  // defaults to 1.0
	Commit bool     // reserved; set for rules written as '-LHS = …'
}

func newRule(lhs string) *Rule {
	return &Rule{LHS: lhs, Weight: 1.0}
}

// Labels returns the labels for the right-hand side symbol at position i.
func (r *Rule) Labels(i int) Labels {
	if r.Params == nil || i < 0 || i >= len(r.Params) {
		return nil
	}
	return r.Params[i]
}

// HasLabels is true if any right-hand side symbol of r carries a label other
// than the raw marker.
func (r *Rule) HasLabels() bool {
	for _, ls := range r.Params {
		for _, l := range ls {
			if l.Key != RawLabel {
				return true
			}
		}
	}
	return false
}

func (r *Rule) String() string {
	rhs := make([]string, len(r.RHS))
	for i, sym := range r.RHS {
		ls := r.Labels(i)
		switch {
		case ls.IsRaw():
			rhs[i] = "'" + sym + "'"
		case len(ls) > 0:
			rhs[i] = sym + "<" + ls.String() + ">"
		default:
			rhs[i] = sym
		}
	}
	lhs := r.LHS
	if r.Commit {
		lhs = "-" + lhs
	}
	s := fmt.Sprintf("#%d: %s = %s", r.Serial, lhs, strings.Join(rhs, " "))
	if r.Weight != 1.0 {
		s += fmt.Sprintf("   (%g)", r.Weight)
	}
	return s
}

// --- Grammar ---------------------------------------------------------------

// Grammar is a type for a context free grammar. Rule 0 is always the augmented
// start rule '@ ➞ S'. Grammars are immutable once created.
type Grammar struct {
	Name         string
	rules        []*Rule
	byLHS        *linkedhashmap.Map // symbol -> []int
	nonterminals *linkedhashset.Set
	terminals    *linkedhashset.Set
	raw          map[string]bool
}

// NewGrammar creates a grammar from a list of rules. The augmented start rule
// '@ ➞ start' is prepended and rules are re-numbered in order. Labels for the
// start rule are set to an empty placeholder.
//
// Returns ErrEpsilonRule if any rule has an empty right-hand side.
func NewGrammar(name string, start string, rules []*Rule) (*Grammar, error) {
	if start == "" {
		return nil, fmt.Errorf("grammar %s: start symbol missing", name)
	}
	r0 := newRule(AugmentedStart)
	r0.RHS = []string{start}
	r0.Params = []Labels{{}}
	all := append([]*Rule{r0}, rules...)
	return makeGrammar(name, all)
}

func makeGrammar(name string, rules []*Rule) (*Grammar, error) {
	g := &Grammar{
		Name:         name,
		byLHS:        linkedhashmap.New(),
		nonterminals: linkedhashset.New(),
		terminals:    linkedhashset.New(),
		raw:          make(map[string]bool),
	}
	for i, r := range rules {
		if len(r.RHS) == 0 {
			return nil, fmt.Errorf("grammar %s, rule %d for %q: %w", name, i, r.LHS, ErrEpsilonRule)
		}
		if r.Params != nil && len(r.Params) != len(r.RHS) {
			return nil, fmt.Errorf("grammar %s, rule %d for %q: %d label slots for %d symbols",
				name, i, r.LHS, len(r.Params), len(r.RHS))
		}
		r.Serial = i
		g.rules = append(g.rules, r)
		g.nonterminals.Add(r.LHS)
		inx, _ := g.byLHS.Get(r.LHS)
		if inx == nil {
			g.byLHS.Put(r.LHS, []int{i})
		} else {
			g.byLHS.Put(r.LHS, append(inx.([]int), i))
		}
	}
	for _, r := range g.rules {
		for i, sym := range r.RHS {
			if !g.nonterminals.Contains(sym) {
				g.terminals.Add(sym)
				if r.Labels(i).IsRaw() {
					g.raw[sym] = true
				}
			}
		}
	}
	g.terminals.Add(glrnl.EOF)
	tracer().Debugf("grammar %s: %d rules, %d non-terminals, %d terminals", name,
		len(g.rules), g.nonterminals.Size(), g.terminals.Size())
	return g, nil
}

// Rule gets a grammar rule by its serial number.
func (g *Grammar) Rule(no int) *Rule {
	if no < 0 || no >= len(g.rules) {
		return nil
	}
	return g.rules[no]
}

// Size returns the number of rules in the grammar.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// Rules returns all rules, starting with the augmented start rule.
func (g *Grammar) Rules() []*Rule {
	return g.rules
}

// StartSymbol returns the user-level start symbol.
func (g *Grammar) StartSymbol() string {
	return g.rules[0].RHS[0]
}

// RulesFor returns the rules with LHS sym, in grammar order.
func (g *Grammar) RulesFor(sym string) []*Rule {
	inx, ok := g.byLHS.Get(sym)
	if !ok {
		return nil
	}
	var rules []*Rule
	for _, i := range inx.([]int) {
		rules = append(rules, g.rules[i])
	}
	return rules
}

// IsTerminal is true if sym is a terminal of g.
func (g *Grammar) IsTerminal(sym string) bool {
	return g.terminals.Contains(sym)
}

// IsNonTerminal is true if sym appears on the left hand side of any rule.
func (g *Grammar) IsNonTerminal(sym string) bool {
	return g.nonterminals.Contains(sym)
}

// IsRaw is true if terminal sym is a quoted literal of the grammar.
func (g *Grammar) IsRaw(sym string) bool {
	return g.raw[sym]
}

// Terminals returns all terminals of g in order of appearance, ending with '$'.
func (g *Grammar) Terminals() []string {
	return asStrings(g.terminals.Values())
}

// NonTerminals returns all non-terminals of g in order of appearance.
func (g *Grammar) NonTerminals() []string {
	return asStrings(g.nonterminals.Values())
}

// EachSymbol iterates over all symbols of the grammar, non-terminals first.
func (g *Grammar) EachSymbol(mapper func(sym string)) {
	for _, A := range g.NonTerminals() {
		mapper(A)
	}
	for _, a := range g.Terminals() {
		mapper(a)
	}
}

// Dump is a debugging helper: it traces the grammar's rules.
func (g *Grammar) Dump() {
	tracer().Debugf("--- %s --------------------------------------------", g.Name)
	for _, r := range g.rules {
		tracer().Debugf("%s", r)
	}
	tracer().Debugf("-------------------------------------------------------")
}

func (g *Grammar) String() string {
	var b strings.Builder
	for _, r := range g.rules {
		b.WriteString(r.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Fingerprint returns a hash value for the rules of g. Grammars with
// identical rules (including labels and weights) have identical fingerprints.
func (g *Grammar) Fingerprint() string {
	type ruleSig struct {
		LHS    string
		RHS    []string
		Labels []string
		Weight float64
		Commit bool
	}
	sig := make([]ruleSig, len(g.rules))
	for i, r := range g.rules {
		ls := make([]string, len(r.RHS))
		for j := range r.RHS {
			ls[j] = r.Labels(j).String()
		}
		sig[i] = ruleSig{r.LHS, r.RHS, ls, r.Weight, r.Commit}
	}
	h, err := structhash.Hash(sig, 1)
	if err != nil {
		tracer().Errorf("cannot hash grammar %s: %v", g.Name, err)
		return g.String()
	}
	return h
}

func asStrings(vals []interface{}) []string {
	s := make([]string, len(vals))
	for i, v := range vals {
		s[i] = v.(string)
	}
	return s
}

// === Grammar Builder =======================================================

// GrammarBuilder is a builder type for grammars. Start symbol of the grammar
// is the LHS of the first rule.
//
//     b := lr.NewGrammarBuilder("G")
//     b.LHS("S").N("A").T("a").End()                // S  ➞ A a
//     b.LHS("A").T("b").L("gram", "nomn").End()     // A  ➞ b<gram=nomn>
//     b.LHS("A").Raw("c").Weight(0.5).End()         // A  ➞ 'c'   (0.5)
//     g, err := b.Grammar()
type GrammarBuilder struct {
	name  string
	rules []*Rule
	rule  *Rule
	err   error
}

// NewGrammarBuilder gets a new grammar builder, given the name of the grammar to build.
func NewGrammarBuilder(gname string) *GrammarBuilder {
	return &GrammarBuilder{name: gname}
}

// LHS starts a rule given the left hand side symbol (non-terminal).
func (gb *GrammarBuilder) LHS(s string) *RuleBuilder {
	gb.rule = newRule(s)
	return &RuleBuilder{gb: gb}
}

// Grammar returns the (completed) grammar, or an error if any rule was
// an epsilon rule.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	if gb.err != nil {
		return nil, gb.err
	}
	if len(gb.rules) == 0 {
		return nil, fmt.Errorf("grammar %s has no rules", gb.name)
	}
	return NewGrammar(gb.name, gb.rules[0].LHS, gb.rules)
}

// RuleBuilder is a builder type for a single rule. Create with
// GrammarBuilder.LHS(…).
type RuleBuilder struct {
	gb *GrammarBuilder
}

// N appends a non-terminal to the builder.
func (rb *RuleBuilder) N(s string) *RuleBuilder {
	return rb.sym(s)
}

// T appends a terminal to the builder.
func (rb *RuleBuilder) T(s string) *RuleBuilder {
	return rb.sym(s)
}

// Raw appends a quoted literal to the builder.
func (rb *RuleBuilder) Raw(s string) *RuleBuilder {
	rb.sym(s)
	return rb.L(RawLabel, "true")
}

// L attaches a label to the last symbol appended.
func (rb *RuleBuilder) L(key, value string) *RuleBuilder {
	r := rb.gb.rule
	if len(r.RHS) == 0 {
		rb.gb.err = fmt.Errorf("grammar %s: label %q without symbol", rb.gb.name, key)
		return rb
	}
	if r.Params == nil {
		r.Params = make([]Labels, len(r.RHS))
	}
	n := len(r.RHS) - 1
	r.Params[n] = append(r.Params[n], Label{Key: key, Value: value})
	return rb
}

// Weight sets the weight of the rule.
func (rb *RuleBuilder) Weight(w float64) *RuleBuilder {
	rb.gb.rule.Weight = w
	return rb
}

// Commit marks the rule as non-committing.
func (rb *RuleBuilder) Commit() *RuleBuilder {
	rb.gb.rule.Commit = true
	return rb
}

func (rb *RuleBuilder) sym(s string) *RuleBuilder {
	r := rb.gb.rule
	r.RHS = append(r.RHS, s)
	if r.Params != nil {
		r.Params = append(r.Params, nil)
	}
	return rb
}

// End ends a rule.
func (rb *RuleBuilder) End() *Rule {
	r := rb.gb.rule
	if len(r.RHS) == 0 {
		rb.gb.err = fmt.Errorf("grammar %s, rule for %q: %w", rb.gb.name, r.LHS, ErrEpsilonRule)
	}
	rb.gb.rules = append(rb.gb.rules, r)
	return r
}

// Epsilon sets epsilon as the RHS of a production. Epsilon rules are not
// supported and will make GrammarBuilder.Grammar() fail.
func (rb *RuleBuilder) Epsilon() *Rule {
	return rb.End()
}
