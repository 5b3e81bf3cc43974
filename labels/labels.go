/*
Package labels implements semantic checks for grammar rules.

Symbols on the right-hand side of a rule may carry labels, written in angle
brackets after the symbol:

	S = adj<agr-gnc=1> CLOTHES | CLOTHES adj<agr-gnc=-1>
	S = word<regex=^\d{1,2}$> Word<regex=^[а-яА-Я]+$>

Every label names a predicate in a Registry. When the GLR parser completes a
reduction for a rule with labels, the predicates are called with the label's
value, the tokens of the reduction's children, and the position of the
labeled symbol. If any predicate fails, the reduction is rejected.

Predicates are looked up by name. Grammars referencing names not present in
the registry are rejected when checked, before any parse takes place.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package labels

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/glrnl"
	"github.com/npillmayer/glrnl/lr"
	"github.com/npillmayer/glrnl/lr/glr"
	"github.com/npillmayer/glrnl/lr/sppf"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glrnl.labels'.
func tracer() tracing.Trace {
	return tracing.Select("glrnl.labels")
}

// ErrUnknownLabel is returned for labels without a registered predicate.
var ErrUnknownLabel = errors.New("unknown label")

// ErrLabelSyntax is returned for malformed labels or label values.
var ErrLabelSyntax = errors.New("malformed label")

// Predicate checks a label with value for the token at position i of tokens.
// Tokens are the tokens of the children of a reduction; tokens[i] is never nil,
// other positions may be.
type Predicate func(value string, tokens []*glrnl.Token, i int) bool

// ValueCheck checks the value of a label at grammar-compile time. Argument
// rule is the rule the label is attached to, i is the position of the
// labeled symbol.
type ValueCheck func(value string, rule *lr.Rule, i int) error

// Spec describes a label.
type Spec struct {
	Name     string
	HasParam bool       // label requires a value: name=value
	Pred     Predicate  // the predicate to call
	Check    ValueCheck // optional compile-time check of values
	Verbatim bool       // value is kept as written, blanks included
}

// Registry maps label names to predicates. It is safe for concurrent use.
type Registry struct {
	sync.RWMutex
	specs *treemap.Map // name → *Spec
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{specs: treemap.NewWithStringComparator()}
}

// Builtin creates a registry containing all the built-in labels.
func Builtin() *Registry {
	r := NewRegistry()
	registerBuiltins(r)
	return r
}

// Default is a registry with the built-in labels. Clients may register
// additional labels.
var Default = Builtin()

// Register adds a label to the registry, replacing a label of the same name.
func (r *Registry) Register(spec Spec) error {
	if spec.Name == "" || strings.ContainsAny(spec.Name, ",=<> ") || spec.Pred == nil {
		return fmt.Errorf("cannot register label %q: %w", spec.Name, ErrLabelSyntax)
	}
	r.Lock()
	defer r.Unlock()
	s := spec
	r.specs.Put(spec.Name, &s)
	tracer().Debugf("registered label %q", spec.Name)
	return nil
}

// Lookup finds the label for a name.
func (r *Registry) Lookup(name string) (Spec, bool) {
	r.RLock()
	defer r.RUnlock()
	if s, ok := r.specs.Get(name); ok {
		return *s.(*Spec), true
	}
	return Spec{}, false
}

// Names returns the names of all registered labels, sorted.
func (r *Registry) Names() []string {
	r.RLock()
	defer r.RUnlock()
	keys := r.specs.Keys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.(string)
	}
	return names
}

// --- Parsing labels --------------------------------------------------------

// Parse parses the text between angle brackets of a labeled symbol, e.g.
// "agr-gnc=1,gram=nomn". Labels are separated by commas, but a comma starts
// a new label only if it is followed by a registered label name. This way
// values (regular expressions, mostly) may contain commas.
//
// A label without a value gets the value "true".
func (r *Registry) Parse(text string) (lr.Labels, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("empty label list: %w", ErrLabelSyntax)
	}
	var labels lr.Labels
	for _, part := range r.split(text) {
		key, value, hasValue := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		spec, ok := r.Lookup(key)
		if !ok {
			return nil, fmt.Errorf("label %q: %w", key, ErrUnknownLabel)
		}
		if spec.HasParam && !hasValue {
			return nil, fmt.Errorf("label %q requires a value: %w", key, ErrLabelSyntax)
		}
		if !spec.HasParam && hasValue {
			return nil, fmt.Errorf("label %q does not take a value: %w", key, ErrLabelSyntax)
		}
		if !hasValue {
			value = "true"
		} else if !spec.Verbatim {
			value = strings.TrimSpace(value)
		}
		labels = append(labels, lr.Label{Key: key, Value: value})
	}
	return labels, nil
}

func (r *Registry) split(text string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == ',' && r.startsLabel(text[i+1:]) {
			parts = append(parts, text[start:i])
			start = i + 1
		}
	}
	return append(parts, text[start:])
}

func (r *Registry) startsLabel(s string) bool {
	s = strings.TrimLeft(s, " ")
	for _, name := range r.Names() {
		if strings.HasPrefix(s, name) {
			rest := s[len(name):]
			if rest == "" || rest[0] == '=' || rest[0] == ',' {
				return true
			}
		}
	}
	return false
}

// --- Checking grammars -----------------------------------------------------

// Check checks all labels of a grammar: every label has to be registered and
// its value has to be acceptable for the label. The raw marker for quoted
// literals is not a label and is ignored.
func (r *Registry) Check(g *lr.Grammar) error {
	for _, rule := range g.Rules() {
		for i := range rule.RHS {
			for _, l := range rule.Labels(i) {
				if l.Key == lr.RawLabel {
					continue
				}
				spec, ok := r.Lookup(l.Key)
				if !ok {
					return fmt.Errorf("rule %v: label %q: %w", rule, l.Key, ErrUnknownLabel)
				}
				if spec.Check != nil {
					if err := spec.Check(l.Value, rule, i); err != nil {
						return fmt.Errorf("rule %v: %w", rule, err)
					}
				}
			}
		}
	}
	return nil
}

// --- Validation ------------------------------------------------------------

// Validator returns a reduce validator for grammar g, to be used with a GLR
// parser.
func (r *Registry) Validator(g *lr.Grammar) glr.Validator {
	return func(tree *sppf.SyntaxTree) bool {
		return r.Validate(g, tree)
	}
}

// Validate checks the labels of the rule reduced for tree. Trees for rules
// without labels are always valid. For every labeled position with a token,
// the label's predicate is called. Children which do not derive a single
// token are not checked.
func (r *Registry) Validate(g *lr.Grammar, tree *sppf.SyntaxTree) bool {
	if tree == nil || tree.IsLeaf() {
		return true
	}
	rule := g.Rule(tree.Rule)
	if rule == nil || !rule.HasLabels() {
		return true
	}
	tokens := make([]*glrnl.Token, len(tree.Children))
	for i, ch := range tree.Children {
		tokens[i] = ch.LeafToken()
	}
	for i := range rule.RHS {
		if i >= len(tokens) || tokens[i] == nil {
			continue
		}
		for _, l := range rule.Labels(i) {
			if l.Key == lr.RawLabel {
				continue
			}
			spec, ok := r.Lookup(l.Key)
			if !ok {
				tracer().Errorf("label %q not registered, rejecting %v", l.Key, tree)
				return false
			}
			if !spec.Pred(l.Value, tokens, i) {
				tracer().Debugf("label %s=%s failed for #%d in %v", l.Key, l.Value, i, tree)
				return false
			}
		}
	}
	return true
}

// --- Helpers ---------------------------------------------------------------

// offsetOf interprets value as an offset relative to position i and returns
// the absolute position.
func offsetOf(value string, i int) (int, error) {
	off, err := strconv.Atoi(strings.TrimPrefix(value, "+"))
	if err != nil {
		return 0, fmt.Errorf("offset %q: %w", value, ErrLabelSyntax)
	}
	return i + off, nil
}
