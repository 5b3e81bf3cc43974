package labels

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/npillmayer/glrnl"
	"github.com/npillmayer/glrnl/lr"
)

func registerBuiltins(r *Registry) {
	cache := &regexCache{patterns: make(map[string]*regexp.Regexp)}
	specs := []Spec{
		{Name: "gram", HasParam: true, Pred: gram},
		{Name: "class", HasParam: true, Pred: class},
		{Name: "regex", HasParam: true, Pred: cache.match, Check: cache.check, Verbatim: true},
		{Name: "reg-l-all", Pred: lowerAll},
		{Name: "reg-h-first", Pred: upperFirst},
		{Name: "reg-h-all", Pred: upperAll},
		{Name: "agr-gnc", HasParam: true, Pred: agreement(agrCase, agrGender, agrNumber), Check: checkOffset},
		{Name: "agr-nc", HasParam: true, Pred: agreement(agrCase, agrNumber), Check: checkOffset},
		{Name: "agr-c", HasParam: true, Pred: agreement(agrCase), Check: checkOffset},
		{Name: "agr-gn", HasParam: true, Pred: agreement(agrGender, agrNumber), Check: checkOffset},
		{Name: "agr-gc", HasParam: true, Pred: agreement(agrGender, agrCase), Check: checkOffset},
	}
	for _, spec := range specs {
		if err := r.Register(spec); err != nil {
			panic(err)
		}
	}
}

// gram=<grammeme>: the token's tag contains the grammeme.
func gram(value string, tokens []*glrnl.Token, i int) bool {
	return tokens[i].Tag.Has(value)
}

// class=<class>: the tokenizer class of the token.
func class(value string, tokens []*glrnl.Token, i int) bool {
	return tokens[i].Class == value
}

// --- Agreement -------------------------------------------------------------

type agrFeature func(*glrnl.Tag) string

func agrCase(t *glrnl.Tag) string   { return t.Case }
func agrGender(t *glrnl.Tag) string { return t.Gender }
func agrNumber(t *glrnl.Tag) string { return t.Number }

// agreement creates a predicate which relates the token at position i to the
// token at a relative offset given as the label's value. Features have to
// match wherever both tags specify a value.
func agreement(features ...agrFeature) Predicate {
	return func(value string, tokens []*glrnl.Token, i int) bool {
		j, err := offsetOf(value, i)
		if err != nil || j < 0 || j >= len(tokens) || tokens[j] == nil {
			return false
		}
		one, other := tokens[i].Tag, tokens[j].Tag
		if one == nil || other == nil {
			return false
		}
		for _, f := range features {
			a, b := f(one), f(other)
			if a != "" && b != "" && a != b {
				return false
			}
		}
		return true
	}
}

func checkOffset(value string, rule *lr.Rule, i int) error {
	j, err := offsetOf(value, i)
	if err != nil {
		return err
	}
	if j < 0 || j >= len(rule.RHS) || j == i {
		return fmt.Errorf("offset %s from position %d out of range: %w", value, i, ErrLabelSyntax)
	}
	return nil
}

// --- Letter case -----------------------------------------------------------

// reg-l-all: all letters are lower case, and there is at least one.
func lowerAll(_ string, tokens []*glrnl.Token, i int) bool {
	return allLetters(tokens[i].Surface, unicode.IsLower)
}

// reg-h-all: all letters are upper case, and there is at least one.
func upperAll(_ string, tokens []*glrnl.Token, i int) bool {
	return allLetters(tokens[i].Surface, unicode.IsUpper)
}

// reg-h-first: the first letter is upper case, all others are lower case.
func upperFirst(_ string, tokens []*glrnl.Token, i int) bool {
	first := true
	for _, r := range tokens[i].Surface {
		if !unicode.IsLetter(r) {
			continue
		}
		if first && !unicode.IsUpper(r) || !first && unicode.IsUpper(r) {
			return false
		}
		first = false
	}
	return !first
}

func allLetters(s string, is func(rune) bool) bool {
	cased := false
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		if !is(r) {
			return false
		}
		cased = true
	}
	return cased
}

// --- Regular expressions ---------------------------------------------------

// regexCache holds compiled patterns of regex-labels.
type regexCache struct {
	sync.RWMutex
	patterns map[string]*regexp.Regexp
}

func (c *regexCache) compile(expr string) (*regexp.Regexp, error) {
	c.RLock()
	re, ok := c.patterns[expr]
	c.RUnlock()
	if ok {
		return re, nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("regex %q: %v: %w", expr, err, ErrLabelSyntax)
	}
	if re.MatchString("") || re.MatchString("  ") {
		return nil, fmt.Errorf("regex %q matches blank text: %w", expr, ErrLabelSyntax)
	}
	c.Lock()
	c.patterns[expr] = re
	c.Unlock()
	return re, nil
}

func (c *regexCache) check(value string, _ *lr.Rule, _ int) error {
	_, err := c.compile(value)
	return err
}

// regex=<pattern>: the pattern is found in the token's surface text.
func (c *regexCache) match(value string, tokens []*glrnl.Token, i int) bool {
	re, err := c.compile(value)
	if err != nil {
		tracer().Errorf("%v", err)
		return false
	}
	return re.MatchString(strings.TrimSpace(tokens[i].Surface))
}
