package lr

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestGrammarBuilder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glrnl.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").N("NP").T("verb").End()
	b.LHS("NP").T("adj").L("agr-gnc", "1").T("noun").End()
	b.LHS("NP").Raw("пальто").Weight(0.5).End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	g.Dump()
	if g.Size() != 4 {
		t.Errorf("expected grammar to have 4 rules, has %d", g.Size())
	}
	if g.Rule(0).LHS != AugmentedStart || g.Rule(0).RHS[0] != "S" {
		t.Errorf("expected rule 0 to be augmented start rule, is %v", g.Rule(0))
	}
	assert.Equal(t, []string{"@", "S", "NP"}, g.NonTerminals())
	assert.Equal(t, []string{"verb", "adj", "noun", "пальто", "$"}, g.Terminals())
	assert.True(t, g.IsRaw("пальто"))
	assert.False(t, g.IsRaw("noun"))
	assert.Equal(t, "#2: NP = adj<agr-gnc=1> noun", g.Rule(2).String())
	assert.Equal(t, "#3: NP = 'пальто'   (0.5)", g.Rule(3).String())
	assert.Len(t, g.RulesFor("NP"), 2)
	assert.True(t, g.Rule(2).HasLabels())
	assert.False(t, g.Rule(3).HasLabels())
}

func TestGrammarEpsilon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glrnl.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").N("A").End()
	b.LHS("A").Epsilon()
	_, err := b.Grammar()
	if !errors.Is(err, ErrEpsilonRule) {
		t.Errorf("expected epsilon rule to be rejected, error is %v", err)
	}
	_, err = NewGrammar("G", "S", []*Rule{{LHS: "S", Weight: 1.0}})
	if !errors.Is(err, ErrEpsilonRule) {
		t.Errorf("expected epsilon rule to be rejected by NewGrammar, error is %v", err)
	}
}

func TestGrammarFingerprint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glrnl.lr")
	defer teardown()
	//
	build := func(w float64) *Grammar {
		b := NewGrammarBuilder("G")
		b.LHS("S").T("a").N("B").End()
		b.LHS("B").T("b").Weight(w).End()
		g, _ := b.Grammar()
		return g
	}
	g1, g2, g3 := build(1.0), build(1.0), build(2.0)
	if g1.Fingerprint() != g2.Fingerprint() {
		t.Errorf("expected identical grammars to have identical fingerprints")
	}
	if g1.Fingerprint() == g3.Fingerprint() {
		t.Errorf("expected grammars with different weights to have different fingerprints")
	}
}

func TestStartersAndFollowers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glrnl.lr")
	defer teardown()
	//
	g := metaGrammar(t)
	ga := Analysis(g)
	assert.Equal(t, []string{"word"}, ga.Starters("S"))
	assert.Equal(t, []string{"word", "raw"}, ga.Starters("Options"))
	assert.Equal(t, []string{"word"}, ga.Followers("S"))
	assert.ElementsMatch(t, []string{"word", "alt"}, ga.Followers("Options"))
	assert.ElementsMatch(t, []string{"weight", "word", "raw", "alt"}, ga.Followers("Symbol"))
	assert.Empty(t, ga.Followers(AugmentedStart))
}

func TestMutualRecursionTerminates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glrnl.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").N("A").T("x").End()
	b.LHS("A").N("B").T("a").End()
	b.LHS("A").T("a").End()
	b.LHS("B").N("A").T("b").End()
	b.LHS("B").N("A").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	ga := Analysis(g)
	assert.Equal(t, []string{"a"}, ga.Starters("B"))
	assert.ElementsMatch(t, []string{"x", "a", "b"}, ga.Followers("A"))
}

// metaGrammar is the grammar of the grammar DSL, without commit rules.
func metaGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("Meta")
	b.LHS("S").N("S").N("Rule").End()
	b.LHS("S").N("Rule").End()
	b.LHS("Rule").T("word").T("sep").N("Options").End()
	b.LHS("Options").N("Options").T("alt").N("Option").End()
	b.LHS("Options").N("Option").End()
	b.LHS("Option").N("Symbols").T("weight").End()
	b.LHS("Option").N("Symbols").End()
	b.LHS("Symbols").N("Symbols").N("Symbol").End()
	b.LHS("Symbols").N("Symbol").End()
	b.LHS("Symbol").T("word").T("label").End()
	b.LHS("Symbol").T("word").End()
	b.LHS("Symbol").T("raw").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}
