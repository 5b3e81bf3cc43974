package glr

import (
	"testing"

	"github.com/npillmayer/glrnl"
	"github.com/npillmayer/glrnl/lr"
	"github.com/npillmayer/glrnl/lr/sppf"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
https://cs.au.dk/~amoeller/papers/ambiguity/ambiguity.pdf  -> Example 4

  1: S  ::= [A -]
  2: S  ::= [+ B]
  3: A  ::= [+ a]
  4: B  ::= [a -]
*/
func TestGLR1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glrnl.glr")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("G1")
	b.LHS("S").N("A").T("-").End()
	b.LHS("S").T("+").N("B").End()
	b.LHS("A").T("+").T("a").End()
	b.LHS("B").T("a").T("-").End()
	trees := parse(t, b, true, "+", "a", "-")
	if len(trees) != 2 {
		t.Fatalf("expected 2 derivations of '+a-', have %d", len(trees))
	}
	assert.Equal(t, "S(A(+(+), a(a)), -(-))", trees[0].String())
	assert.Equal(t, "S(+(+), B(a(a), -(-)))", trees[1].String())
	assert.Same(t, trees[0].Children[1], trees[1].Children[1].Children[1], "leaves must be shared")
}

func TestFullMatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glrnl.glr")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("G")
	b.LHS("S").T("a").T("b").End()
	trees := parse(t, b, true, "a", "b")
	assert.Equal(t, 1, len(trees))
	assert.Equal(t, glrnl.Span{0, 2}, trees[0].Extent)
	trees = parse(t, b, true, "a", "b", "a")
	assert.Equal(t, 0, len(trees), "full match must not accept trailing input")
	trees = parse(t, b, false, "a", "b", "a")
	assert.Equal(t, 1, len(trees), "probing must find embedded match")
	//
	g, _ := b.Grammar()
	table, _ := lr.BuildTables(g)
	p := NewParser(g, table)
	_, at := p.Diagnose(tokens("a", "a", "b"))
	assert.Equal(t, 1, at, "expected parser to get stuck at second token")
	_, at = p.Diagnose(tokens("a"))
	assert.Equal(t, 1, at, "expected parser to get stuck at end of input")
	_, at = p.Diagnose(tokens("a", "b"))
	assert.Equal(t, -1, at)
}

func TestExplicitEOF(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glrnl.glr")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("G")
	b.LHS("S").T("a").End()
	g, err := b.Grammar()
	require.NoError(t, err)
	table, err := lr.BuildTables(g)
	require.NoError(t, err)
	toks := tokens("a")
	toks = append(toks, glrnl.EOFToken(1))
	trees := NewParser(g, table).Parse(toks)
	assert.Equal(t, 1, len(trees))
	assert.Equal(t, 2, len(toks), "caller's tokens must not be modified")
}

func TestProbing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glrnl.glr")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("Clothes")
	b.LHS("S").T("adj").T("CLOTHES").End()
	b.LHS("S").T("CLOTHES").T("adj").End()
	g, err := b.Grammar()
	require.NoError(t, err)
	table, err := lr.BuildTables(g)
	require.NoError(t, err)
	toks := []*glrnl.Token{
		token("num", "пять", 0),
		token("adj", "красивый", 1),
		token("CLOTHES", "куртка", 2),
		token("conj", "и", 3),
		token("adj", "старый", 4),
		token("CLOTHES", "шуба", 5),
		token("punct", ",", 6),
		token("CLOTHES", "пальто", 7),
		token("adj", "серый", 8),
	}
	trees := NewParser(g, table, FullMatch(false)).Parse(toks)
	require.Equal(t, 3, len(trees))
	assert.Equal(t, "S(adj(красивый), CLOTHES(куртка))", trees[0].String())
	assert.Equal(t, "S(adj(старый), CLOTHES(шуба))", trees[1].String())
	assert.Equal(t, "S(CLOTHES(пальто), adj(серый))", trees[2].String())
}

func TestValidatorRejects(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glrnl.glr")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("Agreement")
	b.LHS("S").T("adj").T("noun").End()
	g, err := b.Grammar()
	require.NoError(t, err)
	table, err := lr.BuildTables(g)
	require.NoError(t, err)
	adj := token("adj", "красивая", 0)
	adj.Tag = &glrnl.Tag{POS: "ADJF", Gender: "femn"}
	noun := token("noun", "пиджак", 1)
	noun.Tag = &glrnl.Tag{POS: "NOUN", Gender: "masc"}
	sameGender := func(tree *sppf.SyntaxTree) bool {
		a, b := tree.Children[0].LeafToken(), tree.Children[1].LeafToken()
		return a.Tag.Gender == b.Tag.Gender
	}
	trees := NewParser(g, table, WithValidator(sameGender)).Parse([]*glrnl.Token{adj, noun})
	assert.Equal(t, 0, len(trees), "expected reduction to be rejected")
	trees = NewParser(g, table).Parse([]*glrnl.Token{adj, noun})
	assert.Equal(t, 1, len(trees), "expected parser without validator to accept")
}

// S ➞ P y,  P ➞ A | B,  A ➞ x,  B ➞ x
func TestMergeSharedTops(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glrnl.glr")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("Merge")
	b.LHS("S").N("P").T("y").End()
	b.LHS("P").N("A").End()
	b.LHS("P").N("B").End()
	b.LHS("A").T("x").End()
	b.LHS("B").T("x").End()
	g, err := b.Grammar()
	require.NoError(t, err)
	table, err := lr.BuildTables(g)
	require.NoError(t, err)
	r := NewParser(g, table).run(tokens("x", "y"))
	ycount := 0
	for _, node := range r.stack.nodes {
		if node.tree != nil && node.tree.Symbol == "y" {
			ycount++
			if len(node.preds) != 2 {
				t.Errorf("expected merged node for 'y' to have 2 predecessors, has %d", len(node.preds))
			}
		}
	}
	assert.Equal(t, 1, ycount, "expected exactly one stack node for 'y'")
	assert.Equal(t, 2, len(r.forest.Roots()))
}

// L ➞ L w | w
func TestGSSGrowsLinearly(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glrnl.glr")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("List")
	b.LHS("L").N("L").T("w").End()
	b.LHS("L").T("w").End()
	g, err := b.Grammar()
	require.NoError(t, err)
	table, err := lr.BuildTables(g)
	require.NoError(t, err)
	p := NewParser(g, table)
	words := func(n int) []string {
		w := make([]string, n)
		for i := range w {
			w[i] = "w"
		}
		return w
	}
	r10 := p.run(tokens(words(10)...))
	r20 := p.run(tokens(words(20)...))
	assert.Equal(t, 1, len(r10.forest.Roots()))
	assert.Equal(t, 1, len(r20.forest.Roots()))
	n10, n20 := r10.stack.size(), r20.stack.size()
	if n20 > 2*n10+2 {
		t.Errorf("expected GSS to grow linearly, have %d nodes for 10 words and %d for 20", n10, n20)
	}
}

func TestRawTerminalMatchesValue(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glrnl.glr")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("Raw")
	b.LHS("S").T("adj").Raw("куртка").End()
	trees := parse(t, b, false, "adj", "noun")
	require.Equal(t, 1, len(trees))
	leaf := trees[0].Children[1]
	assert.Equal(t, "куртка", leaf.Symbol)
	assert.Equal(t, "noun", leaf.Token.Symbol)
}

func TestRankByWeight(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glrnl.glr")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("Weighted")
	b.LHS("S").N("A").End()
	b.LHS("S").N("B").Weight(2.5).End()
	b.LHS("A").T("x").Weight(0.5).End()
	b.LHS("B").T("x").End()
	g, err := b.Grammar()
	require.NoError(t, err)
	table, err := lr.BuildTables(g)
	require.NoError(t, err)
	trees := NewParser(g, table).Parse(tokens("x"))
	require.Equal(t, 2, len(trees))
	assert.Equal(t, "A", trees[0].Children[0].Symbol)
	ranked := RankByWeight(g, trees)
	assert.Equal(t, "B", ranked[0].Children[0].Symbol)
	assert.InDelta(t, 2.5, Weight(g, ranked[0]), 0.0001)
	assert.InDelta(t, 0.5, Weight(g, ranked[1]), 0.0001)
}

// ----------------------------------------------------------------------

// parse builds the grammar, its tables and a parser, and parses a sequence
// of tokens given by their symbols. For tokens of symbol "noun", the value
// is set to "куртка".
func parse(t *testing.T, b *lr.GrammarBuilder, full bool, input ...string) []*sppf.SyntaxTree {
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	table, err := lr.BuildTables(g)
	if err != nil {
		t.Fatal(err)
	}
	toks := tokens(input...)
	for _, tok := range toks {
		if tok.Symbol == "noun" {
			tok.Value = "куртка"
		}
	}
	trees := NewParser(g, table, FullMatch(full)).Parse(toks)
	for i, tree := range trees {
		t.Logf("tree #%d: %v", i, tree)
	}
	return trees
}

func tokens(symbols ...string) []*glrnl.Token {
	toks := make([]*glrnl.Token, len(symbols))
	for i, sym := range symbols {
		toks[i] = token(sym, sym, uint64(i))
	}
	return toks
}

func token(sym, value string, pos uint64) *glrnl.Token {
	return glrnl.MakeToken(sym, value, glrnl.Span{pos, pos + 1})
}
