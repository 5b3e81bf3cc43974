package sppf

import (
	"testing"

	"github.com/npillmayer/glrnl"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

// S ➞ adj CLOTHES
func makeTree(f *Forest) (*SyntaxTree, []*glrnl.Token) {
	toks := []*glrnl.Token{
		glrnl.MakeToken("adj", "красивый", glrnl.Span{0, 16}),
		glrnl.MakeToken("CLOTHES", "куртка", glrnl.Span{17, 29}),
	}
	adj := f.AddTerminal("adj", toks[0])
	clothes := f.AddTerminal("CLOTHES", toks[1])
	S := f.AddReduction("S", 1, []*SyntaxTree{adj, clothes})
	return S, toks
}

func TestTreeString(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glrnl.lr")
	defer teardown()
	//
	S, _ := makeTree(NewForest())
	if S.String() != "S(adj(красивый), CLOTHES(куртка))" {
		t.Errorf("unexpected tree string: %s", S)
	}
	assert.Equal(t, glrnl.Span{0, 29}, S.Extent)
	assert.Equal(t, 2, len(S.Leaves()))
	assert.Equal(t, "красивый куртка", S.Surface())
	t.Logf("\n%s", S.Format())
}

func TestForestSharing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glrnl.lr")
	defer teardown()
	//
	f := NewForest()
	S1, toks := makeTree(f)
	S2 := f.AddReduction("S", 1, []*SyntaxTree{
		f.AddTerminal("adj", toks[0]),
		f.AddTerminal("CLOTHES", toks[1]),
	})
	if S1 != S2 {
		t.Errorf("expected identical derivations to be shared")
	}
	if f.Size() != 3 {
		t.Errorf("expected forest to have 3 nodes, has %d", f.Size())
	}
	S3 := f.AddReduction("S", 2, []*SyntaxTree{S1.Children[0], S1.Children[1]})
	assert.NotSame(t, S1, S3, "different rules must not be shared")
	assert.True(t, f.AddRoot(S1))
	assert.False(t, f.AddRoot(S2))
	assert.Equal(t, 1, len(f.Roots()))
}

func TestFlattenAndLeafToken(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glrnl.lr")
	defer teardown()
	//
	f := NewForest()
	tok := glrnl.MakeToken("noun", "шуба", glrnl.Span{0, 8})
	n := f.AddTerminal("noun", tok)
	W := f.AddReduction("Word", 3, []*SyntaxTree{n})
	NP := f.AddReduction("NP", 4, []*SyntaxTree{W})
	S := f.AddReduction("S", 5, []*SyntaxTree{NP, f.AddReduction("NP", 4, []*SyntaxTree{W})})
	if NP.LeafToken() != tok {
		t.Errorf("expected unit chain NP ➞ Word ➞ noun to deliver token")
	}
	if S.LeafToken() != nil {
		t.Errorf("expected S not to have a single token")
	}
	nps := S.Flatten("NP")
	assert.Equal(t, 2, len(nps))
	assert.Equal(t, 0, len(S.Flatten("verb")))
}

func TestTraverse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glrnl.lr")
	defer teardown()
	//
	S, _ := makeTree(NewForest())
	l := &L{t: t}
	value := Walk(S, l)
	if !l.isBack {
		t.Errorf("Exit(S) has not been called")
	}
	if len(l.terminals) != 2 || l.terminals[0] != "красивый" {
		t.Errorf("Terminal(adj) has not been called first, have %v", l.terminals)
	}
	assert.Equal(t, "красивый куртка", value)
	l = &L{t: t}
	S.SetCursor().TopDown(l, RtoL, Continue)
	if len(l.terminals) != 2 || l.terminals[0] != "куртка" {
		t.Errorf("expected right-to-left traversal, have %v", l.terminals)
	}
}

func TestCursor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glrnl.lr")
	defer teardown()
	//
	S, _ := makeTree(NewForest())
	c := S.SetCursor()
	if _, ok := c.Up(); ok {
		t.Errorf("expected cursor at root not to move up")
	}
	n, ok := c.Down(LtoR)
	assert.True(t, ok)
	assert.Equal(t, "adj", n.Symbol)
	n, ok = c.Sibling()
	assert.True(t, ok)
	assert.Equal(t, "CLOTHES", n.Symbol)
	_, ok = c.Sibling()
	assert.False(t, ok)
	n, _ = c.Up()
	assert.Same(t, S, n)
}

// ---------------------------------------------------------------------------

type L struct {
	t         *testing.T
	isBack    bool
	terminals []string
}

func (l *L) EnterRule(sym string, rhs []*RuleNode, ctxt RuleCtxt) bool {
	l.t.Logf("+ enter %v", sym)
	return true
}

func (l *L) ExitRule(sym string, rhs []*RuleNode, ctxt RuleCtxt) interface{} {
	if sym == "S" {
		l.isBack = true
	}
	l.t.Logf("- exit %v", sym)
	s := ""
	for i, r := range rhs {
		if i > 0 {
			s += " "
		}
		s += r.Value.(string)
	}
	return s
}

func (l *L) Terminal(sym string, token *glrnl.Token, ctxt RuleCtxt) interface{} {
	l.terminals = append(l.terminals, token.Value)
	l.t.Logf("  terminal=%s", sym)
	return token.Value
}

func (l *L) MakeAttrs(string) interface{} {
	return nil
}

func TestLiteralString(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glrnl.lr")
	defer teardown()
	//
	f := NewForest()
	tok := glrnl.MakeToken("CLOTHES", "шуба", glrnl.Span{0, 8})
	lit := f.AddTerminal("шуба", tok)
	C := f.AddReduction("CLOTHES", 3, []*SyntaxTree{lit})
	if C.String() != "CLOTHES(шуба)" {
		t.Errorf("expected literal to print as CLOTHES(шуба), is %s", C)
	}
	w := f.AddReduction("Word", 4, []*SyntaxTree{f.AddTerminal("noun", glrnl.MakeToken("noun", "шуба", glrnl.Span{0, 8}))})
	if w.String() != "Word(noun(шуба))" {
		t.Errorf("expected Word(noun(шуба)), is %s", w)
	}
}
