package lr

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClosureIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glrnl.lr")
	defer teardown()
	//
	g := metaGrammar(t)
	ga := Analysis(g)
	for _, r := range g.Rules() {
		for dot := 0; dot <= len(r.RHS); dot++ {
			S := NewItemSet(Item{rule: r, dot: dot})
			C1 := ga.Closure(S)
			C2 := ga.Closure(C1)
			if !C1.Equals(C2) {
				t.Errorf("closure not idempotent for %v: %v vs %v", S, C1, C2)
			}
			if !C1.Contains(S.Items()...) {
				t.Errorf("closure of %v does not contain its kernel", S)
			}
		}
	}
	C0 := ga.Closure(NewItemSet(StartItem(g)))
	if C0.Size() != 4 { // @ ➞ •S, S ➞ •S Rule, S ➞ •Rule, Rule ➞ •word sep Options
		t.Errorf("expected closure of start item to contain 4 items, has %d", C0.Size())
	}
}

func TestMetaGrammarStates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glrnl.lr")
	defer teardown()
	//
	g := metaGrammar(t)
	lrgen := NewTableGenerator(Analysis(g))
	lrgen.CreateTables()
	table := lrgen.ActionTable()
	require.Equal(t, 17, table.StateCount())
	require.True(t, lrgen.HasConflicts)
	cell := func(state int, sym string) string {
		actions := table.Actions(state, sym)
		s := make([]string, len(actions))
		for i, a := range actions {
			s[i] = a.String()
		}
		return strings.Join(s, "/")
	}
	assert.Equal(t, "g1", cell(0, "S"))
	assert.Equal(t, "g2", cell(0, "Rule"))
	assert.Equal(t, "s3", cell(0, "word"))
	assert.Equal(t, "acc", cell(1, "$"))
	assert.Equal(t, "g4", cell(1, "Rule"))
	assert.Equal(t, "r2", cell(2, "word"))
	assert.Equal(t, "s5", cell(3, "sep"))
	assert.Equal(t, "s12", cell(6, "alt"))
	assert.Equal(t, "r7/s10", cell(8, "word"))
	assert.Equal(t, "s13", cell(8, "weight"))
	assert.Equal(t, "g14", cell(8, "Symbol"))
	assert.Equal(t, "s11", cell(8, "raw"))
	assert.Equal(t, "s15", cell(10, "label"))
	assert.Equal(t, "r11", cell(10, "weight"))
	assert.Equal(t, "g16", cell(12, "Option"))
	assert.Equal(t, "r4", cell(16, "$"))
	assert.Equal(t, []string{"Rule", "word", "$"}, table.Symbols(1))
	assert.Equal(t, []int{1}, lrgen.AcceptingStates())
	assert.Nil(t, table.Actions(3, "no-such-symbol"))
	assert.Panics(t, func() { table.Actions(17, "word") })
}

func TestStateCountStable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glrnl.lr")
	defer teardown()
	//
	g := metaGrammar(t)
	first, err := BuildTables(g)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		table, _ := BuildTables(g)
		if table.StateCount() != first.StateCount() {
			t.Fatalf("state count unstable: %d vs %d", table.StateCount(), first.StateCount())
		}
		for state := 0; state < table.StateCount(); state++ {
			assert.Equal(t, first.Symbols(state), table.Symbols(state))
		}
	}
}

func TestAgreementGrammarTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glrnl.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("Clothes")
	b.LHS("S").T("adj").L("agr-gnc", "1").T("CLOTHES").End()
	b.LHS("S").T("CLOTHES").T("adj").L("agr-gnc", "-1").End()
	g, err := b.Grammar()
	require.NoError(t, err)
	lrgen := NewTableGenerator(Analysis(g))
	lrgen.CreateTables()
	table := lrgen.ActionTable()
	require.Equal(t, 6, table.StateCount())
	assert.False(t, lrgen.HasConflicts)
	assert.Equal(t, []Action{{Type: ShiftAction, Target: 2}}, table.Actions(0, "adj"))
	assert.Equal(t, []Action{{Type: ShiftAction, Target: 3}}, table.Actions(0, "CLOTHES"))
	assert.Equal(t, []Action{{Type: ReduceAction, Target: 1}}, table.Actions(4, "$"))
	assert.Equal(t, []Action{{Type: ReduceAction, Target: 2}}, table.Actions(5, "$"))
	var out bytes.Buffer
	require.NoError(t, table.Dump(&out))
	t.Logf("\n%s", out.String())
	out.Reset()
	require.NoError(t, lrgen.CFSM().CFSM2GraphViz(&out))
	assert.Contains(t, out.String(), "s000 -> s002")
}
