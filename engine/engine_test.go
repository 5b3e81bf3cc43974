package engine

import (
	"strings"
	"testing"

	"github.com/npillmayer/glrnl"
	"github.com/npillmayer/glrnl/morph"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var clothes = map[string][]string{
	"CLOTHES": {"куртка", "пальто", "шуба"},
}

func TestRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glrnl.engine")
	defer teardown()
	//
	eng, err := New("S = adj<agr-gnc=1> CLOTHES | CLOTHES adj<agr-gnc=-1>", "S",
		WithDictionaries(clothes))
	require.NoError(t, err)
	results, err := eng.Parse("на вешалке висят пять красивых курток и старая шуба, а также пальто серое")
	require.NoError(t, err)
	trees := Trees(results)
	require.Equal(t, 3, len(trees))
	assert.Equal(t, "S(adj(красивый), CLOTHES(куртка))", trees[0].String())
	assert.Equal(t, "S(adj(старый), CLOTHES(шуба))", trees[1].String())
	assert.Equal(t, "S(CLOTHES(пальто), adj(серый))", trees[2].String())
	assert.Equal(t, "красивых курток", trees[0].Surface())
}

func TestGenderMismatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glrnl.engine")
	defer teardown()
	//
	eng, err := New("S = adj<agr-gnc=1> CLOTHES", "S", WithDictionaries(clothes))
	require.NoError(t, err)
	results, err := eng.Parse("серый шуба")
	require.NoError(t, err)
	assert.Empty(t, results)
	results, err = eng.Parse("серая шуба")
	require.NoError(t, err)
	assert.Equal(t, 1, len(Trees(results)))
}

func TestProbingRegex(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glrnl.engine")
	defer teardown()
	//
	eng, err := New(`S = word<regex=^\d{1,2}$> Word<regex=^[а-яА-Я]+$>`, "S")
	require.NoError(t, err)
	results, err := eng.Parse("12345 12 тест 2022 987654321")
	require.NoError(t, err)
	trees := Trees(results)
	require.Equal(t, 1, len(trees))
	assert.Equal(t, glrnl.Span{6, 17}, trees[0].Extent)
	assert.Equal(t, "12 тест", trees[0].Surface())
}

func TestFullMatchAndSentences(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glrnl.engine")
	defer teardown()
	//
	eng, err := New("S = adj CLOTHES", "S", WithDictionaries(clothes), FullMatch(true))
	require.NoError(t, err)
	results, err := eng.Parse("Красивая куртка. Куртка висит. Серое пальто")
	require.NoError(t, err)
	require.Equal(t, 2, len(results))
	assert.Equal(t, 0, results[0].Sentence.Offset)
	assert.Equal(t, "Серое пальто", results[1].Sentence.Text)
	assert.Equal(t, results[0].RunID, results[1].RunID)
	last := results[1].Tokens[len(results[1].Tokens)-1]
	assert.True(t, last.IsEOF())
	assert.Equal(t, uint64(len("Красивая куртка. Куртка висит. Серое пальто")), last.Span.From())
}

func TestRankByWeight(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glrnl.engine")
	defer teardown()
	//
	grammar := "S = X | Y\nX = adj noun (0,2)\nY = adj noun (0.9)"
	eng, err := New(grammar, "S", FullMatch(true), RankByWeight(true))
	require.NoError(t, err)
	results, err := eng.Parse("новый тест")
	require.NoError(t, err)
	trees := Trees(results)
	require.Equal(t, 2, len(trees))
	assert.Equal(t, "Y", trees[0].Children[0].Symbol)
}

func TestDictionaryErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glrnl.engine")
	defer teardown()
	//
	_, err := New("S = A B", "S", WithDictionaries(map[string][]string{
		"A": {"куртка"},
		"B": {"куртки"},
	}))
	assert.Error(t, err)
	_, err = New("S = = A", "S")
	assert.Error(t, err)
}

func TestCombineGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glrnl.engine")
	defer teardown()
	//
	text := CombineGrammar("S = CLOTHES", map[string][]string{
		"CLOTHES": {"Куртки", "шубы"},
		"EMPTY":   nil,
	}, morph.Default)
	lines := strings.Split(text, "\n")
	require.Equal(t, 3, len(lines))
	assert.True(t, strings.HasPrefix(lines[1], "Word = word | noun | adj"))
	assert.Equal(t, "CLOTHES = 'куртка' | 'шуба'", lines[2])
}

func TestTableCache(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glrnl.engine")
	defer teardown()
	//
	a1, err := NewAutomaton("S = noun verb", "S")
	require.NoError(t, err)
	a2, err := NewAutomaton("S  =  noun  verb", "S")
	require.NoError(t, err)
	assert.Same(t, a1.Table, a2.Table)
	a3, err := NewAutomaton("S = noun adj", "S")
	require.NoError(t, err)
	assert.NotSame(t, a1.Table, a3.Table)
}

func TestSplit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glrnl.engine")
	defer teardown()
	//
	sentences := Split("Первое предложение. Второе!! Третье№ ?")
	require.Equal(t, 3, len(sentences))
	assert.Equal(t, "Первое предложение", sentences[0].Text)
	assert.Equal(t, "Второе", sentences[1].Text)
	assert.Equal(t, len("Первое предложение. "), sentences[1].Offset)
	assert.Equal(t, "Третье", strings.TrimSpace(sentences[2].Text))
	assert.Equal(t, len("Третье№ ?"), len(sentences[2].Text))
	assert.Empty(t, Split(" ... "))
}
