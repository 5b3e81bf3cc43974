package glr

import (
	"testing"

	"github.com/npillmayer/glrnl/lr"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapConfig is a minimal schuko.Configuration for tests.
type mapConfig map[string]interface{}

func (c mapConfig) InitDefaults() {
	if _, ok := c["tracing.adapter"]; !ok {
		c["tracing.adapter"] = "test"
	}
}

func (c mapConfig) IsSet(key string) bool {
	_, ok := c[key]
	return ok
}

func (c mapConfig) GetString(key string) string {
	s, _ := c[key].(string)
	return s
}

func (c mapConfig) GetInt(key string) int {
	n, _ := c[key].(int)
	return n
}

func (c mapConfig) GetBool(key string) bool {
	b, _ := c[key].(bool)
	return b
}

func (c mapConfig) IsInteractive() bool {
	return false
}

func TestMaxGSSNodes(t *testing.T) {
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
	input := tokens("w", "w", "w", "w", "w", "w", "w", "w", "w", "w")
	//
	gconf.Initialize(mapConfig{"glr-max-gss-nodes": 5})
	defer gconf.Initialize(mapConfig{})
	r := p.run(input)
	assert.True(t, r.aborted, "expected parse to stop at 5 GSS nodes")
	assert.Equal(t, 0, len(r.forest.Roots()))
	//
	gconf.Initialize(mapConfig{"glr-max-gss-nodes": 0})
	r = p.run(input)
	assert.False(t, r.aborted)
	assert.Equal(t, 1, len(r.forest.Roots()))
}
