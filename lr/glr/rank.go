package glr

import (
	"sort"

	"github.com/npillmayer/glrnl/lr"
	"github.com/npillmayer/glrnl/lr/sppf"
)

// Weight returns the product of the weights of all rules applied in t.
func Weight(g *lr.Grammar, t *sppf.SyntaxTree) float64 {
	if t == nil || t.IsLeaf() {
		return 1.0
	}
	w := 1.0
	if r := g.Rule(t.Rule); r != nil {
		w = r.Weight
	}
	for _, ch := range t.Children {
		w *= Weight(g, ch)
	}
	return w
}

// RankByWeight orders accepted trees by descending weight. Trees of equal
// weight keep their order of acceptance. The slice is sorted in place and
// returned.
func RankByWeight(g *lr.Grammar, trees []*sppf.SyntaxTree) []*sppf.SyntaxTree {
	weights := make(map[*sppf.SyntaxTree]float64, len(trees))
	for _, t := range trees {
		weights[t] = Weight(g, t)
	}
	sort.SliceStable(trees, func(i, j int) bool {
		return weights[trees[i]] > weights[trees[j]]
	})
	return trees
}
