package lr

import (
	"github.com/emirpasic/gods/sets/linkedhashset"
)

// LRAnalysis is an object for grammar analysis. It computes the starter and
// follower sets of all non-terminals of a grammar.
//
//     ga := lr.Analysis(g)
//     ga.Followers("NP")      // terminals which may follow an "NP"
//
// Starters are what textbooks call FIRST-sets for epsilon-free grammars,
// followers are FOLLOW-sets without the end-of-input marker.
type LRAnalysis struct {
	g         *Grammar
	starters  map[string]*linkedhashset.Set
	followers map[string]*linkedhashset.Set
}

// Analysis creates an analyser for a grammar and computes starter and
// follower sets for every non-terminal.
func Analysis(g *Grammar) *LRAnalysis {
	ga := &LRAnalysis{
		g:         g,
		starters:  make(map[string]*linkedhashset.Set),
		followers: make(map[string]*linkedhashset.Set),
	}
	for _, A := range g.NonTerminals() {
		S := linkedhashset.New()
		ga.collectStarters(A, S, map[string]bool{})
		ga.starters[A] = S
	}
	for _, A := range g.NonTerminals() {
		F := linkedhashset.New()
		ga.collectFollowers(A, F, map[string]bool{})
		ga.followers[A] = F
		tracer().Debugf("Followers(%s) = %v", A, F.Values())
	}
	return ga
}

// Grammar returns the grammar this analyser operates on.
func (ga *LRAnalysis) Grammar() *Grammar {
	return ga.g
}

// Starters returns the terminals which may begin a derivation of non-terminal A.
// Terminals are starters of themselves.
func (ga *LRAnalysis) Starters(A string) []string {
	if !ga.g.IsNonTerminal(A) {
		return []string{A}
	}
	return asStrings(ga.starters[A].Values())
}

// Followers returns the terminals which may immediately follow non-terminal A.
func (ga *LRAnalysis) Followers(A string) []string {
	F, ok := ga.followers[A]
	if !ok {
		return nil
	}
	return asStrings(F.Values())
}

// For every rule A ➞ X …, add X if X is a terminal, otherwise the starters
// of X. Left recursion is cut by the visited set.
func (ga *LRAnalysis) collectStarters(A string, S *linkedhashset.Set, visited map[string]bool) {
	visited[A] = true
	for _, r := range ga.g.RulesFor(A) {
		X := r.RHS[0]
		if ga.g.IsNonTerminal(X) {
			if !visited[X] {
				ga.collectStarters(X, S, visited)
			}
		} else {
			S.Add(X)
		}
	}
}

// For every occurrence of A in a rule B ➞ … A Y …, add the starters of Y.
// If A is the last symbol of the rule, add the followers of B.
func (ga *LRAnalysis) collectFollowers(A string, F *linkedhashset.Set, seen map[string]bool) {
	seen[A] = true
	for _, r := range ga.g.rules {
		for i, X := range r.RHS {
			if X != A {
				continue
			}
			if i+1 == len(r.RHS) {
				if !seen[r.LHS] {
					ga.collectFollowers(r.LHS, F, seen)
				}
				continue
			}
			Y := r.RHS[i+1]
			if ga.g.IsNonTerminal(Y) {
				for _, s := range ga.starters[Y].Values() {
					F.Add(s)
				}
			} else {
				F.Add(Y)
			}
		}
	}
}
