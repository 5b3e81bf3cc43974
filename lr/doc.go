/*
Package lr implements prerequisites for generalized LR parsing of natural
language text.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Terminals are
plain strings, matched against the symbol of input tokens. Symbols on
the right hand side may carry labels, which are semantic constraints
checked by a parser's validator (see package labels).
Grammars may not contain epsilon-productions.

Example:

    b := lr.NewGrammarBuilder("G")
    b.LHS("S").N("NP").T("verb").End()                     // S   ➞  NP verb
    b.LHS("NP").T("adj").L("agr-gnc", "1").T("noun").End() // NP  ➞  adj<agr-gnc=1> noun
    b.LHS("NP").T("noun").End()                            // NP  ➞  noun

This results in the following trivial grammar:

   b.Grammar().Dump()

   #0: @ = S
   #1: S = NP verb
   #2: NP = adj<agr-gnc=1> noun
   #3: NP = noun

Rule 0 is always the augmented start rule. Usually grammars are not built
by hand, but compiled from a grammar DSL by package lr/dsl.

Static Grammar Analysis

After the grammar is complete, it has to be analysed. For this end, the
grammar is subjected to an LRAnalysis object, which computes starter and
follower sets for the grammar's non-terminals.

    ga := lr.Analysis(g)  // analyser for grammar above
    for _, A := range ga.Grammar().NonTerminals() {
        fmt.Printf("Followers(%s) = %v\n", A, ga.Followers(A))
    }

Parser Construction

Using grammar analysis as input, a bottom-up parser can be constructed.
First a characteristic finite state machine (CFSM) is built from the
grammar. The CFSM will then be transformed into a combined ACTION/GOTO
table for a GLR parser. Table cells may hold more than one action: conflicts
are not resolved, but explored in parallel by the GLR parser
(package lr/glr). The CFSM will not be thrown away,
but is made available to the client.  This is intended
for debugging purposes. It can be exported to Graphviz's Dot-format.

Example:

    lrgen := lr.NewTableGenerator(ga)  // ga is a LRAnalysis, see above
    lrgen.CreateTables()               // construct GLR parser table
    table := lrgen.ActionTable()

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glrnl.lr'.
func tracer() tracing.Trace {
	return tracing.Select("glrnl.lr")
}
