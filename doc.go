/*
Package glrnl is a GLR parsing toolbox for natural language text.

Grammars are written in a small DSL, where rules may carry labels
constraining the morphology of the matched words:

    S = adj<agr-gnc=1> CLOTHES | CLOTHES adj<agr-gnc=-1>

A grammar is compiled into LR(0) tables and executed by a generalized LR
parser which explores every viable parse in parallel on a graph-structured
stack. Package structure is as follows:

■ lr: Package lr implements grammars and LR(0) table construction, together with
supporting data structures like sparse tables, syntax trees, the GLR runtime
(lr/glr) and the grammar DSL compiler (lr/dsl).

■ labels: Package labels implements semantic predicates for rule labels.

■ morph: Package morph connects a morphological analyzer to the parser.

■ engine: Package engine bundles tokenizing, morphology and GLR parsing of
plain text.

■ cmd/glrepl: A command line tool to dump parser tables and to parse text,
interactively or from the command line.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package glrnl
