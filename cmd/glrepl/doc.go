/*
Package glrepl/main provides a command line tool for experiments with
GLR grammars for natural language. It compiles a grammar, dumps its
parser tables and parses text, either given on the command line or
entered interactively:

    glrepl tables --grammar clothes.glr --graphviz cfsm.dot
    glrepl parse  --grammar clothes.glr "Красивая куртка висит."
    glrepl repl   --config glrepl.toml

Settings are read from a TOML file (option --config). Command line flags
take precedence over settings from the file. Example:

    tracing.adapter = "go"
    tracelevel = "Info"
    grammar = "clothes.glr"
    start = "S"
    tokenizer = "words"         # or "chartypes": runs of alpha, digit, punct
    full-match = true
    glr-max-gss-nodes = 10000

    [dictionaries]
    CLOTHES = [ "куртка", "шуба", "пальто" ]


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glrnl.repl'
func tracer() tracing.Trace {
	return tracing.Select("glrnl.repl")
}

// selectors lists the trace keys of all packages of this module.
var selectors = []string{
	"glrnl.lr",
	"glrnl.glr",
	"glrnl.dsl",
	"glrnl.scanner",
	"glrnl.labels",
	"glrnl.morph",
	"glrnl.engine",
	"glrnl.repl",
}
