/*
Package morph provides morphological analysis for tokens of natural language
texts.

Tokenizers deliver words as tokens with symbol "word". A morphological Lexer
re-classifies these tokens: words contained in a dictionary get the
dictionary's name as their symbol, other words are mapped from their part of
speech to a terminal symbol (noun, adj, verb, …). Values of word tokens are
replaced by their normalized form (lemma), and the grammatical tag of the
word is attached to the token.

Morphological knowledge is provided by an Analyzer. This package contains a
dictionary-based analyzer, loading word forms from TOML files. A small
dictionary for Russian is built in and used by the default analyzer.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package morph

import (
	"bytes"
	_ "embed"
	"strings"

	"github.com/npillmayer/glrnl"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// tracer traces with key 'glrnl.morph'.
func tracer() tracing.Trace {
	return tracing.Select("glrnl.morph")
}

// Analyzer is an interface for morphological analyzers.
type Analyzer interface {
	Normalize(word string) string // normal form (lemma) of word
	Tag(word string) *glrnl.Tag   // grammatical tag of word, or nil if unknown
}

//go:embed ru.toml
var ruDictionary []byte

// Default is the default analyzer, using the built-in Russian dictionary.
// It is loaded on first use.
var Default = NewLazy(func() (Analyzer, error) {
	return LoadDictionary(bytes.NewReader(ruDictionary))
})

// Fold folds a word to lower case in Unicode normal form C. Dictionary
// lookups operate on folded words.
func Fold(word string) string {
	return norm.NFC.String(cases.Lower(language.Russian).String(strings.TrimSpace(word)))
}

// --- Tags ------------------------------------------------------------------

var (
	caseGrammemes = []string{"nomn", "gent", "datv", "accs", "ablt", "loct", "voct",
		"gen1", "gen2", "acc2", "loc1", "loc2"}
	genderGrammemes = []string{"masc", "femn", "neut", "ms-f"}
	numberGrammemes = []string{"sing", "plur"}
)

// ParseTag parses a tag in OpenCorpora notation, e.g.
//
//     NOUN,inan,femn plur,gent
//
// The first grammeme is the part of speech. Returns nil for empty input.
func ParseTag(s string) *glrnl.Tag {
	grammemes := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' '
	})
	if len(grammemes) == 0 {
		return nil
	}
	tag := &glrnl.Tag{POS: grammemes[0], Grammemes: grammemes}
	for _, g := range grammemes[1:] {
		switch {
		case contains(caseGrammemes, g):
			tag.Case = g
		case contains(genderGrammemes, g):
			tag.Gender = g
		case contains(numberGrammemes, g):
			tag.Number = g
		}
	}
	return tag
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

// --- Parts of speech -------------------------------------------------------

var posTerminals = map[string]string{
	"NOUN": "noun",
	"ADJF": "adj",
	"ADJS": "adj",
	"COMP": "adj",
	"VERB": "verb",
	"INFN": "verb",
	"PRTF": "pr",
	"PRTS": "pr",
	"GRND": "dpr",
	"NUMR": "num",
	"NUMB": "num",
	"ADVB": "adv",
	"PRED": "adv",
	"NPRO": "pnoun",
	"PREP": "prep",
	"CONJ": "conj",
	"PRCL": "prcl",
	"INTJ": "noun",
	"LATN": "lat",
}

// TagMapper maps a part of speech to a terminal symbol. It returns "" for
// parts of speech without a terminal.
type TagMapper func(pos string) string

// MapPOS is the default TagMapper.
func MapPOS(pos string) string {
	return posTerminals[pos]
}

// Terminals returns the terminal symbols MapPOS may produce, including "word"
// for words without a known part of speech.
func Terminals() []string {
	return []string{"word", "noun", "adj", "verb", "pr", "dpr", "num", "adv",
		"pnoun", "prep", "conj", "prcl", "lat"}
}
