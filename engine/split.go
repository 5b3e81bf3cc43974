package engine

import (
	"regexp"
	"strings"
)

// Sentence is a portion of a text to be parsed on its own.
type Sentence struct {
	Text   string
	Offset int // byte offset of Text within the original text
}

var (
	sentenceEnd = regexp.MustCompile(`[!?;.\\]+ `)
	unparsable  = regexp.MustCompile("[^\\p{L}\\p{Nd}_\\s\\-.(){}\\[\\]\"'«»`%,:]")
)

// Split splits a text into sentences. Sentences end with a run of sentence
// punctuation followed by a space; the punctuation is dropped. Characters the
// default tokenizer cannot handle are replaced by spaces, keeping byte
// positions intact. Blank sentences are skipped.
func Split(text string) []Sentence {
	var sentences []Sentence
	start := 0
	add := func(from, to int) {
		s := clean(text[from:to])
		if strings.TrimSpace(s) != "" {
			sentences = append(sentences, Sentence{Text: s, Offset: from})
		}
	}
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		add(start, loc[0])
		start = loc[1]
	}
	add(start, len(text))
	return sentences
}

func clean(s string) string {
	return unparsable.ReplaceAllStringFunc(s, func(m string) string {
		return strings.Repeat(" ", len(m))
	})
}

