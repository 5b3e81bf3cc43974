/*
Package scanner defines an interface for tokenizers to be used with parsers of
package glr, together with some default implementations.

Tokenizers split a text into tokens, which are classified by a symbol. For a
natural language text, symbols usually are coarse classes like "word",
"number" or "comma". Tokens for words are later refined by a morphological
analyzer (see package morph).

Three implementations are provided: (1) a tokenizer driven by an ordered list
of regular expressions, (2) a tokenizer splitting a text into runs of
letters, digits and punctuation, and (3) an adapter for lexmachine, living in
sub-package `lexmach`.

Every tokenizer delivers a list of tokens terminated by an end-of-input token
with symbol glrnl.EOF. If a tokenizer cannot account for every byte of its
input, it reports a DesyncError.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"

	"github.com/npillmayer/glrnl"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glrnl.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("glrnl.scanner")
}

// Tokenizer is a scanner interface.
type Tokenizer interface {
	Tokenize(text string) ([]*glrnl.Token, error)
}

// DesyncError is reported by tokenizers which failed to match a portion of
// the input text.
type DesyncError struct {
	Span glrnl.Span // unmatched input
	Text string     // snippet of unmatched input
	Size int        // length of input
}

func (e *DesyncError) Error() string {
	return fmt.Sprintf("tokenizer stopped at position %d of %d at %q", e.Span.From(), e.Size, e.Text)
}

// Desync creates a DesyncError for an unmatched section of text, starting at
// byte position pos.
func Desync(text string, pos int, end int) *DesyncError {
	if end <= pos || end > len(text) {
		end = len(text)
	}
	snippet := text[pos:end]
	if len(snippet) > 20 {
		snippet = snippet[:20] + "…"
	}
	return &DesyncError{
		Span: glrnl.Span{uint64(pos), uint64(end)},
		Text: snippet,
		Size: len(text),
	}
}

// Lexeme is a helper function to receive a string from a token value.
func Lexeme(token interface{}) string {
	switch t := token.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Symbols extracts the symbols of a token list, excluding the end-of-input
// token.
func Symbols(tokens []*glrnl.Token) []string {
	syms := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !t.IsEOF() {
			syms = append(syms, t.Symbol)
		}
	}
	return syms
}
