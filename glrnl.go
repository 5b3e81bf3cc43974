package glrnl

import (
	"fmt"
	"strings"
)

// --- Tokens ----------------------------------------------------------------

// EOF is the reserved end-of-input symbol. Every token stream handed to a
// parser ends with a token carrying this symbol.
const EOF = "$"

// Token represents an input token. Tokens are usually produced by a tokenizer
// and possibly re-classified by a morphological lexer.
//
// An example would be a token for an inflected Russian noun:
//
//    Symbol  = "noun"      // terminal symbol of the grammar
//    Value   = "куртка"    // normalized form (lemma)
//    Surface = "курток"    // text as it appeared in the input
//    Class   = "word"      // tokenizer class which matched the text
//    Span    = 31…43       // byte positions in the input text
//    Tag     = {NOUN,gent,femn,plur}
//
// Tokens of grammars without morphology will carry identical Value and Surface.
type Token struct {
	Symbol  string
	Value   string
	Surface string
	Class   string
	Span    Span
	Tag     *Tag
}

// MakeToken creates a token without morphological information.
// Symbol and class are set to sym, value and surface are set to text.
func MakeToken(sym, text string, span Span) *Token {
	return &Token{
		Symbol:  sym,
		Value:   text,
		Surface: text,
		Class:   sym,
		Span:    span,
	}
}

// EOFToken returns an end-of-input token at byte position pos.
func EOFToken(pos uint64) *Token {
	return &Token{Symbol: EOF, Class: EOF, Span: Span{pos, pos}}
}

// IsEOF is true if t is an end-of-input token.
func (t *Token) IsEOF() bool {
	return t != nil && t.Symbol == EOF
}

func (t *Token) String() string {
	if t == nil {
		return "<nil>"
	}
	if t.Value == t.Surface || t.Surface == "" {
		return fmt.Sprintf("%s(%q)%s", t.Symbol, t.Value, t.Span)
	}
	return fmt.Sprintf("%s(%q/%q)%s", t.Symbol, t.Value, t.Surface, t.Span)
}

// --- Morphological tags ----------------------------------------------------

// Tag is a structured grammatical tag, as delivered by a morphological
// analyzer. Empty fields are unknown or not applicable for the part of speech.
// Grammemes holds every grammeme the analyzer reported, including the ones
// broken out into fields.
type Tag struct {
	POS       string // part of speech, e.g. "NOUN", "ADJF"
	Case      string // e.g. "nomn", "gent"
	Gender    string // e.g. "masc", "femn", "neut"
	Number    string // "sing" or "plur"
	Grammemes []string
}

// Has is true if grammeme g is part of the tag.
func (t *Tag) Has(g string) bool {
	if t == nil || g == "" {
		return false
	}
	if t.POS == g || t.Case == g || t.Gender == g || t.Number == g {
		return true
	}
	for _, x := range t.Grammemes {
		if x == g {
			return true
		}
	}
	return false
}

func (t *Tag) String() string {
	if t == nil {
		return "{}"
	}
	var gg []string
	for _, g := range []string{t.POS, t.Case, t.Gender, t.Number} {
		if g != "" {
			gg = append(gg, g)
		}
	}
	return "{" + strings.Join(gg, ",") + "}"
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a run of input. For every terminal
// and non-terminal, a syntax tree will track which input positions this
// symbol covers. A span denotes a start position and the position just
// behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

func (s Span) Extend(other Span) Span {
	if s.IsNull() {
		return other
	}
	if other.IsNull() {
		return s
	}
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
