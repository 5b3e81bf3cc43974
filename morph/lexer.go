package morph

import (
	"fmt"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/glrnl"
)

// WordSymbol is the symbol of tokens subject to morphological analysis.
const WordSymbol = "word"

// Lexer re-classifies word tokens using morphological analysis and
// dictionaries of words.
type Lexer struct {
	analyzer   Analyzer
	mapper     TagMapper
	dictionary map[string]string // normalized word → dictionary name
}

// LexerOption configures a Lexer.
type LexerOption func(l *Lexer)

// WithTagMapper sets the mapping from parts of speech to terminals.
// Default is MapPOS.
func WithTagMapper(m TagMapper) LexerOption {
	return func(l *Lexer) {
		if m != nil {
			l.mapper = m
		}
	}
}

// NewLexer creates a lexer from an analyzer and a set of dictionaries. Words
// of dictionaries are normalized with the analyzer. A word may belong to
// one dictionary only, otherwise NewLexer returns an error.
func NewLexer(a Analyzer, dictionaries map[string][]string, opts ...LexerOption) (*Lexer, error) {
	if a == nil {
		a = Default
	}
	l := &Lexer{
		analyzer:   a,
		mapper:     MapPOS,
		dictionary: make(map[string]string),
	}
	for _, opt := range opts {
		opt(l)
	}
	names := treemap.NewWithStringComparator() // stable error reporting
	for name, words := range dictionaries {
		names.Put(name, words)
	}
	it := names.Iterator()
	for it.Next() {
		name := it.Key().(string)
		for _, w := range it.Value().([]string) {
			word := a.Normalize(w)
			if other, ok := l.dictionary[word]; ok && other != name {
				return nil, fmt.Errorf("duplicate word %q in dictionaries %s and %s", word, other, name)
			}
			l.dictionary[word] = name
		}
	}
	return l, nil
}

// Lex returns a new token list, where every word token is replaced by a
// token carrying the normalized word as its value. Its symbol is the name of
// the dictionary containing the word, or the terminal for its part of
// speech, or unchanged. Other tokens are passed through.
func (l *Lexer) Lex(tokens []*glrnl.Token) []*glrnl.Token {
	result := make([]*glrnl.Token, len(tokens))
	for i, tok := range tokens {
		if tok.Symbol != WordSymbol {
			result[i] = tok
			continue
		}
		t := *tok
		t.Value = l.analyzer.Normalize(tok.Surface)
		t.Tag = l.analyzer.Tag(tok.Surface)
		if name, ok := l.dictionary[t.Value]; ok {
			t.Symbol = name
		} else if t.Tag != nil {
			if sym := l.mapper(t.Tag.POS); sym != "" {
				t.Symbol = sym
			}
		}
		tracer().Debugf("lexer: %v", &t)
		result[i] = &t
	}
	return result
}

// Dictionary returns the name of the dictionary containing a normalized word.
func (l *Lexer) Dictionary(word string) (string, bool) {
	name, ok := l.dictionary[word]
	return name, ok
}
