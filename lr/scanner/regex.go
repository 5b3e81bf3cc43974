package scanner

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/emirpasic/gods/sets/hashset"
	"github.com/npillmayer/glrnl"
)

// Pattern is a named regular expression for a RegexTokenizer.
type Pattern struct {
	Symbol string // symbol of tokens matching Expr
	Expr   string // regular expression (Go syntax)
}

// DefaultWordPatterns are patterns for splitting natural language text into
// words, numbers and punctuation. Whitespace is matched by "space".
var DefaultWordPatterns = []Pattern{
	{"word", `[\p{L}\p{Nd}_-]+`},
	{"number", `\d+`},
	{"space", `\s+`},
	{"newline", `\n+`},
	{"dot", `\.+`},
	{"comma", `,+`},
	{"colon", `:+`},
	{"percent", `%+`},
	{"quote", "[\"'«»`]+"},
	{"brace", `[(){}\[\]]+`},
}

// RegexTokenizer is a tokenizer driven by an ordered list of patterns. At each
// position of the input, the first pattern which matches wins.
type RegexTokenizer struct {
	re      *regexp.Regexp
	symbols []string     // group index → symbol, index 0 unused
	discard *hashset.Set // symbols not to be delivered
}

var _ Tokenizer = (*RegexTokenizer)(nil)

// NewRegexTokenizer creates a tokenizer from patterns. Tokens for symbols
// listed in discard are matched, but not delivered. Matching is
// case-insensitive.
func NewRegexTokenizer(patterns []Pattern, discard ...string) (*RegexTokenizer, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("regex tokenizer without patterns")
	}
	t := &RegexTokenizer{
		symbols: make([]string, 1, len(patterns)+1),
		discard: hashset.New(),
	}
	alt := make([]string, len(patterns))
	for i, p := range patterns {
		if _, err := regexp.Compile(p.Expr); err != nil {
			return nil, fmt.Errorf("invalid pattern for symbol %s: %w", p.Symbol, err)
		}
		alt[i] = fmt.Sprintf("(?P<p%d>%s)", i, p.Expr)
	}
	re, err := regexp.Compile("(?i)" + strings.Join(alt, "|"))
	if err != nil {
		return nil, err
	}
	t.re = re
	for i := 1; i < len(re.SubexpNames()); i++ {
		t.symbols = append(t.symbols, "")
	}
	for i, p := range patterns {
		t.symbols[re.SubexpIndex(fmt.Sprintf("p%d", i))] = p.Symbol
	}
	for _, d := range discard {
		t.discard.Add(d)
	}
	return t, nil
}

// NewWordTokenizer creates a tokenizer with DefaultWordPatterns, discarding
// spaces.
func NewWordTokenizer() *RegexTokenizer {
	t, err := NewRegexTokenizer(DefaultWordPatterns, "space")
	if err != nil {
		panic(err)
	}
	return t
}

// Tokenize is part of interface Tokenizer. Every byte of text has to be
// matched by some pattern, otherwise a DesyncError is returned.
func (t *RegexTokenizer) Tokenize(text string) ([]*glrnl.Token, error) {
	var tokens []*glrnl.Token
	pos := 0
	for pos < len(text) {
		loc := t.re.FindStringSubmatchIndex(text[pos:])
		if loc == nil || loc[0] != 0 || loc[1] == 0 {
			end := len(text)
			if loc != nil && loc[0] > 0 {
				end = pos + loc[0]
			}
			return tokens, Desync(text, pos, end)
		}
		sym := t.symbolFor(loc)
		lexeme := text[pos : pos+loc[1]]
		span := glrnl.Span{uint64(pos), uint64(pos + loc[1])}
		pos += loc[1]
		if t.discard.Contains(sym) {
			continue
		}
		tokens = append(tokens, glrnl.MakeToken(sym, lexeme, span))
	}
	tracer().Debugf("regex tokenizer: %d tokens", len(tokens))
	return append(tokens, glrnl.EOFToken(uint64(len(text)))), nil
}

// symbolFor finds the first pattern group which participated in a match.
func (t *RegexTokenizer) symbolFor(loc []int) string {
	for g := 1; g < len(t.symbols); g++ {
		if t.symbols[g] != "" && loc[2*g] >= 0 {
			return t.symbols[g]
		}
	}
	return ""
}
