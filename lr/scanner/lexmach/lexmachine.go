package lexmach

import (
	"strings"

	"github.com/npillmayer/glrnl"
	"github.com/npillmayer/glrnl/lr/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// tracer traces with key 'glrnl.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("glrnl.scanner")
}

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
	names map[int]string // token ID → symbol
}

var _ scanner.Tokenizer = (*LMAdapter)(nil)

// NewLMAdapter creates a new lexmachine adapter. It receives a list of
// literals ('[', ';', …), a list of keywords ("if", "for", …) and a
// map for translating token strings to their values.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, keywords []string, tokenIds map[string]int) (*LMAdapter, error) {
	adapter := &LMAdapter{names: make(map[int]string, len(tokenIds))}
	for name, id := range tokenIds {
		adapter.names[id] = name
	}
	adapter.Lexer = lexmachine.NewLexer()
	init(adapter.Lexer)
	for _, lit := range literals {
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		adapter.Lexer.Add([]byte(r), MakeToken(lit, tokenIds[lit]))
	}
	for _, name := range keywords {
		adapter.Lexer.Add([]byte(strings.ToLower(name)), MakeToken(name, tokenIds[name]))
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Tokenize is part of the scanner.Tokenizer interface. Tokenize stops at the
// first portion of input which no pattern matches and returns the tokens
// recognized so far, together with a *scanner.DesyncError.
func (lm *LMAdapter) Tokenize(input string) ([]*glrnl.Token, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	var tokens []*glrnl.Token
	for tok, err, eof := s.Next(); !eof; tok, err, eof = s.Next() {
		if err != nil {
			if ui, is := err.(*machines.UnconsumedInput); is {
				tracer().Infof("scanner error: %v", err)
				return tokens, scanner.Desync(input, ui.StartTC, ui.FailTC)
			}
			return tokens, err
		}
		token := tok.(*lexmachine.Token)
		name, ok := lm.names[token.Type]
		if !ok {
			name = string(token.Lexeme)
		}
		span := glrnl.Span{uint64(token.TC), uint64(token.TC + len(token.Lexeme))}
		tokens = append(tokens, glrnl.MakeToken(name, string(token.Lexeme), span))
	}
	return append(tokens, glrnl.EOFToken(uint64(len(input)))), nil
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}
