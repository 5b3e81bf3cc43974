package scanner

import (
	"io"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestLexerPeek(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glrnl.scanner")
	defer teardown()
	//
	input := "тест!"
	stream := NewCatSeqReader(strings.NewReader(input))
	for i, expected := range []rune(input) {
		r, err := stream.lookahead()
		if err != nil {
			t.Error(err)
		}
		if r != expected {
			t.Errorf("expected rune #%d to be %#U, is %#U", i, expected, r)
		}
		stream.match(r)
	}
	if _, err := stream.lookahead(); err != io.EOF {
		t.Errorf("expected error to be EOF, is %v", err)
	}
	if stream.Span().To() != uint64(len(input)) {
		t.Errorf("expected span to end at %d, is %s", len(input), stream.Span())
	}
}

func TestLexerCatSeq(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glrnl.scanner")
	defer teardown()
	//
	for i, test := range []struct {
		input string
		cat   CatCode
		l     int
	}{
		{input: "abc ;", cat: 1, l: 3},
		{input: "123 ;", cat: 2, l: 3},
		{input: ">= ;", cat: 3, l: 2},
		{input: "+-+ ;", cat: 4, l: 3},
		{input: "();", cat: 5, l: 1},
	} {
		strm := NewCatSeqReader(strings.NewReader(test.input))
		csq, err := strm.Next(testCategorizer("abcdef", "1234567890", "<>=", "+-", "("))
		if err != nil {
			t.Error(err)
		}
		if csq.Length != test.l || csq.Cat != test.cat {
			t.Errorf("test %d failed: exepected %d|%d, have %d|%d", i+1, test.cat, test.l, csq.Cat, csq.Length)
		}
	}
}

func TestCatSeqAtEOF(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glrnl.scanner")
	defer teardown()
	//
	strm := NewCatSeqReader(strings.NewReader("ab"))
	csq, err := strm.Next(testCategorizer("ab"))
	if err != nil || csq.Length != 2 {
		t.Errorf("expected sequence of length 2, have %d (err=%v)", csq.Length, err)
	}
	if strm.OutputString() != "ab" {
		t.Errorf("expected output 'ab', have %q", strm.OutputString())
	}
	strm.ResetOutput()
	if _, err = strm.Next(testCategorizer("ab")); err != io.EOF {
		t.Errorf("expected EOF, have %v", err)
	}
}

func TestCharTypeTokenizer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glrnl.scanner")
	defer teardown()
	//
	tokens, err := NewCharTypeTokenizer().Tokenize("Hello, тест 42!")
	if err != nil {
		t.Fatal(err)
	}
	syms := Symbols(tokens)
	expected := []string{"alpha", "punct", "alpha", "digit", "punct"}
	if strings.Join(syms, " ") != strings.Join(expected, " ") {
		t.Errorf("expected symbols %v, have %v", expected, syms)
	}
	if tokens[2].Value != "тест" || tokens[2].Span.From() != 7 || tokens[2].Span.To() != 15 {
		t.Errorf("unexpected token %v", tokens[2])
	}
	if last := tokens[len(tokens)-1]; !last.IsEOF() || last.Span.From() != 19 {
		t.Errorf("expected EOF token at 19, have %v", last)
	}
}

// ---------------------------------------------------------------------------

type ctgrzr []string

func testCategorizer(c ...string) ctgrzr {
	return ctgrzr(c)
}

func (ct ctgrzr) Cat(r rune) (CatCode, bool) {
	for i, s := range ct {
		if strings.ContainsRune(s, r) {
			return CatCode(i + 1), len(s) == 1
		}
	}
	return IllegalCatCode, true
}
