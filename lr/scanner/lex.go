package scanner

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/glrnl"
)

// --- Category codes --------------------------------------------------------

// CatCode is a category code for runes. Runes of equal category form
// sequences, unless their category is a loner category.
type CatCode int16

// IllegalCatCode is the category for runes not to appear in the input.
const IllegalCatCode CatCode = 0

// RuneCategorizer assigns category codes to runes.
type RuneCategorizer interface {
	Cat(r rune) (cat CatCode, isLoner bool)
}

// CatSeq is a sequence of runes of equal category.
type CatSeq struct {
	Cat    CatCode // catcode of all runes in this sequence
	Length int     // length of sequence in terms of runes
}

// --- Category sequence reader ----------------------------------------------

// CatSeqReader reads sequences of runes of equal category from a rune reader.
// After every call to Next, clients inspect the sequence text with
// OutputString and Span, then call ResetOutput.
type CatSeqReader struct {
	isEOF      bool
	hasNext    bool
	next       rune
	start, end uint64 // as bytes index
	reader     io.RuneReader
	writer     bytes.Buffer
}

// NewCatSeqReader creates a sequence reader for a rune reader.
func NewCatSeqReader(r io.RuneReader) *CatSeqReader {
	return &CatSeqReader{reader: r}
}

// Next reads the next sequence of runes of equal category. At the end of
// input, Next returns io.EOF.
func (rs *CatSeqReader) Next(rc RuneCategorizer) (csq CatSeq, err error) {
	var r rune
	if r, err = rs.lookahead(); err != nil {
		if err != io.EOF {
			err = fmt.Errorf("scanner cannot read sequence (%w)", err)
		}
		return csq, err
	}
	var isLoner bool
	csq.Cat, isLoner = rc.Cat(r)
	rs.match(r)
	csq.Length = 1
	if isLoner { // rune category is not allowed to form sequences
		return csq, nil
	}
	for {
		if r, err = rs.lookahead(); err != nil {
			if err == io.EOF {
				err = nil
			}
			return
		}
		if cc, _ := rc.Cat(r); cc != csq.Cat {
			return
		}
		rs.match(r)
		csq.Length++
	}
}

// OutputString returns the text of the sequences read since the last reset.
func (rs *CatSeqReader) OutputString() string {
	return rs.writer.String()
}

// ResetOutput clears the output buffer.
func (rs *CatSeqReader) ResetOutput() {
	rs.writer.Reset()
	rs.start = rs.end
}

// Span returns the byte positions of the output string.
func (rs *CatSeqReader) Span() glrnl.Span {
	return glrnl.Span{rs.start, rs.end}
}

func (rs *CatSeqReader) lookahead() (rune, error) {
	if rs.hasNext {
		return rs.next, nil
	}
	if rs.isEOF {
		return utf8.RuneError, io.EOF
	}
	r, _, err := rs.reader.ReadRune()
	if err == io.EOF {
		rs.isEOF = true
		return utf8.RuneError, io.EOF
	} else if err != nil {
		return utf8.RuneError, err
	}
	rs.next, rs.hasNext = r, true
	return r, nil
}

func (rs *CatSeqReader) match(r rune) {
	rs.writer.WriteRune(r)
	rs.end += uint64(utf8.RuneLen(r))
	rs.hasNext = false
}

// --- Character type tokenizer ----------------------------------------------

// Character types, used as category codes by CharTypeTokenizer.
const (
	AlphaType CatCode = iota + 1
	DigitType
	SpaceType
	PunctType
)

// CharTypes maps character types to token symbols.
var CharTypes = map[CatCode]string{
	AlphaType: "alpha",
	DigitType: "digit",
	SpaceType: "space",
	PunctType: "punct",
}

type charTypes struct{}

// Cat is part of interface RuneCategorizer. Punctuation is a loner category,
// every other rune forms runs with runes of the same type.
func (charTypes) Cat(r rune) (CatCode, bool) {
	switch {
	case unicode.IsLetter(r):
		return AlphaType, false
	case unicode.IsDigit(r):
		return DigitType, false
	case unicode.IsSpace(r):
		return SpaceType, false
	}
	return PunctType, true
}

// CharTypeTokenizer splits text into runs of letters, runs of digits and
// single punctuation characters. Whitespace is discarded.
type CharTypeTokenizer struct {
	categorizer RuneCategorizer
}

var _ Tokenizer = (*CharTypeTokenizer)(nil)

// NewCharTypeTokenizer creates a tokenizer for character types.
func NewCharTypeTokenizer() *CharTypeTokenizer {
	return &CharTypeTokenizer{categorizer: charTypes{}}
}

// Tokenize is part of interface Tokenizer.
func (t *CharTypeTokenizer) Tokenize(text string) ([]*glrnl.Token, error) {
	var tokens []*glrnl.Token
	csr := NewCatSeqReader(strings.NewReader(text))
	for {
		seq, err := csr.Next(t.categorizer)
		if err == io.EOF {
			break
		} else if err != nil {
			return tokens, err
		}
		if seq.Cat == IllegalCatCode {
			return tokens, Desync(text, int(csr.Span().From()), int(csr.Span().To()))
		}
		if seq.Cat != SpaceType {
			tokens = append(tokens, glrnl.MakeToken(CharTypes[seq.Cat], csr.OutputString(), csr.Span()))
		}
		csr.ResetOutput()
	}
	tracer().Debugf("char type tokenizer: %d tokens", len(tokens))
	return append(tokens, glrnl.EOFToken(uint64(len(text)))), nil
}
