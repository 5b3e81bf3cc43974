package morph

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/npillmayer/glrnl"
)

// Entry is a word form of a dictionary.
type Entry struct {
	Form  string `toml:"form"`
	Lemma string `toml:"lemma"`
	Tag   string `toml:"tag"` // OpenCorpora notation
}

type dictFile struct {
	Entries []Entry `toml:"entry"`
}

// DictAnalyzer is an Analyzer backed by a dictionary of word forms. Every
// word form maps to one lemma and one tag; for ambiguous forms, the first
// entry wins. DictAnalyzer is safe for concurrent reads, but not for
// concurrent calls to Add.
//
// Dictionaries are written in TOML:
//
//     [[entry]]
//     form  = "курток"
//     lemma = "куртка"
//     tag   = "NOUN,inan,femn plur,gent"
//
type DictAnalyzer struct {
	forms map[string]analysis
}

type analysis struct {
	lemma string
	tag   *glrnl.Tag
}

var _ Analyzer = (*DictAnalyzer)(nil)

// NewDictAnalyzer creates an analyzer with an empty dictionary.
func NewDictAnalyzer() *DictAnalyzer {
	return &DictAnalyzer{forms: make(map[string]analysis)}
}

// LoadDictionary creates an analyzer from a TOML dictionary.
func LoadDictionary(r io.Reader) (*DictAnalyzer, error) {
	var f dictFile
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("cannot read dictionary: %w", err)
	}
	d := NewDictAnalyzer()
	for i, e := range f.Entries {
		if err := d.Add(e); err != nil {
			return nil, fmt.Errorf("dictionary entry #%d: %w", i+1, err)
		}
	}
	tracer().Infof("loaded dictionary with %d word forms", len(d.forms))
	return d, nil
}

// LoadDictionaryFile creates an analyzer from a TOML dictionary file.
func LoadDictionaryFile(path string) (*DictAnalyzer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadDictionary(f)
}

// Add adds a word form to the dictionary. Forms already present are not
// replaced. An entry without a lemma is its own lemma.
func (d *DictAnalyzer) Add(e Entry) error {
	form := Fold(e.Form)
	if form == "" {
		return fmt.Errorf("entry without word form")
	}
	if _, ok := d.forms[form]; ok {
		tracer().Debugf("word form %q already present, skipping", form)
		return nil
	}
	lemma := Fold(e.Lemma)
	if lemma == "" {
		lemma = form
	}
	d.forms[form] = analysis{lemma: lemma, tag: ParseTag(e.Tag)}
	return nil
}

// Size returns the number of word forms in the dictionary.
func (d *DictAnalyzer) Size() int {
	return len(d.forms)
}

// Normalize is part of interface Analyzer. Unknown words are returned folded.
func (d *DictAnalyzer) Normalize(word string) string {
	form := Fold(word)
	if a, ok := d.forms[form]; ok {
		return a.lemma
	}
	return form
}

// Tag is part of interface Analyzer.
func (d *DictAnalyzer) Tag(word string) *glrnl.Tag {
	if a, ok := d.forms[Fold(word)]; ok {
		return a.tag
	}
	return nil
}
