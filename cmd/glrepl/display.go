package main

import (
	"fmt"
	"io"

	"github.com/npillmayer/glrnl"
	"github.com/npillmayer/glrnl/lr/sppf"
	"github.com/pterm/pterm"
)

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// renderTree writes a syntax tree as an indented tree to w.
func renderTree(w io.Writer, t *sppf.SyntaxTree) error {
	root := pterm.NewTreeFromLeveledList(leveledTree(t))
	s, err := pterm.DefaultTree.WithRoot(root).Srender()
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}

// leveledTree lists the nodes of a syntax tree top-down, one list item per node.
func leveledTree(t *sppf.SyntaxTree) pterm.LeveledList {
	l := &treeLister{}
	sppf.Walk(t, l)
	return l.list
}

// treeLister is a sppf.Listener collecting tree nodes.
type treeLister struct {
	list pterm.LeveledList
}

func (l *treeLister) EnterRule(sym string, rhs []*sppf.RuleNode, ctxt sppf.RuleCtxt) bool {
	l.list = append(l.list, pterm.LeveledListItem{Level: ctxt.Level, Text: sym})
	return true
}

func (l *treeLister) ExitRule(string, []*sppf.RuleNode, sppf.RuleCtxt) interface{} {
	return nil
}

func (l *treeLister) Terminal(sym string, tok *glrnl.Token, ctxt sppf.RuleCtxt) interface{} {
	l.list = append(l.list, pterm.LeveledListItem{Level: ctxt.Level, Text: leafText(sym, tok)})
	return nil
}

func (l *treeLister) MakeAttrs(string) interface{} {
	return nil
}

func leafText(sym string, tok *glrnl.Token) string {
	if tok == nil {
		return sym
	}
	if tok.Tag == nil {
		return fmt.Sprintf("%s %q", sym, tok.Surface)
	}
	return fmt.Sprintf("%s %q %s", sym, tok.Surface, tok.Tag)
}
