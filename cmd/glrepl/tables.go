package main

import (
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/glrnl/lr"
	"github.com/npillmayer/glrnl/lr/dsl"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var tablesFlags = struct {
	meta     *bool
	graphviz *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "tables",
		Short:   "Print the rules and parser table of a grammar",
		Example: `  glrepl tables --grammar clothes.glr --graphviz cfsm.dot`,
		Args:    cobra.NoArgs,
		RunE:    runTables,
	}
	tablesFlags.meta = cmd.Flags().Bool("meta", false, "use the meta-grammar of the grammar DSL")
	tablesFlags.graphviz = cmd.Flags().String("graphviz", "", "write the CFSM in GraphViz DOT format to a file")
	rootCmd.AddCommand(cmd)
}

func runTables(cmd *cobra.Command, args []string) error {
	var g *lr.Grammar
	if *tablesFlags.meta {
		var err error
		if g, err = dsl.MetaGrammar(); err != nil {
			return err
		}
	} else {
		e, err := makeEngine(conf)
		if err != nil {
			return err
		}
		g = e.Automaton().Grammar
	}
	return dumpTables(os.Stdout, g, *tablesFlags.graphviz)
}

// dumpTables prints the rules of g and its parser table to w. If dotfile is
// not empty, the CFSM is written to dotfile.
func dumpTables(w io.Writer, g *lr.Grammar, dotfile string) error {
	lrgen := lr.NewTableGenerator(lr.Analysis(g))
	lrgen.CreateTables()
	pterm.Info.Printf("Grammar %s: %d rules, %d states\n", g.Name, g.Size(),
		len(lrgen.CFSM().States()))
	if lrgen.HasConflicts {
		pterm.Info.Println("Table has conflicts, parsing will branch")
	}
	if _, err := fmt.Fprintln(w, g.String()); err != nil {
		return err
	}
	if err := lrgen.ActionTable().Dump(w); err != nil {
		return err
	}
	if dotfile == "" {
		return nil
	}
	f, err := os.Create(dotfile)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := lrgen.CFSM().CFSM2GraphViz(f); err != nil {
		return err
	}
	tracer().Infof("CFSM written to %s", dotfile)
	return nil
}
