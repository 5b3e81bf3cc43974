package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/glrnl/engine"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	plain *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "parse [text]",
		Short: "Parse text and print the syntax trees",
		Example: `  glrepl parse --grammar clothes.glr "Красивая куртка висит."
  cat text.txt | glrepl parse --grammar clothes.glr`,
		RunE: runParse,
	}
	parseFlags.plain = cmd.Flags().Bool("plain", false, "print trees on a single line")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	if strings.TrimSpace(text) == "" {
		input, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		text = string(input)
	}
	e, err := makeEngine(conf)
	if err != nil {
		return err
	}
	return parseAndPrint(os.Stdout, e, text, *parseFlags.plain)
}

// parseAndPrint parses text and prints all syntax trees found.
func parseAndPrint(w io.Writer, e *engine.Engine, text string, plain bool) error {
	results, err := e.Parse(text)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		pterm.Info.Println("no parse")
		return nil
	}
	for _, r := range results {
		pterm.Info.Printf("%q: %d tree(s)\n", strings.TrimSpace(r.Sentence.Text), len(r.Trees))
		for _, t := range r.Trees {
			if plain {
				fmt.Fprintln(w, t.String())
				continue
			}
			if err := renderTree(w, t); err != nil {
				return err
			}
		}
	}
	return nil
}
