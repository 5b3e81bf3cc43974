package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/glrnl/engine"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Parse sentences entered interactively",
		Long: `repl reads lines of text and prints the syntax trees found for them.
Lines starting with a colon are commands:

  :grammar        print the rules of the grammar
  :tables         print the parser table
  :trace <level>  set the trace level [Debug|Info|Error]
  :plain          toggle single line output of trees
  :quit           leave the REPL`,
		Args: cobra.NoArgs,
		RunE: runREPL,
	}
	rootCmd.AddCommand(cmd)
}

func runREPL(cmd *cobra.Command, args []string) error {
	e, err := makeEngine(conf)
	if err != nil {
		return err
	}
	repl, err := readline.New("glrepl> ")
	if err != nil {
		return err
	}
	defer repl.Close()
	intp := &Intp{engine: e, repl: repl, out: os.Stdout}
	pterm.Info.Println("Welcome to glrepl")
	tracer().Infof("Quit with <ctrl>D")
	intp.REPL()
	return nil
}

// Intp is our interpreter object.
type Intp struct {
	engine *engine.Engine
	repl   *readline.Instance
	out    io.Writer
	plain  bool
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	fmt.Fprintln(intp.out, "Good bye!")
}

// Eval executes a command or parses a line of text.
func (intp *Intp) Eval(line string) (bool, error) {
	if !strings.HasPrefix(line, ":") {
		return false, parseAndPrint(intp.out, intp.engine, line, intp.plain)
	}
	args := strings.Fields(line[1:])
	if len(args) == 0 {
		return false, fmt.Errorf("empty command")
	}
	switch args[0] {
	case "q", "quit":
		return true, nil
	case "grammar":
		fmt.Fprintln(intp.out, intp.engine.Automaton().Grammar.String())
	case "tables":
		return false, intp.engine.Automaton().Table.Dump(intp.out)
	case "trace":
		if len(args) != 2 {
			return false, fmt.Errorf("usage: :trace <level>")
		}
		setTraceLevel(args[1])
	case "plain":
		intp.plain = !intp.plain
	default:
		return false, fmt.Errorf("unknown command: %s", args[0])
	}
	return false, nil
}
