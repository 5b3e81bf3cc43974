package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/glrnl/engine"
	"github.com/npillmayer/glrnl/lr/scanner"
	"github.com/npillmayer/glrnl/morph"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// demoGrammar is used if no grammar file is configured.
const demoGrammar = `S = adj<agr-gnc=1> noun | noun`

var rootFlags = struct {
	config *string
}{}

var rootCmd = &cobra.Command{
	Use:   "glrepl",
	Short: "Compile GLR grammars for natural language and parse text",
	Long: `glrepl compiles a grammar written in the grammar DSL into GLR parser
tables. It may dump the tables, parse text given as arguments and
parse sentences entered interactively.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// conf is the configuration of the current run, valid after setup.
var conf *config

func init() {
	fs := rootCmd.PersistentFlags()
	rootFlags.config = fs.StringP("config", "c", "", "configuration file (TOML)")
	fs.StringP("trace", "t", "Info", "trace level [Debug|Info|Error]")
	fs.StringP("grammar", "g", "", "grammar file")
	fs.StringP("start", "s", "S", "start symbol of the grammar")
	fs.StringP("dictionary", "d", "", "morphological dictionary file (TOML)")
	fs.String("tokenizer", "words", "tokenizer [words|chartypes]")
	fs.Bool("full-match", false, "accept only parses covering the complete input")
	fs.Int("glr-max-gss-nodes", 0, "stop parsing if the stack graph grows beyond this size")
}

// main starts glrepl, a command line tool to inspect grammars and parse
// natural language text. Please refer to package engine.
func main() {
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

// setup reads the configuration and prepares tracing.
func setup(cmd *cobra.Command, args []string) error {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	c, err := loadConfig(*rootFlags.config)
	if err != nil {
		return err
	}
	c.applyFlags(cmd.Flags())
	c.interactive = cmd.Name() == "repl"
	gconf.Initialize(c)
	conf = c
	setTraceLevel(conf.GetString("tracelevel"))
	tracer().Infof("Trace level is %s", conf.GetString("tracelevel"))
	return nil
}

func setTraceLevel(level string) {
	l := tracing.TraceLevelFromString(level)
	for _, key := range selectors {
		tracing.Select(key).SetTraceLevel(l)
	}
}

// makeEngine creates a parsing engine from the configuration.
func makeEngine(conf *config) (*engine.Engine, error) {
	grammar := demoGrammar
	if path := conf.GetString("grammar"); path != "" {
		text, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("cannot read grammar: %w", err)
		}
		grammar = string(text)
	}
	var analyzer morph.Analyzer = morph.Default
	if path := conf.GetString("dictionary"); path != "" {
		d, err := morph.LoadDictionaryFile(path)
		if err != nil {
			return nil, err
		}
		tracer().Infof("loaded %d word forms from %s", d.Size(), path)
		analyzer = d
	}
	opts := []engine.Option{
		engine.FullMatch(conf.GetBool("full-match")),
		engine.RankByWeight(true),
		engine.WithAnalyzer(analyzer),
		engine.WithDictionaries(conf.dictionaries),
	}
	switch t := conf.GetString("tokenizer"); t {
	case "", "words":
	case "chartypes":
		opts = append(opts, engine.WithTokenizer(scanner.NewCharTypeTokenizer()))
	default:
		return nil, fmt.Errorf("unknown tokenizer: %s", t)
	}
	return engine.New(grammar, conf.GetString("start"), opts...)
}
