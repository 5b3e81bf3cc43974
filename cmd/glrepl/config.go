package main

import (
	"fmt"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
)

// config is a configuration read from a TOML file. It implements
// schuko.Configuration and is installed with gconf.Initialize.
//
// Nested TOML tables are flattened to dotted keys, i.e.
//
//     [tracing]
//     adapter = "go"
//
// is accessible as key "tracing.adapter". Table "dictionaries" is not
// flattened, but holds lists of words for named dictionaries.
type config struct {
	values       map[string]interface{}
	dictionaries map[string][]string
	interactive  bool
}

var defaults = map[string]interface{}{
	"tracing.adapter":       "go",
	"tracelevel":            "Info",
	"start":                 "S",
	"tokenizer":             "words",
	"full-match":            false,
	"glr-drop-on-invariant": false,
	"glr-max-gss-nodes":     int64(0),
}

func newConfig() *config {
	return &config{
		values:       make(map[string]interface{}),
		dictionaries: make(map[string][]string),
	}
}

// loadConfig reads a TOML configuration file. An empty path results in an
// empty configuration.
func loadConfig(path string) (*config, error) {
	conf := newConfig()
	if path == "" {
		return conf, nil
	}
	var raw map[string]interface{}
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("cannot read configuration %s: %w", path, err)
	}
	if err := conf.merge(raw); err != nil {
		return nil, fmt.Errorf("configuration %s: %w", path, err)
	}
	return conf, nil
}

// parseConfig decodes configuration settings from TOML text.
func parseConfig(text string) (*config, error) {
	var raw map[string]interface{}
	if _, err := toml.Decode(text, &raw); err != nil {
		return nil, err
	}
	conf := newConfig()
	if err := conf.merge(raw); err != nil {
		return nil, err
	}
	return conf, nil
}

func (c *config) merge(raw map[string]interface{}) error {
	if d, ok := raw["dictionaries"]; ok {
		table, ok := d.(map[string]interface{})
		if !ok {
			return fmt.Errorf("dictionaries must be a table, is %T", d)
		}
		for name, list := range table {
			words, err := stringList(list)
			if err != nil {
				return fmt.Errorf("dictionary %s: %w", name, err)
			}
			c.dictionaries[name] = words
		}
		delete(raw, "dictionaries")
	}
	c.flatten("", raw)
	return nil
}

func (c *config) flatten(prefix string, table map[string]interface{}) {
	for k, v := range table {
		if sub, ok := v.(map[string]interface{}); ok {
			c.flatten(prefix+k+".", sub)
			continue
		}
		c.values[prefix+k] = v
	}
}

func stringList(v interface{}) ([]string, error) {
	list, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("expected list of words, have %T", v)
	}
	words := make([]string, len(list))
	for i, w := range list {
		s, ok := w.(string)
		if !ok {
			return nil, fmt.Errorf("expected word, have %v", w)
		}
		words[i] = s
	}
	return words, nil
}

// Set overrides a configuration value.
func (c *config) Set(key string, value interface{}) {
	c.values[key] = value
}

// applyFlags copies flags set on the command line into the configuration.
func (c *config) applyFlags(fs *pflag.FlagSet) {
	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "config":
			return
		case "trace":
			c.Set("tracelevel", f.Value.String())
		case "full-match":
			b, _ := strconv.ParseBool(f.Value.String())
			c.Set("full-match", b)
		default:
			c.Set(f.Name, f.Value.String())
		}
	})
}

// --- schuko.Configuration --------------------------------------------------

func (c *config) InitDefaults() {
	for k, v := range defaults {
		if _, ok := c.values[k]; !ok {
			c.values[k] = v
		}
	}
}

func (c *config) IsSet(key string) bool {
	_, ok := c.values[key]
	return ok
}

func (c *config) GetString(key string) string {
	v, ok := c.values[key]
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func (c *config) GetInt(key string) int {
	switch v := c.values[key].(type) {
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	}
	return 0
}

func (c *config) GetBool(key string) bool {
	switch v := c.values[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	}
	return false
}

func (c *config) IsInteractive() bool {
	return c.interactive
}
