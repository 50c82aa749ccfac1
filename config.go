package main

import (
	"io/ioutil"
	"os"
	"strings"

	"github.com/coreos/pkg/capnslog"
	"github.com/ztrue/tracerr"
	"gopkg.in/yaml.v2"

	"github.com/pontaoski/fnc/parser"
)

const ConfigFile = "fnc.yaml"

type ParserConfig struct {
	MaxDepth int `yaml:"max_depth"`
}

type LexerConfig struct {
	StopAtFirstError bool `yaml:"stop_at_first_error"`
}

type Config struct {
	Package  string       `yaml:"package"`
	Sources  []string     `yaml:"sources"`
	LogLevel string       `yaml:"log_level"`
	Parser   ParserConfig `yaml:"parser"`
	Lexer    LexerConfig  `yaml:"lexer"`
}

func DefaultConfig(pkg string) Config {
	return Config{
		Package:  pkg,
		Sources:  []string{"main.fn"},
		LogLevel: "INFO",
		Parser: ParserConfig{
			MaxDepth: parser.DefaultMaxDepth,
		},
	}
}

// LoadConfig reads path on top of the defaults. Unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return Config{}, tracerr.Wrap(err)
	}

	cfg := DefaultConfig("")
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return Config{}, tracerr.Errorf("reading %s: %v", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigIfExists returns the defaults when path does not exist.
func LoadConfigIfExists(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(""), nil
	}
	return LoadConfig(path)
}

func (c Config) Validate() error {
	if _, err := capnslog.ParseLevel(strings.ToUpper(c.LogLevel)); err != nil {
		return tracerr.Errorf("log_level: %v", err)
	}
	if c.Parser.MaxDepth < 0 {
		return tracerr.Errorf("parser.max_depth must not be negative, got %d", c.Parser.MaxDepth)
	}
	return nil
}

func (c Config) Save(path string) error {
	out, err := yaml.Marshal(c)
	if err != nil {
		return tracerr.Wrap(err)
	}

	return tracerr.Wrap(ioutil.WriteFile(path, out, 0644))
}

func (c Config) Options() parser.Options {
	return parser.Options{
		MaxDepth:         c.Parser.MaxDepth,
		StopAtFirstError: c.Lexer.StopAtFirstError,
	}
}
