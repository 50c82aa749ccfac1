package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/coreos/pkg/capnslog"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/fnc", "main")

func setupLogging(w io.Writer, level string) error {
	l, err := capnslog.ParseLevel(strings.ToUpper(level))
	if err != nil {
		return tracerr.Wrap(err)
	}

	capnslog.SetFormatter(capnslog.NewPrettyFormatter(w, false))
	capnslog.SetGlobalLogLevel(l)
	return nil
}

// loadConfig reads fnc.yaml from the working directory, if there is one,
// and applies the command line overrides.
func loadConfig(c *cli.Context) (Config, error) {
	cfg, err := LoadConfigIfExists(ConfigFile)
	if err != nil {
		return Config{}, err
	}

	if c.IsSet("max-depth") {
		cfg.Parser.MaxDepth = c.Int("max-depth")
	}
	if c.IsSet("stop-at-first-error") {
		cfg.Lexer.StopAtFirstError = c.Bool("stop-at-first-error")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}

	return cfg, cfg.Validate()
}

func fileArg(c *cli.Context) (string, error) {
	file := c.Args().First()
	if file == "" {
		return "", tracerr.Errorf("%s: no file provided", c.Command.Name)
	}
	return file, nil
}

// failed turns a diagnostic count into the exit status.
func failed(n int, err error) error {
	if err != nil {
		return err
	}
	if n > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "fnc",
		Usage: "fn language front end",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "capnslog level (CRITICAL, ERROR, WARNING, NOTICE, INFO, DEBUG, TRACE)",
			},
			&cli.IntFlag{
				Name:  "max-depth",
				Usage: "maximum nesting of blocks and parentheses",
			},
			&cli.BoolFlag{
				Name:  "stop-at-first-error",
				Usage: "stop lexing at the first invalid character",
			},
		},
		Before: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			return setupLogging(os.Stderr, cfg.LogLevel)
		},
		ExitErrHandler: func(c *cli.Context, err error) {
			if err == nil {
				return
			}
			if exit, ok := err.(cli.ExitCoder); ok {
				if msg := exit.Error(); msg != "" {
					fmt.Fprintln(os.Stderr, msg)
				}
				os.Exit(exit.ExitCode())
			}
			tracerr.PrintSourceColor(err)
			os.Exit(1)
		},
		Commands: []*cli.Command{
			{
				Name:      "init",
				Usage:     "write a default " + ConfigFile,
				ArgsUsage: "NAME",
				Action: func(c *cli.Context) error {
					dir, err := os.Getwd()
					if err != nil {
						return tracerr.Wrap(err)
					}
					return initProject(dir, c.Args().First())
				},
			},
			{
				Name:      "tokens",
				Usage:     "print the tokens of a file",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "repr",
						Usage: "dump tokens as Go values",
					},
				},
				Action: func(c *cli.Context) error {
					file, err := fileArg(c)
					if err != nil {
						return err
					}
					cfg, err := loadConfig(c)
					if err != nil {
						return err
					}
					return failed(dumpTokens(os.Stdout, file, cfg, c.Bool("repr")))
				},
			},
			{
				Name:      "parse",
				Usage:     "print the syntax tree of a file",
				ArgsUsage: "FILE",
				Action: func(c *cli.Context) error {
					file, err := fileArg(c)
					if err != nil {
						return err
					}
					cfg, err := loadConfig(c)
					if err != nil {
						return err
					}
					return failed(dumpAST(os.Stdout, file, cfg))
				},
			},
			{
				Name:  "check",
				Usage: "parse every source listed in " + ConfigFile,
				Action: func(c *cli.Context) error {
					// unlike the other commands, check needs the file
					if _, err := LoadConfig(ConfigFile); err != nil {
						return err
					}
					cfg, err := loadConfig(c)
					if err != nil {
						return err
					}
					return failed(checkProject(os.Stdout, filepath.Dir(ConfigFile), cfg))
				},
			},
			{
				Name:      "headers",
				Usage:     "print LLVM declarations for the functions of a file",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "output",
						Usage: "write to this file instead of stdout",
					},
				},
				Action: func(c *cli.Context) error {
					file, err := fileArg(c)
					if err != nil {
						return err
					}
					cfg, err := loadConfig(c)
					if err != nil {
						return err
					}

					if name := c.String("output"); name != "" {
						return failed(writeHeadersFile(name, file, cfg))
					}
					return failed(writeHeaders(os.Stdout, file, cfg))
				},
			},
			{
				Name:      "typeinfo",
				Usage:     "dump the signature table of a compiled module",
				ArgsUsage: "LIBRARY",
				Action: func(c *cli.Context) error {
					lib, err := fileArg(c)
					if err != nil {
						return err
					}
					return dumpTypeInfo(os.Stdout, lib)
				},
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		tracerr.PrintSourceColor(err)
		os.Exit(1)
	}
}
