package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/repr"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/fnc/ast"
	"github.com/pontaoski/fnc/errors"
	"github.com/pontaoski/fnc/irdecl"
	"github.com/pontaoski/fnc/lexer"
	"github.com/pontaoski/fnc/parser"
	"github.com/pontaoski/fnc/reader"
)

func initProject(dir, name string) error {
	if name == "" {
		return tracerr.New("no package name provided")
	}

	path := filepath.Join(dir, ConfigFile)
	if _, err := os.Stat(path); err == nil {
		return tracerr.Errorf("%s already exists", path)
	}

	return DefaultConfig(name).Save(path)
}

func printDiagnostics(w io.Writer, errs errors.List) {
	for _, msg := range errs.Strings() {
		fmt.Fprintln(w, msg)
	}
}

func dumpTokens(w io.Writer, path string, cfg Config, asRepr bool) (int, error) {
	handle, err := os.Open(path)
	if err != nil {
		return 0, tracerr.Wrap(err)
	}
	defer handle.Close()

	l := lexer.NewLexer(handle, path)
	l.StopAtFirstError = cfg.Lexer.StopAtFirstError

	toks, errs, err := l.Tokenise()
	if err != nil {
		return 0, err
	}

	if asRepr {
		repr.New(w, repr.Indent("  ")).Println(toks)
	} else {
		for _, tok := range toks {
			fmt.Fprintln(w, tok)
		}
	}

	printDiagnostics(w, errs)
	return errs.Len(), nil
}

func parseFile(path string, cfg Config) (*ast.Program, errors.List, error) {
	handle, err := os.Open(path)
	if err != nil {
		return nil, nil, tracerr.Wrap(err)
	}
	defer handle.Close()

	return parser.ParseSource(handle, path, cfg.Options())
}

func dumpAST(w io.Writer, path string, cfg Config) (int, error) {
	prog, errs, err := parseFile(path, cfg)
	if err != nil {
		return 0, err
	}

	repr.New(w, repr.Indent("  "), repr.OmitEmpty(true)).Println(prog)
	printDiagnostics(w, errs)
	return errs.Len(), nil
}

// checkProject parses every source of cfg, relative to dir.
func checkProject(w io.Writer, dir string, cfg Config) (int, error) {
	if len(cfg.Sources) == 0 {
		return 0, tracerr.Errorf("%s lists no sources", ConfigFile)
	}

	total := 0
	for _, src := range cfg.Sources {
		path := src
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, src)
		}

		prog, errs, err := parseFile(path, cfg)
		if err != nil {
			return total, err
		}

		plog.Infof("%s: %d functions", src, len(prog.Declarations))
		printDiagnostics(w, errs)
		total += errs.Len()
	}

	fmt.Fprintf(w, "%s: %d files, %d errors\n", cfg.Package, len(cfg.Sources), total)
	return total, nil
}

func writeHeaders(w io.Writer, path string, cfg Config) (int, error) {
	prog, errs, err := parseFile(path, cfg)
	if err != nil {
		return 0, err
	}
	if errs.Len() > 0 {
		printDiagnostics(w, errs)
		return errs.Len(), nil
	}

	m, err := irdecl.Declarations(prog)
	if err != nil {
		return 0, err
	}

	_, err = io.WriteString(w, m.String())
	return 0, tracerr.Wrap(err)
}

// writeHeadersFile writes the declarations of path to output. Diagnostics
// go to stderr and leave output untouched.
func writeHeadersFile(output, path string, cfg Config) (n int, err error) {
	var buf bytes.Buffer
	if n, err = writeHeaders(&buf, path, cfg); err != nil || n > 0 {
		os.Stderr.Write(buf.Bytes())
		return n, err
	}

	f, err := os.Create(output)
	if err != nil {
		return 0, tracerr.Wrap(err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = tracerr.Wrap(cerr)
		}
	}()

	_, err = buf.WriteTo(f)
	return 0, tracerr.Wrap(err)
}

func dumpTypeInfo(w io.Writer, lib string) error {
	info, err := reader.ReadTypeInfo(lib)
	if err != nil {
		return err
	}

	repr.New(w, repr.Indent("  ")).Println(info)
	return nil
}
