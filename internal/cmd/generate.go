package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/thriftrs/rsgen/internal/codegen/generator"
	"github.com/thriftrs/rsgen/internal/log"
	"github.com/thriftrs/rsgen/internal/schema"
)

// StdinPath selects standard input as a schema source.
const StdinPath = "-"

type Generate struct {
	Schemas     []string `arg:"" name:"schema" help:"Resolved schema documents (.json, .yaml, .toml); '-' reads one document from stdin"`
	Output      string   `help:"Output root; modules are written to <output>/gen-rs/<module>/mod.rs" default:"." env:"RSGEN_OUTPUT"`
	Lang        string   `help:"Target language" default:"rs" enum:"rs" env:"RSGEN_LANG"`
	Positional  bool     `help:"Also emit the legacy positional PArgs/PResult records" default:"true" negatable:"" env:"RSGEN_POSITIONAL"`
	Jobs        int      `help:"Number of modules generated concurrently" default:"1" env:"RSGEN_JOBS"`
	Manifest    bool     `help:"Write gen-<lang>/manifest.json with a digest of every generated module" env:"RSGEN_MANIFEST"`
	StdinFormat string   `help:"Format of a schema read from stdin" default:"json" enum:"json,yaml,toml" env:"RSGEN_STDIN_FORMAT"`
}

// Run is called by Kong when the generate command is executed.
func (c *Generate) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	return c.run(logger, rawLogger, os.Stdin)
}

func (c *Generate) run(logger *slog.Logger, rawLogger log.RawLogger, stdin io.Reader) error {
	logger.Info("Starting rsgen code generation", "output", c.Output, "lang", c.Lang, "schemas", len(c.Schemas))

	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}

	gen := generator.New(c.Output, logger, generator.Options{
		Positional: c.Positional,
		Jobs:       c.Jobs,
		Manifest:   c.Manifest,
		RawLogger:  rawLogger,
	})

	var files []string
	useStdin := false
	for _, p := range c.Schemas {
		if p == StdinPath {
			if useStdin {
				return errors.New("stdin can only be given once")
			}
			useStdin = true
			continue
		}
		files = append(files, p)
	}

	progs, err := gen.LoadAll(files)
	if err != nil {
		return err
	}

	if useStdin {
		prog, err := c.loadStdin(stdin)
		if err != nil {
			return err
		}
		progs = append(progs, prog)
		if err := generator.CheckModules(progs); err != nil {
			return err
		}
	}

	artifacts, err := gen.GenerateLang(c.Lang, progs)
	if err != nil {
		return err
	}
	for _, a := range artifacts {
		logger.Debug("Module ready", "module", a.Module, "file", a.Path, "blake2b", a.Digest)
	}
	return nil
}

func (c *Generate) loadStdin(stdin io.Reader) (*schema.Program, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return nil, errors.New("refusing to read a schema from an interactive terminal; pipe a document or pass a file")
	}
	prog, err := schema.Load(stdin, c.StdinFormat)
	if err != nil {
		return nil, fmt.Errorf("load stdin: %w", err)
	}
	if prog.Name == "" {
		return nil, errors.New("schema read from stdin must set a module name")
	}
	return prog, nil
}
