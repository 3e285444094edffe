package generator

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/crypto/blake2b"

	"github.com/thriftrs/rsgen/internal/codegen/common"
	"github.com/thriftrs/rsgen/internal/codegen/generator/rust"
	"github.com/thriftrs/rsgen/internal/codegen/meta"
	"github.com/thriftrs/rsgen/internal/log"
	"github.com/thriftrs/rsgen/internal/schema"
)

// ManifestFile is written next to the generated modules when requested.
const ManifestFile = "manifest.json"

type LanguageGenerator func(logger *slog.Logger, outputDir string, md *meta.Metadata) (string, error)

var generators = map[string]LanguageGenerator{
	"rs": rust.Generate,
}

// Options tune every pass the Generator runs.
type Options struct {
	Positional bool
	Jobs       int
	Manifest   bool
	RawLogger  log.RawLogger
}

// Artifact describes one generated file.
type Artifact struct {
	Module string `json:"module"`
	Path   string `json:"path"`
	Digest string `json:"blake2b"`
}

type Generator struct {
	outputDir string
	logger    *slog.Logger
	opts      Options
}

func New(outputDir string, logger *slog.Logger, opts Options) *Generator {
	if opts.Jobs < 1 {
		opts.Jobs = 1
	}
	if opts.RawLogger == nil {
		opts.RawLogger = log.NewRaw(nil)
	}
	return &Generator{
		outputDir: outputDir,
		logger:    logger,
		opts:      opts,
	}
}

// Languages lists the registered backends.
func Languages() []string {
	var langs []string
	for k := range generators {
		langs = append(langs, k)
	}
	sort.Strings(langs)
	return langs
}

// moduleKey is the output directory name a module is generated into.
func moduleKey(name string) string {
	return common.ToSnakeCase(name)
}

type loadedModule struct {
	name string
	file string
}

// LoadAll reads every schema document. Each module owns one output file, so
// two modules must not map to the same directory (FooBar and foo_bar do).
func (g *Generator) LoadAll(paths []string) ([]*schema.Program, error) {
	g.logger.Info("Loading schemas", "count", len(paths))

	var progs []*schema.Program
	seen := make(map[string]loadedModule)
	for _, p := range paths {
		prog, err := schema.LoadFile(p)
		if err != nil {
			return nil, err
		}
		key := moduleKey(prog.Name)
		if prev, dup := seen[key]; dup {
			if prev.name == prog.Name {
				return nil, fmt.Errorf("module %s defined by both %s and %s", prog.Name, prev.file, p)
			}
			return nil, fmt.Errorf("modules %s (%s) and %s (%s) both generate into %s",
				prev.name, prev.file, prog.Name, p, key)
		}
		seen[key] = loadedModule{name: prog.Name, file: p}
		g.logger.Debug("Loaded schema",
			"file", p,
			"module", prog.Name,
			"declarations", len(prog.Decls))
		progs = append(progs, prog)
	}
	return progs, nil
}

// CheckModules rejects programs that would be generated into the same output
// file.
func CheckModules(progs []*schema.Program) error {
	seen := make(map[string]string)
	for _, p := range progs {
		key := moduleKey(p.Name)
		prev, dup := seen[key]
		switch {
		case dup && prev == p.Name:
			return fmt.Errorf("module %s defined twice", p.Name)
		case dup:
			return fmt.Errorf("modules %s and %s both generate into %s", prev, p.Name, key)
		}
		seen[key] = p.Name
	}
	return nil
}

// GenerateLang runs one pass per program. Passes share nothing but the
// logger, so up to Options.Jobs of them run at once.
func (g *Generator) GenerateLang(lang string, progs []*schema.Program) ([]Artifact, error) {
	gen, ok := generators[lang]
	if !ok {
		return nil, fmt.Errorf("unsupported language '%s' (supported: %v)", lang, Languages())
	}
	if err := CheckModules(progs); err != nil {
		return nil, err
	}

	g.logger.Info("Generating modules", "language", lang, "modules", len(progs), "jobs", g.opts.Jobs)

	artifacts := make([]Artifact, len(progs))
	errs := make([]error, len(progs))
	sem := make(chan struct{}, g.opts.Jobs)
	var wg sync.WaitGroup

	for i, prog := range progs {
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			artifacts[i], errs[i] = g.generateOne(gen, prog)
		}()
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	if g.opts.Manifest {
		if err := g.writeManifest(lang, artifacts); err != nil {
			return nil, err
		}
	}

	g.logger.Info("Generation complete", "language", lang, "output", g.outputDir)
	return artifacts, nil
}

func (g *Generator) generateOne(gen LanguageGenerator, prog *schema.Program) (Artifact, error) {
	md := &meta.Metadata{
		Program:    prog,
		Positional: g.opts.Positional,
		RawLogger:  g.opts.RawLogger,
	}
	path, err := gen(g.logger, g.outputDir, md)
	if err != nil {
		return Artifact{}, fmt.Errorf("generate module %s: %w", prog.Name, err)
	}

	digest, err := fileDigest(path)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Module: prog.Name, Path: path, Digest: digest}, nil
}

func fileDigest(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read generated file: %w", err)
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func (g *Generator) writeManifest(lang string, artifacts []Artifact) error {
	dir := filepath.Join(g.outputDir, "gen-"+lang)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}

	entries := make([]Artifact, len(artifacts))
	for i, a := range artifacts {
		rel, err := filepath.Rel(dir, a.Path)
		if err != nil {
			return fmt.Errorf("manifest path for %s: %w", a.Module, err)
		}
		entries[i] = Artifact{Module: a.Module, Path: filepath.ToSlash(rel), Digest: a.Digest}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Module < entries[j].Module })

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(dir, ManifestFile)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", ManifestFile, err)
	}
	g.logger.Info("Wrote manifest", "file", path, "modules", len(entries))
	return nil
}
