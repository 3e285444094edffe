package rust

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/thriftrs/rsgen/internal/codegen/meta"
)

// Generate writes md.Program to <outputDir>/gen-rs/<module>/mod.rs and
// returns the path of the generated file.
func Generate(logger *slog.Logger, outputDir string, md *meta.Metadata) (string, error) {
	return GenerateWithHooks(logger, outputDir, md, NopHooks{})
}

// GenerateWithHooks is Generate with caller-supplied extension hooks.
func GenerateWithHooks(logger *slog.Logger, outputDir string, md *meta.Metadata, hooks Hooks) (path string, err error) {
	prog := md.Program
	logger = logger.With("module", prog.Name)

	out, err := Open(outputDir, prog.Name, md.RawLogger)
	if err != nil {
		return "", err
	}
	defer func() {
		err = errors.Join(err, out.Close())
	}()

	if err := Write(logger, out, md, hooks); err != nil {
		return "", err
	}

	logger.Info("Generated Rust module", "file", out.Path())
	return out.Path(), nil
}

// Write emits every declaration of md.Program into out: typedefs, enums,
// records, then the synthesized records of each service. Within each group
// schema order is kept.
func Write(logger *slog.Logger, out *Output, md *meta.Metadata, hooks Hooks) error {
	prog := md.Program
	e := NewEmitter(logger, prog, out)

	for _, td := range prog.Typedefs() {
		if err := e.EmitTypedef(td); err != nil {
			return err
		}
	}
	for _, en := range prog.Enums() {
		if err := e.EmitEnum(en); err != nil {
			return err
		}
	}
	for _, r := range prog.Records() {
		if err := e.EmitRecord(r); err != nil {
			return err
		}
	}

	sl := NewServiceLowering(e, hooks, md.Positional)
	for _, svc := range prog.Services() {
		logger.Debug("Lowering service", "service", svc.Name, "methods", len(svc.Methods))
		if err := sl.Lower(svc); err != nil {
			return err
		}
	}

	logger.Debug("Module written",
		"typedefs", len(prog.Typedefs()),
		"enums", len(prog.Enums()),
		"records", len(prog.Records()),
		"services", len(prog.Services()))
	return nil
}

// Render generates prog into a string. Used by previews and tests.
func Render(logger *slog.Logger, md *meta.Metadata) (string, error) {
	var buf strings.Builder
	out, err := NewOutput(&buf, md.Program.Name, md.RawLogger)
	if err != nil {
		return "", err
	}
	if err := Write(logger, out, md, NopHooks{}); err != nil {
		return "", fmt.Errorf("render %s: %w", md.Program.Name, err)
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
