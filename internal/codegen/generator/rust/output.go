package rust

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/template"

	"github.com/thriftrs/rsgen/internal/codegen/common"
	"github.com/thriftrs/rsgen/internal/log"
)

// OutDirBase is the directory created under the output root for Rust modules.
const OutDirBase = "gen-rs"

const preambleTemplate = `///////////////////////////////////////////////////////////////
// Autogenerated by {{.Tool}} ({{.Version}})
//
// DO NOT EDIT UNLESS YOU ARE SURE YOU KNOW WHAT YOU ARE DOING
///////////////////////////////////////////////////////////////

#[allow(unused_imports)]
use std::collections::{HashMap, HashSet};

`

var preamble = template.Must(template.New("preamble").Parse(preambleTemplate))

// Output is the single stream a generation pass writes one module into.
// Declarations are written in the order Append is called.
type Output struct {
	module string
	path   string
	w      *bufio.Writer
	c      io.Closer
	raw    log.RawLogger
}

// ModulePath returns the file a module is generated into below outRoot.
func ModulePath(outRoot, module string) string {
	return filepath.Join(outRoot, OutDirBase, common.ToSnakeCase(module), "mod.rs")
}

// Open creates the module directory and file and writes the preamble.
// Nothing is created when the build version is invalid.
func Open(outRoot, module string, raw log.RawLogger) (*Output, error) {
	version, err := common.GetVersion()
	if err != nil {
		return nil, fmt.Errorf("get version: %w", err)
	}

	path := ModulePath(outRoot, module)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", filepath.Dir(path), err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}

	o, err := newOutput(f, module, raw, version)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	o.path = path
	return o, nil
}

// NewOutput wraps w and writes the preamble. If w is an io.Closer it is
// closed by Close.
func NewOutput(w io.Writer, module string, raw log.RawLogger) (*Output, error) {
	version, err := common.GetVersion()
	if err != nil {
		return nil, fmt.Errorf("get version: %w", err)
	}
	return newOutput(w, module, raw, version)
}

func newOutput(w io.Writer, module string, raw log.RawLogger, version string) (*Output, error) {
	if raw == nil {
		raw = log.NewRaw(nil)
	}
	o := &Output{module: module, w: bufio.NewWriter(w), raw: raw}
	if c, ok := w.(io.Closer); ok {
		o.c = c
	}

	data := struct {
		Tool    string
		Version string
	}{
		Tool:    common.ToolName,
		Version: version,
	}
	if err := preamble.Execute(o.w, data); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}
	return o, nil
}

// Path is the file backing the output, empty for in-memory writers.
func (o *Output) Path() string { return o.path }

// Append writes the complete text of one declaration.
func (o *Output) Append(decl, text string) error {
	if o.w == nil {
		return errors.New("output closed")
	}
	if _, err := o.w.WriteString(text); err != nil {
		return fmt.Errorf("write %s: %w", decl, err)
	}
	o.raw.Log(o.module, decl, []byte(text))
	return nil
}

// Close flushes and releases the stream. Calling Close again is a no-op.
func (o *Output) Close() error {
	if o.w == nil {
		return nil
	}
	err := o.w.Flush()
	o.w = nil
	if o.c != nil {
		if cerr := o.c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
