package rust

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/thriftrs/rsgen/internal/codegen/common"
	"github.com/thriftrs/rsgen/internal/schema"
)

// codeBuilder accumulates the text of a single declaration.
type codeBuilder struct {
	sb     strings.Builder
	indent int
}

func (b *codeBuilder) line(s string) {
	if s == "" {
		b.sb.WriteString("\n")
		return
	}
	b.sb.WriteString(strings.Repeat("    ", b.indent))
	b.sb.WriteString(s)
	b.sb.WriteString("\n")
}

func (b *codeBuilder) linef(format string, args ...any) {
	b.line(fmt.Sprintf(format, args...))
}

func (b *codeBuilder) String() string { return b.sb.String() }

// Emitter renders typedef, enum and record declarations into an Output.
// Every call appends a new declaration; emitting the same node twice produces
// duplicate output.
type Emitter struct {
	prog   *schema.Program
	out    *Output
	logger *slog.Logger
}

func NewEmitter(logger *slog.Logger, prog *schema.Program, out *Output) *Emitter {
	return &Emitter{prog: prog, out: out, logger: logger}
}

// Program is the module being generated.
func (e *Emitter) Program() *schema.Program { return e.prog }

// Output is the stream declarations are appended to.
func (e *Emitter) Output() *Output { return e.out }

func (e *Emitter) EmitTypedef(td *schema.Typedef) error {
	name := common.Capitalize(td.Name)
	rt, err := RenderType(e.prog, td.Type)
	if err != nil {
		return fmt.Errorf("typedef %s: %w", td.Name, err)
	}

	var b codeBuilder
	b.linef("pub type %s = %s;", name, rt)
	b.line("")
	return e.append(name, "typedef", &b)
}

func (e *Emitter) EmitEnum(en *schema.Enum) error {
	name := common.Capitalize(en.Name)

	var b codeBuilder
	b.linef("pub enum %s {", name)
	b.indent++
	for _, m := range en.Members {
		b.linef("%s = %d,", variantName(m.Name), m.Value)
	}
	b.indent--
	b.line("}")
	b.line("")
	return e.append(name, "enum", &b)
}

func (e *Emitter) EmitRecord(r *schema.Record) error {
	name := common.Capitalize(r.Name)

	var b codeBuilder
	b.line("#[allow(dead_code)]")
	if len(r.Fields) == 0 {
		b.linef("pub struct %s;", name)
		b.line("")
		return e.append(name, "record", &b)
	}

	b.linef("pub struct %s {", name)
	b.indent++
	for _, f := range r.Fields {
		rt, err := RenderType(e.prog, f.Type)
		if err != nil {
			return fmt.Errorf("record %s: field %s: %w", r.Name, f.Name, err)
		}
		b.linef("%s: %s,", fieldName(f.Name), rt)
	}
	b.indent--
	b.line("}")
	b.line("")
	return e.append(name, "record", &b)
}

func (e *Emitter) append(name, kind string, b *codeBuilder) error {
	e.logger.Debug("Emitting declaration", "kind", kind, "name", name)
	return e.out.Append(name, b.String())
}

// fieldName converts a schema field name to a Rust identifier.
func fieldName(s string) string {
	n := common.ToSnakeCase(s)
	switch {
	case isPathKeyword(n):
		// self, super and crate cannot be raw identifiers
		return n + "_"
	case isRustKeyword(n):
		return "r#" + n
	}
	return n
}

func isPathKeyword(s string) bool {
	return s == "self" || s == "super" || s == "crate"
}

// variantName converts an enum member name to a Rust variant. Capitalizing
// leaves Self as the only keyword a variant can collide with.
func variantName(s string) string {
	n := common.Capitalize(s)
	if n == "Self" {
		return n + "_"
	}
	return n
}

// rustKeywords holds the strict and reserved keywords of the 2021 and 2024
// editions.
var rustKeywords = map[string]bool{
	"as": true, "break": true, "const": true, "continue": true, "crate": true,
	"else": true, "enum": true, "extern": true, "false": true, "fn": true,
	"for": true, "if": true, "impl": true, "in": true, "let": true,
	"loop": true, "match": true, "mod": true, "move": true, "mut": true,
	"pub": true, "ref": true, "return": true, "self": true, "Self": true,
	"static": true, "struct": true, "super": true, "trait": true, "true": true,
	"type": true, "unsafe": true, "use": true, "where": true, "while": true,
	"async": true, "await": true, "dyn": true,

	"abstract": true, "become": true, "box": true, "do": true, "final": true,
	"macro": true, "override": true, "priv": true, "typeof": true,
	"unsized": true, "virtual": true, "yield": true, "try": true, "gen": true,
}

func isRustKeyword(s string) bool {
	return rustKeywords[s]
}
