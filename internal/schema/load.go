package schema

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// Document is the interchange form of a resolved module as emitted by the
// frontend.
type Document struct {
	Name     string       `json:"name" yaml:"name" toml:"name"`
	Typedefs []TypedefDoc `json:"typedefs" yaml:"typedefs" toml:"typedefs"`
	Enums    []EnumDoc    `json:"enums" yaml:"enums" toml:"enums"`
	Records  []RecordDoc  `json:"records" yaml:"records" toml:"records"`
	Services []ServiceDoc `json:"services" yaml:"services" toml:"services"`
}

type TypedefDoc struct {
	Name string `json:"name" yaml:"name" toml:"name"`
	Type string `json:"type" yaml:"type" toml:"type"`
}

type EnumDoc struct {
	Name    string          `json:"name" yaml:"name" toml:"name"`
	Members []EnumMemberDoc `json:"members" yaml:"members" toml:"members"`
}

type EnumMemberDoc struct {
	Name  string `json:"name" yaml:"name" toml:"name"`
	Value int64  `json:"value" yaml:"value" toml:"value"`
}

type FieldDoc struct {
	ID   int64  `json:"id" yaml:"id" toml:"id"`
	Name string `json:"name" yaml:"name" toml:"name"`
	Type string `json:"type" yaml:"type" toml:"type"`
}

type RecordDoc struct {
	Name      string     `json:"name" yaml:"name" toml:"name"`
	Exception bool       `json:"exception" yaml:"exception" toml:"exception"`
	Fields    []FieldDoc `json:"fields" yaml:"fields" toml:"fields"`
}

type MethodDoc struct {
	Name    string     `json:"name" yaml:"name" toml:"name"`
	Returns string     `json:"returns" yaml:"returns" toml:"returns"`
	Oneway  bool       `json:"oneway" yaml:"oneway" toml:"oneway"`
	Args    []FieldDoc `json:"args" yaml:"args" toml:"args"`
	Throws  []string   `json:"throws" yaml:"throws" toml:"throws"`
}

type ServiceDoc struct {
	Name    string      `json:"name" yaml:"name" toml:"name"`
	Methods []MethodDoc `json:"methods" yaml:"methods" toml:"methods"`
}

// FormatFromPath picks the document format from a file extension.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	default:
		return "json"
	}
}

// LoadFile reads and resolves the schema document at path.
func LoadFile(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open schema: %w", err)
	}
	defer f.Close()

	prog, err := Load(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if prog.Name == "" {
		base := filepath.Base(path)
		prog.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return prog, nil
}

// Load decodes a document in the given format ("json", "yaml" or "toml") and
// resolves it into a Program.
func Load(r io.Reader, format string) (*Program, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}

	var doc Document
	switch format {
	case "json":
		err = json.Unmarshal(data, &doc)
	case "yaml":
		err = yaml.Unmarshal(data, &doc)
	case "toml":
		err = toml.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("unsupported schema format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s schema: %w", format, err)
	}
	return doc.Resolve()
}

// Resolve builds the Program. Declarations are registered before any type
// expression is parsed so records may reference each other in any order.
func (d *Document) Resolve() (*Program, error) {
	prog := &Program{Name: d.Name}

	typedefs := make([]*Typedef, len(d.Typedefs))
	for i, td := range d.Typedefs {
		typedefs[i] = &Typedef{Name: td.Name}
		prog.Add(typedefs[i])
	}
	for _, ed := range d.Enums {
		e := &Enum{Name: ed.Name}
		for _, m := range ed.Members {
			e.Members = append(e.Members, EnumMember{Name: m.Name, Value: m.Value})
		}
		prog.Add(e)
	}
	records := make([]*Record, len(d.Records))
	for i, rd := range d.Records {
		records[i] = &Record{Name: rd.Name, Exception: rd.Exception}
		prog.Add(records[i])
	}

	resolve := func(expr string) (TypeRef, error) {
		return ParseTypeExpr(expr, prog.Lookup)
	}

	for i, td := range d.Typedefs {
		t, err := resolve(td.Type)
		if err != nil {
			return nil, fmt.Errorf("typedef %s: %w", td.Name, err)
		}
		typedefs[i].Type = t
	}
	for i, rd := range d.Records {
		fields, err := resolveFields(rd.Fields, resolve)
		if err != nil {
			return nil, fmt.Errorf("record %s: %w", rd.Name, err)
		}
		records[i].Fields = fields
	}

	for _, sd := range d.Services {
		svc := &Service{Name: sd.Name}
		for _, md := range sd.Methods {
			m, err := resolveMethod(md, resolve)
			if err != nil {
				return nil, fmt.Errorf("service %s: method %s: %w", sd.Name, md.Name, err)
			}
			svc.Methods = append(svc.Methods, m)
		}
		prog.Add(svc)
	}

	return prog, nil
}

func resolveMethod(md MethodDoc, resolve func(string) (TypeRef, error)) (*Method, error) {
	m := &Method{Name: md.Name, Oneway: md.Oneway, Returns: Primitive{Base: Void}}
	if md.Returns != "" {
		t, err := resolve(md.Returns)
		if err != nil {
			return nil, err
		}
		m.Returns = t
	}

	args, err := resolveFields(md.Args, resolve)
	if err != nil {
		return nil, err
	}
	m.Args = &Record{Name: md.Name + "_args", Fields: args}

	for _, x := range md.Throws {
		t, err := resolve(x)
		if err != nil {
			return nil, err
		}
		m.Exceptions = append(m.Exceptions, t)
	}
	return m, nil
}

func resolveFields(docs []FieldDoc, resolve func(string) (TypeRef, error)) ([]Field, error) {
	fields := make([]Field, 0, len(docs))
	for i, fd := range docs {
		t, err := resolve(fd.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", fd.Name, err)
		}
		id := fd.ID
		if id == 0 {
			id = int64(i + 1)
		}
		if id < math.MinInt16 || id > math.MaxInt16 {
			return nil, fmt.Errorf("field %s: id %d out of range [%d, %d]", fd.Name, id, math.MinInt16, math.MaxInt16)
		}
		fields = append(fields, Field{ID: int16(id), Name: fd.Name, Type: t})
	}
	return fields, nil
}
