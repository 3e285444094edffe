// Package schema holds the resolved, read-only declaration tree that code
// generators consume.
//
// A Program owns every declaration of one module in a flat slice; type
// references point back into it by DeclID, so mutually recursive records need
// no back-pointers.
package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrUnresolved is returned when a type expression names a declaration
	// that does not exist in the module.
	ErrUnresolved = errors.New("unresolved type name")
	// ErrUnknownType is returned when a type reference carries a tag that no
	// consumer knows how to handle.
	ErrUnknownType = errors.New("unknown type")
)

// DeclID indexes Program.Decls.
type DeclID int

// Decl is a top-level declaration.
type Decl interface {
	DeclName() string
}

// Typedef binds a new name to an existing type.
type Typedef struct {
	Name string
	Type TypeRef
}

// EnumMember is a single enumerator with its literal value.
type EnumMember struct {
	Name  string
	Value int64
}

// Enum keeps its members in declared order; values are never renumbered.
type Enum struct {
	Name    string
	Members []EnumMember
}

// Field is a record member. ID is the wire ordinal.
type Field struct {
	ID   int16
	Name string
	Type TypeRef
}

// Encoding selects how an extension hook should treat a record's fields.
type Encoding int

const (
	// EncodingStandard is the owned representation.
	EncodingStandard Encoding = iota
	// EncodingPositional is the legacy borrowed representation kept for
	// compatibility with older runtime adapters.
	EncodingPositional
)

func (e Encoding) String() string {
	if e == EncodingPositional {
		return "positional"
	}
	return "standard"
}

// Record is a struct or exception declaration.
type Record struct {
	Name      string
	Fields    []Field
	Exception bool
	Encoding  Encoding
}

// Method is a single RPC method of a service.
type Method struct {
	Name       string
	Args       *Record
	Returns    TypeRef
	Exceptions []TypeRef
	Oneway     bool
}

// Service is a named, ordered set of methods.
type Service struct {
	Name    string
	Methods []*Method
}

func (t *Typedef) DeclName() string { return t.Name }
func (e *Enum) DeclName() string { return e.Name }
func (r *Record) DeclName() string { return r.Name }
func (s *Service) DeclName() string { return s.Name }

// Program is one resolved module. Decls is in schema order.
type Program struct {
	Name  string
	Decls []Decl
}

// Decl returns the declaration with the given id.
func (p *Program) Decl(id DeclID) (Decl, error) {
	if id < 0 || int(id) >= len(p.Decls) {
		return nil, fmt.Errorf("%w: declaration id %d out of range", ErrUnknownType, id)
	}
	return p.Decls[id], nil
}

// Add appends d and returns its id.
func (p *Program) Add(d Decl) DeclID {
	p.Decls = append(p.Decls, d)
	return DeclID(len(p.Decls) - 1)
}

// Lookup finds a declaration by exact name.
func (p *Program) Lookup(name string) (DeclID, bool) {
	for i, d := range p.Decls {
		if d.DeclName() == name {
			return DeclID(i), true
		}
	}
	return -1, false
}

// Typedefs returns the typedef declarations in schema order.
func (p *Program) Typedefs() []*Typedef { return collect[*Typedef](p.Decls) }

// Enums returns the enum declarations in schema order.
func (p *Program) Enums() []*Enum { return collect[*Enum](p.Decls) }

// Records returns struct and exception declarations in schema order.
func (p *Program) Records() []*Record { return collect[*Record](p.Decls) }

// Services returns the service declarations in schema order.
func (p *Program) Services() []*Service { return collect[*Service](p.Decls) }

func collect[T Decl](decls []Decl) []T {
	var out []T
	for _, d := range decls {
		if v, ok := d.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// Resolve follows typedef chains starting at t and returns the first
// non-alias type.
func (p *Program) Resolve(t TypeRef) (TypeRef, error) {
	seen := 0
	for {
		n, ok := t.(Named)
		if !ok {
			return t, nil
		}
		d, err := p.Decl(n.ID)
		if err != nil {
			return nil, err
		}
		td, ok := d.(*Typedef)
		if !ok {
			return t, nil
		}
		seen++
		if seen > len(p.Decls) {
			return nil, fmt.Errorf("%w: typedef cycle through %s", ErrUnknownType, td.Name)
		}
		t = td.Type
	}
}
