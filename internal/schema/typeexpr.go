package schema

import (
	"fmt"
	"strings"
)

var primitiveNames = map[string]BaseType{
	"void":   Void,
	"bool":   Bool,
	"byte":   Byte,
	"i8":     Byte,
	"i16":    I16,
	"i32":    I32,
	"i64":    I64,
	"double": Double,
	"string": String,
	"binary": Binary,
}

// ParseTypeExpr turns a resolved type expression such as
// "map<string,list<Point>>" into a TypeRef. Declared names are looked up with
// resolve.
func ParseTypeExpr(expr string, resolve func(name string) (DeclID, bool)) (TypeRef, error) {
	p := &typeExprParser{src: expr, resolve: resolve}
	t, err := p.parse()
	if err != nil {
		return nil, fmt.Errorf("type %q: %w", expr, err)
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("type %q: unexpected %q at offset %d", expr, p.src[p.pos:], p.pos)
	}
	return t, nil
}

type typeExprParser struct {
	src     string
	pos     int
	resolve func(string) (DeclID, bool)
}

func (p *typeExprParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *typeExprParser) ident() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '_' || c == '.' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *typeExprParser) expect(c byte) error {
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != c {
		return fmt.Errorf("expected %q at offset %d", c, p.pos)
	}
	p.pos++
	return nil
}

func (p *typeExprParser) parse() (TypeRef, error) {
	name := p.ident()
	if name == "" {
		return nil, fmt.Errorf("expected type name at offset %d", p.pos)
	}

	switch name {
	case "list", "set":
		if err := p.expect('<'); err != nil {
			return nil, err
		}
		elem, err := p.parse()
		if err != nil {
			return nil, err
		}
		if err := p.expect('>'); err != nil {
			return nil, err
		}
		if name == "list" {
			return List{Elem: elem}, nil
		}
		return Set{Elem: elem}, nil
	case "map":
		if err := p.expect('<'); err != nil {
			return nil, err
		}
		key, err := p.parse()
		if err != nil {
			return nil, err
		}
		if err := p.expect(','); err != nil {
			return nil, err
		}
		val, err := p.parse()
		if err != nil {
			return nil, err
		}
		if err := p.expect('>'); err != nil {
			return nil, err
		}
		return Map{Key: key, Val: val}, nil
	}

	if base, ok := primitiveNames[name]; ok {
		return Primitive{Base: base}, nil
	}
	if id, ok := p.resolve(name); ok {
		return Named{ID: id}, nil
	}
	// Includes may qualify names with their module; the resolved module keeps
	// only the bare name.
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		if id, ok := p.resolve(name[i+1:]); ok {
			return Named{ID: id}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnresolved, name)
}
