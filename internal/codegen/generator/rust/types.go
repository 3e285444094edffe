package rust

import (
	"fmt"

	"github.com/thriftrs/rsgen/internal/codegen/common"
	"github.com/thriftrs/rsgen/internal/schema"
)

// ErrUnknownType is returned when a type reference cannot be lowered.
var ErrUnknownType = schema.ErrUnknownType

var baseTypes = map[schema.BaseType]string{
	schema.Void:   "()",
	schema.Bool:   "bool",
	schema.Byte:   "i8",
	schema.I16:    "i16",
	schema.I32:    "i32",
	schema.I64:    "i64",
	schema.Double: "f64",
	schema.String: "String",
	schema.Binary: "Vec<u8>",
}

// RenderType lowers t to a Rust type expression. Typedefs are resolved to
// the aliased type first.
func RenderType(prog *schema.Program, t schema.TypeRef) (string, error) {
	t, err := prog.Resolve(t)
	if err != nil {
		return "", err
	}

	switch t := t.(type) {
	case schema.Primitive:
		if s, ok := baseTypes[t.Base]; ok {
			return s, nil
		}
		return "", fmt.Errorf("%w: primitive kind %d", ErrUnknownType, int(t.Base))

	case schema.Named:
		d, err := prog.Decl(t.ID)
		if err != nil {
			return "", err
		}
		switch d := d.(type) {
		case *schema.Enum:
			return common.Capitalize(d.Name), nil
		case *schema.Record:
			return common.Capitalize(d.Name), nil
		}
		return "", fmt.Errorf("%w: %s is not a type", ErrUnknownType, d.DeclName())

	case schema.Map:
		k, err := RenderType(prog, t.Key)
		if err != nil {
			return "", err
		}
		v, err := RenderType(prog, t.Val)
		if err != nil {
			return "", err
		}
		return "HashMap<" + k + ", " + v + ">", nil

	case schema.Set:
		e, err := RenderType(prog, t.Elem)
		if err != nil {
			return "", err
		}
		return "HashSet<" + e + ">", nil

	case schema.List:
		e, err := RenderType(prog, t.Elem)
		if err != nil {
			return "", err
		}
		return "Vec<" + e + ">", nil
	}

	return "", fmt.Errorf("%w: %T", ErrUnknownType, t)
}
