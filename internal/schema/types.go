package schema

// BaseType enumerates the primitive kinds a Primitive type reference can carry.
type BaseType int

const (
	Void BaseType = iota
	Bool
	Byte
	I16
	I32
	I64
	Double
	String
	Binary
)

var baseTypeNames = map[BaseType]string{
	Void:   "void",
	Bool:   "bool",
	Byte:   "byte",
	I16:    "i16",
	I32:    "i32",
	I64:    "i64",
	Double: "double",
	String: "string",
	Binary: "binary",
}

func (b BaseType) String() string {
	if s, ok := baseTypeNames[b]; ok {
		return s
	}
	return "unknown"
}

// TypeRef is a resolved reference to a schema type. The set of variants is
// closed: Primitive, Named, List, Set and Map.
type TypeRef interface {
	typeRef()
}

// Primitive is a built-in scalar type.
type Primitive struct {
	Base BaseType
}

// Named points at a declaration of the owning Program by id.
type Named struct {
	ID DeclID
}

// List is an ordered sequence of Elem.
type List struct {
	Elem TypeRef
}

// Set is an unordered collection of unique Elem values.
type Set struct {
	Elem TypeRef
}

// Map associates unique keys of type Key with values of type Val.
type Map struct {
	Key TypeRef
	Val TypeRef
}

func (Primitive) typeRef() {}
func (Named) typeRef() {}
func (List) typeRef() {}
func (Set) typeRef() {}
func (Map) typeRef() {}

// IsVoid reports whether t is the void primitive.
func IsVoid(t TypeRef) bool {
	p, ok := t.(Primitive)
	return ok && p.Base == Void
}
