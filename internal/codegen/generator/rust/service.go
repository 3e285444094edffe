package rust

import (
	"fmt"

	"github.com/thriftrs/rsgen/internal/codegen/common"
	"github.com/thriftrs/rsgen/internal/schema"
)

// Suffixes of the records synthesized for every method.
const (
	SuffixArgs    = "Args"
	SuffixPArgs   = "PArgs"
	SuffixResult  = "Result"
	SuffixPResult = "PResult"
)

// ResultArm is one alternative of a method outcome.
type ResultArm interface {
	armName(prog *schema.Program) (string, error)
	armType() schema.TypeRef
}

// SuccessArm holds the declared return type of a non-void method.
type SuccessArm struct {
	Type schema.TypeRef
}

// ExceptionArm holds one declared exception.
type ExceptionArm struct {
	Type schema.TypeRef
}

func (a SuccessArm) armName(*schema.Program) (string, error) { return "success", nil }
func (a SuccessArm) armType() schema.TypeRef { return a.Type }

func (a ExceptionArm) armName(prog *schema.Program) (string, error) {
	t, err := prog.Resolve(a.Type)
	if err != nil {
		return "", err
	}
	n, ok := t.(schema.Named)
	if !ok {
		return "", fmt.Errorf("%w: exception must name a declaration", ErrUnknownType)
	}
	d, err := prog.Decl(n.ID)
	if err != nil {
		return "", err
	}
	return common.ToSnakeCase(d.DeclName()), nil
}
func (a ExceptionArm) armType() schema.TypeRef { return a.Type }

// ResultUnion is the outcome of a call: exactly one arm is populated at run
// time. It only becomes a struct of fields in Flatten.
type ResultUnion struct {
	Arms []ResultArm
}

// MethodResult builds the outcome union of m: success first when m returns a
// value, then the exceptions in declared order.
func MethodResult(m *schema.Method) ResultUnion {
	var u ResultUnion
	if !schema.IsVoid(m.Returns) {
		u.Arms = append(u.Arms, SuccessArm{Type: m.Returns})
	}
	for _, x := range m.Exceptions {
		u.Arms = append(u.Arms, ExceptionArm{Type: x})
	}
	return u
}

// Flatten lays the union out as a record. The success arm gets ordinal 0 and
// exceptions are numbered from 1.
func (u ResultUnion) Flatten(prog *schema.Program, name string, enc schema.Encoding) (*schema.Record, error) {
	r := &schema.Record{Name: name, Encoding: enc}
	next := int16(1)
	for _, arm := range u.Arms {
		fname, err := arm.armName(prog)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		f := schema.Field{Name: fname, Type: arm.armType()}
		if _, ok := arm.(SuccessArm); ok {
			f.ID = 0
		} else {
			f.ID = next
			next++
		}
		r.Fields = append(r.Fields, f)
	}
	return r, nil
}

// ServiceLowering emits the argument and result records of every method of a
// service.
type ServiceLowering struct {
	emitter    *Emitter
	hooks      Hooks
	positional bool
}

// NewServiceLowering returns a lowering that also emits the positional
// PArgs/PResult duplicates when positional is set.
func NewServiceLowering(e *Emitter, hooks Hooks, positional bool) *ServiceLowering {
	if hooks == nil {
		hooks = NopHooks{}
	}
	return &ServiceLowering{emitter: e, hooks: hooks, positional: positional}
}

// RecordName is <Service><Method><suffix>.
func RecordName(svc *schema.Service, m *schema.Method, suffix string) string {
	return svc.Name + common.Capitalize(m.Name) + suffix
}

func (s *ServiceLowering) Lower(svc *schema.Service) error {
	for _, m := range svc.Methods {
		if err := s.lowerMethod(svc, m); err != nil {
			return fmt.Errorf("service %s: method %s: %w", svc.Name, m.Name, err)
		}
	}
	if err := s.hooks.Client(s.emitter, svc); err != nil {
		return fmt.Errorf("service %s: client: %w", svc.Name, err)
	}
	if err := s.hooks.Processor(s.emitter, svc); err != nil {
		return fmt.Errorf("service %s: processor: %w", svc.Name, err)
	}
	return nil
}

func (s *ServiceLowering) lowerMethod(svc *schema.Service, m *schema.Method) error {
	e := s.emitter

	args := renamed(m.Args, RecordName(svc, m, SuffixArgs), schema.EncodingStandard)
	if err := e.EmitRecord(args); err != nil {
		return err
	}
	if err := s.hooks.Reader(e, args); err != nil {
		return err
	}
	if err := s.hooks.Writer(e, args); err != nil {
		return err
	}

	if s.positional {
		pargs := renamed(m.Args, RecordName(svc, m, SuffixPArgs), schema.EncodingPositional)
		if err := e.EmitRecord(pargs); err != nil {
			return err
		}
		if err := s.hooks.Writer(e, pargs); err != nil {
			return err
		}
	}

	if m.Oneway {
		return nil
	}

	union := MethodResult(m)
	result, err := union.Flatten(e.prog, RecordName(svc, m, SuffixResult), schema.EncodingStandard)
	if err != nil {
		return err
	}
	if err := e.EmitRecord(result); err != nil {
		return err
	}
	if err := s.hooks.Reader(e, result); err != nil {
		return err
	}
	if err := s.hooks.ResultWriter(e, result); err != nil {
		return err
	}

	if s.positional {
		presult, err := union.Flatten(e.prog, RecordName(svc, m, SuffixPResult), schema.EncodingPositional)
		if err != nil {
			return err
		}
		if err := e.EmitRecord(presult); err != nil {
			return err
		}
		if err := s.hooks.Reader(e, presult); err != nil {
			return err
		}
	}
	return nil
}

// renamed copies r under a new name; the schema itself is never mutated.
func renamed(r *schema.Record, name string, enc schema.Encoding) *schema.Record {
	out := &schema.Record{Name: name, Encoding: enc}
	if r != nil {
		out.Fields = r.Fields
	}
	return out
}
