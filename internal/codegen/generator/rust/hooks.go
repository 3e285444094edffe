package rust

import "github.com/thriftrs/rsgen/internal/schema"

// Hooks are the extension points a complete backend fills in: wire codecs
// for each synthesized record and the per-service client stub and request
// dispatcher. They run right after the declarations they operate on and may
// append to e.Output().
type Hooks interface {
	Reader(e *Emitter, r *schema.Record) error
	Writer(e *Emitter, r *schema.Record) error
	ResultWriter(e *Emitter, r *schema.Record) error
	Client(e *Emitter, s *schema.Service) error
	Processor(e *Emitter, s *schema.Service) error
}

// NopHooks generates no code.
type NopHooks struct{}

func (NopHooks) Reader(*Emitter, *schema.Record) error { return nil }
func (NopHooks) Writer(*Emitter, *schema.Record) error { return nil }
func (NopHooks) ResultWriter(*Emitter, *schema.Record) error { return nil }
func (NopHooks) Client(*Emitter, *schema.Service) error { return nil }
func (NopHooks) Processor(*Emitter, *schema.Service) error { return nil }
