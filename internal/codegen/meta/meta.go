package meta

import (
	"github.com/thriftrs/rsgen/internal/log"
	"github.com/thriftrs/rsgen/internal/schema"
)

// Metadata holds everything one generation pass needs.
// Shared between generator orchestrator and language-specific generators.
type Metadata struct {
	Program    *schema.Program
	Positional bool          // also emit legacy positional PArgs/PResult records
	RawLogger  log.RawLogger // receives the text of every emitted declaration
}
