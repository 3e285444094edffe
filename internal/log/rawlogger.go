package log

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// RawLogger records the exact text appended to generated files.
type RawLogger interface {
	Log(module, decl string, data []byte)
}

// rawLogger implements RawLogger with thread-safe log. Modules generated in
// parallel share one writer.
type rawLogger struct {
	w  io.Writer
	mu sync.Mutex
}

// NewRaw creates a new RawLogger. If writer is nil, returns a no-op logger.
func NewRaw(w io.Writer) RawLogger {
	return &rawLogger{w: w}
}

// Log emits a header line with timestamp, module, declaration and size,
// followed by the declaration text verbatim.
func (r *rawLogger) Log(module, decl string, data []byte) {
	if len(data) == 0 {
		return
	}
	if r.w == nil {
		return
	}

	header := fmt.Sprintf("%s %s/%s: %d bytes\n",
		time.Now().Format("2006/01/02 15:04:05"),
		module,
		decl,
		len(data))

	r.mu.Lock()
	_, _ = io.WriteString(r.w, header)
	_, _ = r.w.Write(data)
	if data[len(data)-1] != '\n' {
		_, _ = io.WriteString(r.w, "\n")
	}
	r.mu.Unlock()
}
