package execute

import (
	"io"
	"sync"
)

// Sink is a shared append-only log destination. Multiple in-flight
// orchestrators write to it concurrently, so every write is serialized;
// interleaving happens at write granularity, never mid-write.
type Sink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewSink wraps w in an append-safe sink.
func NewSink(w io.Writer) *Sink {
	if w == nil {
		w = io.Discard
	}
	return &Sink{w: w}
}

// Write implements io.Writer.
func (s *Sink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// Line writes a single line to the sink, appending a newline when text does
// not already end with one.
func (s *Sink) Line(text string) {
	if text == "" {
		return
	}
	if text[len(text)-1] != '\n' {
		text += "\n"
	}
	_, _ = io.WriteString(s, text)
}
