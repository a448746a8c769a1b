package testutil

import "sync"

// ScriptedReader is an io.Reader for reference-number generation in tests.
//
// Each Read fills the whole buffer with the next scripted byte; after the
// script runs out the last byte repeats. Feeding the same byte twice makes
// two consecutive numbers collide.
//
// Thread-safety: safe for concurrent use.
type ScriptedReader struct {
	mu    sync.Mutex
	fills []byte
	next  int
}

// NewScriptedReader creates a reader cycling through fills. No fills
// means all-zero reads.
func NewScriptedReader(fills ...byte) *ScriptedReader {
	if len(fills) == 0 {
		fills = []byte{0}
	}
	return &ScriptedReader{fills: fills}
}

// Read implements io.Reader.
func (r *ScriptedReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.next
	if i >= len(r.fills) {
		i = len(r.fills) - 1
	}
	for j := range p {
		p[j] = r.fills[i]
	}
	r.next++
	return len(p), nil
}
