package tools

import (
	"strings"
	"testing"

	"github.com/agentgate/agentgate/internal/events"
)

// recorder captures emitted events for assertions.
type recorder struct {
	kinds    []events.Kind
	messages []string
}

func (r *recorder) Emit(kind events.Kind, message string) {
	r.kinds = append(r.kinds, kind)
	r.messages = append(r.messages, message)
}

func (r *recorder) EmitBlock(kind events.Kind, label, body string, maxLines int) {
	r.Emit(kind, label+"\n"+body)
}

func (r *recorder) count(kind events.Kind) int {
	n := 0
	for _, k := range r.kinds {
		if k == kind {
			n++
		}
	}
	return n
}

func (r *recorder) hasMessage(kind events.Kind, substr string) bool {
	for i, k := range r.kinds {
		if k == kind && strings.Contains(r.messages[i], substr) {
			return true
		}
	}
	return false
}

func newTestSession(t *testing.T, cfg Config) (*Session, *recorder) {
	t.Helper()
	rec := &recorder{}
	cfg.Emitter = rec
	return NewSession(cfg), rec
}
