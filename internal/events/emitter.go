// Package events carries audit and notification events from the tool layer
// to whatever renders or records them. The tool layer only selects a Kind
// per event; display semantics belong to the consumer.
package events

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Kind is the fixed event vocabulary. Consumers map kinds to display
// semantics; the tool layer never interprets them.
type Kind string

const (
	KindRead       Kind = "read"        // file read announcement
	KindWrite      Kind = "write"       // file write announcement
	KindEdit       Kind = "edit"        // file edit announcement
	KindBash       Kind = "bash"        // shell command announcement
	KindGlob       Kind = "glob"        // listing announcement
	KindGrep       Kind = "grep"        // search announcement
	KindPackage    Kind = "package"     // package install announcement
	KindDiff       Kind = "diff"        // unified diff block
	KindCode       Kind = "code"        // new-file content block
	KindChange     Kind = "change"      // file change notification (created/modified/edited)
	KindWarning    Kind = "warning"     // blocked command, quota truncation
	KindAsk        Kind = "ask"         // question posed to the user
	KindAutoAnswer Kind = "auto-answer" // question answered automatically
)

// Emitter receives tool-layer events. Emission is fire-and-forget: an
// emitter must never fail the tool call that produced the event.
type Emitter interface {
	// Emit records a single-line event.
	Emit(kind Kind, message string)
	// EmitBlock records a multi-line payload. maxLines truncates rendering
	// only; implementations that persist events keep the full body.
	EmitBlock(kind Kind, label, body string, maxLines int)
}

// Console renders events to a writer, one line per Emit and an indented
// block per EmitBlock.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = os.Stderr
	}
	return &Console{w: w}
}

func (c *Console) Emit(kind Kind, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "[%s] %s\n", kind, message)
}

func (c *Console) EmitBlock(kind Kind, label, body string, maxLines int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "[%s] %s\n", kind, label)
	lines := strings.Split(body, "\n")
	shown := lines
	if maxLines > 0 && len(lines) > maxLines {
		shown = lines[:maxLines]
	}
	for _, line := range shown {
		fmt.Fprintf(c.w, "  %s\n", line)
	}
	if len(shown) < len(lines) {
		fmt.Fprintf(c.w, "  ... (%d more lines)\n", len(lines)-len(shown))
	}
}

// Multi fans events out to several emitters.
type Multi []Emitter

func (m Multi) Emit(kind Kind, message string) {
	for _, e := range m {
		e.Emit(kind, message)
	}
}

func (m Multi) EmitBlock(kind Kind, label, body string, maxLines int) {
	for _, e := range m {
		e.EmitBlock(kind, label, body, maxLines)
	}
}

// Discard drops all events. Useful as a default and in tests.
type Discard struct{}

func (Discard) Emit(Kind, string)                   {}
func (Discard) EmitBlock(Kind, string, string, int) {}
