package tools

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentgate/agentgate/internal/access"
	"github.com/agentgate/agentgate/internal/events"
)

// WriteFile replaces the file at path with content, creating it (and any
// missing parent directories) as needed. The write is policy-gated on the
// canonical path and announced before it happens; afterwards the change is
// rendered as a diff against the previous body, or as the full body for a
// new file, and the write is made durable with fsync before the change
// event fires.
func (s *Session) WriteFile(path, content string) error {
	canon, err := access.Canonicalize(path)
	if err != nil {
		canon = path
	}
	if d := s.policy.CheckWrite(canon); !d.Allowed {
		return &DeniedError{Path: path, Decision: d}
	}

	var previous *string
	if data, rerr := os.ReadFile(canon); rerr == nil {
		body := string(data)
		previous = &body
	}

	s.emitter.Emit(events.KindWrite, fmt.Sprintf("writing %d bytes to %s", len(content), canon))

	if dir := filepath.Dir(canon); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating parent directories for %s: %w", canon, err)
		}
	}
	if err := writeDurable(canon, content); err != nil {
		return fmt.Errorf("writing %s: %w", canon, err)
	}

	// Changed content renders as a patch; a new file or an identical
	// rewrite renders the full body.
	if patch := diffIfChanged(previous, content, path); patch != "" {
		s.emitter.EmitBlock(events.KindDiff, "PATCH "+path, patch, blockMaxLines)
	} else {
		s.emitter.EmitBlock(events.KindCode, fmt.Sprintf("NEW %s (%d bytes)", path, len(content)), content, blockMaxLines)
	}
	action := "created"
	if previous != nil {
		action = "modified"
	}
	s.emitter.Emit(events.KindChange, fmt.Sprintf("path=%s action=%s", canon, action))
	return nil
}

func diffIfChanged(previous *string, content, path string) string {
	if previous == nil {
		return ""
	}
	return unifiedDiff(*previous, content, "a/"+path, "b/"+path)
}

// writeDurable flushes file data to stable storage before returning; a
// crash immediately after a reported write must not lose it.
func writeDurable(path, content string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
