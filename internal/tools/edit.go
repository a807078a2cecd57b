package tools

import (
	"fmt"
	"os"
	"strings"

	"github.com/agentgate/agentgate/internal/access"
	"github.com/agentgate/agentgate/internal/events"
)

// EditFile replaces exactly one occurrence of oldStr with newStr. Zero
// occurrences and multiple occurrences both fail with typed errors, and in
// either case the file is left byte-for-byte untouched; an ambiguous match
// is a caller mistake, not something to guess at.
func (s *Session) EditFile(path, oldStr, newStr string) error {
	canon, err := access.Canonicalize(path)
	if err != nil {
		canon = path
	}
	if d := s.policy.CheckWrite(canon); !d.Allowed {
		return &DeniedError{Path: path, Decision: d}
	}

	data, err := os.ReadFile(canon)
	if err != nil {
		return fmt.Errorf("reading %s: %w", canon, err)
	}
	content := string(data)

	switch count := strings.Count(content, oldStr); {
	case count == 0:
		return &EditNotFoundError{Path: path}
	case count > 1:
		return &AmbiguousEditError{Path: path, Count: count}
	}
	updated := strings.Replace(content, oldStr, newStr, 1)

	s.emitter.Emit(events.KindEdit, fmt.Sprintf("editing %s", canon))
	if err := writeDurable(canon, updated); err != nil {
		return fmt.Errorf("writing %s: %w", canon, err)
	}

	if patch := unifiedDiff(content, updated, "a/"+path, "b/"+path); patch != "" {
		s.emitter.EmitBlock(events.KindDiff, "PATCH "+path, patch, blockMaxLines)
	}
	s.emitter.Emit(events.KindChange, fmt.Sprintf("path=%s action=edited", canon))
	return nil
}
