package tools

import (
	"fmt"
	"time"

	"github.com/agentgate/agentgate/internal/access"
	"github.com/agentgate/agentgate/internal/guard"
)

// DeniedError reports a write refused by the access policy. The embedded
// decision distinguishes explicit denial from not-owned so the caller can
// retry elsewhere or abort.
type DeniedError struct {
	Path     string
	Decision access.Decision
}

func (e *DeniedError) Error() string {
	return "BLOCKED: " + e.Decision.Detail
}

// BlockedError reports a command refused by the guard before reaching the
// shell.
type BlockedError struct {
	Command string
	Verdict guard.Verdict
}

func (e *BlockedError) Error() string {
	if e.Verdict.Rule != nil {
		return fmt.Sprintf("command blocked by safety filter (%s), pattern: %s", e.Verdict.Rule.Description, e.Verdict.Rule.Pattern)
	}
	return "command blocked by safety filter: " + e.Verdict.Reason
}

// TimeoutError reports a command that exceeded its wall-clock bound. It is
// distinct from the generic error path because the command may have left
// side effects behind.
type TimeoutError struct {
	Command string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("command timed out after %s (partial side effects possible): %s", e.Timeout, truncate(e.Command, 200))
}

// EditNotFoundError reports an edit whose old string appears nowhere in
// the file.
type EditNotFoundError struct {
	Path string
}

func (e *EditNotFoundError) Error() string {
	return fmt.Sprintf("old string not found in %s", e.Path)
}

// AmbiguousEditError reports an edit whose old string appears more than
// once; applying it could change an unintended match.
type AmbiguousEditError struct {
	Path  string
	Count int
}

func (e *AmbiguousEditError) Error() string {
	return fmt.Sprintf("old string found %d times in %s; provide more context to make it unique", e.Count, e.Path)
}

// InvalidPackageError reports a package specifier that failed validation
// and was never passed to the shell.
type InvalidPackageError struct {
	Name string
}

func (e *InvalidPackageError) Error() string {
	return fmt.Sprintf("invalid package name: %q", e.Name)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
