package tools

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/agentgate/agentgate/internal/events"
)

// Grep runs a recursive search with the system grep. The pattern and path
// travel as argv elements, never through a shell, and sit behind -e and
// -- so a pattern or path starting with "-" cannot be parsed as an
// option. Exit code 1 (no matches) is a normal result.
func (s *Session) Grep(pattern, path, include string) (*ExecResult, error) {
	if path == "" {
		path = "."
	}
	if include == "" {
		include = "*"
	}
	s.emitter.Emit(events.KindGrep, fmt.Sprintf("searching %q under %s (include %s)", pattern, path, include))

	ctx, cancel := context.WithTimeout(context.Background(), s.grepTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "grep", "-r", "--include="+include, "-e", pattern, "--", path)
	setProcessGroup(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return nil, &TimeoutError{Command: "grep " + pattern, Timeout: s.grepTimeout}
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExecResult{Stdout: stdout.String(), Stderr: stderr.String(), ExitCode: exitErr.ExitCode()}, nil
		}
		return nil, fmt.Errorf("running grep: %w", err)
	}
	return &ExecResult{Stdout: stdout.String(), Stderr: stderr.String()}, nil
}
