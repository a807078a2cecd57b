package tools

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/agentgate/agentgate/internal/events"
)

// ExecResult carries the output of a finished command. A non-zero exit
// code is a result, not an error; only failures to run at all (blocked,
// timed out, unstartable) surface as errors.
type ExecResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

func (r *ExecResult) String() string {
	var sb strings.Builder
	if r.Stdout != "" {
		sb.WriteString("Stdout:\n")
		sb.WriteString(r.Stdout)
		if !strings.HasSuffix(r.Stdout, "\n") {
			sb.WriteByte('\n')
		}
	}
	if r.Stderr != "" {
		sb.WriteString("Stderr:\n")
		sb.WriteString(r.Stderr)
		if !strings.HasSuffix(r.Stderr, "\n") {
			sb.WriteByte('\n')
		}
	}
	fmt.Fprintf(&sb, "Exit Code: %d", r.ExitCode)
	return sb.String()
}

// RunBash executes command under "sh -c" in workdir, after the guard has
// passed it. Commands run in their own process group so that a timeout
// kills the entire pipeline, including children the shell spawned. A
// project virtualenv (.venv or venv) is activated via the environment when
// present.
func (s *Session) RunBash(command, workdir string) (*ExecResult, error) {
	if workdir == "" {
		workdir = "."
	}
	if v := s.guard.Evaluate(command, workdir); !v.Allowed {
		return nil, &BlockedError{Command: command, Verdict: v}
	}
	s.emitter.Emit(events.KindBash, truncate(command, 200))

	ctx, cancel := context.WithTimeout(context.Background(), s.bashTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = workdir
	cmd.Env = commandEnv(workdir)
	setProcessGroup(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return nil, &TimeoutError{Command: command, Timeout: s.bashTimeout}
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExecResult{Stdout: stdout.String(), Stderr: stderr.String(), ExitCode: exitErr.ExitCode()}, nil
		}
		return nil, fmt.Errorf("running command: %w", err)
	}
	return &ExecResult{Stdout: stdout.String(), Stderr: stderr.String()}, nil
}

// commandEnv returns the environment for a shell command. If the project
// carries a virtualenv its bin directory is prepended to PATH and
// VIRTUAL_ENV is set, matching what "source bin/activate" would do;
// PYTHONHOME is dropped because it overrides the virtualenv's interpreter
// paths.
func commandEnv(workdir string) []string {
	env := os.Environ()
	for _, name := range []string{".venv", "venv"} {
		venv := filepath.Join(workdir, name)
		bin := filepath.Join(venv, "bin")
		info, err := os.Stat(bin)
		if err != nil || !info.IsDir() {
			continue
		}
		if abs, aerr := filepath.Abs(venv); aerr == nil {
			venv = abs
			bin = filepath.Join(abs, "bin")
		}
		out := make([]string, 0, len(env)+2)
		pathSeen := false
		for _, kv := range env {
			switch {
			case strings.HasPrefix(kv, "PATH="):
				out = append(out, "PATH="+bin+string(os.PathListSeparator)+kv[len("PATH="):])
				pathSeen = true
			case strings.HasPrefix(kv, "VIRTUAL_ENV="), strings.HasPrefix(kv, "PYTHONHOME="):
				// replaced or dropped below
			default:
				out = append(out, kv)
			}
		}
		if !pathSeen {
			out = append(out, "PATH="+bin)
		}
		out = append(out, "VIRTUAL_ENV="+venv)
		return out
	}
	return env
}
