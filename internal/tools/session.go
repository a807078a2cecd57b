// Package tools is the surface the orchestrator calls once per tool
// invocation: reads bounded by quotas, writes and edits gated by the
// access policy, shell commands gated by the guard. Every failure comes
// back as a descriptive value, never a panic — the session must survive
// any single failed tool call.
package tools

import (
	"io"
	"os"
	"time"

	"github.com/agentgate/agentgate/internal/access"
	"github.com/agentgate/agentgate/internal/events"
	"github.com/agentgate/agentgate/internal/guard"
	"github.com/agentgate/agentgate/internal/quota"
)

const (
	// DefaultBashTimeout bounds one shell command. On expiry the whole
	// process group is killed, not just the immediate child.
	DefaultBashTimeout = 120 * time.Second
	// DefaultGrepTimeout bounds one recursive search.
	DefaultGrepTimeout = 60 * time.Second

	// blockMaxLines limits rendering of diff/content blocks; the audit
	// record keeps the full body.
	blockMaxLines = 60
)

// Config assembles a session. Zero fields get safe defaults; policy inputs
// are supplied by the orchestrator per agent role, never read from the
// environment.
type Config struct {
	Policy  *access.WritePolicy
	Guard   *guard.Guard
	Emitter events.Emitter
	Limits  quota.Limits

	// Interactive allows AskUser to actually prompt. Held per session so
	// concurrent sessions in one process cannot leak the flag across
	// (process-wide behavior is one shared value passed to every session).
	Interactive bool

	// InstallPrefix is the package-manager command InstallPackage prepends
	// (e.g. "pip install"). Empty disables installs.
	InstallPrefix string

	BashTimeout time.Duration
	GrepTimeout time.Duration
}

// Session is one agent role's view of the filesystem and shell. Immutable
// after construction.
type Session struct {
	policy        *access.WritePolicy
	guard         *guard.Guard
	emitter       events.Emitter
	limits        quota.Limits
	interactive   bool
	installPrefix string
	bashTimeout   time.Duration
	grepTimeout   time.Duration

	stdin io.Reader // AskUser input; os.Stdin unless a test swaps it
}

func NewSession(cfg Config) *Session {
	s := &Session{
		policy:        cfg.Policy,
		guard:         cfg.Guard,
		emitter:       cfg.Emitter,
		limits:        cfg.Limits,
		interactive:   cfg.Interactive,
		installPrefix: cfg.InstallPrefix,
		bashTimeout:   cfg.BashTimeout,
		grepTimeout:   cfg.GrepTimeout,
		stdin:         os.Stdin,
	}
	if s.emitter == nil {
		s.emitter = events.Discard{}
	}
	if s.policy == nil {
		s.policy = access.NewWritePolicy(access.OwnAll(), nil, false, guard.StateDirName)
	}
	if s.guard == nil {
		// Built-in tables only; their patterns are compile-tested.
		s.guard, _ = guard.New(s.emitter, nil)
	}
	if s.limits.MaxReadFileSize <= 0 {
		s.limits.MaxReadFileSize = quota.DefaultMaxReadFileSize
	}
	if s.limits.MaxBatchFileSize <= 0 {
		s.limits.MaxBatchFileSize = quota.DefaultMaxBatchFileSize
	}
	if s.limits.MaxBatchFiles <= 0 {
		s.limits.MaxBatchFiles = quota.DefaultMaxBatchFiles
	}
	if s.limits.MaxGlobResults <= 0 {
		s.limits.MaxGlobResults = quota.DefaultMaxGlobResults
	}
	if s.limits.MaxReadLines <= 0 {
		s.limits.MaxReadLines = quota.DefaultMaxReadLines
	}
	if s.bashTimeout <= 0 {
		s.bashTimeout = DefaultBashTimeout
	}
	if s.grepTimeout <= 0 {
		s.grepTimeout = DefaultGrepTimeout
	}
	return s
}
