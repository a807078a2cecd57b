// Package guard classifies shell commands before execution. A command is
// matched against an ordered table of scoped-safety overrides first, then
// against a dangerous-pattern blocklist; the override-before-blocklist
// ordering is an invariant, not an accident of code layout.
//
// The guard is pattern-based on the raw command text plus one structural
// check (project-scoped rm). It does not attempt semantic understanding of
// command intent.
package guard

import (
	"fmt"

	"github.com/agentgate/agentgate/internal/events"
)

// Verdict is the outcome of evaluating one command.
type Verdict struct {
	Allowed bool
	// Rule is the triggering blocklist rule when blocked by the table.
	Rule *Rule
	// Reason is the human rendering of the refusal (rule description or
	// smuggling threat).
	Reason string
}

// Guard holds the compiled rule tables. Immutable after construction.
type Guard struct {
	overrides []Rule
	blocklist []Rule
	emitter   events.Emitter
}

// New builds a guard from the built-in tables, optionally extended by a
// rule pack. Built-in rules are always present: a pack can add rules but
// never remove protection.
func New(emitter events.Emitter, pack *Pack) (*Guard, error) {
	if emitter == nil {
		emitter = events.Discard{}
	}
	g := &Guard{emitter: emitter}

	var err error
	g.overrides, err = compileRules(builtinOverrides)
	if err != nil {
		return nil, fmt.Errorf("built-in overrides: %w", err)
	}
	g.blocklist, err = compileRules(builtinBlocklist)
	if err != nil {
		return nil, fmt.Errorf("built-in blocklist: %w", err)
	}

	if pack != nil {
		extra, err := compileRules(pack.Overrides)
		if err != nil {
			return nil, fmt.Errorf("pack overrides: %w", err)
		}
		g.overrides = append(g.overrides, extra...)

		extra, err = compileRules(pack.Blocklist)
		if err != nil {
			return nil, fmt.Errorf("pack blocklist: %w", err)
		}
		g.blocklist = append(g.blocklist, extra...)
	}
	return g, nil
}

// Evaluate classifies command. workdir scopes the structural rm override.
// No side effects when allowed; a block emits one warning event.
func (g *Guard) Evaluate(command, workdir string) Verdict {
	// Invisible or reordering codepoints can split a token so that no
	// pattern matches the text a shell would execute. Reject outright.
	if threat, found := scanSmuggling(command); found {
		v := Verdict{Reason: threat}
		g.emitter.Emit(events.KindWarning, "BLOCKED command with unicode smuggling: "+threat)
		return v
	}

	// Overrides first: a command matching both an override and a blocklist
	// rule resolves to Allowed.
	for i := range g.overrides {
		if g.overrides[i].re.MatchString(command) {
			return Verdict{Allowed: true}
		}
	}
	if projectScopedRemove(command, workdir) {
		return Verdict{Allowed: true}
	}

	for i := range g.blocklist {
		if g.blocklist[i].re.MatchString(command) {
			rule := &g.blocklist[i]
			g.emitter.Emit(events.KindWarning, fmt.Sprintf("BLOCKED dangerous command (%s): %s", rule.Description, truncate(command, 200)))
			return Verdict{Rule: rule, Reason: rule.Description}
		}
	}

	return Verdict{Allowed: true}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
