// Package access decides whether a write to a filesystem path is permitted
// for a given agent role. Decisions are pure functions of the policy and
// the canonical (absolute, symlink-resolved) path; explicit prohibition
// always wins over ownership.
package access

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// DenyReason tags why a write was refused so the orchestrator can branch
// without parsing human text.
type DenyReason string

const (
	DenyStateDir    DenyReason = "state-dir"    // inside the agent's internal state directory
	DenyListed      DenyReason = "denied-file"  // explicit denylist entry
	DenyTestPattern DenyReason = "test-pattern" // matches a test-file naming convention
	DenyNotOwned    DenyReason = "not-owned"    // outside the ownership allowlist
)

// Decision is the outcome of a write check. Detail is the human rendering;
// Reason is the machine one.
type Decision struct {
	Allowed bool
	Reason  DenyReason
	Detail  string
}

// Ownership distinguishes an unrestricted role from one confined to an
// allowlist. The distinction is a real type so that "no set" can never be
// confused with "empty set" (which would deny everything).
type Ownership struct {
	restricted bool
	paths      map[string]bool
}

// OwnAll grants unrestricted write access (trusted roles).
func OwnAll() Ownership {
	return Ownership{}
}

// OwnOnly confines writes to the given paths. Paths are canonicalized at
// construction; comparisons at check time are set lookups.
func OwnOnly(paths []string) Ownership {
	set := make(map[string]bool, len(paths))
	for _, p := range paths {
		canon, err := Canonicalize(p)
		if err != nil {
			canon = p
		}
		set[canon] = true
	}
	return Ownership{restricted: true, paths: set}
}

// WritePolicy is the per-role write gate. Immutable after construction;
// safe for concurrent readers.
type WritePolicy struct {
	owner     Ownership
	denied    map[string]bool
	denyTests bool
	stateDir  string
}

// NewWritePolicy builds a policy. denied paths are always refused
// regardless of ownership; denyTestPatterns additionally refuses anything
// matching a test naming convention. stateDir is the name of the agent's
// internal state directory (e.g. ".agentgate"), write-blocked absolutely.
func NewWritePolicy(owner Ownership, denied []string, denyTestPatterns bool, stateDir string) *WritePolicy {
	deniedSet := make(map[string]bool, len(denied))
	for _, p := range denied {
		canon, err := Canonicalize(p)
		if err != nil {
			canon = p
		}
		deniedSet[canon] = true
	}
	return &WritePolicy{
		owner:     owner,
		denied:    deniedSet,
		denyTests: denyTestPatterns,
		stateDir:  stateDir,
	}
}

// CheckWrite decides whether path may be written. The layers run in fixed
// order: state directory, explicit denylist, test patterns, ownership.
func (p *WritePolicy) CheckWrite(path string) Decision {
	canon, err := Canonicalize(path)
	if err != nil {
		canon = path
	}

	// Checked against both the literal and canonical form: a symlink into
	// the state directory must not slip past under its literal name, and a
	// symlink named after it must not slip past under its target.
	if p.stateDir != "" && (containsComponent(path, p.stateDir) || containsComponent(canon, p.stateDir)) {
		return Decision{
			Reason: DenyStateDir,
			Detail: fmt.Sprintf("write to %s denied: the %s directory holds the agent's internal state; writing here would corrupt the running session", canon, p.stateDir),
		}
	}

	if p.denied[canon] {
		return Decision{
			Reason: DenyListed,
			Detail: fmt.Sprintf("write to %s denied: file is explicitly read-only for this role", canon),
		}
	}

	if p.denyTests && MatchesTestPattern(canon) {
		return Decision{
			Reason: DenyTestPattern,
			Detail: fmt.Sprintf("write to %s denied: matches a test-file naming convention and test files are read-only for this role", canon),
		}
	}

	if !p.owner.restricted {
		return Decision{Allowed: true}
	}
	if p.owner.paths[canon] {
		return Decision{Allowed: true}
	}

	owned := make([]string, 0, len(p.owner.paths))
	for f := range p.owner.paths {
		owned = append(owned, f)
	}
	sort.Strings(owned)
	return Decision{
		Reason: DenyNotOwned,
		Detail: fmt.Sprintf("write to %s denied: not in this role's owned set; write into your own files instead: %s", canon, strings.Join(owned, ", ")),
	}
}

// containsComponent reports whether any path component equals name.
func containsComponent(path, name string) bool {
	for _, component := range strings.Split(filepath.ToSlash(path), "/") {
		if component == name {
			return true
		}
	}
	return false
}
