package access

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCheckWrite_Unrestricted(t *testing.T) {
	policy := NewWritePolicy(OwnAll(), nil, false, ".agentgate")

	d := policy.CheckWrite(filepath.Join(t.TempDir(), "main.go"))
	if !d.Allowed {
		t.Errorf("unrestricted role denied: %s", d.Detail)
	}
}

func TestCheckWrite_OwnershipAllowlist(t *testing.T) {
	dir := t.TempDir()
	owned := filepath.Join(dir, "owned.go")
	other := filepath.Join(dir, "other.go")

	policy := NewWritePolicy(OwnOnly([]string{owned}), nil, false, ".agentgate")

	if d := policy.CheckWrite(owned); !d.Allowed {
		t.Errorf("owned file denied: %s", d.Detail)
	}

	d := policy.CheckWrite(other)
	if d.Allowed {
		t.Fatal("unowned file allowed")
	}
	if d.Reason != DenyNotOwned {
		t.Errorf("reason = %s, want %s", d.Reason, DenyNotOwned)
	}
	// The ownership denial must list the permitted set so the caller can
	// self-correct.
	if !strings.Contains(d.Detail, owned) {
		t.Errorf("detail %q does not name the owned set", d.Detail)
	}
}

func TestCheckWrite_EmptyAllowlistDeniesEverything(t *testing.T) {
	policy := NewWritePolicy(OwnOnly(nil), nil, false, ".agentgate")

	if d := policy.CheckWrite(filepath.Join(t.TempDir(), "x.go")); d.Allowed {
		t.Error("empty allowlist should deny, not fall through to unrestricted")
	}
}

func TestCheckWrite_DenylistBeatsOwnership(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "golden_test.py")

	// Owned AND denied: the denylist must win.
	policy := NewWritePolicy(OwnOnly([]string{file}), []string{file}, false, ".agentgate")

	d := policy.CheckWrite(file)
	if d.Allowed {
		t.Fatal("denied file allowed via ownership")
	}
	if d.Reason != DenyListed {
		t.Errorf("reason = %s, want %s", d.Reason, DenyListed)
	}
}

func TestCheckWrite_TestPatterns(t *testing.T) {
	dir := t.TempDir()
	policy := NewWritePolicy(OwnAll(), nil, true, ".agentgate")

	tests := []struct {
		path string
		deny bool
	}{
		{"test_helpers.py", true},
		{"parser_test.go", true},
		{"model_spec.rb", true},
		{"button.test.tsx", true},
		{"conftest.py", true},
		{filepath.Join("tests", "fixtures.py"), true},
		{filepath.Join("spec", "cases.rb"), true},
		{filepath.Join("__tests__", "app.js"), true},
		{"main.go", false},
		{"protester.go", false}, // contains "test" but not as a convention
		{"attestation.py", false},
	}

	for _, tt := range tests {
		d := policy.CheckWrite(filepath.Join(dir, tt.path))
		if tt.deny && d.Allowed {
			t.Errorf("%s: expected test-pattern denial", tt.path)
		}
		if tt.deny && !d.Allowed && d.Reason != DenyTestPattern {
			t.Errorf("%s: reason = %s, want %s", tt.path, d.Reason, DenyTestPattern)
		}
		if !tt.deny && !d.Allowed {
			t.Errorf("%s: unexpected denial: %s", tt.path, d.Detail)
		}
	}
}

func TestCheckWrite_TestPatternOffByDefault(t *testing.T) {
	policy := NewWritePolicy(OwnAll(), nil, false, ".agentgate")

	if d := policy.CheckWrite(filepath.Join(t.TempDir(), "parser_test.go")); !d.Allowed {
		t.Errorf("test file denied without deny_test_patterns: %s", d.Detail)
	}
}

func TestCheckWrite_StateDir(t *testing.T) {
	dir := t.TempDir()
	policy := NewWritePolicy(OwnAll(), nil, false, ".agentgate")

	d := policy.CheckWrite(filepath.Join(dir, ".agentgate", "state.db"))
	if d.Allowed {
		t.Fatal("write into state directory allowed")
	}
	if d.Reason != DenyStateDir {
		t.Errorf("reason = %s, want %s", d.Reason, DenyStateDir)
	}
}

func TestCheckWrite_SymlinkResolvesToTarget(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real.go")
	if err := os.WriteFile(target, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	linkDir := filepath.Join(dir, "elsewhere")
	if err := os.Mkdir(linkDir, 0755); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(linkDir, "alias.go")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	// Owning the target grants access through any link to it.
	policy := NewWritePolicy(OwnOnly([]string{target}), nil, false, ".agentgate")
	if d := policy.CheckWrite(link); !d.Allowed {
		t.Errorf("symlink to owned target denied: %s", d.Detail)
	}

	// Ownership is canonicalized at construction: granting the link grants
	// its resolved target, under either name.
	policy = NewWritePolicy(OwnOnly([]string{link}), nil, false, ".agentgate")
	if d := policy.CheckWrite(link); !d.Allowed {
		t.Errorf("link in owned set denied: %s", d.Detail)
	}
	if d := policy.CheckWrite(target); !d.Allowed {
		t.Errorf("target denied despite its link being owned: %s", d.Detail)
	}

	// A link whose target is outside the owned set grants nothing.
	outside := filepath.Join(dir, "outside.go")
	if err := os.WriteFile(outside, []byte("y"), 0644); err != nil {
		t.Fatal(err)
	}
	stray := filepath.Join(linkDir, "stray.go")
	if err := os.Symlink(outside, stray); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	policy = NewWritePolicy(OwnOnly([]string{target}), nil, false, ".agentgate")
	if d := policy.CheckWrite(stray); d.Allowed {
		t.Error("link to an unowned target allowed")
	}
}

func TestCheckWrite_SymlinkCannotEscapeDenylist(t *testing.T) {
	dir := t.TempDir()
	protected := filepath.Join(dir, "golden.txt")
	if err := os.WriteFile(protected, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "innocent.txt")
	if err := os.Symlink(protected, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	policy := NewWritePolicy(OwnAll(), []string{protected}, false, ".agentgate")
	d := policy.CheckWrite(link)
	if d.Allowed {
		t.Fatal("denylisted file reachable through a symlink")
	}
	if d.Reason != DenyListed {
		t.Errorf("reason = %s, want %s", d.Reason, DenyListed)
	}
}
