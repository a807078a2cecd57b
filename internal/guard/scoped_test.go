package guard

import (
	"os"
	"path/filepath"
	"testing"
)

func TestProjectScopedRemove(t *testing.T) {
	workdir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(workdir, "old_core"), 0755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		command string
		scoped  bool
	}{
		{"rm -rf old_core/", true},
		{"rm -rf old_core", true},
		{"rm -r old_core nested/thing", true},
		{"rm -rf ./old_core && echo done", true},
		{"rm -rf 'old core'", true}, // quoted target

		{"rm -rf", false},               // no targets
		{"rm -rf .", false},             // the workdir itself
		{"rm -rf /", false},             // absolute escape
		{"rm -rf ..", false},            // parent escape
		{"rm -rf ../sibling", false},    // parent escape
		{"rm -rf ~/stuff", false},       // home expansion unresolvable
		{"rm -rf $DIR", false},          // variable expansion unresolvable
		{"rm -rf old_core /etc", false}, // one target escapes, all must be inside
		{"ls -la", false},               // not a recursive rm at all
	}

	for _, tt := range tests {
		got := projectScopedRemove(tt.command, workdir)
		if got != tt.scoped {
			t.Errorf("projectScopedRemove(%q) = %v, want %v", tt.command, got, tt.scoped)
		}
	}
}

func TestProjectScopedRemove_GuardIntegration(t *testing.T) {
	workdir := t.TempDir()
	g := newGuard(t)

	if v := g.Evaluate("rm -rf old_core/", workdir); !v.Allowed {
		t.Errorf("project-scoped rm blocked: %s", v.Reason)
	}
	if v := g.Evaluate("rm -rf /etc", workdir); v.Allowed {
		t.Error("rm targeting /etc allowed")
	}
}

func TestProjectScopedRemove_SymlinkEscape(t *testing.T) {
	workdir := t.TempDir()
	outside := t.TempDir()

	link := filepath.Join(workdir, "link")
	if err := os.Symlink(outside, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	// The link lives inside the project but its target does not; the
	// override must follow the resolved target.
	if projectScopedRemove("rm -rf link", workdir) {
		t.Error("symlink to outside directory treated as project-scoped")
	}
}

func TestProjectScopedRemove_UnparseableFailsClosed(t *testing.T) {
	if projectScopedRemove("rm -rf 'unterminated", t.TempDir()) {
		t.Error("unparseable command granted the override")
	}
}
