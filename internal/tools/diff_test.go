package tools

import (
	"strings"
	"testing"
)

func TestUnifiedDiff_EqualIsEmpty(t *testing.T) {
	if d := unifiedDiff("same\n", "same\n", "a/f", "b/f"); d != "" {
		t.Errorf("diff of equal bodies = %q", d)
	}
}

func TestUnifiedDiff_SingleChange(t *testing.T) {
	before := "one\ntwo\nthree\n"
	after := "one\nTWO\nthree\n"
	d := unifiedDiff(before, after, "a/f", "b/f")

	for _, want := range []string{"--- a/f\n", "+++ b/f\n", "@@ -1,3 +1,3 @@\n", "-two\n", "+TWO\n", " one\n", " three\n"} {
		if !strings.Contains(d, want) {
			t.Errorf("diff missing %q:\n%s", want, d)
		}
	}
}

func TestUnifiedDiff_InsertionAtTop(t *testing.T) {
	d := unifiedDiff("", "new line\n", "a/f", "b/f")
	if !strings.Contains(d, "@@ -0,0 +1,1 @@\n") {
		t.Errorf("insertion hunk header wrong:\n%s", d)
	}
	if !strings.Contains(d, "+new line\n") {
		t.Errorf("insertion line missing:\n%s", d)
	}
}

func TestUnifiedDiff_DistantChangesSplitHunks(t *testing.T) {
	var a, b []string
	for i := 0; i < 30; i++ {
		line := "line"
		a = append(a, line)
		b = append(b, line)
	}
	a[0], b[0] = "first-old", "first-new"
	a[29], b[29] = "last-old", "last-new"

	d := unifiedDiff(strings.Join(a, "\n")+"\n", strings.Join(b, "\n")+"\n", "a/f", "b/f")
	if got := strings.Count(d, "@@ -"); got != 2 {
		t.Errorf("expected 2 hunks, got %d:\n%s", got, d)
	}
}
