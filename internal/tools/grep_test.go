//go:build !windows

package tools

import (
	"strings"
	"testing"
)

func TestGrep(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "a.go", "package main\nfunc needle() {}\n")
	writeTemp(t, dir, "b.txt", "needle in text\n")
	s, _ := newTestSession(t, Config{})

	res, err := s.Grep("needle", dir, "*.go")
	if err != nil {
		t.Fatal(err)
	}
	if res.ExitCode != 0 {
		t.Fatalf("grep exit = %d, stderr: %s", res.ExitCode, res.Stderr)
	}
	if !strings.Contains(res.Stdout, "a.go") {
		t.Errorf("match in a.go missing: %q", res.Stdout)
	}
	if strings.Contains(res.Stdout, "b.txt") {
		t.Errorf("--include filter ignored: %q", res.Stdout)
	}
}

func TestGrep_NoMatches(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "a.txt", "nothing here\n")
	s, _ := newTestSession(t, Config{})

	res, err := s.Grep("absent-pattern", dir, "")
	if err != nil {
		t.Fatal(err)
	}
	if res.ExitCode != 1 {
		t.Errorf("no-match exit = %d, want 1", res.ExitCode)
	}
	if res.Stdout != "" {
		t.Errorf("no-match stdout = %q", res.Stdout)
	}
}

func TestGrep_LeadingDashPatternIsLiteral(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "a.txt", "flag: -rf\n")
	s, _ := newTestSession(t, Config{})

	// A pattern starting with "-" must be searched for, not parsed as a
	// grep option.
	res, err := s.Grep("-rf", dir, "")
	if err != nil {
		t.Fatal(err)
	}
	if res.ExitCode != 0 {
		t.Fatalf("grep exit = %d, stderr: %s", res.ExitCode, res.Stderr)
	}
	if !strings.Contains(res.Stdout, "a.txt") {
		t.Errorf("leading-dash pattern not matched literally: %q", res.Stdout)
	}
}

func TestGrep_PatternIsNotShellParsed(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "a.txt", "x; echo pwned\n")
	s, _ := newTestSession(t, Config{})

	// A pattern full of shell metacharacters is just a pattern.
	res, err := s.Grep("x; echo pwned", dir, "")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.Stdout, "a.txt") {
		t.Errorf("literal pattern not matched: %q", res.Stdout)
	}
}
