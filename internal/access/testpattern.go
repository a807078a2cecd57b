package access

import (
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Test-file naming conventions, matched against the canonical path. A role
// with deny-test-patterns set cannot write anything matching these even if
// it nominally owns the file.
var testNameGlobs = []glob.Glob{
	glob.MustCompile("test_*"),   // test_foo.py
	glob.MustCompile("*_test"),   // foo_test
	glob.MustCompile("*_test.*"), // foo_test.go, foo_test.py
	glob.MustCompile("*_spec"),   // foo_spec
	glob.MustCompile("*_spec.*"), // foo_spec.rb
	glob.MustCompile("*.test.*"), // foo.test.ts (Jest/Vitest)
	glob.MustCompile("conftest.py"),
}

// Directory components that mark a test tree.
var testDirNames = map[string]bool{
	"tests":     true,
	"test":      true,
	"spec":      true,
	"__tests__": true,
}

// MatchesTestPattern reports whether path names a test file by convention:
// a test_ prefix, a _test/_spec suffix before the extension, a .test.
// infix, or any path component that is literally a test directory.
func MatchesTestPattern(path string) bool {
	base := filepath.Base(path)
	for _, g := range testNameGlobs {
		if g.Match(base) {
			return true
		}
	}

	dir := filepath.Dir(path)
	for _, component := range strings.Split(dir, string(filepath.Separator)) {
		if testDirNames[component] {
			return true
		}
	}
	return false
}
