package tools

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/agentgate/agentgate/internal/events"
)

// validPackage admits plain names plus extras and version constraints
// ("flask[async]>=2.0"). Shell metacharacters are outside the class, so a
// specifier smuggling ";" or "|" never reaches the shell.
var validPackage = regexp.MustCompile(`^[a-zA-Z0-9._-]+[a-zA-Z0-9._\-\[\]>=<,! ]*$`)

// InstallPackage validates name and hands "<prefix> '<name>'" to RunBash,
// so installs pass through the same guard and timeout as any other
// command.
func (s *Session) InstallPackage(name string) (*ExecResult, error) {
	if !validPackage.MatchString(name) {
		return nil, &InvalidPackageError{Name: name}
	}
	if s.installPrefix == "" {
		return nil, fmt.Errorf("no install command configured; cannot install %q", name)
	}
	s.emitter.Emit(events.KindPackage, "installing "+name)
	return s.RunBash(s.installPrefix+" "+shellQuote(name), ".")
}

// shellQuote single-quotes s for sh. The validator already excludes
// quotes, but quoting here keeps version constraints like ">=2.0" from
// being parsed as redirections.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
