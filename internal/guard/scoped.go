package guard

import (
	"path/filepath"
	"regexp"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

var recursiveRemove = regexp.MustCompile(`\brm\s+-[^\s]*r`)

// projectScopedRemove reports whether command is a recursive rm whose every
// target resolves strictly inside workdir. Agents legitimately remove
// directories during reimplementation (`rm -rf old_core/`); confining the
// override to the project tree keeps `rm -rf /`, `rm -rf ..` and
// `rm -rf .` blocked.
//
// The command is parsed as a bash AST rather than split on whitespace, so
// quoting, pipelines and `&&` chains are handled; a command the parser
// rejects gets no override. Targets carrying expansions we cannot resolve
// statically (`~`, `$VAR`, command substitution) disqualify the command.
func projectScopedRemove(command, workdir string) bool {
	if !recursiveRemove.MatchString(command) {
		return false
	}

	absWork, err := filepath.Abs(workdir)
	if err != nil {
		return false
	}
	if resolved, err := filepath.EvalSymlinks(absWork); err == nil {
		absWork = resolved
	}

	parser := syntax.NewParser(syntax.Variant(syntax.LangBash))
	file, err := parser.Parse(strings.NewReader(command), "")
	if err != nil {
		return false
	}

	scoped := true
	sawRecursiveRm := false
	syntax.Walk(file, func(node syntax.Node) bool {
		call, ok := node.(*syntax.CallExpr)
		if !ok {
			return true
		}
		words, literal := literalWords(call)
		if len(words) == 0 {
			return true
		}
		exe := words[0]
		if exe != "rm" && !strings.HasSuffix(exe, "/rm") {
			return true
		}
		recursive, targets := splitRemoveArgs(words[1:])
		if !recursive {
			return true
		}
		sawRecursiveRm = true
		if !literal || len(targets) == 0 {
			scoped = false
			return true
		}
		for _, target := range targets {
			if !insideDir(target, absWork) {
				scoped = false
			}
		}
		return true
	})

	return sawRecursiveRm && scoped
}

// literalWords renders each argument word; the second return is false when
// any word contains an expansion that cannot be resolved statically.
func literalWords(call *syntax.CallExpr) ([]string, bool) {
	words := make([]string, 0, len(call.Args))
	literal := true
	for _, w := range call.Args {
		s, ok := wordLiteral(w)
		if !ok {
			literal = false
		}
		words = append(words, s)
	}
	return words, literal
}

func wordLiteral(w *syntax.Word) (string, bool) {
	var sb strings.Builder
	for _, part := range w.Parts {
		switch p := part.(type) {
		case *syntax.Lit:
			sb.WriteString(p.Value)
		case *syntax.SglQuoted:
			sb.WriteString(p.Value)
		case *syntax.DblQuoted:
			for _, inner := range p.Parts {
				lit, ok := inner.(*syntax.Lit)
				if !ok {
					return "", false
				}
				sb.WriteString(lit.Value)
			}
		default:
			return "", false
		}
	}
	return sb.String(), true
}

// splitRemoveArgs separates rm's flags from its targets and reports
// whether any flag requests recursion.
func splitRemoveArgs(args []string) (recursive bool, targets []string) {
	for _, a := range args {
		if a == "--" {
			continue
		}
		if strings.HasPrefix(a, "-") && a != "-" {
			if strings.ContainsAny(a, "rR") || a == "--recursive" {
				recursive = true
			}
			continue
		}
		targets = append(targets, a)
	}
	return recursive, targets
}

// insideDir reports whether target resolves strictly inside dir. The
// directory itself does not count: `rm -rf .` is not a scoped cleanup.
func insideDir(target, dir string) bool {
	if strings.HasPrefix(target, "~") {
		return false
	}
	abs := target
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(dir, abs)
	}
	abs = resolveExisting(filepath.Clean(abs))
	return strings.HasPrefix(abs, dir+string(filepath.Separator))
}

// resolveExisting resolves symlinks through the deepest existing ancestor,
// so a link pointing outside the project cannot launder an outside target.
func resolveExisting(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err == nil {
		return resolved
	}
	parent := filepath.Dir(path)
	if parent == path {
		return path
	}
	return filepath.Join(resolveExisting(parent), filepath.Base(path))
}
