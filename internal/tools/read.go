package tools

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"github.com/agentgate/agentgate/internal/events"
	"github.com/agentgate/agentgate/internal/quota"
)

// ReadFile returns a file body, bounded by the session limits. A whole-file
// read of anything over the size cap fails with a quota.SizeError telling
// the caller to pass a range; offset (1-based first line) and limit select
// a slice instead, rendered with a position header. Zero means "not given"
// for both.
func (s *Session) ReadFile(path string, offset, limit int) (string, error) {
	if offset == 0 && limit == 0 {
		s.emitter.Emit(events.KindRead, "reading "+path)
		info, err := os.Stat(path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
		if info.Size() > s.limits.MaxReadFileSize {
			return "", &quota.SizeError{Path: path, Size: info.Size(), Limit: s.limits.MaxReadFileSize}
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
		return string(data), nil
	}
	return s.readRange(path, offset, limit)
}

// readRange is the escape hatch past the byte cap. It still refuses to
// return unbounded output: a rangeless limit or a huge one is clamped to
// MaxReadLines with a warning event.
func (s *Session) readRange(path string, offset, limit int) (string, error) {
	s.emitter.Emit(events.KindRead, fmt.Sprintf("reading %s (offset=%d limit=%d)", path, offset, limit))
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	lines := strings.SplitAfter(string(data), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	total := len(lines)

	start := offset - 1
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	end := total
	if limit > 0 && start+limit < end {
		end = start + limit
	}
	if end-start > s.limits.MaxReadLines {
		end = start + s.limits.MaxReadLines
		s.emitter.Emit(events.KindWarning,
			fmt.Sprintf("ranged read of %s truncated to %d lines", path, s.limits.MaxReadLines))
	}

	header := fmt.Sprintf("[Lines %d-%d of %d]\n", start+1, end, total)
	return header + strings.Join(lines[start:end], ""), nil
}

// ReadFiles reads up to MaxBatchFiles paths and returns a JSON object
// keyed by the requested path. Per-file failures (missing, unreadable,
// over the per-file cap) become string placeholders under the same key;
// one bad path never fails the batch.
func (s *Session) ReadFiles(paths []string) (string, error) {
	s.emitter.Emit(events.KindRead, fmt.Sprintf("reading %d files", len(paths)))
	if len(paths) > s.limits.MaxBatchFiles {
		s.emitter.Emit(events.KindWarning,
			fmt.Sprintf("batch read truncated to %d of %d requested files", s.limits.MaxBatchFiles, len(paths)))
		paths = paths[:s.limits.MaxBatchFiles]
	}

	results := make(map[string]string, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			results[p] = "Error: " + err.Error()
			continue
		}
		if info.Size() > s.limits.MaxBatchFileSize {
			results[p] = quota.TooLarge(info.Size(), s.limits.MaxBatchFileSize)
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			results[p] = "Error: " + err.Error()
			continue
		}
		results[p] = string(data)
	}

	out, err := json.Marshal(results)
	if err != nil {
		return "", fmt.Errorf("encoding batch result: %w", err)
	}
	return string(out), nil
}

// ListFiles matches pattern against paths under root, relative to root
// with forward slashes. "*" stays within one path segment; "**" crosses
// segments. Results are sorted, and capped at MaxGlobResults with a
// warning so a careless "**/*" cannot flood the caller.
func (s *Session) ListFiles(pattern, root string) ([]string, error) {
	matcher, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	if root == "" {
		root = "."
	}
	s.emitter.Emit(events.KindGlob, fmt.Sprintf("listing %q under %s", pattern, root))

	var matches []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable subtree, skip
		}
		rel, rerr := filepath.Rel(root, path)
		if rerr != nil || rel == "." {
			return nil
		}
		if matcher.Match(filepath.ToSlash(rel)) {
			matches = append(matches, filepath.ToSlash(rel))
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("listing %s: %w", root, walkErr)
	}

	sort.Strings(matches)
	if len(matches) > s.limits.MaxGlobResults {
		s.emitter.Emit(events.KindWarning,
			fmt.Sprintf("glob %q matched %d entries, truncated to %d", pattern, len(matches), s.limits.MaxGlobResults))
		matches = matches[:s.limits.MaxGlobResults]
	}
	return matches, nil
}
