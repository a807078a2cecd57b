// Package redact scrubs credential material from text before it is
// persisted. Agent command lines and tool payloads routinely embed tokens
// (exported env vars, inline API keys, auth URLs); the audit log must not
// become a secondary secret store.
package redact

import "regexp"

const placeholder = "[REDACTED]"

type rule struct {
	name string
	re   *regexp.Regexp
}

var rules = []rule{
	{"aws-access-key", regexp.MustCompile(`AKIA[0-9A-Z]{16}`)},
	{"github-token", regexp.MustCompile(`gh[pousr]_[A-Za-z0-9]{36}`)},
	{"slack-token", regexp.MustCompile(`xox[baprs]-[0-9]{10,13}-[0-9]{10,13}[a-zA-Z0-9-]*`)},
	{"stripe-key", regexp.MustCompile(`[sr]k_live_[0-9a-zA-Z]{24}`)},
	{"private-key", regexp.MustCompile(`-----BEGIN (RSA |EC |DSA |OPENSSH |PGP )?PRIVATE KEY-----`)},
	{"bearer-token", regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9._-]{20,}`)},
	{"url-userinfo", regexp.MustCompile(`(https?://)[^/\s:]+:[^@\s]+@`)},
	// Assignment-style secrets: KEY=value or key: value for names that
	// suggest credentials. Covers `export OPENAI_API_KEY=...` in commands.
	{"assignment", regexp.MustCompile(`(?i)\b([A-Z0-9_]*(?:api[_-]?key|secret|token|password|passwd|credential)[A-Z0-9_]*)\s*[=:]\s*\S+`)},
}

// Scrub replaces anything matching a credential pattern with [REDACTED].
// Assignment-style matches keep the variable name so audit entries stay
// diagnosable.
func Scrub(input string) string {
	out := input
	for _, r := range rules {
		if r.name == "assignment" {
			out = r.re.ReplaceAllString(out, "$1="+placeholder)
			continue
		}
		if r.name == "url-userinfo" {
			out = r.re.ReplaceAllString(out, "$1"+placeholder+"@")
			continue
		}
		out = r.re.ReplaceAllString(out, placeholder)
	}
	return out
}

// ScrubAll scrubs every string in a slice, returning a new slice.
func ScrubAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = Scrub(v)
	}
	return out
}
