package guard

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Rule pairs a regex pattern with a human description. Patterns match the
// raw command text and use word boundaries so that e.g. only `dd` the
// command matches, never words containing "dd".
type Rule struct {
	Pattern     string `yaml:"pattern"`
	Description string `yaml:"description"`

	re *regexp.Regexp
}

// Pack extends the built-in tables from YAML. Packs add rules only; the
// built-in blocklist cannot be weakened by configuration.
type Pack struct {
	Version   string `yaml:"version"`
	Overrides []Rule `yaml:"overrides"`
	Blocklist []Rule `yaml:"blocklist"`
}

// LoadPack reads a rule pack. A missing file is an empty pack, so a fresh
// install runs on the built-ins alone.
func LoadPack(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Pack{}, nil
		}
		return nil, err
	}
	var pack Pack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("rule pack %s: %w", path, err)
	}
	return &pack, nil
}

func compileRules(rules []Rule) ([]Rule, error) {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", r.Pattern, err)
		}
		out[i] = Rule{Pattern: r.Pattern, Description: r.Description, re: re}
	}
	return out, nil
}

// StateDirName is the agent's internal state directory. Any command that
// writes into it is blocked: a stray `> .agentgate/state.db` truncates the
// session database to zero bytes.
const StateDirName = ".agentgate"

var builtinBlocklist = []Rule{
	{Pattern: `(?i)\brm\s+-[^\s]*r[^\s]*f`, Description: "recursive force delete"},
	{Pattern: `(?i)\brm\s+-[^\s]*f[^\s]*r`, Description: "recursive force delete"},
	{Pattern: `(?i)\bmkfs\b`, Description: "filesystem format"},
	{Pattern: `(?i)\bdd\s`, Description: "raw device copy"},
	{Pattern: `\bchmod\s+777\b`, Description: "world-writable permissions"},
	{Pattern: `\bchmod\s+-R\s+777\b`, Description: "recursive world-writable permissions"},
	{Pattern: `>\s*/dev/sd[a-z]`, Description: "redirect onto a block device"},
	{Pattern: `:\(\)\s*\{\s*:\s*\|\s*:\s*&\s*\}\s*;\s*:`, Description: "fork bomb"},
	{Pattern: `(?i)\bcurl\b.*\|\s*(?:bash|sh|zsh)\b`, Description: "remote script piped to a shell"},
	{Pattern: `(?i)\bwget\b.*\|\s*(?:bash|sh|zsh)\b`, Description: "remote script piped to a shell"},
	{Pattern: `(?i)\bsqlite3\s+.*\.agentgate/`, Description: "direct access to the agent state database"},
	{Pattern: `>+\s*[^\s]*\.agentgate/`, Description: "redirect into the agent state directory"},
	{Pattern: `\btee\b.*\.agentgate/`, Description: "tee into the agent state directory"},
	{Pattern: `\bmv\b.*\.agentgate/`, Description: "move into the agent state directory"},
	{Pattern: `\bcp\b.*\.agentgate/`, Description: "copy into the agent state directory"},
	{Pattern: `\brm\b.*\.agentgate/`, Description: "delete inside the agent state directory"},
	{Pattern: `\btruncate\b.*\.agentgate/`, Description: "truncate agent state files"},
}

// Scoped deletions through a find-and-filter construct only ever touch the
// matched file set; blocking them would make legitimate cleanup collateral
// damage of the rm rules.
var builtinOverrides = []Rule{
	{Pattern: `\bfind\b\s+.+-exec\s+rm\b`, Description: "find -exec rm is scoped to matched files"},
	{Pattern: `\bfind\b\s+.+-delete\b`, Description: "find -delete is scoped to matched files"},
}
