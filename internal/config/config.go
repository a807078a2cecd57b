package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/agentgate/agentgate/internal/guard"
	"github.com/agentgate/agentgate/internal/quota"
)

const (
	// StateDirName is the per-user state directory under $HOME. Its project
	// counterpart is protected from writes and shell tampering by the
	// access policy and the command guard.
	StateDirName = guard.StateDirName

	DefaultRulesFile = "rules.yaml"
	DefaultAuditFile = "audit.jsonl"
)

// Config resolves where the rule pack and audit log live, plus the
// read-quota caps. Paths left empty fall back to ~/.agentgate/.
type Config struct {
	StateDir  string
	RulesPath string
	AuditPath string
	Limits    quota.Limits
}

// fileConfig is the optional on-disk shape of ~/.agentgate/config.yaml.
// Only quota overrides live there; rule and audit paths come from flags.
type fileConfig struct {
	MaxReadFileSize  int64 `yaml:"max_read_file_size"`
	MaxBatchFileSize int64 `yaml:"max_batch_file_size"`
	MaxBatchFiles    int   `yaml:"max_batch_files"`
	MaxGlobResults   int   `yaml:"max_glob_results"`
	MaxReadLines     int   `yaml:"max_read_lines"`
}

func Load(rulesPath, auditPath string) (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	stateDir := filepath.Join(homeDir, StateDirName)
	if err := ensureDir(stateDir); err != nil {
		return nil, err
	}

	cfg := &Config{
		StateDir: stateDir,
		Limits:   quota.Default(),
	}

	if rulesPath != "" {
		cfg.RulesPath = rulesPath
	} else {
		cfg.RulesPath = filepath.Join(stateDir, DefaultRulesFile)
	}
	if auditPath != "" {
		cfg.AuditPath = auditPath
	} else {
		cfg.AuditPath = filepath.Join(stateDir, DefaultAuditFile)
	}

	if err := cfg.applyFileOverrides(filepath.Join(stateDir, "config.yaml")); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyFileOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return err
	}
	if fc.MaxReadFileSize > 0 {
		c.Limits.MaxReadFileSize = fc.MaxReadFileSize
	}
	if fc.MaxBatchFileSize > 0 {
		c.Limits.MaxBatchFileSize = fc.MaxBatchFileSize
	}
	if fc.MaxBatchFiles > 0 {
		c.Limits.MaxBatchFiles = fc.MaxBatchFiles
	}
	if fc.MaxGlobResults > 0 {
		c.Limits.MaxGlobResults = fc.MaxGlobResults
	}
	if fc.MaxReadLines > 0 {
		c.Limits.MaxReadLines = fc.MaxReadLines
	}
	return nil
}

func ensureDir(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, 0700)
	}
	return nil
}
