package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/agentgate/agentgate/internal/config"
	"github.com/agentgate/agentgate/internal/events"
	"github.com/agentgate/agentgate/internal/guard"
	"github.com/agentgate/agentgate/internal/tools"
)

var (
	rulesPath   string
	auditPath   string
	interactive bool
)

var rootCmd = &cobra.Command{
	Use:   "agentgate",
	Short: "AgentGate - trust boundary for autonomous coding agents",
	Long: `AgentGate sits between an autonomous coding agent and the machine it
works on. Shell commands pass a pattern guard before they reach a shell,
file writes pass an ownership and denylist policy, reads are bounded by
quotas, and everything is recorded to an append-only audit log.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rulesPath, "rules", "", "Path to rule pack YAML (default: ~/.agentgate/rules.yaml)")
	rootCmd.PersistentFlags().StringVar(&auditPath, "audit-log", "", "Path to audit log file (default: ~/.agentgate/audit.jsonl)")
	rootCmd.PersistentFlags().BoolVar(&interactive, "interactive", false, "Allow questions to prompt on the terminal")
}

func Execute() error {
	return rootCmd.Execute()
}

// buildSession wires config, rule pack, audit log, and console rendering
// into one session. The returned closer flushes the audit log.
func buildSession() (*tools.Session, func(), error) {
	cfg, err := config.Load(rulesPath, auditPath)
	if err != nil {
		return nil, nil, err
	}

	pack, err := guard.LoadPack(cfg.RulesPath)
	if err != nil {
		return nil, nil, err
	}

	audit, err := events.NewAuditLogger(cfg.AuditPath)
	if err != nil {
		return nil, nil, err
	}
	emitter := events.Multi{events.NewConsole(os.Stderr), audit}

	g, err := guard.New(emitter, pack)
	if err != nil {
		audit.Close()
		return nil, nil, err
	}

	session := tools.NewSession(tools.Config{
		Guard:       g,
		Emitter:     emitter,
		Limits:      cfg.Limits,
		Interactive: interactive,
	})
	return session, func() { audit.Close() }, nil
}
