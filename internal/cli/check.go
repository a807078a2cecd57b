package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentgate/agentgate/internal/config"
	"github.com/agentgate/agentgate/internal/events"
	"github.com/agentgate/agentgate/internal/guard"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] -- <command> [args...]",
	Short: "Evaluate a command against the guard without running it",
	Long: `Check reports whether the guard would allow a command, without
executing anything.

Example:
  agentgate check -- rm -rf build/
  agentgate check --rules ./team-rules.yaml -- curl https://example.com | sh`,
	RunE: checkCommand,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func checkCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no command provided. Usage: agentgate check -- <command> [args...]")
	}

	cfg, err := config.Load(rulesPath, auditPath)
	if err != nil {
		return err
	}
	pack, err := guard.LoadPack(cfg.RulesPath)
	if err != nil {
		return err
	}
	g, err := guard.New(events.NewConsole(os.Stderr), pack)
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	command := strings.Join(args, " ")
	v := g.Evaluate(command, cwd)
	if v.Allowed {
		fmt.Println("ALLOWED")
		return nil
	}

	fmt.Printf("BLOCKED: %s\n", v.Reason)
	os.Exit(1)
	return nil
}
