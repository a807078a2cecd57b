package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentgate/agentgate/internal/tools"
)

var execCmd = &cobra.Command{
	Use:   "exec [flags] -- <command> [args...]",
	Short: "Run a command through the guard",
	Long: `Exec evaluates a command against the guard and, if allowed, runs it
under sh -c with the standard timeout. The child's exit code becomes this
process's exit code.

Example:
  agentgate exec -- make test
  agentgate exec --audit-log ./audit.jsonl -- pip install requests`,
	RunE: execCommand,
}

func init() {
	rootCmd.AddCommand(execCmd)
}

func execCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no command provided. Usage: agentgate exec -- <command> [args...]")
	}

	session, closeAudit, err := buildSession()
	if err != nil {
		return err
	}
	defer closeAudit()

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	res, err := session.RunBash(strings.Join(args, " "), cwd)
	if err != nil {
		var blocked *tools.BlockedError
		if errors.As(err, &blocked) {
			fmt.Fprintln(os.Stderr, blocked.Error())
			os.Exit(1)
		}
		return err
	}

	fmt.Print(res.Stdout)
	fmt.Fprint(os.Stderr, res.Stderr)
	if res.ExitCode != 0 {
		os.Exit(res.ExitCode)
	}
	return nil
}
