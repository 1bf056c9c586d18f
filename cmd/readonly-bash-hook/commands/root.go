// Package commands provides the CLI commands for the read-only Bash hook.
package commands

import (
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/opencode-ai/readonly-bash-hook/internal/hook"
	"github.com/opencode-ai/readonly-bash-hook/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "readonly-bash-hook",
	Short: "Auto-approve read-only Bash commands for the coding assistant",
	Long: `readonly-bash-hook is a PreToolUse / PermissionRequest hook. It reads the
assistant's hook document on stdin, analyzes the shell command, and prints
an approval document when the command is obviously read-only. Anything it
cannot prove safe produces no output, deferring to the interactive prompt.

The exit code is 0 for every outcome.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runHook(cmd.InOrStdin(), cmd.OutOrStdout())
	},
	SilenceUsage: true,
}

// runHook performs one hook invocation. The hook must never fail the
// assistant's tool call, so any panic is swallowed into a silent
// fall-through.
func runHook(stdin io.Reader, stdout io.Writer) {
	defer func() {
		if r := recover(); r != nil {
			logging.Info().Interface("panic", r).Msg("recovered, falling through")
		}
	}()

	data, err := io.ReadAll(stdin)
	if err != nil {
		return
	}
	if out := hook.Process(data, afero.NewOsFs()); out != nil {
		_, _ = stdout.Write(out)
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// Execute runs the root command. The hook protocol reserves exit code 0
// for every outcome, so errors are logged and swallowed.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logging.Info().Err(err).Msg("command error")
	}
}
