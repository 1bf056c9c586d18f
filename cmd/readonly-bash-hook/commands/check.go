package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/opencode-ai/readonly-bash-hook/internal/config"
	"github.com/opencode-ai/readonly-bash-hook/internal/fragment"
	"github.com/opencode-ai/readonly-bash-hook/internal/hook"
	"github.com/opencode-ai/readonly-bash-hook/internal/parser"
	"github.com/opencode-ai/readonly-bash-hook/internal/pipeline"
)

var checkCmd = &cobra.Command{
	Use:   "check command...",
	Short: "Explain how a command line would be classified",
	Long: `check evaluates a command line against the effective configuration and
prints the decision together with every extracted invocation. It is a
development aid for tuning settings.json; the hook protocol never uses it.`,
	Example: `  readonly-bash-hook check 'ls -la | sort'
  readonly-bash-hook check "find . -name '*.go' -exec grep -l TODO {} \;"`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runCheck(cmd.OutOrStdout(), strings.Join(args, " "))
	},
}

var (
	approveColor     = color.New(color.FgGreen, color.Bold)
	fallthroughColor = color.New(color.FgYellow, color.Bold)
)

func runCheck(out io.Writer, command string) {
	p := pipeline.New(config.Load(afero.NewOsFs()))

	frags, err := parser.Parse(command)
	if err != nil {
		fallthroughColor.Fprintln(out, "FALLTHROUGH")
		fmt.Fprintf(out, "  %v\n", err)
		return
	}

	if hook.Evaluate(command, p) == fragment.Approve {
		approveColor.Fprintln(out, "APPROVE")
	} else {
		fallthroughColor.Fprintln(out, "FALLTHROUGH")
	}

	for _, frag := range frags {
		line := frag.Executable
		if len(frag.Args) > 0 {
			line += " " + strings.Join(frag.Args, " ")
		}
		if frag.HasOutputRedirect {
			line += "  (output redirect)"
		}
		fmt.Fprintf(out, "  %-8s %s\n", p.EvaluateFragment(frag), line)
	}
}
