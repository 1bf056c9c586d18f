package handler

import (
	"strings"

	"github.com/opencode-ai/readonly-bash-hook/internal/fragment"
	"github.com/opencode-ai/readonly-bash-hook/internal/logging"
)

// Sed rejects in-place editing in any spelling: -i, -i.bak, --in-place,
// --in-place=.bak, and short-flag clusters that smuggle an i (-Ei, -ni).
// Everything else is a pure stream transform and passes.
func Sed(args []string, _ Evaluator) fragment.Decision {
	for _, arg := range args {
		if arg == "-i" || arg == "--in-place" ||
			strings.HasPrefix(arg, "-i") || strings.HasPrefix(arg, "--in-place=") {
			logging.Debug().Str("arg", arg).Msg("sed: in-place flag")
			return fragment.Reject
		}
		if strings.HasPrefix(arg, "-") && !strings.HasPrefix(arg, "--") &&
			len(arg) > 1 && strings.Contains(arg[1:], "i") {
			logging.Debug().Str("arg", arg).Msg("sed: combined flag with i")
			return fragment.Reject
		}
	}
	return fragment.Pass
}
