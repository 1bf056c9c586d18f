package handler

import (
	"strings"

	"github.com/opencode-ai/readonly-bash-hook/internal/fragment"
	"github.com/opencode-ai/readonly-bash-hook/internal/logging"
)

// Awk statically scans the awk program text for writing constructs. It is
// registered only when the awkSafeMode feature flag is on; without the
// flag, awk stays on the never-approve list. The scan is best-effort and
// rejects on any doubt.
func Awk(args []string, _ Evaluator) fragment.Decision {
	program := ""
	found := false
	for i := 0; i < len(args); {
		arg := args[i]
		if arg == "-f" {
			// Program comes from a file; nothing to analyze.
			logging.Debug().Msg("awk: -f program file")
			return fragment.Reject
		}
		if arg == "-F" || arg == "-v" {
			i += 2
			continue
		}
		if strings.HasPrefix(arg, "-") && arg != "-" {
			i++
			continue
		}
		program = arg
		found = true
		break
	}
	if !found {
		return fragment.Pass
	}

	if strings.Contains(program, "system(") ||
		strings.Contains(program, "|") ||
		strings.Contains(program, ">") {
		logging.Debug().Str("program", program).Msg("awk: unsafe program text")
		return fragment.Reject
	}
	return fragment.Pass
}
