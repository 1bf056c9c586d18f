package handler

import (
	"github.com/opencode-ai/readonly-bash-hook/internal/fragment"
	"github.com/opencode-ai/readonly-bash-hook/internal/logging"
)

// findDestructive are find actions that write files on their own.
var findDestructive = map[string]bool{
	"-delete":  true,
	"-fprint":  true,
	"-fprint0": true,
	"-fprintf": true,
}

// findExecActions spawn a child command that must be classified itself.
var findExecActions = map[string]bool{
	"-exec":    true,
	"-execdir": true,
	"-ok":      true,
	"-okdir":   true,
}

// Find rejects destructive actions outright and recursively classifies
// every -exec block's inner command; all blocks must approve.
func Find(args []string, ev Evaluator) fragment.Decision {
	for i := 0; i < len(args); {
		arg := args[i]

		if findDestructive[arg] {
			logging.Debug().Str("arg", arg).Msg("find: destructive action")
			return fragment.Reject
		}
		if !findExecActions[arg] {
			i++
			continue
		}

		terminator := -1
		for j := i + 1; j < len(args); j++ {
			if args[j] == ";" || args[j] == "+" {
				terminator = j
				break
			}
		}
		if terminator < 0 {
			logging.Debug().Str("arg", arg).Msg("find: exec without terminator")
			return fragment.Reject
		}

		inner := make([]string, 0, terminator-i-1)
		for _, a := range args[i+1 : terminator] {
			if a != "{}" {
				inner = append(inner, a)
			}
		}
		if len(inner) == 0 {
			return fragment.Reject
		}

		result := ev.EvaluateFragment(fragment.CommandFragment{
			Executable: inner[0],
			Args:       inner[1:],
		})
		if result != fragment.Approve {
			logging.Debug().Str("inner", inner[0]).Msg("find: exec command rejected")
			return fragment.Reject
		}

		i = terminator + 1
	}
	return fragment.Pass
}
