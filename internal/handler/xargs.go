package handler

import (
	"strings"

	"github.com/opencode-ai/readonly-bash-hook/internal/fragment"
	"github.com/opencode-ai/readonly-bash-hook/internal/logging"
)

// xargsValueFlags consume the following token as their value.
var xargsValueFlags = map[string]bool{
	"-d": true, "-a": true, "-I": true, "-L": true,
	"-n": true, "-P": true, "-s": true, "-E": true,
	"--max-args": true, "--max-procs": true, "--max-chars": true,
	"--delimiter": true, "--arg-file": true, "--replace": true,
	"--max-lines": true, "--eof": true,
}

// xargsBareFlags stand alone.
var xargsBareFlags = map[string]bool{
	"-0": true, "-r": true, "-t": true, "-p": true, "-x": true,
	"--null": true, "--no-run-if-empty": true, "--verbose": true,
	"--interactive": true, "--exit": true, "--open-tty": true,
}

// Xargs strips the flags it knows, then recursively classifies the inner
// command. With no inner command xargs defaults to echo, which is
// read-only.
func Xargs(args []string, ev Evaluator) fragment.Decision {
	i := 0
scan:
	for i < len(args) {
		arg := args[i]
		switch {
		case xargsValueFlags[arg]:
			i += 2
		case xargsBareFlags[arg]:
			i++
		case strings.Contains(arg, "="):
			if !xargsValueFlags[strings.SplitN(arg, "=", 2)[0]] {
				break scan
			}
			// --flag=value is a single token.
			i++
		case strings.HasPrefix(arg, "-") && !strings.HasPrefix(arg, "--") && len(arg) > 2:
			// Combined short flags (-0r) or a flag with its value glued
			// on (-I{}); either way one token.
			i++
		default:
			break scan
		}
	}

	if i >= len(args) {
		return fragment.Pass
	}

	result := ev.EvaluateFragment(fragment.CommandFragment{
		Executable: args[i],
		Args:       args[i+1:],
	})
	if result != fragment.Approve {
		logging.Debug().Str("inner", args[i]).Msg("xargs: inner command rejected")
		return fragment.Reject
	}
	return fragment.Pass
}
