// Package pipeline implements the staged classifier that decides whether a
// single command fragment is obviously read-only. Seven steps run in a
// fixed order; Approve and Reject short-circuit, Next continues. The
// pipeline is a pure function of (fragment, effective configuration) and
// holds no state across invocations.
package pipeline

import (
	"path"
	"strings"

	"github.com/opencode-ai/readonly-bash-hook/internal/config"
	"github.com/opencode-ai/readonly-bash-hook/internal/fragment"
	"github.com/opencode-ai/readonly-bash-hook/internal/handler"
	"github.com/opencode-ai/readonly-bash-hook/internal/logging"
)

// Git's global flags, parsed ahead of the subcommand in step 5.
var (
	gitFlagsWithValue = map[string]bool{
		"-C": true, "-c": true,
		"--git-dir": true, "--work-tree": true, "--namespace": true,
	}
	gitFlagsNoValue = map[string]bool{
		"--no-pager": true, "--bare": true, "--no-replace-objects": true,
	}
)

// Pipeline is the effective per-invocation configuration plus the
// classification steps that consult it. Built once per invocation,
// immutable afterwards.
type Pipeline struct {
	whitelist      map[string]bool
	neverApprove   map[string]bool
	handlers       map[string]handler.Func
	subcommands    map[string]map[string]bool
	gitLocalWrites bool
}

// New builds the effective configuration from user settings: the default
// whitelist plus extras minus removals, the never-approve set, the handler
// registry, and the per-executable subcommand whitelists.
func New(st config.Settings) *Pipeline {
	p := &Pipeline{
		whitelist:    make(map[string]bool, len(defaultCommands)+len(st.ExtraCommands)),
		neverApprove: make(map[string]bool, len(neverApprove)+len(awkVariants)),
		handlers: map[string]handler.Func{
			"sed":   handler.Sed,
			"find":  handler.Find,
			"xargs": handler.Xargs,
		},
		subcommands:    make(map[string]map[string]bool, 1+len(st.SubcommandWhitelist)),
		gitLocalWrites: st.GitLocalWrites,
	}

	for _, c := range defaultCommands {
		p.whitelist[c] = true
	}
	for _, c := range st.ExtraCommands {
		p.whitelist[c] = true
	}
	for _, c := range st.RemoveCommands {
		delete(p.whitelist, c)
	}
	for _, c := range neverApprove {
		p.neverApprove[c] = true
	}

	if st.AwkSafeMode {
		for _, c := range awkVariants {
			p.whitelist[c] = true
			p.handlers[c] = handler.Awk
		}
	} else {
		for _, c := range awkVariants {
			p.neverApprove[c] = true
		}
	}

	// git is approved only through its subcommand set, never the general
	// whitelist — not even via extraCommands.
	delete(p.whitelist, "git")
	git := make(map[string]bool, len(gitReadOnly)+len(gitLocalWriteCmds))
	for _, c := range gitReadOnly {
		git[c] = true
	}
	if st.GitLocalWrites {
		for _, c := range gitLocalWriteCmds {
			git[c] = true
		}
	}
	p.subcommands["git"] = git

	// User entries union with whatever is already present, so git gains
	// subcommands rather than losing its defaults.
	for exe, subs := range st.SubcommandWhitelist {
		set := p.subcommands[exe]
		if set == nil {
			set = make(map[string]bool, len(subs))
			p.subcommands[exe] = set
		}
		for _, s := range subs {
			set[s] = true
		}
	}

	return p
}

// EvaluateFragment runs one fragment through the seven classification
// steps. It implements handler.Evaluator, which is how find -exec and
// xargs inner commands come back around.
func (p *Pipeline) EvaluateFragment(frag fragment.CommandFragment) fragment.Decision {
	// Step 1: a fragment that owns a file-writing redirect is not
	// read-only, whatever the command is.
	if frag.HasOutputRedirect {
		logging.Debug().Str("executable", frag.Executable).Msg("reject: output redirect")
		return fragment.Reject
	}

	// Step 2: basename resolution and wrapper unwrapping.
	frag, decision := p.normalize(frag)
	if decision != fragment.Next {
		return decision
	}

	// Step 3: the never-approve gate.
	if p.neverApprove[frag.Executable] {
		logging.Debug().Str("executable", frag.Executable).Msg("reject: never-approve")
		return fragment.Reject
	}

	// Step 4: dangerous-mode handler, if one is registered.
	if h, ok := p.handlers[frag.Executable]; ok {
		if h(frag.Args, p) == fragment.Reject {
			return fragment.Reject
		}
	}

	// Step 5: subcommand whitelist.
	if allowed, ok := p.subcommands[frag.Executable]; ok {
		return p.checkSubcommand(frag, allowed)
	}

	// Step 6: general whitelist.
	if p.whitelist[frag.Executable] {
		return fragment.Approve
	}

	// Step 7: nothing claimed it.
	logging.Debug().Str("executable", frag.Executable).Msg("reject: not whitelisted")
	return fragment.Reject
}

// normalize resolves the executable's path basename and iteratively peels
// wrapper commands until the real executable surfaces. It approves
// outright for command -v/-V lookups and for wrappers left with nothing to
// run (env FOO=bar).
func (p *Pipeline) normalize(frag fragment.CommandFragment) (fragment.CommandFragment, fragment.Decision) {
	frag.Executable = path.Base(frag.Executable)

	for wrapperCommands[frag.Executable] {
		var exe string
		var rest []string

		switch frag.Executable {
		case "env":
			exe, rest = unwrapEnv(frag.Args)
		case "nice":
			exe, rest = unwrapNice(frag.Args)
		case "time":
			exe, rest = unwrapTime(frag.Args)
		case "command":
			var lookup bool
			exe, rest, lookup = unwrapCommand(frag.Args)
			if lookup {
				logging.Debug().Msg("approve: command -v/-V lookup")
				return frag, fragment.Approve
			}
		case "nohup":
			if len(frag.Args) == 0 {
				// Bare nohup runs nothing useful; later steps decide.
				return frag, fragment.Next
			}
			exe, rest = frag.Args[0], frag.Args[1:]
		}

		if exe == "" {
			logging.Debug().Str("wrapper", frag.Executable).Msg("approve: wrapper with no command")
			return frag, fragment.Approve
		}
		frag.Executable = path.Base(exe)
		frag.Args = rest
	}

	return frag, fragment.Next
}

// checkSubcommand applies step 5 for an executable with a subcommand
// whitelist entry. git gets real global-flag parsing; everything else
// uses the first non-flag token.
func (p *Pipeline) checkSubcommand(frag fragment.CommandFragment, allowed map[string]bool) fragment.Decision {
	var sub string
	var rest []string
	if frag.Executable == "git" {
		sub, rest = splitGitSubcommand(frag.Args)
	} else {
		sub = firstNonFlag(frag.Args)
	}

	if sub == "" {
		logging.Debug().Str("executable", frag.Executable).Msg("reject: no subcommand")
		return fragment.Reject
	}
	if !allowed[sub] {
		logging.Debug().Str("executable", frag.Executable).Str("subcommand", sub).Msg("reject: subcommand not allowed")
		return fragment.Reject
	}

	if frag.Executable == "git" && p.gitLocalWrites && sub == "config" {
		for _, a := range rest {
			if a == "--global" || a == "--system" {
				// Global and system config escape the working tree.
				logging.Debug().Str("flag", a).Msg("reject: git config scope")
				return fragment.Reject
			}
		}
	}

	return fragment.Approve
}

// splitGitSubcommand skips git's global flags and returns the subcommand
// plus the arguments after it.
func splitGitSubcommand(args []string) (string, []string) {
	for i := 0; i < len(args); {
		arg := args[i]
		switch {
		case gitFlagsWithValue[arg]:
			i += 2
		case gitFlagsNoValue[arg]:
			i++
		case strings.HasPrefix(arg, "-"):
			// Covers --name=value forms and unknown flags.
			i++
		default:
			return arg, args[i+1:]
		}
	}
	return "", nil
}

// firstNonFlag returns the first token not starting with a dash.
func firstNonFlag(args []string) string {
	for _, arg := range args {
		if !strings.HasPrefix(arg, "-") {
			return arg
		}
	}
	return ""
}
