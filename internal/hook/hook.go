// Package hook drives one invocation of the read-only Bash hook: decode
// the assistant's JSON document from stdin, classify the command, and
// produce either an approval document or nothing. Every failure mode falls
// through silently; the hook never denies and never exits non-zero.
package hook

import (
	"encoding/json"
	"strings"

	"github.com/spf13/afero"

	"github.com/opencode-ai/readonly-bash-hook/internal/config"
	"github.com/opencode-ai/readonly-bash-hook/internal/fragment"
	"github.com/opencode-ai/readonly-bash-hook/internal/logging"
	"github.com/opencode-ai/readonly-bash-hook/internal/parser"
	"github.com/opencode-ai/readonly-bash-hook/internal/pipeline"
)

// toolNameBash is the only tool whose commands this hook inspects.
const toolNameBash = "Bash"

// Event names the hook recognizes. Both mean the same thing here; only
// the approval output format differs.
const (
	EventPreToolUse        = "PreToolUse"
	EventPermissionRequest = "PermissionRequest"
)

// Input is the invocation document the assistant writes to stdin.
type Input struct {
	HookEventName string    `json:"hook_event_name"`
	ToolName      string    `json:"tool_name"`
	ToolInput     ToolInput `json:"tool_input"`
}

// ToolInput carries the Bash tool's parameters.
type ToolInput struct {
	Command string `json:"command"`
}

// Evaluate classifies a whole command line: every extracted fragment must
// approve. A parse failure or any rejected fragment collapses to
// Fallthrough; an empty fragment list (comments, pure assignments) is a
// safe no-op and approves.
func Evaluate(cmd string, p *pipeline.Pipeline) fragment.Decision {
	frags, err := parser.Parse(cmd)
	if err != nil {
		return fragment.Fallthrough
	}
	if len(frags) == 0 {
		logging.Debug().Str("command", cmd).Msg("approve: nothing runs")
		return fragment.Approve
	}
	for _, frag := range frags {
		if p.EvaluateFragment(frag) != fragment.Approve {
			logging.Info().Str("command", cmd).Str("executable", frag.Executable).Msg("fall through")
			return fragment.Fallthrough
		}
	}
	logging.Info().Str("command", cmd).Msg("approve")
	return fragment.Approve
}

// Process handles one invocation end to end and returns the bytes to
// write to stdout. nil means emit nothing and let the interactive prompt
// decide.
func Process(stdin []byte, fs afero.Fs) []byte {
	var in Input
	if err := json.Unmarshal(stdin, &in); err != nil {
		logging.Debug().Err(err).Msg("undecodable hook input")
		return nil
	}
	if in.ToolName != toolNameBash {
		return nil
	}
	cmd := in.ToolInput.Command
	if strings.TrimSpace(cmd) == "" {
		return nil
	}

	p := pipeline.New(config.Load(fs))
	if Evaluate(cmd, p) != fragment.Approve {
		return nil
	}
	return approvalDocument(in.HookEventName, cmd)
}
