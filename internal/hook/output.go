package hook

import "encoding/json"

// The approval documents mirror the assistant's hook output schema. Fall
// through is the absence of output, so only approvals are ever encoded.

type preToolUseOutput struct {
	HookSpecificOutput preToolUseSpecific `json:"hookSpecificOutput"`
}

type preToolUseSpecific struct {
	HookEventName            string `json:"hookEventName"`
	PermissionDecision       string `json:"permissionDecision"`
	PermissionDecisionReason string `json:"permissionDecisionReason"`
}

type permissionRequestOutput struct {
	HookSpecificOutput permissionRequestSpecific `json:"hookSpecificOutput"`
}

type permissionRequestSpecific struct {
	HookEventName string            `json:"hookEventName"`
	Decision      permissionAllowed `json:"decision"`
}

type permissionAllowed struct {
	Behavior string `json:"behavior"`
}

// approvalDocument encodes the approval for the given event. An approved
// command under an unrecognized event name still emits nothing.
func approvalDocument(event, cmd string) []byte {
	var doc any
	switch event {
	case EventPreToolUse:
		doc = preToolUseOutput{
			HookSpecificOutput: preToolUseSpecific{
				HookEventName:            EventPreToolUse,
				PermissionDecision:       "allow",
				PermissionDecisionReason: "Read-only command: " + cmd,
			},
		}
	case EventPermissionRequest:
		doc = permissionRequestOutput{
			HookSpecificOutput: permissionRequestSpecific{
				HookEventName: EventPermissionRequest,
				Decision:      permissionAllowed{Behavior: "allow"},
			},
		}
	default:
		return nil
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return nil
	}
	return out
}
