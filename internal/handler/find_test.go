package handler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opencode-ai/readonly-bash-hook/internal/fragment"
	"github.com/opencode-ai/readonly-bash-hook/internal/handler"
)

func TestFind_DestructiveActions(t *testing.T) {
	ev := defaultEvaluator()

	tests := []struct {
		name     string
		args     []string
		expected fragment.Decision
	}{
		{"no actions", []string{".", "-name", "*.py"}, fragment.Pass},
		{"type filter", []string{".", "-name", "*.py", "-type", "f"}, fragment.Pass},
		{"maxdepth", []string{"/tmp", "-maxdepth", "2", "-name", "*.log"}, fragment.Pass},
		{"delete", []string{".", "-name", "*.pyc", "-delete"}, fragment.Reject},
		{"fprint", []string{".", "-fprint", "/tmp/out.txt"}, fragment.Reject},
		{"fprint0", []string{".", "-fprint0", "/tmp/out.txt"}, fragment.Reject},
		{"fprintf", []string{".", "-fprintf", "/tmp/out.txt", "%p"}, fragment.Reject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, handler.Find(tt.args, ev))
		})
	}
}

func TestFind_ExecRecursion(t *testing.T) {
	ev := defaultEvaluator()

	tests := []struct {
		name     string
		args     []string
		expected fragment.Decision
	}{
		{"safe inner grep", []string{".", "-exec", "grep", "foo", "{}", ";"}, fragment.Pass},
		{"plus terminator", []string{".", "-exec", "wc", "-l", "{}", "+"}, fragment.Pass},
		{"unsafe inner rm", []string{".", "-exec", "rm", "{}", ";"}, fragment.Reject},
		{"execdir", []string{".", "-execdir", "cat", "{}", ";"}, fragment.Pass},
		{"ok prompts but still runs", []string{".", "-ok", "rm", "{}", ";"}, fragment.Reject},
		{
			"both blocks safe",
			[]string{".", "-name", "*.py", "-exec", "grep", "foo", "{}", ";", "-exec", "wc", "-l", "{}", ";"},
			fragment.Pass,
		},
		{
			"second block unsafe",
			[]string{".", "-name", "*.py", "-exec", "grep", "foo", "{}", ";", "-exec", "rm", "{}", ";"},
			fragment.Reject,
		},
		{"placeholder only", []string{".", "-exec", "{}", ";"}, fragment.Reject},
		{"missing terminator", []string{".", "-exec", "grep", "foo", "{}"}, fragment.Reject},
		{"sed -i inside exec", []string{".", "-exec", "sed", "-i", "s/x/y/", "{}", ";"}, fragment.Reject},
		{"git read-only inside exec", []string{".", "-exec", "git", "log", "{}", ";"}, fragment.Pass},
		{"nested xargs inside exec", []string{".", "-exec", "xargs", "grep", "foo", "{}", ";"}, fragment.Pass},
		{"never-approve inside exec", []string{".", "-exec", "sh", "-c", "ls", "{}", ";"}, fragment.Reject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, handler.Find(tt.args, ev))
		})
	}
}
