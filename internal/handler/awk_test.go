package handler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opencode-ai/readonly-bash-hook/internal/fragment"
	"github.com/opencode-ai/readonly-bash-hook/internal/handler"
)

func TestAwk(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected fragment.Decision
	}{
		{"print column", []string{"{print $1}", "file.txt"}, fragment.Pass},
		{"field separator", []string{"-F", ":", "{print $1}", "/etc/passwd"}, fragment.Pass},
		{"variable", []string{"-v", "n=3", "{print $n}"}, fragment.Pass},
		{"pattern match", []string{"/error/ {print}", "log.txt"}, fragment.Pass},
		{"program file", []string{"-f", "script.awk", "data.txt"}, fragment.Reject},
		{"system call", []string{"{system(\"rm -rf /\")}"}, fragment.Reject},
		{"pipe in program", []string{"{print | \"sort\"}"}, fragment.Reject},
		{"output redirect", []string{"{print > \"out.txt\"}"}, fragment.Reject},
		{"append redirect", []string{"{print >> \"out.txt\"}"}, fragment.Reject},
		{"no program", []string{"-F", ":"}, fragment.Pass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, handler.Awk(tt.args, nil))
		})
	}
}
