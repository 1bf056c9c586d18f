package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripLeadingTime(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"bare time", "time ls -la", "ls -la"},
		{"time with -p", "time -p ls", "ls"},
		{"time with --", "time -- ls", "ls"},
		{"leading whitespace", "  time ls", "ls"},
		{"timeout is not time", "timeout 5 sleep 10", "timeout 5 sleep 10"},
		{"times is not time", "times", "times"},
		{"no time", "ls -la", "ls -la"},
		{"time alone", "time", ""},
		{"time mid-command untouched", "ls && time ls", "ls && time ls"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripLeadingTime(tt.input))
		})
	}
}

func TestPreparse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"arithmetic expansion", "echo $((1 + 2))", "echo 0"},
		{"arithmetic in assignment", "x=$((y * 3))", "x=0"},
		{"two expansions", "echo $((1+1)) $((2+2))", "echo 0 0"},
		{"extended test", "[[ -f foo ]]", "true"},
		{"extended test in list", "[[ -n $x ]] && cat foo", "true && cat foo"},
		{"time plus arithmetic", "time echo $((1+1))", "echo 0"},
		{"plain passthrough", "grep -r foo .", "grep -r foo ."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Preparse(tt.input))
		})
	}
}
