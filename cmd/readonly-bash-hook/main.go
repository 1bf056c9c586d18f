// Package main provides the entry point for the read-only Bash hook.
package main

import (
	"github.com/opencode-ai/readonly-bash-hook/cmd/readonly-bash-hook/commands"
)

func main() {
	commands.Execute()
}
