// Package handler holds the dangerous-mode analyzers for commands that sit
// on the whitelist but have invocation modes that write: sed -i, find
// -delete/-exec, xargs, and (optionally) awk. A handler sees only a
// fragment's arguments and answers Pass or Reject; a Pass lets the
// fragment continue to the later pipeline steps.
package handler

import (
	"github.com/opencode-ai/readonly-bash-hook/internal/fragment"
)

// Evaluator classifies a single command fragment through the full
// pipeline. find and xargs use it to classify the inner command they would
// spawn; the pipeline implements it, breaking the dependency cycle.
type Evaluator interface {
	EvaluateFragment(frag fragment.CommandFragment) fragment.Decision
}

// Func is the dangerous-mode analyzer for one executable.
type Func func(args []string, ev Evaluator) fragment.Decision
