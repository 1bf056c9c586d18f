package parser

import (
	"regexp"
	"strings"
)

// The AST library chokes on a few constructs that are statically safe, so
// the input is rewritten before parsing. Each rewrite is syntactically
// narrow and replaces the construct with a literal known to be harmless;
// anything broader would risk masking dangerous code.
var (
	// $((...)) arithmetic expansion becomes the literal 0.
	arithExpansion = regexp.MustCompile(`\$\(\(.*?\)\)`)

	// [[ ... ]] extended tests become the literal true.
	extendedTest = regexp.MustCompile(`\[\[.*?\]\]`)
)

// Preparse applies all textual rewrites to a raw command string.
func Preparse(cmd string) string {
	out := StripLeadingTime(cmd)
	out = arithExpansion.ReplaceAllString(out, "0")
	out = extendedTest.ReplaceAllString(out, "true")
	return out
}

// StripLeadingTime removes a leading time keyword and its flags (-p, --)
// from the front of cmd. Anything that merely starts with the letters
// "time" (timeout, times) is left alone.
func StripLeadingTime(cmd string) string {
	stripped := strings.TrimLeft(cmd, " \t\n")
	if !strings.HasPrefix(stripped, "time") {
		return cmd
	}

	rest := stripped[len("time"):]
	if rest != "" && !isWordBreak(rest[0]) {
		return cmd
	}
	rest = strings.TrimLeft(rest, " \t\n")

	for rest != "" {
		switch {
		case strings.HasPrefix(rest, "-p") && flagEnds(rest, 2):
			rest = strings.TrimLeft(rest[2:], " \t\n")
		case strings.HasPrefix(rest, "--") && flagEnds(rest, 2):
			return strings.TrimLeft(rest[2:], " \t\n")
		default:
			return rest
		}
	}
	return rest
}

// flagEnds reports whether the flag occupying rest[:n] is a whole token.
func flagEnds(rest string, n int) bool {
	return len(rest) == n || rest[n] == ' ' || rest[n] == '\t' || rest[n] == '\n'
}

// isWordBreak reports whether b can terminate the time keyword.
func isWordBreak(b byte) bool {
	switch b {
	case ' ', '\t', '\n', ';', '|', '&':
		return true
	}
	return false
}
