// Package parser turns a raw shell command string into the flat list of
// command fragments the evaluation pipeline classifies. It applies a few
// textual pre-parse rewrites, parses with mvdan.cc/sh, and walks the typed
// AST extracting every invocation that may run on any branch. Node kinds
// the walker does not recognize force a parse failure, which the
// orchestrator converts to a fall-through.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/opencode-ai/readonly-bash-hook/internal/fragment"
	"github.com/opencode-ai/readonly-bash-hook/internal/logging"
)

// ErrUnsupportedSyntax marks an AST node kind outside the recognized set.
var ErrUnsupportedSyntax = errors.New("unsupported shell syntax")

// outputMarker is the executable name of the synthetic fragment emitted
// when an output channel is opened with no enclosing invocation to pin it
// on (a bare redirection, an output process substitution in a loop
// header). The fragment carries HasOutputRedirect and so can never be
// approved.
const outputMarker = "__output_channel__"

// Parse extracts command fragments from cmd. Empty, whitespace-only and
// comment-only input yields an empty list and no error; any parse failure
// or unrecognized construct yields an error.
func Parse(cmd string) ([]fragment.CommandFragment, error) {
	cleaned := Preparse(cmd)

	// Comment-only input parses to no statements below, so only blank
	// input is short-circuited here: a leading comment line must not hide
	// the commands on the lines after it.
	if strings.TrimSpace(cleaned) == "" {
		return nil, nil
	}

	p := syntax.NewParser(
		syntax.Variant(syntax.LangBash),
		syntax.KeepComments(false),
	)
	file, err := p.Parse(strings.NewReader(cleaned), "")
	if err != nil {
		logging.Debug().Err(err).Str("command", cmd).Msg("parse failure")
		return nil, fmt.Errorf("parse command: %w", err)
	}

	w := &walker{}
	for _, stmt := range file.Stmts {
		w.stmt(stmt, false)
	}
	if w.err != nil {
		logging.Debug().Err(w.err).Str("command", cmd).Msg("walk failure")
		return nil, w.err
	}
	return w.fragments, nil
}

// walker accumulates fragments over a recursive AST traversal. The first
// unrecognized node kind sets err and stops further collection.
type walker struct {
	fragments []fragment.CommandFragment
	err       error
}

func (w *walker) fail(node syntax.Node) {
	if w.err == nil {
		w.err = fmt.Errorf("%w: %T", ErrUnsupportedSyntax, node)
	}
}

func (w *walker) markOutputChannel() {
	w.fragments = append(w.fragments, fragment.CommandFragment{
		Executable:        outputMarker,
		HasOutputRedirect: true,
	})
}

// stmt walks one statement. redirected is true when an enclosing construct
// already owns a file-writing redirect; every fragment produced underneath
// inherits it, so `(ls) > f` rejects as a whole.
func (w *walker) stmt(stmt *syntax.Stmt, redirected bool) {
	if stmt == nil || w.err != nil {
		return
	}

	hasOutput := redirected
	for _, redir := range stmt.Redirs {
		if isOutputRedirect(redir) {
			hasOutput = true
		}
		// Redirect targets and heredoc bodies can hide substitutions:
		// ls > "$(rm -rf /)".
		if w.scanWord(redir.Word) {
			hasOutput = true
		}
		if w.scanWord(redir.Hdoc) {
			hasOutput = true
		}
	}

	if stmt.Cmd == nil {
		// A statement of only redirections still opens its targets.
		if hasOutput {
			w.markOutputChannel()
		}
		return
	}
	w.command(stmt.Cmd, hasOutput)
}

// command dispatches on the recognized command node kinds. Anything else
// is the default-deny case.
func (w *walker) command(cmd syntax.Command, redirected bool) {
	if w.err != nil {
		return
	}
	switch c := cmd.(type) {
	case *syntax.CallExpr:
		w.call(c, redirected)
	case *syntax.BinaryCmd:
		w.stmt(c.X, redirected)
		w.stmt(c.Y, redirected)
	case *syntax.Block:
		w.stmts(c.Stmts, redirected)
	case *syntax.Subshell:
		w.stmts(c.Stmts, redirected)
	case *syntax.IfClause:
		w.ifClause(c, redirected)
	case *syntax.WhileClause:
		w.stmts(c.Cond, redirected)
		w.stmts(c.Do, redirected)
	case *syntax.ForClause:
		w.forClause(c, redirected)
	case *syntax.FuncDecl:
		// The body contributes fragments; the function name itself is
		// not a command and joins no whitelist.
		w.stmt(c.Body, redirected)
	case *syntax.TimeClause:
		w.stmt(c.Stmt, redirected)
	default:
		w.fail(cmd)
	}
}

func (w *walker) stmts(stmts []*syntax.Stmt, redirected bool) {
	for _, s := range stmts {
		w.stmt(s, redirected)
	}
}

func (w *walker) ifClause(c *syntax.IfClause, redirected bool) {
	w.stmts(c.Cond, redirected)
	w.stmts(c.Then, redirected)
	if c.Else != nil {
		w.ifClause(c.Else, redirected)
	}
}

func (w *walker) forClause(c *syntax.ForClause, redirected bool) {
	switch loop := c.Loop.(type) {
	case *syntax.WordIter:
		for _, item := range loop.Items {
			if w.scanWord(item) {
				w.markOutputChannel()
			}
		}
	case nil:
	default:
		// C-style for ((...)) loops are outside the recognized set.
		w.fail(c.Loop)
	}
	w.stmts(c.Do, redirected)
}

// call builds one fragment from a simple command. A call with only
// assignments produces no fragment, but assignment values are still
// scanned: FOO=$(rm -rf /) must surface the rm.
func (w *walker) call(c *syntax.CallExpr, redirected bool) {
	assignOutput := false
	for _, assign := range c.Assigns {
		if w.scanWord(assign.Value) {
			assignOutput = true
		}
		if assign.Array != nil {
			for _, elem := range assign.Array.Elems {
				if w.scanWord(elem.Value) {
					assignOutput = true
				}
			}
		}
	}

	if len(c.Args) == 0 {
		// No executable word: a pure assignment, or a bare redirection.
		// Either can still own an output channel.
		if redirected || assignOutput {
			w.markOutputChannel()
		}
		return
	}

	hasOutput := redirected || assignOutput
	words := make([]string, 0, len(c.Args))
	for _, arg := range c.Args {
		if w.scanWord(arg) {
			hasOutput = true
		}
		words = append(words, renderWord(arg))
	}
	if w.err != nil {
		return
	}

	w.fragments = append(w.fragments, fragment.CommandFragment{
		Executable:        words[0],
		Args:              words[1:],
		HasOutputRedirect: hasOutput,
	})
}

// scanWord looks inside a word for nested command and process
// substitutions, extracting their fragments. It reports whether the word
// contains an output-side process substitution, which makes the enclosing
// invocation a writer.
func (w *walker) scanWord(word *syntax.Word) bool {
	if word == nil {
		return false
	}
	output := false
	for _, part := range word.Parts {
		w.wordPart(part, &output)
	}
	return output
}

func (w *walker) wordPart(part syntax.WordPart, output *bool) {
	if w.err != nil {
		return
	}
	switch p := part.(type) {
	case *syntax.Lit, *syntax.SglQuoted:
	case *syntax.DblQuoted:
		for _, sub := range p.Parts {
			w.wordPart(sub, output)
		}
	case *syntax.ParamExp:
		w.paramExp(p, output)
	case *syntax.CmdSubst:
		w.stmts(p.Stmts, false)
	case *syntax.ProcSubst:
		if p.Op == syntax.CmdOut {
			*output = true
		}
		w.stmts(p.Stmts, false)
	default:
		w.fail(part)
	}
}

// paramExp scans the words nested inside ${...} expansions, which can
// carry substitutions of their own: ${x:-$(rm -rf /)}.
func (w *walker) paramExp(p *syntax.ParamExp, output *bool) {
	if p.Exp != nil && p.Exp.Word != nil {
		for _, part := range p.Exp.Word.Parts {
			w.wordPart(part, output)
		}
	}
	if p.Repl != nil {
		for _, word := range []*syntax.Word{p.Repl.Orig, p.Repl.With} {
			if word == nil {
				continue
			}
			for _, part := range word.Parts {
				w.wordPart(part, output)
			}
		}
	}
}

// isOutputRedirect reports whether redir writes a file. Input forms,
// heredocs and descriptor duplication do not count.
func isOutputRedirect(redir *syntax.Redirect) bool {
	switch redir.Op {
	case syntax.RdrOut, syntax.AppOut, syntax.ClbOut, syntax.RdrAll, syntax.AppAll:
		return true
	case syntax.DplOut:
		// 2>&1 duplicates a descriptor; >&file opens a file.
		return !isFdTarget(redir.Word)
	default:
		return false
	}
}

// isFdTarget reports whether word names a file descriptor (all digits, or
// the closing dash) rather than a file.
func isFdTarget(word *syntax.Word) bool {
	if word == nil {
		return false
	}
	lit := word.Lit()
	if lit == "" {
		return false
	}
	if lit == "-" {
		return true
	}
	for _, r := range lit {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// renderWord flattens a word to the token the command would receive.
// Dynamic parts become placeholders that never match a whitelist.
func renderWord(word *syntax.Word) string {
	var sb strings.Builder
	for _, part := range word.Parts {
		renderPart(&sb, part)
	}
	return sb.String()
}

func renderPart(sb *strings.Builder, part syntax.WordPart) {
	switch p := part.(type) {
	case *syntax.Lit:
		sb.WriteString(unescapeLit(p.Value))
	case *syntax.SglQuoted:
		sb.WriteString(p.Value)
	case *syntax.DblQuoted:
		for _, sub := range p.Parts {
			renderPart(sb, sub)
		}
	case *syntax.ParamExp:
		if p.Param != nil {
			sb.WriteString("$" + p.Param.Value)
		}
	case *syntax.CmdSubst:
		sb.WriteString("$()")
	case *syntax.ProcSubst:
		if p.Op == syntax.CmdOut {
			sb.WriteString(">()")
		} else {
			sb.WriteString("<()")
		}
	}
}

// unescapeLit resolves backslash escapes in an unquoted literal so that
// tokens like \; compare equal to the character the command would see.
func unescapeLit(s string) string {
	if !strings.Contains(s, "\\") {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			if s[i] == '\n' {
				// Line continuation disappears entirely.
				continue
			}
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}
