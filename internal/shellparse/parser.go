// Package shellparse decomposes a raw shell command string into the set
// of atomic command invocations it would run, without executing anything.
//
// It uses mvdan.cc/sh/v3's bash-variant grammar to build an AST, then
// walks it the way internal/analyzer/structural.go walks its AST in the
// agentshield lineage this package descends from: a single recursive
// function switching on node kind, with control-flow constructs treated
// as an opaque taint source rather than something to reason about.
package shellparse

import (
	"regexp"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// maxWrapperDepth is the sh -c / bash -c / zsh -c unwrap depth at which a
// parse result is marked as tainted (see parseWithDepth). The unwrap itself
// is not cut off at this depth.
const maxWrapperDepth = 8

// Invocation is a single atomic command extracted from a shell AST:
// one executable, its positional args, and any leading env assignments.
type Invocation struct {
	Command     string
	Args        []string
	EnvPrefixes []string
	Raw         string
}

// ParseResult is the output of Parse: the flat list of invocations found,
// plus the subshell taint flag and any nested command-substitution text.
type ParseResult struct {
	Commands         []Invocation
	HasSubshell      bool
	SubshellCommands []string
	ParseError       bool
}

// heredocCatOpener matches the opening "$(cat <<MARKER" line of the
// "$(cat <<MARKER ... MARKER)" idiom; the marker text is looked up again,
// literally, to find the matching close below.
//
// Go's regexp package (RE2) doesn't support backreferences, so this can't
// be a single pattern with a \1 back-reference to the captured marker; the
// opener and the matching closer are found in two steps instead.
var heredocCatOpener = regexp.MustCompile(`\$\(cat\s+<<-?\s*['"]?(\w+)['"]?\n`)

// rewriteHeredocCat collapses the "$(cat <<MARKER ... MARKER)" idiom to a
// fixed placeholder before parsing, per spec: this is a common idiom for
// passing a literal blob as a command-substitution argument, and parsing
// it verbatim both misparses and registers spurious taint.
func rewriteHeredocCat(raw string) string {
	var sb strings.Builder
	rest := raw
	for {
		loc := heredocCatOpener.FindStringSubmatchIndex(rest)
		if loc == nil {
			sb.WriteString(rest)
			break
		}
		marker := rest[loc[2]:loc[3]]
		afterOpen := rest[loc[1]:]
		closer := regexp.MustCompile(`\n\s*` + regexp.QuoteMeta(marker) + `\s*\)`)
		cloc := closer.FindStringIndex(afterOpen)
		if cloc == nil {
			// No matching close for this marker: leave the opener text as-is
			// and keep scanning after it.
			sb.WriteString(rest[:loc[1]])
			rest = afterOpen
			continue
		}
		sb.WriteString(rest[:loc[0]])
		sb.WriteString("__HEREDOC_TEXT__")
		rest = afterOpen[cloc[1]:]
	}
	return sb.String()
}

// heredocRedirectSuffix strips a heredoc redirect's marker off the end of
// a line, recovering the operative command it was attached to.
var heredocRedirectSuffix = regexp.MustCompile(`<<-?\s*['"]?\w+['"]?.*$`)

var heredocAnywhere = regexp.MustCompile(`<<-?\s*['"]?\w+['"]?`)

var wrapperShells = map[string]bool{"sh": true, "bash": true, "zsh": true}

// Parse decomposes raw into a ParseResult. It never panics: any internal
// failure surfaces as ParseResult.ParseError, which callers must treat as
// an "ask" decision.
func Parse(raw string) ParseResult {
	if strings.TrimSpace(raw) == "" {
		return ParseResult{}
	}

	preprocessed := rewriteHeredocCat(raw)

	result, err := parseWithDepth(preprocessed, 0)
	if err != nil {
		return heredocFallback(raw)
	}
	if hasHeredocRedirect(preprocessed) {
		return firstLineFallback(raw)
	}
	return result
}

func parseWithDepth(raw string, depth int) (ParseResult, error) {
	parser := syntax.NewParser(syntax.KeepComments(false), syntax.Variant(syntax.LangBash))
	file, err := parser.Parse(strings.NewReader(raw), "")
	if err != nil {
		return ParseResult{}, err
	}

	w := &walker{depth: depth}
	for _, stmt := range file.Stmts {
		w.walkStmt(stmt)
	}

	// Taint rather than truncate: a wrapper chain this deep still has its
	// commands recorded, just marked as if it ran inside a subshell, so the
	// combiner asks instead of the walk silently dropping the remaining
	// nesting. Stopping the walk early here would hide commands that did
	// get parsed from the audit trail, which is worse than over-tainting.
	if depth >= maxWrapperDepth {
		w.hasSubshell = true
	}

	return ParseResult{
		Commands:         w.commands,
		HasSubshell:      w.hasSubshell,
		SubshellCommands: w.subshellCommands,
	}, nil
}

func hasHeredocRedirect(raw string) bool {
	return heredocAnywhere.MatchString(raw)
}

// firstLineFallback recovers the operative command from a regular heredoc
// redirect (cmd <<EOF ... EOF) by parsing just the first line, stripped of
// its redirect marker, and marking the result tainted.
func firstLineFallback(raw string) ParseResult {
	lines := strings.SplitN(raw, "\n", 2)
	first := heredocRedirectSuffix.ReplaceAllString(lines[0], "")
	result, err := parseWithDepth(strings.TrimSpace(first), 0)
	if err != nil {
		return ParseResult{ParseError: true, HasSubshell: true}
	}
	result.HasSubshell = true
	return result
}

// heredocFallback is used when the top-level parse itself fails. If the
// input looks like a heredoc redirect, recover via firstLineFallback;
// otherwise surface a parse error.
func heredocFallback(raw string) ParseResult {
	if hasHeredocRedirect(raw) {
		return firstLineFallback(raw)
	}
	return ParseResult{ParseError: true}
}

// walker accumulates invocations and taint while walking a parsed AST at a
// given wrapper-unwrap depth.
type walker struct {
	depth            int
	commands         []Invocation
	hasSubshell      bool
	subshellCommands []string
}

func (w *walker) walkStmt(stmt *syntax.Stmt) {
	if stmt.Cmd == nil {
		return
	}
	switch cmd := stmt.Cmd.(type) {
	case *syntax.CallExpr:
		w.walkCallExpr(cmd)
	case *syntax.BinaryCmd:
		// Covers pipelines (|) and logical chains (&&, ||) alike: walk
		// both sides.
		w.walkStmt(cmd.X)
		w.walkStmt(cmd.Y)
	case *syntax.Subshell:
		w.hasSubshell = true
		for _, s := range cmd.Stmts {
			w.walkStmt(s)
		}
	case *syntax.Block:
		for _, s := range cmd.Stmts {
			w.walkStmt(s)
		}
	case *syntax.IfClause, *syntax.WhileClause, *syntax.ForClause,
		*syntax.CaseClause, *syntax.FuncDecl:
		// Control-flow bodies are not statically analyzable in scope; set
		// taint and do not descend.
		w.hasSubshell = true
	}
}

func (w *walker) walkCallExpr(call *syntax.CallExpr) {
	var envPrefixes []string
	for _, assign := range call.Assigns {
		envPrefixes = append(envPrefixes, assignString(assign))
	}

	var words []string
	for _, word := range call.Args {
		words = append(words, w.wordString(word))
	}

	if len(words) == 0 {
		return
	}

	name := words[0]
	basename := name
	if idx := strings.LastIndexByte(name, '/'); idx >= 0 {
		basename = name[idx+1:]
	}
	if basename == "" {
		return
	}

	args := append([]string{}, words[1:]...)

	// Recursive unwrap: `sh -c "..."`, `bash -c "..."`, `zsh -c "..."`.
	// The child's invocations replace this one; its taint and subshell
	// commands are folded into the parent.
	if wrapperShells[basename] && len(call.Args) >= 3 && words[1] == "-c" {
		inner := wordLiteral(call.Args[2])
		child, err := parseWithDepth(inner, w.depth+1)
		if err == nil && !child.ParseError {
			w.commands = append(w.commands, child.Commands...)
			w.hasSubshell = w.hasSubshell || child.HasSubshell
			w.subshellCommands = append(w.subshellCommands, child.SubshellCommands...)
			return
		}
		// Child failed to parse; fall through and keep the wrapper itself
		// as a single invocation so the outer evaluator can still reason
		// about it.
	}

	raw := strings.Join(append(append(append([]string{}, envPrefixes...), name), args...), " ")

	w.commands = append(w.commands, Invocation{
		Command:     basename,
		Args:        args,
		EnvPrefixes: envPrefixes,
		Raw:         raw,
	})
}

// wordString renders a syntax.Word to its canonical shell-syntax text
// (quotes preserved) and records any command substitutions found within
// it as subshell taint.
func (w *walker) wordString(word *syntax.Word) string {
	w.collectTaint(word)
	var sb strings.Builder
	printer := syntax.NewPrinter()
	_ = printer.Print(&sb, word)
	return sb.String()
}

func (w *walker) collectTaint(word *syntax.Word) {
	for _, part := range word.Parts {
		w.collectTaintPart(part)
	}
}

func (w *walker) collectTaintPart(part syntax.WordPart) {
	switch p := part.(type) {
	case *syntax.CmdSubst:
		w.hasSubshell = true
		w.subshellCommands = append(w.subshellCommands, stmtsText(p.Stmts))
	case *syntax.DblQuoted:
		for _, pp := range p.Parts {
			w.collectTaintPart(pp)
		}
	}
}

// wordLiteral extracts a word's dequoted literal text: the script
// argument of `sh -c "..."` needs to be the actual inline script, not its
// re-quoted printer rendering.
func wordLiteral(word *syntax.Word) string {
	var sb strings.Builder
	for _, part := range word.Parts {
		appendLiteralPart(&sb, part, false)
	}
	return sb.String()
}

func appendLiteralPart(sb *strings.Builder, part syntax.WordPart, inDblQuotes bool) {
	switch p := part.(type) {
	case *syntax.Lit:
		// Lit values keep their backslash escapes; drop them the way the
		// shell would when passing the word on as an argument.
		for i := 0; i < len(p.Value); i++ {
			c := p.Value[i]
			if c == '\\' && i+1 < len(p.Value) && (!inDblQuotes || strings.IndexByte("\\\"$`", p.Value[i+1]) >= 0) {
				i++
				c = p.Value[i]
			}
			sb.WriteByte(c)
		}
	case *syntax.SglQuoted:
		sb.WriteString(p.Value)
	case *syntax.DblQuoted:
		for _, pp := range p.Parts {
			appendLiteralPart(sb, pp, true)
		}
	default:
		printer := syntax.NewPrinter()
		_ = printer.Print(sb, part)
	}
}

func stmtsText(stmts []*syntax.Stmt) string {
	var sb strings.Builder
	printer := syntax.NewPrinter()
	for _, stmt := range stmts {
		_ = printer.Print(&sb, stmt)
	}
	return sb.String()
}

func assignString(assign *syntax.Assign) string {
	var sb strings.Builder
	sb.WriteString(assign.Name.Value)
	sb.WriteByte('=')
	if assign.Value != nil {
		printer := syntax.NewPrinter()
		_ = printer.Print(&sb, assign.Value)
	}
	return sb.String()
}
