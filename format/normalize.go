package format

import (
	"strings"

	"github.com/dhamidi/cmdtree/parser"
	"github.com/pmezard/go-difflib/difflib"
)

// Normalize rewrites one command into canonical spacing: every run of
// separators between two tokens becomes a single gap, tokens that were
// adjacent stay adjacent, and leading or trailing separators are dropped.
// The gap is one separator, or exactly as many as the parser requires
// after each token. A command that does not parse, before or after
// rewriting, is returned unchanged with ok set to false.
func Normalize(p *parser.Parser, line string) (string, bool) {
	sep := string(p.Separator())
	gap := strings.Repeat(sep, max(1, p.SeparatorCount()))
	trimmed := strings.Trim(line, sep)
	r := p.Parse(trimmed)
	if !r.OK() {
		return line, false
	}

	var sb strings.Builder
	last := 0
	for i, tok := range r.Tokens {
		if i > 0 && tok.Start > last {
			sb.WriteString(gap)
		}
		sb.WriteString(tok.Text)
		last = tok.End
	}
	if rest := strings.Trim(trimmed[last:], sep); rest != "" {
		if len(r.Tokens) > 0 {
			sb.WriteString(gap)
		}
		sb.WriteString(rest)
	}
	out := sb.String()
	if !p.Parse(out).OK() {
		return line, false
	}
	return out, true
}

// NormalizeText applies Normalize to every command line of text. Blank
// lines and lines starting with commentPrefix are kept verbatim.
func NormalizeText(p *parser.Parser, text, commentPrefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if IsCommand(line, commentPrefix) {
			lines[i], _ = Normalize(p, line)
		}
	}
	return strings.Join(lines, "\n")
}

// IsCommand reports whether line holds a command rather than a blank line
// or a comment.
func IsCommand(line, commentPrefix string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	return commentPrefix == "" || !strings.HasPrefix(trimmed, commentPrefix)
}

// Diff returns a unified diff from before to after, or "" if they are
// equal.
func Diff(name, before, after string) (string, error) {
	if before == after {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  3,
	})
}
