package parser

import (
	"cmp"
	"slices"
	"strings"

	"github.com/dhamidi/cmdtree/grammar"
)

// suggest collects the suggestions of every child of cursor, keeps those
// containing word and ranks them by where word occurs, then
// alphabetically. On duplicate literals the first hint wins.
func suggest(cursor grammar.Node, word string) []grammar.Suggestion {
	type ranked struct {
		s     grammar.Suggestion
		index int
	}
	var out []ranked
	seen := make(map[string]bool)
	for _, child := range cursor.Children() {
		for _, s := range child.Suggestions() {
			if seen[s.Text] {
				continue
			}
			seen[s.Text] = true
			i := strings.Index(s.Text, word)
			if i < 0 {
				continue
			}
			out = append(out, ranked{s: s, index: i})
		}
	}

	slices.SortFunc(out, func(a, b ranked) int {
		return cmp.Or(cmp.Compare(a.index, b.index), cmp.Compare(a.s.Text, b.s.Text))
	})

	suggestions := make([]grammar.Suggestion, len(out))
	for i, r := range out {
		suggestions[i] = r.s
	}
	return suggestions
}

// Completion is the set of literals that may replace input[Start:End].
type Completion struct {
	Start       int
	End         int
	Suggestions []grammar.Suggestion
}

// Complete returns completions for the word under offset in text. Only
// text[:offset] is parsed. When that prefix parses and ends in a
// separator, every literal that may follow is offered.
func (p *Parser) Complete(text string, offset int) Completion {
	offset = max(0, min(offset, len(text)))
	prefix := text[:offset]
	r := p.Parse(prefix)

	if r.Err != nil {
		return Completion{Start: r.Err.Start, End: r.Err.End, Suggestions: r.Suggestions}
	}
	if prefix == "" || strings.HasSuffix(prefix, string(p.separator)) {
		return Completion{Start: offset, End: offset, Suggestions: suggest(r.Cursor, "")}
	}
	return Completion{Start: offset, End: offset}
}
