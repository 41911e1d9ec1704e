package parser

import (
	"sort"

	"github.com/dhamidi/cmdtree/grammar"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Result is the outcome of one parse: either the full token sequence, or
// the tokens accepted before the failure plus the error and completions
// for the offending word.
type Result struct {
	Input       string
	Tokens      []grammar.Token
	Err         *grammar.MatchError
	Suggestions []grammar.Suggestion

	// Cursor is the node whose children were tried last.
	Cursor grammar.Node
	// Offset is where the driver stopped.
	Offset int
}

func (r *Result) OK() bool {
	return r.Err == nil
}

// Failure returns r.Err as an error value, or a nil error on success.
func (r *Result) Failure() error {
	if r.Err == nil {
		return nil
	}
	return r.Err
}

// SuggestionTexts returns the completion literals in rank order.
func (r *Result) SuggestionTexts() []string {
	out := make([]string, len(r.Suggestions))
	for i, s := range r.Suggestions {
		out[i] = s.Text
	}
	return out
}

// DidYouMean returns the candidate at the failure point that is the
// closest fuzzy match for the offending word, or "" if none is close.
func (r *Result) DidYouMean() string {
	if r.Err == nil || r.Err.Text == "" {
		return ""
	}
	return Closest(r.Err.Text, candidates(r.Cursor))
}

// Closest ranks candidates by fuzzy distance to word and returns the best.
// Every character of word must appear in order in the candidate.
func Closest(word string, candidates []string) string {
	ranks := fuzzy.RankFindFold(word, candidates)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}

func candidates(cursor grammar.Node) []string {
	var out []string
	seen := make(map[string]bool)
	for _, child := range cursor.Children() {
		for _, s := range child.Suggestions() {
			if !seen[s.Text] {
				seen[s.Text] = true
				out = append(out, s.Text)
			}
		}
	}
	return out
}
