package parser

import (
	"encoding/json"

	"github.com/dhamidi/cmdtree/grammar"
)

type jsonResult struct {
	Input       string              `json:"input"`
	Tokens      []grammar.Token     `json:"tokens"`
	Error       *grammar.MatchError `json:"error,omitempty"`
	Suggestions []string            `json:"suggestions,omitempty"`
	Hints       map[string]string   `json:"hints,omitempty"`
	DidYouMean  string              `json:"didYouMean,omitempty"`
}

func (r *Result) MarshalJSON() ([]byte, error) {
	jr := jsonResult{
		Input:  r.Input,
		Tokens: r.Tokens,
		Error:  r.Err,
	}
	if jr.Tokens == nil {
		jr.Tokens = []grammar.Token{}
	}
	if r.Err != nil {
		jr.Suggestions = r.SuggestionTexts()
		for _, s := range r.Suggestions {
			if s.Hint == "" {
				continue
			}
			if jr.Hints == nil {
				jr.Hints = make(map[string]string)
			}
			jr.Hints[s.Text] = s.Hint
		}
		jr.DidYouMean = r.DidYouMean()
	}
	return json.Marshal(jr)
}

type jsonSuggestion struct {
	Text string `json:"text"`
	Hint string `json:"hint,omitempty"`
}

type jsonCompletion struct {
	Span        [2]int           `json:"span"`
	Suggestions []jsonSuggestion `json:"suggestions"`
}

func (c Completion) MarshalJSON() ([]byte, error) {
	jc := jsonCompletion{
		Span:        [2]int{c.Start, c.End},
		Suggestions: make([]jsonSuggestion, len(c.Suggestions)),
	}
	for i, s := range c.Suggestions {
		jc.Suggestions[i] = jsonSuggestion{Text: s.Text, Hint: s.Hint}
	}
	return json.Marshal(jc)
}
