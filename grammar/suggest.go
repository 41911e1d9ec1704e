package grammar

import "strings"

// Suggestion is a literal the user could type, with an optional hint.
type Suggestion struct {
	Text string
	Hint string
}

// Suggestions returns the literal-to-hint mapping for n as an ordered list
// of distinct texts. Hints are paired with literals by index; a literal
// without a matching hint falls back to the node label.
func (n Node) Suggestions() []Suggestion {
	d := n.data()
	hint := func(i int) string {
		if i < len(d.hints) {
			return d.hints[i]
		}
		if len(d.hints) == 1 {
			return d.hints[0]
		}
		return d.label
	}
	single := func(text string) []Suggestion {
		return []Suggestion{{Text: text, Hint: hint(0)}}
	}

	switch d.kind {
	case KindEnum, KindChar, KindKeyword, KindAnyString:
		out := make([]Suggestion, 0, len(d.words))
		seen := make(map[string]bool, len(d.words))
		for i, w := range d.words {
			if seen[w] || w == "" {
				continue
			}
			seen[w] = true
			out = append(out, Suggestion{Text: w, Hint: hint(i)})
		}
		return out
	case KindInt, KindFloat:
		if len(d.words) == 0 {
			return single("0")
		}
		out := make([]Suggestion, 0, len(d.words))
		seen := make(map[string]bool, len(d.words))
		for i, unit := range d.words {
			if seen[unit] {
				continue
			}
			seen[unit] = true
			out = append(out, Suggestion{Text: "0" + unit, Hint: hint(i)})
		}
		return out
	case KindRangeInt:
		return single("0")
	case KindBareString:
		return single("string")
	case KindQuotedString:
		return single(`"string"`)
	case KindRelativeOffset:
		return single("~")
	case KindLocalOffset:
		return single("^")
	}
	return nil
}

// FormatHints renders hints in the compact "Label:hint1;hint2" form that
// Describe accepts.
func (n Node) FormatHints() string {
	d := n.data()
	if len(d.hints) == 0 {
		return d.label
	}
	return d.label + ":" + strings.Join(d.hints, ";")
}
