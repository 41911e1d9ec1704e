package grammar

import (
	"strings"

	"github.com/dhamidi/cmdtree/pattern"
)

var (
	terminatorClass = pattern.Class(Terminators)

	// run is the maximal stretch of non-terminators.
	run = pattern.MustCompile(`[^` + terminatorClass + `]*`)
	// numericRun also lets '+' through so that a signed decimal such as
	// "+1.5" stays one literal. Integers scan with run and stop at '+'.
	numericRun = pattern.MustCompile(`(?:[^` + terminatorClass + `]|\+)*`)
	// rangeRun stops before '.' so "1..5" splits into bound, dots, bound.
	rangeRun = pattern.MustCompile(`[^` + terminatorClass + `.]*`)

	integerLiteral = pattern.MustCompile(`-?[0-9]+`)
	decimalLiteral = pattern.MustCompile(`[-+]?(?:[0-9]*\.[0-9]+|[0-9]+\.[0-9]*|[0-9]+)`)
	quotedLiteral  = pattern.MustCompile(`"(?:\\.|[^\\"])*"`)
	trailingWord   = pattern.MustCompile(`[^` + terminatorClass + `]+`)
)

// Token is one matched element of the input.
type Token struct {
	Kind  Kind
	Label string
	Text  string
	Start int
	End   int
}

// Name is the label if one is set, otherwise the kind name.
func (t Token) Name() string {
	if t.Label != "" {
		return t.Label
	}
	return t.Kind.String()
}

// Match tries n at byte offset pos of text. It is a pure function of the
// node, the text and the position.
func (n Node) Match(text string, pos int) (Token, *MatchError) {
	d := n.data()
	if pos < 0 || pos > len(text) {
		return Token{}, &MatchError{Kind: ErrorNoMatch, Message: "position out of range", Start: len(text), End: len(text)}
	}
	tok := func(m pattern.Match) (Token, *MatchError) {
		return Token{Kind: d.kind, Label: d.label, Text: m.Text, Start: m.Start, End: m.End}, nil
	}

	switch d.kind {
	case KindEnum, KindChar:
		m, _ := run.MatchAt(text, pos)
		for _, w := range d.words {
			if m.Text == w {
				return tok(m)
			}
		}
		return Token{}, newMatchError(ErrorNoMatch, text, m.Start, m.End, "expected one of %s", quoteAll(d.words))

	case KindKeyword:
		return matchKeyword(d, text, pos)

	case KindInt, KindFloat, KindRangeInt:
		return matchNumber(d, text, pos)

	case KindAnyString:
		m, _ := run.MatchAt(text, pos)
		return tok(m)

	case KindAnyMsg:
		return tok(pattern.Match{Text: text[pos:], Start: pos, End: len(text)})

	case KindEnd:
		if m, found := trailingWord.SearchFrom(text, pos); found {
			return Token{}, newMatchError(ErrorTrailingInput, text, m.Start, m.End, "unexpected trailing input")
		}
		return tok(pattern.Match{Start: pos, End: pos})

	case KindQuotedString:
		if pos == len(text) || text[pos] != '"' {
			return Token{}, newMatchError(ErrorIllegalLiteral, text, pos, min(pos+1, len(text)), "expected a quoted string")
		}
		m, ok := quotedLiteral.MatchAt(text, pos)
		if !ok {
			return Token{}, newMatchError(ErrorIllegalLiteral, text, pos, len(text), "unterminated quoted string")
		}
		return tok(m)

	case KindBareString:
		m, _ := run.MatchAt(text, pos)
		if m.Text == "" || decimalLiteral.Full(m.Text) {
			return Token{}, newMatchError(ErrorIllegalLiteral, text, m.Start, m.End, "expected a non-numeric string")
		}
		return tok(m)

	case KindRelativeOffset:
		return matchOffset(d, '~', text, pos)

	case KindLocalOffset:
		return matchOffset(d, '^', text, pos)
	}

	return Token{}, newMatchError(ErrorNoMatch, text, pos, pos, "%s does not match input", d.kind)
}

func matchKeyword(d node, text string, pos int) (Token, *MatchError) {
	best := -1
	rest := text[pos:]
	for i, w := range d.words {
		if strings.HasPrefix(rest, w) && (best < 0 || len(w) > len(d.words[best])) {
			best = i
		}
	}
	if best < 0 {
		window := 0
		if len(d.words) > 0 {
			window = min(len(d.words[0]), len(rest))
		}
		return Token{}, newMatchError(ErrorNoMatch, text, pos, pos+window, "expected %s", quoteAll(d.words))
	}
	w := d.words[best]
	return Token{Kind: d.kind, Label: d.label, Text: w, Start: pos, End: pos + len(w)}, nil
}

func matchNumber(d node, text string, pos int) (Token, *MatchError) {
	scan, literal, what := run, integerLiteral, "an integer"
	switch d.kind {
	case KindFloat:
		scan, literal, what = numericRun, decimalLiteral, "a number"
	case KindRangeInt:
		scan = rangeRun
	}

	m, _ := scan.MatchAt(text, pos)
	numeral := m.Text
	if len(d.words) > 0 {
		unit := longestSuffix(numeral, d.words)
		if unit == "" {
			return Token{}, newMatchError(ErrorIllegalLiteral, text, m.Start, m.End, "missing unit, expected one of %s", quoteAll(d.words))
		}
		numeral = strings.TrimSuffix(numeral, unit)
	}
	if !literal.Full(numeral) {
		return Token{}, newMatchError(ErrorNoMatch, text, m.Start, m.End, "expected %s", what)
	}
	return Token{Kind: d.kind, Label: d.label, Text: m.Text, Start: m.Start, End: m.End}, nil
}

func matchOffset(d node, prefix byte, text string, pos int) (Token, *MatchError) {
	if pos == len(text) || text[pos] != prefix {
		return Token{}, newMatchError(ErrorNoMatch, text, pos, min(pos+1, len(text)), "expected %q", string(prefix))
	}
	m, _ := numericRun.MatchAt(text, pos+1)
	if m.Text != "" && !decimalLiteral.Full(m.Text) {
		return Token{}, newMatchError(ErrorIllegalLiteral, text, m.Start, m.End, "invalid offset after %q", string(prefix))
	}
	return Token{Kind: d.kind, Label: d.label, Text: text[pos:m.End], Start: pos, End: m.End}, nil
}

func longestSuffix(s string, suffixes []string) string {
	best := ""
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) && len(suf) > len(best) {
			best = suf
		}
	}
	return best
}

func quoteAll(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = `"` + w + `"`
	}
	return strings.Join(quoted, ", ")
}
