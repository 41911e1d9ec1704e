// Package pattern compiles textual patterns into matchers that can be
// anchored at, or searched forward from, an arbitrary byte offset.
//
// A Pattern holds no scan cursor. Every call is a pure function of the
// pattern, the text and the position, so one Pattern may be shared freely.
package pattern

import (
	"fmt"
	"regexp"
	"strings"
)

// Match is a successful match. End is always Start + len(Text).
type Match struct {
	Text  string
	Start int
	End   int
}

type Pattern struct {
	source   string
	anchored *regexp.Regexp
	full     *regexp.Regexp
	search   *regexp.Regexp
}

// Compile parses expr (RE2 syntax) and returns a Pattern.
func Compile(expr string) (*Pattern, error) {
	search, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", expr, err)
	}
	anchored, err := regexp.Compile(`\A(?:` + expr + `)`)
	if err != nil {
		return nil, fmt.Errorf("compile anchored pattern %q: %w", expr, err)
	}
	full, err := regexp.Compile(`\A(?:` + expr + `)\z`)
	if err != nil {
		return nil, fmt.Errorf("compile full pattern %q: %w", expr, err)
	}
	return &Pattern{source: expr, anchored: anchored, full: full, search: search}, nil
}

// MustCompile is like Compile but panics if expr does not compile.
func MustCompile(expr string) *Pattern {
	p, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Pattern) String() string {
	return p.source
}

// MatchAt reports the match that begins exactly at pos. It returns false
// when pos is out of range or no match starts there.
func (p *Pattern) MatchAt(text string, pos int) (Match, bool) {
	if pos < 0 || pos > len(text) {
		return Match{}, false
	}
	loc := p.anchored.FindStringIndex(text[pos:])
	if loc == nil {
		return Match{}, false
	}
	return Match{Text: text[pos : pos+loc[1]], Start: pos, End: pos + loc[1]}, true
}

// SearchFrom returns the first match starting at or after pos.
func (p *Pattern) SearchFrom(text string, pos int) (Match, bool) {
	if pos < 0 || pos > len(text) {
		return Match{}, false
	}
	loc := p.search.FindStringIndex(text[pos:])
	if loc == nil {
		return Match{}, false
	}
	return Match{Text: text[pos+loc[0] : pos+loc[1]], Start: pos + loc[0], End: pos + loc[1]}, true
}

// Full reports whether the whole of s matches. Unlike MatchAt, every
// alternative is considered, not only the leftmost one.
func (p *Pattern) Full(s string) bool {
	return p.full.MatchString(s)
}

// Literal returns expr text that matches s verbatim.
func Literal(s string) string {
	return regexp.QuoteMeta(s)
}

// Class returns a bracket expression body matching any byte of chars.
// The result is meant to be placed inside [...] or [^...].
func Class(chars string) string {
	var b strings.Builder
	for _, r := range chars {
		switch r {
		case '\\', ']', '[', '^', '-':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
