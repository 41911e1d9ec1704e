package parser

import (
	"fmt"
	"unicode/utf8"

	"github.com/dhamidi/cmdtree/grammar"
	"github.com/dhamidi/cmdtree/pattern"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("cmdtree.parser")

// DefaultSeparator is skipped between tokens unless WithSeparator says
// otherwise.
const DefaultSeparator = ' '

// maxSeparatorCount is the largest repeat count the pattern syntax accepts.
const maxSeparatorCount = 1000

type Option func(*Parser)

// WithSeparator sets the character skipped between tokens.
func WithSeparator(r rune) Option {
	return func(p *Parser) {
		p.separator = r
	}
}

// WithSeparatorCount makes the driver skip exactly n separators after each
// token. Zero, the default, skips any number.
func WithSeparatorCount(n int) Option {
	return func(p *Parser) {
		p.separatorCount = n
	}
}

// Parser drives a frozen grammar over input strings. It holds no
// per-parse state, so one Parser may serve concurrent calls.
type Parser struct {
	graph          *grammar.Graph
	separator      rune
	separatorCount int
	skip           *pattern.Pattern
	recover        *pattern.Pattern
	single         *pattern.Pattern
}

// New validates g, freezes it and returns a Parser over it.
func New(g *grammar.Graph, opts ...Option) (*Parser, error) {
	if g == nil {
		return nil, fmt.Errorf("new parser: %w: nil graph", grammar.ErrTypeViolation)
	}
	if err := g.Err(); err != nil {
		return nil, fmt.Errorf("new parser: %w", err)
	}

	p := &Parser{graph: g, separator: DefaultSeparator}
	for _, opt := range opts {
		opt(p)
	}
	if p.separatorCount < 0 || p.separatorCount > maxSeparatorCount {
		return nil, fmt.Errorf("new parser: separator count %d out of range [0, %d]", p.separatorCount, maxSeparatorCount)
	}

	sep := pattern.Literal(string(p.separator))
	expr := "(?:" + sep + ")*"
	if p.separatorCount > 0 {
		expr = fmt.Sprintf("(?:%s){%d}", sep, p.separatorCount)
	}
	skip, err := pattern.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("new parser: %w", err)
	}
	p.skip = skip
	p.recover = pattern.MustCompile(`[^` + pattern.Class(grammar.Terminators) + `]+`)
	p.single = pattern.MustCompile(`(?s).`)

	g.Freeze()
	return p, nil
}

func (p *Parser) Graph() *grammar.Graph {
	return p.graph
}

func (p *Parser) Separator() rune {
	return p.separator
}

// SeparatorCount returns the exact number of separators skipped after each
// token, or zero if any number is skipped.
func (p *Parser) SeparatorCount() int {
	return p.separatorCount
}

// Parse runs the greedy driver over text from the root of the grammar.
// It never fails with a Go error: a parse failure is reported through
// Result.Err together with completions for the offending word.
func (p *Parser) Parse(text string) *Result {
	st := newState(p.graph.Root(), text)
	for {
		if done := p.step(st); done {
			break
		}
	}

	r := &Result{
		Input:  text,
		Tokens: st.tokens,
		Err:    st.err,
		Cursor: st.cursor,
		Offset: st.offset,
	}
	if st.err != nil {
		r.Suggestions = suggest(st.cursor, st.err.Text)
		log.Debugf("parse %q failed at %d:%d: %s", text, st.err.Start, st.err.End, st.err.Message)
	}
	return r
}

// step tries the children of the cursor in order and adopts the first
// that matches. It reports whether the parse has finished.
func (p *Parser) step(st *state) bool {
	children := st.cursor.Children()
	if len(children) == 0 {
		return true
	}

	trailing := false
	for _, child := range children {
		tok, merr := child.Match(st.text, st.offset)
		if merr != nil {
			if merr.Kind == grammar.ErrorTrailingInput {
				trailing = true
			}
			continue
		}
		if child.Kind() == grammar.KindEnd {
			st.ended = true
			return true
		}
		if !st.visit(child) {
			st.err = p.failure(st, grammar.ErrorNoAlternative, "grammar loops at %s without consuming input", child)
			return true
		}
		st.tokens = append(st.tokens, tok)
		st.cursor = child
		st.offset = tok.End
		if m, ok := p.skip.MatchAt(st.text, st.offset); ok {
			st.offset = m.End
		}
		return false
	}

	if k := p.shortfall(st); k > 0 {
		st.err = p.failure(st, grammar.ErrorNoAlternative, "expected %d separators, found %d", p.separatorCount, k)
		st.err.Start, st.err.End = st.offset, st.offset+k*utf8.RuneLen(p.separator)
		st.err.Text = st.text[st.err.Start:st.err.End]
	} else if trailing {
		st.err = p.failure(st, grammar.ErrorTrailingInput, "unexpected trailing input")
	} else {
		st.err = p.failure(st, grammar.ErrorNoAlternative, "no alternative matches")
	}
	return true
}

// shortfall returns how many separators directly follow the last token
// when an exact count is required and fewer than that are present.
func (p *Parser) shortfall(st *state) int {
	if p.separatorCount == 0 || len(st.tokens) == 0 || st.tokens[len(st.tokens)-1].End != st.offset {
		return 0
	}
	k := 0
	for _, r := range st.text[st.offset:] {
		if r != p.separator {
			break
		}
		k++
	}
	if k >= p.separatorCount {
		return 0
	}
	return k
}

// failure builds the error for the word at the current offset: the run of
// non-terminators there, else one character, else nothing at end of input.
func (p *Parser) failure(st *state, kind grammar.ErrorKind, format string, args ...any) *grammar.MatchError {
	m, ok := p.recover.MatchAt(st.text, st.offset)
	if !ok {
		m, ok = p.single.MatchAt(st.text, st.offset)
	}
	if !ok {
		m = pattern.Match{Start: st.offset, End: st.offset}
	}
	return &grammar.MatchError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Start:   m.Start,
		End:     m.End,
		Text:    m.Text,
	}
}
