package parser

import "github.com/dhamidi/cmdtree/grammar"

type visit struct {
	node   grammar.ID
	offset int
}

// state is the mutable record of one parse. It is created per call and
// never shared.
type state struct {
	text   string
	offset int
	cursor grammar.Node
	tokens []grammar.Token
	err    *grammar.MatchError
	ended  bool
	seen   map[visit]bool
}

func newState(root grammar.Node, text string) *state {
	return &state{
		text:   text,
		cursor: root,
		seen:   make(map[visit]bool),
	}
}

// visit records that n is adopted at the current offset. It returns false
// if that already happened, which means the grammar cycles without
// consuming input.
func (st *state) visit(n grammar.Node) bool {
	key := visit{node: n.ID(), offset: st.offset}
	if st.seen[key] {
		return false
	}
	st.seen[key] = true
	return true
}
