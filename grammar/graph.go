package grammar

import (
	"fmt"
	"strings"
	"sync"
)

// ID identifies a node within its Graph.
type ID int

type node struct {
	kind     Kind
	label    string
	hints    []string
	words    []string
	children []ID
}

// Graph owns every node of one command grammar. Nodes are addressed by ID
// so that cycles and shared continuations need no pointer ownership.
//
// Building a Graph never panics on bad input; the first definition error is
// kept and returned by Err. Once frozen, the Graph is read-only and may be
// used by any number of parsers concurrently.
type Graph struct {
	mu     sync.RWMutex
	nodes  []node
	err    error
	frozen bool
}

// New returns a Graph holding only its root.
func New() *Graph {
	g := &Graph{}
	g.nodes = append(g.nodes, node{kind: KindRoot})
	return g
}

// Root returns the start node. It never matches text itself.
func (g *Graph) Root() Node {
	return Node{g: g, id: 0}
}

// Err returns the first definition error recorded while building.
func (g *Graph) Err() error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.err
}

// Freeze makes the graph immutable. Calling it twice is harmless.
func (g *Graph) Freeze() {
	g.mu.Lock()
	g.frozen = true
	g.mu.Unlock()
}

func (g *Graph) Frozen() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.frozen
}

// Len returns the number of nodes, root included.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// Node returns the handle for id, or the zero Node if id is unknown.
func (g *Graph) Node(id ID) Node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if id < 0 || int(id) >= len(g.nodes) {
		return Node{}
	}
	return Node{g: g, id: id}
}

func (g *Graph) fail(format string, args ...any) {
	if g.err == nil {
		g.err = fmt.Errorf("%w: %s", ErrTypeViolation, fmt.Sprintf(format, args...))
	}
}

func (g *Graph) mustBeMutable() {
	if g.frozen {
		panic(ErrFrozen)
	}
}

func (g *Graph) add(n node) Node {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.mustBeMutable()
	g.nodes = append(g.nodes, n)
	return Node{g: g, id: ID(len(g.nodes) - 1)}
}

func (g *Graph) addWords(kind Kind, words []string, allowEmpty bool) Node {
	n := g.add(node{kind: kind, words: append([]string(nil), words...)})
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(words) == 0 && (kind == KindEnum || kind == KindKeyword) {
		g.fail("%s node needs at least one alternative", kind)
	}
	for _, w := range words {
		if w == "" && !allowEmpty {
			g.fail("%s node has an empty alternative", kind)
		}
	}
	return n
}

// Enum matches a maximal run of non-terminators equal to one of words.
func (g *Graph) Enum(words ...string) Node {
	return g.addWords(KindEnum, words, true)
}

// Char is a single-word Enum.
func (g *Graph) Char(word string) Node {
	return g.addWords(KindChar, []string{word}, true)
}

// Keyword matches the longest of words that appears verbatim at the
// position, regardless of what follows it.
func (g *Graph) Keyword(words ...string) Node {
	return g.addWords(KindKeyword, words, false)
}

// Int matches an integer. When units are given, exactly one of them must
// end the literal.
func (g *Graph) Int(units ...string) Node {
	return g.addWords(KindInt, units, false)
}

// Float matches a decimal number, with the same unit rule as Int.
func (g *Graph) Float(units ...string) Node {
	return g.addWords(KindFloat, units, false)
}

// AnyString matches any run of non-terminators, possibly empty. The given
// words are offered as completions only.
func (g *Graph) AnyString(completions ...string) Node {
	return g.addWords(KindAnyString, completions, false)
}

// AnyMsg consumes the rest of the input.
func (g *Graph) AnyMsg() Node {
	return g.add(node{kind: KindAnyMsg})
}

// End succeeds only when nothing but terminators remains.
func (g *Graph) End() Node {
	return g.add(node{kind: KindEnd})
}

func (g *Graph) QuotedString() Node {
	return g.add(node{kind: KindQuotedString})
}

func (g *Graph) BareString() Node {
	return g.add(node{kind: KindBareString})
}

// RangeInt is an Int that stops before '.', for use in "min..max" ranges.
func (g *Graph) RangeInt() Node {
	return g.add(node{kind: KindRangeInt})
}

// RelativeOffset matches "~" with an optional numeral.
func (g *Graph) RelativeOffset() Node {
	return g.add(node{kind: KindRelativeOffset})
}

// LocalOffset matches "^" with an optional numeral.
func (g *Graph) LocalOffset() Node {
	return g.add(node{kind: KindLocalOffset})
}

// Node is a handle to one node of a Graph. The zero Node is invalid.
type Node struct {
	g  *Graph
	id ID
}

func (n Node) Valid() bool {
	if n.g == nil {
		return false
	}
	n.g.mu.RLock()
	defer n.g.mu.RUnlock()
	return n.id >= 0 && int(n.id) < len(n.g.nodes)
}

func (n Node) ID() ID {
	return n.id
}

func (n Node) Graph() *Graph {
	return n.g
}

func (n Node) data() node {
	if n.g == nil {
		return node{}
	}
	n.g.mu.RLock()
	defer n.g.mu.RUnlock()
	if int(n.id) >= len(n.g.nodes) {
		return node{}
	}
	return n.g.nodes[n.id]
}

func (n Node) Kind() Kind {
	return n.data().kind
}

func (n Node) Label() string {
	return n.data().label
}

func (n Node) Hints() []string {
	return n.data().hints
}

// Words returns the configured alternatives, units or completions.
func (n Node) Words() []string {
	return n.data().words
}

// Name is the label if one is set, otherwise the kind name.
func (n Node) Name() string {
	d := n.data()
	if d.label != "" {
		return d.label
	}
	return d.kind.String()
}

func (n Node) String() string {
	if !n.Valid() {
		return "<invalid>"
	}
	return fmt.Sprintf("%s#%d", n.Name(), n.id)
}

// Children returns the successors in the order they are tried.
func (n Node) Children() []Node {
	d := n.data()
	out := make([]Node, len(d.children))
	for i, id := range d.children {
		out[i] = Node{g: n.g, id: id}
	}
	return out
}

// Link appends children to n and returns n, so definitions can be nested.
// A child that is not a node of the same graph is skipped and recorded as
// a type violation.
func (n Node) Link(children ...Node) Node {
	if n.g == nil {
		return n
	}
	g := n.g
	g.mu.Lock()
	defer g.mu.Unlock()
	g.mustBeMutable()
	if int(n.id) >= len(g.nodes) {
		g.fail("link from unknown node %d", n.id)
		return n
	}
	for i, c := range children {
		switch {
		case c.g == nil:
			g.fail("child %d of %s is not a grammar node", i, kindNames[g.nodes[n.id].kind])
		case c.g != g:
			g.fail("child %d of %s belongs to another graph", i, kindNames[g.nodes[n.id].kind])
		case c.id == 0:
			g.fail("the root cannot be linked as a child")
		case g.nodes[n.id].kind == KindEnd:
			g.fail("End cannot have children")
		default:
			g.nodes[n.id].children = append(g.nodes[n.id].children, c.id)
		}
	}
	return n
}

// WithLabel sets the display label used for tokens and hints.
func (n Node) WithLabel(label string) Node {
	n.update(func(d *node) { d.label = label })
	return n
}

// WithHints sets the hint strings attached to suggestions.
func (n Node) WithHints(hints ...string) Node {
	n.update(func(d *node) { d.hints = append([]string(nil), hints...) })
	return n
}

// Describe sets label and hints from the compact form "Label:hint1;hint2".
func (n Node) Describe(desc string) Node {
	label, rest, found := strings.Cut(desc, ":")
	n.WithLabel(label)
	if found && rest != "" {
		n.WithHints(strings.Split(rest, ";")...)
	}
	return n
}

func (n Node) update(fn func(*node)) {
	if n.g == nil {
		return
	}
	n.g.mu.Lock()
	defer n.g.mu.Unlock()
	n.g.mustBeMutable()
	if int(n.id) < len(n.g.nodes) {
		fn(&n.g.nodes[n.id])
	}
}
