package grammar

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/exp/ebnf"
)

// StartProduction is the production that EBNF output starts from.
const StartProduction = "Command"

// Lexical productions referenced by node terms, in output order. The
// character classes are approximations: EBNF has no negated classes, so
// "word" lists the common non-terminator characters only.
var lexicalProductions = []struct {
	name string
	expr string
	uses []string
}{
	{"integer", `[ "-" ] digit { digit }`, []string{"digit"}},
	{"decimal", `[ "-" | "+" ] ( digit { digit } [ "." { digit } ] | "." digit { digit } )`, []string{"digit"}},
	{"word", `( letter | digit ) { letter | digit }`, []string{"letter", "digit"}},
	{"message", `{ char }`, []string{"char"}},
	{"quoted", `"\"" { char } "\""`, []string{"char"}},
	{"letter", `"a" … "z" | "A" … "Z" | "_" | "-" | "." | ":"`, nil},
	{"digit", `"0" … "9"`, nil},
	{"char", `"\x20" … "\x7e"`, nil},
}

type ebnfWriter struct {
	g       *Graph
	lexical map[string]bool
}

// WriteEBNF renders every node reachable from the root as one EBNF
// production. Separators between tokens are not represented.
func (g *Graph) WriteEBNF(w io.Writer) error {
	ew := &ebnfWriter{g: g, lexical: make(map[string]bool)}

	var order []Node
	seen := map[ID]bool{0: true}
	queue := []Node{g.Root()}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		order = append(order, n)
		for _, c := range n.Children() {
			if !seen[c.id] {
				seen[c.id] = true
				queue = append(queue, c)
			}
		}
	}

	for _, n := range order {
		if err := writeProduction(w, ew.name(n), ew.production(n)); err != nil {
			return err
		}
	}

	for _, lp := range lexicalProductions {
		if ew.lexical[lp.name] {
			for _, u := range lp.uses {
				ew.lexical[u] = true
			}
		}
	}
	if len(ew.lexical) > 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return fmt.Errorf("write production: %w", err)
		}
	}
	for _, lp := range lexicalProductions {
		if !ew.lexical[lp.name] {
			continue
		}
		if err := writeProduction(w, lp.name, lp.expr); err != nil {
			return err
		}
	}
	return nil
}

func writeProduction(w io.Writer, name, expr string) error {
	line := name + " = " + expr + " .\n"
	if expr == "" {
		line = name + " = .\n"
	}
	if _, err := io.WriteString(w, line); err != nil {
		return fmt.Errorf("write production %s: %w", name, err)
	}
	return nil
}

// EBNF returns the output of WriteEBNF as a string.
func (g *Graph) EBNF() string {
	var buf bytes.Buffer
	g.WriteEBNF(&buf)
	return buf.String()
}

// VerifyEBNF renders the grammar and checks it with the EBNF verifier:
// every production is defined and reachable from StartProduction.
func (g *Graph) VerifyEBNF() (ebnf.Grammar, error) {
	src := g.EBNF()
	parsed, err := ebnf.Parse("grammar.ebnf", strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parse ebnf: %w", err)
	}
	if err := ebnf.Verify(parsed, StartProduction); err != nil {
		return nil, fmt.Errorf("verify ebnf: %w", err)
	}
	return parsed, nil
}

func (ew *ebnfWriter) name(n Node) string {
	if n.id == 0 {
		return StartProduction
	}
	return fmt.Sprintf("%s%d", n.Kind(), n.id)
}

func (ew *ebnfWriter) production(n Node) string {
	self := ew.term(n)
	children := n.Children()
	names := make([]string, len(children))
	for i, c := range children {
		names[i] = ew.name(c)
	}
	alt := strings.Join(names, " | ")

	switch {
	case len(children) == 0:
		return self
	case self == "":
		return alt
	case len(children) == 1:
		return self + " " + alt
	default:
		return self + " ( " + alt + " )"
	}
}

func (ew *ebnfWriter) use(name string) string {
	ew.lexical[name] = true
	return name
}

func (ew *ebnfWriter) term(n Node) string {
	d := n.data()
	switch d.kind {
	case KindEnum, KindChar, KindKeyword:
		return alternatives(d.words)
	case KindAnyString:
		return "[ " + ew.use("word") + " ]"
	case KindInt:
		return ew.use("integer") + units(d.words)
	case KindFloat:
		return ew.use("decimal") + units(d.words)
	case KindRangeInt:
		return ew.use("integer")
	case KindAnyMsg:
		return ew.use("message")
	case KindQuotedString:
		return ew.use("quoted")
	case KindBareString:
		return ew.use("word")
	case KindRelativeOffset:
		return `"~" [ ` + ew.use("decimal") + " ]"
	case KindLocalOffset:
		return `"^" [ ` + ew.use("decimal") + " ]"
	}
	return ""
}

func alternatives(words []string) string {
	var quoted []string
	optional := false
	for _, w := range words {
		if w == "" {
			optional = true
			continue
		}
		quoted = append(quoted, strconv.Quote(w))
	}
	switch {
	case len(quoted) == 0:
		return ""
	case optional:
		return "[ " + strings.Join(quoted, " | ") + " ]"
	case len(quoted) == 1:
		return quoted[0]
	default:
		return "( " + strings.Join(quoted, " | ") + " )"
	}
}

func units(words []string) string {
	if len(words) == 0 {
		return ""
	}
	return " " + alternatives(words)
}
