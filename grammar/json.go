package grammar

import "encoding/json"

type jsonToken struct {
	Kind  string `json:"kind"`
	Label string `json:"label,omitempty"`
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

type jsonError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Span    [2]int `json:"span"`
	Text    string `json:"text"`
}

type jsonNode struct {
	ID       ID       `json:"id"`
	Kind     string   `json:"kind"`
	Label    string   `json:"label,omitempty"`
	Words    []string `json:"words,omitempty"`
	Hints    []string `json:"hints,omitempty"`
	Children []ID     `json:"children,omitempty"`
}

func (t Token) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonToken{
		Kind:  t.Kind.String(),
		Label: t.Label,
		Text:  t.Text,
		Start: t.Start,
		End:   t.End,
	})
}

func (e *MatchError) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonError{
		Kind:    e.Kind.String(),
		Message: e.Message,
		Span:    [2]int{e.Start, e.End},
		Text:    e.Text,
	})
}

// MarshalJSON encodes the graph as a flat node table indexed by ID.
func (g *Graph) MarshalJSON() ([]byte, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	nodes := make([]jsonNode, len(g.nodes))
	for i, n := range g.nodes {
		nodes[i] = jsonNode{
			ID:       ID(i),
			Kind:     n.kind.String(),
			Label:    n.label,
			Words:    n.words,
			Hints:    n.hints,
			Children: n.children,
		}
	}
	return json.Marshal(struct {
		Nodes []jsonNode `json:"nodes"`
	}{nodes})
}
