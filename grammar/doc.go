// Package grammar defines command grammars as directed graphs of typed
// matching nodes.
//
// # Overview
//
// A command such as
//
//	ability @a[r=5] mute true
//
// is described by a Graph. Every node knows how to recognise one token at a
// byte offset and lists the nodes that may follow it. A parser walks the
// graph from Root, trying each node's children in order.
//
// # Building
//
// Nodes are created through the Graph and wired with Link, which returns its
// receiver so definitions nest:
//
//	g := grammar.New()
//	end := g.End()
//	g.Root().Link(
//	    g.Enum("ability").Link(
//	        g.Selector(
//	            g.Enum("mute", "worldbuilder", "mayfly").Link(
//	                g.Enum("true", "false").Link(end),
//	                end,
//	            ),
//	        )...,
//	    ),
//	)
//
// Nodes live in an arena owned by the Graph and refer to each other by ID,
// so a node may have several parents and the graph may contain cycles.
// Definition errors never panic: the first one is kept and returned by
// Graph.Err. Once a parser is created the graph is frozen; further Link
// calls panic.
//
// # Matching
//
// Node.Match is a pure function of the node, the input and the offset. Free
// text stops at the terminator characters listed in Terminators. Keyword is
// the only variant that ignores terminators; it picks the longest of its
// alternatives present at the offset.
//
// # Suggestions
//
// Node.Suggestions lists literals a user might type at the node, paired with
// hints set through WithHints or Describe ("Label:hint1;hint2").
package grammar
