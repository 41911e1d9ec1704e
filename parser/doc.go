// Package parser runs a command grammar over input text.
//
// The driver is greedy and never backtracks. At each step it tries the
// children of the current node in order and adopts the first that matches;
// later children are not considered once one succeeds, so the order of
// children is part of the grammar. After each token the configured
// separator is skipped. A parse succeeds when an End child matches or when
// it reaches a node without children.
//
// When no child matches, the parse fails with the run of non-terminators
// at the current offset as the offending word, and the literals of every
// child that contain that word are offered as completions.
package parser
