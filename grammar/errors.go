package grammar

import (
	"errors"
	"fmt"
)

var (
	// ErrTypeViolation marks a malformed grammar definition. It is reported
	// while the graph is built, never while parsing.
	ErrTypeViolation = errors.New("grammar type violation")
	// ErrFrozen is the panic value for mutating a graph in use by a parser.
	ErrFrozen = errors.New("grammar is frozen")

	ErrNoMatch        = errors.New("no match")
	ErrNoAlternative  = errors.New("no alternative matches")
	ErrTrailingInput  = errors.New("trailing input")
	ErrIllegalLiteral = errors.New("illegal literal")
)

type ErrorKind uint8

const (
	ErrorNoMatch ErrorKind = iota
	ErrorNoAlternative
	ErrorTrailingInput
	ErrorIllegalLiteral
)

var errorKindNames = map[ErrorKind]string{
	ErrorNoMatch:        "NoMatch",
	ErrorNoAlternative:  "NoAlternativeMatches",
	ErrorTrailingInput:  "TrailingInput",
	ErrorIllegalLiteral: "IllegalLiteral",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

var errorKindSentinels = map[ErrorKind]error{
	ErrorNoMatch:        ErrNoMatch,
	ErrorNoAlternative:  ErrNoAlternative,
	ErrorTrailingInput:  ErrTrailingInput,
	ErrorIllegalLiteral: ErrIllegalLiteral,
}

// MatchError is a parse-time failure with the offending span [Start, End)
// and the text found there.
type MatchError struct {
	Kind    ErrorKind
	Message string
	Start   int
	End     int
	Text    string
}

func (e *MatchError) Error() string {
	return fmt.Sprintf("%s: %q at %d:%d", e.Message, e.Text, e.Start, e.End)
}

// Is lets errors.Is compare a MatchError against the kind sentinels.
func (e *MatchError) Is(target error) bool {
	return errorKindSentinels[e.Kind] == target
}

func newMatchError(kind ErrorKind, text string, start, end int, format string, args ...any) *MatchError {
	return &MatchError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Start:   start,
		End:     end,
		Text:    text[start:end],
	}
}
