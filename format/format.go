// Package format renders parse results for people and programs, and
// rewrites command text into canonical spacing.
package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/cmdtree/parser"
)

// Entry is one parsed command and where it was read from. File is empty
// for commands given on the command line; Line is 1-based, 0 if unknown.
type Entry struct {
	File   string
	Line   int
	Result *parser.Result
}

// Location returns "file:line" or the empty string.
func (e Entry) Location() string {
	switch {
	case e.File != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d", e.File, e.Line)
	case e.File != "":
		return e.File
	case e.Line > 0:
		return fmt.Sprintf("%d", e.Line)
	}
	return ""
}

type Encoder interface {
	encoding.TextMarshaler
	Encode(entry Entry) error
}

// NewEncoder returns the encoder registered under name: "json", "line"
// or "pretty".
func NewEncoder(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "json":
		return NewJSONEncoder(w), nil
	case "line", "":
		return NewLineEncoder(w), nil
	case "pretty":
		return NewPrettyEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format %q", name)
}

func write(w io.Writer, m encoding.TextMarshaler) error {
	text, err := m.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
