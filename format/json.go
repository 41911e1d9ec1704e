package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/cmdtree/parser"
)

type JSONEncoder struct {
	w     io.Writer
	entry Entry
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(entry Entry) error {
	e.entry = entry
	return write(e.w, e)
}

type jsonEntry struct {
	File   string         `json:"file,omitempty"`
	Line   int            `json:"line,omitempty"`
	Result *parser.Result `json:"result"`
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data, err := json.MarshalIndent(jsonEntry{
		File:   e.entry.File,
		Line:   e.entry.Line,
		Result: e.entry.Result,
	}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
