package format

import (
	"fmt"
	"io"
	"strings"
)

// LineEncoder writes one line per entry. Failures use the
// "file:line:col: message" form understood by editors; successes list the
// tokens as tab-separated name=text pairs.
type LineEncoder struct {
	w     io.Writer
	entry Entry
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(entry Entry) error {
	e.entry = entry
	return write(e.w, e)
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	r := e.entry.Result
	loc := e.entry.Location()

	if r.OK() {
		if loc != "" {
			sb.WriteString(loc)
			sb.WriteByte('\t')
		}
		for i, tok := range r.Tokens {
			if i > 0 {
				sb.WriteByte('\t')
			}
			fmt.Fprintf(&sb, "%s=%s", tok.Name(), tok.Text)
		}
		sb.WriteByte('\n')
		return []byte(sb.String()), nil
	}

	if loc != "" {
		fmt.Fprintf(&sb, "%s:%d: ", loc, r.Err.Start+1)
	} else {
		fmt.Fprintf(&sb, "%d: ", r.Err.Start+1)
	}
	fmt.Fprintf(&sb, "%s %q", r.Err.Message, r.Err.Text)
	if hint := r.DidYouMean(); hint != "" {
		fmt.Fprintf(&sb, " (did you mean %q?)", hint)
	}
	if texts := r.SuggestionTexts(); len(texts) > 0 {
		fmt.Fprintf(&sb, "; expected one of: %s", strings.Join(texts, ", "))
	}
	sb.WriteByte('\n')
	return []byte(sb.String()), nil
}
