package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	ColorError   = lipgloss.Color("#EF4444")
	ColorSuccess = lipgloss.Color("#10B981")
	ColorMuted   = lipgloss.Color("#6B7280")
	ColorAccent  = lipgloss.Color("#06B6D4")

	LocationStyle   = lipgloss.NewStyle().Bold(true)
	ErrorStyle      = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	CaretStyle      = lipgloss.NewStyle().Foreground(ColorError)
	OKStyle         = lipgloss.NewStyle().Foreground(ColorSuccess)
	TokenLabelStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	SuggestionStyle = lipgloss.NewStyle().Foreground(ColorAccent)
	HintStyle       = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
)

// PrettyEncoder renders an entry for a terminal: the input with a caret
// under the offending span, then the ranked suggestions.
type PrettyEncoder struct {
	w     io.Writer
	entry Entry
}

func NewPrettyEncoder(w io.Writer) *PrettyEncoder {
	return &PrettyEncoder{w: w}
}

func (e *PrettyEncoder) Encode(entry Entry) error {
	e.entry = entry
	return write(e.w, e)
}

func (e *PrettyEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	r := e.entry.Result

	if loc := e.entry.Location(); loc != "" {
		sb.WriteString(LocationStyle.Render(loc))
		sb.WriteString(": ")
	}
	if r.OK() {
		sb.WriteString(OKStyle.Render("ok"))
		sb.WriteByte('\n')
		for _, tok := range r.Tokens {
			fmt.Fprintf(&sb, "  %s %s\n", TokenLabelStyle.Render(fmt.Sprintf("%-12s", tok.Name())), tok.Text)
		}
		return []byte(sb.String()), nil
	}

	sb.WriteString(ErrorStyle.Render(r.Err.Message))
	sb.WriteByte('\n')
	sb.WriteString("  ")
	sb.WriteString(r.Input)
	sb.WriteByte('\n')
	sb.WriteString("  ")
	sb.WriteString(strings.Repeat(" ", lipgloss.Width(r.Input[:r.Err.Start])))
	sb.WriteString(CaretStyle.Render(Caret(r.Err.Start, r.Err.End)))
	sb.WriteByte('\n')

	if hint := r.DidYouMean(); hint != "" {
		fmt.Fprintf(&sb, "  did you mean %s?\n", SuggestionStyle.Render(hint))
	}
	for _, s := range r.Suggestions {
		sb.WriteString("  ")
		sb.WriteString(SuggestionStyle.Render(s.Text))
		if s.Hint != "" {
			sb.WriteString("  ")
			sb.WriteString(HintStyle.Render(s.Hint))
		}
		sb.WriteByte('\n')
	}
	return []byte(sb.String()), nil
}

// Caret underlines the span [start, end): "^" followed by "~" for the
// remaining characters. An empty span still gets a single "^".
func Caret(start, end int) string {
	if end <= start {
		return "^"
	}
	return "^" + strings.Repeat("~", end-start-1)
}
