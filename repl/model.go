// Package repl is an interactive prompt that parses the command as it is
// typed and offers completions for the word under the cursor.
package repl

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dhamidi/cmdtree/format"
	"github.com/dhamidi/cmdtree/parser"
)

// maxSuggestions is how many completions the view lists.
const maxSuggestions = 8

var (
	promptStyle   = lipgloss.NewStyle().Foreground(format.ColorAccent).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(format.ColorAccent).Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(format.ColorMuted)
)

type Model struct {
	parser     *parser.Parser
	input      textinput.Model
	result     *parser.Result
	completion parser.Completion
	selected   int
	history    []string
}

func New(p *parser.Parser) Model {
	input := textinput.New()
	input.Prompt = "> "
	input.PromptStyle = promptStyle
	input.Placeholder = "type a command"
	input.ShowSuggestions = true
	input.Focus()

	m := Model{parser: p, input: input}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab:
			m.accept()
			return m, nil
		case tea.KeyDown:
			m.move(1)
			return m, nil
		case tea.KeyUp:
			m.move(-1)
			return m, nil
		case tea.KeyEnter:
			if m.result.OK() && m.input.Value() != "" {
				m.history = append(m.history, m.input.Value())
				m.input.Reset()
				m.refresh()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refresh()
	return m, cmd
}

// refresh reparses the input and recomputes completions at the cursor.
func (m *Model) refresh() {
	value := m.input.Value()
	offset := len(string([]rune(value)[:m.input.Position()]))
	m.result = m.parser.Parse(value)
	m.completion = m.parser.Complete(value, offset)
	m.selected = 0

	lines := make([]string, len(m.completion.Suggestions))
	for i, s := range m.completion.Suggestions {
		lines[i] = value[:m.completion.Start] + s.Text
	}
	m.input.SetSuggestions(lines)
}

func (m *Model) move(delta int) {
	n := len(m.completion.Suggestions)
	if n == 0 {
		return
	}
	m.selected = (m.selected + delta + n) % n
}

// accept replaces the completion span with the selected suggestion and
// moves the cursor behind it.
func (m *Model) accept() {
	if len(m.completion.Suggestions) == 0 {
		return
	}
	value := m.input.Value()
	c := m.completion
	text := c.Suggestions[m.selected].Text
	head := value[:c.Start] + text
	m.input.SetValue(head + value[c.End:])
	m.input.SetCursor(len([]rune(head)))
	m.refresh()
}

func (m Model) Value() string {
	return m.input.Value()
}

func (m Model) Result() *parser.Result {
	return m.result
}

func (m Model) Completion() parser.Completion {
	return m.completion
}

// Selected is the index of the highlighted suggestion.
func (m Model) Selected() int {
	return m.selected
}

// History lists the commands accepted with enter, oldest first.
func (m Model) History() []string {
	return m.history
}

func (m Model) View() string {
	var sb strings.Builder
	for _, h := range m.history {
		sb.WriteString(format.OKStyle.Render("✓ "))
		sb.WriteString(h)
		sb.WriteByte('\n')
	}
	sb.WriteString(m.input.View())
	sb.WriteByte('\n')

	r := m.result
	switch {
	case r.Input == "":
	case r.OK():
		for i, tok := range r.Tokens {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(format.TokenLabelStyle.Render(tok.Name() + "="))
			sb.WriteString(tok.Text)
		}
		sb.WriteByte('\n')
	default:
		indent := lipgloss.Width(m.input.Prompt) + lipgloss.Width(r.Input[:r.Err.Start])
		sb.WriteString(strings.Repeat(" ", indent))
		sb.WriteString(format.CaretStyle.Render(format.Caret(r.Err.Start, r.Err.End)))
		sb.WriteByte('\n')
		sb.WriteString(format.ErrorStyle.Render(fmt.Sprintf("%s %q", r.Err.Message, r.Err.Text)))
		if hint := r.DidYouMean(); hint != "" {
			fmt.Fprintf(&sb, " did you mean %s?", format.SuggestionStyle.Render(hint))
		}
		sb.WriteByte('\n')
	}

	for i, s := range m.completion.Suggestions {
		if i == maxSuggestions {
			fmt.Fprintf(&sb, "  %s\n", helpStyle.Render(fmt.Sprintf("… %d more", len(m.completion.Suggestions)-i)))
			break
		}
		marker, style := "  ", format.SuggestionStyle
		if i == m.selected {
			marker, style = "› ", selectedStyle
		}
		sb.WriteString(marker)
		sb.WriteString(style.Render(s.Text))
		if s.Hint != "" {
			sb.WriteString("  ")
			sb.WriteString(format.HintStyle.Render(s.Hint))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(helpStyle.Render("tab complete • ↑/↓ select • enter accept • esc quit"))
	return sb.String()
}

// Run starts the prompt on the terminal.
func Run(p *parser.Parser) error {
	prog := tea.NewProgram(New(p))
	_, err := prog.Run()
	return err
}
