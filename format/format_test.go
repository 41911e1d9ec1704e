package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dhamidi/cmdtree/bedrock"
	"github.com/dhamidi/cmdtree/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParser(t *testing.T) *parser.Parser {
	t.Helper()
	p, err := parser.New(bedrock.Commands())
	require.NoError(t, err)
	return p
}

func TestNormalize(t *testing.T) {
	p := newParser(t)

	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"collapse runs", "ability   @a   mute  true", "ability @a mute true", true},
		{"keep adjacency", "kill @e[type=cow,r=5]", "kill @e[type=cow,r=5]", true},
		{"collapse inside filters", "ability   @e  [rm=1,  scores={a=1}]   mute  ", "ability @e [rm=1, scores={a=1}] mute", true},
		{"leading separators", "   kill", "kill", true},
		{"trailing terminators kept", "kill @a  ]", "kill @a ]", true},
		{"message untouched", "say  hello   world", "say hello   world", true},
		{"failure unchanged", "ability  @a  swim", "ability  @a  swim", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(p, tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeSeparatorCount(t *testing.T) {
	p, err := parser.New(bedrock.Commands(), parser.WithSeparatorCount(2))
	require.NoError(t, err)

	got, ok := Normalize(p, "ability  @a  mute  true")
	assert.True(t, ok)
	assert.Equal(t, "ability  @a  mute  true", got)

	got, ok = Normalize(p, "  kill  @e[r=5]  ")
	assert.True(t, ok)
	assert.Equal(t, "kill  @e[r=5]", got)

	got, ok = Normalize(p, "ability @a mute true")
	assert.False(t, ok)
	assert.Equal(t, "ability @a mute true", got)
}

func TestNormalizeText(t *testing.T) {
	p := newParser(t)
	in := "# setup\n\nkill   @a\nsay  hi\nbogus   line\n"
	want := "# setup\n\nkill @a\nsay hi\nbogus   line\n"
	assert.Equal(t, want, NormalizeText(p, in, "#"))
}

func TestIsCommand(t *testing.T) {
	assert.True(t, IsCommand("kill", "#"))
	assert.False(t, IsCommand("   ", "#"))
	assert.False(t, IsCommand("  # note", "#"))
	assert.True(t, IsCommand("# not a comment here", ""))
}

func TestDiff(t *testing.T) {
	diff, err := Diff("load.mcfunction", "kill   @a\nsay hi\n", "kill @a\nsay hi\n")
	require.NoError(t, err)
	assert.Contains(t, diff, "--- a/load.mcfunction")
	assert.Contains(t, diff, "+++ b/load.mcfunction")
	assert.Contains(t, diff, "-kill   @a")
	assert.Contains(t, diff, "+kill @a")

	diff, err = Diff("same", "x\n", "x\n")
	require.NoError(t, err)
	assert.Empty(t, diff)
}

func TestLineEncoder(t *testing.T) {
	p := newParser(t)

	var buf bytes.Buffer
	enc := NewLineEncoder(&buf)
	require.NoError(t, enc.Encode(Entry{File: "f.mcfunction", Line: 3, Result: p.Parse("kill @a")}))
	assert.Equal(t, "f.mcfunction:3\tcommand=kill\tselector=@a\n", buf.String())

	buf.Reset()
	require.NoError(t, enc.Encode(Entry{File: "f.mcfunction", Line: 2, Result: p.Parse("ability @a mu")}))
	assert.Equal(t, "f.mcfunction:2:12: no alternative matches \"mu\" (did you mean \"mute\"?); expected one of: mute\n", buf.String())

	buf.Reset()
	require.NoError(t, enc.Encode(Entry{Result: p.Parse("fly")}))
	assert.True(t, strings.HasPrefix(buf.String(), "1: no alternative matches \"fly\""), buf.String())
}

func TestJSONEncoder(t *testing.T) {
	p := newParser(t)

	var buf bytes.Buffer
	require.NoError(t, NewJSONEncoder(&buf).Encode(Entry{File: "f", Line: 1, Result: p.Parse("ability @a mu")}))

	var decoded struct {
		File   string `json:"file"`
		Line   int    `json:"line"`
		Result struct {
			Tokens []struct {
				Text string `json:"text"`
			} `json:"tokens"`
			Error struct {
				Text string `json:"text"`
			} `json:"error"`
			Suggestions []string `json:"suggestions"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "f", decoded.File)
	assert.Equal(t, 1, decoded.Line)
	assert.Len(t, decoded.Result.Tokens, 2)
	assert.Equal(t, "mu", decoded.Result.Error.Text)
	assert.Equal(t, []string{"mute"}, decoded.Result.Suggestions)
}

func TestPrettyEncoder(t *testing.T) {
	p := newParser(t)

	var buf bytes.Buffer
	require.NoError(t, NewPrettyEncoder(&buf).Encode(Entry{Result: p.Parse("ability @a mu")}))
	out := buf.String()
	assert.Contains(t, out, "no alternative matches")
	assert.Contains(t, out, "ability @a mu")
	assert.Contains(t, out, "^~")
	assert.Contains(t, out, "mute")

	buf.Reset()
	require.NoError(t, NewPrettyEncoder(&buf).Encode(Entry{File: "x", Line: 4, Result: p.Parse("kill")}))
	assert.Contains(t, buf.String(), "x:4")
	assert.Contains(t, buf.String(), "ok")
}

func TestCaret(t *testing.T) {
	assert.Equal(t, "^", Caret(3, 3))
	assert.Equal(t, "^", Caret(3, 4))
	assert.Equal(t, "^~~", Caret(0, 3))
}

func TestNewEncoder(t *testing.T) {
	for _, name := range []string{"json", "line", "pretty", ""} {
		enc, err := NewEncoder(name, &bytes.Buffer{})
		require.NoError(t, err, name)
		assert.NotNil(t, enc)
	}
	_, err := NewEncoder("xml", &bytes.Buffer{})
	assert.Error(t, err)
}

func TestEntryLocation(t *testing.T) {
	assert.Equal(t, "a:2", Entry{File: "a", Line: 2}.Location())
	assert.Equal(t, "a", Entry{File: "a"}.Location())
	assert.Equal(t, "", Entry{}.Location())
}
