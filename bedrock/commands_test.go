package bedrock

import (
	"testing"

	"github.com/dhamidi/cmdtree/grammar"
	"github.com/dhamidi/cmdtree/parser"
	"github.com/google/go-cmp/cmp"
)

func newParser(t *testing.T) *parser.Parser {
	t.Helper()
	p, err := parser.New(Commands())
	if err != nil {
		t.Fatalf("parser.New: %v", err)
	}
	return p
}

func TestCommandsValid(t *testing.T) {
	p := newParser(t)
	inputs := []string{
		"ability @a worldbuilder true",
		"ability Steve mute",
		"ability   @e  [rm=-1.,scores={\"1\"=1, \"2\"=..1, \"3\"=1.., \"4\"=1..1, \"5\"=!1, \"6\"=!..1, \"7\"=!1.., \"8\"=!1..1}] mayfly",
		"alwaysday",
		"daylock false",
		"camera @s clear",
		"camera @a fade",
		"camera @a fade time 0.5 1 0.5",
		"camera @a fade time 1 2 3 color 255 0 0",
		"camera @a fade color 10 20 30",
		"gamemode creative",
		"gamemode 1 @p",
		"kill",
		"kill @e[type=!player,r=10]",
		"say hello, world",
		"tag @s add builder",
		"tag @a remove \"red team\"",
		"tag Alex list",
		"tp 10 64 -10",
		"tp ~ ~1 ~",
		"tp ^ ^ ^2",
		"tp @s ~ ~ ~",
		"teleport Steve Alex",
		"weather rain",
		"weather thunder 6000",
		"weather query",
		"xp 100",
		"xp 5L @s",
		"execute @a ~ ~ ~ say hi",
		"execute @a ~ ~1 ~ execute @s ^ ^ ^1 kill @e[type=cow]",
		"execute @e[tag=\"abc \\\"\",name=e] ~~~ say hello \" ]",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			if r := p.Parse(in); !r.OK() {
				t.Errorf("Parse(%q) failed: %v (tokens %d)", in, r.Err, len(r.Tokens))
			}
		})
	}
}

func TestCommandsInvalid(t *testing.T) {
	p := newParser(t)
	tests := []struct {
		input string
		text  string
	}{
		{"fly @s", "fly"},
		{"ability @a swim", "swim"},
		{"gamemode hardcore", "hardcore"},
		{"weather rain soon", "soon"},
		{"camera @s fade time 1 2", ""},
		{"kill @a extra", "extra"},
		{"tag @s add", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r := p.Parse(tt.input)
			if r.OK() {
				t.Fatalf("Parse(%q) succeeded", tt.input)
			}
			if r.Err.Text != tt.text {
				t.Errorf("offending word = %q, want %q", r.Err.Text, tt.text)
			}
		})
	}
}

func TestExecuteTokens(t *testing.T) {
	p := newParser(t)
	r := p.Parse("execute @p ~ ~ ~ say hi there")
	if !r.OK() {
		t.Fatalf("Parse failed: %v", r.Err)
	}
	var got []string
	for _, tok := range r.Tokens {
		got = append(got, tok.Name()+"="+tok.Text)
	}
	want := []string{
		"command=execute", "selector=@p", "x=~", "y=~", "z=~", "command=say", "message=hi there",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestCommandSuggestions(t *testing.T) {
	p := newParser(t)
	r := p.Parse("a")
	if r.OK() {
		t.Fatal("Parse(\"a\") succeeded")
	}
	want := []string{"ability", "alwaysday", "camera", "daylock", "gamemode", "say", "tag", "weather"}
	if diff := cmp.Diff(want, r.SuggestionTexts()); diff != "" {
		t.Errorf("suggestions mismatch (-want +got):\n%s", diff)
	}
}

func TestNames(t *testing.T) {
	want := []string{
		"ability", "alwaysday", "daylock", "camera", "gamemode", "kill", "say",
		"tag", "tp", "teleport", "weather", "xp", "execute",
	}
	if diff := cmp.Diff(want, Names()); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
}

func TestCommandsGraph(t *testing.T) {
	g := Commands()
	if err := g.Err(); err != nil {
		t.Fatalf("Err = %v", err)
	}
	if _, err := g.VerifyEBNF(); err != nil {
		t.Errorf("VerifyEBNF: %v", err)
	}
	if g.Frozen() {
		t.Error("fresh graph is frozen")
	}
}

func TestExecuteIsCyclic(t *testing.T) {
	g := Commands()
	var execute grammar.Node
	for _, n := range g.Root().Children() {
		if n.Words()[0] == "execute" {
			execute = n
		}
	}
	if !execute.Valid() {
		t.Fatal("execute not found")
	}

	seen := map[grammar.ID]bool{}
	queue := execute.Children()
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if n == execute {
			return
		}
		if seen[n.ID()] {
			continue
		}
		seen[n.ID()] = true
		queue = append(queue, n.Children()...)
	}
	t.Error("execute does not reach itself")
}
