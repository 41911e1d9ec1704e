package pattern

import (
	"testing"
)

func TestMatchAt(t *testing.T) {
	p := MustCompile(`[0-9]+`)

	tests := []struct {
		name  string
		text  string
		pos   int
		want  Match
		found bool
	}{
		{"at start", "123 abc", 0, Match{Text: "123", Start: 0, End: 3}, true},
		{"at offset", "abc 456", 4, Match{Text: "456", Start: 4, End: 7}, true},
		{"not anchored here", "abc 456", 0, Match{}, false},
		{"inside run", "abc 456", 5, Match{Text: "56", Start: 5, End: 7}, true},
		{"past end", "abc", 4, Match{}, false},
		{"negative", "abc", -1, Match{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.MatchAt(tt.text, tt.pos)
			if ok != tt.found {
				t.Fatalf("MatchAt(%q, %d) found = %v, want %v", tt.text, tt.pos, ok, tt.found)
			}
			if got != tt.want {
				t.Errorf("MatchAt(%q, %d) = %+v, want %+v", tt.text, tt.pos, got, tt.want)
			}
		})
	}
}

func TestMatchAtStartAnchorIsPosition(t *testing.T) {
	// \A in the anchored form refers to pos, not to the start of text.
	p := MustCompile(`b`)
	if _, ok := p.MatchAt("ab", 1); !ok {
		t.Errorf("MatchAt(%q, 1) should match", "ab")
	}
}

func TestSearchFrom(t *testing.T) {
	p := MustCompile(`[a-z]+`)

	got, ok := p.SearchFrom("12 ab 34 cd", 3)
	if !ok {
		t.Fatal("SearchFrom found nothing")
	}
	if got != (Match{Text: "ab", Start: 3, End: 5}) {
		t.Errorf("SearchFrom = %+v", got)
	}

	got, ok = p.SearchFrom("12 ab 34 cd", 5)
	if !ok || got.Start != 9 || got.Text != "cd" {
		t.Errorf("SearchFrom(5) = %+v, %v", got, ok)
	}

	if _, ok := p.SearchFrom("12 34", 0); ok {
		t.Error("SearchFrom should fail when there is no letter")
	}
}

func TestNoStateBetweenCalls(t *testing.T) {
	p := MustCompile(`x+`)
	text := "xx yy xxx"

	first, _ := p.SearchFrom(text, 6)
	second, _ := p.SearchFrom(text, 0)
	again, _ := p.SearchFrom(text, 6)

	if second.Start != 0 {
		t.Errorf("second search started at %d, want 0", second.Start)
	}
	if first != again {
		t.Errorf("repeated search differs: %+v vs %+v", first, again)
	}
}

func TestEmptyMatch(t *testing.T) {
	p := MustCompile(`[a-z]*`)
	got, ok := p.MatchAt("123", 0)
	if !ok {
		t.Fatal("empty match should succeed")
	}
	if got.Start != 0 || got.End != 0 || got.Text != "" {
		t.Errorf("MatchAt = %+v, want empty at 0", got)
	}
	got, ok = p.MatchAt("abc", 3)
	if !ok || got.Start != 3 || got.End != 3 {
		t.Errorf("MatchAt at end = %+v, %v", got, ok)
	}
}

func TestFull(t *testing.T) {
	p := MustCompile(`-?[0-9]+`)
	tests := []struct {
		in   string
		want bool
	}{
		{"12", true},
		{"-12", true},
		{"12a", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := p.Full(tt.in); got != tt.want {
			t.Errorf("Full(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClass(t *testing.T) {
	p := MustCompile(`[^` + Class(`]^-\ab`) + `]+`)
	got, ok := p.MatchAt(`xyz]`, 0)
	if !ok || got.Text != "xyz" {
		t.Errorf("MatchAt = %+v, %v", got, ok)
	}
	if _, ok := p.MatchAt(`\x`, 0); ok {
		t.Error("backslash should be excluded")
	}
}

func TestCompileError(t *testing.T) {
	if _, err := Compile(`(`); err == nil {
		t.Error("Compile should fail on unbalanced parenthesis")
	}
}

func TestFullConsidersLaterAlternatives(t *testing.T) {
	p := MustCompile(`a|ab`)
	if m, _ := p.MatchAt("ab", 0); m.Text != "a" {
		t.Errorf("MatchAt = %q, want leftmost alternative %q", m.Text, "a")
	}
	if !p.Full("ab") {
		t.Error(`Full("ab") = false, want true`)
	}
}
