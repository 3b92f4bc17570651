package vocabulary

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"I need help!", "i need help"},
		{"  Hello  ", "hello"},
		{"Stop.", "stop"},
		{"This is an emergency!", "this is an emergency"},
		{"don't", "don't"}, // interior punctuation survives
		{"?!", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCatalogMatch(t *testing.T) {
	c := NewCatalog()

	cases := []struct {
		name     string
		reply    string
		wantSign string
		wantOK   bool
	}{
		{"exact translation", "I need help!", "HELP", true},
		{"case and punctuation folded", "i need help", "HELP", true},
		{"trailing whitespace", "  Hello  ", "HELLO", true},
		{"sentinel try again", "Try again", "", false},
		{"sentinel unclear", "Unclear", "", false},
		{"free text miss", "The person is waving both hands above their head", "", false},
		{"empty reply", "", "", false},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			sign, ok := c.Match(tt.reply)
			if ok != tt.wantOK {
				t.Fatalf("Match(%q) ok = %v, want %v", tt.reply, ok, tt.wantOK)
			}
			if sign.Name != tt.wantSign {
				t.Errorf("Match(%q) sign = %q, want %q", tt.reply, sign.Name, tt.wantSign)
			}
		})
	}
}

func TestCatalogPrompt(t *testing.T) {
	c := NewCatalog()
	prompt := c.Prompt()

	if !strings.HasPrefix(prompt, "VOCABULARY LIST:") {
		t.Error("prompt should open with the vocabulary list header")
	}
	if !strings.Contains(prompt, "1. HELP (Fist on palm lifting)") {
		t.Error("prompt should number each sign with its description")
	}
	if !strings.Contains(prompt, `return "Try again"`) {
		t.Error("prompt must include the no-match escape hatch")
	}
	// Every catalog sign gets a line.
	for _, sign := range c.Signs() {
		if !strings.Contains(prompt, sign.Name) {
			t.Errorf("prompt missing sign %s", sign.Name)
		}
	}
}

func TestCatalogTranslation(t *testing.T) {
	c := NewCatalog()

	got, ok := c.Translation("help")
	if !ok || got != "I need help!" {
		t.Errorf("Translation(help) = %q, %v", got, ok)
	}
	if _, ok := c.Translation("NOT A SIGN"); ok {
		t.Error("unknown name should not resolve")
	}
}

func TestCatalogSignsIsACopy(t *testing.T) {
	c := NewCatalog()
	signs := c.Signs()
	signs[0].Translation = "mutated"

	if got, _ := c.Match("I need help!"); got.Translation == "mutated" {
		t.Error("mutating the returned slice must not change the catalog")
	}
}
