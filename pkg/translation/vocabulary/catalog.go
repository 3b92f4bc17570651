// Package vocabulary holds the built-in sign catalog used for constrained
// matching before a full generative call. The catalog is fixed at build
// time; per-user signs live in the knowledge base instead.
package vocabulary

import (
	"fmt"
	"strings"
)

// Sign is one catalog entry: the sign's canonical name, how the gesture
// looks, the spoken sentence it translates to, and its gloss notation.
type Sign struct {
	Name        string
	Description string
	Translation string
	Gloss       string
}

var builtinSigns = []Sign{
	{Name: "HELP", Description: "Fist on palm lifting", Translation: "I need help!", Gloss: "HELP"},
	{Name: "EMERGENCY", Description: "Shaking hand or Cross on shoulder", Translation: "This is an emergency!", Gloss: "EMERGENCY"},
	{Name: "STOP", Description: "Chop on palm", Translation: "Stop", Gloss: "STOP"},
	{Name: "PAIN", Description: "Fingers jabbing", Translation: "I am in pain.", Gloss: "PAIN"},
	{Name: "HELLO", Description: "Salute", Translation: "Hello", Gloss: "HELLO"},
	{Name: "GOODBYE", Description: "Wave", Translation: "Goodbye", Gloss: "GOODBYE"},
	{Name: "YES", Description: "Fist nod", Translation: "Yes", Gloss: "YES"},
	{Name: "NO", Description: "Two fingers tap thumb", Translation: "No", Gloss: "NO"},
	{Name: "GOOD", Description: "Thumbs up", Translation: "Good", Gloss: "GOOD"},
	{Name: "BAD", Description: "Thumbs down", Translation: "Bad", Gloss: "BAD"},
	{Name: "ME", Description: "Point to self", Translation: "Me", Gloss: "ME"},
	{Name: "YOU", Description: "Point to camera", Translation: "You", Gloss: "YOU"},
	{Name: "EAT", Description: "Hand to mouth", Translation: "Eat", Gloss: "EAT"},
	{Name: "DRINK", Description: "Cup to mouth", Translation: "Drink", Gloss: "DRINK"},
	{Name: "SLEEP", Description: "Hand dragging down face", Translation: "Sleep", Gloss: "SLEEP"},
	{Name: "PHONE", Description: "Call me gesture", Translation: "Phone", Gloss: "PHONE"},
	{Name: "CAR", Description: "Steering wheel", Translation: "Car", Gloss: "CAR"},
	{Name: "TIME", Description: "Tap wrist", Translation: "Time", Gloss: "TIME"},
	{Name: "THANK YOU", Description: "Chin to forward", Translation: "Thank you", Gloss: "THANK YOU"},
	{Name: "PLEASE", Description: "Rub chest flat", Translation: "Please", Gloss: "PLEASE"},
	{Name: "SORRY", Description: "Rub chest fist", Translation: "Sorry", Gloss: "SORRY"},
	{Name: "I LOVE YOU", Description: "Spider-man hand", Translation: "I love you.", Gloss: "I LOVE YOU"},
	{Name: "HAPPY", Description: "Patting chest", Translation: "Happy", Gloss: "HAPPY"},
	{Name: "SAD", Description: "Dragging hands down face", Translation: "Sad", Gloss: "SAD"},
	{Name: "APPLAUSE", Description: "Waving hands", Translation: "Applause", Gloss: "APPLAUSE"},
}

// Replies that mean "no catalog match", checked after normalization.
var noMatchSentinels = map[string]struct{}{
	"try again":      {},
	"tryagain":       {},
	"unclear":        {},
	"no match":       {},
	"does not match": {},
}

// Catalog is the immutable sign list plus the lookup structures derived
// from it. Build it once at startup and share it; all methods are safe
// for concurrent use.
type Catalog struct {
	signs         []Sign
	byTranslation map[string]int
	byName        map[string]int
	prompt        string
}

func NewCatalog() *Catalog {
	c := &Catalog{
		signs:         make([]Sign, len(builtinSigns)),
		byTranslation: make(map[string]int, len(builtinSigns)),
		byName:        make(map[string]int, len(builtinSigns)),
	}
	copy(c.signs, builtinSigns)
	for i, sign := range c.signs {
		c.byTranslation[Normalize(sign.Translation)] = i
		c.byName[sign.Name] = i
	}
	c.prompt = buildPrompt(c.signs)
	return c
}

// Signs returns a copy of the catalog so callers cannot mutate it.
func (c *Catalog) Signs() []Sign {
	out := make([]Sign, len(c.signs))
	copy(out, c.signs)
	return out
}

func (c *Catalog) Len() int {
	return len(c.signs)
}

// Prompt returns the matching instruction block: every sign as a numbered
// line, then the rules, including the "Try again" escape hatch.
func (c *Catalog) Prompt() string {
	return c.prompt
}

// Match tests a model reply against the catalog. Only exact equality of
// the normalized reply with a sign's spoken translation counts; sentinel
// replies and near-misses report no match so the caller can fall through
// to the full backend.
func (c *Catalog) Match(reply string) (Sign, bool) {
	normalized := Normalize(reply)
	if normalized == "" {
		return Sign{}, false
	}
	if _, sentinel := noMatchSentinels[normalized]; sentinel {
		return Sign{}, false
	}
	if i, ok := c.byTranslation[normalized]; ok {
		return c.signs[i], true
	}
	return Sign{}, false
}

// Translation returns the spoken form for a sign name.
func (c *Catalog) Translation(name string) (string, bool) {
	if i, ok := c.byName[strings.ToUpper(name)]; ok {
		return c.signs[i].Translation, true
	}
	return "", false
}

// Normalize trims whitespace and edge punctuation and case-folds, so
// "I need help!" and "i need help" compare equal. Interior punctuation
// is preserved.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, ".,!?")
	s = strings.TrimSpace(s)
	return strings.ToLower(s)
}

func buildPrompt(signs []Sign) string {
	var sb strings.Builder
	sb.WriteString("VOCABULARY LIST:\n\n")
	for i, sign := range signs {
		fmt.Fprintf(&sb, "  %d. %s (%s)\n", i+1, sign.Name, sign.Description)
	}
	sb.WriteString("\nINSTRUCTION:\n")
	sb.WriteString("- If the motion clearly matches \"HELP\", return \"I need help!\".\n")
	sb.WriteString("- If the motion matches \"EMERGENCY\", return \"This is an emergency!\".\n")
	sb.WriteString("- If the motion matches \"PAIN\", return \"I am in pain.\".\n")
	sb.WriteString("- If the motion matches \"I LOVE YOU\", return \"I love you.\".\n")
	sb.WriteString("- For other vocabulary items, return the exact translation shown above.\n")
	sb.WriteString("- If the motion is unclear or does not match any vocabulary item, return \"Try again\".\n")
	sb.WriteString("- Return ONLY the translation text, nothing else. No explanations.\n")
	return sb.String()
}
