// Package parser turns raw player input into structured commands. It does no
// world lookup; nouns come out as text and the engine resolves them against
// scope.
package parser

import (
	"strings"
)

// Command kinds.
const (
	KindMeta      = "meta"
	KindDirection = "direction"
	KindAction    = "action"
	KindUnknown   = "unknown"
)

// Command is the structured form of one line of input.
type Command struct {
	Kind      string
	Verb      string
	Noun      string
	Second    string
	Topic     string
	Direction string
}

// metaVerbs are handled by the engine loop itself, outside the rulebook.
var metaVerbs = map[string]bool{
	"save":      true,
	"load":      true,
	"undo":      true,
	"help":      true,
	"wait":      true,
	"menu":      true,
	"look":      true,
	"inventory": true,
}

// directions maps every accepted spelling to its canonical direction.
var directions = map[string]string{
	"north": "north", "n": "north",
	"south": "south", "s": "south",
	"east": "east", "e": "east",
	"west": "west", "w": "west",
	"northeast": "northeast", "ne": "northeast",
	"northwest": "northwest", "nw": "northwest",
	"southeast": "southeast", "se": "southeast",
	"southwest": "southwest", "sw": "southwest",
	"up": "up", "u": "up",
	"down": "down", "d": "down",
	"in": "in", "inside": "in",
	"out": "out", "outside": "out",
}

// aliases canonicalize verb synonyms before dispatch.
var aliases = map[string]string{
	"get":     "take",
	"grab":    "take",
	"pick":    "take",
	"x":       "examine",
	"read":    "examine",
	"l":       "look",
	"i":       "inventory",
	"inv":     "inventory",
	"z":       "wait",
	"insert":  "put",
	"place":   "put",
	"press":   "push",
	"shove":   "push",
	"shift":   "push",
	"drag":    "pull",
	"tug":     "pull",
	"yank":    "pull",
	"don":     "wear",
	"consume": "eat",
	"devour":  "eat",
	"shut":    "close",
	"speak":   "talk",
}

// secondPrepositions split "put key in box" style commands. Order matters:
// longer or more specific words are not needed because the split is on whole
// tokens.
var secondPrepositions = map[string]bool{
	"in":     true,
	"into":   true,
	"inside": true,
	"on":     true,
	"onto":   true,
	"with":   true,
	"using":  true,
	"to":     true,
}

// Parse analyzes one line of input.
func Parse(input string) Command {
	words := tokenize(input)
	if len(words) == 0 {
		return Command{Kind: KindUnknown}
	}

	// Bare direction, or "go north".
	if dir, ok := directions[words[0]]; ok && len(words) == 1 {
		return Command{Kind: KindDirection, Direction: dir}
	}
	if (words[0] == "go" || words[0] == "walk") && len(words) > 1 {
		if dir, ok := directions[words[1]]; ok {
			return Command{Kind: KindDirection, Direction: dir}
		}
		return Command{Kind: KindUnknown}
	}

	verb := words[0]
	if canon, ok := aliases[verb]; ok {
		verb = canon
	}
	rest := words[1:]

	// "look at lamp" is examine; "pick up lamp" drops the particle.
	if verb == "look" && len(rest) > 0 && rest[0] == "at" {
		verb = "examine"
		rest = rest[1:]
	}
	if verb == "take" && len(rest) > 0 && rest[0] == "up" {
		rest = rest[1:]
	}
	if (verb == "talk" || verb == "ask" || verb == "tell") && len(rest) > 0 && rest[0] == "to" {
		rest = rest[1:]
	}

	// "look around" is a plain look.
	if verb == "look" && len(rest) == 1 && rest[0] == "around" {
		rest = nil
	}

	// Meta verbs match on the first token, so "save game" saves. Look is the
	// exception: with a noun it stays an action ("look in mirror").
	if metaVerbs[verb] && (len(rest) == 0 || verb != "look") {
		return Command{Kind: KindMeta, Verb: verb}
	}

	cmd := Command{Kind: KindAction, Verb: verb}

	// "ask guard about password" / "tell guard about door".
	if verb == "ask" || verb == "tell" {
		noun, topic := splitOn(rest, "about")
		cmd.Noun = noun
		cmd.Topic = topic
		return cmd
	}

	// "put key in box", "unlock door with key".
	for i, w := range rest {
		if secondPrepositions[w] && i > 0 && i < len(rest)-1 {
			cmd.Noun = strings.Join(rest[:i], " ")
			cmd.Second = strings.Join(rest[i+1:], " ")
			return cmd
		}
	}

	cmd.Noun = strings.Join(rest, " ")
	return cmd
}

// tokenize lowercases the input and strips articles.
func tokenize(input string) []string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(input)))
	words := fields[:0]
	for _, w := range fields {
		if w == "the" || w == "a" || w == "an" {
			continue
		}
		words = append(words, w)
	}
	return words
}

// splitOn joins the words before and after the first occurrence of sep. If
// sep is absent everything lands in the first part.
func splitOn(words []string, sep string) (string, string) {
	for i, w := range words {
		if w == sep {
			return strings.Join(words[:i], " "), strings.Join(words[i+1:], " ")
		}
	}
	return strings.Join(words, " "), ""
}
