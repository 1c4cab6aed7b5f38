package parser

import "testing"

func TestParse_Commands(t *testing.T) {
	cases := []struct {
		input string
		want  Command
	}{
		{"north", Command{Kind: KindDirection, Direction: "north"}},
		{"n", Command{Kind: KindDirection, Direction: "north"}},
		{"go north", Command{Kind: KindDirection, Direction: "north"}},
		{"walk up", Command{Kind: KindDirection, Direction: "up"}},
		{"GO WEST", Command{Kind: KindDirection, Direction: "west"}},

		{"look", Command{Kind: KindMeta, Verb: "look"}},
		{"l", Command{Kind: KindMeta, Verb: "look"}},
		{"i", Command{Kind: KindMeta, Verb: "inventory"}},
		{"inventory", Command{Kind: KindMeta, Verb: "inventory"}},
		{"undo", Command{Kind: KindMeta, Verb: "undo"}},
		{"save", Command{Kind: KindMeta, Verb: "save"}},
		{"z", Command{Kind: KindMeta, Verb: "wait"}},
		{"help", Command{Kind: KindMeta, Verb: "help"}},
		{"menu", Command{Kind: KindMeta, Verb: "menu"}},
		{"save game", Command{Kind: KindMeta, Verb: "save"}},
		{"load game", Command{Kind: KindMeta, Verb: "load"}},
		{"look around", Command{Kind: KindMeta, Verb: "look"}},

		{"take lamp", Command{Kind: KindAction, Verb: "take", Noun: "lamp"}},
		{"get the lamp", Command{Kind: KindAction, Verb: "take", Noun: "lamp"}},
		{"pick up lamp", Command{Kind: KindAction, Verb: "take", Noun: "lamp"}},
		{"x lamp", Command{Kind: KindAction, Verb: "examine", Noun: "lamp"}},
		{"look at lamp", Command{Kind: KindAction, Verb: "examine", Noun: "lamp"}},
		{"read a note", Command{Kind: KindAction, Verb: "examine", Noun: "note"}},
		{"don cloak", Command{Kind: KindAction, Verb: "wear", Noun: "cloak"}},
		{"shut drawer", Command{Kind: KindAction, Verb: "close", Noun: "drawer"}},
		{"devour apple", Command{Kind: KindAction, Verb: "eat", Noun: "apple"}},
		{"shove slab", Command{Kind: KindAction, Verb: "push", Noun: "slab"}},
		{"yank lever", Command{Kind: KindAction, Verb: "pull", Noun: "lever"}},

		{"put brass key in drawer", Command{Kind: KindAction, Verb: "put", Noun: "brass key", Second: "drawer"}},
		{"insert key into lock", Command{Kind: KindAction, Verb: "put", Noun: "key", Second: "lock"}},
		{"put lamp on desk", Command{Kind: KindAction, Verb: "put", Noun: "lamp", Second: "desk"}},
		{"unlock oak door with brass key", Command{Kind: KindAction, Verb: "unlock", Noun: "oak door", Second: "brass key"}},
		{"give note to guard", Command{Kind: KindAction, Verb: "give", Noun: "note", Second: "guard"}},

		{"ask guard about password", Command{Kind: KindAction, Verb: "ask", Noun: "guard", Topic: "password"}},
		{"ask the guard about the password", Command{Kind: KindAction, Verb: "ask", Noun: "guard", Topic: "password"}},
		{"tell guard about door", Command{Kind: KindAction, Verb: "tell", Noun: "guard", Topic: "door"}},
		{"talk to guard", Command{Kind: KindAction, Verb: "talk", Noun: "guard"}},
		{"ask guard", Command{Kind: KindAction, Verb: "ask", Noun: "guard"}},

		{"", Command{Kind: KindUnknown}},
		{"   ", Command{Kind: KindUnknown}},
		{"go sideways", Command{Kind: KindUnknown}},
	}

	for _, tc := range cases {
		got := Parse(tc.input)
		if got != tc.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tc.input, got, tc.want)
		}
	}
}

func TestParse_FreeFormStaysAction(t *testing.T) {
	// Unrecognized verbs still parse structurally; the engine decides what
	// to do with them.
	got := Parse("juggle the lamps")
	if got.Kind != KindAction || got.Verb != "juggle" || got.Noun != "lamps" {
		t.Errorf("got %+v", got)
	}
}

func TestParse_PrepositionNeedsBothSides(t *testing.T) {
	// A leading or trailing preposition is part of the noun, not a split.
	got := Parse("look in mirror")
	if got.Verb != "look" || got.Noun != "in mirror" {
		t.Errorf("got %+v", got)
	}
}
