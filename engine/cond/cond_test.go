package cond

import (
	"strings"
	"testing"
)

func testEnv() map[string]any {
	locations := map[string]string{
		"brass-key": "off-stage",
		"lamp":      "player",
		"guard":     "hallway",
	}
	return map[string]any{
		"verb":        "push",
		"noun":        "slab",
		"second":      "",
		"topic":       "",
		"player_room": "hallway",
		"exists": func(id string) bool {
			_, ok := locations[id]
			return ok
		},
		"offstage": func(id string) bool {
			return locations[id] == "off-stage"
		},
		"carried": func(id string) bool {
			return locations[id] == "player"
		},
		"in_room": func(id, room string) bool {
			return locations[id] == room
		},
		"prop": func(id, name string) any {
			if id == "lamp" && name == "lit" {
				return true
			}
			return nil
		},
	}
}

func TestEval_EmptyConditionIsTrue(t *testing.T) {
	ev := New()
	ok, err := ev.Eval("", testEnv())
	if err != nil || !ok {
		t.Errorf("expected true, got %v, %v", ok, err)
	}
}

func TestEval_Predicates(t *testing.T) {
	ev := New()
	cases := []struct {
		cond string
		want bool
	}{
		{`offstage("brass-key")`, true},
		{`offstage("lamp")`, false},
		{`carried("lamp")`, true},
		{`in_room("guard", "hallway")`, true},
		{`exists("ghost")`, false},
		{`verb == "push" and noun == "slab"`, true},
		{`player_room == "garden"`, false},
		{`prop("lamp", "lit") == true`, true},
		{`not carried("guard")`, true},
	}
	for _, tc := range cases {
		got, err := ev.Eval(tc.cond, testEnv())
		if err != nil {
			t.Errorf("%s: unexpected error %v", tc.cond, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.cond, got, tc.want)
		}
	}
}

func TestEval_MalformedExpression(t *testing.T) {
	ev := New()
	_, err := ev.Eval(`offstage(`, testEnv())
	if err == nil {
		t.Fatal("expected compile error")
	}
	if !strings.Contains(err.Error(), "compiling condition") {
		t.Errorf("unexpected error text: %v", err)
	}
}

func TestEval_NonBooleanResult(t *testing.T) {
	ev := New()
	_, err := ev.Eval(`"just a string"`, testEnv())
	if err == nil {
		t.Fatal("expected non-boolean error")
	}
}

func TestEval_CachesPrograms(t *testing.T) {
	ev := New()
	for i := 0; i < 2; i++ {
		ok, err := ev.Eval(`carried("lamp")`, testEnv())
		if err != nil || !ok {
			t.Fatalf("pass %d: got %v, %v", i, ok, err)
		}
	}
	if len(ev.programs) != 1 {
		t.Errorf("expected one cached program, got %d", len(ev.programs))
	}
}
