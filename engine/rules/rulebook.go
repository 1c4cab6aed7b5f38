// Package rules implements the action-resolution pipeline: authored rules in
// their before/instead/after phases around the built-in check, carry_out and
// report logic of each standard verb.
package rules

import (
	"sort"

	"github.com/nathoo/lorelock/engine/cond"
	"github.com/nathoo/lorelock/engine/world"
	"github.com/nathoo/lorelock/types"
)

// handler is the built-in logic for one verb. check validates preconditions
// and emits failure text; carryOut mutates the world silently; report emits
// the success message.
type handler struct {
	check    func(a world.Action) (bool, []string)
	carryOut func(a world.Action)
	report   func(a world.Action) []string
}

// Rulebook dispatches actions through the phase pipeline.
type Rulebook struct {
	world *world.World
	eval  *cond.Evaluator
	verbs map[string]handler
}

// New creates a rulebook bound to a world.
func New(w *world.World) *Rulebook {
	rb := &Rulebook{
		world: w,
		eval:  cond.New(),
	}
	rb.verbs = rb.standardVerbs()
	return rb
}

// Process runs an action through the pipeline. The bool reports whether any
// phase handled the action; false means no authored rule fired and the verb
// has no standard handler, so the caller should try its fallback path.
func (rb *Rulebook) Process(a world.Action) (bool, []string) {
	var out []string

	for _, phase := range []string{types.PhaseBefore, types.PhaseInstead} {
		fired, msgs := rb.runAuthored(a, phase)
		out = append(out, msgs...)
		if fired {
			return true, out
		}
	}

	h, ok := rb.verbs[a.Verb]
	if !ok {
		// Authored rule errors still count as turn output even when the
		// verb then falls through to the parser's fallback.
		return false, out
	}

	if h.check != nil {
		passed, msgs := h.check(a)
		out = append(out, msgs...)
		if !passed {
			return true, out
		}
	}

	if h.carryOut != nil {
		h.carryOut(a)
	}

	fired, msgs := rb.runAuthored(a, types.PhaseAfter)
	out = append(out, msgs...)
	if fired {
		return true, out
	}

	if h.report != nil {
		out = append(out, h.report(a)...)
	}
	return true, out
}

// runAuthored searches the noun, the second object, and the current room for
// an authored rule matching the verb and phase. The first rule whose
// condition evaluates true prints its message, applies its effects, and
// stops the pipeline. Evaluation failures are reported and treated as the
// rule not matching.
func (rb *Rulebook) runAuthored(a world.Action, phase string) (bool, []string) {
	var out []string

	var targets []*world.Entity
	if a.Noun != nil {
		targets = append(targets, a.Noun)
	}
	if a.Second != nil && a.Second != a.Noun {
		targets = append(targets, a.Second)
	}
	if room := rb.world.PlayerRoom(); room != nil {
		targets = append(targets, room)
	}

	env := rb.condEnv(a)
	for _, target := range targets {
		for _, rule := range target.Rules {
			if rule.Verb != a.Verb || rule.Phase != phase {
				continue
			}
			matched, err := rb.eval.Eval(rule.Condition, env)
			if err != nil {
				out = append(out, "Rule error: "+err.Error())
				continue
			}
			if !matched {
				continue
			}
			if rule.Message != "" {
				out = append(out, rule.Message)
			}
			for _, eff := range rule.Effects {
				rb.world.ApplyEffect(eff)
			}
			return true, out
		}
	}
	return false, out
}

// condEnv builds the fixed variable set authored conditions evaluate
// against: the action, the player's room, and world predicates.
func (rb *Rulebook) condEnv(a world.Action) map[string]any {
	w := rb.world

	env := map[string]any{
		"verb":   a.Verb,
		"topic":  a.Topic,
		"noun":   "",
		"second": "",
	}
	if a.Noun != nil {
		env["noun"] = a.Noun.ID
	}
	if a.Second != nil {
		env["second"] = a.Second.ID
	}
	if room := w.PlayerRoom(); room != nil {
		env["player_room"] = room.ID
	} else {
		env["player_room"] = ""
	}

	env["exists"] = func(id string) bool {
		return w.Get(id) != nil
	}
	env["offstage"] = func(id string) bool {
		e := w.Get(id)
		return e != nil && e.Location == types.OffStage
	}
	env["carried"] = func(id string) bool {
		e := w.Get(id)
		return e != nil && e.Location == world.PlayerID
	}
	env["in_room"] = func(id, roomID string) bool {
		e := w.Get(id)
		return e != nil && e.Location == roomID
	}
	env["prop"] = func(id, name string) any {
		e := w.Get(id)
		if e == nil {
			return nil
		}
		return e.Props[name]
	}
	return env
}

// Knows reports whether the verb has a standard handler.
func (rb *Rulebook) Knows(verb string) bool {
	_, ok := rb.verbs[verb]
	return ok
}

// Verbs returns the sorted list of verbs with standard handlers, used to
// build canonical command templates for the NLU fallback.
func (rb *Rulebook) Verbs() []string {
	verbs := make([]string, 0, len(rb.verbs))
	for v := range rb.verbs {
		verbs = append(verbs, v)
	}
	sort.Strings(verbs)
	return verbs
}
