package loader

import (
	"fmt"
	"strings"

	"github.com/nathoo/lorelock/types"
)

// ValidationError collects every problem found in a story so authors fix
// them in one pass.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

func (e *ValidationError) addf(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

var validKinds = map[string]bool{
	"thing":     true,
	"container": true,
	"supporter": true,
	"person":    true,
}

var validPhases = map[string]bool{
	types.PhaseBefore:  true,
	types.PhaseInstead: true,
	types.PhaseAfter:   true,
}

var validEffectTypes = map[string]bool{
	types.EffectMove:    true,
	types.EffectSetProp: true,
}

var validWinTypes = map[string]bool{
	"location": true,
	"carried":  true,
}

// validate checks a story for referential integrity and consistency.
func validate(story *types.StoryDef) error {
	ve := &ValidationError{}

	if story.ID == "" {
		ve.addf("story id is required")
	}
	if story.Title == "" {
		ve.addf("story title is required")
	}

	rooms := map[string]bool{}
	ids := map[string]bool{}
	claim := func(id, what string) {
		if id == "" {
			return
		}
		if ids[id] {
			ve.addf("duplicate ID %q (%s)", id, what)
		}
		ids[id] = true
	}
	for _, r := range story.Rooms {
		claim(r.ID, "room")
		rooms[r.ID] = true
	}
	doors := map[string]bool{}
	for _, d := range story.Doors {
		claim(d.ID, "door")
		doors[d.ID] = true
	}
	things := map[string]bool{}
	thingNames := map[string]bool{}
	for _, t := range story.Things {
		claim(t.ID, "thing")
		things[t.ID] = true
		if t.Name != "" {
			thingNames[t.Name] = true
		}
	}

	if story.Start == "" {
		ve.addf("story start room is required")
	} else if !rooms[story.Start] {
		ve.addf("start room %q is not defined", story.Start)
	}

	for _, r := range story.Rooms {
		for dir, exit := range r.Exits {
			if exit.Door != "" && !doors[exit.Door] {
				ve.addf("room %q exit %q uses undefined door %q", r.ID, dir, exit.Door)
			}
			if exit.Door == "" && exit.Target == "" {
				ve.addf("room %q exit %q has neither target nor door", r.ID, dir)
			}
			if exit.Target != "" && !rooms[exit.Target] {
				ve.addf("room %q exit %q points to undefined room %q", r.ID, dir, exit.Target)
			}
		}
		validateRules("room "+r.ID, r.Rules, ids, ve)
	}

	for _, d := range story.Doors {
		// A door key may name the thing by ID or by display name.
		if d.Key != "" && !things[d.Key] && !thingNames[d.Key] {
			ve.addf("door %q key %q is not a defined thing", d.ID, d.Key)
		}
		validateRules("door "+d.ID, d.Rules, ids, ve)
	}

	for _, t := range story.Things {
		if t.Kind != "" && !validKinds[t.Kind] {
			ve.addf("thing %q has unknown kind %q", t.ID, t.Kind)
		}
		if t.Location != "" && t.Location != types.OffStage && !ids[t.Location] {
			ve.addf("thing %q location %q is not defined", t.ID, t.Location)
		}
		if t.Kind != "person" && len(t.Topics) > 0 {
			ve.addf("thing %q has topics but is not a person", t.ID)
		}
		validateRules("thing "+t.ID, t.Rules, ids, ve)
	}

	if story.Win != nil {
		if !validWinTypes[story.Win.Type] {
			ve.addf("win condition has unknown type %q", story.Win.Type)
		}
		if story.Win.Type == "location" && !rooms[story.Win.Target] {
			ve.addf("win condition targets undefined room %q", story.Win.Target)
		}
		if story.Win.Type == "carried" && !things[story.Win.Target] {
			ve.addf("win condition targets undefined thing %q", story.Win.Target)
		}
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateRules(owner string, rules []types.RuleDef, ids map[string]bool, ve *ValidationError) {
	for i, rule := range rules {
		if rule.Verb == "" {
			ve.addf("%s rule %d: missing verb", owner, i+1)
		}
		if rule.Phase != "" && !validPhases[rule.Phase] {
			ve.addf("%s rule %d: unknown phase %q", owner, i+1, rule.Phase)
		}
		for j, eff := range rule.Effects {
			if !validEffectTypes[eff.Type] {
				ve.addf("%s rule %d effect %d: unknown type %q", owner, i+1, j+1, eff.Type)
				continue
			}
			if eff.Target == "" {
				ve.addf("%s rule %d effect %d: missing target", owner, i+1, j+1)
			} else if !ids[eff.Target] {
				ve.addf("%s rule %d effect %d: undefined target %q", owner, i+1, j+1, eff.Target)
			}
			if eff.Type == types.EffectMove {
				dest := eff.Destination
				if dest == "" {
					ve.addf("%s rule %d effect %d: missing destination", owner, i+1, j+1)
				} else if dest != types.CurrentLocation && dest != types.OffStage && !ids[dest] {
					ve.addf("%s rule %d effect %d: undefined destination %q", owner, i+1, j+1, dest)
				}
			}
			if eff.Type == types.EffectSetProp && eff.Prop == "" {
				ve.addf("%s rule %d effect %d: missing prop", owner, i+1, j+1)
			}
		}
	}
}
