package loader

import (
	"fmt"

	"github.com/nathoo/lorelock/types"
	lua "github.com/yuin/gopher-lua"
)

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	if b, ok := tbl.RawGetString(key).(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	if t, ok := tbl.RawGetString(key).(*lua.LTable); ok {
		return t
	}
	return nil
}

// toGoValue converts a scalar Lua value; tables are not accepted in
// property or effect values.
func toGoValue(v lua.LValue) any {
	switch val := v.(type) {
	case lua.LBool:
		return bool(val)
	case lua.LNumber:
		f := float64(val)
		if f == float64(int(f)) {
			return int(f)
		}
		return f
	case lua.LString:
		return string(val)
	default:
		return nil
	}
}

func tableToStringMap(tbl *lua.LTable) map[string]string {
	if tbl == nil {
		return nil
	}
	m := map[string]string{}
	tbl.ForEach(func(k, v lua.LValue) {
		ks, kok := k.(lua.LString)
		vs, vok := v.(lua.LString)
		if kok && vok {
			m[string(ks)] = string(vs)
		}
	})
	return m
}

func tableToAnyMap(tbl *lua.LTable) map[string]any {
	if tbl == nil {
		return nil
	}
	m := map[string]any{}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			m[string(ks)] = toGoValue(v)
		}
	})
	return m
}

func tableToStringSlice(tbl *lua.LTable) []string {
	if tbl == nil {
		return nil
	}
	var out []string
	for i := 1; i <= tbl.MaxN(); i++ {
		if s, ok := tbl.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}

// compile converts the collected Lua tables into a story definition.
func compile(coll *collector) (*types.StoryDef, error) {
	if coll.story == nil {
		return nil, fmt.Errorf("no Story{} definition found")
	}

	story := &types.StoryDef{
		ID:      getString(coll.story, "id"),
		Title:   getString(coll.story, "title"),
		Author:  getString(coll.story, "author"),
		Version: getString(coll.story, "version"),
		Intro:   getString(coll.story, "intro"),
		Start:   getString(coll.story, "start"),
	}
	if win := getTable(coll.story, "win"); win != nil {
		story.Win = &types.WinDef{
			Type:   getString(win, "type"),
			Target: getString(win, "target"),
		}
	}

	for _, raw := range coll.rooms {
		room, err := compileRoom(raw)
		if err != nil {
			return nil, fmt.Errorf("room %s: %w", raw.id, err)
		}
		story.Rooms = append(story.Rooms, room)
	}
	for _, raw := range coll.doors {
		door, err := compileDoor(raw)
		if err != nil {
			return nil, fmt.Errorf("door %s: %w", raw.id, err)
		}
		story.Doors = append(story.Doors, door)
	}
	for _, raw := range coll.things {
		thing, err := compileThing(raw)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", raw.kind, raw.id, err)
		}
		story.Things = append(story.Things, thing)
	}
	return story, nil
}

func compileRoom(raw rawDef) (types.RoomDef, error) {
	room := types.RoomDef{
		ID:          raw.id,
		Name:        getString(raw.table, "name"),
		Description: getString(raw.table, "description"),
		Exits:       map[string]types.ExitDef{},
	}
	if room.Name == "" {
		room.Name = raw.id
	}

	if exits := getTable(raw.table, "exits"); exits != nil {
		var exitErr error
		exits.ForEach(func(k, v lua.LValue) {
			dir, ok := k.(lua.LString)
			if !ok {
				return
			}
			switch val := v.(type) {
			case lua.LString:
				room.Exits[string(dir)] = types.ExitDef{Target: string(val)}
			case *lua.LTable:
				room.Exits[string(dir)] = types.ExitDef{
					Target: getString(val, "target"),
					Door:   getString(val, "door"),
				}
			default:
				exitErr = fmt.Errorf("exit %s: expected target string or table", dir)
			}
		})
		if exitErr != nil {
			return room, exitErr
		}
	}

	rules, err := compileRules(getTable(raw.table, "rules"))
	if err != nil {
		return room, err
	}
	room.Rules = rules
	return room, nil
}

func compileDoor(raw rawDef) (types.DoorDef, error) {
	door := types.DoorDef{
		ID:          raw.id,
		Name:        getString(raw.table, "name"),
		Aliases:     tableToStringSlice(getTable(raw.table, "aliases")),
		Description: getString(raw.table, "description"),
		Locked:      getBool(raw.table, "locked", false),
		Open:        getBool(raw.table, "open", false),
		Key:         getString(raw.table, "key"),
		Props:       tableToAnyMap(getTable(raw.table, "props")),
	}
	if door.Name == "" {
		door.Name = raw.id
	}
	rules, err := compileRules(getTable(raw.table, "rules"))
	if err != nil {
		return door, err
	}
	door.Rules = rules
	return door, nil
}

func compileThing(raw rawDef) (types.ThingDef, error) {
	thing := types.ThingDef{
		ID:          raw.id,
		Kind:        raw.kind,
		Name:        getString(raw.table, "name"),
		Aliases:     tableToStringSlice(getTable(raw.table, "aliases")),
		Description: getString(raw.table, "description"),
		Location:    getString(raw.table, "location"),
		Props:       tableToAnyMap(getTable(raw.table, "props")),
		Topics:      tableToStringMap(getTable(raw.table, "topics")),
	}
	if thing.Name == "" {
		thing.Name = raw.id
	}
	rules, err := compileRules(getTable(raw.table, "rules"))
	if err != nil {
		return thing, err
	}
	thing.Rules = rules
	return thing, nil
}

func compileRules(tbl *lua.LTable) ([]types.RuleDef, error) {
	if tbl == nil {
		return nil, nil
	}
	var rules []types.RuleDef
	for i := 1; i <= tbl.MaxN(); i++ {
		rt, ok := tbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			return nil, fmt.Errorf("rule %d: expected a table", i)
		}
		rule := types.RuleDef{
			Verb:      getString(rt, "verb"),
			Phase:     getString(rt, "phase"),
			Condition: getString(rt, "when"),
			Message:   getString(rt, "say"),
		}
		if rule.Verb == "" {
			return nil, fmt.Errorf("rule %d: missing verb", i)
		}
		if rule.Phase == "" {
			rule.Phase = types.PhaseInstead
		}
		if effects := getTable(rt, "effects"); effects != nil {
			for j := 1; j <= effects.MaxN(); j++ {
				et, ok := effects.RawGetInt(j).(*lua.LTable)
				if !ok {
					return nil, fmt.Errorf("rule %d: effect %d is not an effect helper", i, j)
				}
				rule.Effects = append(rule.Effects, types.EffectDef{
					Type:        getString(et, "type"),
					Target:      getString(et, "target"),
					Destination: getString(et, "destination"),
					Prop:        getString(et, "prop"),
					Value:       toGoValue(et.RawGetString("value")),
				})
			}
		}
		rules = append(rules, rule)
	}
	return rules, nil
}
