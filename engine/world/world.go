// Package world implements the entity store, the containment graph, and the
// scope/accessibility queries built on top of them.
package world

import (
	"strings"

	"github.com/nathoo/lorelock/types"
)

// PlayerID is the reserved entity ID for the player.
const PlayerID = "player"

// Action is a parsed player command: verb plus resolved entity references.
// Created fresh per input line and discarded after resolution.
type Action struct {
	Verb   string
	Noun   *Entity
	Second *Entity
	Topic  string
}

// World holds all live entities and enforces the one-parent containment
// invariant. Entities are built once from a story definition and mutate
// for the process lifetime.
type World struct {
	Entities map[string]*Entity
	Story    *types.StoryDef
}

// New builds a world from a compiled story definition.
func New(story *types.StoryDef) *World {
	w := &World{
		Entities: map[string]*Entity{},
		Story:    story,
	}

	for _, rd := range story.Rooms {
		r := newEntity(rd.ID, KindRoom, rd.Name, nil)
		r.Description = rd.Description
		r.Rules = rd.Rules
		r.Exits = map[string]string{}
		r.Location = "" // rooms are roots
		w.Entities[r.ID] = r
	}

	for _, dd := range story.Doors {
		props := map[string]any{"open": dd.Open, "locked": dd.Locked}
		for k, v := range dd.Props {
			props[k] = v
		}
		d := newEntity(dd.ID, KindDoor, dd.Name, props)
		d.Aliases = dd.Aliases
		d.Description = dd.Description
		d.Rules = dd.Rules
		d.KeyID = dd.Key
		d.Connections = map[string]string{}
		if dd.Locked || dd.Key != "" {
			d.Props["lockable"] = true
		}
		w.Entities[d.ID] = d
	}

	for _, td := range story.Things {
		t := newEntity(td.ID, td.Kind, td.Name, td.Props)
		t.Aliases = td.Aliases
		t.Description = td.Description
		t.Rules = td.Rules
		t.Topics = td.Topics
		w.Entities[t.ID] = t
	}

	// Wire exits and door connections after all entities exist.
	for _, rd := range story.Rooms {
		room := w.Entities[rd.ID]
		for dir, exit := range rd.Exits {
			if exit.Door != "" {
				room.Exits[dir] = exit.Door
				if d, ok := w.Entities[exit.Door]; ok {
					d.Connections[rd.ID] = dir
					if exit.Target != "" {
						if _, known := d.Connections[exit.Target]; !known {
							d.Connections[exit.Target] = "unknown"
						}
					}
				}
			} else if exit.Target != "" {
				room.Exits[dir] = exit.Target
			}
		}
	}

	// Place things. Story order determines listing order.
	for _, td := range story.Things {
		if td.Location != "" && td.Location != types.OffStage {
			w.Move(td.ID, td.Location)
		}
	}

	p := newEntity(PlayerID, KindPerson, "yourself", nil)
	w.Entities[PlayerID] = p
	w.Move(PlayerID, story.Start)

	return w
}

// Get returns an entity by ID, or nil.
func (w *World) Get(id string) *Entity {
	return w.Entities[id]
}

// Player returns the player entity.
func (w *World) Player() *Entity {
	return w.Entities[PlayerID]
}

// PlayerRoom returns the room the player currently occupies, following
// containment upward past enterable entities.
func (w *World) PlayerRoom() *Entity {
	loc := w.Player().Location
	for {
		e, ok := w.Entities[loc]
		if !ok {
			return nil
		}
		if e.Kind == KindRoom {
			return e
		}
		loc = e.Location
	}
}

// Move detaches an entity from its current owner and appends it to the
// destination's contents, keeping both sides consistent. A move to the
// current owner re-appends, so repeating a move is a no-op in effect.
func (w *World) Move(id, destID string) {
	e, ok := w.Entities[id]
	if !ok {
		return
	}
	if parent, ok := w.Entities[e.Location]; ok {
		parent.Contents = removeID(parent.Contents, id)
	}
	e.Location = destID
	if dest, ok := w.Entities[destID]; ok {
		dest.Contents = append(dest.Contents, id)
	}
}

// Remove detaches an entity from its owner and deletes it permanently.
func (w *World) Remove(id string) {
	e, ok := w.Entities[id]
	if !ok {
		return
	}
	if parent, ok := w.Entities[e.Location]; ok {
		parent.Contents = removeID(parent.Contents, id)
	}
	delete(w.Entities, id)
}

// Rebuild recreates an entity from its story definition, without placing it.
// Used when restoring a state captured before the entity was removed.
func (w *World) Rebuild(id string) *Entity {
	for _, td := range w.Story.Things {
		if td.ID != id {
			continue
		}
		t := newEntity(td.ID, td.Kind, td.Name, td.Props)
		t.Aliases = td.Aliases
		t.Description = td.Description
		t.Rules = td.Rules
		t.Topics = td.Topics
		w.Entities[id] = t
		return t
	}
	for _, dd := range w.Story.Doors {
		if dd.ID != id {
			continue
		}
		props := map[string]any{"open": dd.Open, "locked": dd.Locked}
		for k, v := range dd.Props {
			props[k] = v
		}
		d := newEntity(dd.ID, KindDoor, dd.Name, props)
		d.Aliases = dd.Aliases
		d.Description = dd.Description
		d.Rules = dd.Rules
		d.KeyID = dd.Key
		d.Connections = map[string]string{}
		if dd.Locked || dd.Key != "" {
			d.Props["lockable"] = true
		}
		for _, rd := range w.Story.Rooms {
			for dir, exit := range rd.Exits {
				if exit.Door == id {
					d.Connections[rd.ID] = dir
					if exit.Target != "" {
						if _, known := d.Connections[exit.Target]; !known {
							d.Connections[exit.Target] = "unknown"
						}
					}
				}
			}
		}
		w.Entities[id] = d
		return d
	}
	return nil
}

// ApplyEffect executes one declarative side-effect from an authored rule.
// This is the only write surface available to story content.
func (w *World) ApplyEffect(eff types.EffectDef) {
	switch eff.Type {
	case types.EffectMove:
		dest := eff.Destination
		if dest == types.CurrentLocation {
			if room := w.PlayerRoom(); room != nil {
				dest = room.ID
			}
		}
		w.Move(eff.Target, dest)
	case types.EffectSetProp:
		if e, ok := w.Entities[eff.Target]; ok {
			e.SetProp(eff.Prop, eff.Value)
		}
	}
}

// MovePlayer resolves a direction against the current room's exits and moves
// the player. A locked door blocks regardless of its open property; a closed
// unlocked door is opened first with a notice.
func (w *World) MovePlayer(direction string) []string {
	room := w.PlayerRoom()
	target, ok := room.Exits[direction]
	if !ok {
		return []string{"You can't go that way."}
	}

	door := w.Entities[target]
	if door != nil && door.Kind == KindDoor {
		if door.Is("locked") {
			return []string{"The " + door.Name + " is locked."}
		}
		var out []string
		if !door.Is("open") {
			out = append(out, "(First opening the "+door.Name+")")
			door.SetProp("open", true)
		}
		for roomID := range door.Connections {
			if roomID != room.ID {
				w.Move(PlayerID, roomID)
				return append(out, w.Look()...)
			}
		}
		return append(out, "The "+door.Name+" leads nowhere.")
	}

	w.Move(PlayerID, target)
	return w.Look()
}

// Look renders the player's current room: name, description, non-scenery
// contents with container suffixes, and exits.
func (w *World) Look() []string {
	room := w.PlayerRoom()
	if room == nil {
		return []string{"You are nowhere."}
	}

	out := []string{room.Name}
	if room.Description != "" {
		out = append(out, room.Description)
	}

	var listed []string
	for _, id := range room.Contents {
		e := w.Entities[id]
		if id == PlayerID || e.Is("scenery") {
			continue
		}
		label := e.Name
		if e.Kind == KindContainer && e.Is("open") {
			if len(e.Contents) > 0 {
				label += " (containing " + strings.Join(w.names(e.Contents), ", ") + ")"
			} else {
				label += " (empty)"
			}
		}
		if e.Kind == KindSupporter && len(e.Contents) > 0 {
			label += " (holding " + strings.Join(w.names(e.Contents), ", ") + ")"
		}
		listed = append(listed, label)
	}
	if len(listed) > 0 {
		out = append(out, "You see: "+strings.Join(listed, ", ")+".")
	}

	var exits []string
	for _, dir := range orderedDirections(room.Exits) {
		if d, ok := w.Entities[room.Exits[dir]]; ok && d.Kind == KindDoor {
			exits = append(exits, dir+" ("+d.Name+")")
		} else {
			exits = append(exits, dir)
		}
	}
	if len(exits) > 0 {
		out = append(out, "Exits: "+strings.Join(exits, ", ")+".")
	}

	return out
}

// Inventory lists the player's carried items.
func (w *World) Inventory() []string {
	p := w.Player()
	if len(p.Contents) == 0 {
		return []string{"You are carrying nothing."}
	}
	var names []string
	for _, id := range p.Contents {
		e := w.Entities[id]
		name := e.Name
		if e.Is("worn") {
			name += " (being worn)"
		}
		names = append(names, name)
	}
	return []string{"You are carrying: " + strings.Join(names, ", ") + "."}
}

// names maps entity IDs to display names, skipping unknown IDs.
func (w *World) names(ids []string) []string {
	var out []string
	for _, id := range ids {
		if e, ok := w.Entities[id]; ok {
			out = append(out, e.Name)
		}
	}
	return out
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// compassOrder fixes the listing order of exits for deterministic output.
var compassOrder = []string{
	"north", "northeast", "east", "southeast",
	"south", "southwest", "west", "northwest", "up", "down",
}

func orderedDirections(exits map[string]string) []string {
	var out []string
	for _, dir := range compassOrder {
		if _, ok := exits[dir]; ok {
			out = append(out, dir)
		}
	}
	// Any non-compass directions follow in map order.
	for dir := range exits {
		known := false
		for _, c := range compassOrder {
			if dir == c {
				known = true
				break
			}
		}
		if !known {
			out = append(out, dir)
		}
	}
	return out
}
