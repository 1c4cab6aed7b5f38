package world

import (
	"sort"
	"strings"
)

// Scope returns every entity the player can currently perceive: the
// recursive contents of the inventory, the recursive contents of the current
// room, and any doors attached to the room's exits. Recursion descends into
// supporters and into open or transparent containers; it stops at closed,
// opaque containers.
func (w *World) Scope() []*Entity {
	var scope []*Entity
	scope = append(scope, w.contentsRecursive(w.Player())...)

	room := w.PlayerRoom()
	if room == nil {
		return scope
	}
	scope = append(scope, room)
	scope = append(scope, w.contentsRecursive(room)...)

	for _, dir := range orderedDirections(room.Exits) {
		if d, ok := w.Entities[room.Exits[dir]]; ok && d.Kind == KindDoor {
			scope = append(scope, d)
		}
	}
	return scope
}

func (w *World) contentsRecursive(parent *Entity) []*Entity {
	var out []*Entity
	for _, id := range parent.Contents {
		child, ok := w.Entities[id]
		if !ok {
			continue
		}
		out = append(out, child)

		seeInside := child.Kind == KindSupporter ||
			(child.Kind == KindContainer && (child.Is("open") || child.Is("transparent")))
		if seeInside {
			out = append(out, w.contentsRecursive(child)...)
		}
	}
	return out
}

// IsAccessible reports whether the player can physically touch the entity:
// it is directly held, or every ancestor between it and the player or a room
// boundary is an open container. Transparency grants visibility, not touch.
func (w *World) IsAccessible(e *Entity) bool {
	if e.Location == PlayerID {
		return true
	}
	parentID := e.Location
	for parentID != "" && parentID != PlayerID {
		parent, ok := w.Entities[parentID]
		if !ok {
			return false
		}
		if parent.Kind == KindRoom {
			return true
		}
		if parent.Kind == KindContainer && !parent.Is("open") {
			return false
		}
		parentID = parent.Location
	}
	return parentID == PlayerID
}

// FindByName resolves a noun phrase against the current scope: exact
// name/alias equality first, then substring containment on display names.
func (w *World) FindByName(name string) *Entity {
	if name == "" {
		return nil
	}
	scope := w.Scope()
	for _, e := range scope {
		if e.Match(name) {
			return e
		}
	}
	lower := strings.ToLower(name)
	for _, e := range scope {
		if strings.Contains(strings.ToLower(e.Name), lower) {
			return e
		}
	}
	return nil
}

// Context summarizes the player's surroundings as plain text for the NLU
// fallback request: location, visible entities with state markers, and
// available conversation topics.
func (w *World) Context() []string {
	room := w.PlayerRoom()
	if room == nil {
		return nil
	}

	lines := []string{"Location: " + room.Name}

	var visible []string
	for _, e := range w.Scope() {
		if e.ID == PlayerID || e.ID == room.ID {
			continue
		}
		name := e.Name
		switch {
		case e.Is("locked"):
			name += " (locked)"
		case e.Is("open"):
			name += " (open)"
		case e.Kind == KindContainer || e.Kind == KindDoor:
			name += " (closed)"
		}
		visible = append(visible, name)
	}
	if len(visible) > 0 {
		lines = append(lines, "Visible: "+strings.Join(visible, ", "))
	}

	for _, e := range w.Scope() {
		if e.Kind == KindPerson && len(e.Topics) > 0 {
			topics := make([]string, 0, len(e.Topics))
			for t := range e.Topics {
				topics = append(topics, t)
			}
			sort.Strings(topics)
			lines = append(lines, "Person '"+e.Name+"' topics: "+strings.Join(topics, ", "))
		}
	}

	return lines
}
