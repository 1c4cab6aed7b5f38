package world

import (
	"strings"

	"github.com/nathoo/lorelock/types"
)

// Entity kinds. A kind picks property defaults at construction time; all
// runtime behavior branches on the property bag, never on the kind.
const (
	KindRoom      = "room"
	KindThing     = "thing"
	KindContainer = "container"
	KindSupporter = "supporter"
	KindDoor      = "door"
	KindPerson    = "person"
)

// Entity is the universal world node: rooms, things, containers, supporters,
// doors and persons are all entities distinguished by capability properties.
type Entity struct {
	ID          string
	Name        string
	Aliases     []string
	Description string
	Kind        string
	Props       map[string]any
	Contents    []string // child entity IDs, insertion order
	Location    string   // owner ID, or types.OffStage
	Rules       []types.RuleDef

	// Door only: room ID → compass direction that door occupies there,
	// and the key item required to lock/unlock.
	Connections map[string]string
	KeyID       string

	// Room only: direction → door ID or room ID.
	Exits map[string]string

	// Person only: topic → canned response.
	Topics map[string]string
}

// kindDefaults returns the default property bag for a kind.
func kindDefaults(kind string) map[string]any {
	switch kind {
	case KindRoom:
		return map[string]any{"lit": true}
	case KindContainer:
		return map[string]any{
			"portable": true, "openable": true, "open": false,
			"locked": false, "lockable": false, "transparent": false,
			"enterable": false,
		}
	case KindSupporter:
		return map[string]any{"portable": false, "scenery": true, "enterable": false}
	case KindDoor:
		return map[string]any{"portable": false, "openable": true, "open": false, "locked": false}
	case KindPerson:
		return map[string]any{"portable": false, "alive": true}
	default:
		return map[string]any{
			"portable": true, "scenery": false, "wearable": false,
			"edible": false,
		}
	}
}

func newEntity(id, kind, name string, props map[string]any) *Entity {
	e := &Entity{
		ID:       id,
		Name:     name,
		Kind:     kind,
		Props:    kindDefaults(kind),
		Location: types.OffStage,
	}
	if e.Name == "" {
		e.Name = id
	}
	for k, v := range props {
		e.Props[k] = v
	}
	return e
}

// Is reports a boolean property. Missing or non-boolean values read false.
func (e *Entity) Is(prop string) bool {
	v, ok := e.Props[prop]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// SetProp sets a property value.
func (e *Entity) SetProp(prop string, value any) {
	e.Props[prop] = value
}

// Match reports whether name equals the entity's display name or one of its
// aliases, case-insensitively.
func (e *Entity) Match(name string) bool {
	name = strings.ToLower(name)
	if strings.ToLower(e.Name) == name {
		return true
	}
	for _, alias := range e.Aliases {
		if strings.ToLower(alias) == name {
			return true
		}
	}
	return false
}

// Describe renders the entity's full examine text, including status and
// contents suffixes for containers, supporters and doors.
func (e *Entity) Describe(w *World) string {
	desc := e.Description
	if desc == "" {
		desc = "You see nothing special about the " + e.Name + "."
	}

	switch e.Kind {
	case KindContainer:
		if e.Is("open") {
			desc += " It is open."
			if len(e.Contents) > 0 {
				desc += " Inside is: " + strings.Join(w.names(e.Contents), ", ") + "."
			} else {
				desc += " It is empty."
			}
		} else {
			desc += " It is closed."
			if e.Is("transparent") && len(e.Contents) > 0 {
				desc += " Inside you can see: " + strings.Join(w.names(e.Contents), ", ") + "."
			}
		}
	case KindSupporter:
		if len(e.Contents) > 0 {
			desc += " On it you see: " + strings.Join(w.names(e.Contents), ", ") + "."
		}
	case KindDoor:
		switch {
		case e.Is("locked"):
			desc += " It is locked."
		case e.Is("open"):
			desc += " It is open."
		default:
			desc += " It is closed."
		}
	}
	return desc
}
