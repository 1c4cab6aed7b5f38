// Package types defines the shared data structures for the LoreLock engine.
// This package holds definitions and their serialized forms, no behavior.
package types

import "gopkg.in/yaml.v3"

// OffStage is the location sentinel for entities not yet placed in the world.
const OffStage = "off-stage"

// Rule phases, in pipeline order. before and instead both pre-empt the
// standard verb logic; after intercepts between carry_out and report.
const (
	PhaseBefore  = "before"
	PhaseInstead = "instead"
	PhaseAfter   = "after"
)

// Effect types accepted by the world's ApplyEffect.
const (
	EffectMove    = "move"
	EffectSetProp = "set_prop"
)

// CurrentLocation is the destination sentinel resolved to the player's
// present room when a move effect is applied.
const CurrentLocation = "current_location"

// EffectDef is a single declarative side-effect attached to an authored rule.
type EffectDef struct {
	Type        string `yaml:"type"`
	Target      string `yaml:"target"`
	Destination string `yaml:"destination,omitempty"`
	Prop        string `yaml:"property,omitempty"`
	Value       any    `yaml:"value,omitempty"`
}

// RuleDef is an authored interaction rule attached to an entity or room.
// An empty Condition is always true.
type RuleDef struct {
	Verb      string      `yaml:"verb"`
	Phase     string      `yaml:"phase"` // before, instead, after
	Condition string      `yaml:"condition,omitempty"`
	Message   string      `yaml:"message,omitempty"`
	Effects   []EffectDef `yaml:"effects,omitempty"`
}

// ExitDef is one exit of a room: a direct room connection, or a doorway.
type ExitDef struct {
	Target string `yaml:"target,omitempty"` // room ID on the other side
	Door   string `yaml:"door,omitempty"`   // door entity ID, empty for direct connections
}

// UnmarshalYAML accepts both the shorthand `north: corridor` and the full
// mapping form with target and door keys.
func (e *ExitDef) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return value.Decode(&e.Target)
	}
	type plain ExitDef
	return value.Decode((*plain)(e))
}

// ThingDef defines an item, container, supporter or person.
type ThingDef struct {
	ID          string
	Kind        string // thing, container, supporter, person
	Name        string
	Aliases     []string
	Description string
	Location    string // room ID, container ID, or OffStage
	Props       map[string]any
	Rules       []RuleDef
	Topics      map[string]string // person dialogue, nil otherwise
}

// DoorDef defines a door joining two rooms. Connections are derived from the
// rooms' exits during world construction.
type DoorDef struct {
	ID          string
	Name        string
	Aliases     []string
	Description string
	Locked      bool
	Open        bool
	Key         string // item ID or name required to lock/unlock
	Props       map[string]any
	Rules       []RuleDef
}

// RoomDef defines a room and its exits.
type RoomDef struct {
	ID          string
	Name        string
	Description string
	Exits       map[string]ExitDef // direction → exit
	Rules       []RuleDef
}

// WinDef is the story's ending condition.
type WinDef struct {
	Type   string `yaml:"type"` // "location"
	Target string `yaml:"target"`
}

// StoryDef is the complete compiled story description, consumed once at
// startup to build the entity store. Slices preserve authoring order so
// initial contents list deterministically.
type StoryDef struct {
	ID      string
	Title   string
	Author  string
	Version string
	Intro   string
	Start   string // starting room ID
	Rooms   []RoomDef
	Doors   []DoorDef
	Things  []ThingDef
	Win     *WinDef
}

// Signals a turn can raise for the enclosing loop.
const (
	SignalMenu = "menu"
	SignalWon  = "won"
)

// Result is the output of a single game turn.
type Result struct {
	Output []string
	Signal string // empty, SignalMenu or SignalWon
}
