// Package snapshot captures and restores world state for undo and for saved
// games. Snapshots are deep copies; mutating the live world never touches a
// captured state.
package snapshot

import (
	"github.com/nathoo/lorelock/engine/world"
)

// EntityState is the mutable slice of one entity.
type EntityState struct {
	Location string         `json:"location"`
	Contents []string       `json:"contents"`
	Props    map[string]any `json:"props"`
}

// State is one full capture of the world's mutable state. Entities removed
// from play since the capture are recreated on restore from the stored
// template, so only IDs present here survive a restore.
type State struct {
	StoryID  string                 `json:"story_id"`
	Turn     int                    `json:"turn"`
	Entities map[string]EntityState `json:"entities"`
}

// Capture deep-copies the mutable state of every entity.
func Capture(w *world.World, turn int) State {
	st := State{
		StoryID:  w.Story.ID,
		Turn:     turn,
		Entities: make(map[string]EntityState, len(w.Entities)),
	}
	for id, e := range w.Entities {
		st.Entities[id] = EntityState{
			Location: e.Location,
			Contents: append([]string(nil), e.Contents...),
			Props:    copyProps(e.Props),
		}
	}
	return st
}

// Restore overwrites the world's mutable state from a capture. Entities
// removed after the capture are rebuilt from the story definition; entities
// absent from the capture are dropped.
func Restore(w *world.World, st State) {
	for id := range w.Entities {
		if _, ok := st.Entities[id]; !ok {
			delete(w.Entities, id)
		}
	}
	for id, es := range st.Entities {
		e := w.Entities[id]
		if e == nil {
			e = w.Rebuild(id)
			if e == nil {
				continue
			}
		}
		e.Location = es.Location
		e.Contents = append([]string(nil), es.Contents...)
		e.Props = copyProps(es.Props)
	}
}

func copyProps(props map[string]any) map[string]any {
	cp := make(map[string]any, len(props))
	for k, v := range props {
		cp[k] = v
	}
	return cp
}

// History is a bounded undo stack. Pushing past the limit discards the
// oldest capture.
type History struct {
	limit  int
	states []State
}

// NewHistory creates an undo stack keeping at most limit captures.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Push records a capture, evicting the oldest when full.
func (h *History) Push(st State) {
	h.states = append(h.states, st)
	if len(h.states) > h.limit {
		h.states = h.states[1:]
	}
}

// Pop removes and returns the most recent capture.
func (h *History) Pop() (State, bool) {
	if len(h.states) == 0 {
		return State{}, false
	}
	st := h.states[len(h.states)-1]
	h.states = h.states[:len(h.states)-1]
	return st, true
}

// Len reports how many captures are stored.
func (h *History) Len() int {
	return len(h.states)
}
