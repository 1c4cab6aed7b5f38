package snapshot

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nathoo/lorelock/engine/world"
	"github.com/nathoo/lorelock/types"
)

func testStory() *types.StoryDef {
	return &types.StoryDef{
		ID:    "snap-story",
		Title: "Snap Story",
		Start: "hallway",
		Rooms: []types.RoomDef{
			{ID: "hallway", Name: "Hallway", Exits: map[string]types.ExitDef{
				"north": {Target: "garden"},
			}},
			{ID: "garden", Name: "Garden"},
		},
		Things: []types.ThingDef{
			{ID: "lamp", Kind: "thing", Name: "lamp", Location: "hallway"},
			{ID: "apple", Kind: "thing", Name: "apple", Location: "hallway",
				Props: map[string]any{"edible": true}},
		},
	}
}

func TestCaptureRestore_TrueInverse(t *testing.T) {
	w := world.New(testStory())
	st := Capture(w, 3)

	w.Move("lamp", world.PlayerID)
	w.Get("lamp").SetProp("worn", true)
	w.Move(world.PlayerID, "garden")
	w.Remove("apple")

	Restore(w, st)

	if got := w.Get("lamp").Location; got != "hallway" {
		t.Errorf("lamp location %q, want hallway", got)
	}
	if w.Get("lamp").Is("worn") {
		t.Error("worn prop survived restore")
	}
	if got := w.Player().Location; got != "hallway" {
		t.Errorf("player location %q, want hallway", got)
	}
	apple := w.Get("apple")
	if apple == nil {
		t.Fatal("removed entity not rebuilt on restore")
	}
	if apple.Location != "hallway" || !apple.Is("edible") {
		t.Errorf("rebuilt apple wrong: loc=%q props=%v", apple.Location, apple.Props)
	}
}

func TestCapture_IsDeepCopy(t *testing.T) {
	w := world.New(testStory())
	st := Capture(w, 0)

	// Mutations after the capture must not leak into it.
	w.Get("lamp").SetProp("lit", true)
	w.Move("lamp", world.PlayerID)

	es := st.Entities["lamp"]
	if _, ok := es.Props["lit"]; ok {
		t.Error("capture shares the live prop map")
	}
	if es.Location != "hallway" {
		t.Errorf("capture location mutated to %q", es.Location)
	}
	hall := st.Entities["hallway"]
	found := false
	for _, id := range hall.Contents {
		if id == "lamp" {
			found = true
		}
	}
	if !found {
		t.Error("capture shares the live contents slice")
	}
}

func TestHistory_BoundedAtLimit(t *testing.T) {
	h := NewHistory(10)
	for i := 0; i < 15; i++ {
		h.Push(State{Turn: i})
	}
	if h.Len() != 10 {
		t.Fatalf("history length %d, want 10", h.Len())
	}

	// Popping walks back from the newest; the oldest five are gone.
	for want := 14; want >= 5; want-- {
		st, ok := h.Pop()
		if !ok || st.Turn != want {
			t.Fatalf("pop got turn %d (ok=%v), want %d", st.Turn, ok, want)
		}
	}
	if _, ok := h.Pop(); ok {
		t.Error("expected empty history")
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	w := world.New(testStory())
	w.Move("lamp", world.PlayerID)
	if err := s.Save(Capture(w, 7)); err != nil {
		t.Fatalf("save: %v", err)
	}

	st, err := s.Load("snap-story")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st.Turn != 7 {
		t.Errorf("turn %d, want 7", st.Turn)
	}
	if st.Entities["lamp"].Location != world.PlayerID {
		t.Errorf("lamp location %q, want player", st.Entities["lamp"].Location)
	}
}

func TestStore_MissingSave(t *testing.T) {
	s := NewStore(t.TempDir())
	_, err := s.Load("snap-story")
	if !errors.Is(err, ErrNoSave) {
		t.Errorf("expected ErrNoSave, got %v", err)
	}
}

func TestStore_CorruptSave(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	if err := os.WriteFile(filepath.Join(dir, "snap-story.save"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load("snap-story"); err == nil {
		t.Error("expected decode error")
	}
}

func TestStore_WrongStoryRejected(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	if err := s.Save(State{StoryID: "other", Entities: map[string]EntityState{}}); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(filepath.Join(dir, "other.save"), filepath.Join(dir, "snap-story.save")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load("snap-story"); err == nil {
		t.Error("expected story mismatch error")
	}
}
