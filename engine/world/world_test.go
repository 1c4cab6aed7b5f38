package world

import (
	"strings"
	"testing"

	"github.com/nathoo/lorelock/types"
)

// testStory builds a small story: a hallway with a locked oak door north to
// the garden and an open archway south to the closet, a drawer holding the
// brass key, a desk, a guard, and a few items. Single-word names keep the
// parser out of the way.
func testStory() *types.StoryDef {
	return &types.StoryDef{
		ID:    "test-story",
		Title: "Test Story",
		Start: "hallway",
		Rooms: []types.RoomDef{
			{
				ID:          "hallway",
				Name:        "Hallway",
				Description: "A dim hallway with peeling wallpaper.",
				Exits: map[string]types.ExitDef{
					"north": {Target: "garden", Door: "oak-door"},
					"south": {Target: "closet"},
				},
			},
			{
				ID:          "garden",
				Name:        "Garden",
				Description: "A walled garden heavy with roses.",
				Exits: map[string]types.ExitDef{
					"south": {Target: "hallway", Door: "oak-door"},
				},
			},
			{
				ID:          "closet",
				Name:        "Closet",
				Description: "A cramped closet.",
				Exits: map[string]types.ExitDef{
					"north": {Target: "hallway"},
				},
			},
		},
		Doors: []types.DoorDef{
			{
				ID:     "oak-door",
				Name:   "oak door",
				Locked: true,
				Key:    "brass-key",
			},
		},
		Things: []types.ThingDef{
			{ID: "drawer", Kind: "container", Name: "drawer", Location: "hallway",
				Props: map[string]any{"portable": false}},
			{ID: "brass-key", Kind: "thing", Name: "brass key", Aliases: []string{"key"},
				Location: "drawer"},
			{ID: "desk", Kind: "supporter", Name: "desk", Location: "hallway"},
			{ID: "lamp", Kind: "thing", Name: "lamp", Location: "desk"},
			{ID: "guard", Kind: "person", Name: "guard", Location: "hallway",
				Topics: map[string]string{"password": "It's 'swordfish', obviously."}},
			{ID: "amulet", Kind: "thing", Name: "amulet", Location: types.OffStage},
		},
	}
}

func outputContains(output []string, substr string) bool {
	for _, line := range output {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

func TestNew_BuildsContainmentTree(t *testing.T) {
	w := New(testStory())

	if got := w.Get("brass-key").Location; got != "drawer" {
		t.Errorf("expected key in drawer, got %q", got)
	}
	if got := w.Get("lamp").Location; got != "desk" {
		t.Errorf("expected lamp on desk, got %q", got)
	}
	if got := w.Player().Location; got != "hallway" {
		t.Errorf("expected player in hallway, got %q", got)
	}
	if got := w.Get("amulet").Location; got != types.OffStage {
		t.Errorf("expected amulet off-stage, got %q", got)
	}
	if len(w.Get("amulet").Contents) != 0 {
		t.Errorf("amulet should be empty")
	}
	hall := w.Get("hallway")
	for _, id := range []string{"drawer", "desk", "guard", PlayerID} {
		found := false
		for _, c := range hall.Contents {
			if c == id {
				found = true
			}
		}
		if !found {
			t.Errorf("expected %s in hallway contents %v", id, hall.Contents)
		}
	}
}

func TestNew_DoorWiring(t *testing.T) {
	w := New(testStory())

	door := w.Get("oak-door")
	if door.Connections["hallway"] != "north" {
		t.Errorf("expected door north of hallway, got %v", door.Connections)
	}
	if door.Connections["garden"] != "south" {
		t.Errorf("expected door south of garden, got %v", door.Connections)
	}
	if !door.Is("lockable") {
		t.Error("keyed door should be lockable")
	}
	if w.Get("hallway").Exits["north"] != "oak-door" {
		t.Errorf("expected hallway north exit through door, got %q", w.Get("hallway").Exits["north"])
	}
}

func TestMove_OneParentInvariant(t *testing.T) {
	w := New(testStory())

	w.Move("lamp", PlayerID)
	if got := w.Get("lamp").Location; got != PlayerID {
		t.Errorf("expected lamp held, got %q", got)
	}
	for _, id := range w.Get("desk").Contents {
		if id == "lamp" {
			t.Error("lamp still listed on desk after move")
		}
	}

	// Repeating a move must not duplicate the contents entry.
	w.Move("lamp", PlayerID)
	count := 0
	for _, id := range w.Player().Contents {
		if id == "lamp" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected lamp listed once, got %d", count)
	}
}

func TestRemove_DeletesEntity(t *testing.T) {
	w := New(testStory())
	w.Remove("lamp")

	if w.Get("lamp") != nil {
		t.Error("lamp still exists after remove")
	}
	for _, id := range w.Get("desk").Contents {
		if id == "lamp" {
			t.Error("desk still lists removed lamp")
		}
	}
}

func TestApplyEffect_MoveToCurrentLocation(t *testing.T) {
	w := New(testStory())
	w.ApplyEffect(types.EffectDef{
		Type:        types.EffectMove,
		Target:      "amulet",
		Destination: types.CurrentLocation,
	})

	if got := w.Get("amulet").Location; got != "hallway" {
		t.Errorf("expected amulet in hallway, got %q", got)
	}
}

func TestApplyEffect_SetProp(t *testing.T) {
	w := New(testStory())
	w.ApplyEffect(types.EffectDef{
		Type:   types.EffectSetProp,
		Target: "oak-door",
		Prop:   "locked",
		Value:  false,
	})

	if w.Get("oak-door").Is("locked") {
		t.Error("door still locked after set_prop")
	}
}

func TestMovePlayer_LockedDoorBlocks(t *testing.T) {
	w := New(testStory())
	// Even a door forced open stays impassable while locked.
	w.Get("oak-door").SetProp("open", true)

	out := w.MovePlayer("north")
	if !outputContains(out, "locked") {
		t.Errorf("expected locked message, got %v", out)
	}
	if got := w.Player().Location; got != "hallway" {
		t.Errorf("player moved through locked door to %q", got)
	}
}

func TestMovePlayer_ClosedDoorAutoOpens(t *testing.T) {
	w := New(testStory())
	w.Get("oak-door").SetProp("locked", false)

	out := w.MovePlayer("north")
	if !outputContains(out, "(First opening the oak door)") {
		t.Errorf("expected auto-open notice, got %v", out)
	}
	if !w.Get("oak-door").Is("open") {
		t.Error("door not open after traversal")
	}
	if got := w.Player().Location; got != "garden" {
		t.Errorf("expected player in garden, got %q", got)
	}
}

func TestMovePlayer_DirectExit(t *testing.T) {
	w := New(testStory())

	out := w.MovePlayer("south")
	if got := w.Player().Location; got != "closet" {
		t.Errorf("expected player in closet, got %q", got)
	}
	if !outputContains(out, "Closet") {
		t.Errorf("expected closet description, got %v", out)
	}
}

func TestMovePlayer_NoExit(t *testing.T) {
	w := New(testStory())

	out := w.MovePlayer("west")
	if !outputContains(out, "can't go that way") {
		t.Errorf("expected refusal, got %v", out)
	}
}

func TestLook_ListsContentsAndExits(t *testing.T) {
	w := New(testStory())
	w.Get("drawer").SetProp("open", true)

	out := w.Look()
	if !outputContains(out, "Hallway") {
		t.Errorf("expected room name, got %v", out)
	}
	if !outputContains(out, "drawer (containing brass key)") {
		t.Errorf("expected open drawer contents, got %v", out)
	}
	if !outputContains(out, "north (oak door)") {
		t.Errorf("expected door exit annotation, got %v", out)
	}
}

func TestLook_SkipsSceneryAndPlayer(t *testing.T) {
	w := New(testStory())

	out := w.Look()
	if outputContains(out, "yourself") {
		t.Errorf("player listed in room contents: %v", out)
	}
	// desk is scenery but still shows what it holds via the supporter
	// suffix on examine; the bare listing skips it.
	if outputContains(out, "You see: desk") {
		t.Errorf("scenery listed: %v", out)
	}
}

func TestInventory_WornSuffix(t *testing.T) {
	w := New(testStory())

	if !outputContains(w.Inventory(), "carrying nothing") {
		t.Errorf("expected empty inventory, got %v", w.Inventory())
	}

	w.Move("lamp", PlayerID)
	w.Get("lamp").SetProp("worn", true)
	out := w.Inventory()
	if !outputContains(out, "lamp (being worn)") {
		t.Errorf("expected worn suffix, got %v", out)
	}
}

func TestPlayerRoom_WalksUpFromEnterable(t *testing.T) {
	w := New(testStory())
	w.Get("drawer").SetProp("enterable", true)
	w.Move(PlayerID, "drawer")

	room := w.PlayerRoom()
	if room == nil || room.ID != "hallway" {
		t.Errorf("expected hallway, got %v", room)
	}
}
