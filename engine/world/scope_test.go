package world

import (
	"strings"
	"testing"
)

func scopeIDs(w *World) map[string]bool {
	ids := map[string]bool{}
	for _, e := range w.Scope() {
		ids[e.ID] = true
	}
	return ids
}

func TestScope_ClosedContainerHidesContents(t *testing.T) {
	w := New(testStory())

	ids := scopeIDs(w)
	if ids["brass-key"] {
		t.Error("key inside closed drawer should not be in scope")
	}
	if !ids["drawer"] {
		t.Error("drawer itself should be in scope")
	}

	w.Get("drawer").SetProp("open", true)
	if !scopeIDs(w)["brass-key"] {
		t.Error("key in open drawer should be in scope")
	}
}

func TestScope_TransparentContainerVisibleNotReachable(t *testing.T) {
	w := New(testStory())
	w.Get("drawer").SetProp("transparent", true)

	key := w.Get("brass-key")
	if !scopeIDs(w)["brass-key"] {
		t.Error("key behind glass should be visible")
	}
	if w.IsAccessible(key) {
		t.Error("key behind glass should not be reachable")
	}
}

func TestScope_SupporterContents(t *testing.T) {
	w := New(testStory())

	if !scopeIDs(w)["lamp"] {
		t.Error("lamp on desk should be in scope")
	}
	if !w.IsAccessible(w.Get("lamp")) {
		t.Error("lamp on desk should be reachable")
	}
}

func TestScope_IncludesExitDoors(t *testing.T) {
	w := New(testStory())

	if !scopeIDs(w)["oak-door"] {
		t.Error("door on room exit should be in scope")
	}
}

func TestScope_InventoryRecursive(t *testing.T) {
	w := New(testStory())
	w.Move("drawer", PlayerID)
	w.Get("drawer").SetProp("open", true)

	ids := scopeIDs(w)
	if !ids["drawer"] || !ids["brass-key"] {
		t.Errorf("expected carried container and contents in scope, got %v", ids)
	}
	if !w.IsAccessible(w.Get("brass-key")) {
		t.Error("key in carried open drawer should be reachable")
	}
}

func TestIsAccessible_HeldItem(t *testing.T) {
	w := New(testStory())
	w.Move("lamp", PlayerID)

	if !w.IsAccessible(w.Get("lamp")) {
		t.Error("held item should be reachable")
	}
}

func TestFindByName_AliasAndSubstring(t *testing.T) {
	w := New(testStory())
	w.Get("drawer").SetProp("open", true)

	if e := w.FindByName("key"); e == nil || e.ID != "brass-key" {
		t.Errorf("alias lookup failed, got %v", e)
	}
	if e := w.FindByName("brass"); e == nil || e.ID != "brass-key" {
		t.Errorf("substring lookup failed, got %v", e)
	}
	if e := w.FindByName("OAK DOOR"); e == nil || e.ID != "oak-door" {
		t.Errorf("case-insensitive lookup failed, got %v", e)
	}
	if e := w.FindByName("amulet"); e != nil {
		t.Errorf("off-stage entity resolved: %v", e)
	}
}

func TestContext_MarksState(t *testing.T) {
	w := New(testStory())

	ctx := strings.Join(w.Context(), "\n")
	if !strings.Contains(ctx, "Location: Hallway") {
		t.Errorf("expected location line, got %q", ctx)
	}
	if !strings.Contains(ctx, "oak door (locked)") {
		t.Errorf("expected locked marker, got %q", ctx)
	}
	if !strings.Contains(ctx, "drawer (closed)") {
		t.Errorf("expected closed marker, got %q", ctx)
	}
	if !strings.Contains(ctx, "topics: password") {
		t.Errorf("expected guard topics, got %q", ctx)
	}
}
