package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers the story constructors and effect helpers as
// globals.
func registerAPI(L *lua.LState, coll *collector) {
	// Story { id = "...", title = "...", start = "...", ... }
	L.SetGlobal("Story", L.NewFunction(func(L *lua.LState) int {
		coll.story = L.CheckTable(1)
		return 0
	}))

	// Room "id" { ... } — curried: Room("id") returns a function taking a
	// table. Same shape for every constructor below.
	L.SetGlobal("Room", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			coll.rooms = append(coll.rooms, rawDef{id: id, table: L.CheckTable(1)})
			return 0
		}))
		return 1
	}))

	L.SetGlobal("Door", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			coll.doors = append(coll.doors, rawDef{id: id, table: L.CheckTable(1)})
			return 0
		}))
		return 1
	}))

	for kind, global := range map[string]string{
		"thing":     "Item",
		"container": "Container",
		"supporter": "Supporter",
		"person":    "Person",
	} {
		kind := kind
		L.SetGlobal(global, L.NewFunction(func(L *lua.LState) int {
			id := L.CheckString(1)
			L.Push(L.NewFunction(func(L *lua.LState) int {
				coll.things = append(coll.things, rawDef{id: id, kind: kind, table: L.CheckTable(1)})
				return 0
			}))
			return 1
		}))
	}

	// Move("entity", "destination") — effect marker table.
	L.SetGlobal("Move", L.NewFunction(func(L *lua.LState) int {
		target := L.CheckString(1)
		dest := L.CheckString(2)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("move"))
		tbl.RawSetString("target", lua.LString(target))
		tbl.RawSetString("destination", lua.LString(dest))
		L.Push(tbl)
		return 1
	}))

	// SetProp("entity", "prop", value) — effect marker table.
	L.SetGlobal("SetProp", L.NewFunction(func(L *lua.LState) int {
		target := L.CheckString(1)
		prop := L.CheckString(2)
		value := L.Get(3)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("set_prop"))
		tbl.RawSetString("target", lua.LString(target))
		tbl.RawSetString("prop", lua.LString(prop))
		tbl.RawSetString("value", value)
		L.Push(tbl)
		return 1
	}))
}
