// Package loader loads Lua or YAML story content into Go structs up front.
// The Lua VM is discarded after loading — zero Lua at runtime.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nathoo/lorelock/types"
	lua "github.com/yuin/gopher-lua"
)

// collector accumulates Lua definitions during file execution.
type collector struct {
	story  *lua.LTable
	rooms  []rawDef
	doors  []rawDef
	things []rawDef
}

// rawDef holds one definition table before compilation.
type rawDef struct {
	id    string
	kind  string
	table *lua.LTable
}

// Load reads a story from path: a directory of .lua files, or a single .lua
// or .yaml file. The result is validated before it is returned.
func Load(path string) (*types.StoryDef, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading story path %s: %w", path, err)
	}
	if !info.IsDir() {
		switch filepath.Ext(path) {
		case ".yaml", ".yml":
			return LoadYAML(path)
		case ".lua":
			return loadLua([]string{path})
		}
		return nil, fmt.Errorf("unsupported story file %s", path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("reading story directory %s: %w", path, err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			files = append(files, filepath.Join(path, e.Name()))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", path)
	}
	sortStoryFirst(files)
	return loadLua(files)
}

func loadLua(files []string) (*types.StoryDef, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range files {
		if err := L.DoFile(f); err != nil {
			return nil, fmt.Errorf("executing %s: %w", filepath.Base(f), err)
		}
	}

	story, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling story data: %w", err)
	}
	if err := validate(story); err != nil {
		return nil, err
	}
	return story, nil
}

// sortStoryFirst orders files so story.lua runs before the rest, which stay
// alphabetical.
func sortStoryFirst(files []string) {
	sort.Slice(files, func(i, j int) bool {
		bi, bj := filepath.Base(files[i]), filepath.Base(files[j])
		if (bi == "story.lua") != (bj == "story.lua") {
			return bi == "story.lua"
		}
		return bi < bj
	})
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes globals that reach outside the VM.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}
	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("randomseed", lua.LNil)
		}
	}
}
