package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"

	rosetree "github.com/tpoulsen/rose-tree"
)

// LuaLoader loads documents produced by Lua scripts. The script runs in a
// sandboxed state with only the base, table, string and math libraries open
// (no io, os, debug or package) and must return a table, which becomes the
// document. Hash parts of Lua tables are unordered, so their keys are sorted
// in the resulting tree; array parts keep their order.
type LuaLoader struct {
	fs   FileSystem
	path string

	// Root is the value of the tree's synthetic root node. It defaults to
	// the file's base name and may be reassigned before Load.
	Root any
}

// NewLuaLoader creates a new Lua loader for the given path.
func NewLuaLoader(path string) *LuaLoader {
	return &LuaLoader{
		fs:   DefaultFS(),
		path: path,
		Root: filepath.Base(path),
	}
}

// NewLuaLoaderWithFS creates a Lua loader with a custom file system.
func NewLuaLoaderWithFS(fs FileSystem, path string) *LuaLoader {
	return &LuaLoader{
		fs:   fs,
		path: path,
		Root: filepath.Base(path),
	}
}

// Load reads and evaluates the script at the configured path.
func (l *LuaLoader) Load() (rosetree.Tree[any], error) {
	return l.LoadFrom(l.path)
}

// LoadFrom reads and evaluates the script at a specific path.
func (l *LuaLoader) LoadFrom(path string) (rosetree.Tree[any], error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return rosetree.Empty[any](), nil
		}
		return rosetree.Empty[any](), fmt.Errorf("reading document %s: %w", path, err)
	}
	return l.parse(path, data)
}

// LoadFromReader reads and evaluates a script from an io.Reader.
func (l *LuaLoader) LoadFromReader(r io.Reader) (rosetree.Tree[any], error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return rosetree.Empty[any](), fmt.Errorf("reading document: %w", err)
	}
	return l.parse("<reader>", data)
}

func (l *LuaLoader) parse(source string, data []byte) (tree rosetree.Tree[any], err error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibraries(L)

	// gopher-lua panics on some internal faults; fold those into ParseError
	// like any other script failure.
	defer func() {
		if r := recover(); r != nil {
			tree = rosetree.Empty[any]()
			err = &ParseError{
				Path:    source,
				Message: fmt.Sprintf("lua panic: %v", r),
			}
		}
	}()

	if doErr := L.DoString(string(data)); doErr != nil {
		return rosetree.Empty[any](), &ParseError{
			Path:    source,
			Message: doErr.Error(),
			Err:     doErr,
		}
	}

	ret := L.Get(-1)
	tbl, ok := ret.(*lua.LTable)
	if !ok {
		return rosetree.Empty[any](), &ParseError{
			Path:    source,
			Message: fmt.Sprintf("script must return a table, returned %s", ret.Type()),
		}
	}
	doc := tableToGo(tbl, make(map[*lua.LTable]bool))
	return mapTree(l.Root, doc), nil
}

// openSafeLibraries opens only Lua standard libraries that cannot touch the
// host: base, table, string and math. io, os, debug and package stay closed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// luaToGo converts a Lua value into plain Go data. Functions and other
// non-data values come back as nil; visited breaks table cycles.
func luaToGo(lv lua.LValue, visited map[*lua.LTable]bool) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if visited[v] {
			return nil
		}
		visited[v] = true
		return tableToGo(v, visited)
	default:
		return nil
	}
}

// tableToGo converts a Lua table to a Go slice when it is a contiguous
// 1-based array, and to a map[string]any otherwise.
func tableToGo(t *lua.LTable, visited map[*lua.LTable]bool) any {
	isArray := true
	maxN := 0
	count := 0
	t.ForEach(func(k, _ lua.LValue) {
		count++
		if kn, ok := k.(lua.LNumber); ok {
			n := int(kn)
			if float64(n) == float64(kn) && n > 0 {
				if n > maxN {
					maxN = n
				}
				return
			}
		}
		isArray = false
	})

	if isArray && maxN > 0 && count == maxN {
		arr := make([]any, maxN)
		for i := 1; i <= maxN; i++ {
			arr[i-1] = luaToGo(t.RawGetInt(i), visited)
		}
		return arr
	}

	m := make(map[string]any, count)
	t.ForEach(func(k, v lua.LValue) {
		var key string
		switch kv := k.(type) {
		case lua.LString:
			key = string(kv)
		case lua.LNumber:
			key = fmt.Sprintf("%v", float64(kv))
		default:
			key = k.String()
		}
		m[key] = luaToGo(v, visited)
	})
	return m
}
