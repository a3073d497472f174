package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"

	rosetree "github.com/tpoulsen/rose-tree"
)

// JSONLoader loads documents from JSON files. The document is walked through
// gjson results, so object members keep their document order in the
// resulting tree.
type JSONLoader struct {
	fs   FileSystem
	path string

	// Root is the value of the tree's synthetic root node. It defaults to
	// the file's base name and may be reassigned before Load.
	Root any
}

// NewJSONLoader creates a new JSON loader for the given path.
func NewJSONLoader(path string) *JSONLoader {
	return &JSONLoader{
		fs:   DefaultFS(),
		path: path,
		Root: filepath.Base(path),
	}
}

// NewJSONLoaderWithFS creates a JSON loader with a custom file system.
func NewJSONLoaderWithFS(fs FileSystem, path string) *JSONLoader {
	return &JSONLoader{
		fs:   fs,
		path: path,
		Root: filepath.Base(path),
	}
}

// Load reads the document from the configured path.
func (l *JSONLoader) Load() (rosetree.Tree[any], error) {
	return l.LoadFrom(l.path)
}

// LoadFrom reads a document from a specific path.
func (l *JSONLoader) LoadFrom(path string) (rosetree.Tree[any], error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return rosetree.Empty[any](), nil
		}
		return rosetree.Empty[any](), fmt.Errorf("reading document %s: %w", path, err)
	}
	return l.parse(path, data)
}

// LoadFromReader reads a document from an io.Reader.
func (l *JSONLoader) LoadFromReader(r io.Reader) (rosetree.Tree[any], error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return rosetree.Empty[any](), fmt.Errorf("reading document: %w", err)
	}
	return l.parse("<reader>", data)
}

func (l *JSONLoader) parse(source string, data []byte) (rosetree.Tree[any], error) {
	if !gjson.ValidBytes(data) {
		return rosetree.Empty[any](), &ParseError{
			Path:    source,
			Message: "invalid JSON",
		}
	}
	doc := gjson.ParseBytes(data)
	return rosetree.New[any](l.Root, jsonSubtrees(doc)...), nil
}

// jsonSubtrees renders a gjson result's members as child subtrees in
// document order.
func jsonSubtrees(res gjson.Result) []rosetree.Tree[any] {
	switch {
	case res.IsObject():
		var kids []rosetree.Tree[any]
		res.ForEach(func(key, value gjson.Result) bool {
			kids = append(kids, rosetree.New[any](key.String(), jsonSubtrees(value)...))
			return true
		})
		return kids
	case res.IsArray():
		var kids []rosetree.Tree[any]
		i := 0
		res.ForEach(func(_, value gjson.Result) bool {
			if value.IsObject() || value.IsArray() {
				kids = append(kids, rosetree.New[any](i, jsonSubtrees(value)...))
			} else {
				kids = append(kids, rosetree.New[any](value.Value()))
			}
			i++
			return true
		})
		return kids
	default:
		return []rosetree.Tree[any]{rosetree.New[any](res.Value())}
	}
}
