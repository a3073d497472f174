package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	rosetree "github.com/tpoulsen/rose-tree"
)

// TOMLLoader loads documents from TOML files. TOML tables are unordered, so
// sibling order in the resulting tree is the sorted key order.
type TOMLLoader struct {
	fs   FileSystem
	path string

	// Root is the value of the tree's synthetic root node. It defaults to
	// the file's base name and may be reassigned before Load.
	Root any
}

// NewTOMLLoader creates a new TOML loader for the given path.
func NewTOMLLoader(path string) *TOMLLoader {
	return &TOMLLoader{
		fs:   DefaultFS(),
		path: path,
		Root: filepath.Base(path),
	}
}

// NewTOMLLoaderWithFS creates a TOML loader with a custom file system.
func NewTOMLLoaderWithFS(fs FileSystem, path string) *TOMLLoader {
	return &TOMLLoader{
		fs:   fs,
		path: path,
		Root: filepath.Base(path),
	}
}

// Load reads the document from the configured path.
func (l *TOMLLoader) Load() (rosetree.Tree[any], error) {
	return l.LoadFrom(l.path)
}

// LoadFrom reads a document from a specific path.
func (l *TOMLLoader) LoadFrom(path string) (rosetree.Tree[any], error) {
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
func (l *TOMLLoader) LoadFromReader(r io.Reader) (rosetree.Tree[any], error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return rosetree.Empty[any](), fmt.Errorf("reading document: %w", err)
	}
	return l.parse("<reader>", data)
}

func (l *TOMLLoader) parse(source string, data []byte) (rosetree.Tree[any], error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return rosetree.Empty[any](), &ParseError{
			Path:    source,
			Message: err.Error(),
			Err:     err,
		}
	}
	return mapTree(l.Root, doc), nil
}
