// Package loader decodes structured documents (TOML, YAML, JSON, Lua) into
// rose trees.
//
// Each loader reads one document and produces a rosetree.Tree[any] rooted at
// a synthetic node, since most document formats allow several top-level
// members while a tree has exactly one root. The mapping is uniform across
// formats: an object member becomes a node valued by its key, a scalar
// becomes a leaf child, and an array element becomes a leaf for scalars or
// an index-valued node for composites. JSON and YAML walks preserve document
// order; TOML tables and Lua hash parts are unordered, so their keys are
// sorted for a deterministic tree.
package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	rosetree "github.com/tpoulsen/rose-tree"
)

// ErrUnknownFormat indicates a file extension no loader is registered for.
var ErrUnknownFormat = errors.New("unknown document format")

// Loader is the interface for document loaders.
type Loader interface {
	// Load reads the document from the configured source and returns its
	// tree. Returns the empty tree and nil error if the source does not
	// exist (not an error).
	Load() (rosetree.Tree[any], error)
}

// FileLoader is the interface for loaders that read from files.
type FileLoader interface {
	Loader
	// LoadFrom reads a document from a specific path.
	LoadFrom(path string) (rosetree.Tree[any], error)
}

// ReaderLoader is the interface for loaders that read from an io.Reader.
type ReaderLoader interface {
	// LoadFromReader reads a document from a reader.
	LoadFromReader(r io.Reader) (rosetree.Tree[any], error)
}

// FileSystem is an abstraction for file system operations, allowing tests to
// substitute an in-memory implementation.
type FileSystem interface {
	fs.FS
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// Stat returns file info for path.
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// Open implements fs.FS.
func (OSFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// ForPath returns a loader selected by the path's extension. The root node
// of the loaded tree carries the file's base name. Unrecognized extensions
// fail with ErrUnknownFormat.
func ForPath(path string) (FileLoader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return NewTOMLLoader(path), nil
	case ".yaml", ".yml":
		return NewYAMLLoader(path), nil
	case ".json":
		return NewJSONLoader(path), nil
	case ".lua":
		return NewLuaLoader(path), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// ParseError represents an error while parsing a document.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// mapTree builds a tree from generic decoded data (maps, slices, scalars)
// under the given root value, sorting map keys for deterministic order.
// TOML and Lua documents decode to unordered maps and go through here.
func mapTree(root, data any) rosetree.Tree[any] {
	return rosetree.New[any](root, mapSubtrees(data)...)
}

func mapSubtrees(data any) []rosetree.Tree[any] {
	switch v := data.(type) {
	case nil:
		return nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		kids := make([]rosetree.Tree[any], len(keys))
		for i, k := range keys {
			kids[i] = rosetree.New[any](k, mapSubtrees(v[k])...)
		}
		return kids
	case []any:
		kids := make([]rosetree.Tree[any], len(v))
		for i, el := range v {
			kids[i] = elementTree(i, el)
		}
		return kids
	default:
		return []rosetree.Tree[any]{rosetree.New[any](v)}
	}
}

// elementTree renders one array element: scalars become leaves, composites
// become nodes valued by their index.
func elementTree(idx int, el any) rosetree.Tree[any] {
	switch el.(type) {
	case map[string]any, []any:
		return rosetree.New[any](idx, mapSubtrees(el)...)
	default:
		return rosetree.New[any](el)
	}
}
