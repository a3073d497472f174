package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	rosetree "github.com/tpoulsen/rose-tree"
)

// YAMLLoader loads documents from YAML files. The document is walked as a
// yaml.Node tree rather than decoded into a map, so mapping members keep
// their document order in the resulting tree.
type YAMLLoader struct {
	fs   FileSystem
	path string

	// Root is the value of the tree's synthetic root node. It defaults to
	// the file's base name and may be reassigned before Load.
	Root any
}

// NewYAMLLoader creates a new YAML loader for the given path.
func NewYAMLLoader(path string) *YAMLLoader {
	return &YAMLLoader{
		fs:   DefaultFS(),
		path: path,
		Root: filepath.Base(path),
	}
}

// NewYAMLLoaderWithFS creates a YAML loader with a custom file system.
func NewYAMLLoaderWithFS(fs FileSystem, path string) *YAMLLoader {
	return &YAMLLoader{
		fs:   fs,
		path: path,
		Root: filepath.Base(path),
	}
}

// Load reads the document from the configured path.
func (l *YAMLLoader) Load() (rosetree.Tree[any], error) {
	return l.LoadFrom(l.path)
}

// LoadFrom reads a document from a specific path.
func (l *YAMLLoader) LoadFrom(path string) (rosetree.Tree[any], error) {
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
func (l *YAMLLoader) LoadFromReader(r io.Reader) (rosetree.Tree[any], error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return rosetree.Empty[any](), fmt.Errorf("reading document: %w", err)
	}
	return l.parse("<reader>", data)
}

func (l *YAMLLoader) parse(source string, data []byte) (rosetree.Tree[any], error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return rosetree.Empty[any](), &ParseError{
			Path:    source,
			Message: err.Error(),
			Err:     err,
		}
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		// Empty document.
		return rosetree.New[any](l.Root), nil
	}
	kids, err := yamlSubtrees(source, doc.Content[0])
	if err != nil {
		return rosetree.Empty[any](), err
	}
	return rosetree.New[any](l.Root, kids...), nil
}

// yamlSubtrees renders a yaml node's content as child subtrees, preserving
// document order.
func yamlSubtrees(source string, n *yaml.Node) ([]rosetree.Tree[any], error) {
	switch n.Kind {
	case yaml.MappingNode:
		// Content alternates key, value.
		kids := make([]rosetree.Tree[any], 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, err := yamlScalar(source, n.Content[i])
			if err != nil {
				return nil, err
			}
			sub, err := yamlSubtrees(source, n.Content[i+1])
			if err != nil {
				return nil, err
			}
			kids = append(kids, rosetree.New[any](key, sub...))
		}
		return kids, nil
	case yaml.SequenceNode:
		kids := make([]rosetree.Tree[any], 0, len(n.Content))
		for i, el := range n.Content {
			switch el.Kind {
			case yaml.MappingNode, yaml.SequenceNode:
				sub, err := yamlSubtrees(source, el)
				if err != nil {
					return nil, err
				}
				kids = append(kids, rosetree.New[any](i, sub...))
			default:
				v, err := yamlScalar(source, el)
				if err != nil {
					return nil, err
				}
				kids = append(kids, rosetree.New[any](v))
			}
		}
		return kids, nil
	case yaml.ScalarNode:
		v, err := yamlScalar(source, n)
		if err != nil {
			return nil, err
		}
		return []rosetree.Tree[any]{rosetree.New[any](v)}, nil
	case yaml.AliasNode:
		return yamlSubtrees(source, n.Alias)
	default:
		return nil, &ParseError{
			Path:    source,
			Message: fmt.Sprintf("unsupported yaml node kind %d at line %d", n.Kind, n.Line),
		}
	}
}

// yamlScalar decodes one scalar node into its typed Go value.
func yamlScalar(source string, n *yaml.Node) (any, error) {
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, &ParseError{
			Path:    source,
			Message: fmt.Sprintf("decoding scalar at line %d: %s", n.Line, err),
			Err:     err,
		}
	}
	return v, nil
}
