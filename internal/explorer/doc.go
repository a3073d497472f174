// Package explorer implements the interactive terminal explorer behind the
// treewalk command. It loads a structured document into a rose tree, wraps
// the tree in a zipper, and maps key presses onto zipper navigation and
// editing operations, rendering the full tree with the focus highlighted.
//
// Because trees and zippers are immutable values, undo and redo are plain
// snapshot stacks, and a live-reload watcher can safely swap in a freshly
// loaded tree while older zippers remain valid.
package explorer
