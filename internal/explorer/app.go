package explorer

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	rosetree "github.com/tpoulsen/rose-tree"
	"github.com/tpoulsen/rose-tree/loader"
)

// ErrReadOnly indicates an edit was attempted in read-only mode.
var ErrReadOnly = errors.New("document is read-only")

// Options configures the explorer.
type Options struct {
	// Path is the document to explore. Required.
	Path string
	// LogLevel is the minimum level to log (debug, info, warn, error).
	LogLevel string
	// LogFile receives log output. Without it logging is disabled, since
	// stderr is unusable under a fullscreen terminal UI.
	LogFile string
	// ReadOnly disables edits (prune, modify, insert).
	ReadOnly bool
	// NoWatch disables the live-reload watcher.
	NoWatch bool
	// Debounce overrides the watcher's settle interval.
	Debounce time.Duration
}

type mode int

const (
	modeNormal mode = iota
	modeEdit
	modeSearch
	modeInsert
)

type insertPos int

const (
	insertLeft insertPos = iota
	insertRight
	insertFirstChild
	insertLastChild
)

// reloadSignal is posted into the tcell event queue by the watcher.
type reloadSignal struct{}

// App is the explorer application: one document, one zipper, one screen.
type App struct {
	screen  tcell.Screen
	log     *Logger
	logFile *os.File
	session string

	path     string
	readOnly bool
	noWatch  bool
	debounce time.Duration

	zipper  rosetree.Zipper[any]
	history *History
	watcher *Watcher

	mode     mode
	insertAt insertPos
	input    string

	status    string
	statusErr error
	quit      bool
}

// New creates an explorer for the document at opts.Path.
func New(opts Options) (*App, error) {
	if opts.Path == "" {
		return nil, errors.New("no document path given")
	}

	log := NullLogger
	var logFile *os.File
	if opts.LogFile != "" {
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		logFile = f
		log = NewLogger(LoggerConfig{
			Level:  ParseLogLevel(opts.LogLevel),
			Output: f,
			Prefix: "treewalk",
		})
	}

	session := uuid.NewString()
	log = log.WithField("session", session)

	tree, err := loadDocument(opts.Path)
	if err != nil {
		if logFile != nil {
			logFile.Close()
		}
		return nil, err
	}

	log.Info("loaded %s: %d nodes", opts.Path, tree.Len())

	return &App{
		log:      log,
		logFile:  logFile,
		session:  session,
		path:     opts.Path,
		readOnly: opts.ReadOnly,
		noWatch:  opts.NoWatch,
		debounce: opts.Debounce,
		zipper:   rosetree.FromTree(tree),
		history:  NewHistory(0),
		status:   "loaded",
	}, nil
}

// loadDocument loads the document at path into a tree.
func loadDocument(path string) (rosetree.Tree[any], error) {
	l, err := loader.ForPath(path)
	if err != nil {
		return rosetree.Empty[any](), err
	}
	tree, err := l.Load()
	if err != nil {
		return rosetree.Empty[any](), err
	}
	if tree.IsEmpty() {
		return rosetree.Empty[any](), fmt.Errorf("document not found: %s", path)
	}
	return tree, nil
}

// Run owns the terminal until the user quits. It returns nil on a normal
// quit.
func (a *App) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	a.screen = screen
	defer a.shutdown()

	if !a.noWatch {
		w, err := NewWatcher(a.path, a.debounce, func() {
			// Runs on the watcher goroutine; hand off to the event loop.
			_ = screen.PostEvent(tcell.NewEventInterrupt(reloadSignal{}))
		}, a.log)
		if err != nil {
			a.log.Warn("watch disabled: %v", err)
		} else {
			a.watcher = w
		}
	}

	for !a.quit {
		a.draw()
		ev := a.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			a.handleKey(ev)
		case *tcell.EventResize:
			a.screen.Sync()
		case *tcell.EventInterrupt:
			if _, ok := ev.Data().(reloadSignal); ok {
				a.reloadDocument()
			}
		}
	}
	return nil
}

func (a *App) shutdown() {
	if a.watcher != nil {
		a.watcher.Close()
		a.watcher = nil
	}
	if a.screen != nil {
		a.screen.Fini()
		a.screen = nil
	}
	a.log.Info("session ended")
	if a.logFile != nil {
		a.logFile.Close()
		a.logFile = nil
	}
}

// reloadDocument reloads the document from disk, resetting the zipper to the
// new tree's root and clearing history: the old tree's positions have no
// meaning in the new one.
func (a *App) reloadDocument() {
	tree, err := loadDocument(a.path)
	if err != nil {
		a.log.Error("reload failed: %v", err)
		a.setError(err)
		return
	}
	a.zipper = rosetree.FromTree(tree)
	a.history.Clear()
	a.mode = modeNormal
	a.input = ""
	a.setStatus(fmt.Sprintf("reloaded (%d nodes)", tree.Len()))
	a.log.Info("reloaded %s: %d nodes", a.path, tree.Len())
}

func (a *App) setStatus(msg string) {
	a.status = msg
	a.statusErr = nil
}

func (a *App) setError(err error) {
	a.statusErr = err
}

func (a *App) handleKey(ev *tcell.EventKey) {
	if a.mode != modeNormal {
		a.handleInputKey(ev)
		return
	}

	if ev.Key() == tcell.KeyCtrlC {
		a.quit = true
		return
	}
	if ev.Key() == tcell.KeyCtrlR {
		a.redo()
		return
	}

	switch ev.Key() {
	case tcell.KeyLeft:
		a.move("ascend", rosetree.Zipper[any].Ascend)
		return
	case tcell.KeyRight, tcell.KeyEnter:
		a.move("first child", rosetree.Zipper[any].FirstChild)
		return
	case tcell.KeyDown:
		a.move("next sibling", rosetree.Zipper[any].NextSibling)
		return
	case tcell.KeyUp:
		a.move("previous sibling", rosetree.Zipper[any].PrevSibling)
		return
	}

	if ev.Key() != tcell.KeyRune {
		return
	}
	switch ev.Rune() {
	case 'q':
		a.quit = true
	case 'h':
		a.move("ascend", rosetree.Zipper[any].Ascend)
	case 'l':
		a.move("first child", rosetree.Zipper[any].FirstChild)
	case 'j':
		a.move("next sibling", rosetree.Zipper[any].NextSibling)
	case 'k':
		a.move("previous sibling", rosetree.Zipper[any].PrevSibling)
	case 'J':
		a.move("last child", rosetree.Zipper[any].LastChild)
	case 'g':
		a.toRoot()
	case 'G':
		a.zipper = a.zipper.ToLeaf()
		a.setStatus("leaf")
	case 'x':
		a.prune()
	case 'e':
		a.startEdit()
	case 'i':
		a.startInsert(insertLeft)
	case 'a':
		a.startInsert(insertRight)
	case 'O':
		a.startInsert(insertFirstChild)
	case 'o':
		a.startInsert(insertLastChild)
	case '/':
		a.mode = modeSearch
		a.input = ""
	case 'u':
		a.undo()
	}
}

// move applies one fallible navigation step, reporting the outcome on the
// status bar.
func (a *App) move(name string, step rosetree.Step[any]) {
	next, err := step(a.zipper)
	if err != nil {
		a.setError(err)
		return
	}
	a.zipper = next
	a.setStatus(name)
}

func (a *App) toRoot() {
	for a.zipper.HasParent() {
		up, err := a.zipper.Ascend()
		if err != nil {
			break
		}
		a.zipper = up
	}
	a.setStatus("root")
}

func (a *App) prune() {
	if a.readOnly {
		a.setError(ErrReadOnly)
		return
	}
	before := a.zipper
	next, err := a.zipper.Prune()
	if err != nil {
		a.setError(err)
		return
	}
	a.history.Push("prune", before)
	a.zipper = next
	a.setStatus("pruned")
	a.log.Debug("pruned subtree at %v", before.Path())
}

func (a *App) startEdit() {
	if a.readOnly {
		a.setError(ErrReadOnly)
		return
	}
	a.mode = modeEdit
	a.input = fmt.Sprint(a.zipper.Focus().Value())
}

func (a *App) startInsert(at insertPos) {
	if a.readOnly {
		a.setError(ErrReadOnly)
		return
	}
	a.mode = modeInsert
	a.insertAt = at
	a.input = ""
}

func (a *App) undo() {
	prev, err := a.history.Undo(a.zipper)
	if err != nil {
		a.setError(err)
		return
	}
	a.zipper = prev
	a.setStatus("undo")
}

func (a *App) redo() {
	next, err := a.history.Redo(a.zipper)
	if err != nil {
		a.setError(err)
		return
	}
	a.zipper = next
	a.setStatus("redo")
}

func (a *App) handleInputKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		a.mode = modeNormal
		a.input = ""
		a.setStatus("cancelled")
	case tcell.KeyEnter:
		a.commitInput()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(a.input) > 0 {
			a.input = a.input[:len(a.input)-1]
		}
	case tcell.KeyRune:
		a.input += string(ev.Rune())
	}
}

// commitInput applies the pending edit, search or insert and returns to
// normal mode.
func (a *App) commitInput() {
	input := a.input
	committed := a.mode
	a.mode = modeNormal
	a.input = ""

	switch committed {
	case modeEdit:
		before := a.zipper
		a.zipper = a.zipper.Modify(func(any) any { return input })
		a.history.Push("modify", before)
		a.setStatus("modified")
	case modeSearch:
		a.findChild(input)
	case modeInsert:
		a.insert(input)
	}
}

// findChild descends to the first child whose rendered value has the given
// prefix.
func (a *App) findChild(prefix string) {
	next, err := a.zipper.FindChild(func(c rosetree.Tree[any]) bool {
		return strings.HasPrefix(fmt.Sprint(c.Value()), prefix)
	})
	if err != nil {
		a.setError(err)
		return
	}
	a.zipper = next
	a.setStatus(fmt.Sprintf("found %v", next.Focus().Value()))
}

func (a *App) insert(value string) {
	if value == "" {
		a.setStatus("cancelled")
		return
	}
	before := a.zipper
	sub := rosetree.New[any](value)
	switch a.insertAt {
	case insertLeft:
		next, err := a.zipper.InsertLeft(sub)
		if err != nil {
			a.setError(err)
			return
		}
		a.zipper = next
		a.history.Push("insert left", before)
	case insertRight:
		next, err := a.zipper.InsertRight(sub)
		if err != nil {
			a.setError(err)
			return
		}
		a.zipper = next
		a.history.Push("insert right", before)
	case insertFirstChild:
		a.zipper = a.zipper.InsertFirstChild(sub)
		a.history.Push("insert first child", before)
	default:
		a.zipper = a.zipper.InsertLastChild(sub)
		a.history.Push("insert last child", before)
	}
	a.setStatus(fmt.Sprintf("inserted %s", value))
}
