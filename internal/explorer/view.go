package explorer

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	rosetree "github.com/tpoulsen/rose-tree"
)

// treeLine is one rendered row of the tree panel.
type treeLine struct {
	Text    string
	Depth   int
	Focused bool
}

// treeLines renders the whole tree as indented rows in preorder, marking the
// row addressed by focusPath. The empty tree renders no rows.
func treeLines(root rosetree.Tree[any], focusPath []int) []treeLine {
	if root.IsEmpty() {
		return nil
	}
	lines := make([]treeLine, 0, root.Len())
	var walk func(t rosetree.Tree[any], path []int, depth int)
	walk = func(t rosetree.Tree[any], path []int, depth int) {
		lines = append(lines, treeLine{
			Text:    strings.Repeat("  ", depth) + fmt.Sprint(t.Value()),
			Depth:   depth,
			Focused: pathsEqual(path, focusPath),
		})
		for i, c := range t.Children() {
			walk(c, append(path, i), depth+1)
		}
	}
	walk(root, nil, 0)
	return lines
}

func pathsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// breadcrumbs renders the values from the root down to the focus.
func breadcrumbs(z rosetree.Zipper[any]) string {
	root := z.Root()
	if root.IsEmpty() {
		return ""
	}
	parts := []string{fmt.Sprint(root.Value())}
	cur := root
	for _, idx := range z.Path() {
		cur = cur.Children()[idx]
		parts = append(parts, fmt.Sprint(cur.Value()))
	}
	return strings.Join(parts, " > ")
}

// focusRow returns the index of the focused row in the rendered lines, or 0
// if none is marked.
func focusRow(lines []treeLine) int {
	for i, l := range lines {
		if l.Focused {
			return i
		}
	}
	return 0
}

// Panel styles.
var (
	styleDefault = tcell.StyleDefault
	styleFocus   = tcell.StyleDefault.Reverse(true)
	styleCrumbs  = tcell.StyleDefault.Bold(true)
	styleStatus  = tcell.StyleDefault.Reverse(true)
	styleError   = tcell.StyleDefault.Foreground(tcell.ColorRed).Reverse(true)
)

// draw paints the explorer onto the screen: breadcrumb header, tree panel
// scrolled to keep the focus visible, optional input prompt, status bar.
func (a *App) draw() {
	if a.screen == nil {
		return
	}
	a.screen.Clear()
	width, height := a.screen.Size()
	if width <= 0 || height < 3 {
		a.screen.Show()
		return
	}

	drawText(a.screen, 0, 0, width, breadcrumbs(a.zipper), styleCrumbs)

	panelTop := 1
	panelHeight := height - 2
	inputRow := -1
	if a.mode != modeNormal {
		panelHeight--
		inputRow = height - 2
	}

	lines := treeLines(a.zipper.Root(), a.zipper.Path())
	offset := scrollOffset(focusRow(lines), len(lines), panelHeight)
	for row := 0; row < panelHeight; row++ {
		i := offset + row
		if i >= len(lines) {
			break
		}
		style := styleDefault
		if lines[i].Focused {
			style = styleFocus
		}
		drawText(a.screen, 0, panelTop+row, width, lines[i].Text, style)
	}

	if inputRow >= 0 {
		prompt := a.prompt() + a.input
		drawText(a.screen, 0, inputRow, width, prompt, styleDefault)
		a.screen.ShowCursor(len(prompt), inputRow)
	} else {
		a.screen.HideCursor()
	}

	style := styleStatus
	if a.statusErr != nil {
		style = styleError
	}
	drawText(a.screen, 0, height-1, width, a.statusText(), style)

	a.screen.Show()
}

// scrollOffset picks the first visible row so the focused row stays on
// screen.
func scrollOffset(focus, total, visible int) int {
	if visible <= 0 || total <= visible {
		return 0
	}
	// Keep the focus roughly centered.
	offset := focus - visible/2
	if offset < 0 {
		offset = 0
	}
	if offset > total-visible {
		offset = total - visible
	}
	return offset
}

func drawText(s tcell.Screen, x, y, maxWidth int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		if col >= x+maxWidth {
			return
		}
		s.SetContent(col, y, r, nil, style)
		col++
	}
	// Pad reverse-video bars to the full width.
	if style == styleStatus || style == styleError {
		for ; col < x+maxWidth; col++ {
			s.SetContent(col, y, ' ', nil, style)
		}
	}
}

// prompt returns the input-line prefix for the current mode.
func (a *App) prompt() string {
	switch a.mode {
	case modeEdit:
		return "edit: "
	case modeSearch:
		return "find child: "
	case modeInsert:
		switch a.insertAt {
		case insertLeft:
			return "insert left: "
		case insertRight:
			return "insert right: "
		case insertFirstChild:
			return "insert first child: "
		default:
			return "insert last child: "
		}
	default:
		return ""
	}
}

// statusText renders the status bar: document, position, last action or
// error, watch and read-only state.
func (a *App) statusText() string {
	var b strings.Builder
	fmt.Fprintf(&b, " %s", a.path)
	if a.readOnly {
		b.WriteString(" [readonly]")
	}
	fmt.Fprintf(&b, " | depth %d", a.zipper.Depth())
	if p := a.zipper.Path(); len(p) > 0 {
		fmt.Fprintf(&b, " path %v", p)
	}
	if a.statusErr != nil {
		fmt.Fprintf(&b, " | %v", a.statusErr)
	} else if a.status != "" {
		fmt.Fprintf(&b, " | %s", a.status)
	}
	if a.watcher != nil {
		b.WriteString(" | watching")
	}
	if n := a.history.UndoCount(); n > 0 {
		fmt.Fprintf(&b, " | undo:%d", n)
	}
	return b.String()
}
