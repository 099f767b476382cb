package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/interaction"
	"github.com/matzehuels/auteur/pkg/session"
	"github.com/matzehuels/auteur/pkg/workspace"
)

// Terminal cells per grid cell.
const (
	colChars = 20
	rowLines = 2
)

// Canvas styles
var (
	canvasSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	canvasActiveStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	canvasBoardStyle    = lipgloss.NewStyle().Foreground(colorGray)
	canvasDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

const canvasHelp = "tab select  ←↑↓→ move  shift+←↑↓→ resize  space grab  r grab-resize  s save  q quit"

// canvasCommand opens the interactive terminal canvas.
func (c *CLI) canvasCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "canvas",
		Short: "Arrange boards interactively in the terminal",
		Long: `Canvas draws the project's grid in the terminal. Select a board with tab and
move or resize it one cell at a time with the arrow keys, or grab it with
space and steer it before dropping it with enter. Unsaved changes are written
when the canvas closes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws, h, err := c.openWorkspace(ctx)
			if err != nil {
				return err
			}
			defer h.Close()

			sess := session.New(ws, h, session.WithLogger(c.Logger))
			if _, err := tea.NewProgram(newCanvasModel(sess), tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
				return err
			}
			wrote, err := sess.Flush(context.WithoutCancel(ctx))
			if err != nil {
				return err
			}
			if wrote {
				printSuccess("Saved %s", StyleValue.Render(h.String()))
			}
			return nil
		},
	}
}

// =============================================================================
// canvasModel - Interactive board arrangement
// =============================================================================

// canvasModel drives the workspace's interaction engine from the keyboard.
// Arrow keys perform a whole gesture per key press; grab mode holds a
// gesture open and steers a virtual pointer one cell per key.
type canvasModel struct {
	sess *session.Session
	ws   *workspace.Workspace

	cursor int
	grab   bool
	px, py float64 // virtual pointer while grabbing

	top    int // first visible grid row
	rows   int // visible grid rows
	status string
	quit   bool
}

type savedMsg struct{ err error }

func newCanvasModel(sess *session.Session) canvasModel {
	return canvasModel{sess: sess, ws: sess.Workspace(), rows: 12}
}

func (m canvasModel) Init() tea.Cmd {
	return nil
}

func (m canvasModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.rows = max(3, (msg.Height-6)/rowLines)
	case savedMsg:
		if msg.err != nil {
			m.status = "save failed: " + msg.err.Error()
		} else {
			m.status = "saved"
		}
	case tea.KeyMsg:
		key := msg.String()
		if m.grab {
			m = m.updateGrab(key)
			break
		}
		n := len(m.ws.Boards())
		switch key {
		case "q", "ctrl+c", "esc":
			m.quit = true
			return m, tea.Quit
		case "tab":
			if n > 0 {
				m.cursor = (m.cursor + 1) % n
			}
		case "shift+tab":
			if n > 0 {
				m.cursor = (m.cursor - 1 + n) % n
			}
		case " ":
			m = m.startGrab(interaction.Drag)
		case "r":
			m = m.startGrab(interaction.Resize)
		case "s":
			sess := m.sess
			return m, func() tea.Msg { return savedMsg{err: sess.Save(context.Background())} }
		default:
			if dx, dy, kind, ok := arrow(key); ok {
				m = m.nudge(kind, dx, dy)
			}
		}
	}
	m = m.scrollToSelected()
	return m, nil
}

// arrow maps arrow keys to a one-cell step. Shifted arrows (and HJKL) resize.
func arrow(key string) (dx, dy int, kind interaction.Kind, ok bool) {
	kind = interaction.Drag
	if k, found := strings.CutPrefix(key, "shift+"); found {
		key, kind = k, interaction.Resize
	}
	switch key {
	case "left", "h":
		return -1, 0, kind, true
	case "right", "l":
		return 1, 0, kind, true
	case "up", "k":
		return 0, -1, kind, true
	case "down", "j":
		return 0, 1, kind, true
	case "H":
		return -1, 0, interaction.Resize, true
	case "L":
		return 1, 0, interaction.Resize, true
	case "K":
		return 0, -1, interaction.Resize, true
	case "J":
		return 0, 1, interaction.Resize, true
	}
	return 0, 0, kind, false
}

func (m canvasModel) selected() (board.Board, bool) {
	bs := m.ws.Boards()
	if len(bs) == 0 {
		return board.Board{}, false
	}
	return bs[min(m.cursor, len(bs)-1)], true
}

// nudge performs a complete one-cell gesture on the selected board.
func (m canvasModel) nudge(kind interaction.Kind, dx, dy int) canvasModel {
	b, ok := m.selected()
	if !ok {
		return m
	}
	g := m.ws.Grid()
	if !m.ws.PointerDown(kind, b.ID, 0, 0) {
		return m
	}
	c, changed := m.ws.PointerMove(float64(dx)*g.CellWidth(), float64(dy)*g.CellHeight())
	m.ws.PointerUp()
	if changed {
		m.status = describeChange(b.Title, c)
	} else {
		m.status = b.Title + " is already at the edge"
	}
	return m
}

func (m canvasModel) startGrab(kind interaction.Kind) canvasModel {
	b, ok := m.selected()
	if !ok || !m.ws.PointerDown(kind, b.ID, 0, 0) {
		return m
	}
	m.grab, m.px, m.py = true, 0, 0
	m.status = "grabbed " + b.Title
	return m
}

func (m canvasModel) updateGrab(key string) canvasModel {
	switch key {
	case "enter", " ":
		m.ws.PointerUp()
		m.grab = false
		m.status = "dropped"
	case "esc", "q", "ctrl+c":
		m.ws.PointerLeave()
		m.grab = false
		m.status = "released"
	default:
		dx, dy, _, ok := arrow(key)
		if !ok {
			return m
		}
		g := m.ws.Grid()
		m.px += float64(dx) * g.CellWidth()
		m.py += float64(dy) * g.CellHeight()
		if c, changed := m.ws.PointerMove(m.px, m.py); changed {
			m.status = describeChange("", c)
		}
	}
	return m
}

func describeChange(title string, c interaction.Change) string {
	prefix := ""
	if title != "" {
		prefix = title + " "
	}
	if c.Kind == interaction.Resize {
		return fmt.Sprintf("%sresized to %d×%d", prefix, c.W, c.H)
	}
	return fmt.Sprintf("%smoved to column %d, row %d", prefix, c.X+1, c.Y+1)
}

// scrollToSelected keeps the selected board inside the visible rows.
func (m canvasModel) scrollToSelected() canvasModel {
	b, ok := m.selected()
	if !ok {
		return m
	}
	if b.Y < m.top {
		m.top = b.Y
	}
	if bottom := b.Y + min(b.H, m.rows); bottom > m.top+m.rows {
		m.top = bottom - m.rows
	}
	m.top = max(m.top, 0)
	return m
}

func (m canvasModel) View() string {
	if m.quit {
		return ""
	}
	snap := m.ws.Snapshot()
	var b strings.Builder

	b.WriteString(StyleTitle.Render(snap.Name))
	b.WriteString("  ")
	b.WriteString(canvasDimStyle.Render(fmt.Sprintf("%s · %s · %s · %d boards",
		snap.Settings.FrameRate, snap.Settings.AspectRatio, snap.Settings.Resolution, len(snap.Boards))))
	if m.sess.Dirty() {
		b.WriteString("  " + StyleWarning.Render("● unsaved"))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderGrid())
	b.WriteString("\n")

	if state, _ := m.ws.Interaction(); state != interaction.Idle {
		b.WriteString(canvasActiveStyle.Render(state.String()) + "  ")
	}
	b.WriteString(m.status)
	b.WriteString("\n")
	if m.grab {
		b.WriteString(canvasDimStyle.Render("←↑↓→ steer  enter drop  esc release"))
	} else {
		b.WriteString(canvasDimStyle.Render(canvasHelp))
	}
	return b.String()
}

// renderGrid draws the visible rows of the canvas. Boards are painted in
// layout paint order so the board under interaction ends up on top.
func (m canvasModel) renderGrid() string {
	l := m.ws.Layout()
	columns := l.Grid.Columns
	for _, p := range l.Boards {
		columns = max(columns, p.Board.X+p.Board.W)
	}
	width, height := columns*colChars, m.rows*rowLines

	cells := make([][]rune, height)
	owner := make([][]string, height)
	for y := range height {
		cells[y] = []rune(strings.Repeat(" ", width))
		owner[y] = make([]string, width)
		if y%rowLines == 0 {
			for x := 0; x < width; x += colChars {
				cells[y][x] = '·'
			}
		}
	}
	for _, p := range l.PaintOrder() {
		drawBoard(cells, owner, p.Board, m.top)
	}

	sel, _ := m.selected()
	var out strings.Builder
	for y := range height {
		start := 0
		for x := 1; x <= width; x++ {
			if x < width && owner[y][x] == owner[y][start] {
				continue
			}
			style := canvasDimStyle
			switch id := owner[y][start]; {
			case id == "":
			case id == l.Active:
				style = canvasActiveStyle
			case id == sel.ID:
				style = canvasSelectedStyle
			default:
				style = canvasBoardStyle
			}
			out.WriteString(style.Render(string(cells[y][start:x])))
			start = x
		}
		out.WriteByte('\n')
	}
	return out.String()
}

// drawBoard paints a rounded box for b with its title in the top border.
// Rows above top or below the buffer are clipped.
func drawBoard(cells [][]rune, owner [][]string, b board.Board, top int) {
	x0, x1 := b.X*colChars, (b.X+b.W)*colChars-2
	y0, y1 := (b.Y-top)*rowLines, (b.Y+b.H-top)*rowLines-1
	put := func(y, x int, r rune) {
		if y < 0 || y >= len(cells) || x < 0 || x >= len(cells[y]) {
			return
		}
		cells[y][x] = r
		owner[y][x] = b.ID
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			r := ' '
			switch {
			case y == y0 && x == x0:
				r = '╭'
			case y == y0 && x == x1:
				r = '╮'
			case y == y1 && x == x0:
				r = '╰'
			case y == y1 && x == x1:
				r = '╯'
			case y == y0 || y == y1:
				r = '─'
			case x == x0 || x == x1:
				r = '│'
			}
			put(y, x, r)
		}
	}
	text := func(y int, s string) {
		for i, r := range []rune(truncate(s, x1-x0-3)) {
			put(y, x0+2+i, r)
		}
	}
	text(y0, " "+b.Title+" ")
	if y0+1 < y1 {
		text(y0+1, b.Type)
	}
	if y0+2 < y1 {
		text(y0+2, boardSummary(b))
	}
}

// boardSummary is a short description of a board's body.
func boardSummary(b board.Board) string {
	switch {
	case b.Notes != nil:
		return fmt.Sprintf("%d notes", len(b.Notes))
	case b.HasContent():
		first, _, _ := strings.Cut(strings.TrimSpace(b.ContentString()), "\n")
		return first
	}
	return ""
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
