package tui

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/focustile/internal/canvas"
	"github.com/vovakirdan/focustile/internal/core"
	"github.com/vovakirdan/focustile/internal/focus"
	"github.com/vovakirdan/focustile/internal/grid"
	"github.com/vovakirdan/focustile/internal/snapshot"
	"github.com/vovakirdan/focustile/internal/storage"
	"github.com/vovakirdan/focustile/internal/tiles"
)

const appTitle = "FocusTile"

// mode is the panel that receives key presses.
type mode int

const (
	modeBoard mode = iota
	modeNoteInput
	modeNotes
	modeConfirmDelete
	modeTiles
	modeHistory
)

// inbox is the controller's notifier. It keeps the latest message and a
// sequence number so a scheduled dismiss only hides the message it was
// scheduled for.
type inbox struct {
	current string
	seq     int
}

// Notify implements canvas.Notifier.
func (n *inbox) Notify(msg string) {
	n.current = msg
	n.seq++
}

// Options configures a Model.
type Options struct {
	Repo         *snapshot.Repo
	History      storage.History
	Canvas       canvas.Options
	DismissAfter time.Duration
	Listeners    []canvas.Listener
	Width        int
	Height       int
}

// Model is the Bubble Tea model for one canvas.
type Model struct {
	ctrl    *canvas.Controller
	board   *Board
	inbox   *inbox
	history storage.History
	owner   string
	screen  *core.Screen
	keys    KeyMap
	help    help.Model

	mode       mode
	cursor     grid.Position
	noteInput  textinput.Model
	noteCursor int
	search     textinput.Model
	tileCursor int

	table        table.Model
	sessions     []storage.SessionRecord
	sessionStats *storage.SessionStats
	historyErr   error

	dismissAfter time.Duration
	width        int
	height       int
	quitting     bool
}

// NewModel creates the controller, loads the saved canvas and returns a
// model ready to run.
func NewModel(opts Options) Model {
	if opts.DismissAfter <= 0 {
		opts.DismissAfter = 3 * time.Second
	}

	board := NewBoard()
	box := &inbox{}
	ctrl := canvas.New(opts.Repo, opts.History, board, box, opts.Canvas)
	for _, l := range opts.Listeners {
		ctrl.AddListener(l)
	}
	ctrl.Load()

	noteInput := textinput.New()
	noteInput.Placeholder = "Write a note..."
	noteInput.CharLimit = 500

	search := textinput.New()
	search.Placeholder = "Search tiles..."
	search.CharLimit = 40

	h := help.New()
	h.ShowAll = false
	h.Width = opts.Width

	m := Model{
		ctrl:         ctrl,
		board:        board,
		inbox:        box,
		history:      opts.History,
		owner:        opts.Canvas.Owner,
		screen:       core.NewScreen(BoardWidth, BoardHeight),
		keys:         DefaultKeyMap(),
		help:         h,
		cursor:       grid.P(grid.Size/2, grid.Size/2),
		noteInput:    noteInput,
		search:       search,
		dismissAfter: opts.DismissAfter,
		width:        opts.Width,
		height:       opts.Height,
	}
	m.ctrl.Preview(m.cursor)
	return m
}

// Controller returns the canvas controller driven by the model.
func (m Model) Controller() *canvas.Controller { return m.ctrl }

// Board returns the render sink the controller draws into.
func (m Model) Board() *Board { return m.board }

// Cursor returns the board cursor.
func (m Model) Cursor() grid.Position { return m.cursor }

// Notice returns the notification currently shown, if any.
func (m Model) Notice() string { return m.inbox.current }

// Init resumes the countdown of a recovered session and schedules the
// dismissal of any startup notification.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.titleCmd()}
	if m.ctrl.Running() {
		cmds = append(cmds, tickCmd(m.ctrl.Generation()))
	}
	if m.inbox.current != "" {
		cmds = append(cmds, dismissCmd(m.inbox.seq, m.dismissAfter))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	seq := m.inbox.seq
	next, cmd := m.update(msg)
	if m.inbox.seq != seq {
		cmd = tea.Batch(cmd, dismissCmd(m.inbox.seq, m.dismissAfter))
	}
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.mode == modeHistory {
			m.table = m.createTable()
		}
		return m, nil

	case TickMsg:
		return m.handleTick(msg)

	case dismissMsg:
		if msg.seq == m.inbox.seq {
			m.inbox.current = ""
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.mode {
		case modeNoteInput:
			return m.handleNoteInputKey(msg)
		case modeNotes:
			return m.handleNotesKey(msg)
		case modeConfirmDelete:
			return m.handleConfirmKey(msg)
		case modeTiles:
			return m.handleTilesKey(msg)
		case modeHistory:
			return m.handleHistoryKey(msg)
		default:
			return m.handleBoardKey(msg)
		}
	}

	// Cursor blink and other input internals
	var cmd tea.Cmd
	switch m.mode {
	case modeNoteInput:
		m.noteInput, cmd = m.noteInput.Update(msg)
	case modeTiles:
		m.search, cmd = m.search.Update(msg)
	}
	return m, cmd
}

// handleTick refreshes the countdown. A tick from an older timer
// generation ends its chain; the current chain was scheduled on start.
func (m Model) handleTick(msg TickMsg) (Model, tea.Cmd) {
	st, current := m.ctrl.TickSession(msg.Generation)
	if !current {
		return m, nil
	}
	if st.Completed != nil || !m.ctrl.Running() {
		return m, m.titleCmd()
	}
	return m, tea.Batch(tickCmd(msg.Generation), m.titleCmd())
}

// titleCmd sets the window title to the countdown while a session runs.
func (m Model) titleCmd() tea.Cmd {
	if !m.ctrl.Running() {
		return tea.SetWindowTitle(appTitle)
	}
	return tea.SetWindowTitle(focus.FormatRemaining(m.ctrl.Remaining()) + " - " + appTitle)
}

// handleBoardKey applies board actions to the controller.
func (m Model) handleBoardKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Slot) {
		if err := m.ctrl.SelectSlot(core.Slot(msg.String())); err == nil {
			m.ctrl.Preview(m.cursor)
		}
		return m, nil
	}

	switch m.keys.MapKey(msg) {
	case core.ActionBack:
		m.quitting = true
		return m, tea.Quit

	case core.ActionUp:
		m.moveCursor(-1, 0)
	case core.ActionDown:
		m.moveCursor(1, 0)
	case core.ActionLeft:
		m.moveCursor(0, -1)
	case core.ActionRight:
		m.moveCursor(0, 1)

	case core.ActionPlace:
		if err := m.ctrl.Click(m.cursor); errors.Is(err, canvas.ErrNoSelection) {
			m.inbox.Notify(msgSelectTile)
		}
		m.ctrl.Preview(m.cursor)

	case core.ActionRemoveTool:
		//nolint:errcheck // The remove tool is always selectable
		m.ctrl.SelectTile(tiles.RemoveTool)
		m.ctrl.Preview(m.cursor)

	case core.ActionHeightUp:
		//nolint:errcheck // The controller notifies at the limit
		m.ctrl.SetHeightCursor(1)
		m.ctrl.Preview(m.cursor)
	case core.ActionHeightDown:
		//nolint:errcheck // The controller notifies at the limit
		m.ctrl.SetHeightCursor(-1)
		m.ctrl.Preview(m.cursor)

	case core.ActionClearHeight:
		//nolint:errcheck // The controller notifies when nothing was cleared
		m.ctrl.ClearCurrentHeight()
		m.ctrl.Preview(m.cursor)

	case core.ActionToggleSession:
		if _, err := m.ctrl.ToggleSession(); err != nil {
			return m, nil
		}
		if m.ctrl.Running() {
			return m, tea.Batch(tickCmd(m.ctrl.Generation()), m.titleCmd())
		}
		return m, m.titleCmd()

	case core.ActionNewNote:
		m.mode = modeNoteInput
		m.noteInput.Reset()
		return m, m.noteInput.Focus()

	case core.ActionNotes:
		if len(m.ctrl.Notes()) == 0 {
			m.inbox.Notify(msgNoNotes)
			return m, nil
		}
		m.mode = modeNotes
		m.noteCursor = 0

	case core.ActionTiles:
		m.mode = modeTiles
		m.search.Reset()
		m.tileCursor = 0
		return m, m.search.Focus()

	case core.ActionHistory:
		m.loadHistory()
		m.mode = modeHistory

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// moveCursor moves the board cursor, clamped to the grid, and previews
// the selected tile under it.
func (m *Model) moveCursor(dRow, dCol int) {
	next := m.cursor.Add(dRow, dCol)
	if !next.InBounds() {
		return
	}
	m.cursor = next
	m.ctrl.Preview(m.cursor)
}

func (m Model) handleNoteInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.noteInput.Blur()
		m.mode = modeBoard
		return m, nil
	case msg.Type == tea.KeyEnter:
		if _, err := m.ctrl.AddNote(m.noteInput.Value()); err != nil {
			// Empty notes are ignored; keep the input open
			return m, nil
		}
		m.noteInput.Reset()
		m.noteInput.Blur()
		m.mode = modeBoard
		return m, nil
	}

	var cmd tea.Cmd
	m.noteInput, cmd = m.noteInput.Update(msg)
	return m, cmd
}

func (m Model) handleNotesKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	list := m.ctrl.Notes()
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Notes):
		m.mode = modeBoard
	case key.Matches(msg, m.keys.Up):
		m.noteCursor = core.Clamp(m.noteCursor-1, 0, len(list)-1)
	case key.Matches(msg, m.keys.Down):
		m.noteCursor = core.Clamp(m.noteCursor+1, 0, len(list)-1)
	case msg.String() == "d" && len(list) > 0:
		m.mode = modeConfirmDelete
	}
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		list := m.ctrl.Notes()
		if m.noteCursor < len(list) {
			//nolint:errcheck // The id comes from the current list
			m.ctrl.DeleteNote(list[m.noteCursor].ID)
		}
		remaining := len(m.ctrl.Notes())
		if remaining == 0 {
			m.mode = modeBoard
			return m, nil
		}
		m.noteCursor = core.Clamp(m.noteCursor, 0, remaining-1)
		m.mode = modeNotes
	case "n", "N", "esc":
		m.mode = modeNotes
	}
	return m, nil
}

// tileResults flattens the search results in display order.
func (m Model) tileResults() []string {
	var out []string
	for _, c := range tiles.Search(m.search.Value()) {
		out = append(out, c.Tiles...)
	}
	return out
}

func (m Model) handleTilesKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	results := m.tileResults()
	switch msg.Type {
	case tea.KeyEsc:
		m.search.Blur()
		m.mode = modeBoard
		m.ctrl.Preview(m.cursor)
		return m, nil
	case tea.KeyUp:
		m.tileCursor = core.Clamp(m.tileCursor-1, 0, max(0, len(results)-1))
		return m, nil
	case tea.KeyDown:
		m.tileCursor = core.Clamp(m.tileCursor+1, 0, max(0, len(results)-1))
		return m, nil
	case tea.KeyEnter:
		if m.tileCursor < len(results) {
			//nolint:errcheck // A full hotbar is reported through the notifier
			m.ctrl.ToggleHotbar(results[m.tileCursor])
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.tileCursor = core.Clamp(m.tileCursor, 0, max(0, len(m.tileResults())-1))
	return m, cmd
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.History):
		m.mode = modeBoard
		return m, nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// loadHistory reads the owner's completed sessions.
func (m *Model) loadHistory() {
	m.sessions = nil
	m.sessionStats = nil
	m.historyErr = nil
	if m.history == nil {
		m.historyErr = errNoHistory
		m.table = m.createTable()
		return
	}

	recs, err := m.history.RecentSessions(m.owner, historyLimit)
	if err != nil {
		m.historyErr = err
	}
	stats, err := m.history.SessionStats(m.owner)
	if err != nil {
		m.historyErr = err
	}
	m.sessions = recs
	m.sessionStats = stats
	m.table = m.createTable()
}

// View renders the board, the side panel and the footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.board.Draw(m.screen, 0, 0, m.cursor)

	var side string
	switch m.mode {
	case modeTiles:
		side = m.tilesPanel()
	case modeHistory:
		side = m.historyPanel()
	default:
		side = m.sidePanel()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(strings.ToUpper(appTitle)))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, RenderScreen(m.screen), "  ", side))
	b.WriteString("\n")
	b.WriteString(m.footer())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Run starts the Bubble Tea program for a local canvas.
func Run(opts Options) error {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
