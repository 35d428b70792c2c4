package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-lines/internal/core"
	"github.com/vovakirdan/tui-lines/internal/lines"
	"github.com/vovakirdan/tui-lines/internal/storage"
)

// Board browser layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the session sidebar
	sidebarWidth       = 20  // Width of session sidebar
	maxSessions        = 50  // Sessions listed in the sidebar
	maxHistory         = 100 // History rows loaded per session
)

// BoardStore is what the board browser reads from.
type BoardStore interface {
	RecentBoards(limit int) ([]storage.BoardRecord, error)
	History(sessionID string, limit int) ([]storage.HistoryEntry, error)
	DeleteBoard(sessionID string) error
}

// BoardsKeyMap defines the key bindings for the board browser.
type BoardsKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Resume   key.Binding
	Delete   key.Binding
	Back     key.Binding
	Quit     key.Binding
	NextSess key.Binding
	PrevSess key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BoardsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextSess, k.Resume, k.Delete, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k BoardsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextSess, k.PrevSess},
		{k.Resume, k.Delete, k.Back, k.Quit},
	}
}

// DefaultBoardsKeyMap returns default key bindings.
func DefaultBoardsKeyMap() BoardsKeyMap {
	return BoardsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "older"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "newer"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev session"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next session"),
		),
		NextSess: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next session"),
		),
		PrevSess: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev session"),
		),
		Resume: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "resume board"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete session"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// BoardsModel browses published sessions and their board history.
type BoardsModel struct {
	sessions    []storage.BoardRecord
	cursor      int // Selected session index
	store       BoardStore
	history     []storage.HistoryEntry
	table       table.Model
	help        help.Model
	keys        BoardsKeyMap
	theme       Theme
	width       int
	height      int
	chosen      string // Board picked for resuming
	chosenID    string
	err         error
	quitting    bool
	showSidebar bool
}

// NewBoardsModel creates a board browser.
func NewBoardsModel(store BoardStore, theme Theme, width, height int) BoardsModel {
	h := help.New()
	h.ShowAll = false

	m := BoardsModel{
		store:       store,
		keys:        DefaultBoardsKeyMap(),
		help:        h,
		theme:       theme,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.loadSessions()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *BoardsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 5},
		{Title: "Balls", Width: 6},
		{Title: "Published", Width: 14},
	}

	height := m.height - 8
	if height < lines.Size+2 {
		height = lines.Size + 2
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadSessions reloads the sidebar and the history of the current session.
func (m *BoardsModel) loadSessions() {
	sessions, err := m.store.RecentBoards(maxSessions)
	if err != nil {
		m.err = err
		sessions = nil
	}
	m.sessions = sessions
	m.cursor = core.Clamp(m.cursor, 0, max(len(m.sessions)-1, 0))
	m.loadHistory()
}

// loadHistory loads the boards the selected session published.
func (m *BoardsModel) loadHistory() {
	m.history = nil
	if len(m.sessions) > 0 {
		history, err := m.store.History(m.sessions[m.cursor].SessionID, maxHistory)
		if err != nil {
			m.err = err
		} else {
			m.history = history
		}
	}
	m.updateTableRows()
}

// updateTableRows fills the table with the loaded history.
func (m *BoardsModel) updateTableRows() {
	rows := make([]table.Row, len(m.history))
	for i, e := range m.history {
		balls := 0
		if g, err := lines.Decode(e.Map); err == nil {
			balls = g.Count()
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", len(m.history)-i),
			fmt.Sprintf("%d", balls),
			e.CreatedAt.Format("Jan 02 15:04:05"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// selectedMap returns the board under the table cursor.
func (m BoardsModel) selectedMap() (string, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.history) {
		return "", false
	}
	return m.history[i].Map, true
}

// Init initializes the board browser.
func (m BoardsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the board browser.
func (m BoardsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Resume):
			if board, ok := m.selectedMap(); ok {
				m.chosen = board
				m.chosenID = m.sessions[m.cursor].SessionID
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if len(m.sessions) > 0 {
				if err := m.store.DeleteBoard(m.sessions[m.cursor].SessionID); err != nil {
					m.err = err
				}
				m.loadSessions()
			}
			return m, nil

		case key.Matches(msg, m.keys.NextSess), key.Matches(msg, m.keys.Right):
			if len(m.sessions) > 0 {
				m.cursor = (m.cursor + 1) % len(m.sessions)
				m.loadHistory()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevSess), key.Matches(msg, m.keys.Left):
			if len(m.sessions) > 0 {
				m.cursor--
				if m.cursor < 0 {
					m.cursor = len(m.sessions) - 1
				}
				m.loadHistory()
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the board browser.
func (m BoardsModel) View() string {
	if m.quitting || m.chosen != "" {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "PUBLISHED BOARDS"
	if len(m.sessions) > 0 {
		title = fmt.Sprintf("PUBLISHED BOARDS - %s", shortID(m.sessions[m.cursor].SessionID))
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	panelStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(m.renderTableContent()), "  ", m.renderPreview())
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", body)
	}
	b.WriteString(body)

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(m.err.Error()))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderSidebar lists the sessions.
func (m BoardsModel) renderSidebar() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Sessions\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, s := range m.sessions {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + shortID(s.SessionID)))
		sidebar.WriteString("\n")
	}

	return sidebarStyle.Render(sidebar.String())
}

// renderPreview draws the board under the table cursor.
func (m BoardsModel) renderPreview() string {
	board, ok := m.selectedMap()
	if !ok {
		return ""
	}
	g, err := lines.Decode(board)
	if err != nil {
		return ""
	}
	frame := core.NewRect(0, 0, boardOuter, lines.Size+2)
	s := core.NewScreen(frame.W, frame.H)
	drawBoard(s, frame, m.theme, boardView{cells: &g})
	return RenderScreen(s)
}

// renderTableContent renders the table or empty message.
func (m BoardsModel) renderTableContent() string {
	if len(m.history) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No boards published yet.\nPlay a game to publish one!")
	}
	return m.table.View()
}

// Chosen returns the session and board picked for resuming, if any.
func (m BoardsModel) Chosen() (sessionID, board string, ok bool) {
	return m.chosenID, m.chosen, m.chosen != ""
}

// RunBoards runs the board browser and returns the board picked for
// resuming. ok is false when the user left without picking one.
func RunBoards(store BoardStore, theme Theme, width, height int) (sessionID, board string, ok bool, err error) {
	model := NewBoardsModel(store, theme, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", "", false, err
	}

	m, isBoards := finalModel.(BoardsModel)
	if !isBoards {
		return "", "", false, nil
	}
	sessionID, board, ok = m.Chosen()
	return sessionID, board, ok, nil
}

// shortID trims a session id for narrow columns.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}
	return strings.Repeat(" ", (width-textWidth)/2) + text
}
