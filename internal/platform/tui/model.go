package tui

import (
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-lines/internal/core"
	"github.com/vovakirdan/tui-lines/internal/lines"
)

const flashDuration = 1200 * time.Millisecond

// Options configure a board model.
type Options struct {
	Theme           Theme
	Publisher       Publisher     // Nil disables publishing
	PublishInterval time.Duration // Periodic publish; 0 publishes only after activations
	Logger          *log.Logger
	Bell            io.Writer   // Receives '\a' when lines are cut; nil is silent
	Resume          *lines.Grid // Board to restore instead of starting fresh
	Rand            lines.Rand  // Overrides the seed from RuntimeConfig
}

// mirror is the adapter's copy of the board. It only changes through
// engine notifications.
type mirror struct {
	cells lines.Grid
	cuts  int
}

func (m *mirror) CellChanged(x, y, value int) {
	m.cells[y][x] = value
}

func (m *mirror) LinesCut() {
	m.cuts++
}

// Model is the Bubble Tea model for one Lines board.
type Model struct {
	engine   *lines.Engine
	board    *mirror
	screen   *core.Screen
	config   core.RuntimeConfig
	opts     Options
	keys     KeyMap
	help     help.Model
	logger   *log.Logger
	cursorX  int
	cursorY  int
	flash    string
	flashGen int
	quitting bool
}

// NewModel creates a board model and starts (or resumes) a game.
func NewModel(cfg core.RuntimeConfig, opts Options) Model {
	if cfg.SessionID == "" {
		cfg.SessionID = uuid.NewString()
	}
	if opts.Theme.Ball == 0 {
		opts.Theme = DefaultTheme()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rng := opts.Rand
	if rng == nil && cfg.Seed != 0 {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}

	board := &mirror{}
	engine := lines.New(board, board, rng)
	if opts.Resume != nil {
		engine.Load(*opts.Resume)
	} else {
		engine.Start()
	}

	return Model{
		engine:  engine,
		board:   board,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:  cfg,
		opts:    opts,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		logger:  logger.With("session", cfg.SessionID),
		cursorX: lines.Size / 2,
		cursorY: lines.Size / 2,
	}
}

// SessionID returns the key under which this board is published.
func (m Model) SessionID() string {
	return m.config.SessionID
}

// Board returns the adapter's mirror of the board.
func (m Model) Board() lines.Grid {
	return m.board.cells
}

// Cuts returns how many line cuts were reported.
func (m Model) Cuts() int {
	return m.board.cuts
}

// Init publishes the opening board and starts the publish ticker.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.publish()}
	if m.opts.Publisher != nil && m.opts.PublishInterval > 0 {
		cmds = append(cmds, publishTickCmd(m.opts.PublishInterval))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case PublishTickMsg:
		return m, tea.Batch(m.publish(), publishTickCmd(m.opts.PublishInterval))

	case publishedMsg:
		if msg.err != nil {
			m.logger.Warn("publish failed", "error", msg.err)
		} else {
			m.logger.Debug("board published", "map", msg.board)
		}
		return m, nil

	case flashDoneMsg:
		if msg.gen == m.flashGen {
			m.flash = ""
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Action(msg) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionUp:
		m.cursorY = core.Clamp(m.cursorY-1, 0, lines.Size-1)
	case core.ActionDown:
		m.cursorY = core.Clamp(m.cursorY+1, 0, lines.Size-1)
	case core.ActionLeft:
		m.cursorX = core.Clamp(m.cursorX-1, 0, lines.Size-1)
	case core.ActionRight:
		m.cursorX = core.Clamp(m.cursorX+1, 0, lines.Size-1)
	case core.ActionActivate:
		return m.activate(m.cursorX, m.cursorY)
	case core.ActionNewGame:
		m.engine.Start()
		m.flash = ""
		m.logger.Info("new game")
		return m, m.publish()
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// handleMouse activates the cell under a left click.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	x, y, ok := hitTest(boardRect(m.config.ScreenW), msg.X, msg.Y)
	if !ok {
		return m, nil
	}
	m.cursorX, m.cursorY = x, y
	return m.activate(x, y)
}

// activate forwards one activation to the engine and publishes the result.
func (m Model) activate(x, y int) (tea.Model, tea.Cmd) {
	wasFull := m.engine.IsFull()
	cuts := m.board.cuts

	m.engine.Activate(x, y)

	if wasFull {
		m.logger.Info("board was full, new game started")
	}
	cmds := []tea.Cmd{m.publish()}
	if m.board.cuts > cuts {
		m.flashGen++
		m.flash = "Line!"
		cmds = append(cmds, flashCmd(m.flashGen, flashDuration), bellCmd(m.opts.Bell))
	}
	return m, tea.Batch(cmds...)
}

// publish hands the current board to the publisher.
func (m Model) publish() tea.Cmd {
	return publishCmd(m.opts.Publisher, m.config.SessionID, m.engine.Serialize())
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	helpView := m.help.View(m.keys)
	h := m.config.ScreenH - strings.Count(helpView, "\n") - 1
	if h < 1 {
		h = 1
	}
	if m.screen.Width() != m.config.ScreenW || m.screen.Height() != h {
		m.screen.Resize(m.config.ScreenW, h)
	}
	m.screen.Clear()

	m.screen.DrawTextCentered(0, "L I N E S")

	frame := boardRect(m.config.ScreenW)
	sx, sy, selected := m.engine.Selection()
	drawBoard(m.screen, frame, m.opts.Theme, boardView{
		cells:    &m.board.cells,
		cursor:   true,
		cursorX:  m.cursorX,
		cursorY:  m.cursorY,
		selX:     sx,
		selY:     sy,
		selected: selected,
	})

	row := frame.Bottom() + 1
	m.screen.DrawTextCentered(row, statusLine(&m.board.cells, m.board.cuts))
	switch {
	case m.flash != "":
		m.screen.DrawTextCentered(row+1, m.flash)
	case m.board.cells.IsFull():
		m.screen.DrawTextCentered(row+1, "Board full. Activate any cell for a new game.")
	}

	return RenderScreen(m.screen) + "\n" + helpView
}

// Run starts the Bubble Tea program with the given model.
func Run(cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
