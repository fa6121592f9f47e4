package tui

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/trace"

	"github.com/vovakirdan/grid-quest/internal/blocks"
	"github.com/vovakirdan/grid-quest/internal/board"
	"github.com/vovakirdan/grid-quest/internal/config"
	"github.com/vovakirdan/grid-quest/internal/core"
	"github.com/vovakirdan/grid-quest/internal/quest"
	"github.com/vovakirdan/grid-quest/internal/registry"
	"github.com/vovakirdan/grid-quest/internal/scenario"
	"github.com/vovakirdan/grid-quest/internal/storage"
)

// Options configures a play session.
type Options struct {
	Library       *scenario.Library
	Store         *storage.Store // May be nil; runs are then not recorded
	Logger        *log.Logger
	Tracer        trace.Tracer
	Pace          config.Pace
	Pause         time.Duration // Both zero selects the standard pauses
	TeleportPause time.Duration
	Appearance    string // Starting image name
	Player        string
	Source        string // Storage source tag
	Runtime       core.RuntimeConfig
	Context       context.Context
	Sleeper       board.Sleeper // Replaces time.Sleep in tests
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.Context == nil {
		o.Context = context.Background()
	}
	if o.Source == "" {
		o.Source = storage.SourcePlay
	}
	if o.Runtime.TickRate == 0 {
		o.Runtime = core.DefaultConfig()
	}
	if o.Pause == 0 && o.TeleportPause == 0 {
		o.Pause, o.TeleportPause = quest.PauseDuration, quest.TeleportPause
	}
	return o
}

// opDoneMsg is sent when a block finishes on its goroutine.
type opDoneMsg struct {
	block string
	err   error
}

// boardFrame caches the rendered board between changes.
type boardFrame struct {
	text string
}

// Model is the Bubble Tea model for playing a scenario.
type Model struct {
	opts       Options
	board      *board.Board
	controller *quest.Controller
	catalog    blocks.Catalog
	keys       PlayKeyMap
	help       help.Model
	spinner    spinner.Model
	screen     *core.Screen
	frame      *boardFrame
	dirty      *atomic.Bool

	width       int
	height      int
	scenarioIdx int
	imageIdx    int
	busy        bool // An operation is in flight; input is dropped
	saved       bool // Whether the current game over has been recorded
	steps       int // Blocks the player ran since the scenario loaded
	moves       int
	teleports   int
	status      string
	quitting    bool
	backToMenu  bool
	quitOnBack  bool // Standalone programs exit on back; SSH sessions return to the menu
}

// NewModel creates a play session starting at scenarioID, or at the
// default scenario when it is unknown.
func NewModel(opts Options, scenarioID string) Model {
	opts = opts.withDefaults()

	idx := opts.Library.Index(scenarioID)
	if idx < 0 {
		idx = max(opts.Library.Index(scenario.DefaultID), 0)
	}

	names := core.ImageNames()
	imageIdx := 0
	img := core.DefaultImage()
	if found, ok := core.LookupImage(opts.Appearance); ok {
		img = found
	}
	for i, name := range names {
		if name == img.Name {
			imageIdx = i
		}
	}

	dirty := &atomic.Bool{}
	dirty.Store(true)

	boardOpts := []board.Option{
		board.WithPace(opts.Pace.Multiplier()),
		board.WithLogger(opts.Logger),
		board.WithOnChange(func() { dirty.Store(true) }),
	}
	if opts.Sleeper != nil {
		boardOpts = append(boardOpts, board.WithSleeper(opts.Sleeper))
	}
	b := board.New(boardOpts...)

	controller := quest.New(b,
		quest.WithLogger(opts.Logger),
		quest.WithTracer(opts.Tracer),
		quest.WithTimings(opts.Pause, opts.TeleportPause),
		quest.WithDefaultImage(img),
		quest.WithDefaultTilemap(opts.Library.At(idx).Tilemap()),
	)

	h := help.New()
	h.ShowAll = false

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	return Model{
		opts:        opts,
		board:       b,
		controller:  controller,
		catalog:     blocks.Catalog{Scenarios: opts.Library},
		keys:        DefaultPlayKeyMap(),
		help:        h,
		spinner:     sp,
		screen:      core.NewScreen(0, 0),
		frame:       &boardFrame{},
		dirty:       dirty,
		width:       opts.Runtime.ScreenW,
		height:      opts.Runtime.ScreenH,
		scenarioIdx: idx,
		imageIdx:    imageIdx,
		busy:        true, // Init loads the scenario
	}
}

// Init loads the starting scenario and starts the refresh loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.exec(blocks.SetScenario, m.current().ID),
		tickCmd(m.opts.Runtime.TickRate),
		m.spinner.Tick,
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.dirty.Store(true)
		return m, nil

	case TickMsg:
		return m, tickCmd(m.opts.Runtime.TickRate)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case opDoneMsg:
		return m.handleDone(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)

	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		m.backToMenu = true
		if m.quitOnBack {
			return m, tea.Quit
		}
		return m, nil
	case core.ActionNone:
		return m, nil
	}

	// One operation at a time; keys pressed during a pause are dropped.
	if m.busy {
		return m, nil
	}

	if id := action.BlockID(); id != "" {
		if m.board.GameOver() {
			m.status = "Game over. Press r to restart or n for the next scenario."
			return m, nil
		}
		return m.start(id, "")
	}

	switch action {
	case core.ActionNextAppearance:
		names := core.ImageNames()
		m.imageIdx = (m.imageIdx + 1) % len(names)
		return m.start(blocks.SetAppearance, names[m.imageIdx])

	case core.ActionNextScenario:
		m.scenarioIdx = m.wrapIndex(m.scenarioIdx + 1)
		return m.restart()

	case core.ActionPrevScenario:
		m.scenarioIdx = m.wrapIndex(m.scenarioIdx - 1)
		return m.restart()

	case core.ActionRestart:
		return m.restart()
	}

	return m, nil
}

func (m Model) wrapIndex(i int) int {
	n := m.opts.Library.Len()
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}

// restart reloads the current scenario as a fresh game.
func (m Model) restart() (tea.Model, tea.Cmd) {
	m.board.ResetOutcome()
	m.controller.ResetCounters()
	m.saved = false
	m.steps, m.moves, m.teleports = 0, 0, 0
	return m.start(blocks.SetScenario, m.current().ID)
}

func (m Model) start(id, arg string) (tea.Model, tea.Cmd) {
	m.busy = true
	m.status = ""
	return m, m.exec(id, arg)
}

// exec runs a block to completion on the command goroutine.
func (m Model) exec(id, arg string) tea.Cmd {
	ctx, c, cat := m.opts.Context, m.controller, m.catalog
	return func() tea.Msg {
		return opDoneMsg{block: id, err: registry.Execute(ctx, id, c, cat, arg)}
	}
}

// handleDone records the finished operation and saves a finished game once.
func (m Model) handleDone(msg opDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	m.moves = m.controller.Moves()
	m.teleports = m.controller.Teleports()

	if msg.err != nil {
		m.opts.Logger.Warn("block failed", "block", msg.block, "error", msg.err)
		m.status = msg.err.Error()
		return m, nil
	}
	if msg.block != blocks.SetScenario {
		m.steps++
	}

	switch m.board.Outcome() {
	case board.OutcomeWon:
		m.status = "You arrived! Press n for the next scenario."
	case board.OutcomeLost:
		m.status = "Into the lava! Press r to try again."
	default:
		return m, nil
	}

	m.saveRun()
	return m, nil
}

func (m *Model) saveRun() {
	if m.saved {
		return
	}
	m.saved = true
	if m.opts.Store == nil {
		return
	}

	run, err := m.opts.Store.SaveRun(m.opts.Context, storage.Run{
		ScenarioID: m.current().ID,
		Outcome:    m.board.Outcome().String(),
		Moves:      m.moves,
		Teleports:  m.teleports,
		Steps:      m.steps,
		Source:     m.opts.Source,
		Player:     m.opts.Player,
	})
	if err != nil {
		// Best-effort save, play continues regardless
		m.opts.Logger.Warn("could not save run", "error", err)
		return
	}
	m.opts.Logger.Debug("run saved", "run_id", run.RunID, "scenario", run.ScenarioID, "outcome", run.Outcome)
}

func (m Model) current() scenario.Scenario {
	return m.opts.Library.At(m.scenarioIdx)
}

// renderBoard redraws the board into the frame cache when it changed.
func (m Model) renderBoard() string {
	if m.dirty.Swap(false) || m.frame.text == "" {
		snap := m.board.Snapshot()
		fw, fh := board.FrameSize(snap.Tilemap.W, snap.Tilemap.H)
		m.screen.Resize(fw, fh)
		snap.Render(m.screen, 0, 0)
		m.frame.text = RenderScreen(m.screen)
	}
	return m.frame.text
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	statsStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	wonStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	lostStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sc := m.current()
	busy := " "
	if m.busy {
		busy = m.spinner.View()
	}

	stats := statsStyle.Render(fmt.Sprintf("moves %d  teleports %d  %s %s",
		m.moves, m.teleports, core.ImageNames()[m.imageIdx], busy))

	status := statusStyle.Render(m.status)
	switch m.board.Outcome() {
	case board.OutcomeWon:
		status = wonStyle.Render(m.status)
	case board.OutcomeLost:
		status = lostStyle.Render(m.status)
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(sc.Name),
		hintStyle.Render(sc.Hint),
		"",
		m.renderBoard(),
		stats,
		status,
		"",
		helpStyle.Render(m.help.View(m.keys)),
	)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Outcome returns the board outcome.
func (m Model) Outcome() board.Outcome {
	return m.board.Outcome()
}

// Run starts the Bubble Tea program for a single play session.
// Returns true if the user asked to go back to the menu.
func Run(opts Options, scenarioID string) (backToMenu bool, err error) {
	model := NewModel(opts, scenarioID)
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
