package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/platform/runner"
)

// Model is the Bubble Tea model for playing flappy in a terminal.
type Model struct {
	runner     *runner.Runner
	screen     *core.Screen
	config     core.RuntimeConfig
	keys       *KeyMapper
	embedded   bool // Hosted by a session: back returns to its menu
	quitting   bool
	backToMenu bool
	lastShot   string // Path of the most recent screenshot
}

// NewModel creates a new Bubble Tea model driving r.
func NewModel(r *runner.Runner, cfg core.RuntimeConfig) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	return Model{
		runner: r,
		screen: core.NewScreen(cfg.ScreenW, fieldRows(cfg.ScreenH)),
		config: cfg,
		keys:   NewKeyMapper(),
	}
}

// Init starts the first run and the tick loop.
func (m Model) Init() tea.Cmd {
	m.runner.Start()
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleAction(m.keys.MapKey(msg))

	case tea.MouseMsg:
		return m.handleAction(m.keys.MapMouse(msg))

	case tea.WindowSizeMsg:
		// The field is projected, so a resize never touches the world
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, fieldRows(msg.Height))
		return m, nil

	case TickMsg:
		m.runner.Frame()
		return m, tickCmd(m.config.TickRate)
	}

	return m, nil
}

// handleAction applies one input action.
func (m Model) handleAction(action core.Action) (tea.Model, tea.Cmd) {
	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionShot:
		if path, err := m.saveScreenshot(); err == nil {
			m.lastShot = path
		}

	case core.ActionJump:
		m.runner.Jump()

	case core.ActionBack:
		if !m.runner.Game().State().GameOver {
			return m, nil
		}
		m.backToMenu = true
		if !m.embedded {
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// saveScreenshot saves the current screen to a file and returns its path.
func (m *Model) saveScreenshot() (string, error) {
	m.runner.Game().Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.runner.Game().ID(), timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.runner.Game().Render(m.screen)
	status := RenderStatus(m.config.ScreenW, StatusInfo{
		Player: m.runner.Player(),
		Run:    m.runner.Runs(),
		Best:   m.runner.Best(),
		Shot:   m.lastShot,
	})
	return RenderScreen(m.screen) + "\n" + status
}

// fieldRows leaves the last terminal row for the status bar.
func fieldRows(height int) int {
	return core.Max(0, height-1)
}

// IsQuitting returns true if the user requested to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to leave a finished run.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program driving r.
func Run(r *runner.Runner, cfg core.RuntimeConfig) error {
	model := NewModel(r, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Mouse clicks flap
	)

	_, err := p.Run()
	return err
}

// TickMsg is sent once per display frame.
type TickMsg time.Time

// tickCmd schedules the next frame at tickRate frames per second.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	return tea.Tick(time.Second/time.Duration(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
