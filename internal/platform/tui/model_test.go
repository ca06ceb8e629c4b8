package tui

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/platform/runner"
	"github.com/vovakirdan/tui-flappy/internal/schedule"
)

func newTestModel() Model {
	r := runner.New(runner.Options{
		Config: config.DefaultFlappyConfig(),
		Seed:   1,
		Clock:  schedule.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		Player: "ana",
	})
	m := NewModel(r, core.RuntimeConfig{ScreenW: 40, ScreenH: 21, TickRate: 60})
	m.Init()
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func tickUntilOver(t *testing.T, m Model) Model {
	t.Helper()
	for i := 0; i < 1000; i++ {
		m = update(t, m, TickMsg(time.Now()))
		if m.runner.Game().State().GameOver {
			return m
		}
	}
	t.Fatal("run did not end")
	return m
}

func TestModelJumpAppliesOnTick(t *testing.T) {
	m := newTestModel()

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if v := m.runner.Game().Snapshot().VelocityY; v != 0 {
		t.Errorf("jump should wait for the next tick, velocity already %f", v)
	}

	m = update(t, m, TickMsg(time.Now()))
	if v := m.runner.Game().Snapshot().VelocityY; math.Abs(v-(-3.8)) > 1e-9 {
		t.Errorf("VelocityY = %f after jump and one tick, expected -3.8", v)
	}
}

func TestModelMouseJumps(t *testing.T) {
	m := newTestModel()

	m = update(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, TickMsg(time.Now()))

	if v := m.runner.Game().Snapshot().VelocityY; v >= 0 {
		t.Errorf("mouse click should flap, velocity %f", v)
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel()
	view := m.View()

	if !strings.Contains(view, "Score") {
		t.Error("view should contain the score HUD")
	}
	if !strings.Contains(view, "ana") {
		t.Error("status bar should name the player")
	}
	if lines := strings.Count(view, "\n") + 1; lines != 21 {
		t.Errorf("view should fill the terminal, got %d lines", lines)
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	m := newTestModel()
	m = update(t, m, TickMsg(time.Now()))
	before := m.runner.Game().State().Ticks

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 31})

	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen should be 100x30, got %dx%d", m.screen.Width(), m.screen.Height())
	}
	if m.runner.Game().State().Ticks != before {
		t.Error("resize must not reset the run")
	}
}

func TestModelBackOnlyWhenOver(t *testing.T) {
	m := newTestModel()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() || m.IsQuitting() {
		t.Fatal("back during a run should be ignored")
	}

	m = tickUntilOver(t, m)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() || !m.IsQuitting() {
		t.Error("back after game over should leave a standalone model")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelRestartAfterOver(t *testing.T) {
	m := newTestModel()
	m = tickUntilOver(t, m)

	m = update(t, m, runeKey('x'))
	m = update(t, m, TickMsg(time.Now()))

	if m.runner.Game().State().GameOver {
		t.Error("jump after game over should start a new run")
	}
	if m.runner.Runs() != 2 {
		t.Errorf("Runs() = %d, expected 2", m.runner.Runs())
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel()

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !next.(Model).IsQuitting() {
		t.Error("ctrl+c should quit")
	}
	if cmd == nil {
		t.Error("quit should return a command")
	}
}

func TestRenderStatusWidth(t *testing.T) {
	line := RenderStatus(60, StatusInfo{Player: "ana", Run: 3, Best: 2.5})

	if !strings.Contains(line, "best 2.5") || !strings.Contains(line, "run 3") {
		t.Errorf("status missing fields: %q", line)
	}
}
