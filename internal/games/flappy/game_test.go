package flappy

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/schedule"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func newTestWorld() *World {
	return NewWorld(config.DefaultFlappyConfig())
}

func TestNewWorld(t *testing.T) {
	w := newTestWorld()

	if w.State != StatePlaying {
		t.Errorf("new world should be playing, got %s", w.State)
	}
	if w.Player.X != 45 || w.Player.Y != 320 {
		t.Errorf("player should start at (45, 320), got (%f, %f)", w.Player.X, w.Player.Y)
	}
	if w.Player.W != 34 || w.Player.H != 24 {
		t.Errorf("player size should be 34x24, got %fx%f", w.Player.W, w.Player.H)
	}
	if len(w.Pipes)+len(w.Clouds)+len(w.Coins) != 0 || w.Score != 0 {
		t.Error("new world should be empty with zero score")
	}
}

func TestStepGravity(t *testing.T) {
	w := newTestWorld()
	w.Player.Y = 600
	w.Player.VelocityY = 0

	report := Step(w)

	if !approx(w.Player.VelocityY, 0.2) {
		t.Errorf("VelocityY = %f, expected 0.2", w.Player.VelocityY)
	}
	if !approx(w.Player.Y, 600.2) {
		t.Errorf("Y = %f, expected 600.2", w.Player.Y)
	}
	if w.Over() || report.Ended {
		t.Error("player inside the field should keep playing")
	}
}

func TestStepClampsAtTop(t *testing.T) {
	w := newTestWorld()
	w.Player.Y = 1
	w.Player.VelocityY = -4

	Step(w)

	if w.Player.Y != 0 {
		t.Errorf("Y should be clamped to 0, got %f", w.Player.Y)
	}
	if !approx(w.Player.VelocityY, -3.8) {
		t.Errorf("clamping must not touch velocity, got %f", w.Player.VelocityY)
	}
	if w.Over() {
		t.Error("touching the top should not end the run")
	}
}

func TestStepBelowFieldEndsRun(t *testing.T) {
	tests := []struct {
		name     string
		y, vel   float64
		expected bool
	}{
		{"already below, at rest", 641, 0, true},
		{"already below, jumping", 641, -4, true},
		{"crosses during step", 639.9, 0.5, true},
		{"well inside", 600, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld()
			w.Player.Y = tc.y
			w.Player.VelocityY = tc.vel

			report := Step(w)

			if w.Over() != tc.expected {
				t.Errorf("Over() = %v, expected %v (y=%f)", w.Over(), tc.expected, w.Player.Y)
			}
			if tc.expected && report.Cause != CauseFell {
				t.Errorf("Cause = %q, expected %q", report.Cause, CauseFell)
			}
		})
	}
}

func TestStepIsNoopWhenOver(t *testing.T) {
	w := newTestWorld()
	w.Pipes = append(w.Pipes, Body{Rect: core.NewRect(200, -300, 64, 512), Kind: KindPipeTop})
	w.Coins = append(w.Coins, Body{Rect: core.NewRect(45, 320, 32, 32), Kind: KindCoin})
	w.State = StateOver

	before := w.Player.Rect
	report := Step(w)

	if w.Player.Rect != before || w.Player.VelocityY != 0 {
		t.Error("player must not move while over")
	}
	if w.Pipes[0].X != 200 || len(w.Coins) != 1 || w.Score != 0 {
		t.Error("entities and score must not change while over")
	}
	if report != (StepReport{}) {
		t.Errorf("report should be empty while over, got %+v", report)
	}
}

func TestPipePassAwardsHalfOnce(t *testing.T) {
	w := newTestWorld()
	// Far above the player so it can never collide
	w.Pipes = append(w.Pipes, Body{Rect: core.NewRect(360, -600, 64, 512), Kind: KindPipeTop})

	passed := 0
	for i := 0; i < 500; i++ {
		// Hold the player in place so only the pipe moves
		w.Player.Y = 320
		w.Player.VelocityY = 0

		report := Step(w)
		passed += report.PipesPassed

		if report.PipesPassed > 0 && i != 379 {
			t.Errorf("pipe passed on step %d, expected step 379", i)
		}
	}

	if passed != 1 {
		t.Errorf("pipe should be passed exactly once, got %d", passed)
	}
	if w.Score != 0.5 {
		t.Errorf("Score = %f, expected 0.5", w.Score)
	}
	if w.Over() {
		t.Error("run should still be going")
	}
}

func TestPipePairAwardsOnePoint(t *testing.T) {
	w := newTestWorld()
	w.Pipes = append(w.Pipes,
		Body{Rect: core.NewRect(-20, -600, 64, 512), Kind: KindPipeTop},
		Body{Rect: core.NewRect(-20, 700, 64, 512), Kind: KindPipeBottom},
	)

	report := Step(w)

	if report.PipesPassed != 2 || w.Score != 1 {
		t.Errorf("pair should award 1, got passed=%d score=%f", report.PipesPassed, w.Score)
	}
	for _, p := range w.Pipes {
		if !p.Passed {
			t.Error("both bodies should be marked passed")
		}
	}
}

func TestPipeCollisionEndsRun(t *testing.T) {
	w := newTestWorld()
	w.Pipes = append(w.Pipes, Body{Rect: core.NewRect(46, 300, 64, 512), Kind: KindPipeBottom})

	report := Step(w)

	if !w.Over() {
		t.Fatal("overlapping a pipe should end the run")
	}
	if report.Cause != CauseCrashed {
		t.Errorf("Cause = %q, expected %q", report.Cause, CauseCrashed)
	}
}

func TestCollisionStillFinishesTheStep(t *testing.T) {
	w := newTestWorld()
	w.Pipes = append(w.Pipes, Body{Rect: core.NewRect(46, 300, 64, 512), Kind: KindPipeBottom})
	w.Clouds = append(w.Clouds, Body{Rect: core.NewRect(100, 10, 128, 64), Kind: KindCloud})

	Step(w)

	if w.Clouds[0].X != 99 {
		t.Errorf("clouds should still scroll on the ending step, got x=%f", w.Clouds[0].X)
	}
}

func TestCoinCollectedOnce(t *testing.T) {
	w := newTestWorld()
	// After one scroll the coin sits exactly on the player
	w.Coins = append(w.Coins, Body{Rect: core.NewRect(46, 320, 32, 32), Kind: KindCoin})

	report := Step(w)

	if report.CoinsCollected != 1 || w.Score != 1 {
		t.Errorf("coin should award 1, got collected=%d score=%f", report.CoinsCollected, w.Score)
	}
	if len(w.Coins) != 0 {
		t.Errorf("collected coin should be removed, %d left", len(w.Coins))
	}

	report = Step(w)
	if report.CoinsCollected != 0 || w.Score != 1 {
		t.Errorf("second step must not award again, got collected=%d score=%f", report.CoinsCollected, w.Score)
	}
}

func TestAdjacentCoinsAllCollected(t *testing.T) {
	w := newTestWorld()
	w.Coins = append(w.Coins,
		Body{Rect: core.NewRect(46, 320, 32, 32), Kind: KindCoin},
		Body{Rect: core.NewRect(50, 310, 32, 32), Kind: KindCoin},
		Body{Rect: core.NewRect(300, 10, 32, 32), Kind: KindCoin},
	)

	Step(w)

	if w.Score != 2 {
		t.Errorf("Score = %f, expected 2", w.Score)
	}
	if len(w.Coins) != 1 || w.Coins[0].X != 299 {
		t.Errorf("only the far coin should remain, got %+v", w.Coins)
	}
}

func TestPruneOffscreen(t *testing.T) {
	w := newTestWorld()
	w.Pipes = append(w.Pipes,
		Body{Rect: core.NewRect(-63, -600, 64, 512), Kind: KindPipeTop}, // Reaches x=-64 -> gone
		Body{Rect: core.NewRect(-62, -600, 64, 512), Kind: KindPipeTop}, // x=-63 -> stays
	)
	w.Clouds = append(w.Clouds, Body{Rect: core.NewRect(-127, 0, 128, 64), Kind: KindCloud})
	w.Coins = append(w.Coins, Body{Rect: core.NewRect(-31, 0, 32, 32), Kind: KindCoin})

	Step(w)

	if len(w.Pipes) != 1 || w.Pipes[0].X != -63 {
		t.Errorf("expected one pipe at x=-63, got %+v", w.Pipes)
	}
	if len(w.Clouds) != 0 || len(w.Coins) != 0 {
		t.Errorf("offscreen cloud and coin should be pruned, got %d clouds %d coins", len(w.Clouds), len(w.Coins))
	}
}

func TestPruneInvariantOverManySteps(t *testing.T) {
	w := newTestWorld()
	s := NewSpawner(7)

	for i := 0; i < 2000; i++ {
		if i%180 == 0 {
			s.SpawnObstacle(w)
		}
		if i%240 == 0 {
			s.SpawnDecoration(w)
		}
		if i%300 == 0 {
			s.SpawnCollectible(w)
		}
		// Keep the player clear of everything
		w.Player.Y = 0
		w.Player.VelocityY = 0
		for j := range w.Pipes {
			w.Pipes[j].Y = -10000
		}

		Step(w)

		for _, coll := range [][]Body{w.Pipes, w.Clouds, w.Coins} {
			for _, b := range coll {
				if b.X <= -b.W {
					t.Fatalf("step %d: %s at x=%f should have been pruned", i, b.Kind, b.X)
				}
			}
		}
	}

	// 2000 steps leave only bodies spawned in the last ~360+width ticks
	if len(w.Clouds) > 3 || len(w.Coins) > 2 {
		t.Errorf("collections should stay bounded, got %d clouds %d coins", len(w.Clouds), len(w.Coins))
	}
}

func TestScoreNeverDecreasesWhilePlaying(t *testing.T) {
	g := New(config.DefaultFlappyConfig())
	g.Reset(core.RuntimeConfig{Seed: 99})

	prev := 0.0
	for i := 0; i < 5000 && !g.State().GameOver; i++ {
		switch i % 180 {
		case 0:
			g.Handle(schedule.Event{Kind: schedule.KindSpawnObstacle})
		case 60:
			g.Handle(schedule.Event{Kind: schedule.KindSpawnCollectible})
		}
		if g.ShouldJump() {
			g.OnJumpTrigger()
		}
		g.Step()

		score := g.State().Score
		if score < prev {
			t.Fatalf("score decreased from %f to %f at step %d", prev, score, i)
		}
		prev = score
	}
}

func TestJumpWhilePlaying(t *testing.T) {
	w := newTestWorld()
	w.Score = 3.5
	w.Player.VelocityY = 2.4

	OnJumpTrigger(w)

	if w.Player.VelocityY != -4 {
		t.Errorf("VelocityY = %f, expected jump impulse -4", w.Player.VelocityY)
	}
	if w.Score != 3.5 || w.Over() {
		t.Error("jumping while playing must not restart")
	}
}

func TestJumpWhenOverRestarts(t *testing.T) {
	w := newTestWorld()
	w.Player.Y = 700
	w.Player.VelocityY = 9
	w.Score = 4.5
	w.Pipes = append(w.Pipes, Body{Rect: core.NewRect(10, 10, 64, 512), Kind: KindPipeTop})
	w.Clouds = append(w.Clouds, Body{Rect: core.NewRect(10, 10, 128, 64), Kind: KindCloud})
	w.Coins = append(w.Coins, Body{Rect: core.NewRect(10, 10, 32, 32), Kind: KindCoin})
	w.State = StateOver

	OnJumpTrigger(w)

	if w.State != StatePlaying {
		t.Errorf("State = %s, expected playing", w.State)
	}
	if w.Score != 0 {
		t.Errorf("Score = %f, expected 0", w.Score)
	}
	if len(w.Pipes)+len(w.Clouds)+len(w.Coins) != 0 {
		t.Error("restart should empty every collection")
	}
	if w.Player.Y != 320 || w.Player.X != 45 {
		t.Errorf("player should be back at (45, 320), got (%f, %f)", w.Player.X, w.Player.Y)
	}
	if w.Player.VelocityY != -4 {
		t.Errorf("restart should carry the jump impulse, got %f", w.Player.VelocityY)
	}
}

func TestSpawnerObstaclePlacement(t *testing.T) {
	w := newTestWorld()
	s := NewSpawner(1)

	for i := 0; i < 50; i++ {
		if !s.SpawnObstacle(w) {
			t.Fatal("spawn should succeed while playing")
		}
	}

	if len(w.Pipes) != 100 {
		t.Fatalf("expected 100 bodies, got %d", len(w.Pipes))
	}

	opening := 640.0 / 3.0
	for i := 0; i < len(w.Pipes); i += 2 {
		top, bottom := w.Pipes[i], w.Pipes[i+1]
		if top.Kind != KindPipeTop || bottom.Kind != KindPipeBottom {
			t.Fatalf("pair %d has kinds %s/%s", i/2, top.Kind, bottom.Kind)
		}
		if top.X != 360 || bottom.X != 360 {
			t.Errorf("pipes should spawn at the right edge, got %f/%f", top.X, bottom.X)
		}
		if top.Y > -128 || top.Y < -384 {
			t.Errorf("top pipe y=%f outside [-384, -128]", top.Y)
		}
		if !approx(bottom.Y-top.Bottom(), opening) {
			t.Errorf("opening = %f, expected %f", bottom.Y-top.Bottom(), opening)
		}
		if top.Passed || bottom.Passed {
			t.Error("new pipes must not be passed")
		}
	}
}

func TestSpawnerUpperHalfPlacement(t *testing.T) {
	w := newTestWorld()
	s := NewSpawner(2)

	for i := 0; i < 100; i++ {
		s.SpawnDecoration(w)
		s.SpawnCollectible(w)
	}

	for _, b := range append(append([]Body(nil), w.Clouds...), w.Coins...) {
		if b.X != 360 {
			t.Errorf("%s should spawn at x=360, got %f", b.Kind, b.X)
		}
		if b.Y < 0 || b.Y >= 320 {
			t.Errorf("%s y=%f outside the top half", b.Kind, b.Y)
		}
	}
	if w.Clouds[0].W != 128 || w.Coins[0].W != 32 {
		t.Error("bodies should take their configured sizes")
	}
}

func TestSpawnerInertWhenOver(t *testing.T) {
	w := newTestWorld()
	w.State = StateOver
	s := NewSpawner(3)

	if s.SpawnObstacle(w) || s.SpawnDecoration(w) || s.SpawnCollectible(w) {
		t.Error("spawners should report no spawn while over")
	}
	if len(w.Pipes)+len(w.Clouds)+len(w.Coins) != 0 {
		t.Error("spawners must not create entities while over")
	}
}

func TestSpawnerDeterminism(t *testing.T) {
	w1, w2 := newTestWorld(), newTestWorld()
	s1, s2 := NewSpawner(42), NewSpawner(42)

	for i := 0; i < 10; i++ {
		s1.SpawnObstacle(w1)
		s2.SpawnObstacle(w2)
		s1.SpawnCollectible(w1)
		s2.SpawnCollectible(w2)
	}

	for i := range w1.Pipes {
		if w1.Pipes[i] != w2.Pipes[i] {
			t.Fatalf("pipe %d differs for the same seed", i)
		}
	}
	for i := range w1.Coins {
		if w1.Coins[i] != w2.Coins[i] {
			t.Fatalf("coin %d differs for the same seed", i)
		}
	}
}

func TestGameHandleEvents(t *testing.T) {
	g := New(config.DefaultFlappyConfig())

	g.Handle(schedule.Event{Kind: schedule.KindSpawnObstacle})
	g.Handle(schedule.Event{Kind: schedule.KindSpawnDecoration})
	g.Handle(schedule.Event{Kind: schedule.KindSpawnCollectible})

	snap := g.Snapshot()
	if len(snap.Pipes) != 2 || len(snap.Clouds) != 1 || len(snap.Coins) != 1 {
		t.Fatalf("unexpected entity counts %d/%d/%d", len(snap.Pipes), len(snap.Clouds), len(snap.Coins))
	}

	g.Handle(schedule.Event{Kind: schedule.KindTick})
	if g.State().Ticks != 1 {
		t.Errorf("Ticks = %d, expected 1", g.State().Ticks)
	}

	g.Handle(schedule.Event{Kind: schedule.KindJump})
	if g.world.Player.VelocityY != -4 {
		t.Errorf("jump event should set the impulse, got %f", g.world.Player.VelocityY)
	}
}

func TestGameRestartThroughJump(t *testing.T) {
	g := New(config.DefaultFlappyConfig())
	g.world.Player.Y = 700
	g.Step()

	if !g.State().GameOver {
		t.Fatal("game should be over after falling out")
	}
	if r := g.LastReport(); !r.Ended || r.Cause != CauseFell {
		t.Errorf("LastReport = %+v, expected a fall", r)
	}

	// Ticks while over do nothing
	g.Step()
	if g.State().Ticks != 1 {
		t.Errorf("ticks should not advance while over, got %d", g.State().Ticks)
	}

	g.OnJumpTrigger()
	st := g.State()
	if st.GameOver || st.Score != 0 || st.Ticks != 0 {
		t.Errorf("jump should restart into a fresh run, got %+v", st)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	g := New(config.DefaultFlappyConfig())
	g.Handle(schedule.Event{Kind: schedule.KindSpawnObstacle})

	snap := g.Snapshot()
	snap.Pipes[0].X = -1000

	if g.world.Pipes[0].X == -1000 {
		t.Error("mutating a snapshot must not touch the world")
	}
}

func TestGameWithScheduler(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Physics.Gravity = 0 // Hover so spawns are not gated by a fall

	g := New(cfg)
	clock := schedule.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	s := schedule.New(clock)
	g.RegisterTimers(s)

	for i := 0; i < 500; i++ {
		clock.Advance(10 * time.Millisecond)
		s.Frame()
		s.Drain(func(ev schedule.Event) { g.Handle(ev) })
	}

	snap := g.Snapshot()
	if len(snap.Pipes) != 2 || len(snap.Clouds) != 1 || len(snap.Coins) != 1 {
		t.Fatalf("after 5s expected 2 pipes, 1 cloud, 1 coin; got %d/%d/%d",
			len(snap.Pipes), len(snap.Clouds), len(snap.Coins))
	}
	// Spawned on the frame at 3s and moved on every tick from that frame on
	if snap.Pipes[0].X != 360-201 {
		t.Errorf("pipe x = %f, expected %d", snap.Pipes[0].X, 360-201)
	}
	if snap.Ticks != 500 {
		t.Errorf("Ticks = %d, expected 500", snap.Ticks)
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() Snapshot {
		g := New(config.DefaultFlappyConfig())
		g.Reset(core.RuntimeConfig{Seed: 12345})

		clock := schedule.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		s := schedule.New(clock)
		g.RegisterTimers(s)

		for i := 0; i < 3000 && !g.State().GameOver; i++ {
			clock.Advance(time.Second / 60)
			if g.ShouldJump() {
				s.Trigger(schedule.KindJump)
			}
			s.Frame()
			s.Drain(func(ev schedule.Event) { g.Handle(ev) })
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if a.Score != b.Score || a.Ticks != b.Ticks || a.State != b.State {
		t.Errorf("runs differ: %v/%d/%s vs %v/%d/%s", a.Score, a.Ticks, a.State, b.Score, b.Ticks, b.State)
	}
	if len(a.Pipes) != len(b.Pipes) {
		t.Fatalf("pipe counts differ: %d vs %d", len(a.Pipes), len(b.Pipes))
	}
	for i := range a.Pipes {
		if a.Pipes[i] != b.Pipes[i] {
			t.Errorf("pipe %d differs", i)
		}
	}
}

func TestShouldJump(t *testing.T) {
	g := New(config.DefaultFlappyConfig())

	g.world.Player.Y = 100
	g.world.Player.VelocityY = 1
	if g.ShouldJump() {
		t.Error("high player with no pipes should not jump")
	}

	g.world.Player.Y = 500
	if !g.ShouldJump() {
		t.Error("low falling player with no pipes should jump")
	}

	g.world.Player.VelocityY = -2
	if g.ShouldJump() {
		t.Error("rising player should not jump")
	}

	g.world.State = StateOver
	g.world.Player.VelocityY = 1
	if g.ShouldJump() {
		t.Error("autopilot should not restart the game")
	}
}

func TestGameRender(t *testing.T) {
	g := New(config.DefaultFlappyConfig())
	g.Handle(schedule.Event{Kind: schedule.KindSpawnObstacle})
	g.world.Pipes[0].X = 180
	g.world.Pipes[1].X = 180

	screen := core.NewScreen(40, 20)
	g.Render(screen)

	if row := screen.Row(0); !strings.ContainsRune(row, 'S') {
		t.Errorf("score HUD missing from row 0: %q", row)
	}
	// Player at (45, 320) of a 360x640 field -> cell (5, 10)
	if screen.Get(5, 10) != PlayerChar {
		t.Errorf("expected player at (5, 10), got %q", screen.Get(5, 10))
	}
	if screen.GetCell(20, 1).Color != core.ColorGreen {
		t.Errorf("expected a pipe cell at (20, 1), got %+v", screen.GetCell(20, 1))
	}

	g.world.State = StateOver
	g.Render(screen)
	found := false
	for y := 0; y < screen.Height(); y++ {
		if strings.Contains(screen.Row(y), "GAME OVER") {
			found = true
		}
	}
	if !found {
		t.Error("game over overlay should be drawn")
	}
}
