// Package runner drives one flappy game from a scheduler. Frontends feed it
// jump triggers and call Frame once per display tick; the runner drains the
// event queue into the game, logs run boundaries and records finished runs.
package runner

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/schedule"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// Options configures a Runner.
type Options struct {
	Config config.FlappyConfig
	Seed   int64          // 0 means seed from the current time
	Clock  schedule.Clock // nil means the system clock
	Store  *storage.Store // nil disables score saving
	Logger *log.Logger    // nil discards log output
	Player string
	Mode   string
}

// Runner owns a Game and the Scheduler feeding it.
type Runner struct {
	game   *flappy.Game
	sched  *schedule.Scheduler
	store  *storage.Store
	logger *log.Logger
	player string
	mode   string
	runs   int
	best   float64
}

// New creates a runner. The game's spawn timers are registered with a fresh
// scheduler whose origin is the clock's current time.
func New(opts Options) *Runner {
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.Clock == nil {
		opts.Clock = schedule.SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Player == "" {
		opts.Player = storage.DefaultPlayer
	}

	runtime := core.DefaultConfig()
	runtime.Seed = opts.Seed

	game := flappy.New(opts.Config)
	game.Reset(runtime)

	sched := schedule.New(opts.Clock)
	game.RegisterTimers(sched)

	return &Runner{
		game:   game,
		sched:  sched,
		store:  opts.Store,
		logger: opts.Logger.With("player", opts.Player),
		player: opts.Player,
		mode:   opts.Mode,
	}
}

// Game returns the driven game.
func (r *Runner) Game() *flappy.Game {
	return r.game
}

// Scheduler returns the scheduler feeding the game.
func (r *Runner) Scheduler() *schedule.Scheduler {
	return r.sched
}

// Start rearms the spawn timers relative to now and begins the first run.
func (r *Runner) Start() {
	r.sched.Reset()
	r.runs = 1
	r.logger.Info("run started", "run", r.runs)
}

// Jump queues a jump trigger; it is applied on the next Frame.
func (r *Runner) Jump() {
	r.sched.Trigger(schedule.KindJump)
}

// Frame collects due timer events plus one tick and applies the whole queue
// to the game. It returns the number of events applied.
func (r *Runner) Frame() int {
	r.sched.Frame()
	return r.sched.Drain(r.apply)
}

func (r *Runner) apply(ev schedule.Event) {
	wasOver := r.game.State().GameOver

	report := r.game.Handle(ev)

	if wasOver && !r.game.State().GameOver {
		r.runs++
		r.logger.Info("run started", "run", r.runs)
	}
	if report.Ended {
		r.finish(report)
	}
}

// finish logs the end of a run and saves a non-zero score.
func (r *Runner) finish(report flappy.StepReport) {
	st := r.game.State()
	if st.Score > r.best {
		r.best = st.Score
	}

	r.logger.Info("run ended",
		"run", r.runs,
		"score", st.Score,
		"ticks", st.Ticks,
		"cause", report.Cause,
	)

	if r.store == nil || st.Score <= 0 {
		return
	}

	id, err := r.store.SaveScore(storage.ScoreEntry{
		Player: r.player,
		Mode:   r.mode,
		Score:  st.Score,
		Ticks:  st.Ticks,
	})
	if err != nil {
		r.logger.Warn("could not save score", "error", err)
		return
	}
	r.logger.Debug("score saved", "id", id, "score", st.Score)
}

// Runs returns how many runs have started.
func (r *Runner) Runs() int {
	return r.runs
}

// Best returns the best finished score of this runner.
func (r *Runner) Best() float64 {
	return r.best
}

// Player returns the name runs are recorded under.
func (r *Runner) Player() string {
	return r.player
}
