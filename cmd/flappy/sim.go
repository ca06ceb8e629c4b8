package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/platform/runner"
	"github.com/vovakirdan/tui-flappy/internal/schedule"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagSimDuration time.Duration
	flagSimSave     bool
	flagNoAutopilot    bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless autopilot game",
	Long: `Run one game without a display on a virtual clock. An autopilot flaps
whenever the bird drops toward the bottom of the next gap. The run ends on a
crash or when the simulated duration is used up.

The same --seed and config always produce the same result.

Examples:
  flappy sim --seed 42
  flappy sim --seed 7 --duration 10m --save
  flappy sim --no-autopilot --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().DurationVar(&flagSimDuration, "duration", 5*time.Minute, "Simulated time limit")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record the run in the scores database")
	simCmd.Flags().BoolVar(&flagNoAutopilot, "no-autopilot", false, "Never flap")
}

func runSim(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger(os.Stderr, "flappy-sim")
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = 1 // Headless runs stay reproducible by default
	}

	clock := schedule.NewManualClock(time.Unix(0, 0))
	opts := runner.Options{
		Config: cfg,
		Seed:   seed,
		Clock:  clock,
		Logger: logger,
		Player: playerName(),
		Mode:   storage.ModeSim,
	}
	if flagSimSave {
		opts.Store = openStore(logger)
		if opts.Store != nil {
			defer opts.Store.Close()
		}
	}

	r := runner.New(opts)

	result := simulate(r, clock, flagFPS, flagSimDuration, !flagNoAutopilot)

	fmt.Printf("seed:    %d\n", seed)
	fmt.Printf("score:   %g\n", result.Score)
	fmt.Printf("ticks:   %d\n", result.Ticks)
	fmt.Printf("elapsed: %s\n", result.Elapsed)
	fmt.Printf("flaps:   %d\n", result.Flaps)
	if result.Over {
		fmt.Printf("ended:   %s\n", result.Cause)
	} else {
		fmt.Println("ended:   time limit")
	}
	return nil
}

// simResult summarizes a headless run.
type simResult struct {
	Score   float64
	Ticks   int
	Flaps   int
	Elapsed time.Duration
	Over    bool
	Cause   string
}

// simulate advances r on clock at fps until the run ends or limit passes.
func simulate(r *runner.Runner, clock *schedule.ManualClock, fps int, limit time.Duration, autopilot bool) simResult {
	if fps <= 0 {
		fps = 60
	}
	frame := time.Second / time.Duration(fps)

	var res simResult
	r.Start()

	game := r.Game()
	for r.Scheduler().Elapsed() < limit {
		if autopilot && game.ShouldJump() {
			r.Jump()
			res.Flaps++
		}
		clock.Advance(frame)
		r.Frame()

		if game.State().GameOver {
			res.Over = true
			res.Cause = string(game.LastReport().Cause)
			break
		}
	}

	st := game.State()
	res.Score = st.Score
	res.Ticks = st.Ticks
	res.Elapsed = r.Scheduler().Elapsed()
	return res
}
