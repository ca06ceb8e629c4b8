package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/platform/web"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the flappy SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a menu, its own game and
its own clock. Scores are stored per-server (all users share the same
leaderboard) under their SSH user name.

With --http, the leaderboard is also served as JSON:
  GET /api/health
  GET /api/scores?limit=N
  GET /api/scores/best
  GET /api/players/{player}/scores
  GET /api/players/{player}/stats

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arcade/host_key

Examples:
  flappy serve                           # Listen on :23234 with auto-generated key
  flappy serve --ssh :2222               # Listen on port 2222
  flappy serve --http :8080              # Also serve the leaderboard API
  flappy serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP leaderboard address (disabled if empty)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger(os.Stderr, "flappy-serve")
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	sshServer, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
	}, cfg, store, logger.WithPrefix("flappy-ssh"))
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	// Graceful shutdown on Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting flappy SSH server on %s\n", sshServer.Addr())
	fmt.Println("Press Ctrl+C to stop")

	servers := []func(context.Context) error{sshServer.ListenAndServe}

	if flagHTTPAddr != "" {
		if store == nil {
			return errors.New("--http needs a scores database")
		}
		httpServer := web.NewServer(flagHTTPAddr, store, logger.WithPrefix("flappy-http"))
		servers = append(servers, httpServer.ListenAndServe)
	}

	return serveAll(ctx, stop, servers)
}

// serveAll runs every server until ctx is done; the first failure stops
// the others.
func serveAll(ctx context.Context, stop context.CancelFunc, servers []func(context.Context) error) error {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for _, serve := range servers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := serve(ctx); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				stop()
			}
		}()
	}

	wg.Wait()
	return firstErr
}
